package repositories

import (
	"context"
	"time"

	"github.com/amaansodagar786/credence_backend/internal/core/domain"
)

// DocumentReader defines read operations for client month documents
type DocumentReader interface {
	// FindMonthDocument assembles one month with its buckets, files and notes.
	// It returns apperrors.ErrNotFound when the client never uploaded for that month.
	FindMonthDocument(ctx context.Context, clientID string, period domain.Period) (*domain.MonthDocument, error)

	// ListMonthDocuments assembles every month of a client, oldest first.
	ListMonthDocuments(ctx context.Context, clientID string) ([]domain.MonthDocument, error)
}

// DocumentWriter defines write operations for client month documents
type DocumentWriter interface {
	// SetMonthLock writes the whole-month flag only. lockedBy and lockedAt are nil on unlock.
	SetMonthLock(ctx context.Context, clientID string, period domain.Period, locked bool, lockedBy *string, lockedAt *time.Time) error

	// SetCategoryLock writes one category flag only.
	SetCategoryLock(ctx context.Context, clientID string, period domain.Period, ref domain.CategoryRef, locked bool, lockedBy *string, lockedAt *time.Time) error

	// SaveFile appends a file to a category, creating the month and the bucket on first use.
	SaveFile(ctx context.Context, clientID string, period domain.Period, ref domain.CategoryRef, file domain.File) error
}

// DocumentRepositoryFacade combines all document-related repository interfaces
type DocumentRepositoryFacade interface {
	DocumentReader
	DocumentWriter
}
