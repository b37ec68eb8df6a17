package services

import (
	"context"

	"github.com/amaansodagar786/credence_backend/internal/core/domain"
)

// LockSvcFacade resolves month and category lock requests. Both operations
// return the month as re-read after the write.
type LockSvcFacade interface {
	// RequestMonthLock flips the month flag only. Category flags are left untouched.
	RequestMonthLock(ctx context.Context, actor domain.Actor, clientID string, period domain.Period, lock bool) (*domain.MonthDocument, error)

	// RequestCategoryLock flips one category flag only. It is rejected with
	// apperrors.ErrAlreadyInState when the effective lock already equals lock.
	RequestCategoryLock(ctx context.Context, actor domain.Actor, clientID string, period domain.Period, ref domain.CategoryRef, lock bool) (*domain.MonthDocument, error)
}
