package services

import (
	"context"

	"github.com/amaansodagar786/credence_backend/internal/core/domain"
	"github.com/amaansodagar786/credence_backend/internal/dto"
)

// DocumentSvcFacade handles client document intake
type DocumentSvcFacade interface {
	// RecordUpload appends an uploaded file to the actor's month. It fails with
	// apperrors.ErrLocked when the target category is effectively locked. A note that
	// could not be saved is reported in the result warnings.
	RecordUpload(ctx context.Context, actor domain.Actor, req dto.UploadDocumentRequest) (*domain.UploadResult, error)

	// GetMonthDocument returns one month of a client.
	GetMonthDocument(ctx context.Context, actor domain.Actor, clientID string, period domain.Period) (*domain.MonthDocument, error)
}
