package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/amaansodagar786/credence_backend/internal/apperrors"
	"github.com/amaansodagar786/credence_backend/internal/core/domain"
	portsrepo "github.com/amaansodagar786/credence_backend/internal/core/ports/repositories"
	portssvc "github.com/amaansodagar786/credence_backend/internal/core/ports/services"
	"github.com/amaansodagar786/credence_backend/internal/dto"
	"github.com/amaansodagar786/credence_backend/internal/events"
	"github.com/google/uuid"
)

// documentService implements the DocumentSvcFacade interface
type documentService struct {
	BaseService
	documentRepo portsrepo.DocumentRepositoryFacade
	noteRepo     portsrepo.NoteWriter
}

// NewDocumentService creates a new document intake service
func NewDocumentService(documentRepo portsrepo.DocumentRepositoryFacade, noteRepo portsrepo.NoteWriter, options ...ServiceOption) portssvc.DocumentSvcFacade {
	svc := &documentService{
		documentRepo: documentRepo,
		noteRepo:     noteRepo,
	}
	svc.apply(options)
	return svc
}

// Ensure documentService implements the DocumentSvcFacade interface
var _ portssvc.DocumentSvcFacade = (*documentService)(nil)

// RecordUpload appends file metadata to the client's own month.
func (s *documentService) RecordUpload(ctx context.Context, actor domain.Actor, req dto.UploadDocumentRequest) (*domain.UploadResult, error) {
	if err := s.RequireRole(actor, domain.RoleClient); err != nil {
		return nil, err
	}
	clientID := actor.UserID
	period := req.Period()
	if err := period.Validate(); err != nil {
		return nil, apperrors.NewValidationFailedError(err.Error())
	}
	ref := req.Category()
	if err := ref.Validate(); err != nil {
		return nil, apperrors.NewValidationFailedError(err.Error())
	}

	month, err := s.documentRepo.FindMonthDocument(ctx, clientID, period)
	switch {
	case err == nil:
		if month.EffectiveLock(ref) {
			s.LogInfo(ctx, "Upload refused, category locked",
				slog.String("period", period.String()),
				slog.String("category", ref.String()))
			return nil, apperrors.NewRuleError(apperrors.ErrLocked,
				fmt.Sprintf("%s for %s is locked; uploads are closed", ref, period))
		}
	case !errors.Is(err, apperrors.ErrNotFound):
		s.LogError(ctx, err, "Failed to load month document before upload",
			slog.String("period", period.String()))
		return nil, err
	}

	now := s.Now()
	file := domain.File{
		FileID:     uuid.NewString(),
		FileName:   req.FileName,
		URL:        req.URL,
		FileSize:   req.FileSize,
		FileType:   req.FileType,
		UploadedAt: now,
		UploadedBy: actor.UserID,
	}
	if err := s.documentRepo.SaveFile(ctx, clientID, period, ref, file); err != nil {
		s.LogError(ctx, err, "Failed to save uploaded file",
			slog.String("period", period.String()),
			slog.String("category", ref.String()))
		return nil, err
	}

	var warnings []string
	if req.Note != "" {
		note := domain.Note{
			NoteID:       uuid.NewString(),
			ClientID:     clientID,
			Year:         period.Year,
			Month:        period.Month,
			Note:         req.Note,
			AddedAt:      now,
			AddedBy:      actor.UserID,
			AuthorRole:   domain.RoleClient,
			NoteLevel:    domain.NoteLevelFile,
			CategoryType: ref.Type,
			CategoryName: ref.Name,
			FileName:     file.FileName,
		}
		note.MarkViewedBy(domain.RoleClient)
		if err := s.noteRepo.SaveNote(ctx, note); err != nil {
			s.LogError(ctx, err, "Failed to save upload note",
				slog.String("file_id", file.FileID))
			warnings = append(warnings, "The file was saved but its note was not; add the note again")
		}
	}

	s.LogInfo(ctx, "Document uploaded",
		slog.String("file_id", file.FileID),
		slog.String("period", period.String()),
		slog.String("category", ref.String()))
	s.Publish(ctx, events.TypeDocumentUploaded, clientID, actor, map[string]any{
		"fileId":       file.FileID,
		"year":         period.Year,
		"month":        period.Month,
		"categoryType": string(ref.Type),
		"categoryName": ref.Name,
	})

	stored, err := s.documentRepo.FindMonthDocument(ctx, clientID, period)
	if err != nil {
		s.LogError(ctx, err, "Failed to reload month document after upload",
			slog.String("period", period.String()))
		return nil, err
	}
	return &domain.UploadResult{Month: stored, Warnings: warnings}, nil
}

// GetMonthDocument returns one month of a client visible to the actor.
func (s *documentService) GetMonthDocument(ctx context.Context, actor domain.Actor, clientID string, period domain.Period) (*domain.MonthDocument, error) {
	if err := s.AuthorizeClient(ctx, actor, clientID); err != nil {
		return nil, err
	}
	if err := period.Validate(); err != nil {
		return nil, apperrors.NewValidationFailedError(err.Error())
	}
	month, err := s.documentRepo.FindMonthDocument(ctx, clientID, period)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("No documents for %s", period))
		}
		s.LogError(ctx, err, "Failed to load month document",
			slog.String("client_id", clientID),
			slog.String("period", period.String()))
		return nil, err
	}
	return month, nil
}
