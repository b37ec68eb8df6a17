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
	"github.com/amaansodagar786/credence_backend/internal/utils/pagination"
	"github.com/google/uuid"
)

const maxNotePageSize = 200

// noteService implements the NoteSvcFacade interface
type noteService struct {
	BaseService
	noteRepo       portsrepo.NoteRepositoryFacade
	documentRepo   portsrepo.DocumentReader
	assignmentRepo portsrepo.AssignmentReader
}

// NewNoteService creates a new note service
func NewNoteService(
	noteRepo portsrepo.NoteRepositoryFacade,
	documentRepo portsrepo.DocumentReader,
	assignmentRepo portsrepo.AssignmentReader,
	options ...ServiceOption,
) portssvc.NoteSvcFacade {
	svc := &noteService{
		noteRepo:       noteRepo,
		documentRepo:   documentRepo,
		assignmentRepo: assignmentRepo,
	}
	svc.apply(options)
	return svc
}

// Ensure noteService implements the NoteSvcFacade interface
var _ portssvc.NoteSvcFacade = (*noteService)(nil)

// AddNote stores a note. The author's own flag starts as viewed.
func (s *noteService) AddNote(ctx context.Context, actor domain.Actor, req dto.AddNoteRequest) (*domain.Note, error) {
	if err := s.RequireRole(actor, domain.RoleClient, domain.RoleEmployee); err != nil {
		return nil, err
	}
	clientID := s.targetClient(actor, req.ClientID)
	if clientID == "" {
		return nil, apperrors.NewValidationFailedError("clientId is required")
	}
	if err := s.AuthorizeClient(ctx, actor, clientID); err != nil {
		return nil, err
	}

	period := domain.Period{Year: req.Year, Month: req.Month}
	if err := period.Validate(); err != nil {
		return nil, apperrors.NewValidationFailedError(err.Error())
	}

	note := domain.Note{
		NoteID:     uuid.NewString(),
		ClientID:   clientID,
		Year:       period.Year,
		Month:      period.Month,
		Note:       req.Note,
		AddedAt:    s.Now(),
		AddedBy:    actor.UserID,
		AuthorRole: actor.Role,
		NoteLevel:  req.NoteLevel,
	}
	if req.NoteLevel != domain.NoteLevelMonth {
		note.CategoryType = req.CategoryType
		note.CategoryName = req.CategoryName
	}
	if req.NoteLevel == domain.NoteLevelFile {
		note.FileName = req.FileName
	}
	if err := note.ValidateTarget(); err != nil {
		return nil, apperrors.NewValidationFailedError(err.Error())
	}
	if err := s.checkTarget(ctx, &note); err != nil {
		return nil, err
	}
	note.MarkViewedBy(actor.Role)

	if err := s.noteRepo.SaveNote(ctx, note); err != nil {
		s.LogError(ctx, err, "Failed to save note",
			slog.String("client_id", clientID))
		return nil, err
	}

	s.LogInfo(ctx, "Note added",
		slog.String("note_id", note.NoteID),
		slog.String("client_id", clientID),
		slog.String("level", string(note.NoteLevel)))
	s.Publish(ctx, events.TypeNoteAdded, clientID, actor, map[string]any{
		"noteId":     note.NoteID,
		"year":       note.Year,
		"month":      note.Month,
		"noteLevel":  string(note.NoteLevel),
		"authorRole": string(note.AuthorRole),
	})
	return &note, nil
}

// checkTarget makes sure category and file notes point at something uploaded.
func (s *noteService) checkTarget(ctx context.Context, note *domain.Note) error {
	if note.NoteLevel == domain.NoteLevelMonth {
		return nil
	}
	period := domain.Period{Year: note.Year, Month: note.Month}
	month, err := s.documentRepo.FindMonthDocument(ctx, note.ClientID, period)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError(fmt.Sprintf("No documents for %s", period))
		}
		return err
	}

	ref := domain.CategoryRef{Type: note.CategoryType, Name: note.CategoryName}
	bucket, ok := month.Bucket(ref)
	if !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("Category %s not found", ref))
	}
	if note.NoteLevel == domain.NoteLevelFile {
		for _, f := range bucket.Files {
			if f.FileName == note.FileName {
				return nil
			}
		}
		return apperrors.NewNotFoundError(fmt.Sprintf("File %s not found in %s", note.FileName, ref))
	}
	return nil
}

// ListNotes returns a page of notes, newest first.
func (s *noteService) ListNotes(ctx context.Context, actor domain.Actor, clientID string, params dto.ListNotesParams) ([]domain.Note, *string, error) {
	clientID = s.targetClient(actor, clientID)
	if err := s.AuthorizeClient(ctx, actor, clientID); err != nil {
		return nil, nil, err
	}

	limit := params.Limit
	if limit <= 0 || limit > maxNotePageSize {
		limit = 50
	}
	filter := portsrepo.NoteFilter{
		ClientID: clientID,
		Period:   params.Period(),
		Limit:    limit + 1,
	}
	if params.NextToken != "" {
		addedAt, noteID, err := pagination.DecodeToken(params.NextToken)
		if err != nil {
			return nil, nil, apperrors.NewValidationFailedError(err.Error())
		}
		filter.After = &portsrepo.NoteCursor{AddedAt: addedAt, NoteID: noteID}
	}

	notes, err := s.noteRepo.ListNotes(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list notes", slog.String("client_id", clientID))
		return nil, nil, err
	}

	var nextToken *string
	if len(notes) > limit {
		notes = notes[:limit]
		last := notes[limit-1]
		token := pagination.EncodeToken(last.AddedAt, last.NoteID)
		nextToken = &token
	}
	if notes == nil {
		notes = []domain.Note{}
	}
	return notes, nextToken, nil
}

// CountUnread counts notes the actor's role has not viewed yet.
func (s *noteService) CountUnread(ctx context.Context, actor domain.Actor, clientID string) (*domain.UnreadCount, error) {
	if actor.UserID == "" {
		return nil, apperrors.ErrUnauthorized
	}
	result := &domain.UnreadCount{Role: actor.Role, ByClient: map[string]int{}}

	var clientIDs []string
	switch {
	case actor.Role == domain.RoleClient:
		if clientID != "" && clientID != actor.UserID {
			return nil, apperrors.ErrForbidden
		}
		clientIDs = []string{actor.UserID}
	case clientID != "":
		if err := s.AuthorizeClient(ctx, actor, clientID); err != nil {
			return nil, err
		}
		clientIDs = []string{clientID}
	case actor.Role == domain.RoleEmployee:
		ids, err := s.employeeClientIDs(ctx, actor.UserID)
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			return result, nil
		}
		clientIDs = ids
	}

	counts, err := s.noteRepo.CountUnread(ctx, actor.Role, clientIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to count unread notes",
			slog.String("role", string(actor.Role)))
		return nil, err
	}
	for id, n := range counts {
		if n == 0 {
			continue
		}
		result.ByClient[id] = n
		result.Total += n
	}
	return result, nil
}

func (s *noteService) employeeClientIDs(ctx context.Context, employeeID string) ([]string, error) {
	assignments, err := s.assignmentRepo.ListAssignmentsByEmployee(ctx, employeeID, nil)
	if err != nil {
		s.LogError(ctx, err, "Failed to list employee assignments",
			slog.String("employee_id", employeeID))
		return nil, err
	}
	seen := make(map[string]bool, len(assignments))
	ids := make([]string, 0, len(assignments))
	for _, a := range assignments {
		if a.IsRemoved || seen[a.ClientID] {
			continue
		}
		seen[a.ClientID] = true
		ids = append(ids, a.ClientID)
	}
	return ids, nil
}

// MarkViewed sets only the actor role's flag on the notes in scope.
func (s *noteService) MarkViewed(ctx context.Context, actor domain.Actor, clientID string, scope domain.NoteScope) (int64, error) {
	clientID = s.targetClient(actor, clientID)
	if clientID == "" {
		return 0, apperrors.NewValidationFailedError("clientId is required")
	}
	if err := s.AuthorizeClient(ctx, actor, clientID); err != nil {
		return 0, err
	}
	if err := scope.Validate(); err != nil {
		return 0, apperrors.NewValidationFailedError(err.Error())
	}

	updated, err := s.noteRepo.MarkNotesViewed(ctx, actor.Role, clientID, scope)
	if err != nil {
		s.LogError(ctx, err, "Failed to mark notes viewed",
			slog.String("client_id", clientID),
			slog.String("role", string(actor.Role)))
		return 0, err
	}

	s.LogDebug(ctx, "Notes marked viewed",
		slog.String("client_id", clientID),
		slog.Int64("updated", updated))
	if updated > 0 {
		s.Publish(ctx, events.TypeNotesViewed, clientID, actor, map[string]any{
			"role":    string(actor.Role),
			"updated": updated,
		})
	}
	return updated, nil
}

// targetClient pins clients to their own id.
func (s *noteService) targetClient(actor domain.Actor, requested string) string {
	if actor.Role == domain.RoleClient {
		return actor.UserID
	}
	return requested
}
