package services

import (
	"context"

	"github.com/amaansodagar786/credence_backend/internal/core/domain"
	"github.com/amaansodagar786/credence_backend/internal/dto"
)

// NoteReaderSvc defines read operations for notes
type NoteReaderSvc interface {
	// ListNotes returns a page of the client's notes, newest first, and the token of the next page.
	ListNotes(ctx context.Context, actor domain.Actor, clientID string, params dto.ListNotesParams) ([]domain.Note, *string, error)

	// CountUnread counts notes not yet viewed by the actor's role. An empty clientID
	// counts across every client visible to the actor.
	CountUnread(ctx context.Context, actor domain.Actor, clientID string) (*domain.UnreadCount, error)
}

// NoteWriterSvc defines write operations for notes
type NoteWriterSvc interface {
	// AddNote stores a note authored by a client or an employee.
	AddNote(ctx context.Context, actor domain.Actor, req dto.AddNoteRequest) (*domain.Note, error)

	// MarkViewed sets the actor role's flag on the selected notes and returns how many flags flipped.
	MarkViewed(ctx context.Context, actor domain.Actor, clientID string, scope domain.NoteScope) (int64, error)
}

// NoteSvcFacade combines all note-related service interfaces
type NoteSvcFacade interface {
	NoteReaderSvc
	NoteWriterSvc
}
