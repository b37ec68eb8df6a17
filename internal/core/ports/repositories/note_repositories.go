package repositories

import (
	"context"
	"time"

	"github.com/amaansodagar786/credence_backend/internal/core/domain"
)

// NoteCursor is the keyset position after the last note of a page.
type NoteCursor struct {
	AddedAt time.Time
	NoteID  string
}

// NoteFilter narrows a note listing.
type NoteFilter struct {
	ClientID string
	Period   *domain.Period
	After    *NoteCursor
	Limit    int
}

// NoteReader defines read operations for notes
type NoteReader interface {
	// ListNotes returns notes of a client newest first.
	ListNotes(ctx context.Context, filter NoteFilter) ([]domain.Note, error)

	// CountUnread counts notes whose flag for role is still false, grouped by client.
	// An empty clientIDs slice counts across all clients.
	CountUnread(ctx context.Context, role domain.Role, clientIDs []string) (map[string]int, error)
}

// NoteWriter defines write operations for notes
type NoteWriter interface {
	// SaveNote persists a new note.
	SaveNote(ctx context.Context, note domain.Note) error

	// MarkNotesViewed sets role's flag on the client notes selected by scope
	// and returns how many flags actually flipped.
	MarkNotesViewed(ctx context.Context, role domain.Role, clientID string, scope domain.NoteScope) (int64, error)
}

// NoteRepositoryFacade combines all note-related repository interfaces
type NoteRepositoryFacade interface {
	NoteReader
	NoteWriter
}
