package dto

import (
	"time"

	"github.com/amaansodagar786/credence_backend/internal/core/domain"
)

// AddNoteRequest creates a note. ClientID is ignored when a client writes its own note.
type AddNoteRequest struct {
	ClientID     string              `json:"clientId"`
	Year         int                 `json:"year" binding:"required,min=2000,max=2100"`
	Month        int                 `json:"month" binding:"required,min=1,max=12"`
	NoteLevel    domain.NoteLevel    `json:"noteLevel" binding:"required,notelevel"`
	CategoryType domain.CategoryType `json:"categoryType" binding:"omitempty,categorytype"`
	CategoryName string              `json:"categoryName"`
	FileName     string              `json:"fileName"`
	Note         string              `json:"note" binding:"required,max=2000"`
}

// NoteFilterRequest selects notes by month or by date range.
type NoteFilterRequest struct {
	Year      int        `json:"year" binding:"omitempty,min=2000,max=2100"`
	Month     int        `json:"month" binding:"omitempty,min=1,max=12"`
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
}

// MarkNotesViewedRequest selects the notes to mark with either noteIds or a filter.
type MarkNotesViewedRequest struct {
	ClientID string             `json:"clientId"`
	NoteIDs  []string           `json:"noteIds"`
	Filter   *NoteFilterRequest `json:"filter"`
}

// Scope converts the request into a domain.NoteScope.
func (r MarkNotesViewedRequest) Scope() domain.NoteScope {
	scope := domain.NoteScope{NoteIDs: r.NoteIDs}
	if r.Filter == nil {
		return scope
	}
	if r.Filter.Year != 0 || r.Filter.Month != 0 {
		scope.Period = &domain.Period{Year: r.Filter.Year, Month: r.Filter.Month}
	}
	scope.StartDate = r.Filter.StartDate
	scope.EndDate = r.Filter.EndDate
	return scope
}

// MarkNotesViewedResponse reports how many flags flipped.
type MarkNotesViewedResponse struct {
	Message string `json:"message"`
	Updated int64  `json:"updated"`
}

// ListNotesParams defines query parameters for listing notes.
type ListNotesParams struct {
	OptionalPeriodQuery
	Limit     int    `form:"limit,default=50" binding:"min=1,max=200"`
	NextToken string `form:"nextToken"`
}

// ListNotesResponse wraps a page of notes.
type ListNotesResponse struct {
	Notes     []domain.Note `json:"notes"`
	NextToken *string       `json:"nextToken,omitempty"`
}

// UnreadCountParams narrows an unread count to one client.
type UnreadCountParams struct {
	ClientID string `form:"clientId"`
}

// NoteResponse wraps a single note.
type NoteResponse struct {
	Note domain.Note `json:"note"`
}
