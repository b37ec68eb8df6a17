package domain

import (
	"errors"
	"time"
)

// NoteLevel says what a note is attached to.
type NoteLevel string

const (
	NoteLevelMonth    NoteLevel = "month"
	NoteLevelCategory NoteLevel = "category"
	NoteLevelFile     NoteLevel = "file"
)

// Valid reports whether l is a known level.
func (l NoteLevel) Valid() bool {
	switch l {
	case NoteLevelMonth, NoteLevelCategory, NoteLevelFile:
		return true
	}
	return false
}

// Note is an immutable annotation with one viewed flag per role.
type Note struct {
	NoteID             string       `json:"noteId"`
	ClientID           string       `json:"clientId"`
	Year               int          `json:"year"`
	Month              int          `json:"month"`
	Note               string       `json:"note"`
	AddedAt            time.Time    `json:"addedAt"`
	AddedBy            string       `json:"addedBy"`
	AuthorRole         Role         `json:"authorRole"`
	NoteLevel          NoteLevel    `json:"noteLevel"`
	CategoryType       CategoryType `json:"categoryType,omitempty"`
	CategoryName       string       `json:"categoryName,omitempty"`
	FileName           string       `json:"fileName,omitempty"`
	IsViewedByClient   bool         `json:"isViewedByClient"`
	IsViewedByEmployee bool         `json:"isViewedByEmployee"`
	IsViewedByAdmin    bool         `json:"isViewedByAdmin"`
}

// IsViewedBy returns the flag belonging to role.
func (n *Note) IsViewedBy(role Role) bool {
	switch role {
	case RoleClient:
		return n.IsViewedByClient
	case RoleEmployee:
		return n.IsViewedByEmployee
	case RoleAdmin:
		return n.IsViewedByAdmin
	}
	return false
}

// MarkViewedBy sets only role's flag. It reports whether the flag changed;
// a second call for the same role is a no-op.
func (n *Note) MarkViewedBy(role Role) bool {
	if n.IsViewedBy(role) {
		return false
	}
	switch role {
	case RoleClient:
		n.IsViewedByClient = true
	case RoleEmployee:
		n.IsViewedByEmployee = true
	case RoleAdmin:
		n.IsViewedByAdmin = true
	default:
		return false
	}
	return true
}

// ValidateTarget checks that the note carries the fields its level needs.
func (n *Note) ValidateTarget() error {
	if !n.NoteLevel.Valid() {
		return errors.New("unknown note level")
	}
	if n.NoteLevel == NoteLevelMonth {
		return nil
	}
	ref := CategoryRef{Type: n.CategoryType, Name: n.CategoryName}
	if err := ref.Validate(); err != nil {
		return err
	}
	if n.NoteLevel == NoteLevelFile && n.FileName == "" {
		return errors.New("fileName is required for file notes")
	}
	return nil
}

// NoteScope selects the notes a bulk mark-as-viewed touches. Exactly one of
// NoteIDs, Period or the date range must be set.
type NoteScope struct {
	NoteIDs   []string
	Period    *Period
	StartDate *time.Time
	EndDate   *time.Time
}

// Validate enforces the single-selector rule and sane ranges.
func (s NoteScope) Validate() error {
	selectors := 0
	if len(s.NoteIDs) > 0 {
		selectors++
	}
	if s.Period != nil {
		selectors++
		if err := s.Period.Validate(); err != nil {
			return err
		}
	}
	if s.StartDate != nil || s.EndDate != nil {
		selectors++
		if s.StartDate == nil || s.EndDate == nil {
			return errors.New("both startDate and endDate are required")
		}
		if s.StartDate.After(*s.EndDate) {
			return errors.New("startDate must not be after endDate")
		}
	}
	switch selectors {
	case 0:
		return errors.New("one of noteIds, year/month or startDate/endDate is required")
	case 1:
		return nil
	default:
		return errors.New("only one of noteIds, year/month or startDate/endDate may be given")
	}
}

// Matches reports whether n falls inside the scope.
func (s NoteScope) Matches(n *Note) bool {
	switch {
	case len(s.NoteIDs) > 0:
		for _, id := range s.NoteIDs {
			if id == n.NoteID {
				return true
			}
		}
		return false
	case s.Period != nil:
		return n.Year == s.Period.Year && n.Month == s.Period.Month
	case s.StartDate != nil && s.EndDate != nil:
		return !n.AddedAt.Before(*s.StartDate) && !n.AddedAt.After(*s.EndDate)
	}
	return false
}

// UnreadCount is a per-role badge count.
type UnreadCount struct {
	Role     Role           `json:"role"`
	Total    int            `json:"total"`
	ByClient map[string]int `json:"byClient"`
}
