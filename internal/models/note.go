package models

import "time"

// Note is a row of the notes table.
type Note struct {
	NoteID             string    `db:"note_id"`
	ClientID           string    `db:"client_id"`
	Year               int       `db:"year"`
	Month              int       `db:"month"`
	Note               string    `db:"note"`
	AddedAt            time.Time `db:"added_at"`
	AddedBy            string    `db:"added_by"`
	AuthorRole         string    `db:"author_role"`
	NoteLevel          string    `db:"note_level"`
	CategoryType       *string   `db:"category_type"`
	CategoryName       *string   `db:"category_name"`
	FileName           *string   `db:"file_name"`
	IsViewedByClient   bool      `db:"is_viewed_by_client"`
	IsViewedByEmployee bool      `db:"is_viewed_by_employee"`
	IsViewedByAdmin    bool      `db:"is_viewed_by_admin"`
}
