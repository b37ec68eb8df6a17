package models

import "time"

// MonthDocument is the month-level row: one per client, year and month.
type MonthDocument struct {
	ClientID  string     `db:"client_id"`
	Year      int        `db:"year"`
	Month     int        `db:"month"`
	IsLocked  bool       `db:"is_locked"`
	LockedBy  *string    `db:"locked_by"`
	LockedAt  *time.Time `db:"locked_at"`
	CreatedAt time.Time  `db:"created_at"`
}

// CategoryBucket is a category row of a month. CategoryName is empty
// for the fixed sales, purchase and bank categories.
type CategoryBucket struct {
	ClientID     string     `db:"client_id"`
	Year         int        `db:"year"`
	Month        int        `db:"month"`
	CategoryType string     `db:"category_type"`
	CategoryName string     `db:"category_name"`
	IsLocked     bool       `db:"is_locked"`
	LockedBy     *string    `db:"locked_by"`
	LockedAt     *time.Time `db:"locked_at"`
	CreatedAt    time.Time  `db:"created_at"`
}

// File is the metadata row of an uploaded file. The binary lives at URL.
type File struct {
	FileID       string    `db:"file_id"`
	ClientID     string    `db:"client_id"`
	Year         int       `db:"year"`
	Month        int       `db:"month"`
	CategoryType string    `db:"category_type"`
	CategoryName string    `db:"category_name"`
	FileName     string    `db:"file_name"`
	URL          string    `db:"url"`
	FileSize     int64     `db:"file_size"`
	FileType     string    `db:"file_type"`
	UploadedAt   time.Time `db:"uploaded_at"`
	UploadedBy   string    `db:"uploaded_by"`
}
