package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/amaansodagar786/credence_backend/internal/apperrors"
)

// CategoryType names a document category inside a month.
type CategoryType string

const (
	CategorySales    CategoryType = "sales"
	CategoryPurchase CategoryType = "purchase"
	CategoryBank     CategoryType = "bank"
	CategoryOther    CategoryType = "other"
)

// RequiredCategories must each hold at least one file before tasks can be assigned.
var RequiredCategories = []CategoryType{CategorySales, CategoryPurchase, CategoryBank}

// Valid reports whether c is a known category type.
func (c CategoryType) Valid() bool {
	switch c {
	case CategorySales, CategoryPurchase, CategoryBank, CategoryOther:
		return true
	}
	return false
}

// CategoryRef points at one bucket of a month. Name is only meaningful for "other".
type CategoryRef struct {
	Type CategoryType `json:"type"`
	Name string       `json:"categoryName,omitempty"`
}

// Validate checks that other categories are named and fixed ones are not.
func (r CategoryRef) Validate() error {
	if !r.Type.Valid() {
		return fmt.Errorf("unknown category type %q", r.Type)
	}
	if r.Type == CategoryOther && r.Name == "" {
		return errors.New("categoryName is required for other categories")
	}
	if r.Type != CategoryOther && r.Name != "" {
		return fmt.Errorf("categoryName is only allowed for other categories, got %q on %s", r.Name, r.Type)
	}
	return nil
}

func (r CategoryRef) String() string {
	if r.Type == CategoryOther {
		return string(r.Type) + ":" + r.Name
	}
	return string(r.Type)
}

// LockScope selects which flag a lock request targets.
type LockScope string

const (
	LockScopeMonth    LockScope = "month"
	LockScopeCategory LockScope = "category"
)

// File is an uploaded document. It never changes after upload except for its notes.
type File struct {
	FileID     string    `json:"fileID"`
	FileName   string    `json:"fileName"`
	URL        string    `json:"url"`
	FileSize   int64     `json:"fileSize"`
	FileType   string    `json:"fileType"`
	UploadedAt time.Time `json:"uploadedAt"`
	UploadedBy string    `json:"uploadedBy"`
	Notes      []Note    `json:"notes"`
}

// CategoryBucket holds the files of one category and its own lock flag.
type CategoryBucket struct {
	Files         []File     `json:"files"`
	IsLocked      bool       `json:"isLocked"`
	LockedBy      *string    `json:"lockedBy,omitempty"`
	LockedAt      *time.Time `json:"lockedAt,omitempty"`
	CategoryNotes []Note     `json:"categoryNotes"`
}

// OtherCategory is a client-defined extra category.
type OtherCategory struct {
	CategoryName string         `json:"categoryName"`
	Document     CategoryBucket `json:"document"`
}

// UploadResult is the month as stored after an upload. Warnings name the parts
// of the request that were not saved although the file was.
type UploadResult struct {
	Month    *MonthDocument
	Warnings []string
}

// MonthDocument is everything a client uploaded for one (year, month).
type MonthDocument struct {
	ClientID   string          `json:"clientID"`
	Year       int             `json:"year"`
	Month      int             `json:"month"`
	Sales      CategoryBucket  `json:"sales"`
	Purchase   CategoryBucket  `json:"purchase"`
	Bank       CategoryBucket  `json:"bank"`
	Other      []OtherCategory `json:"other"`
	IsLocked   bool            `json:"isLocked"`
	LockedBy   *string         `json:"lockedBy,omitempty"`
	LockedAt   *time.Time      `json:"lockedAt,omitempty"`
	MonthNotes []Note          `json:"monthNotes"`
}

// Period returns the month this document covers.
func (m *MonthDocument) Period() Period {
	return Period{Year: m.Year, Month: m.Month}
}

// Bucket returns the bucket ref points at, or false if it does not exist yet.
func (m *MonthDocument) Bucket(ref CategoryRef) (*CategoryBucket, bool) {
	switch ref.Type {
	case CategorySales:
		return &m.Sales, true
	case CategoryPurchase:
		return &m.Purchase, true
	case CategoryBank:
		return &m.Bank, true
	case CategoryOther:
		for i := range m.Other {
			if m.Other[i].CategoryName == ref.Name {
				return &m.Other[i].Document, true
			}
		}
	}
	return nil, false
}

// IsCategoryEffectivelyLocked combines the month flag and the category flag.
// The two flags are independent switches; either one blocks uploads.
func IsCategoryEffectivelyLocked(month *MonthDocument, category *CategoryBucket) bool {
	if month == nil {
		return false
	}
	return month.IsLocked || (category != nil && category.IsLocked)
}

// EffectiveLock is IsCategoryEffectivelyLocked for a category addressed by ref.
// A category that does not exist yet is only locked through the month flag.
func (m *MonthDocument) EffectiveLock(ref CategoryRef) bool {
	bucket, _ := m.Bucket(ref)
	return IsCategoryEffectivelyLocked(m, bucket)
}

// MissingRequiredCategories lists the required categories without any file.
func (m *MonthDocument) MissingRequiredCategories() []CategoryType {
	var missing []CategoryType
	for _, c := range RequiredCategories {
		b, _ := m.Bucket(CategoryRef{Type: c})
		if len(b.Files) == 0 {
			missing = append(missing, c)
		}
	}
	return missing
}

// CheckLockTransition decides whether a lock request changes anything.
// It returns apperrors.ErrAlreadyInState when the effective lock or the scope's own
// flag already equals the requested value, and ErrNotFound for an unknown category.
func CheckLockTransition(m *MonthDocument, scope LockScope, ref CategoryRef, lock bool) error {
	switch scope {
	case LockScopeMonth:
		if m.IsLocked == lock {
			return apperrors.ErrAlreadyInState
		}
		return nil
	case LockScopeCategory:
		bucket, ok := m.Bucket(ref)
		if !ok {
			return apperrors.NewNotFoundError("category " + ref.String() + " not found")
		}
		if IsCategoryEffectivelyLocked(m, bucket) == lock || bucket.IsLocked == lock {
			return apperrors.ErrAlreadyInState
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown lock scope %q", apperrors.ErrValidation, scope)
	}
}
