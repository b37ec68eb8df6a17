package dto

import "github.com/amaansodagar786/credence_backend/internal/core/domain"

// UploadDocumentRequest records an uploaded file. The binary lives in external storage at URL.
type UploadDocumentRequest struct {
	Year         int                 `json:"year" binding:"required,min=2000,max=2100"`
	Month        int                 `json:"month" binding:"required,min=1,max=12"`
	Type         domain.CategoryType `json:"type" binding:"required,categorytype"`
	CategoryName string              `json:"categoryName"`
	FileName     string              `json:"fileName" binding:"required,max=255"`
	URL          string              `json:"url" binding:"required,url"`
	FileSize     int64               `json:"fileSize" binding:"min=0"`
	FileType     string              `json:"fileType"`
	Note         string              `json:"note" binding:"max=2000"`
}

// Period returns the month the upload belongs to.
func (r UploadDocumentRequest) Period() domain.Period {
	return domain.Period{Year: r.Year, Month: r.Month}
}

// Category returns the targeted bucket.
func (r UploadDocumentRequest) Category() domain.CategoryRef {
	return domain.CategoryRef{Type: r.Type, Name: r.CategoryName}
}

// UploadDocumentResponse is the month after an upload. Warnings list request parts
// that were not saved, such as the note.
type UploadDocumentResponse struct {
	Month    domain.MonthDocument `json:"month"`
	Warnings []string             `json:"warnings,omitempty"`
}

// MonthDocumentResponse wraps one month.
type MonthDocumentResponse struct {
	Month domain.MonthDocument `json:"month"`
}
