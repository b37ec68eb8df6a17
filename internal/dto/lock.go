package dto

import "github.com/amaansodagar786/credence_backend/internal/core/domain"

// MonthLockRequest toggles the whole-month lock.
type MonthLockRequest struct {
	Year  int   `json:"year" binding:"required,min=2000,max=2100"`
	Month int   `json:"month" binding:"required,min=1,max=12"`
	Lock  *bool `json:"lock" binding:"required"`
}

// FileLockRequest toggles the lock of one category.
type FileLockRequest struct {
	Year         int                 `json:"year" binding:"required,min=2000,max=2100"`
	Month        int                 `json:"month" binding:"required,min=1,max=12"`
	Type         domain.CategoryType `json:"type" binding:"required,categorytype"`
	CategoryName string              `json:"categoryName"`
	Lock         *bool               `json:"lock" binding:"required"`
}

// LockResponse carries the re-read month after a lock change.
type LockResponse struct {
	Message string               `json:"message"`
	Month   domain.MonthDocument `json:"month"`
}
