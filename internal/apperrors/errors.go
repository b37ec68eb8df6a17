package apperrors

import (
	"errors"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates the caller is not authenticated.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the caller is authenticated but may not act on the resource.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is the parent of every business-rule rejection.
var ErrConflict = errors.New("conflict")

// Business-rule rejections. All of them match ErrConflict through errors.Is,
// except ErrDocumentsMissing which is reported as unprocessable.
var (
	ErrAlreadyInState      = &ruleError{msg: "already in requested state", parent: ErrConflict}
	ErrTaskAlreadyAssigned = &ruleError{msg: "task already assigned for this client and period", parent: ErrConflict}
	ErrAccountingDone      = &ruleError{msg: "accounting already marked done for this assignment", parent: ErrConflict}
	ErrLocked              = &ruleError{msg: "month or category is locked", parent: ErrConflict}
	ErrDocumentsMissing    = errors.New("documents missing")
)

type ruleError struct {
	msg    string
	parent error
}

func (e *ruleError) Error() string { return e.msg }
func (e *ruleError) Unwrap() error { return e.parent }

// AppError carries an HTTP status and a user facing message next to the cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// NewAppError builds an AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError returns an AppError that matches ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: http.StatusNotFound, Message: message, Err: ErrNotFound}
}

// NewConflictError returns an AppError that matches ErrDuplicate.
func NewConflictError(message string) *AppError {
	return &AppError{Code: http.StatusConflict, Message: message, Err: ErrDuplicate}
}

// NewValidationFailedError returns an AppError that matches ErrValidation.
func NewValidationFailedError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message, Err: ErrValidation}
}

// NewRuleError wraps one of the business-rule sentinels with a specific message
// that is shown to the user verbatim.
func NewRuleError(rule error, message string) *AppError {
	code := http.StatusConflict
	if errors.Is(rule, ErrDocumentsMissing) {
		code = http.StatusUnprocessableEntity
	}
	return &AppError{Code: code, Message: message, Err: rule}
}
