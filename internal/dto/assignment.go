package dto

import "github.com/amaansodagar786/credence_backend/internal/core/domain"

// PeriodQuery binds ?year=&month= query parameters.
type PeriodQuery struct {
	Year  int `form:"year" binding:"required,min=2000,max=2100"`
	Month int `form:"month" binding:"required,min=1,max=12"`
}

// Period converts the query into a domain.Period.
func (q PeriodQuery) Period() domain.Period {
	return domain.Period{Year: q.Year, Month: q.Month}
}

// OptionalPeriodQuery binds optional ?year=&month= filters.
type OptionalPeriodQuery struct {
	Year  int `form:"year" binding:"omitempty,min=2000,max=2100"`
	Month int `form:"month" binding:"omitempty,min=1,max=12,required_with=Year"`
}

// Period returns nil unless both parts are set.
func (q OptionalPeriodQuery) Period() *domain.Period {
	if q.Year == 0 || q.Month == 0 {
		return nil
	}
	return &domain.Period{Year: q.Year, Month: q.Month}
}

// AssignClientRequest assigns one task of a client month to an employee.
type AssignClientRequest struct {
	EmployeeID string          `json:"employeeId" binding:"required"`
	ClientID   string          `json:"clientId" binding:"required"`
	Year       int             `json:"year" binding:"required,min=2000,max=2100"`
	Month      int             `json:"month" binding:"required,min=1,max=12"`
	Task       domain.TaskKind `json:"task" binding:"required,taskkind"`
}

// Period returns the month the request addresses.
func (r AssignClientRequest) Period() domain.Period {
	return domain.Period{Year: r.Year, Month: r.Month}
}

// RemoveAssignmentRequest identifies one assignment by its full tuple.
type RemoveAssignmentRequest struct {
	ClientID   string          `json:"clientId" binding:"required"`
	EmployeeID string          `json:"employeeId" binding:"required"`
	Year       int             `json:"year" binding:"required,min=2000,max=2100"`
	Month      int             `json:"month" binding:"required,min=1,max=12"`
	Task       domain.TaskKind `json:"task" binding:"required,taskkind"`
}

// Period returns the month the request addresses.
func (r RemoveAssignmentRequest) Period() domain.Period {
	return domain.Period{Year: r.Year, Month: r.Month}
}

// AccountingDoneRequest is sent by the assigned employee when the work is finished.
type AccountingDoneRequest struct {
	ClientID string          `json:"clientId" binding:"required"`
	Year     int             `json:"year" binding:"required,min=2000,max=2100"`
	Month    int             `json:"month" binding:"required,min=1,max=12"`
	Task     domain.TaskKind `json:"task" binding:"required,taskkind"`
}

// Period returns the month the request addresses.
func (r AccountingDoneRequest) Period() domain.Period {
	return domain.Period{Year: r.Year, Month: r.Month}
}

// AssignmentResponse wraps a single assignment.
type AssignmentResponse struct {
	Message    string                `json:"message"`
	Assignment domain.TaskAssignment `json:"assignment"`
}

// ListAssignmentsResponse wraps a list of assignments.
type ListAssignmentsResponse struct {
	Assignments []domain.TaskAssignment `json:"assignments"`
}

// MessageResponse is the plain success body.
type MessageResponse struct {
	Message string `json:"message"`
}
