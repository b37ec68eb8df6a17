package dto

import (
	"time"

	"github.com/amaansodagar786/credence_backend/internal/core/domain"
)

// CreateEmployeeRequest defines data for adding an employee.
type CreateEmployeeRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Phone    string `json:"phone"`
}

// EmployeeResponse defines data returned for an employee.
type EmployeeResponse struct {
	EmployeeID string    `json:"employeeID"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone,omitempty"`
	IsActive   bool      `json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ToEmployeeResponse converts domain.Employee to DTO.
func ToEmployeeResponse(e *domain.Employee) EmployeeResponse {
	return EmployeeResponse{
		EmployeeID: e.EmployeeID,
		Name:       e.Name,
		Email:      e.Email,
		Phone:      e.Phone,
		IsActive:   e.IsActive,
		CreatedAt:  e.CreatedAt,
	}
}

// ListEmployeesResponse wraps a list of employees.
type ListEmployeesResponse struct {
	Employees []EmployeeResponse `json:"employees"`
}

// ToListEmployeesResponse converts a slice of domain.Employee to DTO.
func ToListEmployeesResponse(es []domain.Employee) ListEmployeesResponse {
	list := make([]EmployeeResponse, len(es))
	for i := range es {
		list[i] = ToEmployeeResponse(&es[i])
	}
	return ListEmployeesResponse{Employees: list}
}

// DeactivateEmployeeResponse reports the scoped cascade of a deactivation.
type DeactivateEmployeeResponse struct {
	Message string                    `json:"message"`
	Result  domain.DeactivationResult `json:"result"`
}
