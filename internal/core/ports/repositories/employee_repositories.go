package repositories

import (
	"context"
	"time"

	"github.com/amaansodagar786/credence_backend/internal/core/domain"
)

// EmployeeReader defines read operations for employees
type EmployeeReader interface {
	// FindEmployeeByID retrieves an employee profile.
	FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error)

	// ListEmployees retrieves a page of employees ordered by name.
	ListEmployees(ctx context.Context, limit int, offset int, includeInactive bool) ([]domain.Employee, error)
}

// EmployeeWriter defines write operations for employees
type EmployeeWriter interface {
	// SaveEmployee persists the employee profile together with its login user.
	SaveEmployee(ctx context.Context, employee domain.Employee, login domain.User) error

	// SetEmployeeActive toggles the employee profile and its login.
	SetEmployeeActive(ctx context.Context, employeeID string, active bool, updatedBy string, now time.Time) error

	// DeactivateEmployee marks the employee and its login inactive and soft-removes its
	// active assignments in one month, all in a single transaction. It returns the number
	// of assignments removed.
	DeactivateEmployee(ctx context.Context, employeeID string, period domain.Period, removedBy string, now time.Time) (int64, error)
}

// EmployeeRepositoryFacade combines all employee-related repository interfaces
type EmployeeRepositoryFacade interface {
	EmployeeReader
	EmployeeWriter
}
