package services

import (
	"context"

	"github.com/amaansodagar786/credence_backend/internal/core/domain"
	"github.com/amaansodagar786/credence_backend/internal/dto"
)

// AssignmentReaderSvc defines read operations for task allocation
type AssignmentReaderSvc interface {
	// GetTaskStatus reports every task of the month with its assignee and the tasks still available.
	GetTaskStatus(ctx context.Context, clientID string, period domain.Period) (*domain.TaskStatus, error)

	// CheckClientDocuments reports whether sales, purchase and bank each hold a file.
	CheckClientDocuments(ctx context.Context, clientID string, period domain.Period) (*domain.DocumentCheck, error)

	// ListEmployeeAssignments returns the employee's active work, optionally for one month.
	ListEmployeeAssignments(ctx context.Context, employeeID string, period *domain.Period) ([]domain.TaskAssignment, error)
}

// AssignmentWriterSvc defines write operations for task allocation
type AssignmentWriterSvc interface {
	// Assign gives one task of a client month to an employee.
	Assign(ctx context.Context, actor domain.Actor, req dto.AssignClientRequest) (*domain.TaskAssignment, error)

	// RemoveAssignment soft-removes the active assignment matching the full tuple.
	RemoveAssignment(ctx context.Context, actor domain.Actor, req dto.RemoveAssignmentRequest) error

	// MarkAccountingDone is called by the assigned employee once the task is finished.
	MarkAccountingDone(ctx context.Context, actor domain.Actor, req dto.AccountingDoneRequest) (*domain.TaskAssignment, error)
}

// EmployeeLifecycleSvc toggles employees together with their current assignments
type EmployeeLifecycleSvc interface {
	// DeactivateEmployee marks the employee inactive and soft-removes its active
	// assignments of the current month. Other months are left as they are.
	DeactivateEmployee(ctx context.Context, actor domain.Actor, employeeID string) (*domain.DeactivationResult, error)

	// ActivateEmployee re-activates the employee. Removed assignments stay removed.
	ActivateEmployee(ctx context.Context, actor domain.Actor, employeeID string) (*domain.Employee, error)
}

// AssignmentSvcFacade combines all assignment-related service interfaces
type AssignmentSvcFacade interface {
	AssignmentReaderSvc
	AssignmentWriterSvc
	EmployeeLifecycleSvc
	ClientAccessAuthorizerSvc
}
