package repositories

import (
	"context"
	"time"

	"github.com/amaansodagar786/credence_backend/internal/core/domain"
)

// AssignmentReader defines read operations for task assignments
type AssignmentReader interface {
	// FindActiveAssignment returns the non-removed assignment of a task, or apperrors.ErrNotFound.
	FindActiveAssignment(ctx context.Context, clientID string, period domain.Period, task domain.TaskKind) (*domain.TaskAssignment, error)

	// ListActiveAssignments returns the non-removed assignments of one client month.
	ListActiveAssignments(ctx context.Context, clientID string, period domain.Period) ([]domain.TaskAssignment, error)

	// ListAssignmentsByClient returns the full history of a client, removed rows included.
	ListAssignmentsByClient(ctx context.Context, clientID string) ([]domain.TaskAssignment, error)

	// ListAssignmentsByEmployee returns an employee's non-removed assignments, optionally for one month.
	ListAssignmentsByEmployee(ctx context.Context, employeeID string, period *domain.Period) ([]domain.TaskAssignment, error)

	// HasAssignmentForClient reports whether the employee holds any non-removed assignment for the client.
	HasAssignmentForClient(ctx context.Context, employeeID, clientID string) (bool, error)
}

// AssignmentWriter defines write operations for task assignments
type AssignmentWriter interface {
	// SaveAssignment inserts an assignment. A concurrent active duplicate fails with apperrors.ErrTaskAlreadyAssigned.
	SaveAssignment(ctx context.Context, assignment domain.TaskAssignment) error

	// MarkAssignmentRemoved soft-removes one assignment row.
	MarkAssignmentRemoved(ctx context.Context, assignmentID string, removedBy string, now time.Time) error

	// MarkAccountingDone flags the work of one assignment as finished.
	MarkAccountingDone(ctx context.Context, assignmentID string, now time.Time) error
}

// AssignmentRepositoryFacade combines all assignment-related repository interfaces
type AssignmentRepositoryFacade interface {
	AssignmentReader
	AssignmentWriter
}
