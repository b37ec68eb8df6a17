package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/amaansodagar786/credence_backend/internal/apperrors"
	"github.com/amaansodagar786/credence_backend/internal/core/domain"
	portsrepo "github.com/amaansodagar786/credence_backend/internal/core/ports/repositories"
	"github.com/amaansodagar786/credence_backend/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

// activeAssignmentIndex is the partial unique index on non-removed assignments.
const activeAssignmentIndex = "task_assignments_active_key"

type PgxAssignmentRepository struct {
	BaseRepository
}

func newPgxAssignmentRepository(pool *pgxpool.Pool) portsrepo.AssignmentRepositoryFacade {
	return &PgxAssignmentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAssignmentRepository implements portsrepo.AssignmentRepositoryFacade
var _ portsrepo.AssignmentRepositoryFacade = (*PgxAssignmentRepository)(nil)

const assignmentSelectQuery = `
SELECT assignment_id, client_id, employee_id, employee_name, client_name, year, month, task,
       accounting_done, accounting_done_at, assigned_at, assigned_by,
       is_removed, removed_at, removed_by
FROM task_assignments
`

func toDomainAssignment(m models.TaskAssignment) domain.TaskAssignment {
	return domain.TaskAssignment{
		AssignmentID:     m.AssignmentID,
		ClientID:         m.ClientID,
		EmployeeID:       m.EmployeeID,
		EmployeeName:     m.EmployeeName,
		ClientName:       m.ClientName,
		Year:             m.Year,
		Month:            m.Month,
		Task:             domain.TaskKind(m.Task),
		AccountingDone:   m.AccountingDone,
		AccountingDoneAt: m.AccountingDoneAt,
		AssignedAt:       m.AssignedAt,
		AssignedBy:       m.AssignedBy,
		IsRemoved:        m.IsRemoved,
		RemovedAt:        m.RemovedAt,
		RemovedBy:        m.RemovedBy,
	}
}

func (r *PgxAssignmentRepository) getAssignments(ctx context.Context, filterQuery string, args ...any) ([]domain.TaskAssignment, error) {
	modelAssignments, err := collect[models.TaskAssignment](ctx, r.Pool, assignmentSelectQuery+filterQuery, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query task assignments", err)
	}
	assignments := make([]domain.TaskAssignment, len(modelAssignments))
	for i, m := range modelAssignments {
		assignments[i] = toDomainAssignment(m)
	}
	return assignments, nil
}

func (r *PgxAssignmentRepository) FindActiveAssignment(ctx context.Context, clientID string, period domain.Period, task domain.TaskKind) (*domain.TaskAssignment, error) {
	assignments, err := r.getAssignments(ctx, `
		WHERE client_id = $1 AND year = $2 AND month = $3 AND task = $4 AND NOT is_removed`,
		clientID, period.Year, period.Month, string(task))
	if err != nil {
		return nil, err
	}
	if len(assignments) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &assignments[0], nil
}

func (r *PgxAssignmentRepository) ListActiveAssignments(ctx context.Context, clientID string, period domain.Period) ([]domain.TaskAssignment, error) {
	return r.getAssignments(ctx, `
		WHERE client_id = $1 AND year = $2 AND month = $3 AND NOT is_removed
		ORDER BY assigned_at`, clientID, period.Year, period.Month)
}

func (r *PgxAssignmentRepository) ListAssignmentsByClient(ctx context.Context, clientID string) ([]domain.TaskAssignment, error) {
	return r.getAssignments(ctx, `
		WHERE client_id = $1
		ORDER BY year DESC, month DESC, assigned_at DESC`, clientID)
}

func (r *PgxAssignmentRepository) ListAssignmentsByEmployee(ctx context.Context, employeeID string, period *domain.Period) ([]domain.TaskAssignment, error) {
	year, month := periodArgs(period)
	return r.getAssignments(ctx, `
		WHERE employee_id = $1 AND NOT is_removed
		  AND ($2::int IS NULL OR year = $2)
		  AND ($3::int IS NULL OR month = $3)
		ORDER BY year DESC, month DESC, client_name, task`, employeeID, year, month)
}

func (r *PgxAssignmentRepository) HasAssignmentForClient(ctx context.Context, employeeID, clientID string) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM task_assignments
			WHERE employee_id = $1 AND client_id = $2 AND NOT is_removed
		);`, employeeID, clientID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check assignment for client: %w", err)
	}
	return exists, nil
}

// SaveAssignment relies on the partial unique index to reject a second active
// assignment written concurrently.
func (r *PgxAssignmentRepository) SaveAssignment(ctx context.Context, a domain.TaskAssignment) error {
	query := `
		INSERT INTO task_assignments (
			assignment_id, client_id, employee_id, employee_name, client_name, year, month, task,
			accounting_done, accounting_done_at, assigned_at, assigned_by, is_removed
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, FALSE);
	`
	_, err := r.Pool.Exec(ctx, query,
		a.AssignmentID, a.ClientID, a.EmployeeID, a.EmployeeName, a.ClientName, a.Year, a.Month, string(a.Task),
		a.AccountingDone, a.AccountingDoneAt, a.AssignedAt, a.AssignedBy,
	)
	if err != nil {
		if uniqueViolationOn(err, activeAssignmentIndex) {
			return apperrors.ErrTaskAlreadyAssigned
		}
		if uniqueViolationOn(err, "") {
			return fmt.Errorf("assignment %s: %w", a.AssignmentID, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save assignment: %w", err)
	}
	return nil
}

func (r *PgxAssignmentRepository) MarkAssignmentRemoved(ctx context.Context, assignmentID string, removedBy string, now time.Time) error {
	query := `
		UPDATE task_assignments
		SET is_removed = TRUE, removed_at = $1, removed_by = $2
		WHERE assignment_id = $3 AND NOT is_removed;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, now, removedBy, assignmentID)
	if err != nil {
		return fmt.Errorf("failed to remove assignment: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("assignment %s: %w", assignmentID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxAssignmentRepository) MarkAccountingDone(ctx context.Context, assignmentID string, now time.Time) error {
	query := `
		UPDATE task_assignments
		SET accounting_done = TRUE, accounting_done_at = $1
		WHERE assignment_id = $2 AND NOT is_removed;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, now, assignmentID)
	if err != nil {
		return fmt.Errorf("failed to mark accounting done: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("assignment %s: %w", assignmentID, apperrors.ErrNotFound)
	}
	return nil
}
