package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/amaansodagar786/credence_backend/internal/apperrors"
	"github.com/amaansodagar786/credence_backend/internal/core/domain"
	portsrepo "github.com/amaansodagar786/credence_backend/internal/core/ports/repositories"
	"github.com/amaansodagar786/credence_backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxEmployeeRepository struct {
	BaseRepository
}

func newPgxEmployeeRepository(pool *pgxpool.Pool) portsrepo.EmployeeRepositoryFacade {
	return &PgxEmployeeRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxEmployeeRepository implements portsrepo.EmployeeRepositoryFacade
var _ portsrepo.EmployeeRepositoryFacade = (*PgxEmployeeRepository)(nil)

const employeeSelectQuery = `
SELECT employee_id, name, email, phone, is_active,
       created_at, created_by, last_updated_at, last_updated_by
FROM employees
`

func toDomainEmployee(m models.Employee) domain.Employee {
	return domain.Employee{
		EmployeeID: m.EmployeeID,
		Name:       m.Name,
		Email:      m.Email,
		Phone:      derefString(m.Phone),
		IsActive:   m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func (r *PgxEmployeeRepository) getEmployees(ctx context.Context, filterQuery string, args ...any) ([]domain.Employee, error) {
	rows, err := r.Pool.Query(ctx, employeeSelectQuery+filterQuery, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query employees", err)
	}
	modelEmployees, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Employee])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect employee rows", err)
	}

	employees := make([]domain.Employee, len(modelEmployees))
	for i, m := range modelEmployees {
		employees[i] = toDomainEmployee(m)
	}
	return employees, nil
}

func (r *PgxEmployeeRepository) FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	employees, err := r.getEmployees(ctx, `WHERE employee_id = $1`, employeeID)
	if err != nil {
		return nil, err
	}
	if len(employees) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &employees[0], nil
}

func (r *PgxEmployeeRepository) ListEmployees(ctx context.Context, limit int, offset int, includeInactive bool) ([]domain.Employee, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return r.getEmployees(ctx, `
		WHERE is_active OR $3
		ORDER BY name, employee_id
		LIMIT $1 OFFSET $2`, limit, offset, includeInactive)
}

func (r *PgxEmployeeRepository) SaveEmployee(ctx context.Context, employee domain.Employee, login domain.User) error {
	return r.WithTx(ctx, func(tx pgx.Tx) error {
		if err := insertUser(ctx, tx, login); err != nil {
			return err
		}
		query := `
			INSERT INTO employees (
				employee_id, name, email, phone, is_active,
				created_at, created_by, last_updated_at, last_updated_by
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
		`
		_, err := tx.Exec(ctx, query,
			employee.EmployeeID, employee.Name, employee.Email, optionalString(employee.Phone), employee.IsActive,
			employee.CreatedAt, employee.CreatedBy, employee.LastUpdatedAt, employee.LastUpdatedBy,
		)
		if err != nil {
			if uniqueViolationOn(err, "") {
				return fmt.Errorf("employee %s: %w", employee.EmployeeID, apperrors.ErrDuplicate)
			}
			return fmt.Errorf("failed to save employee %s: %w", employee.EmployeeID, err)
		}
		return nil
	})
}

// SetEmployeeActive toggles the profile and its login together, so a
// deactivated employee can no longer sign in.
func (r *PgxEmployeeRepository) SetEmployeeActive(ctx context.Context, employeeID string, active bool, updatedBy string, now time.Time) error {
	return r.WithTx(ctx, func(tx pgx.Tx) error {
		query := `
			UPDATE employees
			SET is_active = $1, last_updated_at = $2, last_updated_by = $3
			WHERE employee_id = $4;
		`
		cmdTag, err := tx.Exec(ctx, query, active, now, updatedBy, employeeID)
		if err != nil {
			return fmt.Errorf("failed to update employee status: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return fmt.Errorf("employee %s: %w", employeeID, apperrors.ErrNotFound)
		}
		return setUserActive(ctx, tx, employeeID, active, updatedBy, now)
	})
}

// DeactivateEmployee commits the inactive flag and the current-month cascade
// together. Other months keep their assignments.
func (r *PgxEmployeeRepository) DeactivateEmployee(ctx context.Context, employeeID string, period domain.Period, removedBy string, now time.Time) (int64, error) {
	var removed int64
	err := r.WithTx(ctx, func(tx pgx.Tx) error {
		query := `
			UPDATE employees
			SET is_active = FALSE, last_updated_at = $1, last_updated_by = $2
			WHERE employee_id = $3 AND is_active;
		`
		cmdTag, err := tx.Exec(ctx, query, now, removedBy, employeeID)
		if err != nil {
			return fmt.Errorf("failed to deactivate employee: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return fmt.Errorf("employee %s: %w", employeeID, apperrors.ErrNotFound)
		}
		if err := setUserActive(ctx, tx, employeeID, false, removedBy, now); err != nil {
			return err
		}

		cascade := `
			UPDATE task_assignments
			SET is_removed = TRUE, removed_at = $1, removed_by = $2
			WHERE employee_id = $3 AND year = $4 AND month = $5 AND NOT is_removed;
		`
		cmdTag, err = tx.Exec(ctx, cascade, now, removedBy, employeeID, period.Year, period.Month)
		if err != nil {
			return fmt.Errorf("failed to remove employee assignments: %w", err)
		}
		removed = cmdTag.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}
