package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/amaansodagar786/credence_backend/internal/apperrors"
	"github.com/amaansodagar786/credence_backend/internal/core/domain"
	portsrepo "github.com/amaansodagar786/credence_backend/internal/core/ports/repositories"
	"github.com/amaansodagar786/credence_backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(pool *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

const userSelectQuery = `
SELECT user_id, name, email, password_hash, role, is_active,
       created_at, created_by, last_updated_at, last_updated_by
FROM users
`

func toModelUser(d domain.User) models.User {
	return models.User{
		UserID:       d.UserID,
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Role:         string(d.Role),
		IsActive:     d.IsActive,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:       m.UserID,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Role:         domain.Role(m.Role),
		IsActive:     m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func (r *PgxUserRepository) findOne(ctx context.Context, filter string, arg any) (*domain.User, error) {
	rows, err := r.Pool.Query(ctx, userSelectQuery+filter, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	modelUser, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.User])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to collect user row: %w", err)
	}
	user := toDomainUser(modelUser)
	return &user, nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.findOne(ctx, `WHERE user_id = $1`, userID)
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, `WHERE lower(email) = lower($1)`, email)
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	return insertUser(ctx, r.Pool, user)
}

// insertUser writes a login row. It is shared by the client and employee
// repositories, which create the login in the same transaction as the profile.
func insertUser(ctx context.Context, q querier, user domain.User) error {
	m := toModelUser(user)
	query := `
		INSERT INTO users (
			user_id, name, email, password_hash, role, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := q.Exec(ctx, query,
		m.UserID, m.Name, m.Email, m.PasswordHash, m.Role, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if uniqueViolationOn(err, "") {
			return fmt.Errorf("user %s: %w", m.Email, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (r *PgxUserRepository) SetUserActive(ctx context.Context, userID string, active bool, updatedBy string, now time.Time) error {
	return setUserActive(ctx, r.Pool, userID, active, updatedBy, now)
}

func setUserActive(ctx context.Context, q querier, userID string, active bool, updatedBy string, now time.Time) error {
	query := `
		UPDATE users
		SET is_active = $1, last_updated_at = $2, last_updated_by = $3
		WHERE user_id = $4;
	`
	cmdTag, err := q.Exec(ctx, query, active, now, updatedBy, userID)
	if err != nil {
		return fmt.Errorf("failed to update user status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", userID, apperrors.ErrNotFound)
	}
	return nil
}
