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

type PgxClientRepository struct {
	BaseRepository
}

func newPgxClientRepository(pool *pgxpool.Pool) portsrepo.ClientRepositoryFacade {
	return &PgxClientRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxClientRepository implements portsrepo.ClientRepositoryFacade
var _ portsrepo.ClientRepositoryFacade = (*PgxClientRepository)(nil)

const clientSelectQuery = `
SELECT client_id, name, email, phone, plan_selected, is_active,
       created_at, created_by, last_updated_at, last_updated_by
FROM clients
`

func toDomainClient(m models.Client) domain.Client {
	return domain.Client{
		ClientID:     m.ClientID,
		Name:         m.Name,
		Email:        m.Email,
		Phone:        derefString(m.Phone),
		PlanSelected: derefString(m.PlanSelected),
		IsActive:     m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func (r *PgxClientRepository) getClients(ctx context.Context, filterQuery string, args ...any) ([]domain.Client, error) {
	rows, err := r.Pool.Query(ctx, clientSelectQuery+filterQuery, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query clients", err)
	}
	modelClients, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Client])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect client rows", err)
	}

	clients := make([]domain.Client, len(modelClients))
	for i, m := range modelClients {
		clients[i] = toDomainClient(m)
	}
	return clients, nil
}

func (r *PgxClientRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	clients, err := r.getClients(ctx, `WHERE client_id = $1`, clientID)
	if err != nil {
		return nil, err
	}
	if len(clients) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &clients[0], nil
}

func (r *PgxClientRepository) ListClients(ctx context.Context, limit int, offset int, includeInactive bool) ([]domain.Client, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return r.getClients(ctx, `
		WHERE is_active OR $3
		ORDER BY name, client_id
		LIMIT $1 OFFSET $2`, limit, offset, includeInactive)
}

// SaveClient inserts the login and the profile in one transaction.
func (r *PgxClientRepository) SaveClient(ctx context.Context, client domain.Client, login domain.User) error {
	return r.WithTx(ctx, func(tx pgx.Tx) error {
		if err := insertUser(ctx, tx, login); err != nil {
			return err
		}
		query := `
			INSERT INTO clients (
				client_id, name, email, phone, plan_selected, is_active,
				created_at, created_by, last_updated_at, last_updated_by
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
		`
		_, err := tx.Exec(ctx, query,
			client.ClientID, client.Name, client.Email,
			optionalString(client.Phone), optionalString(client.PlanSelected), client.IsActive,
			client.CreatedAt, client.CreatedBy, client.LastUpdatedAt, client.LastUpdatedBy,
		)
		if err != nil {
			if uniqueViolationOn(err, "") {
				return fmt.Errorf("client %s: %w", client.ClientID, apperrors.ErrDuplicate)
			}
			return fmt.Errorf("failed to save client %s: %w", client.ClientID, err)
		}
		return nil
	})
}

// SetClientActive toggles the profile and its login together.
func (r *PgxClientRepository) SetClientActive(ctx context.Context, clientID string, active bool, updatedBy string, now time.Time) error {
	return r.WithTx(ctx, func(tx pgx.Tx) error {
		query := `
			UPDATE clients
			SET is_active = $1, last_updated_at = $2, last_updated_by = $3
			WHERE client_id = $4;
		`
		cmdTag, err := tx.Exec(ctx, query, active, now, updatedBy, clientID)
		if err != nil {
			return fmt.Errorf("failed to update client status: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return fmt.Errorf("client %s: %w", clientID, apperrors.ErrNotFound)
		}
		return setUserActive(ctx, tx, clientID, active, updatedBy, now)
	})
}
