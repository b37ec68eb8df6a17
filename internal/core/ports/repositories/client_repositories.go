package repositories

import (
	"context"
	"time"

	"github.com/amaansodagar786/credence_backend/internal/core/domain"
)

// ClientReader defines read operations for client profiles
type ClientReader interface {
	// FindClientByID retrieves a client profile.
	FindClientByID(ctx context.Context, clientID string) (*domain.Client, error)

	// ListClients retrieves a page of clients ordered by name.
	ListClients(ctx context.Context, limit int, offset int, includeInactive bool) ([]domain.Client, error)
}

// ClientWriter defines write operations for client profiles
type ClientWriter interface {
	// SaveClient persists the client profile together with its login user.
	SaveClient(ctx context.Context, client domain.Client, login domain.User) error

	// SetClientActive toggles the client profile and its login.
	SetClientActive(ctx context.Context, clientID string, active bool, updatedBy string, now time.Time) error
}

// ClientRepositoryFacade combines all client-related repository interfaces
type ClientRepositoryFacade interface {
	ClientReader
	ClientWriter
}
