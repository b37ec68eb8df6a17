package services

import (
	"context"
	"time"

	"github.com/amaansodagar786/credence_backend/internal/core/domain"
)

// AuthenticatorSvc checks credentials of any role.
type AuthenticatorSvc interface {
	// Login verifies email and password. Unknown users, wrong passwords and
	// inactive logins all fail with apperrors.ErrUnauthorized.
	Login(ctx context.Context, email, password string) (*domain.User, error)

	// CurrentUser returns the active user behind a session.
	CurrentUser(ctx context.Context, userID string) (*domain.User, error)
}

// TokenSvc issues session tokens.
type TokenSvc interface {
	// GenerateSessionToken signs a token for user and returns it with its expiry.
	GenerateSessionToken(ctx context.Context, user *domain.User) (string, time.Time, error)
}

// AuthSvcFacade combines authentication and token issuing
type AuthSvcFacade interface {
	AuthenticatorSvc
	TokenSvc
}

// ClientAccessAuthorizerSvc decides whether an actor may touch a client's data.
type ClientAccessAuthorizerSvc interface {
	// AuthorizeClientAccess passes admins, the client itself, and employees holding
	// a non-removed assignment for the client. Everyone else gets apperrors.ErrForbidden.
	AuthorizeClientAccess(ctx context.Context, actor domain.Actor, clientID string) error
}
