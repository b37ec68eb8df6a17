package services

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/amaansodagar786/credence_backend/internal/apperrors"
	"github.com/amaansodagar786/credence_backend/internal/core/domain"
	portsrepo "github.com/amaansodagar786/credence_backend/internal/core/ports/repositories"
	portssvc "github.com/amaansodagar786/credence_backend/internal/core/ports/services"
	"github.com/amaansodagar786/credence_backend/internal/platform/config"
	"github.com/amaansodagar786/credence_backend/internal/utils"
)

// authService implements the AuthSvcFacade for logins of every role.
type authService struct {
	BaseService
	cfg      *config.Config
	userRepo portsrepo.UserReader
}

// NewAuthService creates a new instance of authService.
func NewAuthService(cfg *config.Config, userRepo portsrepo.UserReader, options ...ServiceOption) portssvc.AuthSvcFacade {
	svc := &authService{cfg: cfg, userRepo: userRepo}
	svc.apply(options)
	return svc
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

func invalidCredentials() error {
	return apperrors.NewAppError(http.StatusUnauthorized, "Invalid email or password", apperrors.ErrUnauthorized)
}

// Login checks the credentials and that the login is active.
func (s *authService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			utils.CheckPasswordHash(password, "")
			return nil, invalidCredentials()
		}
		s.LogError(ctx, err, "Failed to find user for login")
		return nil, err
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		s.LogInfo(ctx, "Login failed, wrong password", slog.String("user_id", user.UserID))
		return nil, invalidCredentials()
	}
	if !user.IsActive {
		s.LogInfo(ctx, "Login refused, account inactive", slog.String("user_id", user.UserID))
		return nil, apperrors.NewAppError(http.StatusForbidden, "Account is deactivated", apperrors.ErrForbidden)
	}

	s.LogInfo(ctx, "User logged in",
		slog.String("user_id", user.UserID),
		slog.String("role", string(user.Role)))
	return user, nil
}

// CurrentUser returns the active user behind a session.
func (s *authService) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		s.LogError(ctx, err, "Failed to load current user", slog.String("user_id", userID))
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.NewAppError(http.StatusForbidden, "Account is deactivated", apperrors.ErrForbidden)
	}
	return user, nil
}

// GenerateSessionToken signs a session token carrying the user's role.
func (s *authService) GenerateSessionToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	token, expiresAt, err := utils.GenerateSessionJWT(user.UserID, string(user.Role), s.cfg.JWTSecret, s.cfg.JWTIssuer, s.cfg.JWTExpiryDuration, s.Now())
	if err != nil {
		s.LogError(ctx, err, "Failed to sign session token", slog.String("user_id", user.UserID))
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}
