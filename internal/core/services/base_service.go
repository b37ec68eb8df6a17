package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/amaansodagar786/credence_backend/internal/apperrors"
	"github.com/amaansodagar786/credence_backend/internal/core/domain"
	portssvc "github.com/amaansodagar786/credence_backend/internal/core/ports/services"
	"github.com/amaansodagar786/credence_backend/internal/events"
	"github.com/amaansodagar786/credence_backend/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	ClientAuthorizer portssvc.ClientAccessAuthorizerSvc
	Events           events.Publisher
	Clock            func() time.Time
}

// ServiceOption configures the shared parts of a service
type ServiceOption func(*BaseService)

// WithClock replaces time.Now, mainly for tests around month boundaries.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *BaseService) {
		s.Clock = clock
	}
}

// WithEventPublisher adds the publisher state changes are sent to.
func WithEventPublisher(publisher events.Publisher) ServiceOption {
	return func(s *BaseService) {
		s.Events = publisher
	}
}

// WithClientAuthorizer adds the authorizer used for employee access checks.
func WithClientAuthorizer(authorizer portssvc.ClientAccessAuthorizerSvc) ServiceOption {
	return func(s *BaseService) {
		s.ClientAuthorizer = authorizer
	}
}

func (s *BaseService) apply(options []ServiceOption) {
	for _, option := range options {
		option(s)
	}
	if s.Clock == nil {
		s.Clock = time.Now
	}
	if s.Events == nil {
		s.Events = events.NoopPublisher{}
	}
}

// Now returns the current time from the configured clock in UTC.
func (s *BaseService) Now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock().UTC()
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// Publish sends a state-change event. A broker failure is logged and never fails the request.
func (s *BaseService) Publish(ctx context.Context, t events.Type, clientID string, actor domain.Actor, data map[string]any) {
	if s.Events == nil {
		return
	}
	event := events.New(t, clientID, actor.UserID, s.Now(), data)
	if err := s.Events.Publish(ctx, event); err != nil {
		s.LogError(ctx, err, "Failed to publish event",
			slog.String("event_type", string(t)),
			slog.String("client_id", clientID))
	}
}

// RequireRole checks that the actor is authenticated and has one of roles.
func (s *BaseService) RequireRole(actor domain.Actor, roles ...domain.Role) error {
	if actor.UserID == "" {
		return apperrors.ErrUnauthorized
	}
	for _, r := range roles {
		if actor.Role == r {
			return nil
		}
	}
	return apperrors.ErrForbidden
}

// AuthorizeClient checks that the actor may act on the client's documents and notes.
func (s *BaseService) AuthorizeClient(ctx context.Context, actor domain.Actor, clientID string) error {
	if s.ClientAuthorizer != nil {
		return s.ClientAuthorizer.AuthorizeClientAccess(ctx, actor, clientID)
	}
	if actor.UserID == "" {
		return apperrors.ErrUnauthorized
	}
	// without an authorizer only admins and the client itself pass
	if actor.Role == domain.RoleAdmin || (actor.Role == domain.RoleClient && actor.UserID == clientID) {
		return nil
	}
	s.LogDebug(ctx, "No client access authorizer configured, access denied",
		slog.String("user_id", actor.UserID),
		slog.String("client_id", clientID))
	return apperrors.ErrForbidden
}
