package middleware

import (
	"context"
	"log/slog"

	"github.com/amaansodagar786/credence_backend/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// contextKey is the type of keys stored in the request context.
// Using a custom type prevents collisions.
type contextKey string

const (
	loggerCtxKey = contextKey("logger")
	actorCtxKey  = contextKey("actor")
)

// WithLogger returns a copy of ctx carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerCtxKey, logger)
}

// GetLoggerFromCtx retrieves the request-scoped logger from a standard context.
// It returns the default logger if none is found.
func GetLoggerFromCtx(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerCtxKey).(*slog.Logger); ok && logger != nil {
			return logger
		}
	}
	return slog.Default()
}

// WithActor returns a copy of ctx carrying the authenticated actor.
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorCtxKey, actor)
}

// GetActorFromCtx retrieves the authenticated actor from a standard context.
func GetActorFromCtx(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorCtxKey).(domain.Actor)
	return actor, ok && actor.UserID != ""
}

// GetActorFromContext retrieves the authenticated actor from the Gin request.
func GetActorFromContext(c *gin.Context) (domain.Actor, bool) {
	return GetActorFromCtx(c.Request.Context())
}
