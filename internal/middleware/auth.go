package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/amaansodagar786/credence_backend/internal/apperrors"
	"github.com/amaansodagar786/credence_backend/internal/core/domain"
	"github.com/amaansodagar786/credence_backend/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthConfig tells the auth middleware where the session token lives and how to verify it.
type AuthConfig struct {
	JWTSecret  string
	JWTIssuer  string
	CookieName string
}

// AuthMiddleware creates a Gin middleware handler that validates the session token.
// The token is read from the session cookie first, then from a Bearer header.
func AuthMiddleware(cfg AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		tokenString, ok := sessionToken(c, cfg.CookieName)
		if !ok {
			logger.Debug("Session token missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		claims, err := utils.ParseSessionJWT(tokenString, cfg.JWTSecret, cfg.JWTIssuer)
		if err != nil {
			logger.Warn("Invalid session token", slog.String("error", err.Error()))
			msg := "Invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Session has expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		role := domain.Role(claims.Role)
		if !role.Valid() {
			logger.Warn("Session token carries unknown role", slog.String("role", claims.Role))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}

		actor := domain.Actor{UserID: claims.Subject, Role: role}
		enrichedLogger := logger.With(
			slog.String("user_id", actor.UserID),
			slog.String("role", string(actor.Role)),
		)
		ctx := WithActor(c.Request.Context(), actor)
		c.Request = c.Request.WithContext(WithLogger(ctx, enrichedLogger))

		c.Next()
	}
}

// RequireRole rejects authenticated actors whose role is not listed.
// It must run after AuthMiddleware.
func RequireRole(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := GetActorFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		for _, r := range roles {
			if actor.Role == r {
				c.Next()
				return
			}
		}
		GetLoggerFromCtx(c.Request.Context()).Warn("Role not allowed on route",
			slog.String("route", c.FullPath()))
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "You do not have access to this resource"})
	}
}

// AccountResolver loads the user behind a session and rejects deactivated accounts.
type AccountResolver interface {
	CurrentUser(ctx context.Context, userID string) (*domain.User, error)
}

// RequireActiveAccount re-checks the account on every request, so a session
// issued before a deactivation stops working at once. It must run after AuthMiddleware.
func RequireActiveAccount(accounts AccountResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := GetActorFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		if _, err := accounts.CurrentUser(c.Request.Context(), actor.UserID); err != nil {
			status, msg := http.StatusInternalServerError, "Failed to verify account"
			var appErr *apperrors.AppError
			switch {
			case errors.As(err, &appErr) && appErr.Code < http.StatusInternalServerError:
				status, msg = appErr.Code, appErr.Message
			case errors.Is(err, apperrors.ErrUnauthorized):
				status, msg = http.StatusUnauthorized, "Authentication required"
			case errors.Is(err, apperrors.ErrForbidden):
				status, msg = http.StatusForbidden, "Account is deactivated"
			default:
				GetLoggerFromCtx(c.Request.Context()).Error("Failed to verify account", slog.String("error", err.Error()))
			}
			c.AbortWithStatusJSON(status, gin.H{"error": msg})
			return
		}
		c.Next()
	}
}

func sessionToken(c *gin.Context, cookieName string) (string, bool) {
	if cookieName != "" {
		if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
			return cookie, true
		}
	}
	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
