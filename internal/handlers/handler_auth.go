package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/amaansodagar786/credence_backend/internal/core/ports/services"
	"github.com/amaansodagar786/credence_backend/internal/dto"
	"github.com/amaansodagar786/credence_backend/internal/middleware"
	"github.com/amaansodagar786/credence_backend/internal/platform/config"
	"github.com/gin-gonic/gin"
)

// authHandler handles login, logout and session lookups for every role.
type authHandler struct {
	authService  portssvc.AuthSvcFacade
	cookieName   string
	cookieSecure bool
}

func newAuthHandler(as portssvc.AuthSvcFacade, cfg *config.Config) *authHandler {
	return &authHandler{
		authService:  as,
		cookieName:   cfg.SessionCookieName,
		cookieSecure: cfg.SessionCookieSecure,
	}
}

// registerAuthRoutes sets up the routes for authentication. Login is rate limited
// per client IP; me needs a session.
func registerAuthRoutes(r *gin.Engine, authService portssvc.AuthSvcFacade, cfg *config.Config, loginLimit gin.HandlerFunc, requireSession gin.HandlerFunc) {
	h := newAuthHandler(authService, cfg)

	auth := r.Group("/auth")
	{
		auth.POST("/login", loginLimit, h.login)
		auth.POST("/logout", h.logout)
		auth.GET("/me", requireSession, h.me)
	}
}

// login godoc
// @Summary Log in
// @Description Checks the credentials of an admin, employee or client and sets the HttpOnly session cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Account deactivated"
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, "login request", err)
		return
	}

	user, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		handleServiceError(c, err, "Failed to log in")
		return
	}

	token, expiresAt, err := h.authService.GenerateSessionToken(c.Request.Context(), user)
	if err != nil {
		logger.Error("Failed to sign session token", slog.String("user_id", user.UserID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate session"})
		return
	}

	h.setSessionCookie(c, token, int(time.Until(expiresAt).Seconds()))
	logger.Info("User logged in", slog.String("user_id", user.UserID), slog.String("role", string(user.Role)))
	c.JSON(http.StatusOK, dto.LoginResponse{User: dto.ToUserResponse(user), ExpiresAt: expiresAt})
}

// logout godoc
// @Summary Log out
// @Description Clears the session cookie.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Router /auth/logout [post]
func (h *authHandler) logout(c *gin.Context) {
	h.setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Logged out"})
}

// me godoc
// @Summary Current user
// @Description Returns the user behind the session cookie.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /auth/me [get]
func (h *authHandler) me(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	user, err := h.authService.CurrentUser(c.Request.Context(), actor.UserID)
	if err != nil {
		handleServiceError(c, err, "Failed to load current user")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// The frontend lives on another origin, so a secure cookie must be SameSite=None
// to travel with credentialed requests.
func (h *authHandler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	if h.cookieSecure {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteLaxMode)
	}
	c.SetCookie(h.cookieName, value, maxAge, "/", "", h.cookieSecure, true)
}
