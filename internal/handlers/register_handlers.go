package handlers

import (
	"net/http"
	"time"

	"github.com/amaansodagar786/credence_backend/cmd/docs"
	"github.com/amaansodagar786/credence_backend/internal/core/domain"
	portssvc "github.com/amaansodagar786/credence_backend/internal/core/ports/services"
	"github.com/amaansodagar786/credence_backend/internal/middleware"
	"github.com/amaansodagar786/credence_backend/internal/platform/config"
	"github.com/amaansodagar786/credence_backend/internal/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// RouterDeps are the request-path collaborators built next to the services.
type RouterDeps struct {
	// LoginLimiter throttles POST /auth/login per client IP. Nil disables throttling.
	LoginLimiter *limiter.Limiter
	Posthog      *utils.PosthogClientWrapper
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	deps RouterDeps,
) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendBaseURL},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	requireSession := middleware.AuthMiddleware(middleware.AuthConfig{
		JWTSecret:  cfg.JWTSecret,
		JWTIssuer:  cfg.JWTIssuer,
		CookieName: cfg.SessionCookieName,
	})

	loginLimit := func(c *gin.Context) { c.Next() }
	if deps.LoginLimiter != nil {
		loginLimit = middleware.RateLimit(deps.LoginLimiter)
	}
	registerAuthRoutes(r, services.Auth, cfg, loginLimit, requireSession)

	setupRoleRoutes(r, services, requireSession, middleware.PosthogMiddleware(deps.Posthog))

	setupSwaggerRoutes(r, cfg)
}

// setupRoleRoutes mounts one group per role. Every group needs a session, the matching role and an active account.
func setupRoleRoutes(r *gin.Engine, services *portssvc.ServiceContainer, requireSession, track gin.HandlerFunc) {
	active := middleware.RequireActiveAccount(services.Auth)

	admin := r.Group("/admin", requireSession, middleware.RequireRole(domain.RoleAdmin), active, track)
	registerClientRoutes(admin, services.Client, services.Lock)
	registerNoteRoutes(admin, services.Note, noteRoutes{byClient: true})

	adminEmployee := r.Group("/admin-employee", requireSession, middleware.RequireRole(domain.RoleAdmin), active, track)
	registerEmployeeAdminRoutes(adminEmployee, services.Employee, services.Assignment)

	employee := r.Group("/employee", requireSession, middleware.RequireRole(domain.RoleEmployee), active, track)
	registerEmployeeRoutes(employee, services.Assignment)
	registerNoteRoutes(employee, services.Note, noteRoutes{canAdd: true, byClient: true})

	client := r.Group("/client", requireSession, middleware.RequireRole(domain.RoleClient), active, track)
	registerDocumentRoutes(client, services.Document)
	registerNoteRoutes(client, services.Note, noteRoutes{canAdd: true})
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
