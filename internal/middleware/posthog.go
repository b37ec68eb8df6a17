package middleware

import (
	"net/http"
	"strings"

	"github.com/amaansodagar786/credence_backend/internal/utils"
	"github.com/gin-gonic/gin"
)

// pathsToSkip contains paths that should not be tracked by PostHog
var pathsToSkip = map[string]bool{
	"/health": true,
}

// PosthogMiddleware tracks successful authenticated calls, one event per route.
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !posthogClient.IsInitialized() || pathsToSkip[c.Request.URL.Path] {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		actor, ok := GetActorFromContext(c)
		if !ok {
			return
		}

		// "/admin/clients/:id/month-lock" -> "POST admin_clients_:id_month-lock"
		route := strings.ReplaceAll(strings.TrimPrefix(c.FullPath(), "/"), "/", "_")
		if route == "" {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"role":        string(actor.Role),
			"status_code": c.Writer.Status(),
		}
		if len(c.Params) > 0 {
			params := make(map[string]string, len(c.Params))
			for _, param := range c.Params {
				params[param.Key] = param.Value
			}
			props["params"] = params
		}

		posthogClient.Enqueue(actor.UserID, c.Request.Method+" "+route, props)
	}
}
