package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/amaansodagar786/credence_backend/internal/apperrors"
	"github.com/amaansodagar786/credence_backend/internal/core/domain"
	"github.com/amaansodagar786/credence_backend/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

var testAuth = AuthConfig{JWTSecret: "test-secret", JWTIssuer: "credence", CookieName: "credence_session"}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(StructuredLoggingMiddleware(slog.Default()))
	r.GET("/whoami", append(handlers, func(c *gin.Context) {
		actor, _ := GetActorFromContext(c)
		c.JSON(http.StatusOK, gin.H{"userID": actor.UserID, "role": actor.Role})
	})...)
	return r
}

func token(t *testing.T, userID string, role domain.Role) string {
	t.Helper()
	tok, _, err := utils.GenerateSessionJWT(userID, string(role), testAuth.JWTSecret, testAuth.JWTIssuer, time.Hour, time.Now())
	require.NoError(t, err)
	return tok
}

func TestAuthMiddlewareAcceptsCookieAndBearer(t *testing.T) {
	r := newRouter(AuthMiddleware(testAuth))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: testAuth.CookieName, Value: token(t, "u-1", domain.RoleAdmin)})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userID":"u-1"`)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, "u-2", domain.RoleClient))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"client"`)
}

func TestAuthMiddlewareRejects(t *testing.T) {
	r := newRouter(AuthMiddleware(testAuth))

	cases := map[string]func(*http.Request){
		"missing":   func(*http.Request) {},
		"malformed": func(req *http.Request) { req.Header.Set("Authorization", "Token abc") },
		"garbage":   func(req *http.Request) { req.Header.Set("Authorization", "Bearer abc") },
		"bad role": func(req *http.Request) {
			req.Header.Set("Authorization", "Bearer "+token(t, "u-1", domain.Role("root")))
		},
	}
	for name, setup := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			setup(req)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestRequireRole(t *testing.T) {
	r := newRouter(AuthMiddleware(testAuth), RequireRole(domain.RoleAdmin))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, "e-1", domain.RoleEmployee))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, "a-1", domain.RoleAdmin))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

type accountsByID map[string]error

func (a accountsByID) CurrentUser(_ context.Context, userID string) (*domain.User, error) {
	if err, ok := a[userID]; ok {
		return nil, err
	}
	return &domain.User{UserID: userID, IsActive: true}, nil
}

func TestRequireActiveAccount(t *testing.T) {
	accounts := accountsByID{
		"e-off":  apperrors.NewAppError(http.StatusForbidden, "Account is deactivated", apperrors.ErrForbidden),
		"e-gone": apperrors.ErrUnauthorized,
		"e-db":   errors.New("connection reset"),
	}
	r := newRouter(AuthMiddleware(testAuth), RequireRole(domain.RoleEmployee), RequireActiveAccount(accounts))

	cases := map[string]int{
		"e-1":    http.StatusOK,
		"e-off":  http.StatusForbidden,
		"e-gone": http.StatusUnauthorized,
		"e-db":   http.StatusInternalServerError,
	}
	for userID, want := range cases {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+token(t, userID, domain.RoleEmployee))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, want, w.Code, userID)
	}
}

func TestRateLimit(t *testing.T) {
	instance := limiter.New(memory.NewStore(), limiter.Rate{Period: time.Minute, Limit: 2})
	r := newRouter(RateLimit(instance))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestLoggerFallsBackToDefault(t *testing.T) {
	assert.Equal(t, slog.Default(), GetLoggerFromCtx(context.Background()))

	custom := slog.New(slog.NewTextHandler(nil, nil))
	assert.Same(t, custom, GetLoggerFromCtx(WithLogger(context.Background(), custom)))

	_, ok := GetActorFromCtx(context.Background())
	assert.False(t, ok)
}
