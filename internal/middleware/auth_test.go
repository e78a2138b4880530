package middleware

import (
	"habit_coach_backend/internal/config"
	"habit_coach_backend/internal/model"
	"habit_coach_backend/internal/util"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func apiKeyRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(APIKeyMiddleware(cfg))
	router.GET("/ping", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func TestAPIKeyMiddlewareAccept(t *testing.T) {
	cfg := &config.Config{}
	cfg.API.Key = "test-key"
	router := apiKeyRouter(cfg)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-API-Key", "test-key")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAPIKeyMiddlewareReject(t *testing.T) {
	cfg := &config.Config{}
	cfg.API.Key = "test-key"
	router := apiKeyRouter(cfg)

	tests := []struct {
		name string
		key  string
	}{
		{"missing key", ""},
		{"wrong key", "wrong-key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			if tt.key != "" {
				req.Header.Set("X-API-Key", tt.key)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestAPIKeyMiddlewareUnconfiguredKeyRejectsAll(t *testing.T) {
	// 配置缺失时拒绝一切请求，而不是放行空 key
	cfg := &config.Config{}
	router := apiKeyRouter(cfg)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-API-Key", "")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"

	admin := &model.Admin{Email: "admin@example.com"}
	admin.ID = 1
	token, err := util.GenerateJWT(admin, cfg.JWT.Secret, time.Hour)
	require.NoError(t, err)

	router := gin.New()
	router.Use(AuthMiddleware(cfg))
	router.GET("/admin", func(c *gin.Context) {
		claims := util.GetAdminFromContext(c)
		require.NotNil(t, claims)
		assert.Equal(t, uint(1), claims.AdminID)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddlewareRejectsBadToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"

	router := gin.New()
	router.Use(AuthMiddleware(cfg))
	router.GET("/admin", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"garbage token", "Bearer not-a-token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}
