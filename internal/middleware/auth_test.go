package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"spingate-backend/internal/config"
	"spingate-backend/internal/middleware"
	"spingate-backend/internal/services"
)

func setupAuthRouter(t *testing.T) (*gin.Engine, *services.JWTService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtService := services.NewJWTService(&config.Config{JWTSecret: "auth-test-secret", SessionTTL: time.Hour})

	router := gin.New()
	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware(jwtService))
	protected.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"session_id": c.GetString("session_id"),
			"player_id":  c.GetString("player_id"),
		})
	})
	return router, jwtService
}

func issueCredential(t *testing.T, jwtService *services.JWTService) string {
	t.Helper()
	token, err := jwtService.GenerateToken("CASINO_ALPHA", "PLAYER_9876", "AURORA_STAR", "sess-auth-1", "EUR")
	if err != nil {
		t.Fatalf("Failed to issue credential: %v", err)
	}
	return token
}

func TestAuthAcceptsBearerHeader(t *testing.T) {
	router, jwtService := setupAuthRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+issueCredential(t, jwtService))
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAuthAcceptsQueryToken(t *testing.T) {
	router, jwtService := setupAuthRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/whoami?token="+issueCredential(t, jwtService), nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAuthRejectsMissingCredential(t *testing.T) {
	router, _ := setupAuthRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/whoami", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401, got %d", w.Code)
	}
}

func TestAuthRejectsMalformedHeader(t *testing.T) {
	router, jwtService := setupAuthRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/whoami", nil)
	req.Header.Set("Authorization", "Token "+issueCredential(t, jwtService))
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 for non-Bearer scheme, got %d", w.Code)
	}
}

func TestAuthRejectsInvalidCredential(t *testing.T) {
	router, _ := setupAuthRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/whoami", nil)
	req.Header.Set("Authorization", "Bearer not-a-credential")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401, got %d", w.Code)
	}
}
