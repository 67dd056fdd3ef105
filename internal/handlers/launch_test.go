package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"spingate-backend/internal/config"
	"spingate-backend/internal/handlers"
	"spingate-backend/internal/models"
	"spingate-backend/internal/services"
)

const launchPartnerSecret = "alpha-launch-secret"

func setupLaunch(t *testing.T) (*gin.Engine, *services.JWTService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtService := services.NewJWTService(&config.Config{JWTSecret: "launch-test-secret", SessionTTL: time.Hour})
	partners := services.NewStaticPartnerStore([]models.PartnerRecord{
		{ID: "CASINO_ALPHA", Secret: launchPartnerSecret, WalletURL: "http://wallet.local"},
	})

	handler := handlers.NewLaunchHandler(jwtService, partners, "/game.html")
	router := gin.New()
	router.GET("/launch", handler.Launch)
	return router, jwtService
}

func launchURL(partnerID, playerID, gameCode, token string) string {
	params := url.Values{
		"partner_id": {partnerID},
		"player_id":  {playerID},
		"game_code":  {gameCode},
		"token":      {token},
	}
	return "/launch?" + params.Encode()
}

func TestLaunchIssuesSessionCredential(t *testing.T) {
	router, jwtService := setupLaunch(t)

	token := handlers.LaunchToken("CASINO_ALPHA", "PLAYER_9876", "AURORA_STAR", launchPartnerSecret)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, launchURL("CASINO_ALPHA", "PLAYER_9876", "AURORA_STAR", token), nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Fatalf("Expected 302, got %d: %s", w.Code, w.Body.String())
	}

	location, err := url.Parse(w.Header().Get("Location"))
	if err != nil {
		t.Fatalf("Failed to parse redirect location: %v", err)
	}
	if !strings.HasPrefix(location.Path, "/game.html") {
		t.Errorf("Expected redirect to game client, got %s", location.Path)
	}

	claims, err := jwtService.ValidateToken(location.Query().Get("token"))
	if err != nil {
		t.Fatalf("Redirect should carry a valid session credential: %v", err)
	}
	if claims.PartnerID != "CASINO_ALPHA" || claims.PlayerID != "PLAYER_9876" || claims.GameCode != "AURORA_STAR" {
		t.Errorf("Unexpected claims: %+v", claims)
	}
	if claims.SessionID == "" {
		t.Error("Session credential must carry a session id")
	}
	if claims.Currency != "EUR" {
		t.Errorf("Expected default currency EUR, got %s", claims.Currency)
	}
}

func TestLaunchRejectsBadToken(t *testing.T) {
	router, _ := setupLaunch(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, launchURL("CASINO_ALPHA", "PLAYER_9876", "AURORA_STAR", "deadbeef"), nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401, got %d", w.Code)
	}
}

func TestLaunchRejectsTokenForOtherPlayer(t *testing.T) {
	router, _ := setupLaunch(t)

	// A token minted for one player cannot launch a session for another.
	token := handlers.LaunchToken("CASINO_ALPHA", "PLAYER_0001", "AURORA_STAR", launchPartnerSecret)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, launchURL("CASINO_ALPHA", "PLAYER_9876", "AURORA_STAR", token), nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401, got %d", w.Code)
	}
}

func TestLaunchRejectsUnknownPartner(t *testing.T) {
	router, _ := setupLaunch(t)

	token := handlers.LaunchToken("CASINO_OMEGA", "PLAYER_9876", "AURORA_STAR", launchPartnerSecret)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, launchURL("CASINO_OMEGA", "PLAYER_9876", "AURORA_STAR", token), nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401, got %d", w.Code)
	}
}

func TestLaunchRejectsMissingParameters(t *testing.T) {
	router, _ := setupLaunch(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/launch?partner_id=CASINO_ALPHA", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", w.Code)
	}
}
