package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"spingate-backend/internal/models"
	"spingate-backend/internal/services"
)

// LaunchHandler validates a partner-signed game launch and mints the session
// credential the game client presents on its websocket connection.
type LaunchHandler struct {
	jwtService    *services.JWTService
	partners      services.PartnerStore
	gameClientURL string
}

func NewLaunchHandler(jwtService *services.JWTService, partners services.PartnerStore, gameClientURL string) *LaunchHandler {
	return &LaunchHandler{
		jwtService:    jwtService,
		partners:      partners,
		gameClientURL: gameClientURL,
	}
}

// LaunchToken is the partner-side signature over a launch: HMAC-SHA256 of
// partner_id+player_id+game_code under the partner's shared secret.
func LaunchToken(partnerID, playerID, gameCode, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(partnerID + playerID + gameCode))
	return hex.EncodeToString(h.Sum(nil))
}

func (h *LaunchHandler) Launch(c *gin.Context) {
	partnerID := c.Query("partner_id")
	playerID := c.Query("player_id")
	gameCode := c.Query("game_code")
	currency := c.Query("currency")
	token := c.Query("token")

	if partnerID == "" || playerID == "" || gameCode == "" || token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing launch parameters"})
		return
	}

	partner, err := h.partners.GetPartner(partnerID)
	if err != nil {
		slog.Warn("launch for unknown partner", "partner_id", partnerID)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Launch validation failed"})
		return
	}

	expected := LaunchToken(partnerID, playerID, gameCode, partner.Secret)
	if !hmac.Equal([]byte(expected), []byte(token)) {
		slog.Warn("launch token mismatch", "partner_id", partnerID, "player_id", playerID)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Launch validation failed"})
		return
	}

	if currency == "" {
		currency = "EUR"
	}

	sessionID := models.GenerateSessionID()
	sessionToken, err := h.jwtService.GenerateToken(partnerID, playerID, gameCode, sessionID, currency)
	if err != nil {
		slog.Error("failed to issue session credential", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	slog.Info("session credential issued",
		"session_id", sessionID,
		"partner_id", partnerID,
		"player_id", playerID,
		"game_code", gameCode)

	params := url.Values{"token": {sessionToken}}
	c.Redirect(http.StatusFound, h.gameClientURL+"?"+params.Encode())
}
