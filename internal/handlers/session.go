package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"spingate-backend/internal/services"
)

// SessionHandler serves the credential-protected REST surface the game
// client uses to render its player and game context.
type SessionHandler struct {
	registry *services.SessionRegistry
}

func NewSessionHandler(registry *services.SessionRegistry) *SessionHandler {
	return &SessionHandler{registry: registry}
}

// GetSessionInfo returns the identity the credential binds. The session may
// not be connected yet; connection state is reported alongside.
func (h *SessionHandler) GetSessionInfo(c *gin.Context) {
	sessionID := c.GetString("session_id")

	_, connected := h.registry.Get(sessionID)

	c.JSON(http.StatusOK, gin.H{
		"session_id": sessionID,
		"partner_id": c.GetString("partner_id"),
		"player_id":  c.GetString("player_id"),
		"game_code":  c.GetString("game_code"),
		"connected":  connected,
	})
}
