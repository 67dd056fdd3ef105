package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"spingate-backend/internal/metrics"
	"spingate-backend/internal/models"
	"spingate-backend/internal/services"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Close codes sent when a connection is refused. Distinct codes let the
// client tell a lost credential apart from an expired or reused one.
const (
	CloseMissingCredential = 4001
	CloseInvalidCredential = 4002
	CloseSessionActive     = 4003
)

// WebSocketHandler is the connection gateway: it authenticates incoming
// connections, registers sessions and dispatches inbound messages to the
// spin orchestrator.
type WebSocketHandler struct {
	jwtService   *services.JWTService
	registry     *services.SessionRegistry
	orchestrator *services.SpinOrchestrator
}

func NewWebSocketHandler(jwtService *services.JWTService, registry *services.SessionRegistry, orchestrator *services.SpinOrchestrator) *WebSocketHandler {
	return &WebSocketHandler{
		jwtService:   jwtService,
		registry:     registry,
		orchestrator: orchestrator,
	}
}

// connSender serializes writes on one websocket connection. Rounds are
// serialized per session, but results and keepalive frames can interleave.
type connSender struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (s *connSender) Send(msg *models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(msg)
}

func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	token := c.Query("token")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Error("failed to upgrade to websocket", "error", err)
		return
	}
	defer conn.Close()

	if token == "" {
		metrics.ConnectionsTotal.WithLabelValues(metrics.ConnectionRefused).Inc()
		refuse(conn, CloseMissingCredential, "missing session credential")
		return
	}

	claims, err := h.jwtService.ValidateToken(token)
	if err != nil {
		metrics.ConnectionsTotal.WithLabelValues(metrics.ConnectionRefused).Inc()
		refuse(conn, CloseInvalidCredential, "invalid or expired session credential")
		return
	}

	currency := claims.Currency
	if currency == "" {
		currency = "EUR"
	}

	sender := &connSender{conn: conn}
	session := models.NewSession(claims.SessionID, claims.PartnerID, claims.PlayerID, claims.GameCode, currency, sender)

	if err := h.registry.Add(session); err != nil {
		metrics.ConnectionsTotal.WithLabelValues(metrics.ConnectionRefused).Inc()
		refuse(conn, CloseSessionActive, "session already active")
		return
	}
	metrics.ConnectionsTotal.WithLabelValues(metrics.ConnectionAccepted).Inc()
	metrics.ActiveSessions.Inc()

	slog.Info("session connected",
		"session_id", session.ID,
		"partner_id", session.PartnerID,
		"player_id", session.PlayerID,
		"game_code", session.GameCode)

	defer func() {
		h.registry.Remove(session)
		metrics.ActiveSessions.Dec()
		slog.Info("session disconnected", "session_id", session.ID)
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				slog.Warn("websocket read error", "session_id", session.ID, "error", err)
			}
			break
		}

		msg, err := models.ParseClientMessage(raw)
		if errors.Is(err, models.ErrMalformedMessage) {
			// Protocol violation: drop the message, keep the connection.
			slog.Warn("malformed message dropped", "session_id", session.ID, "error", err)
			if sendErr := session.Send(models.NewErrorMessage("Malformed message")); sendErr != nil {
				break
			}
			continue
		}

		if !h.handleMessage(session, msg) {
			break
		}
	}
}

// handleMessage dispatches one inbound message within the connection's own
// worker, which keeps rounds serialized per session without shared locks.
// Returns false when the connection is gone and the loop should exit.
func (h *WebSocketHandler) handleMessage(session *models.Session, msg *models.ClientMessage) bool {
	switch msg.Type {
	case models.MessageTypeSpinRequest:
		// In-flight rounds run to a terminal state even if the client
		// disconnects mid-round, so the round context is detached from
		// the connection.
		response := h.orchestrator.HandleSpin(context.Background(), session, msg.Bet)
		if err := session.Send(response); err != nil {
			slog.Info("result send skipped, connection gone", "session_id", session.ID)
			return false
		}
	case models.MessageTypePing:
		pong := &models.Message{
			Type:    models.MessageTypePong,
			Payload: gin.H{"timestamp": time.Now().Unix()},
		}
		if err := session.Send(pong); err != nil {
			return false
		}
	default:
		// Unknown types are ignored without closing the connection.
	}
	return true
}

func refuse(conn *websocket.Conn, code int, reason string) {
	deadline := time.Now().Add(time.Second)
	msg := websocket.FormatCloseMessage(code, reason)
	if err := conn.WriteControl(websocket.CloseMessage, msg, deadline); err != nil {
		slog.Warn("failed to send close frame", "error", err)
	}
}
