package models

import (
	"fmt"
	"sync"
	"time"
)

// MessageSender pushes a server message to the client owning a session.
// The websocket handler supplies the real implementation; tests supply
// in-memory recorders.
type MessageSender interface {
	Send(msg *Message) error
}

// Session is the live binding between one authenticated connection and a
// partner/player/game context. It is created by the connection gateway when
// a valid credential is presented and removed on disconnect.
type Session struct {
	ID        string    `json:"id"`
	PartnerID string    `json:"partner_id"`
	PlayerID  string    `json:"player_id"`
	GameCode  string    `json:"game_code"`
	Currency  string    `json:"currency"`
	CreatedAt time.Time `json:"created_at"`

	sender  MessageSender
	roundMu sync.Mutex
}

func NewSession(id, partnerID, playerID, gameCode, currency string, sender MessageSender) *Session {
	return &Session{
		ID:        id,
		PartnerID: partnerID,
		PlayerID:  playerID,
		GameCode:  gameCode,
		Currency:  currency,
		CreatedAt: time.Now(),
		sender:    sender,
	}
}

// Send pushes a message over the session's connection. After disconnect the
// registry entry is gone, so a late send on a detached session is a no-op.
func (s *Session) Send(msg *Message) error {
	if s.sender == nil {
		return nil
	}
	return s.sender.Send(msg)
}

// BeginRound claims the session's single round slot. It returns
// ErrRoundInFlight if a prior round has not yet reached a terminal state; at
// most one spin round is in flight per session.
func (s *Session) BeginRound() error {
	if !s.roundMu.TryLock() {
		return fmt.Errorf("%w: session %s", ErrRoundInFlight, s.ID)
	}
	return nil
}

// EndRound releases the round slot. Must only be called after a successful
// BeginRound.
func (s *Session) EndRound() {
	s.roundMu.Unlock()
}
