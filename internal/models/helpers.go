package models

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
)

func GenerateSessionID() string {
	return uuid.NewString()
}

func GenerateRoundID() string {
	return fmt.Sprintf("round_%s_%d",
		time.Now().Format("20060102"),
		uuid.New().ID())
}

// GenerateBetTransactionID mints the debit idempotency key for one round.
// The uuid component makes it unique across the gateway's lifetime; the
// session id is embedded for log-side reconciliation.
func GenerateBetTransactionID(sessionID string) string {
	return fmt.Sprintf("tx_bet_%s_%s", uuid.NewString(), sessionID)
}

func GenerateWinTransactionID(sessionID string) string {
	return fmt.Sprintf("tx_win_%s_%s", uuid.NewString(), sessionID)
}

// GenerateNonce returns a fresh single-use hex nonce for a wallet request.
func GenerateNonce() (string, error) {
	bytes := make([]byte, 16) // 128 bits of entropy
	_, err := rand.Read(bytes)
	if err != nil {
		return "", fmt.Errorf("failed to generate nonce: %v", err)
	}
	return hex.EncodeToString(bytes), nil
}

// ValidateBet checks a wager amount before any money moves.
func ValidateBet(bet int64, maxBet int64) error {
	if bet < 1 {
		return fmt.Errorf("bet amount must be at least 1 cent")
	}
	if maxBet > 0 && bet > maxBet {
		return fmt.Errorf("maximum bet amount is %d cents", maxBet)
	}
	return nil
}
