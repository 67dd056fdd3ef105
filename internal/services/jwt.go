package services

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"spingate-backend/internal/config"
	"spingate-backend/internal/models"
)

// SessionClaims is the payload of a session credential: the partner, player,
// game and session identity a launch bound together, plus issued-at/expiry.
type SessionClaims struct {
	PartnerID string `json:"partner_id"`
	PlayerID  string `json:"player_id"`
	GameCode  string `json:"game_code"`
	SessionID string `json:"session_id"`
	Currency  string `json:"currency"`
	jwt.RegisteredClaims
}

// JWTService issues and validates the signed, time-limited session
// credentials presented at connect time. Safe for concurrent use.
type JWTService struct {
	secret []byte
	ttl    time.Duration
}

func NewJWTService(cfg *config.Config) *JWTService {
	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &JWTService{
		secret: []byte(cfg.JWTSecret),
		ttl:    ttl,
	}
}

func (s *JWTService) GenerateToken(partnerID, playerID, gameCode, sessionID, currency string) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		PartnerID: partnerID,
		PlayerID:  playerID,
		GameCode:  gameCode,
		SessionID: sessionID,
		Currency:  currency,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateToken checks signature integrity and expiry. Tampered, malformed
// and expired credentials are indistinguishable to the caller: all return
// models.ErrInvalidCredential and the connection must be refused.
func (s *JWTService) ValidateToken(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, models.ErrInvalidCredential
	}

	if claims.SessionID == "" || claims.PartnerID == "" || claims.PlayerID == "" {
		return nil, models.ErrInvalidCredential
	}

	return claims, nil
}
