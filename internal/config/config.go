package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"spingate-backend/internal/models"
)

type Config struct {
	Port string
	Env  string

	// Session credential signing
	JWTSecret  string
	SessionTTL time.Duration

	// Redis (round audit store)
	RedisAddr string
	RedisPass string
	RedisDB   int

	// Outbound call bounds
	WalletTimeout time.Duration
	RNGTimeout    time.Duration

	// External collaborators
	RNGServiceURL string
	GameClientURL string

	// Static configuration files
	PartnersFile string
	GamesFile    string

	MaxBet int64
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		SessionTTL:    getEnvDuration("SESSION_TTL", time.Hour),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPass:     os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		WalletTimeout: getEnvDuration("WALLET_TIMEOUT", 10*time.Second),
		RNGTimeout:    getEnvDuration("RNG_TIMEOUT", 5*time.Second),
		RNGServiceURL: getEnv("RNG_SERVICE_URL", "http://localhost:50051"),
		GameClientURL: getEnv("GAME_CLIENT_URL", "/game.html"),
		PartnersFile:  getEnv("PARTNERS_FILE", "partners.json"),
		GamesFile:     os.Getenv("GAMES_FILE"),
		MaxBet:        int64(getEnvInt("MAX_BET", 0)),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

// LoadPartners reads the partner registry from a JSON file: a list of
// {id, secret, wallet_url} records. Every partner referenced by a credential
// must resolve to exactly one record.
func LoadPartners(path string) ([]models.PartnerRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read partners file: %w", err)
	}

	var partners []models.PartnerRecord
	if err := json.Unmarshal(data, &partners); err != nil {
		return nil, fmt.Errorf("parse partners file: %w", err)
	}

	seen := make(map[string]bool, len(partners))
	for _, p := range partners {
		if p.ID == "" || p.Secret == "" || p.WalletURL == "" {
			return nil, fmt.Errorf("partner record %q is incomplete", p.ID)
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("duplicate partner record %q", p.ID)
		}
		seen[p.ID] = true
	}

	return partners, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}
