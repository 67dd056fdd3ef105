package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"spingate-backend/internal/config"
	"spingate-backend/internal/models"
)

// RedisService is the Redis-backed RoundStore used in production.
type RedisService struct {
	client *redis.Client
}

func NewRedisService(cfg *config.Config) (*RedisService, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %v", err)
	}

	return &RedisService{client: client}, nil
}

func (s *RedisService) Close() error {
	return s.client.Close()
}

func (s *RedisService) SaveRound(ctx context.Context, record *models.RoundRecord) error {
	key := fmt.Sprintf(KeyRound, record.DebitTxID)

	data, err := json.Marshal(record)
	if err != nil {
		return err
	}

	if err := s.client.Set(ctx, key, data, TTLRound).Err(); err != nil {
		return err
	}

	sessionKey := fmt.Sprintf(KeySessionRounds, record.SessionID)
	pipe := s.client.Pipeline()
	pipe.RPush(ctx, sessionKey, record.RoundID)
	pipe.Expire(ctx, sessionKey, TTLRound)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *RedisService) GetRound(ctx context.Context, debitTxID string) (*models.RoundRecord, error) {
	key := fmt.Sprintf(KeyRound, debitTxID)

	data, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var record models.RoundRecord
	if err := json.Unmarshal([]byte(data), &record); err != nil {
		return nil, err
	}

	return &record, nil
}
