package services

import (
	"context"

	"spingate-backend/internal/models"
)

// RandomSource supplies externally sourced randomness for outcome
// determination. The orchestrator never generates outcome randomness itself
// and never replays the same draw twice.
type RandomSource interface {
	Draw(ctx context.Context, count int, max int64) ([]int64, error)
}

// OutcomeService determines the result of one wager from bet parameters and
// a fresh randomness draw. ReelCount reports how many randomness values one
// spin of the game consumes, so the draw can be sized before any money
// moves. Production uses the slot engine; tests use deterministic fixtures
// of the same interface.
type OutcomeService interface {
	ReelCount(gameCode string) (int, error)
	DetermineOutcome(gameCode string, randomness []int64, betAmount int64) (*models.SpinOutcome, error)
}
