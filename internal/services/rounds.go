package services

import (
	"context"
	"sync"

	"spingate-backend/internal/models"
)

// RoundStore keeps terminal round records keyed by debit transaction id.
// This is the reconciliation trail for rounds that failed after money moved:
// the operator matches wallet-side transactions against these records
// out-of-band. A store failure never fails a round.
type RoundStore interface {
	SaveRound(ctx context.Context, record *models.RoundRecord) error
	GetRound(ctx context.Context, debitTxID string) (*models.RoundRecord, error)
}

// MemoryRoundStore is the in-process RoundStore used in tests and when no
// Redis is configured.
type MemoryRoundStore struct {
	mu     sync.RWMutex
	rounds map[string]*models.RoundRecord
}

func NewMemoryRoundStore() *MemoryRoundStore {
	return &MemoryRoundStore{
		rounds: make(map[string]*models.RoundRecord),
	}
}

func (s *MemoryRoundStore) SaveRound(ctx context.Context, record *models.RoundRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *record
	s.rounds[record.DebitTxID] = &copied
	return nil
}

func (s *MemoryRoundStore) GetRound(ctx context.Context, debitTxID string) (*models.RoundRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.rounds[debitTxID]
	if !ok {
		return nil, nil
	}
	copied := *record
	return &copied, nil
}
