package services

import (
	"fmt"

	"spingate-backend/internal/models"
)

// PartnerStore resolves a partner id to its configuration record: the shared
// secret signing wallet calls and the wallet endpoint base URL. Read-mostly;
// loaded once at startup.
type PartnerStore interface {
	GetPartner(partnerID string) (*models.PartnerRecord, error)
}

type StaticPartnerStore struct {
	partners map[string]models.PartnerRecord
}

func NewStaticPartnerStore(records []models.PartnerRecord) *StaticPartnerStore {
	partners := make(map[string]models.PartnerRecord, len(records))
	for _, r := range records {
		partners[r.ID] = r
	}
	return &StaticPartnerStore{partners: partners}
}

func (s *StaticPartnerStore) GetPartner(partnerID string) (*models.PartnerRecord, error) {
	record, ok := s.partners[partnerID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrUnknownPartner, partnerID)
	}
	return &record, nil
}
