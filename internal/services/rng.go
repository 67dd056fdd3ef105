package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"spingate-backend/internal/models"
)

// RNGClient fetches randomness from the external RNG service over HTTP.
// A failed or timed-out draw fails the round; the draw is never retried
// because replaying randomness would make outcomes predictable.
type RNGClient struct {
	baseURL string
	client  *http.Client
}

type rngRequest struct {
	Count int   `json:"count"`
	Min   int64 `json:"min"`
	Max   int64 `json:"max"`
}

type rngResponse struct {
	Numbers []int64 `json:"numbers"`
	Seed    int64   `json:"seed"`
}

func NewRNGClient(baseURL string, timeout time.Duration) *RNGClient {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &RNGClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (r *RNGClient) Draw(ctx context.Context, count int, max int64) ([]int64, error) {
	body, err := json.Marshal(&rngRequest{Count: count, Min: 0, Max: max})
	if err != nil {
		return nil, fmt.Errorf("%w: marshal rng request: %v", models.ErrOutcomeServiceFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/numbers", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrOutcomeServiceFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: rng call: %v", models.ErrOutcomeServiceFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: rng service returned http %d", models.ErrOutcomeServiceFailed, resp.StatusCode)
	}

	var rngResp rngResponse
	if err := json.NewDecoder(resp.Body).Decode(&rngResp); err != nil {
		return nil, fmt.Errorf("%w: decode rng response: %v", models.ErrOutcomeServiceFailed, err)
	}

	if len(rngResp.Numbers) != count {
		return nil, fmt.Errorf("%w: rng returned %d numbers, want %d", models.ErrOutcomeServiceFailed, len(rngResp.Numbers), count)
	}

	return rngResp.Numbers, nil
}
