package services_test

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"spingate-backend/internal/models"
	"spingate-backend/internal/services"
)

func TestRegistryAddGetRemove(t *testing.T) {
	registry := services.NewSessionRegistry()
	session := newTestSession()

	if err := registry.Add(session); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	got, ok := registry.Get(session.ID)
	if !ok {
		t.Fatal("Session should be registered")
	}
	if got != session {
		t.Error("Get returned a different session")
	}

	registry.Remove(session)
	if _, ok := registry.Get(session.ID); ok {
		t.Error("Session should be gone after Remove")
	}
}

func TestRegistryRejectsDuplicateSession(t *testing.T) {
	registry := services.NewSessionRegistry()
	session := newTestSession()

	if err := registry.Add(session); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	duplicate := models.NewSession(session.ID, session.PartnerID, session.PlayerID, session.GameCode, session.Currency, nil)
	if err := registry.Add(duplicate); !errors.Is(err, models.ErrSessionActive) {
		t.Errorf("Expected ErrSessionActive, got %v", err)
	}
}

func TestRegistryRemoveIsScopedToPointer(t *testing.T) {
	registry := services.NewSessionRegistry()
	old := newTestSession()

	if err := registry.Add(old); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	registry.Remove(old)

	// A reconnect re-registers the same session id on a new connection.
	// The old connection's deferred cleanup must not tear it down.
	replacement := models.NewSession(old.ID, old.PartnerID, old.PlayerID, old.GameCode, old.Currency, nil)
	if err := registry.Add(replacement); err != nil {
		t.Fatalf("Re-add failed: %v", err)
	}

	registry.Remove(old)
	if _, ok := registry.Get(old.ID); !ok {
		t.Error("Stale Remove must not evict the replacement session")
	}
}

func TestRegistryConcurrentAccess(t *testing.T) {
	registry := services.NewSessionRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			session := models.NewSession(fmt.Sprintf("sess-%d", n), "CASINO_ALPHA", "PLAYER", "AURORA_STAR", "EUR", nil)
			if err := registry.Add(session); err != nil {
				t.Errorf("Add failed: %v", err)
				return
			}
			if _, ok := registry.Get(session.ID); !ok {
				t.Errorf("Session %s missing after Add", session.ID)
			}
			if n%2 == 0 {
				registry.Remove(session)
			}
		}(i)
	}
	wg.Wait()

	if registry.Len() != 50 {
		t.Errorf("Expected 50 sessions left, got %d", registry.Len())
	}
}
