package services_test

import (
	"errors"
	"testing"

	"spingate-backend/internal/models"
	"spingate-backend/internal/services"
)

func newTestEngine(t *testing.T) *services.SlotEngine {
	t.Helper()
	engine, err := services.NewSlotEngine(services.DefaultGameConfig())
	if err != nil {
		t.Fatalf("Failed to build engine: %v", err)
	}
	return engine
}

func TestOutcomeIsDeterministic(t *testing.T) {
	engine := newTestEngine(t)
	randomness := []int64{0, 0, 0, 0, 0}

	first, err := engine.DetermineOutcome("AURORA_STAR", randomness, 100)
	if err != nil {
		t.Fatalf("DetermineOutcome failed: %v", err)
	}
	second, err := engine.DetermineOutcome("AURORA_STAR", randomness, 100)
	if err != nil {
		t.Fatalf("DetermineOutcome failed: %v", err)
	}

	if first.TotalWin != second.TotalWin {
		t.Errorf("Same randomness produced different wins: %d and %d", first.TotalWin, second.TotalWin)
	}
	for r := range first.Matrix {
		for c := range first.Matrix[r] {
			if first.Matrix[r][c] != second.Matrix[r][c] {
				t.Fatalf("Same randomness produced different matrices at [%d][%d]", r, c)
			}
		}
	}
}

func TestMatrixShapeAndWindow(t *testing.T) {
	engine := newTestEngine(t)

	outcome, err := engine.DetermineOutcome("AURORA_STAR", []int64{0, 0, 0, 0, 0}, 100)
	if err != nil {
		t.Fatalf("DetermineOutcome failed: %v", err)
	}

	if len(outcome.Matrix) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(outcome.Matrix))
	}
	for r, row := range outcome.Matrix {
		if len(row) != 5 {
			t.Fatalf("Expected 5 reels in row %d, got %d", r, len(row))
		}
	}

	// Stop 0 makes the first column the top of reel 1's strip.
	if outcome.Matrix[0][0] != "S_WILD" {
		t.Errorf("Expected S_WILD at [0][0], got %s", outcome.Matrix[0][0])
	}
	if outcome.Matrix[1][0] != "S_HIGH_A" {
		t.Errorf("Expected S_HIGH_A at [1][0], got %s", outcome.Matrix[1][0])
	}
	if outcome.Matrix[2][0] != "S_LOW_E" {
		t.Errorf("Expected S_LOW_E at [2][0], got %s", outcome.Matrix[2][0])
	}
}

func TestWindowWrapsAroundStrip(t *testing.T) {
	engine := newTestEngine(t)

	// Reel 1's strip has 5 symbols; stop 3 shows indices 3, 4 and 0.
	outcome, err := engine.DetermineOutcome("AURORA_STAR", []int64{3, 0, 0, 0, 0}, 100)
	if err != nil {
		t.Fatalf("DetermineOutcome failed: %v", err)
	}

	if outcome.Matrix[0][0] != "S_HIGH_A" {
		t.Errorf("Expected S_HIGH_A at [0][0], got %s", outcome.Matrix[0][0])
	}
	if outcome.Matrix[1][0] != "S_LOW_D" {
		t.Errorf("Expected S_LOW_D at [1][0], got %s", outcome.Matrix[1][0])
	}
	if outcome.Matrix[2][0] != "S_WILD" {
		t.Errorf("Expected S_WILD wrapped to [2][0], got %s", outcome.Matrix[2][0])
	}
}

func TestPaylineWinWithWildSubstitution(t *testing.T) {
	engine := newTestEngine(t)

	// Stops at 0 put S_WILD, S_SCATTER, S_SCATTER on the V-shaped payline;
	// the wild substitutes, making a 3-of-a-kind scatter run paying 10x.
	outcome, err := engine.DetermineOutcome("AURORA_STAR", []int64{0, 0, 0, 0, 0}, 100)
	if err != nil {
		t.Fatalf("DetermineOutcome failed: %v", err)
	}

	if outcome.TotalWin != 1000 {
		t.Errorf("Expected total win 1000, got %d", outcome.TotalWin)
	}
}

func TestLosingSpin(t *testing.T) {
	engine := newTestEngine(t)

	outcome, err := engine.DetermineOutcome("AURORA_STAR", []int64{1, 1, 1, 1, 1}, 100)
	if err != nil {
		t.Fatalf("DetermineOutcome failed: %v", err)
	}

	if outcome.TotalWin != 0 {
		t.Errorf("Expected losing spin, got win %d", outcome.TotalWin)
	}
}

func TestUnknownGameRejected(t *testing.T) {
	engine := newTestEngine(t)

	_, err := engine.DetermineOutcome("NO_SUCH_GAME", []int64{0, 0, 0, 0, 0}, 100)
	if !errors.Is(err, models.ErrOutcomeServiceFailed) {
		t.Errorf("Expected ErrOutcomeServiceFailed, got %v", err)
	}
}

func TestRandomnessCountMismatchRejected(t *testing.T) {
	engine := newTestEngine(t)

	_, err := engine.DetermineOutcome("AURORA_STAR", []int64{0, 0}, 100)
	if !errors.Is(err, models.ErrOutcomeServiceFailed) {
		t.Errorf("Expected ErrOutcomeServiceFailed, got %v", err)
	}
}

func TestReelCount(t *testing.T) {
	engine := newTestEngine(t)

	count, err := engine.ReelCount("AURORA_STAR")
	if err != nil {
		t.Fatalf("ReelCount failed: %v", err)
	}
	if count != 5 {
		t.Errorf("Expected 5 reels, got %d", count)
	}
}
