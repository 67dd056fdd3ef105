package services

import (
	"encoding/json"
	"fmt"
	"os"

	"spingate-backend/internal/models"
)

// GameConfig describes one slot game: its reel strips, the visible window
// height, the paylines (one row index per reel) and the paytable mapping a
// symbol to bet multipliers for runs of 3, 4 and 5.
type GameConfig struct {
	GameCode   string             `json:"game_code"`
	Rows       int                `json:"rows"`
	ReelStrips [][]string         `json:"reel_strips"`
	Paylines   [][]int            `json:"paylines"`
	Paytable   map[string][]int64 `json:"paytable"`
	WildSymbol string             `json:"wild_symbol"`
}

// SlotEngine is the production OutcomeService: it resolves a randomness draw
// into reel stop positions, reads the visible window off the strips and
// evaluates payline wins. Deterministic given the same randomness.
type SlotEngine struct {
	games map[string]GameConfig
}

func NewSlotEngine(configs ...GameConfig) (*SlotEngine, error) {
	games := make(map[string]GameConfig, len(configs))
	for _, cfg := range configs {
		if err := validateGameConfig(cfg); err != nil {
			return nil, err
		}
		games[cfg.GameCode] = cfg
	}
	return &SlotEngine{games: games}, nil
}

// NewSlotEngineFromFile loads game configs from a JSON file holding a list
// of GameConfig objects.
func NewSlotEngineFromFile(path string) (*SlotEngine, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read games file: %w", err)
	}
	var configs []GameConfig
	if err := json.Unmarshal(data, &configs); err != nil {
		return nil, fmt.Errorf("parse games file: %w", err)
	}
	return NewSlotEngine(configs...)
}

func validateGameConfig(cfg GameConfig) error {
	if cfg.GameCode == "" {
		return fmt.Errorf("game config missing game_code")
	}
	if cfg.Rows < 1 {
		return fmt.Errorf("game %s: rows must be positive", cfg.GameCode)
	}
	if len(cfg.ReelStrips) == 0 {
		return fmt.Errorf("game %s: no reel strips", cfg.GameCode)
	}
	for i, strip := range cfg.ReelStrips {
		if len(strip) == 0 {
			return fmt.Errorf("game %s: reel %d is empty", cfg.GameCode, i)
		}
	}
	for i, line := range cfg.Paylines {
		if len(line) != len(cfg.ReelStrips) {
			return fmt.Errorf("game %s: payline %d covers %d reels, want %d", cfg.GameCode, i, len(line), len(cfg.ReelStrips))
		}
		for _, row := range line {
			if row < 0 || row >= cfg.Rows {
				return fmt.Errorf("game %s: payline %d references row %d", cfg.GameCode, i, row)
			}
		}
	}
	return nil
}

// ReelCount returns how many randomness values a spin of the game consumes,
// one stop index per reel.
func (e *SlotEngine) ReelCount(gameCode string) (int, error) {
	cfg, ok := e.games[gameCode]
	if !ok {
		return 0, fmt.Errorf("%w: unknown game %s", models.ErrOutcomeServiceFailed, gameCode)
	}
	return len(cfg.ReelStrips), nil
}

func (e *SlotEngine) DetermineOutcome(gameCode string, randomness []int64, betAmount int64) (*models.SpinOutcome, error) {
	cfg, ok := e.games[gameCode]
	if !ok {
		return nil, fmt.Errorf("%w: unknown game %s", models.ErrOutcomeServiceFailed, gameCode)
	}
	if len(randomness) != len(cfg.ReelStrips) {
		return nil, fmt.Errorf("%w: got %d randomness values for %d reels", models.ErrOutcomeServiceFailed, len(randomness), len(cfg.ReelStrips))
	}

	// Stop positions and the visible window, reel-major.
	reels := len(cfg.ReelStrips)
	window := make([][]string, reels)
	for i := 0; i < reels; i++ {
		strip := cfg.ReelStrips[i]
		stop := int(randomness[i] % int64(len(strip)))
		if stop < 0 {
			stop += len(strip)
		}
		window[i] = make([]string, cfg.Rows)
		for j := 0; j < cfg.Rows; j++ {
			window[i][j] = strip[(stop+j)%len(strip)]
		}
	}

	// Transpose to row-major for the client and for payline evaluation.
	matrix := make([][]string, cfg.Rows)
	for r := 0; r < cfg.Rows; r++ {
		matrix[r] = make([]string, reels)
		for c := 0; c < reels; c++ {
			matrix[r][c] = window[c][r]
		}
	}

	totalWin := int64(0)
	for _, line := range cfg.Paylines {
		totalWin += e.evaluateLine(cfg, matrix, line, betAmount)
	}

	return &models.SpinOutcome{
		Matrix:   matrix,
		TotalWin: totalWin,
	}, nil
}

// evaluateLine scores one payline: the leftmost run of a single symbol, with
// the wild substituting for anything. Runs shorter than 3 pay nothing.
func (e *SlotEngine) evaluateLine(cfg GameConfig, matrix [][]string, line []int, betAmount int64) int64 {
	lineSymbol := ""
	runLength := 0

	for reel, row := range line {
		symbol := matrix[row][reel]
		if symbol == cfg.WildSymbol && cfg.WildSymbol != "" {
			runLength++
			continue
		}
		if lineSymbol == "" {
			lineSymbol = symbol
			runLength++
			continue
		}
		if symbol != lineSymbol {
			break
		}
		runLength++
	}

	// An all-wild run pays as the wild itself.
	if lineSymbol == "" {
		lineSymbol = cfg.WildSymbol
	}

	if runLength < 3 {
		return 0
	}

	multipliers, ok := cfg.Paytable[lineSymbol]
	if !ok {
		return 0
	}
	idx := runLength - 3
	if idx >= len(multipliers) {
		idx = len(multipliers) - 1
	}
	if idx < 0 {
		return 0
	}
	return betAmount * multipliers[idx]
}

// DefaultGameConfig is the built-in 3x5 game used when no games file is
// configured.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		GameCode: "AURORA_STAR",
		Rows:     3,
		ReelStrips: [][]string{
			{"S_WILD", "S_HIGH_A", "S_LOW_E", "S_HIGH_A", "S_LOW_D"},
			{"S_HIGH_A", "S_SCATTER", "S_LOW_D", "S_HIGH_A", "S_WILD"},
			{"S_LOW_E", "S_WILD", "S_SCATTER", "S_LOW_D", "S_LOW_E"},
			{"S_HIGH_A", "S_LOW_D", "S_WILD", "S_HIGH_A", "S_SCATTER"},
			{"S_SCATTER", "S_LOW_E", "S_HIGH_A", "S_WILD", "S_LOW_D"},
		},
		Paylines: [][]int{
			{1, 1, 1, 1, 1},
			{0, 0, 0, 0, 0},
			{2, 2, 2, 2, 2},
			{0, 1, 2, 1, 0},
			{2, 1, 0, 1, 2},
		},
		Paytable: map[string][]int64{
			"S_WILD":    {20, 50, 100},
			"S_SCATTER": {10, 25, 50},
			"S_HIGH_A":  {5, 10, 20},
			"S_LOW_D":   {2, 5, 10},
			"S_LOW_E":   {1, 2, 5},
		},
		WildSymbol: "S_WILD",
	}
}
