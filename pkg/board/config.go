package board

import (
	"fmt"

	"github.com/go-logr/logr"

	"github.com/pbmines/engine/pkg/geometry"
)

// Niceness biases how an undetermined reveal's mine-ness is chosen. See
// spec §4.6 for the exact per-mode behavior.
type Niceness string

const (
	// Nice forces every undetermined reveal safe.
	Nice Niceness = "nice"
	// Fair guarantees safety only when the player had no determined-safe
	// alternative.
	Fair Niceness = "fair"
	// Normal applies no niceness: the first reveal still guarantees its
	// own safety, but the instant it resolves the whole layout is sampled
	// once and locked in full, so every later reveal's mine-ness is fixed.
	Normal Niceness = "normal"
	// Cruel forces a loss whenever a safe alternative existed.
	Cruel Niceness = "cruel"
)

// Config holds the parameters for New. Width, Height and TotalMines are
// required; Adjacency, Niceness, Seed and Logger have zero-value
// defaults described below.
type Config struct {
	// Width and Height are the board dimensions. Both must be positive.
	Width, Height int

	// TotalMines is the mine count. Must be non-negative and strictly
	// less than Width*Height.
	TotalMines int

	// Adjacency selects the neighbor offsets. Zero value (empty string)
	// defaults to geometry.Standard.
	Adjacency geometry.Kind

	// Niceness selects the reveal-time mine-placement bias. Zero value
	// defaults to Normal, matching traditional minesweeper.
	Niceness Niceness

	// Seed seeds the board's constraint-order randomizer. Zero means
	// "pick an unpredictable seed" — callers wanting reproducible
	// layouts for tests must pass a non-zero seed explicitly, since
	// reproducibility is a non-goal of the engine itself (spec §1).
	Seed int64

	// Logger receives structured diagnostics from the placement engine.
	// The zero value is replaced with a discarding logr.Logger.
	Logger logr.Logger

	// Metrics, if non-nil, is incremented by the placement engine and
	// action processor. Optional.
	Metrics *Metrics
}

// Validate reports a *ConfigurationError if cfg cannot construct a board.
func (cfg Config) Validate() error {
	const maxDimension = 10000
	if cfg.Width <= 0 {
		return &ConfigurationError{Reason: fmt.Sprintf("width must be positive, got %d", cfg.Width)}
	}
	if cfg.Width > maxDimension {
		return &ConfigurationError{Reason: fmt.Sprintf("width exceeds maximum of %d, got %d", maxDimension, cfg.Width)}
	}
	if cfg.Height <= 0 {
		return &ConfigurationError{Reason: fmt.Sprintf("height must be positive, got %d", cfg.Height)}
	}
	if cfg.Height > maxDimension {
		return &ConfigurationError{Reason: fmt.Sprintf("height exceeds maximum of %d, got %d", maxDimension, cfg.Height)}
	}
	if cfg.TotalMines < 0 {
		return &ConfigurationError{Reason: fmt.Sprintf("total mines cannot be negative, got %d", cfg.TotalMines)}
	}
	if cfg.TotalMines >= cfg.Width*cfg.Height {
		return &ConfigurationError{Reason: fmt.Sprintf("total mines (%d) must be less than width*height (%d)", cfg.TotalMines, cfg.Width*cfg.Height)}
	}
	switch cfg.Adjacency {
	case "", geometry.Standard, geometry.Knight:
	default:
		return &ConfigurationError{Reason: fmt.Sprintf("unknown adjacency kind %q", cfg.Adjacency)}
	}
	switch cfg.Niceness {
	case "", Nice, Fair, Normal, Cruel:
	default:
		return &ConfigurationError{Reason: fmt.Sprintf("unknown niceness mode %q", cfg.Niceness)}
	}
	return nil
}

// DifficultyPreset names a predefined board size and mine count, the
// way a front-end would offer a difficulty picker.
type DifficultyPreset string

const (
	DifficultyBeginner     DifficultyPreset = "beginner"
	DifficultyIntermediate DifficultyPreset = "intermediate"
	DifficultyExpert       DifficultyPreset = "expert"
)

// DifficultyConfig returns a Config for preset with the given niceness and
// seed; the caller still owns wiring Adjacency/Logger/Metrics.
func DifficultyConfig(preset DifficultyPreset, niceness Niceness, seed int64) Config {
	cfg := Config{Niceness: niceness, Seed: seed}
	switch preset {
	case DifficultyBeginner:
		cfg.Width, cfg.Height, cfg.TotalMines = 9, 9, 10
	case DifficultyIntermediate:
		cfg.Width, cfg.Height, cfg.TotalMines = 16, 16, 40
	case DifficultyExpert:
		cfg.Width, cfg.Height, cfg.TotalMines = 30, 16, 99
	default:
		cfg.Width, cfg.Height, cfg.TotalMines = 9, 9, 10
	}
	return cfg
}
