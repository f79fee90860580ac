// Package config provides YAML-based configuration loading and difficulty
// management for bubblegrid.
package config

import (
	"fmt"

	"github.com/vovakirdan/bubblegrid/internal/grid"
)

// BubblesConfig contains all configuration for the bubble shooter.
type BubblesConfig struct {
	Grid       BubblesGrid      `yaml:"grid"`
	Timing     BubblesTiming    `yaml:"timing"`
	Scoring    BubblesScoring   `yaml:"scoring"`
	Aim        BubblesAim       `yaml:"aim"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BubblesGrid defines the board.
type BubblesGrid struct {
	Columns      int    `yaml:"columns"`
	Rows         int    `yaml:"rows"`
	InitialRows  int    `yaml:"initial_rows"`
	MinMatch     int    `yaml:"min_match"`
	DefaultColor string `yaml:"default_color"` // bullet color once the board has no colors left
}

// BubblesTiming defines the clock-driven parts of a game.
type BubblesTiming struct {
	DropInterval   float64 `yaml:"drop_interval"`   // seconds between ceiling drops
	WarningSeconds float64 `yaml:"warning_seconds"` // warn this long before a drop
	ShotSpeed      float64 `yaml:"shot_speed"`      // cells per second
}

// BubblesScoring defines how points are awarded.
type BubblesScoring struct {
	PointsPerCell   int `yaml:"points_per_cell"`
	FloatMultiplier int `yaml:"float_multiplier"` // applied to cells that fall
	ClearBonus      int `yaml:"clear_bonus"`      // endless mode, per cleared board
}

// BubblesAim defines the launcher.
type BubblesAim struct {
	MaxAngle float64 `yaml:"max_angle"` // degrees either side of vertical
	Step     float64 `yaml:"step"`      // degrees per key press
	FineStep float64 `yaml:"fine_step"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier   float64 `yaml:"speed_multiplier"`   // added to shot speed at max difficulty
	IntervalReduction float64 `yaml:"interval_reduction"` // fraction of the drop interval removed at max difficulty
	MinDropInterval   float64 `yaml:"min_drop_interval"`  // seconds
}

// GridConfig converts the grid section into the engine's config and
// validates it.
func (c BubblesConfig) GridConfig() (grid.Config, error) {
	color := grid.DefaultConfig().DefaultColor
	if c.Grid.DefaultColor != "" {
		var ok bool
		color, ok = grid.ParseColor(c.Grid.DefaultColor)
		if !ok {
			return grid.Config{}, fmt.Errorf("config: unknown default_color %q", c.Grid.DefaultColor)
		}
	}
	gc := grid.Config{
		Columns:      c.Grid.Columns,
		Rows:         c.Grid.Rows,
		InitialRows:  c.Grid.InitialRows,
		MinMatch:     c.Grid.MinMatch,
		DefaultColor: color,
	}
	if err := gc.Validate(); err != nil {
		return grid.Config{}, fmt.Errorf("config: %w", err)
	}
	return gc, nil
}

// Validate checks every section.
func (c BubblesConfig) Validate() error {
	if _, err := c.GridConfig(); err != nil {
		return err
	}
	switch {
	case c.Timing.DropInterval <= 0:
		return fmt.Errorf("config: drop_interval must be positive, got %v", c.Timing.DropInterval)
	case c.Timing.WarningSeconds < 0:
		return fmt.Errorf("config: warning_seconds must not be negative, got %v", c.Timing.WarningSeconds)
	case c.Timing.ShotSpeed <= 0:
		return fmt.Errorf("config: shot_speed must be positive, got %v", c.Timing.ShotSpeed)
	case c.Aim.MaxAngle <= 0 || c.Aim.MaxAngle >= 90:
		return fmt.Errorf("config: max_angle must be in (0,90), got %v", c.Aim.MaxAngle)
	case c.Aim.Step <= 0:
		return fmt.Errorf("config: aim step must be positive, got %v", c.Aim.Step)
	case c.Scoring.PointsPerCell < 0 || c.Scoring.FloatMultiplier < 0 || c.Scoring.ClearBonus < 0:
		return fmt.Errorf("config: scoring values must not be negative")
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. The empty string means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}
