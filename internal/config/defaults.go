package config

import (
	_ "embed"
)

//go:embed defaults/bubbles.yaml
var defaultBubblesYAML []byte

// DefaultBubblesConfig returns the built-in configuration. It matches
// defaults/bubbles.yaml and is used when even the embedded file fails.
func DefaultBubblesConfig() BubblesConfig {
	return BubblesConfig{
		Grid: BubblesGrid{
			Columns:      10,
			Rows:         24,
			InitialRows:  5,
			MinMatch:     3,
			DefaultColor: "blue",
		},
		Timing: BubblesTiming{
			DropInterval:   10,
			WarningSeconds: 3,
			ShotSpeed:      30,
		},
		Scoring: BubblesScoring{
			PointsPerCell:   100,
			FloatMultiplier: 1,
			ClearBonus:      1000,
		},
		Aim: BubblesAim{
			MaxAngle: 80,
			Step:     5,
			FineStep: 1,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 20000,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier:   0.5,
				IntervalReduction: 0.5,
				MinDropInterval:   4,
			},
		},
	}
}
