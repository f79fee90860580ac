package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// AppDir is the per-user directory holding configs, the score database,
// screenshots and logs.
const AppDir = ".bubblegrid"

// LoadBubbles loads the bubble shooter configuration.
// Search order: customPath -> ~/.bubblegrid/configs/bubbles.yaml ->
// ./configs/bubbles.yaml -> embedded default. Files only need the keys they
// change; everything else keeps its default.
func LoadBubbles(customPath string) (BubblesConfig, error) {
	cfg := DefaultBubblesConfig()
	if err := yaml.Unmarshal(defaultBubblesYAML, &cfg); err != nil {
		cfg = DefaultBubblesConfig()
	}

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("invalid config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range []string{UserPath("configs", "bubbles.yaml"), filepath.Join("configs", "bubbles.yaml")} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		candidate := cfg
		if err := yaml.Unmarshal(data, &candidate); err != nil {
			continue
		}
		if candidate.Validate() != nil {
			continue
		}
		return candidate, nil
	}
	return cfg, nil
}

// UserPath joins elem under ~/.bubblegrid, or returns "" if home is unavailable.
func UserPath(elem ...string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(append([]string{home, AppDir}, elem...)...)
}

// ApplyBubblesPreset modifies the config based on a difficulty preset.
func ApplyBubblesPreset(cfg *BubblesConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	switch preset {
	case DifficultyEasy:
		cfg.Timing.DropInterval = 14
		cfg.Grid.InitialRows = min(4, cfg.Grid.Rows-1)
	case DifficultyHard:
		cfg.Timing.DropInterval = 7
		cfg.Grid.InitialRows = min(7, cfg.Grid.Rows-1)
	}
}
