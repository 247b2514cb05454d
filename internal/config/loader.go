package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const fileName = "netbreach.yaml"

// Load loads the game configuration.
// Search order: customPath -> ~/.netbreach/configs/netbreach.yaml ->
// ./configs/netbreach.yaml -> embedded default.
//
// Files are decoded on top of the defaults, so a partial file only
// overrides the keys it names.
func Load(customPath string) (GameConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return GameConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return GameConfig{}, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then local configs directory
	for _, path := range []string{userConfigPath(fileName), filepath.Join("configs", fileName)} {
		if path == "" {
			continue
		}
		if data, err := os.ReadFile(path); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultYAML)
	if err != nil {
		return DefaultGameConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML on top of DefaultGameConfig and validates the result.
func Parse(data []byte) (GameConfig, error) {
	cfg := DefaultGameConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects configurations the simulation cannot run with.
func (c GameConfig) Validate() error {
	if _, err := ParseDifficulty(string(c.Difficulty)); err != nil {
		return err
	}
	if c.Detection.Max <= 0 {
		return fmt.Errorf("config: detection.max must be positive, got %v", c.Detection.Max)
	}
	if c.Minigame.CanvasWidth <= 0 || c.Minigame.CanvasHeight <= 0 {
		return fmt.Errorf("config: minigame canvas must be positive, got %vx%v",
			c.Minigame.CanvasWidth, c.Minigame.CanvasHeight)
	}
	if c.Minigame.Columns <= 0 {
		return fmt.Errorf("config: minigame.columns must be positive, got %d", c.Minigame.Columns)
	}
	if c.Minigame.ExtraBallChance < 0 || c.Minigame.ExtraBallChance > 1 {
		return fmt.Errorf("config: minigame.extra_ball_chance must be in [0, 1], got %v", c.Minigame.ExtraBallChance)
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".netbreach", "configs", filename)
}
