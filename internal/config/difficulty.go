package config

import (
	"fmt"
	"strings"
)

// Difficulty is the global game difficulty chosen at start.
// It only scales detection increases.
type Difficulty string

const (
	DifficultyEasy    Difficulty = "easy"
	DifficultyMedium  Difficulty = "medium"
	DifficultyHard    Difficulty = "hard"
	DifficultyExtreme Difficulty = "extreme"
)

// Difficulties lists the presets in ascending order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyExtreme}

// ParseDifficulty converts a CLI value into a Difficulty.
// An empty string selects medium.
func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(s))); d {
	case "":
		return DifficultyMedium, nil
	case DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyExtreme:
		return d, nil
	}
	return DifficultyMedium, fmt.Errorf("config: unknown difficulty %q (want easy, medium, hard or extreme)", s)
}

// DifficultyTable holds the detection multiplier for every preset.
type DifficultyTable struct {
	Easy    float64 `yaml:"easy"`
	Medium  float64 `yaml:"medium"`
	Hard    float64 `yaml:"hard"`
	Extreme float64 `yaml:"extreme"`
}

// For returns the multiplier of a preset. Unknown presets scale by 1.
func (t DifficultyTable) For(d Difficulty) float64 {
	switch d {
	case DifficultyEasy:
		return t.Easy
	case DifficultyMedium:
		return t.Medium
	case DifficultyHard:
		return t.Hard
	case DifficultyExtreme:
		return t.Extreme
	default:
		return 1
	}
}
