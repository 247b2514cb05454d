// Package config provides YAML-based game configuration loading and the
// global difficulty presets.
package config

import (
	"time"

	"github.com/vovakirdan/netbreach/internal/core"
)

// GameConfig contains every tunable of a session.
type GameConfig struct {
	Difficulty Difficulty       `yaml:"difficulty"`
	Multiplier DifficultyTable  `yaml:"difficulty_multipliers"`
	Detection  DetectionConfig  `yaml:"detection"`
	Hack       HackConfig       `yaml:"hack"`
	Minigame   MinigameConfig   `yaml:"minigame"`
	Attack     AttackConfig     `yaml:"attack"`
	Final      FinalPhaseConfig `yaml:"final"`
	World      WorldConfig      `yaml:"world"`
	Terminal   TerminalConfig   `yaml:"terminal"`
}

// DetectionConfig defines the detection meter and its action magnitudes.
type DetectionConfig struct {
	Max             float64                 `yaml:"max"`
	PassiveInterval time.Duration           `yaml:"passive_interval"`
	PassiveAmount   float64                 `yaml:"passive_amount"`
	StealthFactor   float64                 `yaml:"stealth_factor"`
	HackCost        core.TierTable[float64] `yaml:"hack_cost"`
	RoundSuccess    float64                 `yaml:"round_success"` // Decrease on success
	RoundFailure    float64                 `yaml:"round_failure"`
	RoundAbort      float64                 `yaml:"round_abort"`
	AttackCost      float64                 `yaml:"attack_cost"`
}

// HackConfig defines the scripted hack sequence.
type HackConfig struct {
	RevealInterval time.Duration       `yaml:"reveal_interval"` // Delay between terminal lines
	LaunchDelay    time.Duration       `yaml:"launch_delay"`    // Delay before the round starts
	Points         core.TierTable[int] `yaml:"points"`
	Script         []string            `yaml:"script"` // %s is replaced by the country name
}

// MinigameConfig defines the firewall-bypass breakout round.
type MinigameConfig struct {
	CanvasWidth  float64 `yaml:"canvas_width"`
	CanvasHeight float64 `yaml:"canvas_height"`
	FloorMargin  float64 `yaml:"floor_margin"` // Blocks fail the round below height - margin
	WallMargin   float64 `yaml:"wall_margin"`

	Columns      int     `yaml:"columns"`
	GridOriginX  float64 `yaml:"grid_origin_x"`
	GridOriginY  float64 `yaml:"grid_origin_y"`
	GridSpacingX float64 `yaml:"grid_spacing_x"`
	GridSpacingY float64 `yaml:"grid_spacing_y"`
	BlockWidth   float64 `yaml:"block_width"`
	BlockHeight  float64 `yaml:"block_height"`

	BlockCount  core.TierTable[int]     `yaml:"block_count"`
	BlockHealth core.TierTable[int]     `yaml:"block_health"`
	BlockSpeed  core.TierTable[float64] `yaml:"block_speed"`

	InitialAmmo int `yaml:"initial_ammo"`
	BotnetBonus int `yaml:"botnet_bonus"`
	HitScore    int `yaml:"hit_score"`

	LaunchSpread    float64 `yaml:"launch_spread"`
	LaunchSpeed     float64 `yaml:"launch_speed"`
	ExtraBallChance float64 `yaml:"extra_ball_chance"`
	ExtraBallSpread float64 `yaml:"extra_ball_spread"`
	ExtraBallSpeed  float64 `yaml:"extra_ball_speed"`

	PerkExtraBalls int           `yaml:"perk_extra_balls"`
	PerkExplosive  int           `yaml:"perk_explosive_damage"`
	PerkSlowFactor float64       `yaml:"perk_slow_factor"`
	HideDelay      time.Duration `yaml:"hide_delay"` // Result display time after success/failure
}

// AttackConfig defines the attack damage model.
type AttackConfig struct {
	PopulationFraction float64 `yaml:"population_fraction"`
	Weak               float64 `yaml:"weak"`
	Moderate           float64 `yaml:"moderate"`
	Strong             float64 `yaml:"strong"`
	PayloadBonus       float64 `yaml:"payload_bonus"`
}

// FinalPhaseConfig defines the end-game countdown.
type FinalPhaseConfig struct {
	CountdownStep     int64         `yaml:"countdown_step"`
	CountdownInterval time.Duration `yaml:"countdown_interval"`
}

// WorldConfig defines the world population and map marker area.
type WorldConfig struct {
	Population int64   `yaml:"population"`
	MapWidth   float64 `yaml:"map_width"`
	MapHeight  float64 `yaml:"map_height"`
	MapMargin  float64 `yaml:"map_margin"`
}

// TerminalConfig bounds the terminal and system log panels.
type TerminalConfig struct {
	MaxLines    int `yaml:"max_lines"`
	MaxLogLines int `yaml:"max_log_lines"`
}

// Ticks converts a duration into a whole number of simulation ticks at the
// given rate. Any positive duration lasts at least one tick.
func Ticks(d time.Duration, tickRate int) int {
	if d <= 0 || tickRate <= 0 {
		return 0
	}
	n := int(d * time.Duration(tickRate) / time.Second)
	if n < 1 {
		n = 1
	}
	return n
}
