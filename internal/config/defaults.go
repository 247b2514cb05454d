package config

import (
	_ "embed"
	"time"

	"github.com/vovakirdan/netbreach/internal/core"
)

//go:embed defaults/netbreach.yaml
var defaultYAML []byte

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}

// DefaultGameConfig returns the hardcoded default configuration.
// It mirrors defaults/netbreach.yaml and is used when the embedded file
// cannot be parsed.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		Difficulty: DifficultyMedium,
		Multiplier: DifficultyTable{
			Easy:    0.5,
			Medium:  1,
			Hard:    1.5,
			Extreme: 2,
		},
		Detection: DetectionConfig{
			Max:             100,
			PassiveInterval: 5 * time.Second,
			PassiveAmount:   0.1,
			StealthFactor:   0.75,
			HackCost:        core.TierTable[float64]{Easy: 3, Medium: 7, Hard: 15},
			RoundSuccess:    10,
			RoundFailure:    20,
			RoundAbort:      15,
			AttackCost:      25,
		},
		Hack: HackConfig{
			RevealInterval: 800 * time.Millisecond,
			LaunchDelay:    1500 * time.Millisecond,
			Points:         core.TierTable[int]{Easy: 100, Medium: 250, Hard: 500},
			Script: []string{
				"Initiating hack on %s...",
				"Establishing connection...",
				"Bypassing firewall...",
				"Decrypting security protocols...",
				"Gaining root access...",
				"Extracting classified data...",
			},
		},
		Minigame: MinigameConfig{
			CanvasWidth:  600,
			CanvasHeight: 400,
			FloorMargin:  50,
			WallMargin:   10,

			Columns:      8,
			GridOriginX:  50,
			GridOriginY:  30,
			GridSpacingX: 65,
			GridSpacingY: 50,
			BlockWidth:   60,
			BlockHeight:  30,

			BlockCount:  core.TierTable[int]{Easy: 8, Medium: 12, Hard: 16},
			BlockHealth: core.TierTable[int]{Easy: 2, Medium: 3, Hard: 5},
			BlockSpeed:  core.TierTable[float64]{Easy: 0.3, Medium: 0.3, Hard: 0.5},

			InitialAmmo: 3,
			BotnetBonus: 1,
			HitScore:    10,

			LaunchSpread:    8,
			LaunchSpeed:     8,
			ExtraBallChance: 0.2,
			ExtraBallSpread: 6,
			ExtraBallSpeed:  6,

			PerkExtraBalls: 2,
			PerkExplosive:  2,
			PerkSlowFactor: 0.5,
			HideDelay:      2 * time.Second,
		},
		Attack: AttackConfig{
			PopulationFraction: 0.1,
			Weak:               0.5,
			Moderate:           1,
			Strong:             2,
			PayloadBonus:       1.5,
		},
		Final: FinalPhaseConfig{
			CountdownStep:     100_000_000,
			CountdownInterval: 50 * time.Millisecond,
		},
		World: WorldConfig{
			Population: 8_000_000_000,
			MapWidth:   2000,
			MapHeight:  1000,
			MapMargin:  100,
		},
		Terminal: TerminalConfig{
			MaxLines:    200,
			MaxLogLines: 200,
		},
	}
}
