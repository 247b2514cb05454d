package core

import "fmt"

// Tier is the per-target difficulty classification. It drives block count
// and health in the minigame and the detection cost of a hack.
//
// Tier is unrelated to the global game difficulty (config.Difficulty).
type Tier int

const (
	TierEasy Tier = iota
	TierMedium
	TierHard
)

// Tiers lists all tiers in ascending order.
var Tiers = []Tier{TierEasy, TierMedium, TierHard}

// String returns the display name of the tier.
func (t Tier) String() string {
	switch t {
	case TierEasy:
		return "Easy"
	case TierMedium:
		return "Medium"
	case TierHard:
		return "Hard"
	default:
		return "Unknown"
	}
}

// ParseTier converts a case-sensitive display name back into a Tier.
func ParseTier(s string) (Tier, error) {
	switch s {
	case "Easy", "easy":
		return TierEasy, nil
	case "Medium", "medium":
		return TierMedium, nil
	case "Hard", "hard":
		return TierHard, nil
	}
	return TierEasy, fmt.Errorf("core: unknown tier %q", s)
}

// TierTable holds one value per tier.
type TierTable[T any] struct {
	Easy   T `yaml:"easy"`
	Medium T `yaml:"medium"`
	Hard   T `yaml:"hard"`
}

// Get returns the value for the given tier.
func (t TierTable[T]) Get(tier Tier) T {
	switch tier {
	case TierMedium:
		return t.Medium
	case TierHard:
		return t.Hard
	default:
		return t.Easy
	}
}
