package minigame

import "github.com/vovakirdan/netbreach/internal/core"

// Perk is a one-shot round modifier.
type Perk int

const (
	PerkClearAll Perk = iota
	PerkExtraBalls
	PerkExplosive
	PerkSlowDown
	perkCount
)

// Perks lists every perk in key order.
var Perks = []Perk{PerkClearAll, PerkExtraBalls, PerkExplosive, PerkSlowDown}

// String returns the perk name.
func (p Perk) String() string {
	switch p {
	case PerkClearAll:
		return "clear"
	case PerkExtraBalls:
		return "extra-ball"
	case PerkExplosive:
		return "explosive"
	case PerkSlowDown:
		return "slow"
	default:
		return "unknown"
	}
}

// Action returns the input action bound to the perk.
func (p Perk) Action() core.Action {
	switch p {
	case PerkClearAll:
		return core.ActionPerkClear
	case PerkExtraBalls:
		return core.ActionPerkExtraBalls
	case PerkExplosive:
		return core.ActionPerkExplosive
	case PerkSlowDown:
		return core.ActionPerkSlow
	default:
		return core.ActionNone
	}
}

// PerkUsed reports whether the perk was already spent this round.
func (r *Round) PerkUsed(p Perk) bool {
	if p < 0 || p >= perkCount {
		return true
	}
	return r.perksUsed[p]
}

// ActivatePerk applies a perk. Each perk works once per round; it returns
// false for repeats, unknown perks, and paused or finished rounds.
func (r *Round) ActivatePerk(p Perk) bool {
	if r.outcome != OutcomeNone || r.paused || r.PerkUsed(p) {
		return false
	}
	r.perksUsed[p] = true

	switch p {
	case PerkClearAll:
		r.Complete()
	case PerkExtraBalls:
		r.ammo += r.cfg.PerkExtraBalls
	case PerkExplosive:
		r.explode()
		r.flushSpawned()
	case PerkSlowDown:
		for i := range r.blocks {
			r.blocks[i].Speed *= r.cfg.PerkSlowFactor
		}
	}
	return true
}

// explode damages every block and destroys the ones left without health.
// Explosions score nothing.
func (r *Round) explode() {
	for i := range r.blocks {
		r.blocks[i].Health -= r.cfg.PerkExplosive
	}
	for i := 0; i < len(r.blocks); i++ {
		if r.blocks[i].Health > 0 {
			continue
		}
		r.destroy(i)
		i--
		if r.outcome != OutcomeNone {
			return
		}
	}
}
