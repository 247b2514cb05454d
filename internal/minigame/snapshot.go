package minigame

import (
	"math"

	"github.com/vovakirdan/netbreach/internal/core"
)

// Snapshot is an immutable copy of a round for renderers and tests.
type Snapshot struct {
	Tick      uint64
	Tier      core.Tier
	Ammo      int
	Score     int
	Paused    bool
	Outcome   Outcome
	Destroyed int
	PerksUsed []bool // Indexed by Perk

	Blocks []Block
	Balls  []Ball
}

// Snapshot returns a copy of the current round state.
func (r *Round) Snapshot() Snapshot {
	blocks := make([]Block, len(r.blocks))
	copy(blocks, r.blocks)
	balls := make([]Ball, len(r.balls))
	copy(balls, r.balls)
	perks := make([]bool, perkCount)
	copy(perks, r.perksUsed[:])

	return Snapshot{
		Tick:      r.tick,
		Tier:      r.tier,
		Ammo:      r.ammo,
		Score:     r.score,
		Paused:    r.paused,
		Outcome:   r.outcome,
		Destroyed: r.destroyed,
		PerksUsed: perks,
		Blocks:    blocks,
		Balls:     balls,
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.Tier)      //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Ammo)      //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Score)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Outcome)   //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Destroyed) //#nosec G115 -- hash computation
	if snap.Paused {
		h = h*31 + 1
	}

	for _, used := range snap.PerksUsed {
		if used {
			h = h*31 + 1
		} else {
			h = h * 31
		}
	}

	for _, b := range snap.Blocks {
		h = h*31 + math.Float64bits(b.X)
		h = h*31 + math.Float64bits(b.Y)
		h = h*31 + uint64(b.Health) //#nosec G115 -- hash computation
		h = h*31 + math.Float64bits(b.Speed)
	}

	for _, b := range snap.Balls {
		h = h*31 + math.Float64bits(b.X)
		h = h*31 + math.Float64bits(b.Y)
		h = h*31 + math.Float64bits(b.VX)
		h = h*31 + math.Float64bits(b.VY)
	}

	return h
}
