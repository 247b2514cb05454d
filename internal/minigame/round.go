// Package minigame implements the firewall-bypass round: descending blocks
// with health, balls fired from a fixed launcher, and a fixed-step update.
package minigame

import (
	"github.com/vovakirdan/netbreach/internal/config"
	"github.com/vovakirdan/netbreach/internal/core"
)

// Outcome is the terminal result of a round.
type Outcome int

const (
	OutcomeNone    Outcome = iota // Round still running
	OutcomeSuccess                // Every block destroyed
	OutcomeFailure                // A block reached the floor
	OutcomeAborted                // Player quit
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeFailure:
		return "failure"
	case OutcomeAborted:
		return "aborted"
	default:
		return "running"
	}
}

// Round is one firewall-bypass round.
// Once the outcome is set the round is frozen.
type Round struct {
	cfg  config.MinigameConfig
	tier core.Tier
	rng  core.RNG

	blocks  []Block
	balls   []Ball
	spawned []Ball // Extra balls waiting to join the next update

	ammo      int
	score     int
	paused    bool
	outcome   Outcome
	perksUsed [perkCount]bool

	tick      uint64
	destroyed int
}

// NewRound builds a round for the given tier. botnet adds the upgrade's
// bonus ammo.
func NewRound(cfg config.MinigameConfig, tier core.Tier, botnet bool, rng core.RNG) *Round {
	r := &Round{
		cfg:  cfg,
		tier: tier,
		rng:  rng,
		ammo: cfg.InitialAmmo,
	}
	if botnet {
		r.ammo += cfg.BotnetBonus
	}
	r.layoutBlocks()
	return r
}

// layoutBlocks places the tier's blocks on the grid.
func (r *Round) layoutBlocks() {
	count := r.cfg.BlockCount.Get(r.tier)
	health := r.cfg.BlockHealth.Get(r.tier)
	speed := r.cfg.BlockSpeed.Get(r.tier)

	r.blocks = make([]Block, 0, count)
	for i := range count {
		col := i % r.cfg.Columns
		row := i / r.cfg.Columns
		r.blocks = append(r.blocks, Block{
			Box: core.Box{
				X: r.cfg.GridOriginX + float64(col)*r.cfg.GridSpacingX,
				Y: r.cfg.GridOriginY + float64(row)*r.cfg.GridSpacingY,
				W: r.cfg.BlockWidth,
				H: r.cfg.BlockHeight,
			},
			Health:    health,
			MaxHealth: health,
			Speed:     speed,
		})
	}
}

// Step applies the frame's actions in arrival order, then advances the
// round by one tick. It returns the outcome after the tick.
func (r *Round) Step(in core.InputFrame) Outcome {
	if r.outcome != OutcomeNone {
		return r.outcome
	}

	for _, a := range in.Actions {
		r.apply(a)
		if r.outcome != OutcomeNone {
			return r.outcome
		}
	}
	if r.paused {
		return r.outcome
	}

	r.tick++
	r.updateBlocks()
	if r.outcome != OutcomeNone {
		return r.outcome
	}
	r.updateBalls()
	return r.outcome
}

// apply performs one input action. Abort and pause work while paused;
// shots and perks are ignored then.
func (r *Round) apply(a core.Action) {
	switch a {
	case core.ActionAbort:
		r.Quit()
	case core.ActionPause:
		r.TogglePause()
	case core.ActionShoot:
		r.Shoot()
	default:
		for _, p := range Perks {
			if p.Action() == a {
				r.ActivatePerk(p)
			}
		}
	}
}

// updateBlocks moves every block down and checks the floor.
func (r *Round) updateBlocks() {
	floor := r.cfg.CanvasHeight - r.cfg.FloorMargin
	for i := range r.blocks {
		r.blocks[i].Y += r.blocks[i].Speed
		if breached(&r.blocks[i], floor) {
			r.finish(OutcomeFailure)
			return
		}
	}
}

// updateBalls moves every ball, bounces it and resolves block hits.
// Balls spawned during the update start moving on the next tick.
func (r *Round) updateBalls() {
	live := r.balls[:0]
	for i := 0; i < len(r.balls); i++ {
		ball := r.balls[i]
		ball.Move()
		bounceWalls(&ball, r.cfg.CanvasWidth, r.cfg.WallMargin)
		if fellOff(&ball, r.cfg.CanvasHeight) {
			continue
		}
		r.collide(&ball)
		live = append(live, ball)
		if r.outcome != OutcomeNone {
			// Unprocessed balls stay where they are
			live = append(live, r.balls[i+1:]...)
			break
		}
	}
	r.balls = live
	r.flushSpawned()
}

func (r *Round) flushSpawned() {
	r.balls = append(r.balls, r.spawned...)
	r.spawned = r.spawned[:0]
}

// collide applies one ball against every block.
func (r *Round) collide(ball *Ball) {
	for i := 0; i < len(r.blocks); i++ {
		blk := &r.blocks[i]
		if !hits(ball, blk) {
			continue
		}
		blk.Health--
		reflectUp(ball)
		r.score += r.cfg.HitScore

		if blk.Health <= 0 {
			r.destroy(i)
			i--
			if r.outcome != OutcomeNone {
				return
			}
		}
	}
}

// destroy removes block i, rolls for an extra ball and checks for success.
func (r *Round) destroy(i int) {
	cx, cy := r.blocks[i].Center()
	r.blocks = append(r.blocks[:i], r.blocks[i+1:]...)
	r.destroyed++

	if r.rng.Float64() < r.cfg.ExtraBallChance {
		r.ammo++
		r.spawned = append(r.spawned, Ball{
			X:  cx,
			Y:  cy,
			VX: (r.rng.Float64() - 0.5) * r.cfg.ExtraBallSpread,
			VY: -r.cfg.ExtraBallSpeed,
		})
	}

	if len(r.blocks) == 0 {
		r.finish(OutcomeSuccess)
	}
}

// Shoot fires a ball from the launcher. Without ammo it does nothing.
func (r *Round) Shoot() bool {
	if r.outcome != OutcomeNone || r.paused || r.ammo <= 0 {
		return false
	}
	r.ammo--
	r.balls = append(r.balls, Ball{
		X:  r.cfg.CanvasWidth / 2,
		Y:  r.cfg.CanvasHeight - r.cfg.FloorMargin,
		VX: (r.rng.Float64() - 0.5) * r.cfg.LaunchSpread,
		VY: -r.cfg.LaunchSpeed,
	})
	return true
}

// TogglePause suspends or resumes the round.
func (r *Round) TogglePause() {
	if r.outcome != OutcomeNone {
		return
	}
	r.paused = !r.paused
}

// Quit aborts the round and discards everything in it.
func (r *Round) Quit() {
	r.finish(OutcomeAborted)
}

func (r *Round) finish(o Outcome) {
	if r.outcome != OutcomeNone {
		return
	}
	r.outcome = o
	switch o {
	case OutcomeFailure:
		r.blocks = nil
		r.balls = nil
	case OutcomeAborted:
		r.blocks = nil
		r.balls = nil
		r.spawned = nil
		r.ammo = 0
		r.score = 0
	}
}

// Complete ends the round as a success without play.
func (r *Round) Complete() {
	r.blocks = nil
	r.balls = nil
	r.finish(OutcomeSuccess)
}

// Outcome returns the current outcome.
func (r *Round) Outcome() Outcome { return r.outcome }

// Tier returns the round's tier.
func (r *Round) Tier() core.Tier { return r.tier }

// Ammo returns the remaining shots.
func (r *Round) Ammo() int { return r.ammo }

// Score returns the round score.
func (r *Round) Score() int { return r.score }

// Paused reports whether the round is paused.
func (r *Round) Paused() bool { return r.paused }

// Blocks returns the number of remaining blocks.
func (r *Round) Blocks() int { return len(r.blocks) }

// Balls returns the number of balls in flight.
func (r *Round) Balls() int { return len(r.balls) }

// Destroyed returns the number of blocks destroyed so far.
func (r *Round) Destroyed() int { return r.destroyed }

// Stalled reports a running round with no ammo and no ball in flight.
// Such a round can only end by a block reaching the floor or a perk.
func (r *Round) Stalled() bool {
	return r.outcome == OutcomeNone && r.ammo == 0 && len(r.balls) == 0
}
