package minigame

import (
	"math"

	"github.com/vovakirdan/netbreach/internal/core"
)

// Block is a firewall block descending towards the floor.
type Block struct {
	core.Box
	Health    int
	MaxHealth int
	Speed     float64 // Canvas units per tick
}

// HealthFraction returns remaining health as a fraction of the maximum.
func (b Block) HealthFraction() float64 {
	if b.MaxHealth <= 0 {
		return 0
	}
	return float64(b.Health) / float64(b.MaxHealth)
}

// Ball is a projectile in flight. Position is its centre.
type Ball struct {
	X, Y   float64
	VX, VY float64
}

// Move advances the ball by its velocity.
func (b *Ball) Move() {
	b.X += b.VX
	b.Y += b.VY
}

// bounceWalls reflects the ball off the side walls and the ceiling.
func bounceWalls(b *Ball, width, margin float64) {
	if b.X <= margin || b.X >= width-margin {
		b.VX = -b.VX
	}
	if b.Y <= margin {
		b.VY = -b.VY
	}
}

// fellOff reports whether the ball left through the bottom edge.
func fellOff(b *Ball, height float64) bool {
	return b.Y > height
}

// hits reports whether the ball centre lies strictly inside the block.
func hits(b *Ball, blk *Block) bool {
	return blk.ContainsPoint(b.X, b.Y)
}

// reflectUp sends the ball upward regardless of its current direction.
func reflectUp(b *Ball) {
	b.VY = -math.Abs(b.VY)
}

// breached reports whether the block bottom crossed the floor line.
func breached(blk *Block, floor float64) bool {
	return blk.Bottom() > floor
}
