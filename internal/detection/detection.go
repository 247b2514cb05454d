// Package detection implements the detection meter: a bounded level that
// rises with player actions and passively over time, and ends the game once
// it reaches its maximum.
package detection

import (
	"github.com/vovakirdan/netbreach/internal/config"
	"github.com/vovakirdan/netbreach/internal/core"
	"github.com/vovakirdan/netbreach/internal/upgrade"
)

// State is the meter state.
type State int

const (
	StateNominal State = iota // Level below maximum
	StateExposed              // Level at maximum, terminal
)

// String returns the state name.
func (s State) String() string {
	if s == StateExposed {
		return "exposed"
	}
	return "nominal"
}

// Band is the display band of the level, used for meter colouring.
type Band int

const (
	BandLow Band = iota
	BandElevated
	BandCritical
	BandGlitch
)

// Upgrades reports owned upgrades. *upgrade.Store satisfies it.
type Upgrades interface {
	Has(id upgrade.ID) bool
}

// Meter is the detection state machine.
// Nominal -> Exposed is the only transition; once Exposed, the level is
// frozen and every operation is a no-op.
type Meter struct {
	cfg        config.DetectionConfig
	multiplier float64
	upgrades   Upgrades

	level float64
	state State

	passiveEvery int // Passive interval in ticks
	passiveTicks int // Ticks since the last passive interval

	onExposed func()
}

// NewMeter creates a meter at level 0.
// multiplier is the global difficulty multiplier; upgrades may be nil.
func NewMeter(cfg config.DetectionConfig, multiplier float64, upgrades Upgrades, tickRate int) *Meter {
	return &Meter{
		cfg:          cfg,
		multiplier:   multiplier,
		upgrades:     upgrades,
		passiveEvery: config.Ticks(cfg.PassiveInterval, tickRate),
	}
}

// OnExposed registers the callback fired when the meter reaches its maximum.
// It fires at most once per meter.
func (m *Meter) OnExposed(fn func()) {
	m.onExposed = fn
}

// Increase raises the level by amount scaled by the difficulty multiplier
// and the stealth factor. It returns the change actually applied.
func (m *Meter) Increase(amount float64) float64 {
	if m.state == StateExposed || amount <= 0 {
		return 0
	}

	effective := amount * m.multiplier
	if m.upgrades != nil && m.upgrades.Has(upgrade.Stealth) {
		effective *= m.cfg.StealthFactor
	}

	before := m.level
	m.level = core.ClampF(m.level+effective, 0, m.cfg.Max)

	if m.level >= m.cfg.Max {
		m.level = m.cfg.Max
		m.state = StateExposed
		if m.onExposed != nil {
			m.onExposed()
		}
	}
	return m.level - before
}

// Decrease lowers the level by amount, flooring at 0. No modifiers apply.
func (m *Meter) Decrease(amount float64) float64 {
	if m.state == StateExposed || amount <= 0 {
		return 0
	}
	before := m.level
	m.level = core.ClampF(m.level-amount, 0, m.cfg.Max)
	return before - m.level
}

// Tick advances the passive timer by one simulation tick. When an interval
// elapses and no round is active, the passive amount is added.
func (m *Meter) Tick(roundActive bool) {
	if m.state == StateExposed || m.passiveEvery <= 0 {
		return
	}
	m.passiveTicks++
	if m.passiveTicks < m.passiveEvery {
		return
	}
	m.passiveTicks = 0
	if !roundActive {
		m.Increase(m.cfg.PassiveAmount)
	}
}

// Level returns the current level.
func (m *Meter) Level() float64 {
	return m.level
}

// Fraction returns the level as a fraction of the maximum.
func (m *Meter) Fraction() float64 {
	if m.cfg.Max <= 0 {
		return 0
	}
	return m.level / m.cfg.Max
}

// State returns the current state.
func (m *Meter) State() State {
	return m.state
}

// Exposed reports whether the meter has reached its maximum.
func (m *Meter) Exposed() bool {
	return m.state == StateExposed
}

// Band returns the display band of the current level.
func (m *Meter) Band() Band {
	pct := m.Fraction() * 100
	switch {
	case pct < 30:
		return BandLow
	case pct < 70:
		return BandElevated
	case pct > 90:
		return BandGlitch
	default:
		return BandCritical
	}
}
