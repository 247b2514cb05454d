package session

import (
	"math"

	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/netbreach/internal/config"
	"github.com/vovakirdan/netbreach/internal/terminal"
	"github.com/vovakirdan/netbreach/internal/upgrade"
	"github.com/vovakirdan/netbreach/internal/world"
)

// NuclearMultiplier returns the damage multiplier of a nuclear strength.
func NuclearMultiplier(cfg config.AttackConfig, n world.Nuclear) float64 {
	switch n {
	case world.NuclearWeak:
		return cfg.Weak
	case world.NuclearStrong:
		return cfg.Strong
	default:
		return cfg.Moderate
	}
}

// Damage computes the casualties of an attack from source on target.
func Damage(cfg config.AttackConfig, source, target world.Country, payload bool) int64 {
	mult := NuclearMultiplier(cfg, source.Nuclear)
	if payload {
		mult *= cfg.PayloadBonus
	}
	return int64(math.Floor(float64(target.Population) * cfg.PopulationFraction * mult))
}

// attack strikes target from the selected country.
func (s *Session) attack(code string) {
	if !s.CanAttack(code) {
		return
	}
	source, err := world.Lookup(s.selected)
	if err != nil {
		return
	}
	target, err := world.Lookup(code)
	if err != nil {
		return
	}

	damage := Damage(s.cfg.Attack, source, target, s.upgrades.Has(upgrade.Payload))
	if damage > s.population {
		damage = s.population
	}
	s.population -= damage
	s.casualties += damage
	s.attacked[code] = true

	s.term.Addf("Attack launched from %s to %s", source.Name, target.Name)
	s.term.Addf("Casualties: %s", humanize.Comma(damage))
	s.term.Add("Global population reduced.", terminal.ClassOutput)
	s.syslog.Addf(terminal.ClassError, "Attack executed: %s casualties", humanize.Comma(damage))

	s.meter.Increase(s.cfg.Detection.AttackCost)
}
