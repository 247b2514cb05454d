package session

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/netbreach/internal/config"
	"github.com/vovakirdan/netbreach/internal/storage"
	"github.com/vovakirdan/netbreach/internal/terminal"
	"github.com/vovakirdan/netbreach/internal/world"
)

// hackState tracks a scripted hack from its first line to round launch.
type hackState struct {
	country  world.Country
	revealed int  // Script lines shown
	elapsed  int  // Ticks since the last line
	done     bool // Target compromised, waiting to launch the round
	launchIn int  // Ticks until the round starts
}

// startHack begins the hack sequence on the selected country.
func (s *Session) startHack() {
	if !s.CanHack() {
		return
	}
	c, err := world.Lookup(s.selected)
	if err != nil {
		return
	}

	s.meter.Increase(s.cfg.Detection.HackCost.Get(c.Tier))
	if s.phase != PhaseActive {
		return
	}

	s.term.Clear()
	s.hack = &hackState{country: c}
	s.logger.Debug("hack started", "target", c.Code, "tier", c.Tier)
}

// stepHack reveals the next script line when due, then completes the hack
// and counts down to the round.
func (s *Session) stepHack() {
	h := s.hack
	if h == nil || s.phase != PhaseActive {
		return
	}

	if h.done {
		h.launchIn--
		if h.launchIn <= 0 {
			s.hack = nil
			s.startRound(h.country)
		}
		return
	}

	h.elapsed++
	if h.elapsed < s.revealStep {
		return
	}
	h.elapsed = 0

	script := s.cfg.Hack.Script
	if h.revealed < len(script) {
		s.term.Add(scriptLine(script[h.revealed], h.country.Name), terminal.ClassOutput)
		h.revealed++
		return
	}
	s.completeHack(h)
}

// completeHack marks the target compromised and awards points.
func (s *Session) completeHack(h *hackState) {
	c := h.country
	s.hacked[c.Code] = true
	s.hackedOrder = append(s.hackedOrder, c.Code)

	points := s.cfg.Hack.Points.Get(c.Tier)
	s.points += points

	s.term.Addf("SUCCESS! %s compromised. Nuclear access: %s", c.Name, c.Nuclear)
	s.term.Addf("Points awarded: %d", points)
	s.term.Addf("Detection increased by %g%%", s.cfg.Detection.HackCost.Get(c.Tier))
	s.syslog.Addf(terminal.ClassSuccess, "Successfully hacked %s", c.Name)

	s.record(storage.Award{Kind: "hack", Target: c.Code, Points: points, Detail: c.Tier.String()})

	h.done = true
	h.launchIn = config.Ticks(s.cfg.Hack.LaunchDelay, s.tickRate)
	if h.launchIn <= 0 {
		s.hack = nil
		s.startRound(c)
	}
}

// scriptLine fills the country name into lines that ask for one.
func scriptLine(line, name string) string {
	if strings.Contains(line, "%s") {
		return fmt.Sprintf(line, name)
	}
	return line
}
