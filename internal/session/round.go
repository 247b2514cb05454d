package session

import (
	"github.com/vovakirdan/netbreach/internal/config"
	"github.com/vovakirdan/netbreach/internal/core"
	"github.com/vovakirdan/netbreach/internal/minigame"
	"github.com/vovakirdan/netbreach/internal/storage"
	"github.com/vovakirdan/netbreach/internal/terminal"
	"github.com/vovakirdan/netbreach/internal/upgrade"
	"github.com/vovakirdan/netbreach/internal/world"
)

// roundState wraps the active round with its result display timer.
type roundState struct {
	round   *minigame.Round
	target  world.Country
	handled bool // Outcome applied to detection
	hideIn  int  // Ticks the result stays on screen
}

// startRound launches the firewall round for a freshly compromised target.
func (s *Session) startRound(c world.Country) {
	r := minigame.NewRound(s.cfg.Minigame, c.Tier, s.upgrades.Has(upgrade.Botnet), s.rng)
	s.round = &roundState{round: r, target: c}
	s.syslog.Add("Firewall bypass minigame initiated", terminal.ClassWarning)
	s.logger.Debug("round started", "target", c.Code, "tier", c.Tier, "ammo", r.Ammo())

	if c.Tier == core.TierEasy && s.upgrades.Has(upgrade.AI) {
		r.Complete()
		s.syslog.Add("AI Assistant auto-completed the firewall bypass", terminal.ClassSuccess)
	}
}

// stepRound advances the active round and applies its outcome once.
func (s *Session) stepRound() {
	rs := s.round
	if rs == nil {
		return
	}

	if !rs.handled {
		used := s.perksUsed(rs.round)
		outcome := rs.round.Step(s.input)
		s.logPerks(rs.round, used)
		if outcome == minigame.OutcomeNone {
			return
		}
		s.finishRound(rs, outcome)
		if s.round == nil {
			return
		}
	}

	if rs.hideIn <= 0 {
		s.round = nil
		return
	}
	rs.hideIn--
}

// finishRound applies a round outcome to detection and the panels.
// Success and failure keep the round on screen for the hide delay.
func (s *Session) finishRound(rs *roundState, outcome minigame.Outcome) {
	rs.handled = true
	score := rs.round.Score()

	switch outcome {
	case minigame.OutcomeSuccess:
		rs.hideIn = config.Ticks(s.cfg.Minigame.HideDelay, s.tickRate)
		s.term.Add("Firewall bypass successful!", terminal.ClassSuccess)
		s.syslog.Add("Minigame completed successfully", terminal.ClassSuccess)
		s.meter.Decrease(s.cfg.Detection.RoundSuccess)
	case minigame.OutcomeFailure:
		rs.hideIn = config.Ticks(s.cfg.Minigame.HideDelay, s.tickRate)
		s.term.Add("Firewall bypass failed! Detection increased.", terminal.ClassError)
		s.syslog.Add("Minigame failed", terminal.ClassError)
		s.meter.Increase(s.cfg.Detection.RoundFailure)
	case minigame.OutcomeAborted:
		rs.hideIn = 0
		s.syslog.Add("Minigame aborted", terminal.ClassWarning)
		s.meter.Increase(s.cfg.Detection.RoundAbort)
	}

	s.logger.Debug("round finished", "target", rs.target.Code, "outcome", outcome, "score", score, "destroyed", rs.round.Destroyed())
	s.record(storage.Award{Kind: "round", Target: rs.target.Code, Points: score, Detail: outcome.String()})
}

func (s *Session) perksUsed(r *minigame.Round) []bool {
	used := make([]bool, len(minigame.Perks))
	for i, p := range minigame.Perks {
		used[i] = r.PerkUsed(p)
	}
	return used
}

// logPerks reports perks spent during the last step.
func (s *Session) logPerks(r *minigame.Round, before []bool) {
	for i, p := range minigame.Perks {
		if !before[i] && r.PerkUsed(p) {
			s.syslog.Addf(terminal.ClassSuccess, "Perk activated: %s", p)
		}
	}
}
