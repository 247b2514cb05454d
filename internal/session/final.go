package session

import (
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/netbreach/internal/config"
	"github.com/vovakirdan/netbreach/internal/storage"
	"github.com/vovakirdan/netbreach/internal/terminal"
)

// Summary is handed to the end-game sequencer.
type Summary struct {
	RunID      string
	Difficulty config.Difficulty
	Population int64
	Casualties int64
	Points     int
	Hacked     int
	Detection  float64
	Ticks      uint64
}

// finalState drives the population countdown after launch.
type finalState struct {
	display int64 // Population shown by the countdown
	every   int   // Ticks per countdown step
	elapsed int
}

// expose ends active play. Called by the detection meter exactly once.
func (s *Session) expose() {
	if s.phase != PhaseActive {
		return
	}
	s.phase = PhaseExposed
	s.hack = nil
	s.round = nil
	s.final.display = s.population

	s.syslog.Add("CRITICAL: Detection reached 100%", terminal.ClassError)

	sum := s.buildSummary()
	s.summary = &sum
	s.saveRun("exposed")

	if s.onExposed != nil {
		s.onExposed(sum)
	}
}

// launchFinal starts the countdown from the exposure modal.
func (s *Session) launchFinal() {
	if s.phase != PhaseExposed {
		return
	}
	s.phase = PhaseCountdown
	s.final.every = config.Ticks(s.cfg.Final.CountdownInterval, s.tickRate)
	s.final.elapsed = 0
	s.syslog.Add("Launching all missiles", terminal.ClassError)
}

// stepFinal lowers the displayed population until it reaches zero.
func (s *Session) stepFinal() {
	if s.phase != PhaseCountdown {
		return
	}
	s.final.elapsed++
	if s.final.elapsed < s.final.every {
		return
	}
	s.final.elapsed = 0

	s.final.display -= s.cfg.Final.CountdownStep
	if s.final.display > 0 {
		return
	}
	s.final.display = 0
	s.phase = PhaseComplete
	s.syslog.Addf(terminal.ClassError, "Simulation complete. Final population: %s", humanize.Comma(s.population))
	s.saveRun("complete")
}

// DisplayPopulation returns the population shown on screen: the real
// population until launch, then the countdown value.
func (s *Session) DisplayPopulation() int64 {
	if s.phase == PhaseCountdown || s.phase == PhaseComplete {
		return s.final.display
	}
	return s.population
}

// Summary returns the end-game summary once the run is exposed.
func (s *Session) Summary() (Summary, bool) {
	if s.summary == nil {
		return Summary{}, false
	}
	return *s.summary, true
}

func (s *Session) buildSummary() Summary {
	return Summary{
		RunID:      s.runID,
		Difficulty: s.cfg.Difficulty,
		Population: s.population,
		Casualties: s.casualties,
		Points:     s.points,
		Hacked:     len(s.hackedOrder),
		Detection:  s.meter.Level(),
		Ticks:      s.tick,
	}
}

// saveRun writes the run to the ledger, if any.
func (s *Session) saveRun(outcome string) {
	if s.ledger == nil {
		return
	}
	sum := s.buildSummary()
	err := s.ledger.SaveRun(storage.Run{
		ID:         sum.RunID,
		Difficulty: string(sum.Difficulty),
		Outcome:    outcome,
		Points:     sum.Points,
		Hacked:     sum.Hacked,
		Population: sum.Population,
		Casualties: sum.Casualties,
		Detection:  sum.Detection,
		Ticks:      sum.Ticks,
	})
	if err != nil {
		s.logger.Warn("could not save run", "error", err)
	}
}

// record writes a point award to the ledger, if any.
func (s *Session) record(a storage.Award) {
	if s.ledger == nil {
		return
	}
	a.RunID = s.runID
	if _, err := s.ledger.RecordAward(a); err != nil {
		s.logger.Warn("could not record award", "error", err)
	}
}
