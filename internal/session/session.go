// Package session is the game controller. A Session owns all mutable game
// state and advances it one tick at a time, consuming queued player events.
package session

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/netbreach/internal/config"
	"github.com/vovakirdan/netbreach/internal/core"
	"github.com/vovakirdan/netbreach/internal/detection"
	"github.com/vovakirdan/netbreach/internal/minigame"
	"github.com/vovakirdan/netbreach/internal/storage"
	"github.com/vovakirdan/netbreach/internal/terminal"
	"github.com/vovakirdan/netbreach/internal/upgrade"
	"github.com/vovakirdan/netbreach/internal/world"
)

// Phase is the stage of a run.
type Phase int

const (
	PhaseActive    Phase = iota // Normal play
	PhaseExposed                // Detection maxed, waiting for launch
	PhaseCountdown              // Final population countdown
	PhaseComplete               // Simulation complete
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseActive:
		return "active"
	case PhaseExposed:
		return "exposed"
	case PhaseCountdown:
		return "countdown"
	case PhaseComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Ledger records awards and runs. *storage.Store satisfies it.
type Ledger interface {
	RecordAward(a storage.Award) (int64, error)
	SaveRun(r storage.Run) error
}

var _ Ledger = (*storage.Store)(nil)

// Options configures a new Session.
type Options struct {
	Config   config.GameConfig
	TickRate int
	Seed     int64
	RNG      core.RNG    // Overrides Seed when set
	Logger   *log.Logger // Discarded when nil
	Ledger   Ledger      // Optional
	RunID    string      // Generated when empty
}

// Session is a single run of the game.
// It is not safe for concurrent use; drive it from one goroutine.
type Session struct {
	cfg      config.GameConfig
	tickRate int
	rng      core.RNG
	logger   *log.Logger
	ledger   Ledger
	runID    string

	worldMap *world.Map
	upgrades *upgrade.Store
	meter    *detection.Meter
	term     *terminal.Buffer
	syslog   *terminal.Log

	population  int64
	casualties  int64
	points      int
	hacked      map[string]bool
	hackedOrder []string
	attacked    map[string]bool
	selected    string

	queue []Event
	input core.InputFrame

	hack  *hackState
	round *roundState

	phase      Phase
	final      finalState
	summary    *Summary
	onExposed  func(Summary)
	tick       uint64
	revealStep int // Ticks between hack lines
}

// New creates a session ready to play.
func New(opts Options) *Session {
	cfg := opts.Config
	if opts.TickRate <= 0 {
		opts.TickRate = 60
	}
	rng := opts.RNG
	if rng == nil {
		rng = core.NewSimpleRNG(opts.Seed)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	runID := opts.RunID
	if runID == "" {
		runID = uuid.NewString()
	}

	s := &Session{
		cfg:        cfg,
		tickRate:   opts.TickRate,
		rng:        rng,
		logger:     logger.With("run", runID),
		ledger:     opts.Ledger,
		runID:      runID,
		upgrades:   upgrade.NewStore(),
		term:       terminal.NewBuffer(cfg.Terminal.MaxLines),
		population: cfg.World.Population,
		hacked:     make(map[string]bool),
		attacked:   make(map[string]bool),
		input:      core.NewInputFrame(),
		revealStep: config.Ticks(cfg.Hack.RevealInterval, opts.TickRate),
	}
	s.syslog = terminal.NewLog(cfg.Terminal.MaxLogLines, s.logger)
	s.worldMap = world.NewMap(rng, cfg.World.MapWidth, cfg.World.MapHeight, cfg.World.MapMargin)
	s.meter = detection.NewMeter(cfg.Detection, cfg.Multiplier.For(cfg.Difficulty), s.upgrades, opts.TickRate)
	s.meter.OnExposed(s.expose)

	s.logger.Debug("session created", "difficulty", cfg.Difficulty, "tick_rate", opts.TickRate)
	s.syslog.Add("System initialized. Select a country to begin.", terminal.ClassSuccess)
	return s
}

// OnExposed registers the end-game sequencer. It is called exactly once,
// when detection reaches its maximum.
func (s *Session) OnExposed(fn func(Summary)) {
	s.onExposed = fn
}

// Enqueue adds an event for the next Step.
func (s *Session) Enqueue(e Event) {
	s.queue = append(s.queue, e)
}

// Step advances the session by one tick: queued events, the hack sequence,
// the active round, passive detection and the final countdown, in order.
func (s *Session) Step() {
	s.tick++
	s.drain()
	s.stepHack()
	s.stepRound()
	if s.phase == PhaseActive {
		s.meter.Tick(s.RoundActive())
	}
	s.stepFinal()
}

// drain consumes the event queue. Round actions are appended in order to the
// input frame the active round steps with.
func (s *Session) drain() {
	s.input.Clear()
	queue := s.queue
	s.queue = nil

	for _, e := range queue {
		switch e.Kind {
		case EventSelectTarget:
			s.selectTarget(e.Target)
		case EventHack:
			s.startHack()
		case EventAttack:
			s.attack(e.Target)
		case EventPurchase:
			s.purchase(e.Upgrade)
		case EventShoot:
			s.input.Set(core.ActionShoot)
		case EventTogglePause:
			s.input.Set(core.ActionPause)
		case EventQuitRound:
			s.input.Set(core.ActionAbort)
		case EventUsePerk:
			s.input.Set(e.Perk.Action())
		case EventLaunchFinal:
			s.launchFinal()
		}
	}
}

// selectTarget changes the selected country. Ignored during a round.
func (s *Session) selectTarget(code string) {
	if s.phase != PhaseActive || s.RoundActive() {
		return
	}
	c, err := world.Lookup(code)
	if err != nil {
		return
	}
	s.selected = code
	s.syslog.Addf(terminal.ClassSuccess, "Selected target: %s", c.Name)
}

// purchase buys an upgrade with the current points.
func (s *Session) purchase(id upgrade.ID) {
	if s.phase != PhaseActive {
		return
	}
	balance, ok := s.upgrades.Purchase(id, s.points)
	if !ok {
		return
	}
	s.points = balance
	u, _ := upgrade.Lookup(id)
	s.term.Addf("Upgrade purchased: %s", u.Name)
	s.syslog.Addf(terminal.ClassSuccess, "Upgrade activated: %s", u.Name)
}

// RunID returns the run identifier.
func (s *Session) RunID() string { return s.runID }

// Config returns the session configuration.
func (s *Session) Config() config.GameConfig { return s.cfg }

// Tick returns the number of steps taken.
func (s *Session) Tick() uint64 { return s.tick }

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// Points returns the spendable point balance.
func (s *Session) Points() int { return s.points }

// Population returns the global population.
func (s *Session) Population() int64 { return s.population }

// Casualties returns the total attack damage so far.
func (s *Session) Casualties() int64 { return s.casualties }

// Detection returns the detection meter.
func (s *Session) Detection() *detection.Meter { return s.meter }

// Map returns the world map.
func (s *Session) Map() *world.Map { return s.worldMap }

// Upgrades returns the owned upgrades.
func (s *Session) Upgrades() *upgrade.Store { return s.upgrades }

// Terminal returns the hack terminal output.
func (s *Session) Terminal() *terminal.Buffer { return s.term }

// Log returns the system log.
func (s *Session) Log() *terminal.Log { return s.syslog }

// Selected returns the selected country, if any.
func (s *Session) Selected() (world.Country, bool) {
	if s.selected == "" {
		return world.Country{}, false
	}
	c, err := world.Lookup(s.selected)
	return c, err == nil
}

// Hacked reports whether a country is compromised.
func (s *Session) Hacked(code string) bool { return s.hacked[code] }

// HackedCount returns the number of compromised countries.
func (s *Session) HackedCount() int { return len(s.hackedOrder) }

// Attacked reports whether a country has been struck.
func (s *Session) Attacked(code string) bool { return s.attacked[code] }

// HackInFlight reports whether a hack sequence is running.
func (s *Session) HackInFlight() bool { return s.hack != nil }

// HackTarget returns the country being hacked, if any.
func (s *Session) HackTarget() (world.Country, bool) {
	if s.hack == nil {
		return world.Country{}, false
	}
	return s.hack.country, true
}

// RoundActive reports whether a round is running or still on screen.
func (s *Session) RoundActive() bool { return s.round != nil }

// Round returns the active round, or nil.
func (s *Session) Round() *minigame.Round {
	if s.round == nil {
		return nil
	}
	return s.round.round
}

// RoundTarget returns the country the active round was launched for.
func (s *Session) RoundTarget() (world.Country, bool) {
	if s.round == nil {
		return world.Country{}, false
	}
	return s.round.target, true
}

// CanHack reports whether a Hack event would start a hack now.
func (s *Session) CanHack() bool {
	return s.phase == PhaseActive && s.selected != "" && !s.hacked[s.selected] &&
		s.hack == nil && s.round == nil
}

// CanAttack reports whether an attack from the selected country on target
// would be executed now. No attack runs while a round is active.
func (s *Session) CanAttack(target string) bool {
	if s.phase != PhaseActive || s.round != nil || !s.hacked[s.selected] {
		return false
	}
	if target == s.selected || s.hacked[target] {
		return false
	}
	_, err := world.Lookup(target)
	return err == nil
}
