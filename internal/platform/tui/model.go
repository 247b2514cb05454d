package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/netbreach/internal/core"
	"github.com/vovakirdan/netbreach/internal/detection"
	"github.com/vovakirdan/netbreach/internal/session"
	"github.com/vovakirdan/netbreach/internal/upgrade"
	"github.com/vovakirdan/netbreach/internal/world"
)

// mode is the panel the player is interacting with outside a round.
type mode int

const (
	modeMap    mode = iota // Browsing targets
	modeAttack             // Choosing a strike target
	modeShop               // Upgrade shop
)

// Model is the Bubble Tea model for a netbreach run.
type Model struct {
	sess      *session.Session
	opts      session.Options
	screen    *core.Screen
	keys      KeyMap
	help      help.Model
	meter     progress.Model
	config    core.RuntimeConfig
	mode      mode
	cursor    int // Index into countries
	shop      int // Index into upgrades
	quitting  bool
	fixedSeed bool // Restart with the same seed

	countries []world.Country
	upgrades  []upgrade.Upgrade
}

// NewModel creates a model and starts a new session.
func NewModel(opts session.Options, cfg core.RuntimeConfig) Model {
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	fixedSeed := opts.Seed != 0 || opts.RNG != nil
	// Use time-based seed if not specified
	if !fixedSeed {
		opts.Seed = time.Now().UnixNano()
	}
	opts.TickRate = cfg.TickRate

	m := Model{
		opts:      opts,
		screen:    core.NewScreen(1, 1),
		keys:      DefaultKeyMap(),
		help:      help.New(),
		meter:     progress.New(progress.WithSolidFill(bandColors[detection.BandLow]), progress.WithoutPercentage()),
		config:    cfg,
		fixedSeed: fixedSeed,
		countries: world.Countries(),
		upgrades:  upgrade.Catalog(),
	}
	m.sess = m.newSession()
	m.resize(cfg.ScreenW, cfg.ScreenH)
	return m
}

// newSession starts a run with the model's options.
func (m Model) newSession() *session.Session {
	s := session.New(m.opts)

	logger := m.opts.Logger
	s.OnExposed(func(sum session.Summary) {
		if logger == nil {
			return
		}
		logger.Info("run exposed",
			"run", sum.RunID,
			"population", sum.Population,
			"points", sum.Points,
			"hacked", sum.Hacked,
		)
	})
	return s
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		m.sess.Step()
		if m.sess.Phase() != session.PhaseActive {
			m.mode = modeMap
		}
		return m, tickCmd(m.config.TickRate)
	}

	return m, nil
}

// handleKey routes a key to the handler of the current screen.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	switch m.sess.Phase() {
	case session.PhaseExposed:
		if key.Matches(msg, m.keys.Launch) {
			m.sess.Enqueue(session.LaunchFinal())
		}
		return m, nil
	case session.PhaseCountdown:
		return m, nil
	case session.PhaseComplete:
		if key.Matches(msg, m.keys.Restart) {
			m.restart()
		}
		return m, nil
	}

	if m.sess.RoundActive() {
		m.handleRoundKey(msg)
		return m, nil
	}

	switch m.mode {
	case modeShop:
		m.handleShopKey(msg)
	case modeAttack:
		m.handleAttackKey(msg)
	default:
		m.handleMapKey(msg)
	}
	return m, nil
}

func (m *Model) handleMapKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Select):
		m.sess.Enqueue(session.SelectTarget(m.cursorCode()))
	case key.Matches(msg, m.keys.Hack):
		m.sess.Enqueue(session.Hack())
	case key.Matches(msg, m.keys.Attack):
		if c, ok := m.sess.Selected(); ok && m.sess.Hacked(c.Code) {
			m.mode = modeAttack
		}
	case key.Matches(msg, m.keys.Shop):
		m.mode = modeShop
	}
}

func (m *Model) handleAttackKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Select):
		m.sess.Enqueue(session.Attack(m.cursorCode()))
		m.mode = modeMap
	case key.Matches(msg, m.keys.Back):
		m.mode = modeMap
	}
}

func (m *Model) handleShopKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.shop > 0 {
			m.shop--
		}
	case key.Matches(msg, m.keys.Down):
		if m.shop < len(m.upgrades)-1 {
			m.shop++
		}
	case key.Matches(msg, m.keys.Select):
		m.sess.Enqueue(session.Purchase(m.upgrades[m.shop].ID))
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Shop):
		m.mode = modeMap
	}
}

func (m *Model) handleRoundKey(msg tea.KeyMsg) {
	switch a := m.keys.RoundAction(msg); a {
	case core.ActionShoot:
		m.sess.Enqueue(session.Shoot())
	case core.ActionPause:
		m.sess.Enqueue(session.TogglePause())
	case core.ActionAbort:
		m.sess.Enqueue(session.QuitRound())
	default:
		if p, ok := perkFor(a); ok {
			m.sess.Enqueue(session.UsePerk(p))
		}
	}
}

// moveCursor steps through the country list, wrapping at both ends.
func (m *Model) moveCursor(delta int) {
	n := len(m.countries)
	m.cursor = ((m.cursor+delta)%n + n) % n
}

func (m Model) cursorCode() string {
	return m.countries[m.cursor].Code
}

// restart begins a new run after completion.
func (m *Model) restart() {
	if !m.fixedSeed {
		m.opts.Seed = time.Now().UnixNano()
	}
	m.opts.RunID = ""
	m.sess = m.newSession()
	m.mode = modeMap
	m.cursor = 0
	m.shop = 0
}

// resize updates layout-dependent widgets.
func (m *Model) resize(width, height int) {
	m.config.ScreenW = width
	m.config.ScreenH = height
	m.help.Width = width
	m.meter.Width = max(10, width/3)
}

// Session returns the running session.
func (m Model) Session() *session.Session {
	return m.sess
}

// Run starts the Bubble Tea program with a new session.
func Run(opts session.Options, cfg core.RuntimeConfig, logger *log.Logger) error {
	if logger != nil {
		opts.Logger = logger
	}
	model := NewModel(opts, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
