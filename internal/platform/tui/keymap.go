package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/netbreach/internal/core"
	"github.com/vovakirdan/netbreach/internal/minigame"
)

// KeyMap defines every key binding of the game screen.
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Hack   key.Binding
	Attack key.Binding
	Shop   key.Binding
	Back   key.Binding
	Help   key.Binding
	Quit   key.Binding

	Shoot key.Binding
	Pause key.Binding
	Abort key.Binding
	Perk1 key.Binding
	Perk2 key.Binding
	Perk3 key.Binding
	Perk4 key.Binding

	Launch  key.Binding
	Restart key.Binding
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "prev"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "next"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Hack: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "hack"),
		),
		Attack: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "attack"),
		),
		Shop: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "upgrades"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "back"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Shoot: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "shoot"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Abort: key.NewBinding(
			key.WithKeys("x", "esc"),
			key.WithHelp("x/esc", "abort"),
		),
		Perk1: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "clear"),
		),
		Perk2: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "+balls"),
		),
		Perk3: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "explode"),
		),
		Perk4: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "slow"),
		),
		Launch: key.NewBinding(
			key.WithKeys("enter", "l"),
			key.WithHelp("enter", "launch"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
	}
}

// RoundAction translates a key to a minigame action.
// Returns ActionNone for keys the round does not use.
func (k KeyMap) RoundAction(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Shoot):
		return core.ActionShoot
	case key.Matches(msg, k.Pause):
		return core.ActionPause
	case key.Matches(msg, k.Abort):
		return core.ActionAbort
	case key.Matches(msg, k.Perk1):
		return core.ActionPerkClear
	case key.Matches(msg, k.Perk2):
		return core.ActionPerkExtraBalls
	case key.Matches(msg, k.Perk3):
		return core.ActionPerkExplosive
	case key.Matches(msg, k.Perk4):
		return core.ActionPerkSlow
	}
	return core.ActionNone
}

// perkFor returns the perk bound to a perk action.
func perkFor(a core.Action) (minigame.Perk, bool) {
	for _, p := range minigame.Perks {
		if p.Action() == a {
			return p, true
		}
	}
	return 0, false
}

// bindings is a help.KeyMap over a fixed set of bindings.
type bindings struct {
	short []key.Binding
	full  [][]key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (b bindings) ShortHelp() []key.Binding { return b.short }

// FullHelp returns key bindings for the full help view.
func (b bindings) FullHelp() [][]key.Binding {
	if b.full == nil {
		return [][]key.Binding{b.short}
	}
	return b.full
}

func (k KeyMap) mapHelp() bindings {
	return bindings{
		short: []key.Binding{k.Up, k.Down, k.Select, k.Hack, k.Attack, k.Shop, k.Help, k.Quit},
		full: [][]key.Binding{
			{k.Up, k.Down, k.Select},
			{k.Hack, k.Attack, k.Shop},
			{k.Help, k.Quit},
		},
	}
}

func (k KeyMap) attackHelp() bindings {
	return bindings{short: []key.Binding{k.Up, k.Down, withHelp(k.Select, "enter", "strike"), k.Back, k.Quit}}
}

func (k KeyMap) shopHelp() bindings {
	return bindings{short: []key.Binding{k.Up, k.Down, withHelp(k.Select, "enter", "buy"), k.Back, k.Quit}}
}

func (k KeyMap) roundHelp() bindings {
	return bindings{
		short: []key.Binding{k.Shoot, k.Pause, k.Abort, k.Perk1, k.Perk2, k.Perk3, k.Perk4},
		full: [][]key.Binding{
			{k.Shoot, k.Pause, k.Abort},
			{k.Perk1, k.Perk2, k.Perk3, k.Perk4},
			{k.Quit},
		},
	}
}

func (k KeyMap) exposedHelp() bindings {
	return bindings{short: []key.Binding{k.Launch, k.Quit}}
}

func (k KeyMap) completeHelp() bindings {
	return bindings{short: []key.Binding{k.Restart, k.Quit}}
}

// withHelp copies a binding with different help text.
func withHelp(b key.Binding, keys, desc string) key.Binding {
	b.SetHelp(keys, desc)
	return b
}
