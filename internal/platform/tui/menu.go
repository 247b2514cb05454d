package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/netbreach/internal/config"
)

// MenuItem is a selectable difficulty in the start menu.
type MenuItem struct {
	Difficulty config.Difficulty
	Multiplier float64
}

// MenuModel is the Bubble Tea model for the start menu.
type MenuModel struct {
	items    []MenuItem
	cursor   int
	width    int
	height   int
	keys     KeyMap
	quitting bool
	selected *MenuItem // Set when user selects a difficulty
}

// NewMenuModel creates the start menu with the configured difficulty
// under the cursor.
func NewMenuModel(cfg config.GameConfig, width, height int) MenuModel {
	items := make([]MenuItem, 0, len(config.Difficulties))
	cursor := 0
	for i, d := range config.Difficulties {
		if d == cfg.Difficulty {
			cursor = i
		}
		items = append(items, MenuItem{Difficulty: d, Multiplier: cfg.Multiplier.For(d)})
	}

	return MenuModel{
		items:  items,
		cursor: cursor,
		width:  width,
		height: height,
		keys:   DefaultKeyMap(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Back):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Select), msg.String() == " ":
		item := m.items[m.cursor]
		m.selected = &item
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting || m.selected != nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText("N E T B R E A C H", m.width, titleStyle))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select difficulty", m.width, labelStyle))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = valueStyle
		}
		line := fmt.Sprintf("%s%-8s x%.1f detection", cursor, item.Difficulty, item.Multiplier)
		b.WriteString(centerText(line, m.width, style))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Up/Down: Navigate  |  Enter: Start  |  Q: Quit", m.width, helpStyle))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// centerText centers text within given width and styles it.
func centerText(text string, width int, style lipgloss.Style) string {
	w := lipgloss.Width(text)
	if w >= width {
		return style.Render(text)
	}
	return strings.Repeat(" ", (width-w)/2) + style.Render(text)
}

// RunMenu runs the start menu and returns the chosen difficulty.
// ok is false when the player quit instead.
func RunMenu(cfg config.GameConfig, width, height int) (d config.Difficulty, ok bool, err error) {
	model := NewMenuModel(cfg, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return cfg.Difficulty, false, err
	}

	m, isMenu := finalModel.(MenuModel)
	if !isMenu || m.Selected() == nil {
		return cfg.Difficulty, false, nil
	}
	return m.Selected().Difficulty, true, nil
}
