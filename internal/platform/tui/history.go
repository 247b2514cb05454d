package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/netbreach/internal/storage"
)

// History layout constants
const (
	minWidthForSidebar = 100 // Minimum width to show the awards sidebar
	sidebarWidth       = 32  // Width of awards sidebar
	maxRuns            = 100 // Max runs to load
)

// HistoryKeyMap defines the key bindings for the run history.
type HistoryKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Quit}}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel is the Bubble Tea model for the run history screen.
type HistoryModel struct {
	store       *storage.Store
	runs        []storage.Run
	awards      []storage.Award // Awards of the run under the cursor
	stats       *storage.Stats
	table       table.Model
	help        help.Model
	keys        HistoryKeyMap
	width       int
	height      int
	quitting    bool
	showSidebar bool
}

// NewHistoryModel creates a history model and loads the recent runs.
func NewHistoryModel(store *storage.Store, width, height int) HistoryModel {
	m := HistoryModel{
		store:       store,
		keys:        DefaultHistoryKeyMap(),
		help:        help.New(),
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()
	m.loadRuns()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Level", Width: 8},
		{Title: "Outcome", Width: 9},
		{Title: "Points", Width: 8},
		{Title: "Hacked", Width: 6},
		{Title: "Casualties", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-10)), // Leave room for header, stats and help
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("22")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("0")).
		Background(accent).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadRuns loads recent runs and aggregate stats from the ledger.
func (m *HistoryModel) loadRuns() {
	m.runs, m.stats = nil, nil
	if m.store != nil {
		if runs, err := m.store.RecentRuns(maxRuns); err == nil {
			m.runs = runs
		}
		if stats, err := m.store.GetStats(); err == nil {
			m.stats = stats
		}
	}

	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row{
			r.CreatedAt.Format("Jan 02 15:04"),
			r.Difficulty,
			r.Outcome,
			humanize.Comma(int64(r.Points)),
			fmt.Sprintf("%d", r.Hacked),
			humanize.Comma(r.Casualties),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
	m.loadAwards()
}

// loadAwards loads the awards of the run under the cursor.
func (m *HistoryModel) loadAwards() {
	m.awards = nil
	i := m.table.Cursor()
	if m.store == nil || i < 0 || i >= len(m.runs) {
		return
	}
	if awards, err := m.store.RunAwards(m.runs[i].ID); err == nil {
		m.awards = awards
	}
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history screen.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			m.loadAwards()
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		cursor := m.table.Cursor()
		m.table = m.createTable()
		m.loadRuns()
		m.table.SetCursor(cursor)
		m.loadAwards()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history screen.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(centerText("RUN HISTORY", m.width, titleStyle.MarginBottom(1)))
	b.WriteString("\n")
	b.WriteString(centerText(m.statsLine(), m.width, labelStyle))
	b.WriteString("\n\n")

	tablePanel := panelStyle.Padding(0, 1).Render(m.renderTableContent())
	if m.showSidebar {
		sidebar := panelStyle.Width(sidebarWidth).Padding(0, 1).Render(m.renderAwards())
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tablePanel, "  ", sidebar))
	} else {
		b.WriteString(tablePanel)
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m HistoryModel) statsLine() string {
	if m.stats == nil || m.stats.Runs == 0 {
		return "No runs recorded"
	}
	return fmt.Sprintf("Runs: %d  Best: %s  Avg: %.0f  Total casualties: %s",
		m.stats.Runs,
		humanize.Comma(int64(m.stats.BestPoints)),
		m.stats.AvgPoints,
		humanize.Comma(m.stats.TotalCasualties),
	)
}

// renderTableContent renders the table or empty message.
func (m HistoryModel) renderTableContent() string {
	if len(m.runs) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(dim).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No runs recorded yet.\nPlay with --db <path> to keep a history.")
	}
	return m.table.View()
}

// renderAwards lists the point awards of the selected run.
func (m HistoryModel) renderAwards() string {
	var b strings.Builder
	b.WriteString("Awards\n")
	b.WriteString(strings.Repeat("-", sidebarWidth-4))
	b.WriteString("\n")

	if len(m.awards) == 0 {
		b.WriteString(labelStyle.Render("none"))
		return b.String()
	}
	for _, a := range m.awards {
		line := fmt.Sprintf("%-5s %-3s %6d %s", a.Kind, a.Target, a.Points, a.Detail)
		b.WriteString(truncate(line, sidebarWidth-4))
		b.WriteString("\n")
	}
	return b.String()
}

// RunHistory runs the history screen.
func RunHistory(store *storage.Store, width, height int) error {
	model := NewHistoryModel(store, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
