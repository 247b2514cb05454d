package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/netbreach/internal/detection"
	"github.com/vovakirdan/netbreach/internal/session"
	"github.com/vovakirdan/netbreach/internal/terminal"
	"github.com/vovakirdan/netbreach/internal/upgrade"
	"github.com/vovakirdan/netbreach/internal/world"
)

// Layout constants
const (
	minWidth   = 72
	minHeight  = 22
	logLines   = 4
	mapPercent = 60 // Share of the body width used by the map panel
)

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	w, h := m.config.ScreenW, m.config.ScreenH
	if w < minWidth || h < minHeight {
		return fmt.Sprintf("Terminal too small: %dx%d (need %dx%d)", w, h, minWidth, minHeight)
	}

	helpView := helpStyle.Render(m.help.View(m.currentHelp()))

	switch m.sess.Phase() {
	case session.PhaseExposed:
		return m.place(m.exposedView(), helpView)
	case session.PhaseCountdown:
		return m.place(m.countdownView(), helpView)
	case session.PhaseComplete:
		return m.place(m.completeView(), helpView)
	}

	header := m.headerView()
	logs := m.logView(w)
	bodyH := h - lipgloss.Height(header) - lipgloss.Height(logs) - lipgloss.Height(helpView)
	body := m.bodyView(w, bodyH)

	return lipgloss.JoinVertical(lipgloss.Left, header, body, logs, helpView)
}

// currentHelp picks the bindings for the active screen.
func (m Model) currentHelp() help.KeyMap {
	switch m.sess.Phase() {
	case session.PhaseExposed:
		return m.keys.exposedHelp()
	case session.PhaseCountdown:
		return bindings{short: nil}
	case session.PhaseComplete:
		return m.keys.completeHelp()
	}
	if m.sess.RoundActive() {
		return m.keys.roundHelp()
	}
	switch m.mode {
	case modeShop:
		return m.keys.shopHelp()
	case modeAttack:
		return m.keys.attackHelp()
	}
	return m.keys.mapHelp()
}

// place centres a modal on the screen above the help bar.
func (m Model) place(content, helpView string) string {
	h := m.config.ScreenH - lipgloss.Height(helpView)
	return lipgloss.Place(m.config.ScreenW, h, lipgloss.Center, lipgloss.Center, content) + "\n" + helpView
}

func (m Model) headerView() string {
	s := m.sess
	stats := []string{
		titleStyle.Render("NETBREACH"),
		stat("Population", humanize.Comma(s.DisplayPopulation())),
		stat("Points", humanize.Comma(int64(s.Points()))),
		stat("Compromised", fmt.Sprintf("%d/%d", s.HackedCount(), len(m.countries))),
		stat("Difficulty", string(s.Config().Difficulty)),
	}

	meter := s.Detection()
	color := bandColors[meter.Band()]
	bar := m.meter
	bar.FullColor = color
	level := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(color)).
		Render(fmt.Sprintf("%5.1f%%", meter.Level()))
	detect := labelStyle.Render("Detection ") + bar.ViewAs(meter.Fraction()) + " " + level
	if meter.Band() == detection.BandGlitch {
		detect += " " + classStyles[terminal.ClassError].Blink(true).Render("TRACE IMMINENT")
	}

	return strings.Join(stats, "  ") + "\n" + detect
}

func stat(label, value string) string {
	return labelStyle.Render(label+": ") + valueStyle.Render(value)
}

// bodyView lays out the map or round panel beside the side panel.
func (m Model) bodyView(width, height int) string {
	leftW := width * mapPercent / 100
	rightW := width - leftW
	innerH := height - 2

	left := m.leftPanel(leftW-2, innerH)
	right := m.rightPanel(rightW-2, innerH)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		panelStyle.Width(leftW-2).Height(innerH).Render(left),
		panelStyle.Width(rightW-2).Height(innerH).Render(right),
	)
}

func (m Model) leftPanel(width, height int) string {
	s := m.sess
	m.screen.Resize(width, height-1)

	if r := s.Round(); r != nil {
		target, _ := s.RoundTarget()
		r.Render(m.screen)
		return titleStyle.Render(fmt.Sprintf("FIREWALL BYPASS: %s [%s]", target.Name, r.Tier())) + "\n" + RenderScreen(m.screen)
	}

	title := "WORLD MAP"
	if m.mode == modeAttack {
		title = "SELECT STRIKE TARGET"
	}
	drawMap(m.screen, s, m.cursorCode(), m.mode == modeAttack)
	return titleStyle.Render(title) + "\n" + RenderScreen(m.screen)
}

func (m Model) rightPanel(width, height int) string {
	if m.mode == modeShop && !m.sess.RoundActive() {
		return clipLines(m.shopView(width), height)
	}

	info := m.targetView()
	used := lipgloss.Height(info) + 2
	term := m.sess.Terminal().Tail(max(0, height-used))

	out := info + "\n\n" + titleStyle.Render("TERMINAL")
	if len(term) > 0 {
		out += "\n" + renderLines(term, width)
	}
	return clipLines(out, height)
}

// targetView describes the cursor country.
func (m Model) targetView() string {
	s := m.sess
	c := m.countries[m.cursor]

	title := "TARGET"
	if m.mode == modeAttack {
		title = "STRIKE"
	}
	lines := []string{
		titleStyle.Render(title),
		stat("Country", fmt.Sprintf("%s (%s)", c.Name, c.Code)),
		stat("Population", humanize.Comma(c.Population)),
		stat("Security", c.Tier.String()),
		stat("Nuclear", c.Nuclear.String()),
		stat("Status", m.status(c)),
	}

	if m.mode == modeAttack {
		if src, ok := s.Selected(); ok && s.CanAttack(c.Code) {
			dmg := session.Damage(s.Config().Attack, src, c, s.Upgrades().Has(upgrade.Payload))
			lines = append(lines, stat("Est. casualties", humanize.Comma(dmg)))
		} else {
			lines = append(lines, labelStyle.Render("Cannot strike this target"))
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) status(c world.Country) string {
	s := m.sess
	var parts []string
	switch {
	case s.Hacked(c.Code):
		parts = append(parts, "Compromised")
	case m.isHackTarget(c):
		parts = append(parts, "Hacking...")
	default:
		parts = append(parts, "Secure")
	}
	if s.Attacked(c.Code) {
		parts = append(parts, "Struck")
	}
	if m.isSelected(c) {
		parts = append(parts, "Selected")
	}
	return strings.Join(parts, ", ")
}

func (m Model) isHackTarget(c world.Country) bool {
	t, ok := m.sess.HackTarget()
	return ok && t.Code == c.Code
}

func (m Model) isSelected(c world.Country) bool {
	sel, ok := m.sess.Selected()
	return ok && sel.Code == c.Code
}

// shopView lists the upgrade catalog.
func (m Model) shopView(width int) string {
	s := m.sess
	lines := []string{
		titleStyle.Render("UPGRADES") + "  " + stat("Points", humanize.Comma(int64(s.Points()))),
		"",
	}

	owned := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	afford := lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	short := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

	for i, u := range m.upgrades {
		cursor := "  "
		if i == m.shop {
			cursor = "> "
		}
		price := humanize.Comma(int64(u.Cost))
		style := short
		switch {
		case s.Upgrades().Has(u.ID):
			price, style = "OWNED", owned
		case s.Points() >= u.Cost:
			style = afford
		}
		line := fmt.Sprintf("%s%-20s %8s", cursor, u.Name, price)
		lines = append(lines, style.Render(truncate(line, width)))
	}

	sel := m.upgrades[m.shop]
	lines = append(lines, "", labelStyle.Render(truncate(sel.Description, width)))
	return strings.Join(lines, "\n")
}

func (m Model) logView(width int) string {
	lines := m.sess.Log().Tail(logLines)
	content := titleStyle.Render("SYSTEM LOG") + "\n" + renderLines(lines, width-4)
	return panelStyle.Width(width - 2).Height(logLines + 1).Render(content)
}

func (m Model) exposedView() string {
	s := m.sess
	sum, _ := s.Summary()
	lines := []string{
		lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")).Render("DETECTED"),
		"",
		"Your activities have been discovered!",
		"Global authorities are tracking your location.",
		"",
		stat("Global population", humanize.Comma(sum.Population)),
		stat("Countries compromised", fmt.Sprintf("%d", sum.Hacked)),
		stat("Points", humanize.Comma(int64(sum.Points))),
		"",
		classStyles[terminal.ClassWarning].Bold(true).Render("Press enter to launch all missiles"),
	}
	return modalStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) countdownView() string {
	pop := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")).
		Render(humanize.Comma(m.sess.DisplayPopulation()))
	return modalStyle.Render("LAUNCHING\n\n" + labelStyle.Render("Global population") + "\n" + pop)
}

func (m Model) completeView() string {
	s := m.sess
	sum, _ := s.Summary()
	played := time.Duration(sum.Ticks) * time.Second / time.Duration(m.config.TickRate)
	lines := []string{
		lipgloss.NewStyle().Bold(true).Foreground(accent).Render("SIMULATION COMPLETE"),
		"",
		stat("Final population", humanize.Comma(s.Population())),
		stat("Casualties", humanize.Comma(s.Casualties())),
		stat("Countries compromised", fmt.Sprintf("%d", sum.Hacked)),
		stat("Points", humanize.Comma(int64(sum.Points))),
		stat("Difficulty", string(sum.Difficulty)),
		stat("Time until detection", played.Truncate(time.Second).String()),
		"",
		labelStyle.Render("Run " + sum.RunID),
	}
	return modalStyle.Render(strings.Join(lines, "\n"))
}

// clipLines keeps the first n lines of s.
func clipLines(s string, n int) string {
	if n <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[:n], "\n")
}
