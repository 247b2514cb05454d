package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/netbreach/internal/core"
	"github.com/vovakirdan/netbreach/internal/detection"
	"github.com/vovakirdan/netbreach/internal/terminal"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:      lipgloss.NewStyle(),
	core.ColorRed:          lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:        lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:       lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:         lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta:      lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:         lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:        lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightRed:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorBrightGreen:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorBrightYellow: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBrightWhite:  lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorOrange:       lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:         lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorDimGreen:     lipgloss.NewStyle().Foreground(lipgloss.Color("22")),
}

// Panel and text styles. Green on black, like the hacker terminal.
var (
	accent = lipgloss.Color("10")
	dim    = lipgloss.Color("241")

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	labelStyle = lipgloss.NewStyle().Foreground(dim)
	valueStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	helpStyle  = lipgloss.NewStyle().Foreground(dim)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("22"))

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("9")).
			Padding(1, 4).
			Align(lipgloss.Center)
)

// classStyles colours terminal lines by class.
var classStyles = map[terminal.Class]lipgloss.Style{
	terminal.ClassOutput:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	terminal.ClassInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	terminal.ClassSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
	terminal.ClassWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	terminal.ClassError:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
}

// bandColors colours the detection meter.
var bandColors = map[detection.Band]string{
	detection.BandLow:      "10",
	detection.BandElevated: "11",
	detection.BandCritical: "9",
	detection.BandGlitch:   "13",
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// renderLines styles terminal lines, oldest first.
func renderLines(lines []terminal.Line, width int) string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		text := terminal.Format(l)
		if width > 0 && lipgloss.Width(text) > width {
			text = truncate(text, width)
		}
		style, ok := classStyles[l.Class]
		if !ok {
			style = classStyles[terminal.ClassOutput]
		}
		out = append(out, style.Render(text))
	}
	return strings.Join(out, "\n")
}

// truncate cuts s to at most width runes.
func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 1 {
		return string(r[:width])
	}
	return string(r[:width-1]) + "…"
}
