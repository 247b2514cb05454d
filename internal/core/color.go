package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightWhite
	ColorOrange
	ColorGray
	ColorDimGreen
)

// HealthColor maps a remaining-health fraction to a color, fading from
// green at full health through yellow and orange to red.
func HealthColor(fraction float64) Color {
	switch {
	case fraction > 0.75:
		return ColorBrightGreen
	case fraction > 0.5:
		return ColorYellow
	case fraction > 0.25:
		return ColorOrange
	default:
		return ColorRed
	}
}
