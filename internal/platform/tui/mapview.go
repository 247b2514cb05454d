package tui

import (
	"github.com/vovakirdan/netbreach/internal/core"
	"github.com/vovakirdan/netbreach/internal/session"
	"github.com/vovakirdan/netbreach/internal/world"
)

// Map glyphs.
const (
	markerChar   = '●'
	hackedChar   = '◉'
	attackedChar = '✕'
	gridChar     = '·'
)

// drawMap draws every country marker with its code. The cursor country is
// highlighted; attackMode switches the highlight to the strike colour.
func drawMap(dst *core.Screen, s *session.Session, cursor string, attackMode bool) {
	dst.Clear()
	w, h := dst.Width(), dst.Height()
	for y := 1; y < h; y += 3 {
		for x := 2; x < w; x += 6 {
			dst.SetColored(x, y, gridChar, core.ColorDimGreen)
		}
	}

	m := s.Map()
	selected, _ := s.Selected()
	for _, mk := range m.Markers {
		x, y := m.Project(mk, w, h)
		glyph, color := markerStyle(s, mk.Country)

		switch {
		case mk.Code == cursor && attackMode:
			color = core.ColorOrange
		case mk.Code == cursor:
			color = core.ColorBrightYellow
		case mk.Code == selected.Code:
			color = core.ColorBrightWhite
		}

		// Keep the label inside the panel.
		if x+len(mk.Code) >= w {
			x = w - len(mk.Code) - 1
		}
		if x < 0 {
			x = 0
		}
		dst.SetColored(x, y, glyph, color)
		dst.DrawTextColored(x+1, y, mk.Code, color)
	}
}

// markerStyle picks the glyph and colour for a country's status.
func markerStyle(s *session.Session, c world.Country) (rune, core.Color) {
	switch {
	case s.Attacked(c.Code):
		return attackedChar, core.ColorGray
	case s.Hacked(c.Code):
		return hackedChar, core.ColorBrightGreen
	}
	switch c.Tier {
	case core.TierEasy:
		return markerChar, core.ColorGreen
	case core.TierMedium:
		return markerChar, core.ColorYellow
	default:
		return markerChar, core.ColorRed
	}
}
