// Package world holds the country catalog and the randomized map markers
// the player selects targets from.
package world

import (
	"fmt"

	"github.com/vovakirdan/netbreach/internal/core"
)

// Nuclear is the nuclear strength of a country. It scales attack damage.
type Nuclear int

const (
	NuclearWeak Nuclear = iota
	NuclearModerate
	NuclearStrong
)

// String returns the display name of the strength.
func (n Nuclear) String() string {
	switch n {
	case NuclearWeak:
		return "Weak"
	case NuclearModerate:
		return "Moderate"
	case NuclearStrong:
		return "Strong"
	default:
		return "Unknown"
	}
}

// Country is a static catalog entry.
type Country struct {
	Code       string
	Name       string
	Population int64
	Tier       core.Tier
	Nuclear    Nuclear
}

var catalog = []Country{
	{"US", "United States", 331002651, core.TierHard, NuclearStrong},
	{"CN", "China", 1439323776, core.TierHard, NuclearStrong},
	{"IN", "India", 1380004385, core.TierHard, NuclearStrong},
	{"RU", "Russia", 145934462, core.TierHard, NuclearStrong},
	{"BR", "Brazil", 212559417, core.TierMedium, NuclearModerate},
	{"JP", "Japan", 126476461, core.TierMedium, NuclearStrong},
	{"DE", "Germany", 83783942, core.TierMedium, NuclearModerate},
	{"FR", "France", 65273511, core.TierMedium, NuclearStrong},
	{"GB", "United Kingdom", 67886011, core.TierMedium, NuclearStrong},
	{"IT", "Italy", 60461826, core.TierMedium, NuclearModerate},
	{"CA", "Canada", 37742154, core.TierEasy, NuclearWeak},
	{"AU", "Australia", 25499884, core.TierEasy, NuclearWeak},
	{"MX", "Mexico", 128932753, core.TierMedium, NuclearWeak},
	{"KR", "South Korea", 51269185, core.TierMedium, NuclearModerate},
	{"ZA", "South Africa", 59308690, core.TierEasy, NuclearWeak},
	{"EG", "Egypt", 102334404, core.TierMedium, NuclearWeak},
	{"NG", "Nigeria", 206139589, core.TierMedium, NuclearWeak},
	{"PK", "Pakistan", 220892340, core.TierHard, NuclearStrong},
	{"BD", "Bangladesh", 164689383, core.TierMedium, NuclearWeak},
	{"TR", "Turkey", 84339067, core.TierMedium, NuclearModerate},
}

// Countries returns the catalog in its canonical order.
func Countries() []Country {
	out := make([]Country, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup finds a country by its two-letter code.
func Lookup(code string) (Country, error) {
	for _, c := range catalog {
		if c.Code == code {
			return c, nil
		}
	}
	return Country{}, fmt.Errorf("world: unknown country %q", code)
}

// Marker places a country on the map.
type Marker struct {
	Country
	X, Y   float64 // Map units
	Radius float64
}

// Map is the set of markers for one run.
type Map struct {
	Width, Height float64
	Markers       []Marker
}

// NewMap scatters every country over a width x height area, keeping margin
// units clear of each edge. Positions depend only on the rng state.
func NewMap(rng core.RNG, width, height, margin float64) *Map {
	m := &Map{
		Width:   width,
		Height:  height,
		Markers: make([]Marker, 0, len(catalog)),
	}
	spanX := width - 2*margin
	spanY := height - 2*margin
	for _, c := range catalog {
		m.Markers = append(m.Markers, Marker{
			Country: c,
			X:       margin + rng.Float64()*spanX,
			Y:       margin + rng.Float64()*spanY,
			Radius:  15 + float64(c.Population)/100_000_000,
		})
	}
	return m
}

// Marker returns the marker for the given code.
func (m *Map) Marker(code string) (Marker, bool) {
	for _, mk := range m.Markers {
		if mk.Code == code {
			return mk, true
		}
	}
	return Marker{}, false
}

// Project maps a marker position onto a cols x rows grid.
func (m *Map) Project(mk Marker, cols, rows int) (int, int) {
	if m.Width <= 0 || m.Height <= 0 || cols <= 0 || rows <= 0 {
		return 0, 0
	}
	x := int(mk.X / m.Width * float64(cols))
	y := int(mk.Y / m.Height * float64(rows))
	return core.Clamp(x, 0, cols-1), core.Clamp(y, 0, rows-1)
}
