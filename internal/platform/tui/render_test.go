package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/netbreach/internal/core"
	"github.com/vovakirdan/netbreach/internal/session"
	"github.com/vovakirdan/netbreach/internal/terminal"
	"github.com/vovakirdan/netbreach/internal/world"
)

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(5, 2)
	s.DrawTextColored(0, 0, "ab", core.ColorRed)
	s.DrawTextColored(2, 0, "cd", core.ColorGreen)
	s.DrawText(0, 1, "xyz")

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("RenderScreen() has %d lines, expected 2", len(lines))
	}
	for _, want := range []string{"ab", "cd", "xyz"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderScreen() missing %q", want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in       string
		width    int
		expected string
	}{
		{"short", 10, "short"},
		{"exactly", 7, "exactly"},
		{"truncated", 5, "trun…"},
		{"ab", 1, "a"},
	}

	for _, tc := range tests {
		if got := truncate(tc.in, tc.width); got != tc.expected {
			t.Errorf("truncate(%q, %d) = %q, expected %q", tc.in, tc.width, got, tc.expected)
		}
	}
}

func TestClipLines(t *testing.T) {
	if got := clipLines("a\nb\nc", 2); got != "a\nb" {
		t.Errorf("clipLines() = %q", got)
	}
	if got := clipLines("a", 3); got != "a" {
		t.Errorf("clipLines() = %q", got)
	}
	if got := clipLines("a", 0); got != "" {
		t.Errorf("clipLines() = %q", got)
	}
}

func TestRenderLines(t *testing.T) {
	lines := []terminal.Line{
		{Text: "plain", Class: terminal.ClassOutput},
		{Text: "a very long error line", Class: terminal.ClassError},
	}
	out := renderLines(lines, 10)
	if !strings.Contains(out, "plain") || !strings.Contains(out, "a very lo…") {
		t.Errorf("renderLines() = %q", out)
	}
}

func TestMarkerStyle(t *testing.T) {
	s := session.New(session.Options{Config: testConfig(), Seed: 3})
	s.Enqueue(session.SelectTarget("CA"))
	s.Enqueue(session.Hack())
	for i := 0; i < 400 && !s.Hacked("CA"); i++ {
		s.Step()
	}

	tests := []struct {
		code  string
		glyph rune
		color core.Color
	}{
		{"CA", hackedChar, core.ColorBrightGreen},
		{"AU", markerChar, core.ColorGreen},
		{"DE", markerChar, core.ColorYellow},
		{"US", markerChar, core.ColorRed},
	}

	for _, tc := range tests {
		t.Run(tc.code, func(t *testing.T) {
			c, err := world.Lookup(tc.code)
			if err != nil {
				t.Fatal(err)
			}
			glyph, color := markerStyle(s, c)
			if glyph != tc.glyph || color != tc.color {
				t.Errorf("markerStyle(%s) = %q, %v; expected %q, %v", tc.code, glyph, color, tc.glyph, tc.color)
			}
		})
	}
}

func TestDrawMapStaysInBounds(t *testing.T) {
	s := session.New(session.Options{Config: testConfig(), Seed: 9})
	dst := core.NewScreen(30, 10)
	drawMap(dst, s, "US", false)

	out := dst.String()
	if !strings.ContainsRune(out, markerChar) {
		t.Error("map has no markers")
	}
	if len(strings.Split(out, "\n")) != 10 {
		t.Error("map should fill the screen height")
	}
}
