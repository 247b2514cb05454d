package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/netbreach/internal/config"
)

func TestMenuSelectsDifficulty(t *testing.T) {
	cfg := config.DefaultGameConfig()
	m := NewMenuModel(cfg, 80, 24)

	if m.items[m.cursor].Difficulty != config.DifficultyMedium {
		t.Fatalf("cursor starts on %s, expected the configured difficulty", m.items[m.cursor].Difficulty)
	}
	if !strings.Contains(m.View(), "extreme") {
		t.Error("menu should list every difficulty")
	}

	next, _ := m.Update(runes("j"))
	next, cmd := next.Update(enterKey)
	m = next.(MenuModel)

	if cmd == nil || m.Selected() == nil {
		t.Fatal("enter should select and quit")
	}
	if got := m.Selected(); got.Difficulty != config.DifficultyHard || got.Multiplier != 1.5 {
		t.Errorf("Selected() = %+v, expected hard x1.5", got)
	}
}

func TestMenuQuit(t *testing.T) {
	m := NewMenuModel(config.DefaultGameConfig(), 80, 24)
	next, _ := m.Update(runes("q"))
	m = next.(MenuModel)
	if m.Selected() != nil || !m.quitting {
		t.Error("q should quit without a selection")
	}
}
