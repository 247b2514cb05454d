package session

import (
	"testing"

	"github.com/vovakirdan/netbreach/internal/config"
	"github.com/vovakirdan/netbreach/internal/minigame"
	"github.com/vovakirdan/netbreach/internal/storage"
	"github.com/vovakirdan/netbreach/internal/upgrade"
	"github.com/vovakirdan/netbreach/internal/world"
)

type fakeLedger struct {
	awards []storage.Award
	runs   []storage.Run
}

func (f *fakeLedger) RecordAward(a storage.Award) (int64, error) {
	f.awards = append(f.awards, a)
	return int64(len(f.awards)), nil
}

func (f *fakeLedger) SaveRun(r storage.Run) error {
	f.runs = append(f.runs, r)
	return nil
}

// testConfig disables passive detection so levels are exact.
func testConfig() config.GameConfig {
	cfg := config.DefaultGameConfig()
	cfg.Detection.PassiveAmount = 0
	return cfg
}

func newSession(cfg config.GameConfig, ledger Ledger) *Session {
	opts := Options{Config: cfg, TickRate: 60, Seed: 42, RunID: "test-run"}
	if ledger != nil {
		opts.Ledger = ledger
	}
	return New(opts)
}

func steps(s *Session, n int) {
	for range n {
		s.Step()
	}
}

// launchRound hacks code and steps until its round starts.
func launchRound(t *testing.T, s *Session, code string) {
	t.Helper()
	s.Enqueue(SelectTarget(code))
	s.Enqueue(Hack())
	for i := 0; i < 1000 && !s.RoundActive(); i++ {
		s.Step()
	}
	if !s.RoundActive() {
		t.Fatalf("round for %s never started", code)
	}
}

// compromise marks code as hacked and selects it.
func compromise(s *Session, code string) {
	s.hacked[code] = true
	s.hackedOrder = append(s.hackedOrder, code)
	s.selected = code
}

func TestHackSequence(t *testing.T) {
	s := newSession(testConfig(), nil)
	s.Enqueue(SelectTarget("CA"))
	s.Enqueue(Hack())

	s.Step()
	if got := s.Detection().Level(); got != 3 {
		t.Errorf("detection after hack = %v, expected 3", got)
	}
	if !s.HackInFlight() {
		t.Fatal("hack should be in flight")
	}

	steps(s, 47)
	lines := s.Terminal().Lines()
	if len(lines) != 1 || lines[0].Text != "Initiating hack on Canada..." {
		t.Fatalf("terminal after 800ms = %v", lines)
	}

	steps(s, 287)
	if s.Hacked("CA") {
		t.Fatal("target compromised too early")
	}
	s.Step()
	if !s.Hacked("CA") {
		t.Fatal("target should be compromised after the script")
	}
	if s.Points() != 100 {
		t.Errorf("Points() = %d, expected 100", s.Points())
	}
	if n := s.Terminal().Len(); n != 9 {
		t.Errorf("terminal has %d lines, expected 9", n)
	}

	steps(s, 89)
	if s.RoundActive() {
		t.Fatal("round started before the launch delay")
	}
	s.Step()
	if !s.RoundActive() || s.HackInFlight() {
		t.Fatal("round should start after the launch delay")
	}
	if r := s.Round(); r.Blocks() != 8 || r.Ammo() != 3 {
		t.Errorf("round has %d blocks and %d ammo, expected 8 and 3", r.Blocks(), r.Ammo())
	}
}

func TestHackGuards(t *testing.T) {
	s := newSession(testConfig(), nil)

	s.Enqueue(Hack())
	s.Step()
	if s.HackInFlight() || s.Detection().Level() != 0 {
		t.Error("hack without a target should be ignored")
	}

	s.Enqueue(SelectTarget("XX"))
	s.Step()
	if _, ok := s.Selected(); ok {
		t.Error("unknown country should not be selected")
	}

	s.Enqueue(SelectTarget("DE"))
	s.Enqueue(Hack())
	s.Enqueue(Hack())
	s.Step()
	if got := s.Detection().Level(); got != 7 {
		t.Errorf("detection = %v, expected a single medium hack cost of 7", got)
	}

	compromise(s, "FR")
	s.hack = nil
	s.Enqueue(Hack())
	s.Step()
	if s.HackInFlight() {
		t.Error("hack on a compromised target should be ignored")
	}
}

func TestRoundSuccess(t *testing.T) {
	ledger := &fakeLedger{}
	s := newSession(testConfig(), ledger)
	launchRound(t, s, "US")

	if got := s.Detection().Level(); got != 15 {
		t.Fatalf("detection = %v, expected 15", got)
	}
	if s.Round().Blocks() != 16 {
		t.Errorf("hard round has %d blocks, expected 16", s.Round().Blocks())
	}

	s.Enqueue(UsePerk(minigame.PerkClearAll))
	s.Step()
	if s.Round().Outcome() != minigame.OutcomeSuccess {
		t.Fatalf("Outcome() = %v, expected success", s.Round().Outcome())
	}
	if got := s.Detection().Level(); got != 5 {
		t.Errorf("detection = %v, expected 5", got)
	}

	steps(s, 119)
	if !s.RoundActive() {
		t.Fatal("result should stay on screen for the hide delay")
	}
	s.Step()
	if s.RoundActive() {
		t.Fatal("round should close after the hide delay")
	}

	if len(ledger.awards) != 2 {
		t.Fatalf("ledger has %d awards, expected hack and round", len(ledger.awards))
	}
	if a := ledger.awards[0]; a.Kind != "hack" || a.Target != "US" || a.Points != 500 || a.RunID != "test-run" {
		t.Errorf("hack award = %+v", a)
	}
	if a := ledger.awards[1]; a.Kind != "round" || a.Detail != "success" {
		t.Errorf("round award = %+v", a)
	}
}

func TestRoundFailure(t *testing.T) {
	s := newSession(testConfig(), nil)
	launchRound(t, s, "CA")

	for i := 0; i < 2000 && s.Round().Outcome() == minigame.OutcomeNone; i++ {
		s.Step()
	}
	if s.Round().Outcome() != minigame.OutcomeFailure {
		t.Fatalf("Outcome() = %v, expected failure", s.Round().Outcome())
	}
	if got := s.Detection().Level(); got != 23 {
		t.Errorf("detection = %v, expected 3 + 20", got)
	}

	steps(s, 120)
	if s.RoundActive() {
		t.Error("round should close after the hide delay")
	}
}

func TestRoundAbort(t *testing.T) {
	s := newSession(testConfig(), nil)
	launchRound(t, s, "BR")

	s.Enqueue(Shoot())
	s.Enqueue(QuitRound())
	s.Step()

	if s.RoundActive() {
		t.Error("aborted round should close immediately")
	}
	if got := s.Detection().Level(); got != 22 {
		t.Errorf("detection = %v, expected 7 + 15", got)
	}
}

func TestRoundEventsKeepQueueOrder(t *testing.T) {
	s := newSession(testConfig(), nil)
	launchRound(t, s, "DE")
	r := s.Round()

	s.Enqueue(Shoot())
	s.Enqueue(Shoot())
	s.Step()
	if r.Ammo() != 1 || r.Balls() != 2 {
		t.Errorf("two shots in one tick: ammo=%d balls=%d, expected 1 and 2", r.Ammo(), r.Balls())
	}

	s.Enqueue(TogglePause())
	s.Enqueue(TogglePause())
	s.Step()
	if r.Paused() {
		t.Error("two pause toggles in one tick should cancel out")
	}

	s.Enqueue(TogglePause())
	s.Enqueue(Shoot())
	s.Step()
	if !r.Paused() || r.Ammo() != 1 {
		t.Errorf("shot after pause: paused=%v ammo=%d, expected true and 1", r.Paused(), r.Ammo())
	}
}

func TestAttackIgnoredDuringRound(t *testing.T) {
	s := newSession(testConfig(), nil)
	launchRound(t, s, "CA")
	before := s.Population()

	if s.CanAttack("US") {
		t.Error("CanAttack() should be false while a round is active")
	}
	s.Enqueue(Attack("US"))
	s.Step()
	if s.Population() != before || s.Attacked("US") {
		t.Error("attack should be ignored during a round")
	}

	s.Enqueue(QuitRound())
	s.Step()
	if !s.CanAttack("US") {
		t.Error("CanAttack() should be true once the round closes")
	}
}

func TestSelectIgnoredDuringRound(t *testing.T) {
	s := newSession(testConfig(), nil)
	launchRound(t, s, "CA")

	s.Enqueue(SelectTarget("US"))
	s.Step()
	if c, _ := s.Selected(); c.Code != "CA" {
		t.Errorf("selection changed to %s during a round", c.Code)
	}
}

func TestUpgradesInRounds(t *testing.T) {
	t.Run("botnet", func(t *testing.T) {
		s := newSession(testConfig(), nil)
		s.points = 800
		s.Enqueue(Purchase(upgrade.Botnet))
		s.Step()
		if !s.Upgrades().Has(upgrade.Botnet) || s.Points() != 0 {
			t.Fatalf("botnet not bought, points = %d", s.Points())
		}

		launchRound(t, s, "CA")
		if s.Round().Ammo() != 4 {
			t.Errorf("Ammo() = %d, expected 4", s.Round().Ammo())
		}
	})

	t.Run("ai easy", func(t *testing.T) {
		s := newSession(testConfig(), nil)
		s.points = 3000
		s.Enqueue(Purchase(upgrade.AI))
		launchRound(t, s, "AU")

		if s.Round().Outcome() != minigame.OutcomeSuccess {
			t.Errorf("Outcome() = %v, expected auto success", s.Round().Outcome())
		}
		if got := s.Detection().Level(); got != 0 {
			t.Errorf("detection = %v, expected 0", got)
		}
	})

	t.Run("ai medium", func(t *testing.T) {
		s := newSession(testConfig(), nil)
		s.points = 3000
		s.Enqueue(Purchase(upgrade.AI))
		launchRound(t, s, "IT")

		if s.Round().Outcome() != minigame.OutcomeNone {
			t.Errorf("Outcome() = %v, medium rounds are played", s.Round().Outcome())
		}
	})

	t.Run("insufficient points", func(t *testing.T) {
		s := newSession(testConfig(), nil)
		s.points = 999
		s.Enqueue(Purchase(upgrade.Stealth))
		s.Step()
		if s.Upgrades().Has(upgrade.Stealth) || s.Points() != 999 {
			t.Error("purchase without enough points should be ignored")
		}
	})
}

func TestDamage(t *testing.T) {
	cfg := config.DefaultGameConfig().Attack
	ca, _ := world.Lookup("CA")
	br, _ := world.Lookup("BR")
	us, _ := world.Lookup("US")
	cn, _ := world.Lookup("CN")

	tests := []struct {
		name     string
		source   world.Country
		target   world.Country
		payload  bool
		expected int64
	}{
		{"weak", ca, us, false, 16550132},
		{"weak payload", ca, us, true, 24825198},
		{"moderate", br, us, false, 33100265},
		{"strong", us, cn, false, 287864755},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Damage(cfg, tc.source, tc.target, tc.payload); got != tc.expected {
				t.Errorf("Damage() = %d, expected %d", got, tc.expected)
			}
		})
	}
}

func TestAttack(t *testing.T) {
	s := newSession(testConfig(), nil)
	compromise(s, "CA")

	s.Enqueue(Attack("US"))
	s.Step()

	if got := s.Population(); got != 8_000_000_000-16550132 {
		t.Errorf("Population() = %d", got)
	}
	if s.Casualties() != 16550132 || !s.Attacked("US") {
		t.Errorf("Casualties() = %d, Attacked(US) = %v", s.Casualties(), s.Attacked("US"))
	}
	if got := s.Detection().Level(); got != 25 {
		t.Errorf("detection = %v, expected 25", got)
	}

	before := s.Population()
	compromise(s, "AU")
	for _, target := range []string{"CA", "AU", "XX"} {
		s.Enqueue(Attack(target))
	}
	s.selected = "CA"
	s.Step()
	if s.Population() != before {
		t.Error("attacks on self, compromised or unknown targets should be ignored")
	}

	s.selected = "DE"
	s.Enqueue(Attack("US"))
	s.Step()
	if s.Population() != before {
		t.Error("attacks from an uncompromised source should be ignored")
	}
}

func TestExposureAndFinalPhase(t *testing.T) {
	cfg := testConfig()
	cfg.Difficulty = config.DifficultyExtreme
	ledger := &fakeLedger{}
	s := newSession(cfg, ledger)

	var summaries []Summary
	s.OnExposed(func(sum Summary) { summaries = append(summaries, sum) })

	compromise(s, "CA")
	s.Enqueue(Attack("US"))
	s.Enqueue(Attack("CN"))
	s.Enqueue(Attack("JP"))
	s.Step()

	if s.Phase() != PhaseExposed {
		t.Fatalf("Phase() = %v, expected exposed", s.Phase())
	}
	if len(summaries) != 1 {
		t.Fatalf("end-game sequencer called %d times, expected 1", len(summaries))
	}
	want := int64(8_000_000_000 - 16550132 - 71966188)
	sum := summaries[0]
	if sum.Population != want || sum.Hacked != 1 || sum.Detection != 100 || sum.RunID != "test-run" {
		t.Errorf("summary = %+v", sum)
	}
	if s.Population() != want {
		t.Error("attacks after exposure should be ignored")
	}
	if len(ledger.runs) != 1 || ledger.runs[0].Outcome != "exposed" {
		t.Fatalf("ledger runs = %+v", ledger.runs)
	}

	s.Enqueue(Hack())
	s.Step()
	if s.HackInFlight() {
		t.Error("hack after exposure should be ignored")
	}

	s.Enqueue(LaunchFinal())
	steps(s, 239)
	if s.Phase() != PhaseCountdown {
		t.Fatalf("Phase() = %v, expected countdown", s.Phase())
	}
	if s.DisplayPopulation() >= want {
		t.Error("countdown should lower the displayed population")
	}
	s.Step()
	if s.Phase() != PhaseComplete || s.DisplayPopulation() != 0 {
		t.Fatalf("Phase() = %v, display = %d; expected complete at 0", s.Phase(), s.DisplayPopulation())
	}
	if s.Population() != want {
		t.Error("the countdown should not change the real population")
	}
	if len(ledger.runs) != 2 || ledger.runs[1].Outcome != "complete" {
		t.Errorf("ledger runs = %+v", ledger.runs)
	}
}

func TestExposureDiscardsRound(t *testing.T) {
	s := newSession(testConfig(), nil)
	launchRound(t, s, "CA")
	s.meter.Increase(90)

	s.Enqueue(QuitRound())
	s.Step()

	if s.Phase() != PhaseExposed {
		t.Fatalf("Phase() = %v, expected exposed", s.Phase())
	}
	if s.RoundActive() || s.HackInFlight() {
		t.Error("exposure should discard the round and any hack")
	}
}

func TestExposureOnHackCost(t *testing.T) {
	s := newSession(testConfig(), nil)
	s.meter.Increase(95)

	s.Enqueue(SelectTarget("DE"))
	s.Enqueue(Hack())
	s.Step()

	if s.Phase() != PhaseExposed || s.HackInFlight() {
		t.Errorf("Phase() = %v, HackInFlight() = %v; expected exposed with no hack", s.Phase(), s.HackInFlight())
	}
}

func TestPassiveDetection(t *testing.T) {
	s := newSession(config.DefaultGameConfig(), nil)
	steps(s, 600)
	if got := s.Detection().Level(); got < 0.199 || got > 0.201 {
		t.Errorf("detection after 10s idle = %v, expected 0.2", got)
	}
}

func TestSessionWithStorageLedger(t *testing.T) {
	store, err := storage.Open("")
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	defer store.Close()

	s := newSession(testConfig(), store)
	launchRound(t, s, "CA")

	awards, err := store.RunAwards("test-run")
	if err != nil {
		t.Fatalf("RunAwards() failed: %v", err)
	}
	if len(awards) != 1 || awards[0].Points != 100 {
		t.Errorf("RunAwards() = %+v", awards)
	}
}

func TestSessionDeterminism(t *testing.T) {
	run := func() (minigame.Snapshot, []world.Marker) {
		s := New(Options{Config: config.DefaultGameConfig(), TickRate: 60, Seed: 7})
		s.Enqueue(SelectTarget("JP"))
		s.Enqueue(Hack())
		for i := range 1200 {
			if i%30 == 0 {
				s.Enqueue(Shoot())
			}
			s.Step()
		}
		var snap minigame.Snapshot
		if r := s.Round(); r != nil {
			snap = r.Snapshot()
		}
		return snap, s.Map().Markers
	}

	snap1, map1 := run()
	snap2, map2 := run()
	if snap1.Hash() != snap2.Hash() {
		t.Errorf("Determinism failed: hashes differ. Run1=%d, Run2=%d", snap1.Hash(), snap2.Hash())
	}
	for i := range map1 {
		if map1[i] != map2[i] {
			t.Fatalf("marker %d differs between runs", i)
		}
	}
}

func TestRunIDGenerated(t *testing.T) {
	a := New(Options{Config: testConfig()})
	b := New(Options{Config: testConfig()})
	if a.RunID() == "" || a.RunID() == b.RunID() {
		t.Errorf("run IDs %q and %q should be unique", a.RunID(), b.RunID())
	}
}
