package minigame

import (
	"strings"
	"testing"

	"github.com/vovakirdan/netbreach/internal/config"
	"github.com/vovakirdan/netbreach/internal/core"
)

// fixedRNG always returns the same value.
type fixedRNG float64

func (f fixedRNG) Float64() float64 { return float64(f) }
func (f fixedRNG) Intn(int) int     { return 0 }

func testConfig() config.MinigameConfig {
	return config.DefaultGameConfig().Minigame
}

func newRound(tier core.Tier, rng core.RNG) *Round {
	return NewRound(testConfig(), tier, false, rng)
}

func idle() core.InputFrame {
	return core.NewInputFrame()
}

func press(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func TestNewRoundSetup(t *testing.T) {
	tests := []struct {
		tier   core.Tier
		count  int
		health int
		speed  float64
	}{
		{core.TierEasy, 8, 2, 0.3},
		{core.TierMedium, 12, 3, 0.3},
		{core.TierHard, 16, 5, 0.5},
	}

	for _, tc := range tests {
		t.Run(tc.tier.String(), func(t *testing.T) {
			r := newRound(tc.tier, fixedRNG(0.5))
			if r.Blocks() != tc.count {
				t.Errorf("Blocks() = %d, expected %d", r.Blocks(), tc.count)
			}
			if r.Ammo() != 3 {
				t.Errorf("Ammo() = %d, expected 3", r.Ammo())
			}
			for i, b := range r.blocks {
				if b.Health != tc.health || b.MaxHealth != tc.health || b.Speed != tc.speed {
					t.Errorf("block %d = (%d/%d, %v), expected (%d/%d, %v)",
						i, b.Health, b.MaxHealth, b.Speed, tc.health, tc.health, tc.speed)
				}
				wantX := 50 + float64(i%8)*65
				wantY := 30 + float64(i/8)*50
				if b.X != wantX || b.Y != wantY || b.W != 60 || b.H != 30 {
					t.Errorf("block %d at %+v, expected (%v, %v, 60, 30)", i, b.Box, wantX, wantY)
				}
			}
		})
	}
}

func TestBotnetAmmo(t *testing.T) {
	r := NewRound(testConfig(), core.TierEasy, true, fixedRNG(0.5))
	if r.Ammo() != 4 {
		t.Errorf("Ammo() with botnet = %d, expected 4", r.Ammo())
	}
}

func TestShoot(t *testing.T) {
	r := newRound(core.TierMedium, fixedRNG(0.75))

	if !r.Shoot() {
		t.Fatal("Shoot() with ammo should succeed")
	}
	if r.Ammo() != 2 {
		t.Errorf("Ammo() = %d, expected 2", r.Ammo())
	}

	ball := r.balls[0]
	if ball.X != 300 || ball.Y != 350 {
		t.Errorf("ball at (%v, %v), expected (300, 350)", ball.X, ball.Y)
	}
	if ball.VX != 2 || ball.VY != -8 {
		t.Errorf("ball velocity (%v, %v), expected (2, -8)", ball.VX, ball.VY)
	}

	r.Shoot()
	r.Shoot()
	if r.Shoot() {
		t.Error("Shoot() without ammo should fail")
	}
	if r.Ammo() != 0 || r.Balls() != 3 {
		t.Errorf("Ammo() = %d, Balls() = %d; expected 0 and 3", r.Ammo(), r.Balls())
	}
}

func TestCenterHitsDestroyBlock(t *testing.T) {
	r := newRound(core.TierMedium, fixedRNG(0.5))
	r.Shoot()
	r.balls = r.balls[:0]

	cx, cy := r.blocks[0].Center()
	r.balls = append(r.balls, Ball{X: cx, Y: cy})

	for i := 1; i <= 3; i++ {
		r.Step(idle())
		if r.Score() != i*10 {
			t.Errorf("after hit %d Score() = %d, expected %d", i, r.Score(), i*10)
		}
	}

	if r.Blocks() != 11 {
		t.Errorf("Blocks() = %d, expected 11", r.Blocks())
	}
	if r.Ammo() != 2 {
		t.Errorf("Ammo() = %d, expected 2", r.Ammo())
	}
	if r.Outcome() != OutcomeNone {
		t.Errorf("Outcome() = %v, expected running", r.Outcome())
	}
}

func TestLastBlockHitEndsRound(t *testing.T) {
	r := newRound(core.TierEasy, fixedRNG(0.5))
	r.blocks = r.blocks[:1]
	r.blocks[0].Health = 1

	cx, cy := r.blocks[0].Center()
	r.balls = []Ball{
		{X: cx, Y: cy},
		{X: 300, Y: 300, VY: -8},
	}

	if o := r.Step(idle()); o != OutcomeSuccess {
		t.Fatalf("Step() = %v, expected success", o)
	}
	if r.Blocks() != 0 || r.Score() != 10 {
		t.Errorf("Blocks() = %d, Score() = %d; expected 0 and 10", r.Blocks(), r.Score())
	}
	if r.Balls() != 2 {
		t.Errorf("Balls() = %d, expected 2", r.Balls())
	}

	snap := r.Snapshot()
	r.Step(press(core.ActionShoot))
	r.Step(idle())
	if after := r.Snapshot(); after.Hash() != snap.Hash() {
		t.Error("a won round should not change")
	}
}

func TestHitForcesBallUpward(t *testing.T) {
	r := newRound(core.TierEasy, fixedRNG(0.5))
	cx, cy := r.blocks[0].Center()
	r.balls = append(r.balls, Ball{X: cx, Y: cy - 4, VX: 0, VY: 4})

	r.Step(idle())
	if r.balls[0].VY != -4 {
		t.Errorf("VY after hit = %v, expected -4", r.balls[0].VY)
	}
}

func TestExtraBallOnDestroy(t *testing.T) {
	r := newRound(core.TierEasy, fixedRNG(0.1))
	r.blocks[0].Health = 1
	cx, cy := r.blocks[0].Center()
	r.balls = append(r.balls, Ball{X: cx, Y: cy})

	r.Step(idle())

	if r.Ammo() != 4 {
		t.Errorf("Ammo() = %d, expected 4", r.Ammo())
	}
	if r.Balls() != 2 {
		t.Fatalf("Balls() = %d, expected 2", r.Balls())
	}
	extra := r.balls[1]
	if extra.VY != -6 {
		t.Errorf("extra ball VY = %v, expected -6", extra.VY)
	}
	if extra.VX > -2.39 || extra.VX < -2.41 {
		t.Errorf("extra ball VX = %v, expected -2.4", extra.VX)
	}
}

func TestNoExtraBallAboveChance(t *testing.T) {
	r := newRound(core.TierEasy, fixedRNG(0.2))
	r.blocks[0].Health = 1
	cx, cy := r.blocks[0].Center()
	r.balls = append(r.balls, Ball{X: cx, Y: cy})

	r.Step(idle())
	if r.Ammo() != 3 || r.Balls() != 1 {
		t.Errorf("Ammo() = %d, Balls() = %d; expected 3 and 1", r.Ammo(), r.Balls())
	}
}

func TestWalls(t *testing.T) {
	tests := []struct {
		name   string
		ball   Ball
		wantVX float64
		wantVY float64
		gone   bool
	}{
		{"left wall", Ball{X: 12, Y: 200, VX: -5, VY: 1}, 5, 1, false},
		{"right wall", Ball{X: 588, Y: 200, VX: 5, VY: 1}, -5, 1, false},
		{"ceiling", Ball{X: 20, Y: 12, VX: 0, VY: -5}, 0, 5, false},
		{"bottom", Ball{X: 20, Y: 398, VX: 0, VY: 5}, 0, 5, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := newRound(core.TierEasy, fixedRNG(0.5))
			r.balls = append(r.balls, tc.ball)
			r.Step(idle())

			if tc.gone {
				if r.Balls() != 0 {
					t.Errorf("Balls() = %d, expected the ball removed", r.Balls())
				}
				if r.Outcome() != OutcomeNone {
					t.Errorf("a miss should not end the round, got %v", r.Outcome())
				}
				return
			}
			got := r.balls[0]
			if got.VX != tc.wantVX || got.VY != tc.wantVY {
				t.Errorf("velocity = (%v, %v), expected (%v, %v)", got.VX, got.VY, tc.wantVX, tc.wantVY)
			}
		})
	}
}

func TestBlocksReachFloor(t *testing.T) {
	r := newRound(core.TierEasy, fixedRNG(0.5))

	// Row 0 bottom starts at 60 and must pass 350 at 0.3 per tick
	for i := range 966 {
		if o := r.Step(idle()); o != OutcomeNone {
			t.Fatalf("round ended at tick %d with %v", i+1, o)
		}
	}
	if o := r.Step(idle()); o != OutcomeFailure {
		t.Fatalf("Outcome() = %v, expected failure", o)
	}
	if r.Blocks() != 0 || r.Balls() != 0 {
		t.Errorf("failure should discard blocks and balls, got %d and %d", r.Blocks(), r.Balls())
	}
}

func TestPauseFreezesRound(t *testing.T) {
	r := newRound(core.TierEasy, fixedRNG(0.5))
	y := r.blocks[0].Y

	r.Step(press(core.ActionPause))
	if !r.Paused() {
		t.Fatal("round should be paused")
	}

	for range 10 {
		r.Step(press(core.ActionShoot, core.ActionPerkExtraBalls))
	}
	if r.blocks[0].Y != y {
		t.Errorf("blocks moved while paused: %v -> %v", y, r.blocks[0].Y)
	}
	if r.Ammo() != 3 || r.PerkUsed(PerkExtraBalls) {
		t.Error("shots and perks should be ignored while paused")
	}

	r.Step(press(core.ActionPause))
	if r.Paused() {
		t.Fatal("round should resume")
	}
	if r.blocks[0].Y == y {
		t.Error("blocks should move after resuming")
	}
}

func TestRepeatedActionsInOneTick(t *testing.T) {
	tests := []struct {
		name    string
		actions []core.Action
		ammo    int
		balls   int
		paused  bool
	}{
		{"two shots", []core.Action{core.ActionShoot, core.ActionShoot}, 1, 2, false},
		{"pause twice", []core.Action{core.ActionPause, core.ActionPause}, 3, 0, false},
		{"shoot then pause", []core.Action{core.ActionShoot, core.ActionPause}, 2, 1, true},
		{"pause then shoot", []core.Action{core.ActionPause, core.ActionShoot}, 3, 0, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := newRound(core.TierEasy, fixedRNG(0.5))
			r.Step(press(tc.actions...))
			if r.Ammo() != tc.ammo || r.Balls() != tc.balls || r.Paused() != tc.paused {
				t.Errorf("ammo=%d balls=%d paused=%v, expected %d %d %v",
					r.Ammo(), r.Balls(), r.Paused(), tc.ammo, tc.balls, tc.paused)
			}
		})
	}
}

func TestQuit(t *testing.T) {
	r := newRound(core.TierHard, fixedRNG(0.5))
	r.Step(press(core.ActionPause))

	if o := r.Step(press(core.ActionAbort)); o != OutcomeAborted {
		t.Fatalf("Outcome() = %v, expected aborted", o)
	}
	if r.Blocks() != 0 || r.Balls() != 0 || r.Ammo() != 0 || r.Score() != 0 {
		t.Errorf("abort should discard round state, got blocks=%d balls=%d ammo=%d score=%d",
			r.Blocks(), r.Balls(), r.Ammo(), r.Score())
	}

	snap := r.Snapshot()
	r.Step(press(core.ActionShoot))
	after := r.Snapshot()
	if snap.Hash() != after.Hash() {
		t.Error("a finished round should not change")
	}
}

func TestPerks(t *testing.T) {
	t.Run("clear", func(t *testing.T) {
		r := newRound(core.TierHard, fixedRNG(0.5))
		if !r.ActivatePerk(PerkClearAll) {
			t.Fatal("ActivatePerk(clear) failed")
		}
		if r.Outcome() != OutcomeSuccess || r.Blocks() != 0 {
			t.Errorf("Outcome() = %v with %d blocks, expected success", r.Outcome(), r.Blocks())
		}
	})

	t.Run("extra balls once", func(t *testing.T) {
		r := newRound(core.TierEasy, fixedRNG(0.5))
		r.ActivatePerk(PerkExtraBalls)
		if r.ActivatePerk(PerkExtraBalls) {
			t.Error("second activation should be a no-op")
		}
		if r.Ammo() != 5 {
			t.Errorf("Ammo() = %d, expected 5", r.Ammo())
		}
	})

	t.Run("explosive damages", func(t *testing.T) {
		r := newRound(core.TierMedium, fixedRNG(0.5))
		r.ActivatePerk(PerkExplosive)
		for i, b := range r.blocks {
			if b.Health != 1 {
				t.Errorf("block %d health = %d, expected 1", i, b.Health)
			}
		}
		if r.Score() != 0 {
			t.Errorf("Score() = %d, explosions should not score", r.Score())
		}
	})

	t.Run("explosive destroys", func(t *testing.T) {
		r := newRound(core.TierEasy, fixedRNG(0.5))
		r.ActivatePerk(PerkExplosive)
		if r.Blocks() != 0 || r.Outcome() != OutcomeSuccess {
			t.Errorf("Blocks() = %d, Outcome() = %v; expected 0 and success", r.Blocks(), r.Outcome())
		}
	})

	t.Run("slow", func(t *testing.T) {
		r := newRound(core.TierHard, fixedRNG(0.5))
		r.Step(press(core.ActionPerkSlow))
		for i, b := range r.blocks {
			if b.Speed != 0.25 {
				t.Errorf("block %d speed = %v, expected 0.25", i, b.Speed)
			}
		}
	})
}

func TestStalled(t *testing.T) {
	r := newRound(core.TierEasy, fixedRNG(0.5))
	if r.Stalled() {
		t.Fatal("fresh round should not be stalled")
	}
	r.ammo = 0
	if !r.Stalled() {
		t.Error("no ammo and no balls should be stalled")
	}
}

func TestRoundDeterminism(t *testing.T) {
	run := func() Snapshot {
		r := NewRound(testConfig(), core.TierHard, true, core.NewSimpleRNG(12345))
		for i := range 900 {
			in := core.NewInputFrame()
			if i%45 == 0 {
				in.Set(core.ActionShoot)
			}
			if i == 300 {
				in.Set(core.ActionPerkExtraBalls)
			}
			if r.Step(in) != OutcomeNone {
				break
			}
		}
		return r.Snapshot()
	}

	snap1 := run()
	snap2 := run()
	if snap1.Hash() != snap2.Hash() {
		t.Errorf("Determinism failed: hashes differ. Run1=%d, Run2=%d", snap1.Hash(), snap2.Hash())
	}
	if snap1.Score != snap2.Score {
		t.Errorf("Determinism failed: scores differ. Run1=%d, Run2=%d", snap1.Score, snap2.Score)
	}
}

func TestRender(t *testing.T) {
	r := newRound(core.TierEasy, fixedRNG(0.5))
	r.Shoot()
	scr := core.NewScreen(60, 20)
	r.Render(scr)

	if hud := scr.Row(scr.Height() - 1); !strings.Contains(hud, "Balls: 2") {
		t.Errorf("HUD row = %q, expected ammo count", hud)
	}
	found := false
	for y := range scr.Height() {
		for x := range scr.Width() {
			if scr.Get(x, y) == BlockChar {
				found = true
			}
		}
	}
	if !found {
		t.Error("blocks should be drawn")
	}

	small := core.NewScreen(20, 5)
	r.Render(small)
	if small.Get(0, 0) == BlockChar {
		t.Error("a too-small screen should not draw blocks")
	}
}
