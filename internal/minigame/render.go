package minigame

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/netbreach/internal/core"
)

// Visual characters for rendering
const (
	BallChar   = '●'
	BlockChar  = '█'
	PaddleChar = '▀'
	FloorChar  = '┄'
	GridChar   = '·'
)

// Decorative paddle in canvas units; it takes no part in the physics.
const (
	paddleWidth   = 100
	paddleYOffset = 30
)

// Minimum screen size the round can be drawn into.
const (
	MinScreenW = 40
	MinScreenH = 14
)

// Render draws the round into dst, scaling the canvas to fit.
// The bottom row holds the ammo and score line.
func (r *Round) Render(dst *core.Screen) {
	snap := r.Snapshot()
	RenderSnapshot(dst, &snap, r.cfg.CanvasWidth, r.cfg.CanvasHeight, r.cfg.FloorMargin)
}

// RenderSnapshot draws a snapshot on a canvas of the given size.
func RenderSnapshot(dst *core.Screen, snap *Snapshot, canvasW, canvasH, floorMargin float64) {
	dst.Clear()

	if dst.Width() < MinScreenW || dst.Height() < MinScreenH {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", MinScreenW, MinScreenH))
		return
	}

	v := viewport{
		cols:    dst.Width(),
		rows:    dst.Height() - 1,
		canvasW: canvasW,
		canvasH: canvasH,
	}

	renderGrid(dst, v)
	dst.DrawHLine(0, v.y(canvasH-floorMargin), v.cols, FloorChar, core.ColorRed)
	renderBlocks(dst, v, snap.Blocks)
	renderPaddle(dst, v)
	renderBalls(dst, v, snap.Balls)
	renderHUD(dst, snap)
	renderOverlay(dst, snap)
}

// viewport maps canvas units onto screen cells.
type viewport struct {
	cols, rows       int
	canvasW, canvasH float64
}

func (v viewport) x(cx float64) int {
	return int(cx / v.canvasW * float64(v.cols))
}

func (v viewport) y(cy float64) int {
	return int(cy / v.canvasH * float64(v.rows))
}

func (v viewport) box(b core.Box) core.Rect {
	x0, y0 := v.x(b.X), v.y(b.Y)
	x1, y1 := v.x(b.Right()), v.y(b.Bottom())
	return core.NewRect(x0, y0, core.Max(1, x1-x0), core.Max(1, y1-y0))
}

func renderGrid(dst *core.Screen, v viewport) {
	for y := 0; y < v.rows; y += 2 {
		for x := 0; x < v.cols; x += 4 {
			dst.SetColored(x, y, GridChar, core.ColorDimGreen)
		}
	}
}

func renderBlocks(dst *core.Screen, v viewport, blocks []Block) {
	for _, b := range blocks {
		rect := v.box(b.Box)
		color := core.HealthColor(b.HealthFraction())
		dst.DrawRect(rect, BlockChar, color)

		label := strconv.Itoa(b.Health)
		lx := rect.X + (rect.W-len(label))/2
		ly := rect.Y + rect.H/2
		dst.DrawTextColored(lx, ly, label, core.ColorBrightWhite)
	}
}

func renderPaddle(dst *core.Screen, v viewport) {
	left := v.x(v.canvasW/2 - paddleWidth/2)
	right := v.x(v.canvasW/2 + paddleWidth/2)
	dst.DrawHLine(left, v.y(v.canvasH-paddleYOffset), right-left, PaddleChar, core.ColorGreen)
}

func renderBalls(dst *core.Screen, v viewport, balls []Ball) {
	for _, b := range balls {
		x, y := v.x(b.X), v.y(b.Y)
		if x >= 0 && x < v.cols && y >= 0 && y < v.rows {
			dst.SetColored(x, y, BallChar, core.ColorBrightGreen)
		}
	}
}

// renderHUD draws ammo, blocks and score on the last row.
func renderHUD(dst *core.Screen, snap *Snapshot) {
	y := dst.Height() - 1
	dst.DrawTextColored(1, y, fmt.Sprintf("Balls: %d", snap.Ammo), core.ColorBrightWhite)

	perks := ""
	for _, p := range Perks {
		mark := strconv.Itoa(int(p) + 1)
		if snap.PerksUsed[p] {
			mark = "-"
		}
		perks += mark
	}
	dst.DrawTextCentered(y, fmt.Sprintf("Blocks: %d  Perks: %s", len(snap.Blocks), perks))

	score := fmt.Sprintf("Score: %d", snap.Score)
	dst.DrawTextColored(dst.Width()-len(score)-1, y, score, core.ColorBrightWhite)
}

// renderOverlay draws pause and result messages.
func renderOverlay(dst *core.Screen, snap *Snapshot) {
	switch {
	case snap.Outcome == OutcomeSuccess:
		drawCenteredBox(dst, "FIREWALL BYPASSED", fmt.Sprintf("Score: %d", snap.Score), core.ColorBrightGreen)
	case snap.Outcome == OutcomeFailure:
		drawCenteredBox(dst, "BYPASS FAILED", "Detection increased", core.ColorBrightRed)
	case snap.Paused:
		drawCenteredBox(dst, "PAUSED", "Press P to resume", core.ColorYellow)
	}
}

// drawCenteredBox draws a centered message box.
func drawCenteredBox(dst *core.Screen, title, subtitle string, c core.Color) {
	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	rect := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(rect, ' ', core.ColorDefault)
	dst.DrawBox(rect, c)

	dst.DrawTextColored(boxX+(boxW-len(title))/2, boxY+1, title, c)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}
