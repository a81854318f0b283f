package candy

import (
	"fmt"

	"github.com/vovakirdan/candy-arcade/internal/core"
)

const (
	cellWidth    = 3 // "[♥]"
	hudHeight    = 3
	footerHeight = 2
)

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	n := g.session.Size()
	boardW := n*cellWidth + 2
	boardH := n + 2
	boardX := (g.screenW - boardW) / 2
	boardY := hudHeight

	g.renderHUD(dst, boardX, boardW)
	g.renderBoard(dst, boardX, boardY)
	g.renderFooter(dst, boardY+boardH)
	g.renderOverlays(dst, boardX+boardW/2, boardY+boardH/2)
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

func (g *Game) renderHUD(dst *core.Screen, boardX, boardW int) {
	title := "CANDY MATCH"
	dst.DrawTextColor(boardX+(boardW-len(title))/2, 0, title, core.ColorBrightMagenta)

	left := fmt.Sprintf("Score: %d/%d", g.shownScore, g.session.opts.TargetScore)
	dst.DrawText(boardX, 1, left)

	right := fmt.Sprintf("Moves: %d  Best: %d", g.session.MovesRemaining(), g.session.HighScore())
	rightX := boardX + boardW - len(right)
	if rightX < boardX+len(left)+1 {
		// Narrow board: put it on the next line
		dst.DrawText(boardX, 2, right)
		return
	}
	dst.DrawText(rightX, 1, right)
}

func (g *Game) renderBoard(dst *core.Screen, x0, y0 int) {
	n := g.session.Size()
	dst.DrawBox(core.NewRect(x0, y0, n*cellWidth+2, n+2))

	sel, hasSel := g.session.Selection()
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			p := Pos{Row: r, Col: c}
			x := x0 + 1 + c*cellWidth
			y := y0 + 1 + r

			piece := g.display.At(p)
			glyph, color := piece.Glyph(), piece.Color()
			switch {
			case piece == Empty:
				glyph, color = '·', core.ColorGray
			case g.highlight.Has(p):
				glyph = '✦'
			}
			dst.SetColor(x+1, y, glyph, color)

			switch {
			case !g.animating() && p == g.cursor:
				bracket := core.ColorBrightWhite
				if hasSel && p == sel {
					bracket = core.ColorBrightYellow
				}
				dst.SetColor(x, y, '[', bracket)
				dst.SetColor(x+2, y, ']', bracket)
			case hasSel && p == sel:
				dst.SetColor(x, y, '<', core.ColorBrightYellow)
				dst.SetColor(x+2, y, '>', core.ColorBrightYellow)
			}
		}
	}
}

func (g *Game) renderFooter(dst *core.Screen, y int) {
	status := g.label
	sel, hasSel := g.session.Selection()
	switch {
	case status != "":
	case g.deselected:
		status = "Selection cleared"
	case g.rejected:
		status = "Not adjacent - selection cleared"
	case hasSel:
		status = fmt.Sprintf("Swap %s with a neighbour", g.session.At(sel))
	case g.lastDelta > 0:
		status = fmt.Sprintf("Last move +%d", g.lastDelta)
	}
	if status != "" {
		dst.DrawTextCentered(y, status)
	}
	dst.DrawTextCentered(y+1, "Arrows/WASD move  Space select  P pause  Q quit")
}

func (g *Game) renderOverlays(dst *core.Screen, cx, cy int) {
	switch {
	case g.paused:
		dst.DrawOverlay(cx, cy, "PAUSED", "", "Press P to resume")
	case g.over() && g.session.Won():
		dst.DrawOverlay(cx, cy,
			"YOU WIN!",
			fmt.Sprintf("Score: %d", g.session.Score()),
			"",
			"R restart  Q quit")
	case g.over():
		dst.DrawOverlay(cx, cy,
			"OUT OF MOVES",
			fmt.Sprintf("Score: %d", g.session.Score()),
			fmt.Sprintf("Best: %d", g.session.HighScore()),
			"",
			"R restart  Q quit")
	}
}
