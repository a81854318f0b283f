package snake

import (
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/candy-arcade/internal/config"
	"github.com/vovakirdan/candy-arcade/internal/core"
	"github.com/vovakirdan/candy-arcade/internal/registry"
)

// GameID is the registry identifier and high-score key.
const GameID = "snake"

const hudHeight = 2

// configPath stores the custom config path set via CLI
var configPath string

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}

// Game adapts an Engine to the arcade platform.
type Game struct {
	cfg    config.SnakeConfig
	svc    registry.Services
	logger *log.Logger
	engine *Engine

	tick       uint64
	moveTicker int
	highScore  int

	screenW    int
	screenH    int
	mapOffsetX int
	mapOffsetY int
	tooSmall   bool
}

// New creates a new Snake game.
func New() *Game {
	return &Game{}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Snake"
}

// Attach receives the platform's high-score store, notifier and logger.
func (g *Game) Attach(svc registry.Services) {
	g.svc = svc
}

// Reset initializes/restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.logger = g.svc.LoggerOrDiscard()

	cfg, err := config.LoadSnake(configPath)
	if err != nil {
		g.logger.Warn("using default snake config", "err", err)
	}
	g.cfg = cfg

	g.engine = NewEngine(cfg.Grid.Size, cfg.Scoring.PointsPerFood, rand.New(rand.NewSource(runtime.Seed)))
	g.tick = 0
	g.moveTicker = 0
	g.screenW = runtime.ScreenW
	g.screenH = runtime.ScreenH

	if g.svc.HighScores != nil {
		hs, err := g.svc.HighScores.LoadHighScore(GameID)
		if err != nil {
			g.logger.Warn("failed to load high score", "key", GameID, "err", err)
		} else {
			g.highScore = hs
		}
	}

	g.layout()
}

// Resize adapts the layout to a new screen size, keeping the round.
func (g *Game) Resize(screenW, screenH int) {
	g.screenW = screenW
	g.screenH = screenH
	g.layout()
}

func (g *Game) layout() {
	box := g.engine.Size() + 2
	g.tooSmall = g.screenW < box || g.screenH < box+hudHeight
	g.mapOffsetX = (g.screenW-box)/2 + 1
	g.mapOffsetY = hudHeight + 1
}

// Step advances the game by one tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall || g.engine.Over() {
		return core.StepResult{State: g.State()}
	}

	if input.Has(core.ActionPause) {
		g.engine.TogglePause()
	}
	if g.engine.Paused() {
		return core.StepResult{State: g.State()}
	}

	switch input.Direction() {
	case core.ActionUp:
		g.engine.Turn(DirUp)
	case core.ActionDown:
		g.engine.Turn(DirDown)
	case core.ActionLeft:
		g.engine.Turn(DirLeft)
	case core.ActionRight:
		g.engine.Turn(DirRight)
	}

	g.moveTicker++
	if g.moveTicker < g.cfg.Speed.MoveEveryTicks {
		return core.StepResult{State: g.State()}
	}
	g.moveTicker = 0

	res := g.engine.Tick()
	if res.Ate {
		g.updateHighScore()
	}
	if res.Died {
		g.logger.Debug("round finished", "outcome", core.OutcomeLoss, "score", g.engine.Score())
		if g.svc.Notifier != nil {
			g.svc.Notifier.Notify(core.Outcome{
				GameID: GameID,
				Kind:   core.OutcomeLoss,
				Score:  g.engine.Score(),
			})
		}
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) updateHighScore() {
	score := g.engine.Score()
	if score <= g.highScore {
		return
	}
	g.highScore = score
	if g.svc.HighScores == nil {
		return
	}
	if err := g.svc.HighScores.SaveHighScore(GameID, score); err != nil {
		g.logger.Warn("failed to save high score", "key", GameID, "err", err)
	}
}

// Engine exposes the underlying engine.
func (g *Game) Engine() *Engine {
	return g.engine
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		y := g.screenH / 2
		dst.DrawTextCentered(y, "Window too small")
		dst.DrawTextCentered(y+1, "Resize to continue")
		return
	}

	hud := fmt.Sprintf(" Snake  Score: %d  Best: %d  Length: %d", g.engine.Score(), g.highScore, g.engine.Len())
	dst.DrawText(0, 0, hud)
	dst.DrawHLine(0, 1, dst.Width(), '─')

	size := g.engine.Size()
	dst.DrawBox(core.NewRect(g.mapOffsetX-1, g.mapOffsetY-1, size+2, size+2))

	if food := g.engine.Food(); food.X >= 0 {
		dst.SetColor(g.mapOffsetX+food.X, g.mapOffsetY+food.Y, '*', core.ColorBrightRed)
	}
	for i, seg := range g.engine.snake {
		r, c := 'o', core.ColorGreen
		if i == 0 {
			r, c = 'O', core.ColorBrightGreen
		}
		dst.SetColor(g.mapOffsetX+seg.X, g.mapOffsetY+seg.Y, r, c)
	}

	cx := g.mapOffsetX + size/2
	cy := g.mapOffsetY + size/2
	switch {
	case g.engine.Over():
		dst.DrawOverlay(cx, cy, "Game Over", fmt.Sprintf("Score: %d", g.engine.Score()), "Press R to restart")
	case g.engine.Paused():
		dst.DrawOverlay(cx, cy, "Paused", "Press P to continue")
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.engine.Score(),
		GameOver: g.engine.Over(),
		Paused:   g.engine.Paused() || g.tooSmall,
	}
}
