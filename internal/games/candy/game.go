package candy

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/candy-arcade/internal/config"
	"github.com/vovakirdan/candy-arcade/internal/core"
	"github.com/vovakirdan/candy-arcade/internal/registry"
)

// GameID is the registry identifier and the default high-score key.
const GameID = "candy"

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

// frame is one buffered board picture shown during cascade playback.
type frame struct {
	board     *Board
	highlight Matches
	points    int // Added to the displayed score when the frame appears
	label     string
}

// Game adapts a Session to the arcade platform: cursor-driven taps,
// buffered cascade playback and terminal rendering.
type Game struct {
	cfg     config.CandyConfig
	svc     registry.Services
	logger  *log.Logger
	session *Session
	tick    uint64
	cursor  Pos

	// Playback
	display    *Board
	highlight  Matches
	frames     []frame
	frameTicks int
	label      string
	shownScore int
	lastDelta  int
	rejected   bool // Last second tap was not adjacent
	deselected bool // Last tap cancelled the selection

	screenW  int
	screenH  int
	paused   bool
	tooSmall bool
}

// New creates a new Candy Match game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Candy Match"
}

// Attach receives the platform's high-score store, notifier and logger.
func (g *Game) Attach(svc registry.Services) {
	g.svc = svc
}

// Reset loads the config and starts a new session.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.logger = g.svc.LoggerOrDiscard()

	cfg, err := config.LoadCandy(configPath)
	if err != nil {
		g.logger.Warn("using default candy config", "err", err)
	}
	g.cfg = cfg

	session, err := NewSession(Options{
		GridSize:         cfg.Board.Size,
		Kinds:            cfg.Board.Kinds,
		MoveBudget:       cfg.Rules.MoveBudget,
		TargetScore:      cfg.Rules.TargetScore,
		PointsPerPiece:   cfg.Rules.PointsPerPiece,
		MaxCascadeCycles: cfg.Rules.MaxCascadeCycles,
		Rand:             NewSource(runtime.Seed),
		HighScores:       g.svc.HighScores,
		HighScoreKey:     GameID,
		Notifier:         g.svc.Notifier,
		Logger:           g.logger,
	})
	if err != nil {
		// Validated config cannot produce invalid options; fall back to defaults anyway.
		g.logger.Error("invalid session options", "err", err)
		session, _ = NewSession(Options{Rand: NewSource(runtime.Seed), Logger: g.logger})
	}
	g.session = session

	g.tick = 0
	g.cursor = Pos{Row: session.Size() / 2, Col: session.Size() / 2}
	g.display = session.State().Board
	g.highlight = Matches{}
	g.frames = nil
	g.frameTicks = 0
	g.label = ""
	g.shownScore = 0
	g.lastDelta = 0
	g.rejected = false
	g.deselected = false
	g.paused = false
	g.screenW = runtime.ScreenW
	g.screenH = runtime.ScreenH
	g.checkScreenSize()
}

// Resize adapts the layout to a new screen size, keeping the session.
func (g *Game) Resize(screenW, screenH int) {
	g.screenW = screenW
	g.screenH = screenH
	g.checkScreenSize()
}

func (g *Game) checkScreenSize() {
	n := g.session.Size()
	minW := n*cellWidth + 2
	minH := n + hudHeight + footerHeight + 2
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.over() {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	// Input is ignored until the buffered cascade has played out.
	if g.animating() {
		g.advancePlayback()
		return core.StepResult{State: g.State()}
	}

	if g.over() {
		// Restart is handled by the platform via Reset
		return core.StepResult{State: g.State()}
	}

	g.moveCursor(in.Direction())

	if in.Has(core.ActionConfirm) {
		g.tap()
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) moveCursor(dir core.Action) {
	n := g.session.Size()
	switch dir {
	case core.ActionUp:
		g.cursor.Row = core.Clamp(g.cursor.Row-1, 0, n-1)
	case core.ActionDown:
		g.cursor.Row = core.Clamp(g.cursor.Row+1, 0, n-1)
	case core.ActionLeft:
		g.cursor.Col = core.Clamp(g.cursor.Col-1, 0, n-1)
	case core.ActionRight:
		g.cursor.Col = core.Clamp(g.cursor.Col+1, 0, n-1)
	}
}

func (g *Game) tap() {
	g.rejected, g.deselected = false, false

	// Tapping the selected cell again cancels the selection.
	if sel, ok := g.session.Selection(); ok && sel == g.cursor {
		g.session.ClearSelection()
		g.deselected = true
		return
	}

	res, err := g.session.Tap(g.cursor)
	if err != nil {
		g.logger.Error("tap rejected", "cursor", g.cursor, "err", err)
		return
	}
	g.rejected = res.Attempted && !res.Accepted
	if !res.Accepted {
		return
	}

	g.lastDelta = res.ScoreDelta
	if g.cfg.Animation.StepTicks <= 0 {
		g.display = res.Board
		g.shownScore = g.session.Score()
		return
	}
	g.frames = buildFrames(res)
	g.frameTicks = 0
	g.showFrame(g.frames[0])
}

// buildFrames turns a swap result into the playback sequence: the swapped
// board, then for every cycle the matched cells, the cleared board, the
// collapsed board and the refilled board.
func buildFrames(res SwapResult) []frame {
	frames := []frame{{board: res.Swapped, label: "Swap"}}
	prev := res.Swapped
	for i, step := range res.Cascade.Steps {
		frames = append(frames,
			frame{
				board:     prev,
				highlight: step.Matches,
				points:    step.Points,
				label:     fmt.Sprintf("Match x%d  +%d", i+1, step.Points),
			},
			frame{board: step.AfterClear, label: "Clear"},
			frame{board: step.AfterCollapse, label: "Drop"},
			frame{board: step.AfterRefill, label: "Refill"},
		)
		prev = step.AfterRefill
	}
	return frames
}

func (g *Game) showFrame(f frame) {
	g.display = f.board
	g.highlight = f.highlight
	g.label = f.label
	g.shownScore += f.points
}

func (g *Game) animating() bool {
	return len(g.frames) > 0
}

func (g *Game) advancePlayback() {
	g.frameTicks++
	if g.frameTicks < g.cfg.Animation.StepTicks {
		return
	}
	g.frameTicks = 0
	g.frames = g.frames[1:]
	if len(g.frames) > 0 {
		g.showFrame(g.frames[0])
		return
	}

	// Playback done: show the live board.
	g.display = g.session.State().Board
	g.highlight = Matches{}
	g.label = ""
	g.shownScore = g.session.Score()
}

// over reports a finished round once playback has caught up.
func (g *Game) over() bool {
	return !g.animating() && (g.session.Won() || g.session.MovesExhausted())
}

// Session exposes the underlying session.
func (g *Game) Session() *Session {
	return g.session
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.session.Score(),
		GameOver: g.over(),
		Paused:   g.paused || g.tooSmall,
	}
}
