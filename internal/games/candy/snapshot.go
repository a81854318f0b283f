package candy

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StateAnimating   GameStateType = "animating"
	StateWin         GameStateType = "win"
	StateOutOfMoves  GameStateType = "out_of_moves"
	StatePaused      GameStateType = "paused"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing.
type Snapshot struct {
	Tick      uint64
	Score     int
	Moves     int
	HighScore int
	Cursor    Pos
	Selected  bool
	Selection Pos
	Phase     Phase
	Board     string // Live board, one row per line
	Pending   int    // Buffered playback frames
	State     GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.paused:
		state = StatePaused
	case g.animating():
		state = StateAnimating
	case g.session.Won():
		state = StateWin
	case g.session.MovesExhausted():
		state = StateOutOfMoves
	}

	st := g.session.State()
	sel, selected := g.session.Selection()
	return Snapshot{
		Tick:      g.tick,
		Score:     st.Score,
		Moves:     st.MovesRemaining,
		HighScore: st.HighScore,
		Cursor:    g.cursor,
		Selected:  selected,
		Selection: sel,
		Phase:     st.Phase,
		Board:     st.Board.String(),
		Pending:   len(g.frames),
		State:     state,
	}
}
