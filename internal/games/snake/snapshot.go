package snake

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StatePaused      GameStateType = "paused"
	StateGameOver    GameStateType = "game_over"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing.
type Snapshot struct {
	Tick      uint64
	Moves     uint64 // Engine ticks that moved the snake
	Score     int
	HighScore int
	SnakeLen  int
	HeadX     int
	HeadY     int
	Dir       Direction
	FoodX     int
	FoodY     int
	State     GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.engine.Over():
		state = StateGameOver
	case g.engine.Paused():
		state = StatePaused
	}

	head, food := g.engine.Head(), g.engine.Food()
	return Snapshot{
		Tick:      g.tick,
		Moves:     g.engine.Ticks(),
		Score:     g.engine.Score(),
		HighScore: g.highScore,
		SnakeLen:  g.engine.Len(),
		HeadX:     head.X,
		HeadY:     head.Y,
		Dir:       g.engine.Direction(),
		FoodX:     food.X,
		FoodY:     food.Y,
		State:     state,
	}
}
