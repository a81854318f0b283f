// Package snake implements the classic Snake game on a fixed square grid.
package snake

// Direction represents the snake's movement direction.
type Direction int

const (
	DirRight Direction = iota
	DirDown
	DirLeft
	DirUp
)

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// opposite reports whether d and o point in opposite directions.
func (d Direction) opposite(o Direction) bool {
	return (d+2)%4 == o
}

// Point represents a grid cell. (0,0) is the top-left corner.
type Point struct {
	X, Y int
}

// Source supplies random choices for food placement.
type Source interface {
	Intn(n int) int
}

// TickResult reports what happened during one Tick.
type TickResult struct {
	Moved bool
	Ate   bool
	Died  bool
}

// Engine holds the grid state. The boundary of the grid is the wall.
type Engine struct {
	size          int
	pointsPerFood int
	rng           Source

	snake   []Point // Head at index 0
	dir     Direction
	nextDir Direction // Buffered until the next Tick
	food    Point
	score   int
	ticks   uint64
	over    bool
	paused  bool
}

// NewEngine creates an engine and starts a round.
func NewEngine(size, pointsPerFood int, rng Source) *Engine {
	e := &Engine{
		size:          size,
		pointsPerFood: pointsPerFood,
		rng:           rng,
	}
	e.Reset()
	return e
}

// Reset starts a new round: a three-cell snake heading right from the
// center-left of the grid, zero score and fresh food.
func (e *Engine) Reset() {
	x, y := e.size/4, e.size/2
	e.snake = []Point{
		{X: x + 2, Y: y}, // Head
		{X: x + 1, Y: y},
		{X: x, Y: y},
	}
	e.dir = DirRight
	e.nextDir = DirRight
	e.score = 0
	e.ticks = 0
	e.over = false
	e.paused = false
	e.spawnFood()
}

// Turn buffers a direction change. A turn straight back into the body is
// rejected and reported as false.
func (e *Engine) Turn(d Direction) bool {
	if d.opposite(e.dir) {
		return false
	}
	e.nextDir = d
	return true
}

// TogglePause flips the paused flag. Ticks are ignored while paused.
func (e *Engine) TogglePause() {
	e.paused = !e.paused
}

// Tick advances the snake one cell.
func (e *Engine) Tick() TickResult {
	if e.over || e.paused {
		return TickResult{}
	}
	e.ticks++
	e.dir = e.nextDir

	head := e.snake[0]
	next := head
	switch e.dir {
	case DirUp:
		next.Y--
	case DirDown:
		next.Y++
	case DirLeft:
		next.X--
	case DirRight:
		next.X++
	}

	if !e.inBounds(next) {
		e.over = true
		return TickResult{Died: true}
	}

	ate := next == e.food

	// The tail moves away this tick unless the snake is growing.
	body := e.snake
	if !ate {
		body = body[:len(body)-1]
	}
	for _, seg := range body {
		if seg == next {
			e.over = true
			return TickResult{Died: true}
		}
	}

	e.snake = append([]Point{next}, body...)
	if ate {
		e.score += e.pointsPerFood
		e.spawnFood()
	}
	return TickResult{Moved: true, Ate: ate}
}

func (e *Engine) inBounds(p Point) bool {
	return p.X >= 0 && p.X < e.size && p.Y >= 0 && p.Y < e.size
}

// spawnFood places food on a random free cell, or off-grid when the snake
// fills the board.
func (e *Engine) spawnFood() {
	free := make([]Point, 0, e.size*e.size-len(e.snake))
	for y := range e.size {
		for x := range e.size {
			p := Point{X: x, Y: y}
			if !e.occupied(p) {
				free = append(free, p)
			}
		}
	}

	if len(free) == 0 {
		e.food = Point{X: -1, Y: -1}
		return
	}
	e.food = free[e.rng.Intn(len(free))]
}

func (e *Engine) occupied(p Point) bool {
	for _, seg := range e.snake {
		if seg == p {
			return true
		}
	}
	return false
}

// Snake returns a copy of the body, head first.
func (e *Engine) Snake() []Point {
	out := make([]Point, len(e.snake))
	copy(out, e.snake)
	return out
}

func (e *Engine) Head() Point          { return e.snake[0] }
func (e *Engine) Len() int             { return len(e.snake) }
func (e *Engine) Food() Point          { return e.food }
func (e *Engine) Score() int           { return e.score }
func (e *Engine) Direction() Direction { return e.dir }
func (e *Engine) Size() int            { return e.size }
func (e *Engine) Over() bool           { return e.over }
func (e *Engine) Paused() bool         { return e.paused }
func (e *Engine) Ticks() uint64        { return e.ticks }
