package candy

import (
	"io"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

const (
	DefaultPointsPerPiece = 10
	DefaultMaxCycles      = 100
)

// CascadeStep records one clear-collapse-refill cycle.
type CascadeStep struct {
	Matches       Matches
	Points        int
	AfterClear    *Board
	AfterCollapse *Board
	AfterRefill   *Board
}

// Cascade summarizes a full settle.
type Cascade struct {
	ScoreDelta int
	Cleared    int
	Cycles     int
	Capped     bool // Stopped at the cycle bound with matches still on the board
	Steps      []CascadeStep
}

var cappedCascades atomic.Int64

// CappedCascades returns how many settles in this process hit the cycle bound.
func CappedCascades() int64 {
	return cappedCascades.Load()
}

// Resolver drives a board to a stable state.
type Resolver struct {
	PointsPerPiece int
	MaxCycles      int
	Logger         *log.Logger
}

// NewResolver returns a resolver with default scoring and cycle bound.
func NewResolver(logger *log.Logger) *Resolver {
	return &Resolver{
		PointsPerPiece: DefaultPointsPerPiece,
		MaxCycles:      DefaultMaxCycles,
		Logger:         logger,
	}
}

func (r *Resolver) logger() *log.Logger {
	if r.Logger == nil {
		return log.New(io.Discard)
	}
	return r.Logger
}

// Settle repeatedly clears matches, collapses columns and refills the top
// from the first kinds kinds until FindMatches reports nothing or MaxCycles
// cycles have run. The board is modified in place. Each cleared cell is
// worth PointsPerPiece.
func (r *Resolver) Settle(b *Board, src Source, kinds int) Cascade {
	var c Cascade
	for {
		found, m := FindMatches(b)
		if !found {
			return c
		}
		if c.Cycles >= r.MaxCycles {
			c.Capped = true
			cappedCascades.Add(1)
			r.logger().Warn("cascade stopped at cycle bound",
				"cycles", c.Cycles, "pending", m.Len())
			return c
		}

		cleared := Clear(b, m)
		step := CascadeStep{
			Matches:    m,
			Points:     cleared * r.PointsPerPiece,
			AfterClear: b.Clone(),
		}
		Collapse(b)
		step.AfterCollapse = b.Clone()
		Refill(b, src, kinds)
		step.AfterRefill = b.Clone()

		c.Cycles++
		c.Cleared += cleared
		c.ScoreDelta += step.Points
		c.Steps = append(c.Steps, step)

		r.logger().Debug("cascade cycle", "cycle", c.Cycles, "cleared", cleared)
	}
}

// Clear empties every matched cell and returns how many were cleared.
func Clear(b *Board, m Matches) int {
	n := 0
	for _, p := range m.Positions() {
		if b.At(p) != Empty {
			b.Set(p, Empty)
			n++
		}
	}
	return n
}

// Collapse lets pieces fall straight down within each column, preserving
// their top-to-bottom order, so that all empties end up at the top.
// It returns the number of pieces that moved.
func Collapse(b *Board) int {
	moved := 0
	for c := 0; c < b.size; c++ {
		write := b.size - 1
		for r := b.size - 1; r >= 0; r-- {
			p := b.At(Pos{r, c})
			if p == Empty {
				continue
			}
			if r != write {
				b.Set(Pos{write, c}, p)
				b.Set(Pos{r, c}, Empty)
				moved++
			}
			write--
		}
	}
	return moved
}

// Refill replaces every empty cell with a random piece and returns the count.
// Refilled cells are not checked for new matches.
func Refill(b *Board, src Source, kinds int) int {
	n := 0
	for i, p := range b.cells {
		if p == Empty {
			b.cells[i] = randomPiece(src, kinds)
			n++
		}
	}
	return n
}
