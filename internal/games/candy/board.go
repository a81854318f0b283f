package candy

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vovakirdan/candy-arcade/internal/core"
)

// Pos addresses a cell. Row 0 is the top of the board.
type Pos struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Adjacent reports whether a and b share an edge.
func Adjacent(a, b Pos) bool {
	return core.Abs(a.Row-b.Row)+core.Abs(a.Col-b.Col) == 1
}

// Board is a square grid of pieces stored row-major.
type Board struct {
	size  int
	cells []Piece
}

// NewBoard returns an all-empty size x size board.
func NewBoard(size int) *Board {
	return &Board{
		size:  size,
		cells: make([]Piece, size*size),
	}
}

// ParseBoard builds a board from rows of piece letters
// (R, B, G, Y, P, and '.' for empty). Rows must form a square.
func ParseBoard(rows ...string) (*Board, error) {
	n := len(rows)
	if n == 0 {
		return nil, errors.New("candy: empty board")
	}
	b := NewBoard(n)
	for r, line := range rows {
		if len(line) != n {
			return nil, fmt.Errorf("candy: row %d has %d cells, expected %d", r, len(line), n)
		}
		for c := 0; c < n; c++ {
			p, ok := pieceFromLetter(line[c])
			if !ok {
				return nil, fmt.Errorf("candy: unknown piece %q at %v", line[c], Pos{r, c})
			}
			b.cells[r*n+c] = p
		}
	}
	return b, nil
}

// MustParseBoard is ParseBoard that panics on malformed input.
func MustParseBoard(rows ...string) *Board {
	b, err := ParseBoard(rows...)
	if err != nil {
		panic(err)
	}
	return b
}

// Size returns the number of rows (and columns).
func (b *Board) Size() int {
	return b.size
}

// InBounds reports whether p lies on the board.
func (b *Board) InBounds(p Pos) bool {
	return p.Row >= 0 && p.Row < b.size && p.Col >= 0 && p.Col < b.size
}

// At returns the piece at p, or Empty when p is off the board.
func (b *Board) At(p Pos) Piece {
	if !b.InBounds(p) {
		return Empty
	}
	return b.cells[p.Row*b.size+p.Col]
}

// Set stores v at p. Out-of-bounds writes are ignored.
func (b *Board) Set(p Pos, v Piece) {
	if !b.InBounds(p) {
		return
	}
	b.cells[p.Row*b.size+p.Col] = v
}

// Swap exchanges the contents of two in-bounds cells. Adjacency is not checked.
func (b *Board) Swap(a, c Pos) {
	i, j := a.Row*b.size+a.Col, c.Row*b.size+c.Col
	b.cells[i], b.cells[j] = b.cells[j], b.cells[i]
}

// Clone returns an independent copy.
func (b *Board) Clone() *Board {
	cells := make([]Piece, len(b.cells))
	copy(cells, b.cells)
	return &Board{size: b.size, cells: cells}
}

// Equal reports whether both boards have the same size and contents.
func (b *Board) Equal(o *Board) bool {
	if o == nil || b.size != o.size {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// EmptyCount returns the number of empty cells.
func (b *Board) EmptyCount() int {
	n := 0
	for _, p := range b.cells {
		if p == Empty {
			n++
		}
	}
	return n
}

// Rows returns a copy of the board as a slice of rows.
func (b *Board) Rows() [][]Piece {
	rows := make([][]Piece, b.size)
	for r := range rows {
		rows[r] = make([]Piece, b.size)
		copy(rows[r], b.cells[r*b.size:(r+1)*b.size])
	}
	return rows
}

// String renders the board one row per line using piece letters.
func (b *Board) String() string {
	var sb strings.Builder
	for r := 0; r < b.size; r++ {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := 0; c < b.size; c++ {
			sb.WriteByte(b.cells[r*b.size+c].letter())
		}
	}
	return sb.String()
}

// Fill sets every cell to a random piece drawn from the first kinds kinds.
func Fill(b *Board, src Source, kinds int) {
	for i := range b.cells {
		b.cells[i] = randomPiece(src, kinds)
	}
}
