// Package candy implements a match-3 cascade puzzle: a square board of
// colored pieces where swapping two neighbors that lines up three or more
// of a kind clears them, lets the pieces above fall and refills the gaps,
// repeating until the board is stable.
package candy

import "github.com/vovakirdan/candy-arcade/internal/core"

// Piece is the content of a board cell. The zero value is Empty.
type Piece uint8

const (
	Empty Piece = iota
	Red
	Blue
	Green
	Yellow
	Purple
)

// MaxKinds is the number of distinct non-empty pieces.
const MaxKinds = 5

var pieceNames = [...]string{
	Empty:  "empty",
	Red:    "red",
	Blue:   "blue",
	Green:  "green",
	Yellow: "yellow",
	Purple: "purple",
}

var pieceGlyphs = [...]rune{
	Empty:  ' ',
	Red:    '♥',
	Blue:   '●',
	Green:  '♣',
	Yellow: '★',
	Purple: '◆',
}

var pieceColors = [...]core.Color{
	Empty:  core.ColorDefault,
	Red:    core.ColorRed,
	Blue:   core.ColorBlue,
	Green:  core.ColorGreen,
	Yellow: core.ColorYellow,
	Purple: core.ColorPurple,
}

// String returns the piece name.
func (p Piece) String() string {
	if int(p) >= len(pieceNames) {
		return "unknown"
	}
	return pieceNames[p]
}

// Glyph returns the rune used to draw the piece.
func (p Piece) Glyph() rune {
	if int(p) >= len(pieceGlyphs) {
		return '?'
	}
	return pieceGlyphs[p]
}

// Color returns the terminal color of the piece.
func (p Piece) Color() core.Color {
	if int(p) >= len(pieceColors) {
		return core.ColorDefault
	}
	return pieceColors[p]
}

// letter is the single-character form used by Board.String and ParseBoard.
func (p Piece) letter() byte {
	if p == Empty {
		return '.'
	}
	if int(p) >= len(pieceNames) {
		return '?'
	}
	return pieceNames[p][0] - 'a' + 'A'
}

func pieceFromLetter(c byte) (Piece, bool) {
	switch c {
	case '.':
		return Empty, true
	case 'R':
		return Red, true
	case 'B':
		return Blue, true
	case 'G':
		return Green, true
	case 'Y':
		return Yellow, true
	case 'P':
		return Purple, true
	}
	return Empty, false
}
