package candy

import "math/rand"

// Source supplies the random choices used to fill the board.
// *math/rand.Rand satisfies it; tests use scripted sources.
type Source interface {
	Intn(n int) int
}

// NewSource returns a seeded pseudo-random Source.
func NewSource(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}

// randomPiece draws one of the first kinds pieces uniformly.
func randomPiece(src Source, kinds int) Piece {
	return Piece(src.Intn(kinds) + 1)
}
