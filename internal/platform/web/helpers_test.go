package web

import "github.com/vovakirdan/candy-arcade/internal/games/candy"

func candyPos(row, col int) candy.Pos {
	return candy.Pos{Row: row, Col: col}
}
