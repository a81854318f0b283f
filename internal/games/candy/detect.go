package candy

// Matches is the set of cells that belong to at least one horizontal or
// vertical run of three or more identical non-empty pieces.
type Matches struct {
	size   int
	marked []bool
	count  int
}

// Has reports whether p is part of a match.
func (m Matches) Has(p Pos) bool {
	if p.Row < 0 || p.Row >= m.size || p.Col < 0 || p.Col >= m.size {
		return false
	}
	return m.marked[p.Row*m.size+p.Col]
}

// Len returns the number of distinct matched cells.
func (m Matches) Len() int {
	return m.count
}

// Positions returns the matched cells in row-major order.
func (m Matches) Positions() []Pos {
	out := make([]Pos, 0, m.count)
	for i, ok := range m.marked {
		if ok {
			out = append(out, Pos{Row: i / m.size, Col: i % m.size})
		}
	}
	return out
}

func (m *Matches) mark(p Pos) {
	i := p.Row*m.size + p.Col
	if !m.marked[i] {
		m.marked[i] = true
		m.count++
	}
}

// FindMatches scans every row and column for runs of three or more and
// returns their union. A cell shared by a horizontal and a vertical run
// is counted once. The board is not modified.
func FindMatches(b *Board) (bool, Matches) {
	m := Matches{size: b.size, marked: make([]bool, b.size*b.size)}

	// Rows
	for r := 0; r < b.size; r++ {
		scanLine(b, &m, func(i int) Pos { return Pos{Row: r, Col: i} })
	}
	// Columns
	for c := 0; c < b.size; c++ {
		scanLine(b, &m, func(i int) Pos { return Pos{Row: i, Col: c} })
	}

	return m.count > 0, m
}

// scanLine marks runs along one line; at maps the index along the line to a cell.
func scanLine(b *Board, m *Matches, at func(i int) Pos) {
	start := 0
	for i := 1; i <= b.size; i++ {
		if i < b.size && b.At(at(i)) == b.At(at(start)) {
			continue
		}
		if i-start >= 3 && b.At(at(start)) != Empty {
			for j := start; j < i; j++ {
				m.mark(at(j))
			}
		}
		start = i
	}
}
