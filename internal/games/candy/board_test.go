package candy

import (
	"testing"
)

func TestAdjacent(t *testing.T) {
	tests := []struct {
		a, b Pos
		want bool
	}{
		{Pos{0, 0}, Pos{0, 1}, true},
		{Pos{0, 0}, Pos{1, 0}, true},
		{Pos{3, 3}, Pos{2, 3}, true},
		{Pos{0, 0}, Pos{1, 1}, false},
		{Pos{0, 0}, Pos{0, 2}, false},
		{Pos{2, 2}, Pos{2, 2}, false},
	}

	for _, tt := range tests {
		if got := Adjacent(tt.a, tt.b); got != tt.want {
			t.Errorf("Adjacent(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
		if Adjacent(tt.b, tt.a) != Adjacent(tt.a, tt.b) {
			t.Errorf("Adjacent is not symmetric for %v, %v", tt.a, tt.b)
		}
	}
}

func TestParseBoardRoundTrip(t *testing.T) {
	rows := []string{"RBG", "Y.P", "GGB"}
	b := MustParseBoard(rows...)

	if b.Size() != 3 {
		t.Fatalf("Size() = %d, want 3", b.Size())
	}
	if b.At(Pos{1, 1}) != Empty || b.At(Pos{1, 2}) != Purple {
		t.Errorf("unexpected cells:\n%s", b)
	}
	if got := b.String(); got != "RBG\nY.P\nGGB" {
		t.Errorf("String() = %q", got)
	}
	if b.EmptyCount() != 1 {
		t.Errorf("EmptyCount() = %d, want 1", b.EmptyCount())
	}

	if _, err := ParseBoard("RB", "R"); err == nil {
		t.Error("ragged rows should fail")
	}
	if _, err := ParseBoard("RX", "RB"); err == nil {
		t.Error("unknown letter should fail")
	}
	if _, err := ParseBoard(); err == nil {
		t.Error("empty board should fail")
	}
}

func TestBoardBounds(t *testing.T) {
	b := NewBoard(4)
	if b.EmptyCount() != 16 {
		t.Errorf("new board should be all empty, got %d empties", b.EmptyCount())
	}

	for _, p := range []Pos{{-1, 0}, {0, -1}, {4, 0}, {0, 4}} {
		if b.InBounds(p) {
			t.Errorf("InBounds(%v) = true", p)
		}
		b.Set(p, Red) // ignored
		if b.At(p) != Empty {
			t.Errorf("At(%v) should be Empty off the board", p)
		}
	}
	if b.EmptyCount() != 16 {
		t.Error("out-of-bounds Set modified the board")
	}
}

func TestSwapInvolution(t *testing.T) {
	src := NewSource(7)
	for range 20 {
		b := NewBoard(6)
		Fill(b, src, MaxKinds)
		orig := b.Clone()

		a := Pos{src.Intn(6), src.Intn(6)}
		c := Pos{src.Intn(6), src.Intn(6)}
		b.Swap(a, c)
		b.Swap(a, c)

		if !b.Equal(orig) {
			t.Fatalf("swap twice changed the board\nbefore:\n%s\nafter:\n%s", orig, b)
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	b := MustParseBoard("RBG", "GRB", "BGR")
	c := b.Clone()
	c.Set(Pos{0, 0}, Yellow)

	if b.At(Pos{0, 0}) != Red {
		t.Error("modifying clone changed original")
	}
	if b.Equal(c) {
		t.Error("Equal should report the difference")
	}

	rows := b.Rows()
	rows[1][1] = Purple
	if b.At(Pos{1, 1}) != Red {
		t.Error("Rows() should return a copy")
	}
}

func TestFill(t *testing.T) {
	for kinds := 2; kinds <= MaxKinds; kinds++ {
		b := NewBoard(8)
		Fill(b, NewSource(int64(kinds)), kinds)

		if b.EmptyCount() != 0 {
			t.Errorf("kinds=%d: Fill left %d empties", kinds, b.EmptyCount())
		}
		for _, row := range b.Rows() {
			for _, p := range row {
				if p < Red || int(p) > kinds {
					t.Errorf("kinds=%d: piece %v out of range", kinds, p)
				}
			}
		}
	}
}

func TestPieceAttributes(t *testing.T) {
	seen := make(map[rune]bool)
	for p := Red; p <= Purple; p++ {
		if p.String() == "unknown" || p.Color() == 0 {
			t.Errorf("piece %d missing name or color", p)
		}
		if seen[p.Glyph()] {
			t.Errorf("glyph %q reused", p.Glyph())
		}
		seen[p.Glyph()] = true
	}
	if Piece(42).String() != "unknown" {
		t.Error("unexpected name for invalid piece")
	}
}
