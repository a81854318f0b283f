package candy

import "testing"

// scriptSource replays a fixed list of values, cycling when exhausted.
type scriptSource struct {
	vals []int
	i    int
}

func (s *scriptSource) Intn(n int) int {
	v := s.vals[s.i%len(s.vals)] % n
	s.i++
	return v
}

// constSource always returns v.
type constSource int

func (c constSource) Intn(n int) int { return int(c) % n }

// boardValues converts board rows to the source values that Fill consumes
// to reproduce them.
func boardValues(t *testing.T, rows ...string) []int {
	t.Helper()
	b, err := ParseBoard(rows...)
	if err != nil {
		t.Fatalf("ParseBoard: %v", err)
	}
	vals := make([]int, 0, b.Size()*b.Size())
	for _, row := range b.Rows() {
		for _, p := range row {
			vals = append(vals, int(p)-1)
		}
	}
	return vals
}

type memStore struct {
	scores map[string]int
	saves  int
	err    error
}

func newMemStore() *memStore {
	return &memStore{scores: make(map[string]int)}
}

func (m *memStore) LoadHighScore(key string) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.scores[key], nil
}

func (m *memStore) SaveHighScore(key string, score int) error {
	if m.err != nil {
		return m.err
	}
	m.saves++
	m.scores[key] = score
	return nil
}
