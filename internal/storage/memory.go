package storage

import (
	"sync"

	"github.com/vovakirdan/candy-arcade/internal/core"
)

// Memory is an in-process HighScoreStore for sessions that run without a
// database, such as tests and web sessions started with --db "".
type Memory struct {
	mu     sync.RWMutex
	scores map[string]int
}

var _ core.HighScoreStore = (*Memory)(nil)

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{scores: make(map[string]int)}
}

// LoadHighScore returns the stored score for key, or 0.
func (m *Memory) LoadHighScore(key string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.scores[key], nil
}

// SaveHighScore stores score for key unless a higher score is already stored.
func (m *Memory) SaveHighScore(key string, score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if score > m.scores[key] {
		m.scores[key] = score
	}
	return nil
}
