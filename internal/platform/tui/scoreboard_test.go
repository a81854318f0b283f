package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/candy-arcade/internal/storage"
)

func TestScoreboardSwitchesGames(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	m := NewScoreboardModel(store, 80, 24)
	if len(m.games) < 2 {
		t.Fatalf("scoreboard has %d games, want at least 2", len(m.games))
	}
	second := m.games[1].ID
	for _, s := range []int{120, 80} {
		if _, err := store.SaveScore(second, s); err != nil {
			t.Fatalf("SaveScore: %v", err)
		}
	}

	m.load()
	if !strings.Contains(m.View(), "No games played") {
		t.Errorf("first game should have no stats:\n%s", m.View())
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if len(m.scores) != 2 || m.scores[0].Score != 120 {
		t.Fatalf("scores = %+v, want 120 then 80", m.scores)
	}
	if view := m.View(); !strings.Contains(view, "Games: 2") {
		t.Errorf("stats line missing:\n%s", view)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if m = next.(ScoreboardModel); m.current != 0 {
		t.Errorf("shift+tab should wrap back to the first game, current = %d", m.current)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEscape})
	if !next.(ScoreboardModel).IsGoingBack() {
		t.Error("esc should go back to the menu")
	}
}
