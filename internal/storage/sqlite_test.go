package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.SaveHighScore("candy", 120); err != nil {
		t.Fatal(err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	if hs, _ := store.LoadHighScore("candy"); hs != 120 {
		t.Errorf("high score after reopen = %d, want 120", hs)
	}
}

func TestStoreHighScores(t *testing.T) {
	store := openTestStore(t)

	hs, err := store.LoadHighScore("candy")
	if err != nil {
		t.Fatalf("LoadHighScore() failed: %v", err)
	}
	if hs != 0 {
		t.Errorf("missing key should load as 0, got %d", hs)
	}

	for _, score := range []int{50, 300, 200} {
		if err := store.SaveHighScore("candy", score); err != nil {
			t.Fatalf("SaveHighScore(%d) failed: %v", score, err)
		}
	}
	if err := store.SaveHighScore("snake", 7); err != nil {
		t.Fatal(err)
	}

	// A lower save after a higher one keeps the higher record.
	if hs, _ := store.LoadHighScore("candy"); hs != 300 {
		t.Errorf("candy high score = %d, want 300", hs)
	}
	if hs, _ := store.LoadHighScore("snake"); hs != 7 {
		t.Errorf("snake high score = %d, want 7", hs)
	}
}

func TestStoreSaveAndTopScores(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := store.SaveScore("candy", score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("snake", 500); err != nil {
		t.Fatal(err)
	}

	scores, err := store.TopScores("candy", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}
	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores not sorted descending: %+v", scores)
	}
	if scores[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be populated")
	}

	limited, _ := store.TopScores("candy", 2)
	if len(limited) != 2 {
		t.Errorf("limit ignored, got %d rows", len(limited))
	}

	all, _ := store.AllScores("candy")
	if len(all) != 3 {
		t.Errorf("AllScores() returned %d rows", len(all))
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("candy", 100)
	store.SaveHighScore("candy", 100)
	store.SaveScore("snake", 300)

	if err := store.ClearScores("candy"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if scores, _ := store.TopScores("candy", 10); len(scores) != 0 {
		t.Errorf("Expected 0 candy scores after clear, got %d", len(scores))
	}
	if hs, _ := store.LoadHighScore("candy"); hs != 0 {
		t.Errorf("high score should be cleared, got %d", hs)
	}
	if scores, _ := store.TopScores("snake", 10); len(scores) != 1 {
		t.Error("snake scores should not be affected")
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetGameStats("candy")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || empty.HighScore != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("unexpected stats for empty game: %+v", empty)
	}

	store.SaveScore("candy", 100)
	store.SaveScore("candy", 300)
	store.SaveHighScore("candy", 450)

	stats, err := store.GetGameStats("candy")
	if err != nil {
		t.Fatal(err)
	}
	if stats.GamesCount != 2 || stats.TotalScore != 400 || stats.AvgScore != 200 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.HighScore != 450 {
		t.Errorf("HighScore = %d, want the keyed record 450", stats.HighScore)
	}
}

func TestMemoryStore(t *testing.T) {
	m := NewMemory()
	if hs, err := m.LoadHighScore("candy"); err != nil || hs != 0 {
		t.Errorf("LoadHighScore() = %d, %v", hs, err)
	}
	m.SaveHighScore("candy", 90)
	if hs, _ := m.LoadHighScore("candy"); hs != 90 {
		t.Errorf("LoadHighScore() = %d, want 90", hs)
	}
	m.SaveHighScore("candy", 30)
	if hs, _ := m.LoadHighScore("candy"); hs != 90 {
		t.Errorf("lower save replaced the record: LoadHighScore() = %d, want 90", hs)
	}
}

func TestStoreHighScoreStaleWriter(t *testing.T) {
	store := openTestStore(t)

	// Two sessions load the empty record, the second one saves first.
	if err := store.SaveHighScore("candy", 500); err != nil {
		t.Fatal(err)
	}
	if err := store.SaveHighScore("candy", 30); err != nil {
		t.Fatal(err)
	}
	if hs, _ := store.LoadHighScore("candy"); hs != 500 {
		t.Errorf("high score = %d, want 500 kept over the stale 30", hs)
	}

	if err := store.SaveHighScore("candy", 800); err != nil {
		t.Fatal(err)
	}
	if hs, _ := store.LoadHighScore("candy"); hs != 800 {
		t.Errorf("high score = %d, want 800", hs)
	}
}
