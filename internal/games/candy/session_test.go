package candy

import (
	"errors"
	"testing"

	"github.com/vovakirdan/candy-arcade/internal/core"
	"github.com/vovakirdan/candy-arcade/internal/storage"
)

// scriptedRows is a match-free board where swapping (0,2) with (1,2)
// lines up three reds in row 0.
var scriptedRows = []string{
	"RRBG",
	"BGRY",
	"GYBR",
	"YBGY",
}

// scriptedRefill keeps the board stable after the red row clears.
var scriptedRefill = []int{3, 4, 0}

func newScriptedSession(t *testing.T, opts Options) *Session {
	t.Helper()
	vals := append(boardValues(t, scriptedRows...), scriptedRefill...)
	opts.GridSize = 4
	opts.Rand = &scriptSource{vals: vals}
	s, err := NewSession(opts)
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	return s
}

type outcomeRecorder struct {
	got []core.Outcome
}

func (r *outcomeRecorder) Notify(o core.Outcome) {
	r.got = append(r.got, o)
}

func TestNewSessionDefaults(t *testing.T) {
	s, err := NewSession(Options{Rand: NewSource(1)})
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}

	st := s.State()
	if st.Board.Size() != DefaultGridSize {
		t.Errorf("grid size = %d, want %d", st.Board.Size(), DefaultGridSize)
	}
	if st.MovesRemaining != DefaultMoveBudget || st.TargetScore != DefaultTargetScore {
		t.Errorf("moves %d target %d", st.MovesRemaining, st.TargetScore)
	}
	if st.Score != 0 || st.Phase != PhaseIdle || st.Selection != nil {
		t.Errorf("unexpected initial state %+v", st)
	}
	if st.Board.EmptyCount() != 0 {
		t.Error("initial board has empty cells")
	}
}

func TestNewSessionInvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"grid too small", Options{GridSize: 2}},
		{"negative grid", Options{GridSize: -4}},
		{"grid too large", Options{GridSize: MaxGridSize + 1}},
		{"grid overflowing cell count", Options{GridSize: 1 << 32}},
		{"one kind", Options{Kinds: 1}},
		{"too many kinds", Options{Kinds: MaxKinds + 1}},
		{"negative moves", Options{MoveBudget: -1}},
		{"negative target", Options{TargetScore: -5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSession(tt.opts)
			if !errors.Is(err, ErrInvalidOptions) {
				t.Errorf("NewSession() error = %v, want ErrInvalidOptions", err)
			}
		})
	}
}

func TestAttemptSwapScoresMatch(t *testing.T) {
	s := newScriptedSession(t, Options{})

	res, err := s.AttemptSwap(Pos{0, 2}, Pos{1, 2})
	if err != nil {
		t.Fatalf("AttemptSwap() failed: %v", err)
	}
	if !res.Accepted || res.ScoreDelta != 30 {
		t.Errorf("result accepted=%v delta=%d, want accepted with 30", res.Accepted, res.ScoreDelta)
	}
	if res.MovesRemaining != DefaultMoveBudget-1 {
		t.Errorf("moves = %d", res.MovesRemaining)
	}
	if got := res.Swapped.String(); got != "RRRG\nBGBY\nGYBR\nYBGY" {
		t.Errorf("swapped board:\n%s", got)
	}
	if got := res.Board.String(); got != "YPRG\nBGBY\nGYBR\nYBGY" {
		t.Errorf("settled board:\n%s", got)
	}
	if s.Score() != 30 {
		t.Errorf("score = %d", s.Score())
	}
}

func TestAttemptSwapNoMatchStillCostsMove(t *testing.T) {
	s := newScriptedSession(t, Options{})
	before := s.State().Board

	// Y and B in the bottom row: no run either way.
	res, err := s.AttemptSwap(Pos{3, 0}, Pos{3, 1})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Accepted || res.ScoreDelta != 0 {
		t.Errorf("accepted=%v delta=%d", res.Accepted, res.ScoreDelta)
	}
	if res.MovesRemaining != DefaultMoveBudget-1 {
		t.Errorf("moves = %d, want %d", res.MovesRemaining, DefaultMoveBudget-1)
	}

	// The swap is kept, not reverted
	want := before.Clone()
	want.Swap(Pos{3, 0}, Pos{3, 1})
	if !res.Board.Equal(want) {
		t.Errorf("board:\n%s\nwant:\n%s", res.Board, want)
	}
}

func TestAttemptSwapNonAdjacent(t *testing.T) {
	s := newScriptedSession(t, Options{})
	before := s.State()

	for _, pair := range [][2]Pos{
		{{0, 0}, {1, 1}},
		{{0, 0}, {0, 2}},
		{{2, 2}, {2, 2}},
	} {
		res, err := s.AttemptSwap(pair[0], pair[1])
		if err != nil {
			t.Fatalf("AttemptSwap(%v, %v) error: %v", pair[0], pair[1], err)
		}
		if res.Accepted || res.ScoreDelta != 0 {
			t.Errorf("AttemptSwap(%v, %v) accepted", pair[0], pair[1])
		}
	}

	after := s.State()
	if !after.Board.Equal(before.Board) || after.MovesRemaining != before.MovesRemaining {
		t.Error("rejected swaps changed the session")
	}
}

func TestAttemptSwapOutOfBounds(t *testing.T) {
	s := newScriptedSession(t, Options{})
	s.Tap(Pos{0, 0})

	_, err := s.AttemptSwap(Pos{0, 3}, Pos{0, 4})
	if !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("error = %v, want ErrOutOfBounds", err)
	}
	if _, err := s.Tap(Pos{-1, 0}); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Tap error = %v, want ErrOutOfBounds", err)
	}
	if s.Phase() != PhaseAwaitingSecondTap {
		t.Error("failed call should not clear the selection")
	}
	if s.MovesRemaining() != DefaultMoveBudget {
		t.Error("failed call should not spend a move")
	}
}

func TestTapFlow(t *testing.T) {
	s := newScriptedSession(t, Options{})

	res, err := s.Tap(Pos{0, 2})
	if err != nil {
		t.Fatal(err)
	}
	if res.Attempted {
		t.Error("first tap should only select")
	}
	if sel, ok := s.Selection(); !ok || sel != (Pos{0, 2}) || s.Phase() != PhaseAwaitingSecondTap {
		t.Errorf("selection = %v %v, phase %v", sel, ok, s.Phase())
	}

	res, err = s.Tap(Pos{1, 2})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Accepted || res.ScoreDelta != 30 {
		t.Errorf("second tap result = %+v", res)
	}
	if s.Phase() != PhaseIdle || s.State().Selection != nil {
		t.Error("selection should clear after a swap")
	}
}

func TestTapNonAdjacentClearsSelection(t *testing.T) {
	s := newScriptedSession(t, Options{})

	s.Tap(Pos{0, 0})
	res, _ := s.Tap(Pos{3, 3})
	if !res.Attempted || res.Accepted {
		t.Errorf("result = %+v, want attempted but rejected", res)
	}
	if _, ok := s.Selection(); ok {
		t.Error("non-adjacent second tap should leave no selection")
	}

	// Same cell twice is also a rejected attempt
	s.Tap(Pos{1, 1})
	res, _ = s.Tap(Pos{1, 1})
	if res.Accepted || s.Phase() != PhaseIdle {
		t.Error("tapping the selected cell again should clear it")
	}
	if s.MovesRemaining() != DefaultMoveBudget {
		t.Error("rejected taps should not spend moves")
	}
}

func TestMovesExhaustion(t *testing.T) {
	rec := &outcomeRecorder{}
	const budget = 3
	s, err := NewSession(Options{
		MoveBudget:  budget,
		TargetScore: 1 << 30,
		Rand:        NewSource(5),
		Notifier:    rec,
	})
	if err != nil {
		t.Fatal(err)
	}

	for i := range budget {
		if s.MovesExhausted() {
			t.Fatalf("exhausted after %d swaps", i)
		}
		if res, _ := s.AttemptSwap(Pos{0, 0}, Pos{0, 1}); !res.Accepted {
			t.Fatalf("swap %d rejected", i)
		}
	}

	if s.MovesRemaining() != 0 || !s.MovesExhausted() {
		t.Errorf("moves = %d, exhausted = %v", s.MovesRemaining(), s.MovesExhausted())
	}

	// Still interactive; moves stay clamped at zero
	res, _ := s.AttemptSwap(Pos{0, 0}, Pos{0, 1})
	if !res.Accepted || res.MovesRemaining != 0 {
		t.Errorf("swap after exhaustion = accepted %v moves %d", res.Accepted, res.MovesRemaining)
	}

	if len(rec.got) != 1 || rec.got[0].Kind != core.OutcomeLoss || rec.got[0].GameID != DefaultHighScoreKey {
		t.Errorf("notifications = %+v, want a single loss", rec.got)
	}
}

func TestWinNotifiedOnce(t *testing.T) {
	rec := &outcomeRecorder{}
	s := newScriptedSession(t, Options{
		TargetScore: 30,
		MoveBudget:  1,
		Notifier:    rec,
	})

	s.AttemptSwap(Pos{0, 2}, Pos{1, 2})
	if !s.Won() || !s.MovesExhausted() {
		t.Fatalf("won=%v exhausted=%v", s.Won(), s.MovesExhausted())
	}

	s.AttemptSwap(Pos{0, 0}, Pos{0, 1})
	if len(rec.got) != 1 || rec.got[0].Kind != core.OutcomeWin || rec.got[0].Score != 30 {
		t.Errorf("notifications = %+v, want a single win", rec.got)
	}
}

func TestHighScorePersistence(t *testing.T) {
	store := newMemStore()
	store.scores["custom"] = 20

	s := newScriptedSession(t, Options{HighScores: store, HighScoreKey: "custom"})
	if s.HighScore() != 20 {
		t.Fatalf("loaded high score = %d, want 20", s.HighScore())
	}

	s.AttemptSwap(Pos{0, 2}, Pos{1, 2})
	if store.scores["custom"] != 30 || s.State().HighScore != 30 {
		t.Errorf("stored = %d, state = %d", store.scores["custom"], s.State().HighScore)
	}

	saves := store.saves
	s.AttemptSwap(Pos{3, 0}, Pos{3, 1})
	if s.Score() == 30 && store.saves != saves {
		t.Error("high score saved without being exceeded")
	}
}

func TestHighScoreStoreFailureIsNotFatal(t *testing.T) {
	store := newMemStore()
	store.err = errors.New("disk full")

	s := newScriptedSession(t, Options{HighScores: store})
	res, err := s.AttemptSwap(Pos{0, 2}, Pos{1, 2})
	if err != nil || !res.Accepted {
		t.Fatalf("swap failed: %v", err)
	}
	if s.HighScore() != 30 {
		t.Errorf("in-memory high score = %d, want 30", s.HighScore())
	}
}

func TestStateIsACopy(t *testing.T) {
	s := newScriptedSession(t, Options{})
	s.Tap(Pos{1, 1})

	st := s.State()
	st.Board.Set(Pos{0, 0}, Purple)
	st.Selection.Row = 3

	if s.At(Pos{0, 0}) != Red {
		t.Error("State().Board aliases the live board")
	}
	if sel, _ := s.Selection(); sel != (Pos{1, 1}) {
		t.Error("State().Selection aliases the live selection")
	}
}

func TestAttemptSwapScoresCrossingRunsOnce(t *testing.T) {
	// Moving the bottom-left R up completes row 2 and column 0 at once;
	// (2,0) belongs to both runs.
	rows := []string{
		"RBGY",
		"RGYB",
		"BRRG",
		"RYBP",
	}
	// Refill (0,0) (0,1) (0,2) (1,0) (2,0) with G P R Y P.
	vals := append(boardValues(t, rows...), 2, 4, 0, 3, 4)
	s, err := NewSession(Options{GridSize: 4, Rand: &scriptSource{vals: vals}})
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}

	res, err := s.AttemptSwap(Pos{2, 0}, Pos{3, 0})
	if err != nil {
		t.Fatalf("AttemptSwap() failed: %v", err)
	}
	if !res.Accepted || res.ScoreDelta != 50 || res.Cascade.Cleared != 5 || res.Cascade.Cycles != 1 {
		t.Fatalf("result = delta %d cleared %d cycles %d, want 50/5/1",
			res.ScoreDelta, res.Cascade.Cleared, res.Cascade.Cycles)
	}
	if got := res.Cascade.Steps[0].Matches.Len(); got != 5 {
		t.Errorf("matched cells = %d, want 5", got)
	}
	if got := res.Board.String(); got != "GPRY\nYBGB\nPGYG\nBYBP" {
		t.Errorf("settled board:\n%s", got)
	}
	if s.Score() != 50 {
		t.Errorf("score = %d, want 50", s.Score())
	}
}

func TestHighScoreNotLoweredByStaleSession(t *testing.T) {
	store := storage.NewMemory()
	s := newScriptedSession(t, Options{HighScores: store})
	if s.HighScore() != 0 {
		t.Fatalf("loaded high score = %d, want 0", s.HighScore())
	}

	// Another session records a better score after s loaded its copy.
	if err := store.SaveHighScore(DefaultHighScoreKey, 500); err != nil {
		t.Fatal(err)
	}

	s.AttemptSwap(Pos{0, 2}, Pos{1, 2})
	if s.Score() != 30 {
		t.Fatalf("score = %d, want 30", s.Score())
	}
	if hs, _ := store.LoadHighScore(DefaultHighScoreKey); hs != 500 {
		t.Errorf("stored high score = %d, want 500", hs)
	}
	if s.HighScore() != 500 {
		t.Errorf("session high score = %d, want the refreshed 500", s.HighScore())
	}
}
