package core

// HighScoreStore persists a single best score per stable key.
// Games receive one from the platform; the storage package provides
// SQLite and in-memory implementations.
type HighScoreStore interface {
	LoadHighScore(key string) (int, error)
	SaveHighScore(key string, score int) error
}

// OutcomeKind tells whether a game ended in a win or a loss.
type OutcomeKind int

const (
	OutcomeLoss OutcomeKind = iota
	OutcomeWin
)

func (k OutcomeKind) String() string {
	if k == OutcomeWin {
		return "win"
	}
	return "loss"
}

// Outcome is the payload delivered to a Notifier when a game reaches a
// terminal condition.
type Outcome struct {
	GameID string
	Kind   OutcomeKind
	Score  int
}

// Notifier receives end-of-game outcomes. Implementations must not block.
type Notifier interface {
	Notify(Outcome)
}

// NotifierFunc adapts a plain function to the Notifier interface.
type NotifierFunc func(Outcome)

// Notify calls f(o).
func (f NotifierFunc) Notify(o Outcome) {
	f(o)
}
