package candy

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/candy-arcade/internal/core"
)

var (
	// ErrOutOfBounds is returned when a position lies outside the board.
	ErrOutOfBounds = errors.New("candy: position out of bounds")
	// ErrInvalidOptions is returned by NewSession for unusable options.
	ErrInvalidOptions = errors.New("candy: invalid options")
)

const (
	DefaultGridSize     = 8
	MinGridSize         = 3
	MaxGridSize         = 32
	DefaultMoveBudget   = 20
	DefaultTargetScore  = 1000
	DefaultHighScoreKey = "candy"
)

// Phase is the tap-selection state of a session.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseAwaitingSecondTap
)

func (p Phase) String() string {
	if p == PhaseAwaitingSecondTap {
		return "awaiting_second_tap"
	}
	return "idle"
}

// Options configure a new session. Zero values select the defaults, so a
// MoveBudget of 0 means DefaultMoveBudget, not a session with no moves.
type Options struct {
	GridSize         int
	Kinds            int
	MoveBudget       int
	TargetScore      int
	PointsPerPiece   int
	MaxCascadeCycles int

	Rand         Source // Defaults to a time-seeded source
	HighScores   core.HighScoreStore
	HighScoreKey string
	Notifier     core.Notifier
	Logger       *log.Logger
}

func (o Options) withDefaults() Options {
	if o.GridSize == 0 {
		o.GridSize = DefaultGridSize
	}
	if o.Kinds == 0 {
		o.Kinds = MaxKinds
	}
	if o.MoveBudget == 0 {
		o.MoveBudget = DefaultMoveBudget
	}
	if o.TargetScore == 0 {
		o.TargetScore = DefaultTargetScore
	}
	if o.PointsPerPiece == 0 {
		o.PointsPerPiece = DefaultPointsPerPiece
	}
	if o.MaxCascadeCycles == 0 {
		o.MaxCascadeCycles = DefaultMaxCycles
	}
	if o.HighScoreKey == "" {
		o.HighScoreKey = DefaultHighScoreKey
	}
	if o.Rand == nil {
		o.Rand = NewSource(time.Now().UnixNano())
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	return o
}

func (o Options) validate() error {
	switch {
	case o.GridSize < MinGridSize:
		return fmt.Errorf("%w: grid size %d is below %d", ErrInvalidOptions, o.GridSize, MinGridSize)
	case o.GridSize > MaxGridSize:
		return fmt.Errorf("%w: grid size %d is above %d", ErrInvalidOptions, o.GridSize, MaxGridSize)
	case o.Kinds < 2 || o.Kinds > MaxKinds:
		return fmt.Errorf("%w: kinds %d not in [2, %d]", ErrInvalidOptions, o.Kinds, MaxKinds)
	case o.MoveBudget < 0:
		return fmt.Errorf("%w: negative move budget %d", ErrInvalidOptions, o.MoveBudget)
	case o.TargetScore < 0:
		return fmt.Errorf("%w: negative target score %d", ErrInvalidOptions, o.TargetScore)
	case o.PointsPerPiece < 0:
		return fmt.Errorf("%w: negative points per piece %d", ErrInvalidOptions, o.PointsPerPiece)
	case o.MaxCascadeCycles < 0:
		return fmt.Errorf("%w: negative cascade bound %d", ErrInvalidOptions, o.MaxCascadeCycles)
	}
	return nil
}

// SwapResult describes the outcome of a tap or swap attempt.
type SwapResult struct {
	Attempted      bool   // False when a tap only selected a cell
	Accepted       bool   // The two cells were adjacent and got swapped
	ScoreDelta     int    // Points earned by the cascade
	Board          *Board // Board after the cascade settled
	MovesRemaining int
	Swapped        *Board // Board right after the swap, before any clearing
	Cascade        Cascade
}

// State is a read-only view of a session.
type State struct {
	Board          *Board
	Score          int
	MovesRemaining int
	TargetScore    int
	HighScore      int
	Selection      *Pos
	Phase          Phase
	Won            bool
	MovesExhausted bool
}

// Session is one round of the match-3 game. It is not safe for concurrent use.
type Session struct {
	opts     Options
	board    *Board
	resolver *Resolver
	logger   *log.Logger

	score     int
	moves     int
	highScore int
	selection *Pos

	won       bool
	exhausted bool
}

// NewSession fills a fresh board and loads the stored high score.
// The initial board may already contain matches; they are left in place
// until the first accepted swap settles the board.
func NewSession(opts Options) (*Session, error) {
	opts = opts.withDefaults()
	if err := opts.validate(); err != nil {
		return nil, err
	}

	s := &Session{
		opts:  opts,
		board: NewBoard(opts.GridSize),
		resolver: &Resolver{
			PointsPerPiece: opts.PointsPerPiece,
			MaxCycles:      opts.MaxCascadeCycles,
			Logger:         opts.Logger,
		},
		logger: opts.Logger,
		moves:  opts.MoveBudget,
	}
	Fill(s.board, opts.Rand, opts.Kinds)

	if opts.HighScores != nil {
		hs, err := opts.HighScores.LoadHighScore(opts.HighScoreKey)
		if err != nil {
			s.logger.Warn("failed to load high score", "key", opts.HighScoreKey, "err", err)
		} else {
			s.highScore = hs
		}
	}

	s.logger.Debug("new session",
		"size", opts.GridSize, "kinds", opts.Kinds,
		"moves", opts.MoveBudget, "target", opts.TargetScore)
	return s, nil
}

// Tap handles a tap on p. With no selection, p becomes the selection.
// With a selection s, AttemptSwap(s, p) runs and the selection is cleared
// whether or not the swap was accepted.
func (s *Session) Tap(p Pos) (SwapResult, error) {
	if !s.board.InBounds(p) {
		return SwapResult{}, fmt.Errorf("%w: tap at %v", ErrOutOfBounds, p)
	}

	if s.selection == nil {
		sel := p
		s.selection = &sel
		return SwapResult{
			Board:          s.board.Clone(),
			MovesRemaining: s.moves,
		}, nil
	}

	return s.AttemptSwap(*s.selection, p)
}

// AttemptSwap swaps a and b when they are adjacent, consumes a move and
// settles the board. A non-adjacent pair is rejected without touching the
// board or the move count. Out-of-bounds positions fail with ErrOutOfBounds
// and leave the session unchanged.
func (s *Session) AttemptSwap(a, b Pos) (SwapResult, error) {
	if !s.board.InBounds(a) || !s.board.InBounds(b) {
		return SwapResult{}, fmt.Errorf("%w: swap %v with %v", ErrOutOfBounds, a, b)
	}
	s.selection = nil

	if !Adjacent(a, b) {
		return SwapResult{
			Attempted:      true,
			Board:          s.board.Clone(),
			MovesRemaining: s.moves,
		}, nil
	}

	s.board.Swap(a, b)
	swapped := s.board.Clone()

	// The move is spent even when the swap creates no match.
	if s.moves > 0 {
		s.moves--
	}

	cascade := s.resolver.Settle(s.board, s.opts.Rand, s.opts.Kinds)
	s.score += cascade.ScoreDelta
	s.updateHighScore()
	s.checkOutcome()

	s.logger.Debug("swap",
		"a", a, "b", b, "delta", cascade.ScoreDelta,
		"cycles", cascade.Cycles, "moves", s.moves)

	return SwapResult{
		Attempted:      true,
		Accepted:       true,
		ScoreDelta:     cascade.ScoreDelta,
		Board:          s.board.Clone(),
		MovesRemaining: s.moves,
		Swapped:        swapped,
		Cascade:        cascade,
	}, nil
}

func (s *Session) updateHighScore() {
	if s.score <= s.highScore {
		return
	}
	s.highScore = s.score
	if s.opts.HighScores == nil {
		return
	}
	if err := s.opts.HighScores.SaveHighScore(s.opts.HighScoreKey, s.score); err != nil {
		s.logger.Warn("failed to save high score", "key", s.opts.HighScoreKey, "err", err)
		return
	}
	// Another session may have raised the record since we loaded it.
	if hs, err := s.opts.HighScores.LoadHighScore(s.opts.HighScoreKey); err == nil && hs > s.highScore {
		s.highScore = hs
	}
}

func (s *Session) checkOutcome() {
	if !s.won && s.score >= s.opts.TargetScore {
		s.won = true
		s.notify(core.OutcomeWin)
	}
	if !s.exhausted && s.moves == 0 {
		s.exhausted = true
		if !s.won {
			s.notify(core.OutcomeLoss)
		}
	}
}

func (s *Session) notify(kind core.OutcomeKind) {
	s.logger.Debug("session finished", "outcome", kind, "score", s.score)
	if s.opts.Notifier == nil {
		return
	}
	s.opts.Notifier.Notify(core.Outcome{
		GameID: s.opts.HighScoreKey,
		Kind:   kind,
		Score:  s.score,
	})
}

// State returns a snapshot of the session. The board is a copy.
func (s *Session) State() State {
	st := State{
		Board:          s.board.Clone(),
		Score:          s.score,
		MovesRemaining: s.moves,
		TargetScore:    s.opts.TargetScore,
		HighScore:      s.highScore,
		Phase:          s.Phase(),
		Won:            s.won,
		MovesExhausted: s.exhausted,
	}
	if s.selection != nil {
		sel := *s.selection
		st.Selection = &sel
	}
	return st
}

// Phase returns the current selection phase.
func (s *Session) Phase() Phase {
	if s.selection != nil {
		return PhaseAwaitingSecondTap
	}
	return PhaseIdle
}

// Selection returns the selected cell, if any.
func (s *Session) Selection() (Pos, bool) {
	if s.selection == nil {
		return Pos{}, false
	}
	return *s.selection, true
}

// ClearSelection drops a pending first tap.
func (s *Session) ClearSelection() {
	s.selection = nil
}

func (s *Session) Score() int           { return s.score }
func (s *Session) MovesRemaining() int  { return s.moves }
func (s *Session) HighScore() int       { return s.highScore }
func (s *Session) Won() bool            { return s.won }
func (s *Session) MovesExhausted() bool { return s.exhausted }

// Size returns the board side length.
func (s *Session) Size() int {
	return s.board.Size()
}

// At returns the piece at p on the live board.
func (s *Session) At(p Pos) Piece {
	return s.board.At(p)
}
