// Package config provides YAML-based game configuration loading for the
// arcade platform.
package config

import (
	"errors"
	"fmt"
)

// MaxPieceKinds is the number of distinct candy kinds the game knows how to draw.
const MaxPieceKinds = 5

// MaxBoardSize bounds board.size; larger boards do not fit a terminal and
// cost memory quadratically.
const MaxBoardSize = 32

// CandyConfig contains all configuration for the match-3 game.
type CandyConfig struct {
	Board     CandyBoard     `yaml:"board"`
	Rules     CandyRules     `yaml:"rules"`
	Animation CandyAnimation `yaml:"animation"`
}

// CandyBoard defines the grid.
type CandyBoard struct {
	Size  int `yaml:"size"`  // Cells per side
	Kinds int `yaml:"kinds"` // Distinct piece kinds in play
}

// CandyRules defines scoring and the move budget.
type CandyRules struct {
	MoveBudget       int `yaml:"move_budget"`
	TargetScore      int `yaml:"target_score"`
	PointsPerPiece   int `yaml:"points_per_piece"`
	MaxCascadeCycles int `yaml:"max_cascade_cycles"` // Safety bound for a single settle
}

// CandyAnimation defines how the TUI paces a cascade.
type CandyAnimation struct {
	StepTicks int `yaml:"step_ticks"` // Ticks each cascade frame stays on screen
}

// Validate reports every out-of-range field, joined into one error.
func (c CandyConfig) Validate() error {
	var errs []error
	if c.Board.Size < 3 || c.Board.Size > MaxBoardSize {
		errs = append(errs, fmt.Errorf("board.size must be in [3, %d], got %d", MaxBoardSize, c.Board.Size))
	}
	if c.Board.Kinds < 2 || c.Board.Kinds > MaxPieceKinds {
		errs = append(errs, fmt.Errorf("board.kinds must be in [2, %d], got %d", MaxPieceKinds, c.Board.Kinds))
	}
	if c.Rules.MoveBudget < 1 {
		errs = append(errs, fmt.Errorf("rules.move_budget must be positive, got %d", c.Rules.MoveBudget))
	}
	if c.Rules.TargetScore < 1 {
		errs = append(errs, fmt.Errorf("rules.target_score must be positive, got %d", c.Rules.TargetScore))
	}
	if c.Rules.PointsPerPiece < 1 {
		errs = append(errs, fmt.Errorf("rules.points_per_piece must be positive, got %d", c.Rules.PointsPerPiece))
	}
	if c.Rules.MaxCascadeCycles < 1 {
		errs = append(errs, fmt.Errorf("rules.max_cascade_cycles must be positive, got %d", c.Rules.MaxCascadeCycles))
	}
	if c.Animation.StepTicks < 0 {
		errs = append(errs, fmt.Errorf("animation.step_ticks must not be negative, got %d", c.Animation.StepTicks))
	}
	return errors.Join(errs...)
}

// SnakeConfig contains all configuration for the Snake game.
type SnakeConfig struct {
	Grid    SnakeGrid    `yaml:"grid"`
	Speed   SnakeSpeed   `yaml:"speed"`
	Scoring SnakeScoring `yaml:"scoring"`
}

// SnakeGrid defines the playfield.
type SnakeGrid struct {
	Size int `yaml:"size"`
}

// SnakeSpeed defines how often the snake advances.
type SnakeSpeed struct {
	MoveEveryTicks int `yaml:"move_every_ticks"`
}

// SnakeScoring defines points awarded per food.
type SnakeScoring struct {
	PointsPerFood int `yaml:"points_per_food"`
}

// Validate reports out-of-range fields.
func (c SnakeConfig) Validate() error {
	var errs []error
	if c.Grid.Size < 6 {
		errs = append(errs, fmt.Errorf("grid.size must be at least 6, got %d", c.Grid.Size))
	}
	if c.Speed.MoveEveryTicks < 1 {
		errs = append(errs, fmt.Errorf("speed.move_every_ticks must be positive, got %d", c.Speed.MoveEveryTicks))
	}
	if c.Scoring.PointsPerFood < 1 {
		errs = append(errs, fmt.Errorf("scoring.points_per_food must be positive, got %d", c.Scoring.PointsPerFood))
	}
	return errors.Join(errs...)
}
