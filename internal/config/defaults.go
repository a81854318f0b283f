package config

import (
	_ "embed"
)

//go:embed defaults/candy.yaml
var defaultCandyYAML []byte

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultCandyConfig returns the built-in match-3 configuration.
func DefaultCandyConfig() CandyConfig {
	return CandyConfig{
		Board: CandyBoard{
			Size:  8,
			Kinds: 5,
		},
		Rules: CandyRules{
			MoveBudget:       20,
			TargetScore:      1000,
			PointsPerPiece:   10,
			MaxCascadeCycles: 100,
		},
		Animation: CandyAnimation{
			StepTicks: 12, // ~200ms at 60fps
		},
	}
}

// DefaultSnakeConfig returns the built-in Snake configuration.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Grid: SnakeGrid{
			Size: 20,
		},
		Speed: SnakeSpeed{
			MoveEveryTicks: 6, // 10 cells per second at 60fps
		},
		Scoring: SnakeScoring{
			PointsPerFood: 1,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "candy":
		return defaultCandyYAML
	case "snake":
		return defaultSnakeYAML
	default:
		return nil
	}
}
