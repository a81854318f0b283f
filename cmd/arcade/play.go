package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/candy-arcade/internal/core"
	"github.com/vovakirdan/candy-arcade/internal/games/candy"
	"github.com/vovakirdan/candy-arcade/internal/games/snake"
	"github.com/vovakirdan/candy-arcade/internal/platform/tui"
	"github.com/vovakirdan/candy-arcade/internal/registry"
	"github.com/vovakirdan/candy-arcade/internal/storage"
)

var flagConfig string

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Arrows/WASD  - Move cursor (candy) or steer (snake)
  Space/Enter  - Tap the cell under the cursor
  P            - Pause
  R            - Restart (after game over)
  Esc/B        - Leave the game
  Q/Ctrl+C     - Quit
  Ctrl+S       - Save a screenshot to ~/.arcade/screenshots

Examples:
  arcade play candy
  arcade play candy --seed 42
  arcade play candy --config ./my-candy.yaml
  arcade play snake`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
}

// terminalConfig builds the runtime config from the terminal size and global flags.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the scores database, or returns nil with a warning.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := args[0]

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}

	switch gameID {
	case candy.GameID:
		candy.SetConfigPath(flagConfig)
	case snake.GameID:
		snake.SetConfigPath(flagConfig)
	}

	logger, closeLog := newFileLogger()
	defer closeLog()

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	game, err := registry.CreateWith(gameID, tui.NewServices(store, logger))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	logger.Info("starting game", "game", gameID, "seed", flagSeed)
	if _, err := tui.Run(game, store, terminalConfig()); err != nil {
		logger.Error("game failed", "game", gameID, "error", err)
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}
