package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/candy-arcade/internal/config"
	"github.com/vovakirdan/candy-arcade/internal/core"
	"github.com/vovakirdan/candy-arcade/internal/platform/web"
	"github.com/vovakirdan/candy-arcade/internal/storage"
)

var (
	flagWebAddr   string
	flagWebConfig string
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the WebSocket server for browser clients",
	Long: `Start an HTTP server exposing Candy Match over a JSON WebSocket protocol.

Endpoints:
  /ws       - WebSocket; messages: new, swap, tap, state, ping
  /healthz  - Liveness probe, returns "ok"

Each connection owns its own game session. High scores are shared
through the scores database.

Examples:
  arcade web
  arcade web --addr 127.0.0.1:9000
  arcade web --config ./candy.yaml`,
	Run: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagWebAddr, "addr", ":8080", "HTTP listen address (host:port)")
	webCmd.Flags().StringVar(&flagWebConfig, "config", "", "Path to candy config YAML used for defaults")
}

func runWeb(_ *cobra.Command, _ []string) {
	logger := newServerLogger("arcade-web")

	candyCfg, err := config.LoadCandy(flagWebConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var scores core.HighScoreStore = storage.NewMemory()
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database, using memory", "error", err)
	} else {
		defer store.Close()
		scores = store
	}

	cfg := web.DefaultServerConfig()
	cfg.Address = flagWebAddr
	cfg.Candy = candyCfg

	server := web.NewServer(cfg, scores, logger)
	fmt.Printf("Starting arcade web server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
