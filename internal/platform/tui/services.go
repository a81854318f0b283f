package tui

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/candy-arcade/internal/core"
	"github.com/vovakirdan/candy-arcade/internal/registry"
	"github.com/vovakirdan/candy-arcade/internal/storage"
)

// NewServices builds the collaborators handed to games. Without a database
// high scores live in memory for the lifetime of the process.
func NewServices(store *storage.Store, logger *log.Logger) registry.Services {
	svc := registry.Services{Logger: logger}
	if store != nil {
		svc.HighScores = store
	} else {
		svc.HighScores = storage.NewMemory()
	}
	svc.Notifier = core.NotifierFunc(func(o core.Outcome) {
		svc.LoggerOrDiscard().Info("game over", "game", o.GameID, "outcome", o.Kind, "score", o.Score)
	})
	return svc
}
