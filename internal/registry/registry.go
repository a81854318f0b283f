// Package registry provides a global registry for game factories.
// Games register themselves in init() functions, allowing the platform
// to discover and instantiate games without hardcoded dependencies.
package registry

import (
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/candy-arcade/internal/core"
)

// Game is the interface every arcade game implements.
// Games hold pure logic with no terminal or network dependencies; the
// platform maps input, drives the tick and paints the screen.
type Game interface {
	// ID returns a unique identifier ("candy", "snake"). Used for CLI
	// commands, score storage and high-score keys.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset starts a fresh round. Called once at start and on restart.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into a pre-cleared screen buffer.
	Render(dst *core.Screen)

	// State returns the current game state.
	State() core.GameState
}

// Services are the platform collaborators a game may use. Any field may be nil.
type Services struct {
	HighScores core.HighScoreStore
	Notifier   core.Notifier
	Logger     *log.Logger
}

// ServiceAware is implemented by games that accept platform services.
// Attach is called before the first Reset.
type ServiceAware interface {
	Attach(Services)
}

// Resizable is implemented by games that can adapt to a new screen size
// without restarting. Games that don't implement it are Reset instead.
type Resizable interface {
	Resize(screenW, screenH int)
}

// LoggerOrDiscard returns l, or a logger that drops everything when l is nil.
func (s Services) LoggerOrDiscard() *log.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return log.New(io.Discard)
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a game factory to the registry.
// Panics if a game with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// List returns information about all registered games, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new game by its ID.
func Create(id string) (Game, error) {
	return CreateWith(id, Services{})
}

// CreateWith instantiates a game and attaches services when the game accepts them.
func CreateWith(id string, svc Services) (Game, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}

	g := f()
	if sa, ok := g.(ServiceAware); ok {
		sa.Attach(svc)
	}
	return g, nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
