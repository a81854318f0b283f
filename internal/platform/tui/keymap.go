package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/candy-arcade/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

var gameKeys = map[string]core.Action{
	"w":     core.ActionUp,
	"up":    core.ActionUp,
	"s":     core.ActionDown,
	"down":  core.ActionDown,
	"a":     core.ActionLeft,
	"left":  core.ActionLeft,
	"d":     core.ActionRight,
	"right": core.ActionRight,
	" ":     core.ActionConfirm,
	"enter": core.ActionConfirm,
	"b":     core.ActionBack,
	"esc":   core.ActionBack,
	"p":     core.ActionPause,
	"r":     core.ActionRestart,
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch key := msg.String(); key {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	default:
		return gameKeys[key], false
	}
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	return isQuit
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}

	return MenuActionNone
}
