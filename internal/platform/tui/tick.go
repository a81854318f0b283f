// Package tui runs arcade games in a terminal with Bubble Tea, locally or
// over SSH. It owns the tick loop, key mapping, menus and the scoreboard.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg triggers one fixed simulation step.
type TickMsg time.Time

// tickInterval converts a tick rate to a period. Non-positive rates fall
// back to 60 ticks per second.
func tickInterval(tickRate int) time.Duration {
	if tickRate <= 0 {
		tickRate = 60
	}
	return time.Second / time.Duration(tickRate)
}

func tickCmd(tickRate int) tea.Cmd {
	return tea.Tick(tickInterval(tickRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
