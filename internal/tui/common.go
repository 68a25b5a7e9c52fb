package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/abcreative1/soulcount/internal/insight"
	"github.com/abcreative1/soulcount/internal/store"
)

// screen represents the currently active screen.
type screen int

const (
	screenLanding screen = iota
	screenLibrary
	screenCounter
	screenStats
	screenOverview
)

// viewFor maps a screen to the persisted navigation value.
func viewFor(s screen) store.View {
	switch s {
	case screenLanding:
		return store.ViewLanding
	case screenCounter:
		return store.ViewCounter
	case screenStats:
		return store.ViewStats
	case screenOverview:
		return store.ViewGlobalStats
	default:
		return store.ViewLibrary
	}
}

// screenFor maps a persisted navigation value back to a screen.
func screenFor(v store.View) screen {
	switch v {
	case store.ViewLanding:
		return screenLanding
	case store.ViewCounter:
		return screenCounter
	case store.ViewStats:
		return screenStats
	case store.ViewGlobalStats:
		return screenOverview
	default:
		return screenLibrary
	}
}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

// showScreenMsg asks the root model to switch screens.
type showScreenMsg struct {
	screen screen
}

type tickedMsg struct {
	tasbih store.Tasbih
}

type insightMsg struct {
	insight *insight.Insight
	err     error
}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func statusCmd(text string, isError bool) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: text, isError: isError}
	}
}

func showScreenCmd(s screen) tea.Cmd {
	return func() tea.Msg {
		return showScreenMsg{screen: s}
	}
}
