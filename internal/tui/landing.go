package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/abcreative1/soulcount/internal/counter"
)

// landingModel is the one-time first-run screen. Dismissing it records the
// onboarding flag; until then no navigation state is persisted.
type landingModel struct {
	repo   *counter.Repository
	width  int
	height int
}

func newLandingModel(repo *counter.Repository) landingModel {
	return landingModel{repo: repo}
}

func (l *landingModel) setSize(w, h int) {
	l.width = w
	l.height = h
}

func (l landingModel) update(msg tea.Msg) (landingModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Quit):
			return l, tea.Quit
		case key.Matches(msg, keys.Enter):
			l.repo.CompleteOnboarding()
			return l, func() tea.Msg { return showScreenMsg{screen: screenLibrary} }
		}
	}
	return l, nil
}

func (l landingModel) view() string {
	logo := lipgloss.NewStyle().Bold(true).Foreground(colorEmerald).Render("soulcount")
	tagline := mutedStyle.Render("Count your dhikr. Keep your history.")
	points := lipgloss.JoinVertical(lipgloss.Left,
		normalItemStyle.Render("• Cyclical counters with targets of 33, 99, 100 or unbounded"),
		normalItemStyle.Render("• Lifetime totals and a day-by-day history"),
		normalItemStyle.Render("• Everything stored locally, nothing leaves your machine"),
	)
	hint := highlightStyle.Render("Press enter to begin")

	content := lipgloss.JoinVertical(lipgloss.Center, logo, "", tagline, "", points, "", hint)

	return lipgloss.Place(l.width, l.height+4, lipgloss.Center, lipgloss.Center, content)
}
