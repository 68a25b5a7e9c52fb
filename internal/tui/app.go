package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/abcreative1/soulcount/internal/counter"
	"github.com/abcreative1/soulcount/internal/export"
	"github.com/abcreative1/soulcount/internal/insight"
)

// App is the root Bubble Tea model.
type App struct {
	repo   *counter.Repository
	width  int
	height int

	activeScreen  screen
	showHelp      bool
	exportPicking bool
	exportCursor  int

	landing  landingModel
	library  libraryModel
	counterS counterModel
	stats    statsModel
	overview overviewModel

	help   help.Model
	status string
}

func NewApp(repo *counter.Repository, insights *insight.Service) App {
	h := help.New()
	h.ShowAll = false

	return App{
		repo:         repo,
		activeScreen: screenFor(repo.State().View),
		landing:      newLandingModel(repo),
		library:      newLibraryModel(repo),
		counterS:     newCounterModel(repo, insights),
		stats:        newStatsModel(repo),
		overview:     newOverviewModel(repo),
		help:         h,
	}
}

func (a App) Init() tea.Cmd {
	return nil
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.landing.setSize(a.width, contentHeight)
		a.library.setSize(a.width, contentHeight)
		a.counterS.setSize(a.width, contentHeight)
		a.stats.setSize(a.width, contentHeight)
		a.overview.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child screen is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveScreen(msg)
		}

		switch {
		case key.Matches(msg, keys.Quit):
			if a.activeScreen != screenLanding {
				return a, tea.Quit
			}
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Export):
			if a.activeScreen == screenLibrary {
				a.exportPicking = true
				a.exportCursor = 0
				return a, nil
			}
		case key.Matches(msg, keys.Sound):
			if a.activeScreen == screenLibrary || a.activeScreen == screenCounter {
				if a.repo.ToggleSound() {
					a.status = "Sound enabled"
				} else {
					a.status = "Sound disabled"
				}
				return a, nil
			}
		}

	case showScreenMsg:
		a.activeScreen = msg.screen
		a.repo.SetView(viewFor(msg.screen))
		return a, a.refreshScreen(msg.screen)

	case statusMsg:
		a.status = msg.text
		return a, nil

	case tickedMsg:
		a.status = fmt.Sprintf("%s — %d total", msg.tasbih.Title, msg.tasbih.TotalCount)
		return a.updateActiveScreen(msg)

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.exportPicking = false
		return a, nil
	}

	return a.updateActiveScreen(msg)
}

func (a App) updateActiveScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeScreen {
	case screenLanding:
		a.landing, cmd = a.landing.update(msg)
	case screenLibrary:
		a.library, cmd = a.library.update(msg)
	case screenCounter:
		a.counterS, cmd = a.counterS.update(msg)
	case screenStats:
		a.stats, cmd = a.stats.update(msg)
	case screenOverview:
		a.overview, cmd = a.overview.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeScreen {
	case screenLibrary:
		return a.library.formActive
	case screenCounter:
		return a.counterS.formActive
	}
	return false
}

func (a *App) refreshScreen(s screen) tea.Cmd {
	switch s {
	case screenLibrary:
		a.library.reload()
	case screenCounter:
		a.counterS.reload()
	case screenStats:
		a.stats.reload()
	case screenOverview:
		a.overview.reload()
	}
	return nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	if a.activeScreen == screenLanding {
		return a.landing.view()
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeScreen {
	case screenLibrary:
		content = a.library.view()
	case screenCounter:
		content = a.counterS.view()
	case screenStats:
		content = a.stats.view()
	case screenOverview:
		content = a.overview.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

var screenNames = map[screen]string{
	screenLibrary:  "Library",
	screenCounter:  "Counter",
	screenStats:    "Analytics",
	screenOverview: "Overview",
}

func (a App) renderHeader() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(colorEmerald).Render("soulcount")
	name := mutedStyle.Render(screenNames[a.activeScreen])

	sound := mutedStyle.Render("muted")
	if a.repo.State().SoundEnabled {
		sound = successStyle.Render("sound")
	}

	gap := a.width - lipgloss.Width(title) - lipgloss.Width(name) - lipgloss.Width(sound) - 6
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, "  ", name, spacer, sound),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		status = mutedStyle.Render(" " + a.status)
	}

	left := footerStyle.Render(helpView)

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(status) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, status)
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export Format")
	formats := []string{"CSV", "JSON"}
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range formats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < 1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format int) tea.Cmd {
	tasbihs := a.repo.Tasbihs()
	return func() tea.Msg {
		home, _ := os.UserHomeDir()
		dateStr := time.Now().Format("2006-01-02")

		var path string
		if format == 0 {
			path = filepath.Join(home, fmt.Sprintf("soulcount-export-%s.csv", dateStr))
			if err := export.ToCSV(tasbihs, path); err != nil {
				return statusMsg{text: fmt.Sprintf("CSV error: %v", err), isError: true}
			}
		} else {
			path = filepath.Join(home, fmt.Sprintf("soulcount-export-%s.json", dateStr))
			if err := export.ToJSON(tasbihs, path); err != nil {
				return statusMsg{text: fmt.Sprintf("JSON error: %v", err), isError: true}
			}
		}

		return exportDoneMsg{path: path}
	}
}
