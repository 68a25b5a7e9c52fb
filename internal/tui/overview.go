package tui

import (
	"fmt"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/abcreative1/soulcount/internal/counter"
)

// overviewModel shows totals across the whole collection.
type overviewModel struct {
	repo   *counter.Repository
	width  int
	height int

	summary counter.Summary
	series  []counter.DayCount

	chart barchart.Model
}

func newOverviewModel(repo *counter.Repository) overviewModel {
	m := overviewModel{
		repo:  repo,
		chart: barchart.New(60, 12),
	}
	m.reload()
	return m
}

func (o *overviewModel) setSize(w, h int) {
	o.width = w
	o.height = h
	o.buildChart()
}

func (o *overviewModel) reload() {
	o.summary = counter.Summarize(o.repo.Tasbihs(), time.Now())
	o.series = counter.WeekSeries(o.summary.AggregatedDaily, time.Now())
	o.buildChart()
}

func (o *overviewModel) buildChart() {
	o.chart = buildWeekChart(o.series, o.width, o.height, colorEmerald)
}

func (o overviewModel) update(msg tea.Msg) (overviewModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(msg, keys.Back) {
			return o, showScreenCmd(screenLibrary)
		}
	}
	return o, nil
}

func (o overviewModel) view() string {
	w := o.width - 4

	hero := activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Center,
		mutedStyle.Render("TOTAL DHIKR COUNT"),
		countStyle.Render(fmt.Sprintf("%d", o.summary.TotalLifetime)),
		highlightStyle.Render(fmt.Sprintf("Today: %d", o.summary.TodayTotal)),
	))

	mostActive := "—"
	mostActiveSub := ""
	if o.summary.MostActive != nil && o.summary.MostActive.TotalCount > 0 {
		mostActive = o.summary.MostActive.Title
		mostActiveSub = fmt.Sprintf("%d times", o.summary.MostActive.TotalCount)
	}
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			mutedStyle.Render("TASBIHS"),
			titleStyle.Render(fmt.Sprintf("%d", o.summary.TasbihCount)),
		)),
		" ",
		panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			mutedStyle.Render("MOST ACTIVE"),
			titleStyle.Render(mostActive),
			mutedStyle.Render(mostActiveSub),
		)),
	)

	chartTitle := mutedStyle.Render("Recent activity (all tasbihs)")
	nav := mutedStyle.Render("  esc: back to library")

	return lipgloss.JoinVertical(lipgloss.Left,
		hero,
		cards,
		panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, chartTitle, o.chart.View())),
		nav,
	)
}
