package tui

import (
	"fmt"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/abcreative1/soulcount/internal/counter"
	"github.com/abcreative1/soulcount/internal/store"
)

// statsModel shows one tasbih's lifetime numbers and 7-day activity.
type statsModel struct {
	repo   *counter.Repository
	width  int
	height int

	tasbih store.Tasbih
	active bool
	series []counter.DayCount

	chart barchart.Model
}

func newStatsModel(repo *counter.Repository) statsModel {
	m := statsModel{
		repo:  repo,
		chart: barchart.New(60, 12),
	}
	m.reload()
	return m
}

func (s *statsModel) setSize(w, h int) {
	s.width = w
	s.height = h
	s.buildChart()
}

func (s *statsModel) reload() {
	s.tasbih, s.active = s.repo.Active()
	s.series = counter.WeekSeries(s.tasbih.DailyCounts, time.Now())
	s.buildChart()
}

func (s *statsModel) buildChart() {
	s.chart = buildWeekChart(s.series, s.width, s.height, colorFor(s.tasbih.Color))
}

// buildWeekChart renders a 7-day series as a bar chart with today's bar
// highlighted. The scale never drops below the display floor, so a quiet
// week still draws readable bars.
func buildWeekChart(series []counter.DayCount, width, height int, accent lipgloss.Color) barchart.Model {
	chartWidth := width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 10
	if height > 30 {
		chartHeight = 14
	}

	chart := barchart.New(chartWidth, chartHeight,
		barchart.WithMaxValue(float64(counter.ChartMax(series))))

	var bars []barchart.BarData
	for i, dc := range series {
		style := lipgloss.NewStyle().Foreground(colorSubtle)
		if i == len(series)-1 { // today
			style = lipgloss.NewStyle().Foreground(accent)
		}
		bars = append(bars, barchart.BarData{
			Label: dc.Label,
			Values: []barchart.BarValue{
				{Name: dc.Date, Value: float64(dc.Value), Style: style},
			},
		})
	}

	chart.PushAll(bars)
	chart.Draw()
	return chart
}

func (s statsModel) update(msg tea.Msg) (statsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(msg, keys.Back) {
			return s, showScreenCmd(screenCounter)
		}
	}
	return s, nil
}

func (s statsModel) view() string {
	w := s.width - 4

	if !s.active {
		content := lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Analytics"),
			"",
			mutedStyle.Render("No tasbih selected."),
		)
		return panelStyle.Width(w).Render(content)
	}

	header := titleStyle.Render(s.tasbih.Title) + mutedStyle.Render("  performance & history")

	target := "∞"
	if s.tasbih.Target > 0 {
		target = fmt.Sprintf("%d", s.tasbih.Target)
	}
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			mutedStyle.Render("LIFETIME"),
			titleStyle.Render(fmt.Sprintf("%d", s.tasbih.TotalCount)),
		)),
		" ",
		panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			mutedStyle.Render("TARGET"),
			titleStyle.Render(target),
		)),
	)

	chartTitle := mutedStyle.Render("Activity (last 7 days)")
	nav := mutedStyle.Render("  esc: back to counter")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", cards, "", chartTitle, s.chart.View(), "", nav,
		),
	)
}
