package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/abcreative1/soulcount/internal/counter"
	"github.com/abcreative1/soulcount/internal/insight"
	"github.com/abcreative1/soulcount/internal/store"
)

// counterModel is the main counting screen for the active tasbih.
type counterModel struct {
	repo     *counter.Repository
	insights *insight.Service
	width    int
	height   int

	tasbih store.Tasbih
	active bool

	formActive bool
	form       *huh.Form
	formType   string // "count", "target", "reset"

	formValue     *string
	formConfirmed *bool

	insightLoading bool
	insight        *insight.Insight
	insightErr     string
}

func newCounterModel(repo *counter.Repository, insights *insight.Service) counterModel {
	value := ""
	confirmed := false
	m := counterModel{
		repo:          repo,
		insights:      insights,
		formValue:     &value,
		formConfirmed: &confirmed,
	}
	m.reload()
	return m
}

func (c *counterModel) setSize(w, h int) {
	c.width = w
	c.height = h
}

func (c *counterModel) reload() {
	t, ok := c.repo.Active()
	if c.active && ok && t.ID != c.tasbih.ID {
		// New tasbih selected; any fetched insight belongs to the old one.
		c.insight = nil
		c.insightErr = ""
	}
	c.tasbih, c.active = t, ok
}

func (c counterModel) update(msg tea.Msg) (counterModel, tea.Cmd) {
	if c.formActive && c.form != nil {
		return c.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tickedMsg:
		c.tasbih = msg.tasbih
		return c, nil

	case insightMsg:
		c.insightLoading = false
		if msg.err != nil {
			c.insight = nil
			if errors.Is(msg.err, insight.ErrDisabled) {
				c.insightErr = "Insights require an OPENAI_API_KEY"
			} else {
				c.insightErr = "No insight available"
			}
			return c, nil
		}
		c.insight = msg.insight
		c.insightErr = ""
		return c, nil

	case tea.KeyMsg:
		if !c.active {
			if key.Matches(msg, keys.Back) {
				return c, showScreenCmd(screenLibrary)
			}
			return c, nil
		}

		switch {
		case key.Matches(msg, keys.Tick):
			return c.tick()
		case key.Matches(msg, keys.Reset):
			return c.showResetConfirm()
		case key.Matches(msg, keys.EditCount):
			return c.showCountForm()
		case key.Matches(msg, keys.EditTarget):
			return c.showTargetForm()
		case key.Matches(msg, keys.Insight):
			return c.fetchInsight()
		case key.Matches(msg, keys.Stats):
			return c, showScreenCmd(screenStats)
		case key.Matches(msg, keys.Back):
			c.repo.ClearActive()
			return c, showScreenCmd(screenLibrary)
		}
	}
	return c, nil
}

func (c counterModel) tick() (counterModel, tea.Cmd) {
	t, err := c.repo.Tick(c.tasbih.ID)
	if err != nil {
		return c, statusCmd(fmt.Sprintf("Error: %v", err), true)
	}
	c.tasbih = t
	if c.repo.State().SoundEnabled {
		// Terminal bell; stdout belongs to the renderer.
		os.Stderr.WriteString("\a")
	}
	return c, func() tea.Msg { return tickedMsg{tasbih: t} }
}

func (c counterModel) fetchInsight() (counterModel, tea.Cmd) {
	if c.insightLoading {
		return c, nil
	}
	c.insightLoading = true
	c.insightErr = ""
	title := c.tasbih.Title
	svc := c.insights
	return c, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		ins, err := svc.Fetch(ctx, title)
		return insightMsg{insight: ins, err: err}
	}
}

func (c counterModel) showResetConfirm() (counterModel, tea.Cmd) {
	*c.formConfirmed = false
	c.formType = "reset"
	c.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Reset current cycle to 0?").
				Description("Lifetime stats will be preserved.").
				Affirmative("Reset").
				Negative("Cancel").
				Value(c.formConfirmed),
		),
	).WithShowHelp(true)
	c.formActive = true
	return c, c.form.Init()
}

// validateCount accepts a non-negative integer.
func validateCount(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return errors.New("count must be a number")
	}
	if n < 0 {
		return errors.New("count must be 0 or more")
	}
	return nil
}

func (c counterModel) showCountForm() (counterModel, tea.Cmd) {
	*c.formValue = strconv.Itoa(c.tasbih.Count)
	c.formType = "count"
	c.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Edit Progress").Value(c.formValue).Validate(validateCount),
		),
	).WithShowHelp(true).WithShowErrors(true)
	c.formActive = true
	return c, c.form.Init()
}

func (c counterModel) showTargetForm() (counterModel, tea.Cmd) {
	*c.formValue = strconv.Itoa(c.tasbih.Target)
	c.formType = "target"
	c.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Edit Target (0 = unbounded)").Value(c.formValue).Validate(validateTarget),
		),
	).WithShowHelp(true).WithShowErrors(true)
	c.formActive = true
	return c, c.form.Init()
}

func (c counterModel) updateForm(msg tea.Msg) (counterModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			c.formActive = false
			c.form = nil
			return c, nil
		}
	}

	form, cmd := c.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		c.form = f
	}

	if c.form.State == huh.StateCompleted {
		c.formActive = false
		switch c.formType {
		case "reset":
			if *c.formConfirmed {
				t, err := c.repo.Reset(c.tasbih.ID)
				if err != nil {
					return c, statusCmd(fmt.Sprintf("Error: %v", err), true)
				}
				c.tasbih = t
				return c, statusCmd("Cycle reset", false)
			}
			return c, nil
		case "count":
			n, _ := strconv.Atoi(strings.TrimSpace(*c.formValue))
			t, err := c.repo.SetCount(c.tasbih.ID, n)
			if err != nil {
				return c, statusCmd(fmt.Sprintf("Error: %v", err), true)
			}
			c.tasbih = t
			return c, statusCmd("Count updated", false)
		case "target":
			n, _ := strconv.Atoi(strings.TrimSpace(*c.formValue))
			t, err := c.repo.SetTarget(c.tasbih.ID, n)
			if err != nil {
				return c, statusCmd(fmt.Sprintf("Error: %v", err), true)
			}
			c.tasbih = t
			return c, statusCmd("Target updated", false)
		}
	}

	return c, cmd
}

func (c counterModel) view() string {
	w := c.width - 4

	if !c.active {
		content := lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Counter"),
			"",
			mutedStyle.Render("No tasbih selected. Press esc to go to the library."),
		)
		return panelStyle.Width(w).Render(content)
	}

	if c.formActive && c.form != nil {
		content := lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(c.tasbih.Title), "", c.form.View())
		return panelStyle.Width(w).Render(content)
	}

	accent := colorFor(c.tasbih.Color)

	var lines []string
	if c.tasbih.ArabicTitle != "" {
		lines = append(lines, arabicStyle.Width(w-6).Render(c.tasbih.ArabicTitle))
	}
	lines = append(lines, titleStyle.Width(w-6).Align(lipgloss.Center).Render(c.tasbih.Title))
	lines = append(lines, "")

	count := countStyle.Foreground(accent).Width(w - 6).Render(fmt.Sprintf("%d", c.tasbih.Count))
	lines = append(lines, count)

	if c.tasbih.Target > 0 {
		lines = append(lines, mutedStyle.Width(w-6).Align(lipgloss.Center).Render(fmt.Sprintf("of %d", c.tasbih.Target)))
		lines = append(lines, "")
		lines = append(lines, lipgloss.NewStyle().Width(w-6).Align(lipgloss.Center).Render(c.renderCycleBar(accent)))
	} else {
		lines = append(lines, mutedStyle.Width(w-6).Align(lipgloss.Center).Render("unbounded"))
	}

	lines = append(lines, "")
	lines = append(lines, mutedStyle.Width(w-6).Align(lipgloss.Center).Render(
		fmt.Sprintf("lifetime %d", c.tasbih.TotalCount),
	))

	if block := c.renderInsight(w - 6); block != "" {
		lines = append(lines, "", block)
	}

	lines = append(lines, "")
	lines = append(lines, mutedStyle.Render("  space: count  r: reset  c: edit count  t: edit target  i: insight  s: stats  esc: back"))

	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// renderCycleBar draws the position within the current cycle.
func (c counterModel) renderCycleBar(accent lipgloss.Color) string {
	barWidth := 30
	filled := 0
	if c.tasbih.Target > 0 {
		filled = c.tasbih.Count * barWidth / c.tasbih.Target
		if filled > barWidth {
			filled = barWidth
		}
	}
	bar := lipgloss.NewStyle().Foreground(accent).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(colorSubtle).Render(strings.Repeat("░", barWidth-filled))
	return bar
}

func (c counterModel) renderInsight(w int) string {
	switch {
	case c.insightLoading:
		return mutedStyle.Width(w).Align(lipgloss.Center).Render("Fetching insight…")
	case c.insightErr != "":
		return warningStyle.Width(w).Align(lipgloss.Center).Render(c.insightErr)
	case c.insight != nil:
		body := lipgloss.JoinVertical(lipgloss.Left,
			highlightStyle.Render("Meaning: ")+normalItemStyle.Render(c.insight.Meaning),
			highlightStyle.Render("Benefit: ")+normalItemStyle.Render(c.insight.Benefit),
		)
		if c.insight.Source != "" {
			body = lipgloss.JoinVertical(lipgloss.Left, body, mutedStyle.Render("Source: "+c.insight.Source))
		}
		return panelStyle.Width(w).Render(body)
	}
	return ""
}
