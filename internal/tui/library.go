package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/abcreative1/soulcount/internal/counter"
	"github.com/abcreative1/soulcount/internal/store"
)

type libraryModel struct {
	repo   *counter.Repository
	width  int
	height int

	tasbihs []store.Tasbih
	cursor  int

	formActive bool
	form       *huh.Form
	formType   string // "new", "edit", "delete"

	// Form field pointers (survive value copies)
	formTitle     *string
	formArabic    *string
	formTarget    *string
	formConfirmed *bool

	editingID string
}

func newLibraryModel(repo *counter.Repository) libraryModel {
	title, arabic, target := "", "", "33"
	confirmed := false
	m := libraryModel{
		repo:          repo,
		formTitle:     &title,
		formArabic:    &arabic,
		formTarget:    &target,
		formConfirmed: &confirmed,
	}
	m.reload()
	return m
}

func (l *libraryModel) setSize(w, h int) {
	l.width = w
	l.height = h
}

func (l *libraryModel) reload() {
	l.tasbihs = l.repo.Tasbihs()
	if l.cursor >= len(l.tasbihs) {
		l.cursor = max(0, len(l.tasbihs)-1)
	}
}

func (l libraryModel) update(msg tea.Msg) (libraryModel, tea.Cmd) {
	if l.formActive && l.form != nil {
		return l.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Up):
			if l.cursor > 0 {
				l.cursor--
			}
		case key.Matches(msg, keys.Down):
			if l.cursor < len(l.tasbihs)-1 {
				l.cursor++
			}
		case key.Matches(msg, keys.Enter):
			if len(l.tasbihs) > 0 {
				id := l.tasbihs[l.cursor].ID
				if err := l.repo.SetActive(id); err != nil {
					return l, statusCmd(fmt.Sprintf("Error: %v", err), true)
				}
				return l, showScreenCmd(screenCounter)
			}
		case key.Matches(msg, keys.New):
			return l.showNewForm()
		case key.Matches(msg, keys.Edit):
			if len(l.tasbihs) > 0 {
				return l.showEditForm()
			}
		case key.Matches(msg, keys.Delete):
			if len(l.tasbihs) > 0 {
				return l.showDeleteConfirm()
			}
		case key.Matches(msg, keys.Favorite):
			if len(l.tasbihs) > 0 {
				l.repo.ToggleFavorite(l.tasbihs[l.cursor].ID)
				l.reload()
			}
		case key.Matches(msg, keys.Overview):
			return l, showScreenCmd(screenOverview)
		}
	}
	return l, nil
}

// validateTarget accepts a non-negative integer; 0 means unbounded.
func validateTarget(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return errors.New("target must be a number")
	}
	if n < 0 {
		return errors.New("target must be 0 or more")
	}
	return nil
}

func validateTitle(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("title is required")
	}
	return nil
}

func (l libraryModel) tasbihForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Title").Placeholder("e.g. Salawat").Value(l.formTitle).Validate(validateTitle),
			huh.NewInput().Title("Arabic Title (optional)").Value(l.formArabic),
			huh.NewInput().Title("Target (0 = unbounded)").Value(l.formTarget).Validate(validateTarget),
		),
	).WithShowHelp(true).WithShowErrors(true)
}

func (l libraryModel) showNewForm() (libraryModel, tea.Cmd) {
	*l.formTitle = ""
	*l.formArabic = ""
	*l.formTarget = "33"
	l.formType = "new"
	l.form = l.tasbihForm()
	l.formActive = true
	return l, l.form.Init()
}

func (l libraryModel) showEditForm() (libraryModel, tea.Cmd) {
	t := l.tasbihs[l.cursor]
	*l.formTitle = t.Title
	*l.formArabic = t.ArabicTitle
	*l.formTarget = strconv.Itoa(t.Target)
	l.formType = "edit"
	l.editingID = t.ID
	l.form = l.tasbihForm()
	l.formActive = true
	return l, l.form.Init()
}

func (l libraryModel) showDeleteConfirm() (libraryModel, tea.Cmd) {
	t := l.tasbihs[l.cursor]
	if t.IsSeed() {
		return l, statusCmd("Built-in tasbihs cannot be deleted", true)
	}
	*l.formConfirmed = false
	l.formType = "delete"
	l.editingID = t.ID
	l.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete %q?", t.Title)).
				Description("Its lifetime history will be removed with it.").
				Affirmative("Delete").
				Negative("Keep").
				Value(l.formConfirmed),
		),
	).WithShowHelp(true)
	l.formActive = true
	return l, l.form.Init()
}

func (l libraryModel) updateForm(msg tea.Msg) (libraryModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			l.formActive = false
			l.form = nil
			return l, nil
		}
	}

	form, cmd := l.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		l.form = f
	}

	if l.form.State == huh.StateCompleted {
		l.formActive = false
		switch l.formType {
		case "new":
			target, _ := strconv.Atoi(strings.TrimSpace(*l.formTarget))
			if _, err := l.repo.Create(*l.formTitle, *l.formArabic, target); err != nil {
				return l, statusCmd(fmt.Sprintf("Error: %v", err), true)
			}
			l.reload()
			return l, statusCmd("Tasbih created", false)
		case "edit":
			target, _ := strconv.Atoi(strings.TrimSpace(*l.formTarget))
			if _, err := l.repo.Edit(l.editingID, *l.formTitle, *l.formArabic, target); err != nil {
				return l, statusCmd(fmt.Sprintf("Error: %v", err), true)
			}
			l.reload()
			return l, statusCmd("Tasbih updated", false)
		case "delete":
			if *l.formConfirmed {
				if err := l.repo.Delete(l.editingID); err != nil {
					return l, statusCmd(fmt.Sprintf("Error: %v", err), true)
				}
				l.reload()
				return l, statusCmd("Tasbih deleted", false)
			}
			return l, nil
		}
	}

	return l, cmd
}

func (l libraryModel) view() string {
	if l.formActive && l.form != nil {
		title := titleStyle.Render("New Tasbih")
		switch l.formType {
		case "edit":
			title = titleStyle.Render("Edit Tasbih")
		case "delete":
			title = titleStyle.Render("Delete Tasbih")
		}
		formView := l.form.View()
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", formView)
		return panelStyle.Width(l.width - 4).Render(content)
	}

	w := l.width - 4
	title := titleStyle.Render("Your Tasbihs")

	if len(l.tasbihs) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No tasbihs yet. Press n to create one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	header := mutedStyle.Render(fmt.Sprintf("  %-3s %-24s %8s %10s %8s", "", "Title", "Cycle", "Lifetime", ""))
	rows = append(rows, header)

	for i, t := range l.tasbihs {
		dot := lipgloss.NewStyle().Foreground(colorFor(t.Color)).Render("●")
		cursor := "  "
		style := normalItemStyle
		if i == l.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		cycle := fmt.Sprintf("%d/∞", t.Count)
		if t.Target > 0 {
			cycle = fmt.Sprintf("%d/%d", t.Count, t.Target)
		}
		fav := " "
		if t.IsFavorite {
			fav = "★"
		}
		row := style.Render(fmt.Sprintf("%s%s %-24s %8s %10d %8s", cursor, dot, t.Title, cycle, t.TotalCount, fav))
		rows = append(rows, row)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: count  n: new  e: edit  f: favorite  d: delete  g: overview  x: export"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
