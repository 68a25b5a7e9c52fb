package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/abcreative1/soulcount/internal/counter"
	"github.com/abcreative1/soulcount/internal/insight"
	"github.com/abcreative1/soulcount/internal/store"
	"github.com/abcreative1/soulcount/internal/tui"
)

func main() {
	dbPath := os.Getenv("SOULCOUNT_DB")
	if dbPath == "" {
		var err error
		dbPath, err = store.DefaultDBPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}

	closeLog := setupLogging(filepath.Dir(dbPath))
	defer closeLog()

	s, err := store.New(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening database: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	repo := counter.NewRepository(s)
	insights := insight.New()

	app := tui.NewApp(repo, insights)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// setupLogging sends slog output to a file next to the database; the
// terminal belongs to the TUI.
func setupLogging(dir string) func() {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
		return func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "soulcount.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
		return func() {}
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(f, nil)))
	return func() { f.Close() }
}
