package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"book-deconstructor/internal/app"
	"book-deconstructor/internal/config"
	"book-deconstructor/internal/deconstruct"
	"book-deconstructor/internal/history"
	"book-deconstructor/internal/model"
	"book-deconstructor/internal/storage"
	"book-deconstructor/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	base, err := os.UserConfigDir()
	if err != nil {
		return fmt.Errorf("failed to locate config directory: %w", err)
	}
	dir := filepath.Join(base, "book-deconstructor")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	// The terminal belongs to the UI, so logs go to a file
	logFile, err := tea.LogToFile(filepath.Join(dir, "tui.log"), "")
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()

	store, err := storage.NewFile(dir)
	if err != nil {
		return fmt.Errorf("failed to open history storage: %w", err)
	}
	defer store.Close()

	ctx := context.Background()
	gateway, mode := deconstruct.Select(ctx, cfg.DemoMode, cfg.GeminiAPIKey, cfg.GeminiModel)
	log.Printf("[INFO] Starting terminal front-end gateway=%s history=%s", mode, dir)

	ctrl := app.NewController(ctx, gateway, history.NewStore(store, history.StorageKey))
	ctrl.Observe(statusLogger())

	if _, err := tea.NewProgram(tui.New(ctrl), tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("terminal UI failed: %w", err)
	}
	return nil
}

// statusLogger logs status transitions, skipping input edits
func statusLogger() app.Observer {
	var mu sync.Mutex
	last := model.StatusIdle
	return func(s app.Snapshot) {
		mu.Lock()
		defer mu.Unlock()
		if s.Status == last {
			return
		}
		last = s.Status
		log.Printf("[STATE] status=%s query=%q history=%d", s.Status, s.Query, len(s.History))
	}
}
