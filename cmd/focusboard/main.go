package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mitchellh/go-homedir"

	"github.com/focusboard/focusboard/internal/alert"
	"github.com/focusboard/focusboard/internal/board"
	"github.com/focusboard/focusboard/internal/storage"
	"github.com/focusboard/focusboard/internal/update"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "focusboard:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := update.RuntimeConfigFromEnv(update.DefaultRuntimeConfig())
	if cfg.DBPath == "" {
		home, err := homedir.Dir()
		if err != nil {
			return fmt.Errorf("resolve home directory: %w", err)
		}
		cfg.DBPath = filepath.Join(home, ".focusboard", "focusboard.db")
	}
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	kv, err := storage.OpenSQLite(cfg.DBPath)
	if err != nil {
		return err
	}
	defer kv.Close()

	ctx := context.Background()
	if migrated, err := storage.MigrateLegacy(ctx, kv); err != nil {
		return fmt.Errorf("migrate legacy record: %w", err)
	} else if migrated {
		fmt.Fprintln(os.Stderr, "focusboard: migrated legacy data to the current format")
	}

	tasks, sortMode, err := storage.LoadTasks(ctx, kv)
	if err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}
	prefs, err := storage.LoadPreferences(ctx, kv)
	if err != nil {
		return fmt.Errorf("load preferences: %w", err)
	}

	b := board.New(nil)
	b.Restore(tasks, sortMode)

	engine := alert.NewEngine(cfg.AlertBuffer)
	engine.Start()
	defer engine.Stop()

	var notifier update.DesktopNotifier = update.NoopDesktopNotifier{}
	if cfg.DesktopNotifications {
		notifier = update.ExecDesktopNotifier{}
	}

	m := update.NewModel(b, kv, prefs, engine, cfg, notifier)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
