// Package main is the entry point for the weekplan application.
// This file contains the setup shared by the TUI and the subcommands.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"weekplan/internal/config"
	"weekplan/internal/layout"
	"weekplan/internal/logging"
	"weekplan/internal/schedule"
	"weekplan/internal/storage"
)

// env is an opened data directory: the store over its persisted state and
// the writer keeping the file in sync.
type env struct {
	cfg     *config.Config
	dataDir string
	log     *zap.Logger
	store   *schedule.Store
	writer  *storage.Writer
	seeded  bool // nothing usable was stored; the store holds the first-run state
}

// fatalf prints an error line and exits 1.
func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// mustLoadConfig loads config.yaml and the .env files.
func mustLoadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		fatalf("loading config: %v", err)
	}
	if err := config.LoadEnv(); err != nil {
		fatalf("loading environment: %v", err)
	}
	return cfg
}

// openEnv loads the persisted state and wires the store's change hook to
// an async writer. Callers must call close before exiting.
func openEnv(cfg *config.Config, log *zap.Logger) (*env, error) {
	dataDir := cfg.GetDataDir()
	slot, err := storage.NewFileSlot(dataDir)
	if err != nil {
		return nil, fmt.Errorf("initializing storage: %w", err)
	}
	adapter := storage.NewAdapter(slot, log)

	e := &env{cfg: cfg, dataDir: dataDir, log: log}
	initial := adapter.Load()
	if initial == nil {
		st := firstRunState(cfg)
		initial = &st
		e.seeded = true
		log.Info("no stored schedules, starting fresh", zap.Bool("seed", cfg.UX.ShowSeedData))
	}

	e.store = schedule.NewStore(*initial)
	e.writer = storage.NewWriter(adapter)
	e.store.SetOnChange(e.writer.OnChange)
	return e, nil
}

// mustOpenEnv opens the data directory for a one-shot subcommand. Logs go
// to the log file so stdout stays clean for output.
func mustOpenEnv(cfg *config.Config) *env {
	log, err := logging.NewFile(cfg.Logging, cfg.GetDataDir())
	if err != nil {
		fatalf("initializing logger: %v", err)
	}
	e, err := openEnv(cfg, log)
	if err != nil {
		fatalf("%v", err)
	}
	return e
}

// close writes any pending state and stops the writer.
func (e *env) close() {
	e.writer.Close()
	_ = e.log.Sync()
}

// firstRunState is the sample week, or an empty week when seed data is
// turned off, in the configured default view.
func firstRunState(cfg *config.Config) schedule.State {
	st := schedule.BlankState()
	if cfg.UX.ShowSeedData {
		st = schedule.DefaultState()
	}
	if mode := schedule.ViewMode(cfg.UX.DefaultView); mode.Valid() {
		st.ViewMode = mode
	}
	return st
}

// gridSlots returns the configured grid rows.
func gridSlots(cfg *config.Config) []layout.Slot {
	if cfg.Grid.Slots <= 0 {
		return layout.DefaultSlots()
	}
	return layout.Slots(cfg.Grid.StartHour, cfg.Grid.Slots)
}

// confirm asks a yes/no question on stdin. Anything but y or yes is no.
func confirm(in io.Reader, prompt string) (bool, error) {
	fmt.Print(prompt + " [y/N] ")
	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && response == "" {
		return false, fmt.Errorf("reading input: %w", err)
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}
