package main

import (
	"io"
	"os"
	"os/user"
	"path/filepath"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/deadline-rush/internal/audio"
	"github.com/vovakirdan/deadline-rush/internal/config"
	"github.com/vovakirdan/deadline-rush/internal/core"
	"github.com/vovakirdan/deadline-rush/internal/platform/tui"
	"github.com/vovakirdan/deadline-rush/internal/sensor"
	"github.com/vovakirdan/deadline-rush/internal/storage"
)

const logFile = "deadline.log"

func newLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if level, err := log.ParseLevel(flagLogLevel); err == nil {
		logger.SetLevel(level)
	}
	return logger
}

// fileLogger logs to ~/.deadline/deadline.log, since the TUI owns the
// terminal. Without a writable data directory logs are dropped.
func fileLogger(prefix string) (*log.Logger, func()) {
	dir := config.Dir()
	if dir == "" {
		return newLogger(io.Discard, prefix), func() {}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return newLogger(io.Discard, prefix), func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, logFile), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return newLogger(io.Discard, prefix), func() {}
	}
	return newLogger(f, prefix), func() { f.Close() }
}

// runtimeConfig sizes the arena from the terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// setupDeps loads the config and opens the shared resources. The returned
// cleanup releases them. A missing results database is not fatal.
func setupDeps(logger *log.Logger, withAudio bool) (tui.Deps, func(), error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return tui.Deps{}, nil, err
	}

	deps := tui.Deps{
		Game:    cfg,
		Runtime: runtimeConfig(),
		Logger:  logger,
	}

	backend, err := sensor.Open(flagSensor, sensor.Options{Addr: flagBridgeAddr, Logger: logger})
	if err != nil {
		return tui.Deps{}, nil, err
	}
	deps.Backend = backend

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open results database", "path", flagDBPath, "err", err)
	} else {
		deps.Store = store
	}

	if withAudio {
		deps.Output = audio.NewOutput(logger)
	}

	cleanup := func() {
		deps.Output.Close()
		if err := sensor.CloseAll(); err != nil {
			logger.Warn("tracker shutdown", "err", err)
		}
		if deps.Store != nil {
			deps.Store.Close()
		}
	}
	return deps, cleanup, nil
}

// playerName is the local account name shown in the results.
func playerName() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	return "player"
}
