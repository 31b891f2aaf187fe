package main

import (
	"log/slog"
	"os"
	"path/filepath"
)

const historyFile = ".plotscript_history"

type config struct {
	startup  string // empty means the built-in startup program
	history  string
	logLevel slog.Level
}

func loadConfig() config {
	cfg := config{
		startup:  os.Getenv("PLOTSCRIPT_STARTUP"),
		history:  os.Getenv("PLOTSCRIPT_HISTORY"),
		logLevel: slog.LevelWarn,
	}
	if cfg.history == "" {
		if home, err := os.UserHomeDir(); err == nil {
			cfg.history = filepath.Join(home, historyFile)
		}
	}
	if lvl := os.Getenv("PLOTSCRIPT_LOG_LEVEL"); lvl != "" {
		if err := cfg.logLevel.UnmarshalText([]byte(lvl)); err != nil {
			cfg.logLevel = slog.LevelWarn
		}
	}
	return cfg
}

func setupLogging(cfg config) {
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.logLevel})
	slog.SetDefault(slog.New(h))
}
