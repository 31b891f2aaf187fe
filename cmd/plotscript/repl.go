package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/peterh/liner"

	"github.com/deosjr/plotscript/kernel"
)

const prompt = "plotscript> "

func startREPL(cfg config, stdout, stderr io.Writer) int {
	k, err := kernel.New(cfg.startup, slog.Default())
	if err != nil {
		reportStartup(err, stderr)
		return 1
	}
	k.Start()
	defer k.Stop()

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	if f, err := os.Open(cfg.history); err == nil {
		_, _ = ln.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(cfg.history); err == nil {
			_, _ = ln.WriteHistory(f)
			f.Close()
		}
	}()

	// While a line is being edited the terminal is raw and Ctrl+C aborts
	// the prompt; during evaluation it arrives here instead.
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt)
	defer signal.Stop(sigc)
	go func() {
		for range sigc {
			k.Interrupt()
		}
	}()

	for {
		line, err := ln.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			fmt.Fprintln(stdout)
			return 0
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ln.AppendHistory(line)
		if control(k, line, stderr) {
			continue
		}
		k.ClearInterrupt()
		res, err := k.Eval(line)
		if err != nil {
			fmt.Fprintln(stderr, err)
			continue
		}
		if res.Err != "" {
			fmt.Fprintln(stderr, res.Err)
			continue
		}
		fmt.Fprintln(stdout, res.Value)
	}
}

// control runs the %start, %stop and %reset kernel commands.
func control(k *kernel.Kernel, line string, stderr io.Writer) bool {
	switch line {
	case "%start":
		k.Start()
	case "%stop":
		k.Stop()
	case "%reset":
		if err := k.Reset(); err != nil {
			reportStartup(err, stderr)
		}
	default:
		return false
	}
	return true
}
