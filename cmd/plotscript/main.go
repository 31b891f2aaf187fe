package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/deosjr/plotscript/plotscript"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg := loadConfig()
	setupLogging(cfg)
	switch {
	case len(args) == 0:
		return startREPL(cfg, stdout, stderr)
	case len(args) == 1:
		return evalFile(cfg, args[0], stdout, stderr)
	case len(args) == 2 && args[0] == "-e":
		return evalCommand(cfg, args[1], stdout, stderr)
	}
	fmt.Fprintln(stderr, "Error: Incorrect number of command line arguments.")
	return 1
}

// reportStartup prints why the startup program could not be loaded.
func reportStartup(err error, stderr io.Writer) {
	var perr *plotscript.ParseError
	if errors.As(err, &perr) {
		fmt.Fprintln(stderr, "Error: Invalid Startup Program. Could not parse.")
		return
	}
	fmt.Fprintln(stderr, "Start-up failed")
	fmt.Fprintln(stderr, err)
}

func newInterpreter(cfg config, stderr io.Writer) (*plotscript.Interpreter, bool) {
	interp := plotscript.New()
	if err := interp.LoadStartup(cfg.startup); err != nil {
		reportStartup(err, stderr)
		return nil, false
	}
	return interp, true
}

func evalFile(cfg config, filename string, stdout, stderr io.Writer) int {
	interp, ok := newInterpreter(cfg, stderr)
	if !ok {
		return 1
	}
	e, err := plotscript.ParseFile(filename)
	var perr *plotscript.ParseError
	switch {
	case errors.As(err, &perr):
		fmt.Fprintln(stderr, "Error: Invalid Program. Could not parse.")
		return 1
	case err != nil:
		fmt.Fprintln(stderr, "Error: Could not open file for reading.")
		return 1
	}
	v, err := interp.EvalExpr(e)
	return report(v, err, stdout, stderr)
}

func evalCommand(cfg config, expr string, stdout, stderr io.Writer) int {
	interp, ok := newInterpreter(cfg, stderr)
	if !ok {
		return 1
	}
	return evalFromStream(interp, strings.NewReader(expr), stdout, stderr)
}

func evalFromStream(interp *plotscript.Interpreter, r io.Reader, stdout, stderr io.Writer) int {
	if !interp.ParseStream(r) {
		fmt.Fprintln(stderr, "Error: Invalid Program. Could not parse.")
		return 1
	}
	e, err := interp.Evaluate()
	return report(e, err, stdout, stderr)
}

func report(e plotscript.Expression, err error, stdout, stderr io.Writer) int {
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	fmt.Fprintln(stdout, e)
	return 0
}
