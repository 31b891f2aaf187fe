package plotscript

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
)

//go:embed startup.pls
var defaultStartup string

// Load parses and evaluates a program for its definitions.
func (i *Interpreter) Load(r io.Reader) error {
	e, err := Parse(r)
	if err != nil {
		return err
	}
	_, err = i.EvalExpr(e)
	return err
}

// LoadStartup loads the startup program at path, or the built-in one
// when path is empty.
func (i *Interpreter) LoadStartup(path string) error {
	if path == "" {
		return i.Load(strings.NewReader(defaultStartup))
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open startup program: %w", err)
	}
	defer f.Close()
	return i.Load(f)
}
