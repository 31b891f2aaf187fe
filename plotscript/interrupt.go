package plotscript

import "sync/atomic"

// Interrupt is a cooperative cancellation token. Evaluation checks it on
// every step; it stays set until the owner clears it.
type Interrupt struct {
	flag atomic.Bool
}

func (i *Interrupt) Set() { i.flag.Store(true) }
func (i *Interrupt) Clear() { i.flag.Store(false) }

// IsSet is safe on a nil token.
func (i *Interrupt) IsSet() bool {
	return i != nil && i.flag.Load()
}
