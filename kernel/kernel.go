// Package kernel runs a plotscript interpreter on its own goroutine.
// Input lines go in through one queue and results come back, in order,
// through another. Only the consumer goroutine touches interpreter state.
package kernel

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/deosjr/plotscript/plotscript"
)

const parseFailure = "Error: Invalid Expression. Could not parse."

// ErrNotRunning is returned when input is sent to a stopped kernel.
var ErrNotRunning = errors.New("Error: interpreter kernel not running")

// Job is one line of input. An empty Line stops the consumer.
type Job struct {
	ID   uuid.UUID
	Line string
}

// Result carries the value of a job, or the text of its error.
type Result struct {
	ID    uuid.UUID
	Value plotscript.Expression
	Err   string
}

// Producer feeds the input queue. It never touches the interpreter.
type Producer struct {
	in *Queue[Job]
}

func NewProducer(in *Queue[Job]) Producer {
	return Producer{in: in}
}

func (p Producer) Submit(line string) uuid.UUID {
	id := uuid.New()
	p.in.Push(Job{ID: id, Line: line})
	return id
}

// Consume evaluates jobs until it pops an empty line.
func Consume(interp *plotscript.Interpreter, in *Queue[Job], out *Queue[Result], log *slog.Logger) {
	for {
		job := in.WaitAndPop()
		if job.Line == "" {
			log.Debug("consumer stopping")
			return
		}
		log.Debug("evaluating", "job", job.ID)
		out.Push(evaluate(interp, job))
	}
}

func evaluate(interp *plotscript.Interpreter, job Job) Result {
	res := Result{ID: job.ID}
	if !interp.ParseStream(strings.NewReader(job.Line)) {
		res.Err = parseFailure
		return res
	}
	v, err := interp.Evaluate()
	if err != nil {
		res.Err = err.Error()
		return res
	}
	res.Value = v
	return res
}

// Kernel owns the queues, the consumer goroutine and the interpreter.
// It is safe for concurrent use; calls to Eval are served one at a time.
type Kernel struct {
	startup   string
	log       *slog.Logger
	interrupt *plotscript.Interrupt

	// call serialises Eval, Stop and Reset so that a result is always
	// popped by the caller that submitted its job. Lock call before mu.
	call sync.Mutex

	mu       sync.Mutex
	in       *Queue[Job]
	out      *Queue[Result]
	producer Producer
	interp   *plotscript.Interpreter
	done     chan struct{}
}

// New loads the startup program (the built-in one when startup is "")
// into a fresh interpreter. The kernel is not started.
func New(startup string, log *slog.Logger) (*Kernel, error) {
	if log == nil {
		log = slog.Default()
	}
	k := &Kernel{startup: startup, log: log, interrupt: &plotscript.Interrupt{}}
	if err := k.fresh(); err != nil {
		return nil, err
	}
	return k, nil
}

func (k *Kernel) fresh() error {
	interp := plotscript.New()
	interp.Interrupt = k.interrupt
	if err := interp.LoadStartup(k.startup); err != nil {
		return err
	}
	k.interp = interp
	return nil
}

// Start launches the consumer if it is not already running.
func (k *Kernel) Start() {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.start()
}

// start requires k.mu.
func (k *Kernel) start() {
	if k.done != nil {
		return
	}
	k.in, k.out = NewQueue[Job](), NewQueue[Result]()
	k.producer = NewProducer(k.in)
	done := make(chan struct{})
	k.done = done
	go func(interp *plotscript.Interpreter, in *Queue[Job], out *Queue[Result]) {
		defer close(done)
		Consume(interp, in, out, k.log)
	}(k.interp, k.in, k.out)
	k.log.Info("kernel started")
}

// Stop sends the empty-line sentinel and waits for the consumer to exit.
// The interpreter keeps its state. A Stop issued during an Eval waits
// for that Eval to return.
func (k *Kernel) Stop() {
	k.call.Lock()
	defer k.call.Unlock()
	k.mu.Lock()
	defer k.mu.Unlock()
	k.stop()
}

// stop requires k.call and k.mu.
func (k *Kernel) stop() {
	if k.done == nil {
		return
	}
	k.in.Push(Job{})
	<-k.done
	k.done = nil
	k.log.Info("kernel stopped")
}

// Reset stops the kernel, discards all definitions, reloads the startup
// program and starts again.
func (k *Kernel) Reset() error {
	k.call.Lock()
	defer k.call.Unlock()
	k.mu.Lock()
	defer k.mu.Unlock()
	k.stop()
	if err := k.fresh(); err != nil {
		return err
	}
	k.start()
	return nil
}

func (k *Kernel) Running() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.done != nil
}

// Interrupt aborts the evaluation in flight. The token stays set until
// ClearInterrupt.
func (k *Kernel) Interrupt() { k.interrupt.Set() }
func (k *Kernel) ClearInterrupt() { k.interrupt.Clear() }

// Eval submits one line and blocks until its result arrives.
// A blank line is a parse failure, never the stop sentinel.
func (k *Kernel) Eval(line string) (Result, error) {
	if strings.TrimSpace(line) == "" {
		return Result{Err: parseFailure}, nil
	}
	k.call.Lock()
	defer k.call.Unlock()
	k.mu.Lock()
	if k.done == nil {
		k.mu.Unlock()
		return Result{}, ErrNotRunning
	}
	producer, out := k.producer, k.out
	k.mu.Unlock()

	id := producer.Submit(line)
	k.log.Debug("submitted", "job", id)
	res := out.WaitAndPop()
	if res.ID != id {
		return Result{}, fmt.Errorf("kernel: got result for job %s, want %s", res.ID, id)
	}
	return res, nil
}
