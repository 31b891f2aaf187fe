package kernel

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/deosjr/plotscript/plotscript"
)

func newTestKernel(t *testing.T) *Kernel {
	t.Helper()
	k, err := New("", slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatal(err)
	}
	k.Start()
	t.Cleanup(k.Stop)
	return k
}

func TestKernelEval(t *testing.T) {
	k := newTestKernel(t)
	for i, tt := range []struct {
		input string
		want  string
		err   string
	}{
		{input: "(define a 2)", want: "(2)"},
		{input: "(+ a 3)", want: "(5)"},
		{input: `(get-property "size" (set-size (make-point 0 0) 3))`, want: "(3)"},
		{input: "(+ 1", err: parseFailure},
		{input: "   ", err: parseFailure},
		{input: "b", err: "Error: during handle lookup: unknown symbol b"},
	} {
		res, err := k.Eval(tt.input)
		if err != nil {
			t.Fatalf("%d) %v", i, err)
		}
		if res.Err != tt.err {
			t.Errorf("%d) got error %q want %q", i, res.Err, tt.err)
		}
		if tt.want != "" && res.Value.String() != tt.want {
			t.Errorf("%d) got %s want %s", i, res.Value, tt.want)
		}
		if strings.TrimSpace(tt.input) != "" && res.ID == uuid.Nil {
			t.Errorf("%d) result has no job id", i)
		}
	}
}

func TestKernelStopStart(t *testing.T) {
	k := newTestKernel(t)
	if _, err := k.Eval("(define kept 7)"); err != nil {
		t.Fatal(err)
	}
	k.Stop()
	if k.Running() {
		t.Fatal("kernel still running after Stop")
	}
	if _, err := k.Eval("kept"); !errors.Is(err, ErrNotRunning) {
		t.Fatalf("got %v want %v", err, ErrNotRunning)
	}
	k.Stop()
	k.Start()
	res, err := k.Eval("kept")
	if err != nil {
		t.Fatal(err)
	}
	if res.Value.String() != "(7)" {
		t.Fatalf("definitions lost across stop/start: %+v", res)
	}
}

func TestKernelReset(t *testing.T) {
	k := newTestKernel(t)
	if _, err := k.Eval("(define gone 1)"); err != nil {
		t.Fatal(err)
	}
	if err := k.Reset(); err != nil {
		t.Fatal(err)
	}
	if !k.Running() {
		t.Fatal("kernel not running after Reset")
	}
	res, err := k.Eval("gone")
	if err != nil {
		t.Fatal(err)
	}
	if res.Err == "" {
		t.Fatal("definition survived Reset")
	}
	// startup helpers are loaded again
	res, _ = k.Eval(`(get-property "thickness" (set-thickness (make-line (make-point 0 0) (make-point 1 1)) 2))`)
	if res.Err != "" || res.Value.String() != "(2)" {
		t.Fatalf("startup program not reloaded: %+v", res)
	}
}

func TestKernelInterruptToken(t *testing.T) {
	k := newTestKernel(t)
	k.Interrupt()
	res, err := k.Eval("(+ 1 2)")
	if err != nil {
		t.Fatal(err)
	}
	if res.Err != plotscript.ErrInterrupted.Error() {
		t.Fatalf("got %+v want %q", res, plotscript.ErrInterrupted)
	}
	k.ClearInterrupt()
	res, _ = k.Eval("(+ 1 2)")
	if res.Err != "" || res.Value.String() != "(3)" {
		t.Fatalf("got %+v after ClearInterrupt", res)
	}
}

func TestKernelInterruptLongRunning(t *testing.T) {
	k := newTestKernel(t)
	k.Eval("(define inner (lambda (x) (* x x)))")
	k.Eval("(define outer (lambda (y) (map inner (range 0 1000 1))))")

	results := make(chan Result, 1)
	go func() {
		res, _ := k.Eval("(map outer (range 0 1000 1))")
		results <- res
	}()
	time.Sleep(10 * time.Millisecond)
	k.Interrupt()

	select {
	case res := <-results:
		if res.Err != plotscript.ErrInterrupted.Error() {
			t.Fatalf("got %+v want interrupted", res)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("evaluation was not interrupted")
	}
	k.ClearInterrupt()
	res, _ := k.Eval("(inner 3)")
	if res.Value.String() != "(9)" {
		t.Fatalf("kernel unusable after interrupt: %+v", res)
	}
}

func TestKernelConcurrentEval(t *testing.T) {
	k := newTestKernel(t)
	var wg sync.WaitGroup
	errs := make(chan error, 8*50)
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				n := g*1000 + i
				res, err := k.Eval(fmt.Sprintf("(begin (range 0 %d 1) %d)", i+1, n))
				if err != nil {
					errs <- err
					continue
				}
				if want := fmt.Sprintf("(%d)", n); res.Value.String() != want {
					errs <- fmt.Errorf("want %s got %s", want, res.Value)
				}
			}
		}(g)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestKernelStopDuringEval(t *testing.T) {
	k := newTestKernel(t)
	done := make(chan struct{})
	go func() {
		defer close(done)
		var wg sync.WaitGroup
		for g := 0; g < 4; g++ {
			wg.Add(1)
			go func(g int) {
				defer wg.Done()
				for i := 0; i < 100; i++ {
					res, err := k.Eval(fmt.Sprintf("%d", g))
					if errors.Is(err, ErrNotRunning) {
						return
					}
					if err != nil || res.Value.String() != fmt.Sprintf("(%d)", g) {
						t.Errorf("got %+v, %v", res, err)
						return
					}
				}
			}(g)
		}
		time.Sleep(time.Millisecond)
		k.Stop()
		wg.Wait()
	}()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("Eval hung across Stop")
	}
}
