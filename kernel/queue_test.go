package kernel

import (
	"testing"
	"time"
)

func TestQueueOrder(t *testing.T) {
	q := NewQueue[int]()
	for i := 0; i < 5; i++ {
		q.Push(i)
	}
	for i := 0; i < 5; i++ {
		if got := q.WaitAndPop(); got != i {
			t.Errorf("%d) got %d", i, got)
		}
	}
	if len(q.items) != 0 {
		t.Fatalf("queue not drained: %v", q.items)
	}
}

func TestQueueBlocks(t *testing.T) {
	q := NewQueue[string]()
	got := make(chan string)
	go func() {
		got <- q.WaitAndPop()
	}()
	select {
	case v := <-got:
		t.Fatalf("popped %q from an empty queue", v)
	case <-time.After(20 * time.Millisecond):
	}
	q.Push("hello")
	select {
	case v := <-got:
		if v != "hello" {
			t.Fatalf("got %q", v)
		}
	case <-time.After(time.Second):
		t.Fatal("WaitAndPop did not wake up")
	}
}
