package workerpool

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestPoolRunsAllTasks(t *testing.T) {
	p := New(4, 16)
	out := p.Run(context.Background())

	var ran atomic.Int64
	for i := 0; i < 20; i++ {
		p.Submit(func(ctx context.Context) error {
			ran.Add(1)
			return nil
		})
	}
	p.Close()

	results := 0
	for r := range out {
		if r.Err != nil {
			t.Fatalf("unexpected task error: %v", r.Err)
		}
		results++
	}
	if results != 20 || ran.Load() != 20 {
		t.Fatalf("results=%d ran=%d, want 20/20", results, ran.Load())
	}
}

func TestPoolReportsErrors(t *testing.T) {
	p := New(2, 8)
	out := p.Run(context.Background())

	boom := errors.New("boom")
	for i := 0; i < 5; i++ {
		i := i
		p.Submit(func(ctx context.Context) error {
			if i%2 == 0 {
				return boom
			}
			return nil
		})
	}
	p.Close()

	var failed int
	for r := range out {
		if r.Err != nil {
			failed++
		}
	}
	if failed != 3 {
		t.Fatalf("failed=%d, want 3", failed)
	}
}

func TestPoolContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := New(1, 0)
	out := p.Run(ctx)
	cancel()

	select {
	case _, ok := <-out:
		if ok {
			t.Fatalf("expected closed result channel after cancel")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("pool did not shut down after context cancel")
	}
}
