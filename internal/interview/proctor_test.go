package interview

import (
	"sync"
	"testing"
	"time"
)

func TestRandomTickerEmitsAndStops(t *testing.T) {
	var mu sync.Mutex
	got := 0

	// Probability 1 so every tick emits.
	src := RandomTicker{Interval: 5 * time.Millisecond, Probability: 1, Seed: 42}
	stop := src.Start(func(sig Signal) {
		if sig.Kind != SignalDistraction {
			t.Errorf("unexpected signal kind %q", sig.Kind)
		}
		mu.Lock()
		got++
		mu.Unlock()
	})

	deadline := time.After(2 * time.Second)
	for {
		mu.Lock()
		n := got
		mu.Unlock()
		if n >= 2 {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("ticker emitted %d signals, want >= 2", n)
		case <-time.After(5 * time.Millisecond):
		}
	}

	stop()
	stop() // must be safe to call twice

	mu.Lock()
	after := got
	mu.Unlock()
	time.Sleep(30 * time.Millisecond)
	mu.Lock()
	final := got
	mu.Unlock()
	if final != after {
		t.Fatalf("ticker kept emitting after stop: %d -> %d", after, final)
	}
}

func TestScriptedSourceStop(t *testing.T) {
	src := &ScriptedSource{}
	fired := 0
	stop := src.Start(func(Signal) { fired++ })

	if !src.Fire(Signal{Kind: SignalFocusLost}) {
		t.Fatalf("expected fire to deliver")
	}
	stop()
	if src.Fire(Signal{Kind: SignalFocusLost}) {
		t.Fatalf("fire after stop must not deliver")
	}
	if fired != 1 {
		t.Fatalf("fired = %d, want 1", fired)
	}
}
