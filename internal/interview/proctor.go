package interview

import (
	"math/rand"
	"sync"
	"time"
)

const (
	SignalDistraction    = "distraction"
	SignalVisibilityLost = "visibility_lost"
	SignalFocusLost      = "focus_lost"
)

type Signal struct {
	Kind    string
	Message string
}

// SignalSource drives the proctoring simulation. Start begins emitting and
// returns a disposer; after the disposer returns, emit is never called
// again. The disposer must be safe to call more than once.
type SignalSource interface {
	Start(emit func(Signal)) (stop func())
}

// RandomTicker emits a low-probability distraction signal on a fixed
// interval, standing in for real video analysis.
type RandomTicker struct {
	Interval    time.Duration
	Probability float64
	Seed        int64
}

func (r RandomTicker) Start(emit func(Signal)) func() {
	interval := r.Interval
	if interval <= 0 {
		interval = 10 * time.Second
	}
	prob := r.Probability
	if prob <= 0 || prob > 1 {
		prob = 0.15
	}
	seed := r.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	ticker := time.NewTicker(interval)
	done := make(chan struct{})
	var once sync.Once

	go func() {
		rng := rand.New(rand.NewSource(seed))
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if rng.Float64() < prob {
					emit(Signal{Kind: SignalDistraction, Message: "possible distraction detected"})
				}
			}
		}
	}()

	return func() {
		once.Do(func() {
			ticker.Stop()
			close(done)
		})
	}
}

// ScriptedSource replays a fixed signal sequence on demand; tests use it
// instead of wall-clock randomness.
type ScriptedSource struct {
	mu      sync.Mutex
	emit    func(Signal)
	stopped bool
}

func (s *ScriptedSource) Start(emit func(Signal)) func() {
	s.mu.Lock()
	s.emit = emit
	s.stopped = false
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		s.stopped = true
		s.emit = nil
		s.mu.Unlock()
	}
}

// Fire delivers one signal if the source has not been stopped.
func (s *ScriptedSource) Fire(sig Signal) bool {
	s.mu.Lock()
	emit := s.emit
	stopped := s.stopped
	s.mu.Unlock()
	if stopped || emit == nil {
		return false
	}
	emit(sig)
	return true
}
