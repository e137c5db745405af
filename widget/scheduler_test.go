package widget

import (
	"sync"
	"time"
)

// manualScheduler records scheduled callbacks so tests control time.
type manualScheduler struct {
	mu     sync.Mutex
	timers []*manualTimer
}

type manualTimer struct {
	delay     time.Duration
	fn        func()
	fired     bool
	cancelled bool
}

func newManualScheduler() *manualScheduler {
	return &manualScheduler{}
}

func (s *manualScheduler) After(d time.Duration, fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &manualTimer{delay: d, fn: fn}
	s.timers = append(s.timers, t)
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		t.cancelled = true
	}
}

// fireNext runs the oldest pending timer and returns its delay.
func (s *manualScheduler) fireNext() (time.Duration, bool) {
	s.mu.Lock()
	var target *manualTimer
	for _, t := range s.timers {
		if !t.fired && !t.cancelled {
			target = t
			break
		}
	}
	if target == nil {
		s.mu.Unlock()
		return 0, false
	}
	target.fired = true
	fn := target.fn
	s.mu.Unlock()

	fn()
	return target.delay, true
}

func (s *manualScheduler) pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.timers {
		if !t.fired && !t.cancelled {
			n++
		}
	}
	return n
}

func (s *manualScheduler) delays() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]time.Duration, 0, len(s.timers))
	for _, t := range s.timers {
		out = append(out, t.delay)
	}
	return out
}
