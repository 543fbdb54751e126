package pipe

import (
	"sync"

	"github.com/creachadair/mds/value"
)

// state is the mutable core shared by every handle of a Pipe.
type state[T any] struct {
	// μ protects the fields below. It is held only for the duration of a
	// single operation, never while a caller waits.
	μ        sync.Mutex
	slot     value.Maybe[T] // at most one undelivered value
	finished bool           // once true, never reset
	wake     Waker          // the most recently registered consumer, or nil
	done     chan struct{}  // closed when finished becomes true
	busy     bool           // a blocking consumer is outstanding
}

func newState[T any]() *state[T] {
	return &state[T]{done: make(chan struct{})}
}

// send stores v in the slot, discarding any value not yet delivered, and
// wakes the registered consumer. The registration is kept, so the same waker
// may be woken by several sends before its owner polls again.
func (s *state[T]) send(v T) {
	s.μ.Lock()
	s.slot = value.Just(v)
	w := s.wake
	s.μ.Unlock()
	wake(w)
}

// finish marks the stream as finished and wakes the registered consumer so
// it can observe the end of the stream.
func (s *state[T]) finish() {
	s.μ.Lock()
	if !s.finished {
		s.finished = true
		close(s.done)
	}
	w := s.wake
	s.μ.Unlock()
	wake(w)
}

// wake calls w, if it is set. The caller must not hold the state lock, so w
// may call back into the pipe.
func wake(w Waker) {
	if w != nil {
		w.Wake()
	}
}

// poll registers w as the consumer waker, replacing any earlier one, and
// reports the next value if one is buffered.
func (s *state[T]) poll(w Waker) (T, Status) {
	s.μ.Lock()
	defer s.μ.Unlock()
	s.wake = w

	if s.slot.Present() {
		v := s.slot.Get()
		s.slot = value.Maybe[T]{}
		return v, Ready
	}
	var zero T
	if s.finished {
		return zero, Closed
	}
	return zero, Pending
}

// release clears the consumer waker if it is still w.
func (s *state[T]) release(w Waker) {
	s.μ.Lock()
	defer s.μ.Unlock()
	if s.wake == w {
		s.wake = nil
	}
}

// acquire claims the blocking consumer role, and reports whether it was free.
func (s *state[T]) acquire() bool {
	s.μ.Lock()
	defer s.μ.Unlock()
	if s.busy {
		return false
	}
	s.busy = true
	return true
}

func (s *state[T]) unacquire() {
	s.μ.Lock()
	defer s.μ.Unlock()
	s.busy = false
}

func (s *state[T]) isFinished() bool {
	s.μ.Lock()
	defer s.μ.Unlock()
	return s.finished
}
