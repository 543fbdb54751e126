// Package pipe implements a two-way single-slot stream shared by multiple
// goroutines.
//
// A [Pipe] holds at most one undelivered value. Any handle may send values
// into the pipe and any handle may receive from it, but a value sent before
// the previous one was received replaces it: A pipe reports the latest value,
// not every value. Use a channel when every value matters.
package pipe

import (
	"context"
	"errors"
	"iter"
)

// ErrBusy is reported by [Pipe.Next] when another goroutine is already
// waiting for a value from the same pipe.
var ErrBusy = errors.New("pipe has a pending receiver")

// Status reports the outcome of a call to [Pipe.Poll].
type Status int

const (
	Pending Status = iota // no value is available yet; wait for a wake
	Ready                 // a value was delivered
	Closed                // the pipe is finished and drained
)

func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Ready:
		return "ready"
	case Closed:
		return "closed"
	}
	return "invalid"
}

// A Pipe is a handle to a single-slot stream of values of type T.
//
// Handles share their state: A copy of a Pipe, or the result of its Clone
// method, refers to the same stream, so a value sent through one handle can
// be received through any other. The stream lives as long as any handle
// refers to it. All methods are safe for concurrent use.
//
// A pipe is open until Finish is called. Once finished, it delivers any value
// still buffered and then reports the end of the stream to every later
// receive. Finish does not prevent further sends; a value sent after Finish
// is delivered before the end of the stream is reported again.
//
// Only one goroutine at a time should wait for values from a pipe. Poll keeps
// only the most recently registered [Waker], and Next and All report ErrBusy
// to a second concurrent receiver.
//
// The zero Pipe is not ready for use; sending to or receiving from it panics.
// Use [New] to construct a Pipe.
type Pipe[T any] struct {
	s *state[T]
}

// New constructs a new empty, open Pipe.
func New[T any]() Pipe[T] { return Pipe[T]{s: newState[T]()} }

// Clone returns a new handle that shares the state of p.
func (p Pipe[T]) Clone() Pipe[T] { return Pipe[T]{s: p.s} }

// Send stores v in p, discarding any value that has not yet been received,
// and wakes the registered receiver. Send does not block.
func (p Pipe[T]) Send(v T) { p.s.send(v) }

// Finish marks p as finished and wakes the registered receiver. Calling
// Finish more than once has no further effect on the stream.
func (p Pipe[T]) Finish() { p.s.finish() }

// Finished reports whether Finish has been called on p.
func (p Pipe[T]) Finished() bool { return p.s.isFinished() }

// Done returns a channel that is closed when p is finished.
// Values may still be buffered when the channel closes.
func (p Pipe[T]) Done() <-chan struct{} { return p.s.done }

// Poll registers w to be woken by the next Send or Finish, replacing any
// previously registered waker, and reports the state of p:
//
//   - If a value is buffered, Poll removes and returns it with status Ready.
//   - Otherwise, if p is finished, Poll returns status Closed.
//   - Otherwise, Poll returns status Pending, and w will be woken when that
//     may have changed.
//
// A buffered value is always delivered, even if p is finished. Once p is
// finished and drained, every Poll reports Closed.
func (p Pipe[T]) Poll(w Waker) (T, Status) { return p.s.poll(w) }

// Next blocks until a value is available from p, p is finished and drained,
// or ctx ends. It returns the value and true if one was received. At the end
// of the stream it returns a zero value and false with a nil error. If ctx
// ends first, it returns a zero value, false, and the context error.
//
// If another goroutine is already blocked in Next on the same pipe, Next
// reports ErrBusy without waiting.
func (p Pipe[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	if !p.s.acquire() {
		return zero, false, ErrBusy
	}
	defer p.s.unacquire()

	sig := NewSignal()
	defer p.s.release(sig)
	for {
		v, st := p.s.poll(sig)
		switch st {
		case Ready:
			return v, true, nil
		case Closed:
			return zero, false, nil
		}
		select {
		case <-ctx.Done():
			return zero, false, ctx.Err()
		case <-sig.Ready():
			// Something changed, poll again.
		}
	}
}

// All returns a sequence of the values received from p, each paired with a
// nil error. The sequence ends without an error when p is finished and
// drained. If ctx ends, or if another goroutine is already receiving from p,
// the sequence yields a zero value with the error from [Pipe.Next] and ends.
func (p Pipe[T]) All(ctx context.Context) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for {
			v, ok, err := p.Next(ctx)
			if err != nil {
				yield(v, err)
				return
			} else if !ok || !yield(v, nil) {
				return
			}
		}
	}
}
