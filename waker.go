package pipe

// A Waker is notified when a [Pipe] has something new for the consumer that
// registered it: a value from [Pipe.Send], or the end of the stream from
// [Pipe.Finish].
//
// A Pipe may call Wake any number of times, from any goroutine, and may keep
// calling a Waker after the consumer that registered it has stopped listening.
// Implementations must not block, and must tolerate all of this. The pipe is
// not locked while Wake runs, so Wake may call methods of the pipe.
type Waker interface {
	Wake()
}

// WakeFunc adapts a plain function to the [Waker] interface.
type WakeFunc func()

// Wake calls f.
func (f WakeFunc) Wake() { f() }

// A Signal is a [Waker] that one goroutine can wait on. Each call to Wake
// leaves a pending mark unless one is already there, so a burst of wakes with
// no receiver in between is seen as a single wakeup. Receiving from Ready
// consumes the mark.
//
// Wake never waits for a receiver. A goroutine that stops listening can just
// drop its Signal, and later wakes fall into the unread mark.
type Signal struct {
	ch chan struct{}
}

// NewSignal constructs a new unmarked signal.
func NewSignal() *Signal { return &Signal{ch: make(chan struct{}, 1)} }

// Wake marks s, if it is not already marked. Wake does not block.
func (s *Signal) Wake() {
	select {
	case s.ch <- struct{}{}:
	default:
	}
}

// Ready returns a channel that delivers a value when s is marked. Once the
// value is received, further reads on the channel block until s is woken
// again.
func (s *Signal) Ready() <-chan struct{} { return s.ch }
