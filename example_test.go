package pipe_test

import (
	"context"
	"fmt"
	"log"

	"github.com/creachadair/pipe"
)

func ExamplePipe() {
	p := pipe.New[string]()
	ctx := context.Background()

	// Any handle can send, and any handle can receive.
	recv := p.Clone()
	p.Send("apple")
	v, _, err := recv.Next(ctx)
	if err != nil {
		log.Fatalf("Next: %v", err)
	}
	fmt.Println(v)

	// A pipe holds only the latest value: Sending twice without a receive in
	// between discards the first value.
	p.Send("pear")
	recv.Send("plum")
	v, _, _ = p.Next(ctx)
	fmt.Println(v)

	// Once finished, the pipe reports the end of the stream.
	p.Finish()
	_, ok, _ := recv.Next(ctx)
	fmt.Println("more:", ok)

	// Output:
	// apple
	// plum
	// more: false
}

func ExamplePipe_Poll() {
	p := pipe.New[int]()

	// Poll registers a waker, which is woken by the next Send or Finish.
	sig := pipe.NewSignal()
	_, st := p.Poll(sig)
	fmt.Println(st)

	p.Send(1)
	<-sig.Ready()
	v, st := p.Poll(sig)
	fmt.Println(st, v)

	p.Finish()
	<-sig.Ready()
	_, st = p.Poll(sig)
	fmt.Println(st)

	// Output:
	// pending
	// ready 1
	// closed
}
