package tossup

import "sync/atomic"

// SingleFlight executes the function only once on the first Do() call,
// returns the function return value and saves it for future Do() calls.
type SingleFlight[T any] struct {
	c atomic.Value // chan struct{}
	v T
}

func (s *SingleFlight[T]) Do(f func() T) T {
	c := make(chan struct{})
	if s.c.CompareAndSwap(nil, c) {
		s.v = f()
		close(c)
		return s.v
	}
	<-s.c.Load().(chan struct{})
	return s.v
}
