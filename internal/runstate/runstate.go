/*
Copyright (c) 2024 Diagrid Inc.
Licensed under the MIT License.
*/

package runstate

import (
	"sync"
	"sync/atomic"
)

// State is a process wide run flag. It starts running and transitions to
// stopped exactly once. There is no way back.
type State struct {
	running atomic.Bool
	once    sync.Once
	doneCh  chan struct{}
}

// New returns a running State.
func New() *State {
	s := &State{doneCh: make(chan struct{})}
	s.running.Store(true)
	return s
}

// Running reports whether the state has not been stopped.
func (s *State) Running() bool {
	return s.running.Load()
}

// Stop marks the state as stopped. Returns true only for the call that
// performed the transition.
func (s *State) Stop() bool {
	if !s.running.CompareAndSwap(true, false) {
		return false
	}
	s.once.Do(func() { close(s.doneCh) })
	return true
}

// Done is closed once the state is stopped.
func (s *State) Done() <-chan struct{} {
	return s.doneCh
}
