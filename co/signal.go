// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package co

import (
	"sync"
)

// Waiter provides channel to wait for.
// A value read is true for a single-wake Signal, false when closed by Broadcast.
type Waiter interface {
	C() <-chan bool
}

// Signal is a channel based rendezvous point. Unlike sync.Cond it can take part in a select.
// The simulator broadcasts on it after every produced block.
type Signal struct {
	mu sync.Mutex
	ch chan bool
}

func (s *Signal) chanLocked() chan bool {
	if s.ch == nil {
		s.ch = make(chan bool, 1)
	}
	return s.ch
}

// Signal wakes at most one waiter.
func (s *Signal) Signal() {
	s.mu.Lock()
	defer s.mu.Unlock()

	select {
	case s.chanLocked() <- true:
	default:
	}
}

// Broadcast wakes every current waiter.
func (s *Signal) Broadcast() {
	s.mu.Lock()
	defer s.mu.Unlock()

	close(s.chanLocked())
	s.ch = make(chan bool, 1)
}

// NewWaiter returns a Waiter bound to the current generation of the signal.
// Each call to C after a wake rebinds to the next generation.
func (s *Signal) NewWaiter() Waiter {
	s.mu.Lock()
	ref := s.chanLocked()
	s.mu.Unlock()

	return waiterFunc(func() <-chan bool {
		ch := ref

		s.mu.Lock()
		ref = s.ch
		s.mu.Unlock()

		return ch
	})
}

type waiterFunc func() <-chan bool

func (w waiterFunc) C() <-chan bool {
	return w()
}
