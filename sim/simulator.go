// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package sim hosts the consensus core: it feeds proposals slot by slot, triggers epoch
// transitions and forwards the produced blocks.
package sim

import (
	"context"
	"sync"
	"time"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/vechain/eternix/block"
	"github.com/vechain/eternix/consensus"
	"github.com/vechain/eternix/log"
	"github.com/vechain/eternix/retire"
	"github.com/vechain/eternix/sortition"
	"github.com/vechain/eternix/staker"
	"github.com/vechain/eternix/state"
)

var logger = log.WithContext("pkg", "sim")

// BlockSink receives every produced block, in slot order.
type BlockSink interface {
	AddBlock(b *block.Block) error
}

type event struct {
	name string
	fn   func(st *state.State) error
}

// Simulator owns the state. Every step holds the lock for its full duration and
// readers go through View, so steps never interleave with reads.
type Simulator struct {
	engine *consensus.Engine
	source ProposalSource
	sink   BlockSink

	mu     sync.Mutex
	st     *state.State
	clock  SimClock
	events map[uint64][]event
	err    error
}

// New creates a simulator starting at slot 0. sink may be nil.
func New(engine *consensus.Engine, st *state.State, source ProposalSource, sink BlockSink, genesisTime uint64) *Simulator {
	return &Simulator{
		engine: engine,
		source: source,
		sink:   sink,
		st:     st,
		clock:  NewClock(genesisTime, engine.Config().SlotDuration),
		events: make(map[uint64][]event),
	}
}

func (s *Simulator) at(slot uint64, name string, fn func(st *state.State) error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[slot] = append(s.events[slot], event{name, fn})
}

// RefillAt tops up a vault right before slot is processed. An overflow is logged and ignored.
func (s *Simulator) RefillAt(slot, validatorID uint64, amount *uint256.Int) {
	amount = new(uint256.Int).Set(amount)
	s.at(slot, "refill", func(st *state.State) error {
		err := s.engine.Staker().OnVaultRefill(st, validatorID, amount)
		if errors.Is(err, staker.ErrVaultOverflow) {
			logger.Warn("refill rejected", "validator", validatorID, "err", err)
			return nil
		}
		return err
	})
}

// RetireAt requests ticket retirement right before slot is processed.
func (s *Simulator) RetireAt(slot, validatorID uint64, ticketIDs []uint64) {
	ticketIDs = append([]uint64(nil), ticketIDs...)
	s.at(slot, "retire", func(st *state.State) error {
		scheduled, err := retire.Request(st, validatorID, ticketIDs)
		if err != nil {
			return err
		}
		logger.Info("retirement scheduled", "validator", validatorID, "requested", len(ticketIDs), "scheduled", len(scheduled))
		return nil
	})
}

// Step processes one slot, then the epoch transition when the slot closes an epoch.
// After the first error the simulator is halted and keeps returning it.
func (s *Simulator) Step() (*block.Block, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return nil, s.err
	}
	b, err := s.step()
	if err != nil {
		s.err = errors.WithMessagef(err, "slot %d", s.clock.Slot)
		logger.Error("simulation halted", "slot", s.clock.Slot, "err", err)
		return nil, s.err
	}
	return b, nil
}

func (s *Simulator) step() (*block.Block, error) {
	start := time.Now()
	slot := s.clock.Slot

	for _, ev := range s.events[slot] {
		if err := ev.fn(s.st); err != nil {
			return nil, errors.WithMessage(err, ev.name)
		}
	}
	delete(s.events, slot)

	var (
		leader    uint64
		hasLeader = s.st.HasEligible()
	)
	if hasLeader {
		var err error
		if leader, err = sortition.SelectLeader(s.st, slot); err != nil {
			return nil, err
		}
	}
	proposals := s.source.Proposals(slot, leader, hasLeader)

	b, err := s.engine.ProcessSlot(s.st, slot, s.clock.SlotStart, proposals)
	if err != nil {
		return nil, err
	}
	if s.sink != nil {
		if err := s.sink.AddBlock(b); err != nil {
			return nil, errors.WithMessage(err, "sink block")
		}
	}

	if (slot+1)%s.engine.Config().EpochLength == 0 {
		if err := s.engine.ProcessEpochTransition(s.st); err != nil {
			return nil, errors.WithMessage(err, "epoch transition")
		}
	}
	s.clock.Advance()

	metricSlotDuration().Observe(time.Since(start).Milliseconds())
	return b, nil
}

// Run steps n slots, or until ctx is done when n is 0. It stops at the first error.
func (s *Simulator) Run(ctx context.Context, n uint64) error {
	for i := uint64(0); n == 0 || i < n; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if _, err := s.Step(); err != nil {
			return err
		}
	}
	return nil
}

// View runs fn with the state locked. fn must not retain or mutate the state.
func (s *Simulator) View(fn func(st *state.State, clock SimClock)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.st, s.clock)
}

// Err returns the error that halted the simulator, if any.
func (s *Simulator) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
