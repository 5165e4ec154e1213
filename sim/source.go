// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package sim

import (
	"slices"

	"github.com/vechain/eternix/block"
)

// ProposalSource supplies the proposals submitted for a slot. hasLeader is false when the
// slot has no eligible ticket.
type ProposalSource interface {
	Proposals(slot, leader uint64, hasLeader bool) []block.Proposal
}

// Behavior is what a single validator submits in a slot.
type Behavior func(self, slot uint64, leads bool) []block.Proposal

// blockID derives a simulated block id. Distinct for every slot and variant.
func blockID(slot uint64, variant uint64) uint64 {
	return slot<<1 | variant&1
}

// Honest proposes one block when leading.
func Honest(self, slot uint64, leads bool) []block.Proposal {
	if !leads {
		return nil
	}
	return []block.Proposal{{Proposer: self, BlockID: blockID(slot, 0)}}
}

// Silent never proposes.
func Silent(uint64, uint64, bool) []block.Proposal { return nil }

// DoubleSigner proposes two conflicting blocks when leading.
func DoubleSigner(self, slot uint64, leads bool) []block.Proposal {
	if !leads {
		return nil
	}
	return []block.Proposal{
		{Proposer: self, BlockID: blockID(slot, 0)},
		{Proposer: self, BlockID: blockID(slot, 1)},
	}
}

// Eager always proposes, leading or not.
func Eager(self, slot uint64, _ bool) []block.Proposal {
	return []block.Proposal{{Proposer: self, BlockID: blockID(slot, 0)}}
}

// Behaviors maps validator ids to their behavior. Validators not listed use Default,
// or Honest when Default is nil.
type Behaviors struct {
	Validators []uint64
	ByID       map[uint64]Behavior
	Default    Behavior
}

// Proposals implements ProposalSource.
func (b *Behaviors) Proposals(slot, leader uint64, hasLeader bool) []block.Proposal {
	ids := slices.Clone(b.Validators)
	slices.Sort(ids)

	var out []block.Proposal
	for _, id := range ids {
		fn, ok := b.ByID[id]
		if !ok {
			fn = b.Default
		}
		if fn == nil {
			fn = Honest
		}
		out = append(out, fn(id, slot, hasLeader && id == leader)...)
	}
	return out
}

// Scripted replays fixed proposals per slot, falling back to Next for other slots.
type Scripted struct {
	Slots map[uint64][]block.Proposal
	Next  ProposalSource
}

// Proposals implements ProposalSource.
func (s *Scripted) Proposals(slot, leader uint64, hasLeader bool) []block.Proposal {
	if ps, ok := s.Slots[slot]; ok {
		return ps
	}
	if s.Next != nil {
		return s.Next.Proposals(slot, leader, hasLeader)
	}
	return nil
}
