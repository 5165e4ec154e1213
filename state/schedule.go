// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/google/btree"
)

const scheduleTreeDegree = 8

// ScheduleEntry lists the tickets due at one epoch, in insertion order.
type ScheduleEntry struct {
	Epoch   uint64
	Tickets []uint64
}

func (e *ScheduleEntry) Less(o *ScheduleEntry) bool { return e.Epoch < o.Epoch }

var _ btree.LessFunc[*ScheduleEntry] = (*ScheduleEntry).Less

// Schedule maps epochs to ticket lists and iterates by ascending epoch.
type Schedule struct {
	tree    *btree.BTreeG[*ScheduleEntry]
	pending map[uint64]uint64 // ticket -> epoch
}

func newSchedule() *Schedule {
	return &Schedule{
		tree:    btree.NewG(scheduleTreeDegree, (*ScheduleEntry).Less),
		pending: make(map[uint64]uint64),
	}
}

// Add appends ticketID to the entry of epoch, creating it if needed.
func (s *Schedule) Add(epoch, ticketID uint64) {
	entry, ok := s.tree.Get(&ScheduleEntry{Epoch: epoch})
	if !ok {
		entry = &ScheduleEntry{Epoch: epoch}
		s.tree.ReplaceOrInsert(entry)
	}
	entry.Tickets = append(entry.Tickets, ticketID)
	s.pending[ticketID] = epoch
}

// Get returns the tickets due at epoch. The slice must not be modified.
func (s *Schedule) Get(epoch uint64) []uint64 {
	if entry, ok := s.tree.Get(&ScheduleEntry{Epoch: epoch}); ok {
		return entry.Tickets
	}
	return nil
}

// Take removes and returns the entry of epoch. A missing entry yields nil.
func (s *Schedule) Take(epoch uint64) []uint64 {
	entry, ok := s.tree.Delete(&ScheduleEntry{Epoch: epoch})
	if !ok {
		return nil
	}
	for _, id := range entry.Tickets {
		if s.pending[id] == epoch {
			delete(s.pending, id)
		}
	}
	return entry.Tickets
}

// Pending returns the epoch a ticket is scheduled at.
func (s *Schedule) Pending(ticketID uint64) (uint64, bool) {
	epoch, ok := s.pending[ticketID]
	return epoch, ok
}

// Ascend calls fn for every entry by ascending epoch until fn returns false.
func (s *Schedule) Ascend(fn func(entry *ScheduleEntry) bool) {
	s.tree.Ascend(fn)
}

// Len returns the number of epochs with an entry.
func (s *Schedule) Len() int { return s.tree.Len() }
