// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package state holds the aggregate consensus state: validators, tickets, buckets and the
// retirement schedules. The state has a single owner; it is not safe for concurrent use.
package state

import (
	"slices"

	"github.com/vechain/eternix/eternix"
)

// State is the aggregate chain state.
type State struct {
	epoch       uint64
	seed        eternix.Bytes32
	retireLimit uint64

	validators map[uint64]*Validator
	tickets    map[uint64]*Ticket
	buckets    map[uint64]*Bucket
	owned      map[uint64]map[uint64]struct{} // validator -> tickets

	active  map[uint64]struct{}
	muted   map[uint64]struct{}
	dead    uint64
	hasDead bool

	retireSchedule *Schedule
	retireFinalize *Schedule
}

// New creates an empty state at epoch 0.
func New(seed eternix.Bytes32, retireLimit uint64) *State {
	return &State{
		seed:           seed,
		retireLimit:    retireLimit,
		validators:     make(map[uint64]*Validator),
		tickets:        make(map[uint64]*Ticket),
		buckets:        make(map[uint64]*Bucket),
		owned:          make(map[uint64]map[uint64]struct{}),
		active:         make(map[uint64]struct{}),
		muted:          make(map[uint64]struct{}),
		retireSchedule: newSchedule(),
		retireFinalize: newSchedule(),
	}
}

// Epoch returns the current epoch index.
func (s *State) Epoch() uint64 { return s.epoch }

// AdvanceEpoch increments the epoch index and returns the new value.
func (s *State) AdvanceEpoch() uint64 {
	s.epoch++
	return s.epoch
}

// Seed returns the epoch seed.
func (s *State) Seed() eternix.Bytes32 { return s.seed }

// RetireLimit is the number of tickets of one validator allowed to begin retiring per epoch.
func (s *State) RetireLimit() uint64 { return s.retireLimit }

// RetireSchedule lists tickets by the epoch they begin retiring.
func (s *State) RetireSchedule() *Schedule { return s.retireSchedule }

// RetireFinalize lists tickets by the epoch they become dead.
func (s *State) RetireFinalize() *Schedule { return s.retireFinalize }

// AddBucket registers an empty bucket. Only one dead bucket may exist.
func (s *State) AddBucket(id uint64, c Category) error {
	if _, ok := s.buckets[id]; ok {
		return invariantf("bucket %d already exists", id)
	}
	switch c {
	case CategoryActive:
		s.active[id] = struct{}{}
	case CategoryMuted:
		s.muted[id] = struct{}{}
	case CategoryDead:
		if s.hasDead {
			return invariantf("dead bucket already set to %d", s.dead)
		}
		s.dead, s.hasDead = id, true
	default:
		return invariantf("bucket %d: unknown category %v", id, c)
	}
	s.buckets[id] = newBucket(id, c)
	return nil
}

// AddValidator registers a validator.
func (s *State) AddValidator(v *Validator) error {
	if _, ok := s.validators[v.ID]; ok {
		return invariantf("validator %d already exists", v.ID)
	}
	s.validators[v.ID] = v
	s.owned[v.ID] = make(map[uint64]struct{})
	return nil
}

// AddTicket creates an Active ticket owned by owner and places it in bucket.
func (s *State) AddTicket(id, owner, bucket, creationEpoch uint64) (*Ticket, error) {
	if _, ok := s.tickets[id]; ok {
		return nil, invariantf("ticket %d already exists", id)
	}
	if _, err := s.MustValidator(owner); err != nil {
		return nil, err
	}
	b, err := s.MustBucket(bucket)
	if err != nil {
		return nil, err
	}
	if b.Category == CategoryDead {
		return nil, invariantf("ticket %d: can't be created in dead bucket %d", id, bucket)
	}
	t := &Ticket{ID: id, Owner: owner, CreationEpoch: creationEpoch, status: TicketActive, bucket: bucket}
	s.tickets[id] = t
	s.owned[owner][id] = struct{}{}
	b.members[id] = struct{}{}
	return t, nil
}

// Validator looks up a validator.
func (s *State) Validator(id uint64) (*Validator, bool) {
	v, ok := s.validators[id]
	return v, ok
}

// MustValidator looks up a validator that is required to exist.
func (s *State) MustValidator(id uint64) (*Validator, error) {
	if v, ok := s.validators[id]; ok {
		return v, nil
	}
	return nil, invariantf("validator %d not found", id)
}

// Ticket looks up a ticket.
func (s *State) Ticket(id uint64) (*Ticket, bool) {
	t, ok := s.tickets[id]
	return t, ok
}

// MustTicket looks up a ticket that is required to exist.
func (s *State) MustTicket(id uint64) (*Ticket, error) {
	if t, ok := s.tickets[id]; ok {
		return t, nil
	}
	return nil, invariantf("ticket %d not found", id)
}

// Bucket looks up a bucket.
func (s *State) Bucket(id uint64) (*Bucket, bool) {
	b, ok := s.buckets[id]
	return b, ok
}

// MustBucket looks up a bucket that is required to exist.
func (s *State) MustBucket(id uint64) (*Bucket, error) {
	if b, ok := s.buckets[id]; ok {
		return b, nil
	}
	return nil, invariantf("bucket %d not found", id)
}

// ValidatorIDs returns all validator ids ascending.
func (s *State) ValidatorIDs() []uint64 { return sortedKeys(s.validators) }

// TicketIDs returns all ticket ids ascending.
func (s *State) TicketIDs() []uint64 { return sortedKeys(s.tickets) }

// BucketIDs returns all bucket ids ascending.
func (s *State) BucketIDs() []uint64 { return sortedKeys(s.buckets) }

// TicketsOf returns the ids of the tickets owned by a validator, ascending.
func (s *State) TicketsOf(validatorID uint64) []uint64 { return sortedKeys(s.owned[validatorID]) }

// ActiveBuckets returns the active category ids ascending.
func (s *State) ActiveBuckets() []uint64 { return sortedKeys(s.active) }

// MutedBuckets returns the muted category ids ascending.
func (s *State) MutedBuckets() []uint64 { return sortedKeys(s.muted) }

// DeadBucket returns the id of the dead bucket.
func (s *State) DeadBucket() (uint64, error) {
	if !s.hasDead {
		return 0, invariantf("no dead bucket")
	}
	return s.dead, nil
}

// IsActiveBucket reports whether id is in the active category.
func (s *State) IsActiveBucket(id uint64) bool {
	_, ok := s.active[id]
	return ok
}

// IsMutedBucket reports whether id is in the muted category.
func (s *State) IsMutedBucket(id uint64) bool {
	_, ok := s.muted[id]
	return ok
}

// EligibleCounts returns the ticket count of every non-empty active bucket.
func (s *State) EligibleCounts() map[uint64]int {
	counts := make(map[uint64]int)
	for id := range s.active {
		if n := s.buckets[id].Len(); n > 0 {
			counts[id] = n
		}
	}
	return counts
}

// HasEligible reports whether any active bucket holds a ticket.
func (s *State) HasEligible() bool {
	for id := range s.active {
		if s.buckets[id].Len() > 0 {
			return true
		}
	}
	return false
}

func sortedKeys[V any](m map[uint64]V) []uint64 {
	keys := make([]uint64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
