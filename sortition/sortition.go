// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package sortition implements deterministic leader selection over ticket buckets.
// Every function is pure: the same state and slot always produce the same leader.
package sortition

import (
	"slices"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/vechain/eternix/eternix"
	"github.com/vechain/eternix/state"
)

// ErrNoEligibleBucket is returned when sortition runs without any selectable ticket.
// It wraps state.ErrInvariant: callers must check eligibility first.
var ErrNoEligibleBucket = errors.Wrap(state.ErrInvariant, "no eligible bucket")

// SlotSeed derives the seed of one slot: sha256(epochSeed || be64(slot)).
func SlotSeed(epochSeed eternix.Bytes32, slot uint64) eternix.Bytes32 {
	return eternix.Sha256Uint64(epochSeed, slot)
}

// bucketScore is the top 128 bits of sha256(seed || be64(bucket)) divided by the ticket count,
// so buckets with more tickets are proportionally more likely to score lowest.
func bucketScore(seed eternix.Bytes32, bucket uint64, count int) *uint256.Int {
	h := eternix.Sha256Uint64(seed, bucket)
	raw := new(uint256.Int).SetBytes(h[:16])
	return raw.Div(raw, uint256.NewInt(uint64(count)))
}

// SelectBucket picks the bucket with the lowest score, ties broken by lower id.
// Buckets with a non-positive count are ignored.
func SelectBucket(seed eternix.Bytes32, counts map[uint64]int) (uint64, error) {
	var (
		best      uint64
		bestScore *uint256.Int
	)
	ids := make([]uint64, 0, len(counts))
	for id, n := range counts {
		if n > 0 {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)

	for _, id := range ids {
		score := bucketScore(seed, id, counts[id])
		// ascending ids, so strict less keeps the lower id on ties
		if bestScore == nil || score.Lt(bestScore) {
			best, bestScore = id, score
		}
	}
	if bestScore == nil {
		return 0, ErrNoEligibleBucket
	}
	return best, nil
}

// SelectTicket picks the ticket with the lowest sha256(seed || be64(ticket)), ties broken by lower id.
func SelectTicket(seed eternix.Bytes32, ticketIDs []uint64) (uint64, error) {
	if len(ticketIDs) == 0 {
		return 0, errors.Wrap(state.ErrInvariant, "select ticket from empty bucket")
	}
	var (
		best     uint64
		bestHash eternix.Bytes32
		found    bool
	)
	for _, id := range ticketIDs {
		h := eternix.Sha256Uint64(seed, id)
		if !found {
			best, bestHash, found = id, h, true
			continue
		}
		if c := h.Compare(bestHash); c < 0 || (c == 0 && id < best) {
			best, bestHash = id, h
		}
	}
	return best, nil
}

// Assignment is the sortition outcome of one slot.
type Assignment struct {
	Slot     uint64 `json:"slot"`
	Protocol bool   `json:"protocol"` // no eligible ticket, the slot yields a protocol block
	Bucket   uint64 `json:"bucket"`
	Ticket   uint64 `json:"ticket"`
	Leader   uint64 `json:"leader"`
}

// Select runs the full sortition of slot against st.
func Select(st *state.State, slot uint64) (Assignment, error) {
	seed := SlotSeed(st.Seed(), slot)

	bucketID, err := SelectBucket(seed, st.EligibleCounts())
	if err != nil {
		return Assignment{}, err
	}
	bucket, err := st.MustBucket(bucketID)
	if err != nil {
		return Assignment{}, err
	}
	ticketID, err := SelectTicket(seed, bucket.Members())
	if err != nil {
		return Assignment{}, err
	}
	ticket, err := st.MustTicket(ticketID)
	if err != nil {
		return Assignment{}, err
	}
	return Assignment{Slot: slot, Bucket: bucketID, Ticket: ticketID, Leader: ticket.Owner}, nil
}

// SelectLeader returns the validator leading slot.
func SelectLeader(st *state.State, slot uint64) (uint64, error) {
	a, err := Select(st, slot)
	if err != nil {
		return 0, err
	}
	return a.Leader, nil
}

// Schedule previews the leaders of count slots starting at from, assuming the state
// stays as it is. Slots without eligible tickets are marked as protocol slots.
func Schedule(st *state.State, from, count uint64) ([]Assignment, error) {
	out := make([]Assignment, 0, count)
	eligible := st.HasEligible()
	for slot := from; slot < from+count; slot++ {
		if !eligible {
			out = append(out, Assignment{Slot: slot, Protocol: true})
			continue
		}
		a, err := Select(st, slot)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}
