// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"slices"
)

// Bucket is a categorized pool of tickets. Its membership is only changed through
// the registry methods of State.
type Bucket struct {
	ID       uint64
	Category Category

	members map[uint64]struct{}
}

func newBucket(id uint64, c Category) *Bucket {
	return &Bucket{ID: id, Category: c, members: make(map[uint64]struct{})}
}

// Len returns the number of tickets in the bucket.
func (b *Bucket) Len() int { return len(b.members) }

// Contains reports whether ticketID is a member.
func (b *Bucket) Contains(ticketID uint64) bool {
	_, ok := b.members[ticketID]
	return ok
}

// Members returns the ticket ids in ascending order.
func (b *Bucket) Members() []uint64 {
	ids := make([]uint64, 0, len(b.members))
	for id := range b.members {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
