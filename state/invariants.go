// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

// CheckInvariants verifies the bucket registry: every ticket is in exactly one bucket which
// matches its Bucket field, categories are consistent and dead tickets sit in the dead bucket.
func (s *State) CheckInvariants() error {
	if !s.hasDead {
		return invariantf("no dead bucket")
	}
	if _, ok := s.active[s.dead]; ok {
		return invariantf("dead bucket %d also active", s.dead)
	}
	if _, ok := s.muted[s.dead]; ok {
		return invariantf("dead bucket %d also muted", s.dead)
	}
	for id := range s.active {
		if _, ok := s.muted[id]; ok {
			return invariantf("bucket %d both active and muted", id)
		}
	}

	seen := make(map[uint64]uint64, len(s.tickets))
	for _, bid := range s.BucketIDs() {
		for _, tid := range s.buckets[bid].Members() {
			if prev, dup := seen[tid]; dup {
				return invariantf("ticket %d in buckets %d and %d", tid, prev, bid)
			}
			seen[tid] = bid
		}
	}
	if len(seen) != len(s.tickets) {
		return invariantf("%d tickets in buckets, %d known", len(seen), len(s.tickets))
	}

	for _, tid := range s.TicketIDs() {
		t := s.tickets[tid]
		bid, ok := seen[tid]
		if !ok {
			return invariantf("ticket %d in no bucket", tid)
		}
		if t.bucket != bid {
			return invariantf("ticket %d claims bucket %d, held by %d", tid, t.bucket, bid)
		}
		if (t.status == TicketDead) != (bid == s.dead) {
			return invariantf("ticket %d (%v) in bucket %d", tid, t.status, bid)
		}
		if t.status == TicketRetiring && s.IsActiveBucket(bid) {
			return invariantf("retiring ticket %d in active bucket %d", tid, bid)
		}
		if _, ok := s.owned[t.Owner][tid]; !ok {
			return invariantf("ticket %d missing from owner %d", tid, t.Owner)
		}
	}
	return nil
}
