// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

// MoveTicket moves a ticket between buckets keeping membership exclusive.
// Dead tickets may only enter the dead bucket, which accepts nothing else,
// and Retiring tickets never enter an active bucket.
func (s *State) MoveTicket(ticketID, from, to uint64) error {
	t, err := s.MustTicket(ticketID)
	if err != nil {
		return err
	}
	src, err := s.MustBucket(from)
	if err != nil {
		return err
	}
	dst, err := s.MustBucket(to)
	if err != nil {
		return err
	}

	if t.bucket != from || !src.Contains(ticketID) {
		return invariantf("ticket %d not in bucket %d", ticketID, from)
	}
	if dst.Contains(ticketID) {
		return invariantf("ticket %d already in bucket %d", ticketID, to)
	}
	if (t.status == TicketDead) != (dst.Category == CategoryDead) {
		return invariantf("ticket %d (%v) can't move to %v bucket %d", ticketID, t.status, dst.Category, to)
	}
	if t.status == TicketRetiring && dst.Category == CategoryActive {
		return invariantf("retiring ticket %d can't move to active bucket %d", ticketID, to)
	}

	delete(src.members, ticketID)
	dst.members[ticketID] = struct{}{}
	t.bucket = to
	return nil
}

// MoveAllValidatorTickets moves every ticket of a validator into bucket to, by ascending
// ticket id. Tickets already there are left alone, dead tickets are never moved and
// retiring ones stay put when the target is active.
func (s *State) MoveAllValidatorTickets(validatorID, to uint64) error {
	if _, err := s.MustValidator(validatorID); err != nil {
		return err
	}
	dst, err := s.MustBucket(to)
	if err != nil {
		return err
	}
	for _, id := range s.TicketsOf(validatorID) {
		t := s.tickets[id]
		if t.bucket == to || t.status == TicketDead {
			continue
		}
		if t.status == TicketRetiring && dst.Category == CategoryActive {
			continue
		}
		if err := s.MoveTicket(id, t.bucket, to); err != nil {
			return err
		}
	}
	return nil
}

// AnyActiveBucket returns the smallest active bucket id.
func (s *State) AnyActiveBucket() (uint64, error) {
	ids := s.ActiveBuckets()
	if len(ids) == 0 {
		return 0, invariantf("no active bucket configured")
	}
	return ids[0], nil
}

// AnyMutedBucket returns the smallest muted bucket id.
func (s *State) AnyMutedBucket() (uint64, error) {
	ids := s.MutedBuckets()
	if len(ids) == 0 {
		return 0, invariantf("no muted bucket configured")
	}
	return ids[0], nil
}
