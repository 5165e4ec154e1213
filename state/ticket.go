// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

// Ticket is the unit of stake weight picked by sortition.
type Ticket struct {
	ID              uint64
	Owner           uint64
	CreationEpoch   uint64
	RetireRequested *uint64
	RetireEffective *uint64 // epoch it becomes dead

	status TicketStatus
	bucket uint64 // maintained by the registry only
}

// Status returns the lifecycle status.
func (t *Ticket) Status() TicketStatus { return t.status }

// Bucket returns the id of the bucket holding the ticket.
func (t *Ticket) Bucket() uint64 { return t.bucket }

// SetStatus advances the lifecycle. Moving backwards, or out of Dead, is an invariant violation.
func (t *Ticket) SetStatus(s TicketStatus) error {
	if s < t.status {
		return invariantf("ticket %d: illegal transition %v -> %v", t.ID, t.status, s)
	}
	t.status = s
	return nil
}
