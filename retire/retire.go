// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package retire runs the ticket retirement pipeline: request, begin and finalize.
package retire

import (
	"slices"

	"github.com/pkg/errors"

	"github.com/vechain/eternix/log"
	"github.com/vechain/eternix/metrics"
	"github.com/vechain/eternix/state"
)

var (
	logger = log.WithContext("pkg", "retire")

	metricTicketsCount = metrics.LazyLoadCounterVec("retire_tickets_count", []string{"phase"})
)

// Scheduled is one ticket assigned to the epoch it begins retiring.
type Scheduled struct {
	Ticket uint64 `json:"ticket"`
	Epoch  uint64 `json:"epoch"`
}

// Request schedules the retirement of the given tickets of one validator. Only tickets owned by
// the validator, still Active and not already pending are kept. They are assigned by ascending id
// to epochs from the next one on, never more than the retire limit per validator per epoch.
// Only the retire schedule is modified.
func Request(st *state.State, validatorID uint64, ticketIDs []uint64) ([]Scheduled, error) {
	if _, err := st.MustValidator(validatorID); err != nil {
		return nil, err
	}

	eligible := make([]uint64, 0, len(ticketIDs))
	for _, id := range ticketIDs {
		t, ok := st.Ticket(id)
		if !ok || t.Owner != validatorID || t.Status() != state.TicketActive {
			continue
		}
		if _, pending := st.RetireSchedule().Pending(id); pending {
			continue
		}
		eligible = append(eligible, id)
	}
	slices.Sort(eligible)
	eligible = slices.Compact(eligible)

	limit := st.RetireLimit()
	if limit == 0 && len(eligible) > 0 {
		return nil, errors.Wrap(state.ErrInvariant, "retire limit is 0")
	}

	sched := st.RetireSchedule()
	out := make([]Scheduled, 0, len(eligible))
	for epoch, i := st.Epoch()+1, 0; i < len(eligible); epoch++ {
		var used uint64
		for _, id := range sched.Get(epoch) {
			t, err := st.MustTicket(id)
			if err != nil {
				return nil, err
			}
			if t.Owner == validatorID {
				used++
			}
		}
		for ; used < limit && i < len(eligible); used++ {
			sched.Add(epoch, eligible[i])
			out = append(out, Scheduled{Ticket: eligible[i], Epoch: epoch})
			i++
		}
	}

	if len(out) > 0 {
		metricTicketsCount().AddWithLabel(int64(len(out)), map[string]string{"phase": "requested"})
		logger.Debug("retirement requested", "validator", validatorID, "tickets", len(out),
			"from", out[0].Epoch, "to", out[len(out)-1].Epoch)
	}
	return out, nil
}

// BeginForEpoch consumes the schedule entry of epoch. Tickets still Active become Retiring,
// are muted and queued for finalization after the retire delay. Others are skipped.
func BeginForEpoch(st *state.State, epoch, delay uint64) error {
	ids := st.RetireSchedule().Take(epoch)
	if len(ids) == 0 {
		return nil
	}
	muted, err := st.AnyMutedBucket()
	if err != nil {
		return err
	}

	begun := 0
	for _, id := range ids {
		t, err := st.MustTicket(id)
		if err != nil {
			return err
		}
		if t.Status() != state.TicketActive {
			continue
		}
		if err := t.SetStatus(state.TicketRetiring); err != nil {
			return err
		}
		requested, effective := epoch, epoch+delay
		t.RetireRequested, t.RetireEffective = &requested, &effective

		if !st.IsMutedBucket(t.Bucket()) {
			if err := st.MoveTicket(id, t.Bucket(), muted); err != nil {
				return err
			}
		}
		st.RetireFinalize().Add(effective, id)
		begun++
	}

	metricTicketsCount().AddWithLabel(int64(begun), map[string]string{"phase": "begin"})
	logger.Info("retirement begun", "epoch", epoch, "tickets", begun, "skipped", len(ids)-begun)
	return nil
}

// FinalizeForEpoch consumes the finalize entry of epoch, killing every ticket not yet dead.
func FinalizeForEpoch(st *state.State, epoch uint64) error {
	ids := st.RetireFinalize().Take(epoch)
	if len(ids) == 0 {
		return nil
	}
	dead, err := st.DeadBucket()
	if err != nil {
		return err
	}

	finalized := 0
	for _, id := range ids {
		t, err := st.MustTicket(id)
		if err != nil {
			return err
		}
		if t.Status() == state.TicketDead {
			continue
		}
		if err := t.SetStatus(state.TicketDead); err != nil {
			return err
		}
		if t.Bucket() != dead {
			if err := st.MoveTicket(id, t.Bucket(), dead); err != nil {
				return err
			}
		}
		finalized++
	}

	metricTicketsCount().AddWithLabel(int64(finalized), map[string]string{"phase": "finalize"})
	logger.Info("retirement finalized", "epoch", epoch, "tickets", finalized, "skipped", len(ids)-finalized)
	return nil
}
