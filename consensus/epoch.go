// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package consensus

import (
	"github.com/vechain/eternix/retire"
	"github.com/vechain/eternix/state"
)

// ProcessEpochTransition advances the epoch and runs the boundary bookkeeping in order:
// retirement begin then finalize, deactivation of Active validators left without an Active
// ticket, and resolution of expired cooldowns. Validators are visited by ascending id.
func (e *Engine) ProcessEpochTransition(st *state.State) error {
	epoch := st.AdvanceEpoch()
	metricEpochGauge().Set(int64(epoch))

	if err := retire.BeginForEpoch(st, epoch, e.cfg.RetireDelay); err != nil {
		return err
	}
	if err := retire.FinalizeForEpoch(st, epoch); err != nil {
		return err
	}

	ids := st.ValidatorIDs()

	// Retiring tickets don't count: a validator whose tickets are all retiring goes Inactive.
	for _, id := range ids {
		v, err := st.MustValidator(id)
		if err != nil {
			return err
		}
		if v.Status() != state.StatusActive || hasActiveTicket(st, id) {
			continue
		}
		if err := v.SetStatus(state.StatusInactive); err != nil {
			return err
		}
		logger.Info("validator inactive", "validator", id, "epoch", epoch)
	}

	for _, id := range ids {
		v, err := st.MustValidator(id)
		if err != nil {
			return err
		}
		if v.Status() == state.StatusJailed {
			continue
		}
		if _, err := e.staker.ResolveCooldown(st, id); err != nil {
			return err
		}
	}

	logger.Debug("epoch transition", "epoch", epoch)
	return nil
}

func hasActiveTicket(st *state.State, validatorID uint64) bool {
	for _, tid := range st.TicketsOf(validatorID) {
		if t, ok := st.Ticket(tid); ok && t.Status() == state.TicketActive {
			return true
		}
	}
	return false
}
