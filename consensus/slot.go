// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package consensus

import (
	"github.com/vechain/eternix/block"
	"github.com/vechain/eternix/sortition"
	"github.com/vechain/eternix/state"
)

// ProcessSlot evaluates the proposals of one slot and returns the block it yields.
//
// Without eligible tickets the slot yields a protocol block and sortition is skipped.
// Otherwise only the leader's proposals count: two or more distinct block ids are a double
// sign, exactly one proposal is a success, anything else is a miss.
func (e *Engine) ProcessSlot(st *state.State, slot, slotStart uint64, proposals []block.Proposal) (*block.Block, error) {
	timestamp := slotStart + e.cfg.SlotDuration

	if !st.HasEligible() {
		metricSlotsCount().AddWithLabel(1, map[string]string{"type": "protocol"})
		logger.Debug("no eligible ticket", "slot", slot)
		return block.NewProtocol(slot, timestamp), nil
	}

	leaderID, err := sortition.SelectLeader(st, slot)
	if err != nil {
		return nil, err
	}
	leader, err := st.MustValidator(leaderID)
	if err != nil {
		return nil, err
	}

	var (
		matched  int
		distinct = make(map[uint64]struct{})
	)
	for _, p := range proposals {
		if p.Proposer == leaderID {
			matched++
			distinct[p.BlockID] = struct{}{}
		}
	}

	switch {
	case len(distinct) >= 2:
		if err := e.staker.ApplyDoubleSign(st, leaderID); err != nil {
			return nil, err
		}
		metricSlotsCount().AddWithLabel(1, map[string]string{"type": "double_sign"})
		logger.Warn("double sign detected", "slot", slot, "leader", leaderID, "blocks", len(distinct))
		return block.NewProtocol(slot, timestamp), nil

	case matched == 1:
		if leader.MissCounter > 0 {
			leader.MissCounter--
		}
		metricSlotsCount().AddWithLabel(1, map[string]string{"type": "proposed"})
		logger.Trace("block proposed", "slot", slot, "leader", leaderID)
		return block.New(slot, timestamp, leaderID), nil
	}

	// a repeated proposal of the same block is not "exactly one" and counts as a miss
	prev := leader.MissCounter
	if leader.MissCounter < ^uint32(0) {
		leader.MissCounter++
	}
	metricSlotsCount().AddWithLabel(1, map[string]string{"type": "protocol"})
	logger.Debug("slot missed", "slot", slot, "leader", leaderID, "misses", leader.MissCounter)

	if e.shouldLivenessSlash(prev, leader.MissCounter) {
		if err := e.staker.ApplyLivenessSlash(st, leaderID); err != nil {
			return nil, err
		}
	}
	return block.NewProtocol(slot, timestamp), nil
}
