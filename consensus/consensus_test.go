// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package consensus_test

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/eternix/block"
	"github.com/vechain/eternix/consensus"
	"github.com/vechain/eternix/eternix"
	"github.com/vechain/eternix/genesis"
	"github.com/vechain/eternix/retire"
	"github.com/vechain/eternix/sortition"
	"github.com/vechain/eternix/state"
)

func newDevnet(t *testing.T) (*consensus.Engine, *state.State) {
	st, cfg, err := genesis.NewDevnet().Build()
	require.NoError(t, err)
	e, err := consensus.New(cfg, nil)
	require.NoError(t, err)
	return e, st
}

func validator(t *testing.T, st *state.State, id uint64) *state.Validator {
	v, err := st.MustValidator(id)
	require.NoError(t, err)
	return v
}

// slotLedBy finds the first slot from `from` whose leader is id.
func slotLedBy(t *testing.T, st *state.State, id, from uint64) uint64 {
	for slot := from; slot < from+10_000; slot++ {
		leader, err := sortition.SelectLeader(st, slot)
		require.NoError(t, err)
		if leader == id {
			return slot
		}
	}
	t.Fatalf("validator %d never leads", id)
	return 0
}

func TestExampleScenario(t *testing.T) {
	e, st := newDevnet(t)
	cfg := e.Config()
	v1 := validator(t, st, 1)

	slashed := false
	for slot := range uint64(50) {
		if slot > 0 && slot%cfg.EpochLength == 0 {
			require.NoError(t, e.ProcessEpochTransition(st))
		}
		leader, err := sortition.SelectLeader(st, slot)
		require.NoError(t, err)

		// validator 2 always proposes, validator 1 never does
		blk, err := e.ProcessSlot(st, slot, slot*cfg.SlotDuration, []block.Proposal{{Proposer: 2, BlockID: slot}})
		require.NoError(t, err)
		assert.Equal(t, slot*cfg.SlotDuration+cfg.SlotDuration, blk.Timestamp())

		if leader == 2 {
			proposer, ok := blk.Proposer()
			assert.True(t, ok)
			assert.Equal(t, uint64(2), proposer)
		} else {
			assert.True(t, blk.IsProtocol())
		}

		if !slashed && v1.MissCounter == 5 {
			slashed = true
			assert.Equal(t, uint64(950_000), v1.Vault().Uint64())
			assert.Equal(t, state.StatusPunishedCooldown, v1.Status())
			require.NotNil(t, v1.CooldownUntil)
			assert.Equal(t, st.Epoch()+2, *v1.CooldownUntil)
			tk, _ := st.Ticket(1)
			assert.Equal(t, uint64(1), tk.Bucket())
		}
		require.NoError(t, st.CheckInvariants())
	}
	require.True(t, slashed)

	// once the cooldown expires the vault is under the bond
	for range 3 {
		require.NoError(t, e.ProcessEpochTransition(st))
	}
	assert.Equal(t, state.StatusPausedLowVault, v1.Status())
	assert.Equal(t, state.StatusActive, validator(t, st, 2).Status())
	assert.Zero(t, validator(t, st, 2).MissCounter)
}

func TestProcessSlotSuccessAndMiss(t *testing.T) {
	e, st := newDevnet(t)
	v1 := validator(t, st, 1)

	slot := slotLedBy(t, st, 1, 0)
	blk, err := e.ProcessSlot(st, slot, 0, nil)
	require.NoError(t, err)
	assert.True(t, blk.IsProtocol())
	assert.Equal(t, uint32(1), v1.MissCounter)

	// other validators' proposals don't count
	slot = slotLedBy(t, st, 1, slot+1)
	_, err = e.ProcessSlot(st, slot, 0, []block.Proposal{{Proposer: 2, BlockID: 1}})
	require.NoError(t, err)
	assert.Equal(t, uint32(2), v1.MissCounter)

	slot = slotLedBy(t, st, 1, slot+1)
	blk, err = e.ProcessSlot(st, slot, 0, []block.Proposal{{Proposer: 1, BlockID: 9}, {Proposer: 2, BlockID: 8}})
	require.NoError(t, err)
	proposer, ok := blk.Proposer()
	assert.True(t, ok)
	assert.Equal(t, uint64(1), proposer)
	assert.Equal(t, uint32(1), v1.MissCounter)

	// saturates at zero
	for range 3 {
		slot = slotLedBy(t, st, 1, slot+1)
		_, err = e.ProcessSlot(st, slot, 0, []block.Proposal{{Proposer: 1, BlockID: 9}})
		require.NoError(t, err)
	}
	assert.Zero(t, v1.MissCounter)
}

func TestProcessSlotSameBlockTwiceIsMiss(t *testing.T) {
	e, st := newDevnet(t)
	v1 := validator(t, st, 1)

	slot := slotLedBy(t, st, 1, 0)
	blk, err := e.ProcessSlot(st, slot, 0, []block.Proposal{{Proposer: 1, BlockID: 4}, {Proposer: 1, BlockID: 4}})
	require.NoError(t, err)
	assert.True(t, blk.IsProtocol())
	assert.Equal(t, uint32(1), v1.MissCounter)
	assert.Zero(t, v1.DoubleSignOffenses)
}

func TestProcessSlotDoubleSignLadder(t *testing.T) {
	e, st := newDevnet(t)
	v1 := validator(t, st, 1)
	conflicting := []block.Proposal{{Proposer: 1, BlockID: 1}, {Proposer: 1, BlockID: 2}}

	slot := slotLedBy(t, st, 1, 0)
	blk, err := e.ProcessSlot(st, slot, 0, conflicting)
	require.NoError(t, err)
	assert.True(t, blk.IsProtocol())
	assert.Equal(t, uint64(500_000), v1.Vault().Uint64())
	assert.Equal(t, uint64(3), *v1.CooldownUntil)
	assert.Equal(t, state.StatusPunishedCooldown, v1.Status())

	// bring validator 1 back by hand between offenses
	rejoin := func() {
		require.NoError(t, v1.SetStatus(state.StatusActive))
		v1.CooldownUntil = nil
		require.NoError(t, st.MoveAllValidatorTickets(1, 0))
	}

	rejoin()
	slot = slotLedBy(t, st, 1, slot+1)
	_, err = e.ProcessSlot(st, slot, 0, conflicting)
	require.NoError(t, err)
	assert.Equal(t, uint64(125_000), v1.Vault().Uint64())
	assert.Equal(t, uint64(6), *v1.CooldownUntil)

	rejoin()
	slot = slotLedBy(t, st, 1, slot+1)
	_, err = e.ProcessSlot(st, slot, 0, conflicting)
	require.NoError(t, err)
	assert.True(t, v1.Vault().IsZero())
	assert.Equal(t, state.StatusJailed, v1.Status())
	tk, _ := st.Ticket(1)
	assert.Equal(t, state.TicketDead, tk.Status())

	// jailed forever
	for range 10 {
		require.NoError(t, e.ProcessEpochTransition(st))
	}
	assert.Equal(t, state.StatusJailed, v1.Status())
	require.NoError(t, st.CheckInvariants())
}

func TestProcessSlotNoEligible(t *testing.T) {
	e, st := newDevnet(t)
	for _, id := range []uint64{1, 2} {
		require.NoError(t, st.MoveAllValidatorTickets(id, 1))
	}
	blk, err := e.ProcessSlot(st, 3, 9000, []block.Proposal{{Proposer: 1, BlockID: 1}})
	require.NoError(t, err)
	assert.True(t, blk.IsProtocol())
	assert.Equal(t, uint64(12000), blk.Timestamp())
	assert.Zero(t, validator(t, st, 1).MissCounter)
}

func TestCooldownResolution(t *testing.T) {
	e, st := newDevnet(t)
	v1 := validator(t, st, 1)
	require.NoError(t, e.Staker().ApplyLivenessSlash(st, 1)) // until epoch 2
	require.NoError(t, e.Staker().ApplyLivenessSlash(st, 2))
	v2 := validator(t, st, 2)
	require.NoError(t, e.Staker().OnVaultRefill(st, 2, v2.InitialBond()))

	require.NoError(t, e.ProcessEpochTransition(st))
	assert.Equal(t, state.StatusPunishedCooldown, v1.Status())
	assert.Equal(t, state.StatusPunishedCooldown, v2.Status())

	require.NoError(t, e.ProcessEpochTransition(st))
	assert.Equal(t, state.StatusPausedLowVault, v1.Status())
	assert.Nil(t, v1.CooldownUntil)
	assert.Equal(t, state.StatusActive, v2.Status())
	t2, _ := st.Ticket(2)
	assert.Equal(t, uint64(0), t2.Bucket())

	// paused rejoins instantly on refill
	require.NoError(t, e.Staker().OnVaultRefill(st, 1, uint256.NewInt(50_000)))
	assert.Equal(t, state.StatusActive, v1.Status())
	t1, _ := st.Ticket(1)
	assert.Equal(t, uint64(0), t1.Bucket())
}

// A validator whose only tickets are retiring goes Inactive before they finalize.
func TestInactiveCountsOnlyActiveTickets(t *testing.T) {
	e, st := newDevnet(t)
	v1 := validator(t, st, 1)

	_, err := retire.Request(st, 1, []uint64{1})
	require.NoError(t, err)

	require.NoError(t, e.ProcessEpochTransition(st))
	tk, _ := st.Ticket(1)
	assert.Equal(t, state.TicketRetiring, tk.Status())
	assert.Equal(t, state.StatusInactive, v1.Status())
	assert.Equal(t, state.StatusActive, validator(t, st, 2).Status())

	require.NoError(t, e.ProcessEpochTransition(st))
	require.NoError(t, e.ProcessEpochTransition(st))
	assert.Equal(t, state.TicketDead, tk.Status())
	assert.Equal(t, state.StatusInactive, v1.Status())
	require.NoError(t, st.CheckInvariants())
}

func TestEpochRetirementRoundTrip(t *testing.T) {
	cfg := eternix.DefaultConfig()
	cfg.RetireDelay = 3
	st, _, err := genesis.NewDevnet().Build()
	require.NoError(t, err)
	e, err := consensus.New(cfg, nil)
	require.NoError(t, err)

	_, err = retire.Request(st, 2, []uint64{2})
	require.NoError(t, err)

	require.NoError(t, e.ProcessEpochTransition(st))
	tk, _ := st.Ticket(2)
	assert.Equal(t, uint64(4), *tk.RetireEffective)
	for range 2 {
		require.NoError(t, e.ProcessEpochTransition(st))
		assert.Equal(t, state.TicketRetiring, tk.Status())
	}
	require.NoError(t, e.ProcessEpochTransition(st))
	assert.Equal(t, state.TicketDead, tk.Status())
	assert.Equal(t, uint64(4), st.Epoch())
}
