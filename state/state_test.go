// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state_test

import (
	"errors"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/eternix/eternix"
	"github.com/vechain/eternix/state"
)

const (
	activeBucket = 0
	mutedBucket  = 1
	deadBucket   = 2
)

// newState builds two validators owning two tickets each, all in the active bucket.
func newState(t *testing.T) *state.State {
	st := state.New(eternix.Bytes32{7}, 2)
	require.NoError(t, st.AddBucket(activeBucket, state.CategoryActive))
	require.NoError(t, st.AddBucket(mutedBucket, state.CategoryMuted))
	require.NoError(t, st.AddBucket(deadBucket, state.CategoryDead))

	for vid := uint64(1); vid <= 2; vid++ {
		v, err := state.NewValidator(vid, uint256.NewInt(1000), uint256.NewInt(1000))
		require.NoError(t, err)
		require.NoError(t, st.AddValidator(v))
		for i := range uint64(2) {
			_, err := st.AddTicket(vid*10+i, vid, activeBucket, 0)
			require.NoError(t, err)
		}
	}
	require.NoError(t, st.CheckInvariants())
	return st
}

func TestAddDuplicates(t *testing.T) {
	st := newState(t)

	assert.True(t, errors.Is(st.AddBucket(activeBucket, state.CategoryMuted), state.ErrInvariant))
	assert.True(t, errors.Is(st.AddBucket(9, state.CategoryDead), state.ErrInvariant))

	v, err := state.NewValidator(1, uint256.NewInt(1), uint256.NewInt(1))
	require.NoError(t, err)
	assert.True(t, errors.Is(st.AddValidator(v), state.ErrInvariant))

	_, err = st.AddTicket(10, 1, activeBucket, 0)
	assert.True(t, errors.Is(err, state.ErrInvariant))
	_, err = st.AddTicket(99, 42, activeBucket, 0)
	assert.True(t, errors.Is(err, state.ErrInvariant))
	_, err = st.AddTicket(99, 1, deadBucket, 0)
	assert.True(t, errors.Is(err, state.ErrInvariant))
}

func TestMustLookups(t *testing.T) {
	st := newState(t)

	_, err := st.MustValidator(3)
	assert.True(t, errors.Is(err, state.ErrInvariant))
	assert.Contains(t, err.Error(), "validator 3 not found")

	_, err = st.MustTicket(3)
	assert.True(t, errors.Is(err, state.ErrInvariant))

	_, err = st.MustBucket(3)
	assert.True(t, errors.Is(err, state.ErrInvariant))

	v, err := st.MustValidator(2)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), v.ID)

	_, ok := st.Ticket(3)
	assert.False(t, ok)
}

func TestValidatorVaultBound(t *testing.T) {
	tooBig := new(uint256.Int).Lsh(uint256.NewInt(1), 128)

	_, err := state.NewValidator(1, tooBig, uint256.NewInt(1))
	assert.True(t, errors.Is(err, state.ErrInvariant))

	v, err := state.NewValidator(1, uint256.NewInt(5), uint256.NewInt(1))
	require.NoError(t, err)
	assert.True(t, errors.Is(v.SetVault(tooBig), state.ErrInvariant))
	assert.Equal(t, uint64(5), v.Vault().Uint64())

	maxU128 := new(uint256.Int).Sub(tooBig, uint256.NewInt(1))
	require.NoError(t, v.SetVault(maxU128))
	assert.Equal(t, maxU128, v.Vault())

	// returned values are copies
	v.Vault().SetUint64(0)
	assert.Equal(t, maxU128, v.Vault())
}

func TestJailedIsTerminal(t *testing.T) {
	v, err := state.NewValidator(1, uint256.NewInt(5), uint256.NewInt(1))
	require.NoError(t, err)
	assert.Equal(t, state.StatusActive, v.Status())

	require.NoError(t, v.SetStatus(state.StatusJailed))
	assert.True(t, errors.Is(v.SetStatus(state.StatusActive), state.ErrInvariant))
	require.NoError(t, v.SetStatus(state.StatusJailed))
}

func TestTicketStatusForwardOnly(t *testing.T) {
	st := newState(t)
	tk, _ := st.Ticket(10)

	require.NoError(t, tk.SetStatus(state.TicketRetiring))
	assert.True(t, errors.Is(tk.SetStatus(state.TicketActive), state.ErrInvariant))
	require.NoError(t, tk.SetStatus(state.TicketDead))
	assert.True(t, errors.Is(tk.SetStatus(state.TicketRetiring), state.ErrInvariant))
}

func TestEligible(t *testing.T) {
	st := newState(t)
	assert.True(t, st.HasEligible())
	assert.Equal(t, map[uint64]int{activeBucket: 4}, st.EligibleCounts())

	for _, id := range []uint64{1, 2} {
		require.NoError(t, st.MoveAllValidatorTickets(id, mutedBucket))
	}
	assert.False(t, st.HasEligible())
	assert.Empty(t, st.EligibleCounts())
}

func TestStatusText(t *testing.T) {
	b, err := state.StatusPunishedCooldown.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "punished_cooldown", string(b))
	assert.Equal(t, "retiring", state.TicketRetiring.String())
	assert.Equal(t, "dead", state.CategoryDead.String())
	assert.Equal(t, "status(9)", state.Status(9).String())
}

func TestStatusUnmarshalText(t *testing.T) {
	var s state.Status
	require.NoError(t, s.UnmarshalText([]byte("jailed")))
	assert.Equal(t, state.StatusJailed, s)
	assert.Error(t, s.UnmarshalText([]byte("status(9)")))

	var ts state.TicketStatus
	require.NoError(t, ts.UnmarshalText([]byte("retiring")))
	assert.Equal(t, state.TicketRetiring, ts)
	assert.Error(t, ts.UnmarshalText([]byte("alive")))

	var c state.Category
	require.NoError(t, c.UnmarshalText([]byte("muted")))
	assert.Equal(t, state.CategoryMuted, c)
	assert.Error(t, c.UnmarshalText(nil))
}
