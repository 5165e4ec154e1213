// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package sim_test

import (
	"context"
	"errors"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/vechain/eternix/block"
	"github.com/vechain/eternix/chain"
	"github.com/vechain/eternix/consensus"
	"github.com/vechain/eternix/genesis"
	"github.com/vechain/eternix/lvldb"
	"github.com/vechain/eternix/sim"
	"github.com/vechain/eternix/state"
)

func newSim(t *testing.T, source sim.ProposalSource, sink sim.BlockSink) *sim.Simulator {
	st, cfg, err := genesis.NewDevnet().Build()
	require.NoError(t, err)
	engine, err := consensus.New(cfg, nil)
	require.NoError(t, err)
	return sim.New(engine, st, source, sink, 0)
}

func newRepo(t *testing.T) *chain.Repository {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	repo, err := chain.NewRepository(db)
	require.NoError(t, err)
	return repo
}

func devnetBehaviors(byID map[uint64]sim.Behavior) *sim.Behaviors {
	return &sim.Behaviors{Validators: []uint64{1, 2}, ByID: byID}
}

type validatorView struct {
	status state.Status
	vault  uint64
	misses uint32
	ds     uint8
}

func view(s *sim.Simulator, id uint64) (v validatorView) {
	s.View(func(st *state.State, _ sim.SimClock) {
		val, _ := st.Validator(id)
		v = validatorView{val.Status(), val.Vault().Uint64(), val.MissCounter, val.DoubleSignOffenses}
	})
	return
}

func TestClock(t *testing.T) {
	c := sim.NewClock(1000, 3000)
	assert.Equal(t, uint64(0), c.Slot)
	assert.Equal(t, uint64(1000), c.SlotStart)
	c.Advance()
	c.Advance()
	assert.Equal(t, uint64(2), c.Slot)
	assert.Equal(t, uint64(7000), c.SlotStart)
}

func TestBehaviors(t *testing.T) {
	b := devnetBehaviors(map[uint64]sim.Behavior{2: sim.DoubleSigner})

	ps := b.Proposals(4, 1, true)
	require.Len(t, ps, 1)
	assert.Equal(t, uint64(1), ps[0].Proposer)

	ps = b.Proposals(4, 2, true)
	require.Len(t, ps, 2)
	assert.NotEqual(t, ps[0].BlockID, ps[1].BlockID)

	assert.Empty(t, b.Proposals(4, 0, false))

	eager := &sim.Behaviors{Validators: []uint64{2, 1}, Default: sim.Eager}
	ps = eager.Proposals(3, 2, true)
	require.Len(t, ps, 2)
	assert.Equal(t, uint64(1), ps[0].Proposer)
	assert.Equal(t, uint64(2), ps[1].Proposer)

	scripted := &sim.Scripted{
		Slots: map[uint64][]block.Proposal{7: {{Proposer: 9, BlockID: 1}}},
		Next:  b,
	}
	assert.Equal(t, []block.Proposal{{Proposer: 9, BlockID: 1}}, scripted.Proposals(7, 1, true))
	assert.Len(t, scripted.Proposals(8, 1, true), 1)
	assert.Empty(t, (&sim.Scripted{}).Proposals(8, 1, true))
}

func TestRunHonest(t *testing.T) {
	repo := newRepo(t)
	s := newSim(t, devnetBehaviors(nil), repo)

	require.NoError(t, s.Run(context.Background(), 50))

	best, ok := repo.BestSlot()
	require.True(t, ok)
	assert.Equal(t, uint64(49), best)

	b, err := repo.GetBlock(0)
	require.NoError(t, err)
	assert.False(t, b.IsProtocol())
	assert.Equal(t, uint64(3000), b.Timestamp())

	s.View(func(st *state.State, clock sim.SimClock) {
		assert.Equal(t, uint64(5), st.Epoch())
		assert.Equal(t, uint64(50), clock.Slot)
		assert.Equal(t, uint64(150_000), clock.SlotStart)
		assert.NoError(t, st.CheckInvariants())
	})
	for _, id := range []uint64{1, 2} {
		v := view(s, id)
		assert.Equal(t, state.StatusActive, v.status)
		assert.Equal(t, uint32(0), v.misses)
	}
}

func TestSilentValidatorPausesAndRejoins(t *testing.T) {
	s := newSim(t, devnetBehaviors(map[uint64]sim.Behavior{1: sim.Silent}), nil)

	// validator 1 leads slots 1, 2, 4, 6 and 7: the fifth miss slashes it in epoch 0
	require.NoError(t, s.Run(context.Background(), 8))
	v := view(s, 1)
	assert.Equal(t, state.StatusPunishedCooldown, v.status)
	assert.Equal(t, uint64(950_000), v.vault)
	assert.Equal(t, uint32(5), v.misses)

	require.NoError(t, s.Run(context.Background(), 22))
	assert.Equal(t, state.StatusPausedLowVault, view(s, 1).status)

	s.RefillAt(30, 1, uint256.NewInt(50_000))
	_, err := s.Step()
	require.NoError(t, err)
	v = view(s, 1)
	assert.Equal(t, state.StatusActive, v.status)
	assert.Equal(t, uint64(1_000_000), v.vault)
	assert.Equal(t, state.StatusActive, view(s, 2).status)
}

func TestRefillOverflowIsNotFatal(t *testing.T) {
	s := newSim(t, devnetBehaviors(nil), nil)
	s.RefillAt(0, 1, new(uint256.Int).Lsh(uint256.NewInt(1), 200))

	_, err := s.Step()
	require.NoError(t, err)
	assert.Equal(t, uint64(1_000_000), view(s, 1).vault)
}

func TestDoubleSigner(t *testing.T) {
	repo := newRepo(t)
	s := newSim(t, devnetBehaviors(map[uint64]sim.Behavior{2: sim.DoubleSigner}), repo)

	// validator 2 leads slot 0
	b, err := s.Step()
	require.NoError(t, err)
	assert.True(t, b.IsProtocol())

	v := view(s, 2)
	assert.Equal(t, state.StatusPunishedCooldown, v.status)
	assert.Equal(t, uint8(1), v.ds)
	assert.Equal(t, uint64(500_000), v.vault)

	require.NoError(t, s.Run(context.Background(), 39))
	assert.Equal(t, state.StatusPausedLowVault, view(s, 2).status)
	assert.Equal(t, state.StatusActive, view(s, 1).status)

	stored, err := repo.GetBlock(0)
	require.NoError(t, err)
	assert.True(t, stored.IsProtocol())
}

func TestRetireAt(t *testing.T) {
	s := newSim(t, devnetBehaviors(nil), nil)
	s.RetireAt(0, 1, []uint64{1})

	require.NoError(t, s.Run(context.Background(), 10))
	s.View(func(st *state.State, _ sim.SimClock) {
		tk, _ := st.Ticket(1)
		assert.Equal(t, state.TicketRetiring, tk.Status())
		assert.True(t, st.IsMutedBucket(tk.Bucket()))
	})
	assert.Equal(t, state.StatusInactive, view(s, 1).status)

	require.NoError(t, s.Run(context.Background(), 20))
	s.View(func(st *state.State, _ sim.SimClock) {
		tk, _ := st.Ticket(1)
		assert.Equal(t, state.TicketDead, tk.Status())
		dead, err := st.DeadBucket()
		require.NoError(t, err)
		assert.Equal(t, dead, tk.Bucket())
	})
}

type failingSink struct{ calls int }

func (f *failingSink) AddBlock(*block.Block) error {
	f.calls++
	return errors.New("disk full")
}

func TestHaltsOnFirstError(t *testing.T) {
	sink := &failingSink{}
	s := newSim(t, devnetBehaviors(nil), sink)

	_, err := s.Step()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")

	_, again := s.Step()
	assert.Equal(t, err, again)
	assert.Equal(t, err, s.Err())
	assert.Equal(t, 1, sink.calls)
	assert.Error(t, s.Run(context.Background(), 5))
}

type notifySink struct{ c chan uint64 }

func (n *notifySink) AddBlock(b *block.Block) error {
	select {
	case n.c <- b.Slot():
	default:
	}
	return nil
}

func TestRunUntilCanceled(t *testing.T) {
	defer goleak.VerifyNone(t)

	sink := &notifySink{c: make(chan uint64, 1)}
	s := newSim(t, devnetBehaviors(nil), sink)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, 0) }()

	<-sink.c
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
	s.View(func(_ *state.State, clock sim.SimClock) {
		assert.NotZero(t, clock.Slot)
	})

	// canceled before the first step
	assert.ErrorIs(t, newSim(t, devnetBehaviors(nil), nil).Run(ctx, 3), context.Canceled)
}
