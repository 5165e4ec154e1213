// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/eternix/eternix"
	"github.com/vechain/eternix/genesis"
	"github.com/vechain/eternix/state"
)

func TestDevnet(t *testing.T) {
	st, cfg, err := genesis.NewDevnet().Build()
	require.NoError(t, err)

	assert.Equal(t, eternix.DefaultConfig(), cfg)
	assert.Equal(t, uint64(2), st.RetireLimit())
	assert.Equal(t, eternix.MustParseBytes32("0x0707070707070707070707070707070707070707070707070707070707070707"), st.Seed())
	assert.Equal(t, []uint64{1, 2}, st.ValidatorIDs())
	assert.Equal(t, []uint64{0}, st.ActiveBuckets())
	assert.Equal(t, []uint64{1}, st.MutedBuckets())

	for _, id := range []uint64{1, 2} {
		v, _ := st.Validator(id)
		assert.Equal(t, uint64(genesis.DevnetStake), v.Vault().Uint64())
		assert.Equal(t, uint64(genesis.DevnetStake), v.InitialBond().Uint64())
		assert.Equal(t, []uint64{id}, st.TicketsOf(id))
		tk, _ := st.Ticket(id)
		assert.Equal(t, uint64(0), tk.Bucket())
	}
}

const sample = `
name: sample
seed: "0x0000000000000000000000000000000000000000000000000000000000000001"
config:
  epochLength: 4
  retirePerEpochLimit: 1
buckets:
  - {id: 10, category: active}
  - {id: 11, category: active}
  - {id: 20, category: muted}
  - {id: 99, category: dead}
validators:
  - {id: 3, vault: "0x64", tickets: 1, bucket: 11}
  - {id: 1, vault: "340282366920938463463374607431768211455", bond: "100", tickets: 3}
`

func TestParseAndBuild(t *testing.T) {
	path := filepath.Join(t.TempDir(), "genesis.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	gen, err := genesis.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "sample", gen.Name)

	st, cfg, err := gen.Build()
	require.NoError(t, err)
	assert.Equal(t, uint64(4), cfg.EpochLength)
	assert.Equal(t, uint64(3000), cfg.SlotDuration)
	assert.Equal(t, uint64(1), st.RetireLimit())

	// validator 1 first: tickets 1..3 round robin over 10, 11
	assert.Equal(t, []uint64{1, 2, 3}, st.TicketsOf(1))
	assert.Equal(t, []uint64{4}, st.TicketsOf(3))
	b10, _ := st.Bucket(10)
	b11, _ := st.Bucket(11)
	assert.Equal(t, []uint64{1, 3}, b10.Members())
	assert.Equal(t, []uint64{2, 4}, b11.Members())

	v3, _ := st.Validator(3)
	assert.Equal(t, uint64(100), v3.InitialBond().Uint64())
	v1, _ := st.Validator(1)
	assert.Equal(t, 128, v1.Vault().BitLen())

	// marshal and parse again yields the same state layout
	data, err := gen.Marshal()
	require.NoError(t, err)
	again, err := genesis.Parse(data)
	require.NoError(t, err)
	st2, _, err := again.Build()
	require.NoError(t, err)
	assert.Equal(t, st.TicketIDs(), st2.TicketIDs())
	assert.Equal(t, st.Seed(), st2.Seed())
}

func TestBuildInvalid(t *testing.T) {
	tests := []struct {
		name string
		gen  genesis.Genesis
	}{
		{"no dead bucket", genesis.Genesis{Buckets: []genesis.Bucket{{ID: 1, Category: "muted"}}}},
		{"two dead buckets", genesis.Genesis{Buckets: []genesis.Bucket{{ID: 1, Category: "dead"}, {ID: 2, Category: "dead"}, {ID: 3, Category: "muted"}}}},
		{"no muted bucket", genesis.Genesis{Buckets: []genesis.Bucket{{ID: 1, Category: "dead"}}}},
		{"unknown category", genesis.Genesis{Buckets: []genesis.Bucket{{ID: 1, Category: "frozen"}}}},
		{"duplicate bucket", genesis.Genesis{Buckets: []genesis.Bucket{{ID: 1, Category: "muted"}, {ID: 1, Category: "dead"}}}},
		{"missing vault", withValidators(genesis.Validator{ID: 1})},
		{"duplicate validator", withValidators(
			genesis.Validator{ID: 1, Vault: genesis.NewAmount(1)},
			genesis.Validator{ID: 1, Vault: genesis.NewAmount(1)},
		)},
		{"tickets without active bucket", genesis.Genesis{
			Buckets:    []genesis.Bucket{{ID: 1, Category: "muted"}, {ID: 2, Category: "dead"}},
			Validators: []genesis.Validator{{ID: 1, Vault: genesis.NewAmount(1), Tickets: 1}},
		}},
		{"tickets in muted bucket", withValidators(genesis.Validator{ID: 1, Vault: genesis.NewAmount(1), Tickets: 1, Bucket: ptr(1)})},
		{"bad config", genesis.Genesis{Config: &eternix.Config{LivenessSlashPercent: 101}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := tt.gen.Build()
			assert.True(t, errors.Is(err, genesis.ErrInvalidGenesis), "got %v", err)
		})
	}
}

func TestParseInvalidAmount(t *testing.T) {
	_, err := genesis.Parse([]byte("validators:\n  - {id: 1, vault: abc}\n"))
	assert.Error(t, err)
}

func withValidators(vs ...genesis.Validator) genesis.Genesis {
	return genesis.Genesis{
		Buckets: []genesis.Bucket{
			{ID: 0, Category: "active"},
			{ID: 1, Category: "muted"},
			{ID: 2, Category: "dead"},
		},
		Validators: vs,
	}
}

func ptr(v uint64) *uint64 { return &v }

func TestCategoryOfDevnetRoundTrip(t *testing.T) {
	data, err := genesis.NewDevnet().Marshal()
	require.NoError(t, err)
	gen, err := genesis.Parse(data)
	require.NoError(t, err)
	st, _, err := gen.Build()
	require.NoError(t, err)
	b, _ := st.Bucket(2)
	assert.Equal(t, state.CategoryDead, b.Category)
}
