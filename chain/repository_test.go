// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package chain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/eternix/block"
	"github.com/vechain/eternix/chain"
	"github.com/vechain/eternix/lvldb"
)

func newRepo(t *testing.T) (*chain.Repository, *lvldb.LevelDB) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo, err := chain.NewRepository(db)
	require.NoError(t, err)
	return repo, db
}

func TestRepository(t *testing.T) {
	repo, db := newRepo(t)

	_, ok := repo.BestSlot()
	assert.False(t, ok)

	ticker := repo.NewTicker()
	require.NoError(t, repo.AddBlock(block.New(0, 3000, 1)))
	<-ticker.C()
	require.NoError(t, repo.AddBlock(block.NewProtocol(1, 6000)))

	best, ok := repo.BestSlot()
	assert.True(t, ok)
	assert.Equal(t, uint64(1), best)

	b, err := repo.GetBlock(1)
	require.NoError(t, err)
	assert.True(t, b.IsProtocol())

	_, err = repo.GetBlock(5)
	assert.True(t, repo.IsNotFound(err))

	// out of order
	assert.Error(t, repo.AddBlock(block.New(1, 6000, 2)))

	// reopen over the same store resumes, and reads hit the store instead of the cache
	reopened, err := chain.NewRepository(db)
	require.NoError(t, err)
	best, ok = reopened.BestSlot()
	assert.True(t, ok)
	assert.Equal(t, uint64(1), best)

	b, err = reopened.GetBlock(0)
	require.NoError(t, err)
	proposer, ok := b.Proposer()
	assert.True(t, ok)
	assert.Equal(t, uint64(1), proposer)
	assert.Equal(t, block.New(0, 3000, 1).ID(), b.ID())

	var slots []uint64
	require.NoError(t, reopened.Blocks(func(b *block.Block) bool {
		slots = append(slots, b.Slot())
		return true
	}))
	assert.Equal(t, []uint64{0, 1}, slots)
}
