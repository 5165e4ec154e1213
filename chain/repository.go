// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package chain

import (
	"encoding/binary"
	"sync"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/vechain/eternix/block"
	"github.com/vechain/eternix/cache"
	"github.com/vechain/eternix/co"
	"github.com/vechain/eternix/kv"
)

const (
	blockBucket = kv.Bucket("chain.blk.") // slot -> rlp block
	propBucket  = kv.Bucket("chain.props.")

	blockCacheSize = 512
)

var (
	errNotFound = errors.New("not found")
	bestSlotKey = []byte("best-slot")
)

// Repository stores produced blocks by slot.
//
// It's thread-safe.
type Repository struct {
	store  kv.Store
	blocks kv.Getter

	mu      sync.RWMutex
	best    uint64
	hasBest bool
	cache   *cache.LRU[uint64, *block.Block]
	tick    co.Signal
}

// NewRepository creates a repository over store, resuming from the best slot already saved.
func NewRepository(store kv.Store) (*Repository, error) {
	lru, err := cache.NewLRU[uint64, *block.Block](blockCacheSize)
	if err != nil {
		return nil, err
	}
	repo := &Repository{
		store:  store,
		blocks: blockBucket.NewGetter(store),
		cache:  lru,
	}

	val, err := propBucket.NewGetter(store).Get(bestSlotKey)
	if err != nil {
		if !store.IsNotFound(err) {
			return nil, errors.Wrap(err, "load best slot")
		}
		return repo, nil
	}
	if len(val) != 8 {
		return nil, errors.Errorf("corrupted best slot: %x", val)
	}
	repo.best, repo.hasBest = binary.BigEndian.Uint64(val), true
	return repo, nil
}

func slotKey(slot uint64) []byte {
	var k [8]byte
	binary.BigEndian.PutUint64(k[:], slot)
	return k[:]
}

// AddBlock saves b and marks it best. Slots must strictly increase.
func (r *Repository) AddBlock(b *block.Block) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.hasBest && b.Slot() <= r.best {
		return errors.Errorf("slot %d not after best slot %d", b.Slot(), r.best)
	}
	data, err := rlp.EncodeToBytes(b)
	if err != nil {
		return errors.Wrap(err, "encode block")
	}

	batch := r.store.NewBatch()
	if err := blockBucket.NewPutter(batch).Put(slotKey(b.Slot()), data); err != nil {
		return err
	}
	if err := propBucket.NewPutter(batch).Put(bestSlotKey, slotKey(b.Slot())); err != nil {
		return err
	}
	if err := batch.Write(); err != nil {
		return errors.Wrap(err, "write block")
	}

	r.best, r.hasBest = b.Slot(), true
	r.cache.Add(b.Slot(), b)
	r.tick.Broadcast()
	return nil
}

// GetBlock returns the block of slot.
func (r *Repository) GetBlock(slot uint64) (*block.Block, error) {
	return r.cache.GetOrLoad(slot, func(slot uint64) (*block.Block, error) {
		data, err := r.blocks.Get(slotKey(slot))
		if err != nil {
			if r.store.IsNotFound(err) {
				return nil, errNotFound
			}
			return nil, err
		}
		var b block.Block
		if err := rlp.DecodeBytes(data, &b); err != nil {
			return nil, errors.Wrapf(err, "decode block %d", slot)
		}
		return &b, nil
	})
}

// BestSlot returns the slot of the newest block. ok is false for an empty repository.
func (r *Repository) BestSlot() (slot uint64, ok bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.best, r.hasBest
}

// Blocks iterates stored blocks by ascending slot until fn returns false.
func (r *Repository) Blocks(fn func(*block.Block) bool) error {
	it := r.store.Iterate(blockBucket.Range())
	defer it.Release()

	for it.Next() {
		var b block.Block
		if err := rlp.DecodeBytes(it.Value(), &b); err != nil {
			return errors.Wrap(err, "decode block")
		}
		if !fn(&b) {
			break
		}
	}
	return it.Error()
}

// NewTicker returns a waiter woken on every added block.
func (r *Repository) NewTicker() co.Waiter {
	return r.tick.NewWaiter()
}

// IsNotFound returns if an error means not found.
func (r *Repository) IsNotFound(err error) bool {
	return errors.Is(err, errNotFound) || r.store.IsNotFound(err)
}
