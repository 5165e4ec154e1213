// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache_test

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/eternix/cache"
)

func TestNewLRUInvalidSize(t *testing.T) {
	_, err := cache.NewLRU[uint64, string](0)
	assert.Error(t, err)
}

func TestLRUEviction(t *testing.T) {
	c, err := cache.NewLRU[uint64, string](2)
	require.NoError(t, err)

	c.Add(1, "a")
	c.Add(2, "b")
	_, _ = c.Get(1) // 1 becomes most recent
	c.Add(3, "c")

	_, ok := c.Get(2)
	assert.False(t, ok)
	v, ok := c.Get(1)
	assert.True(t, ok)
	assert.Equal(t, "a", v)
	assert.Equal(t, 2, c.Len())

	hit, miss := c.Stats()
	assert.Equal(t, int64(2), hit)
	assert.Equal(t, int64(1), miss)
}

func TestLRUGetOrLoad(t *testing.T) {
	c, err := cache.NewLRU[uint64, string](4)
	require.NoError(t, err)

	calls := 0
	load := func(k uint64) (string, error) {
		calls++
		if k == 0 {
			return "", errors.New("not found")
		}
		return "v", nil
	}

	v, err := c.GetOrLoad(7, load)
	require.NoError(t, err)
	assert.Equal(t, "v", v)

	v, err = c.GetOrLoad(7, load)
	require.NoError(t, err)
	assert.Equal(t, "v", v)
	assert.Equal(t, 1, calls)

	_, err = c.GetOrLoad(0, load)
	assert.Error(t, err)
	assert.Equal(t, 1, c.Len())
}

func TestLRUGetOrLoadSharesConcurrentLoads(t *testing.T) {
	c, err := cache.NewLRU[uint64, string](4)
	require.NoError(t, err)

	var (
		calls   atomic.Int32
		entered = make(chan struct{})
		release = make(chan struct{})
		wg      sync.WaitGroup
	)
	load := func(uint64) (string, error) {
		if calls.Add(1) == 1 {
			close(entered)
		}
		<-release
		return "v", nil
	}

	results := make([]string, 4)
	for i := range results {
		if i == 1 {
			<-entered
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], _ = c.GetOrLoad(9, load)
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, []string{"v", "v", "v", "v"}, results)
}
