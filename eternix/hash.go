// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eternix

import (
	"encoding/binary"
	"hash"
	"io"
	"sync"

	"github.com/minio/sha256-simd"
	"golang.org/x/crypto/blake2b"
)

// Sha256 computes the sha256 checksum of the concatenation of data.
// It is the hash used by leader sortition.
func Sha256(data ...[]byte) Bytes32 {
	if len(data) == 1 {
		return sha256.Sum256(data[0])
	}
	return hashFn(&sha256StatePool, func(w io.Writer) {
		for _, b := range data {
			w.Write(b)
		}
	})
}

// Sha256Uint64 computes sha256(prefix || big-endian(n)).
func Sha256Uint64(prefix Bytes32, n uint64) Bytes32 {
	var buf [32 + 8]byte
	copy(buf[:], prefix[:])
	binary.BigEndian.PutUint64(buf[32:], n)
	return sha256.Sum256(buf[:])
}

// NewBlake2b return blake2b-256 hash.
func NewBlake2b() hash.Hash {
	hash, _ := blake2b.New256(nil)
	return hash
}

// Blake2b computes blake2b-256 checksum for given data.
func Blake2b(data ...[]byte) Bytes32 {
	if len(data) == 1 {
		// the quick version
		return blake2b.Sum256(data[0])
	}
	return Blake2bFn(func(w io.Writer) {
		for _, b := range data {
			w.Write(b)
		}
	})
}

// Blake2bFn computes blake2b-256 checksum for the provided writer.
func Blake2bFn(fn func(w io.Writer)) Bytes32 {
	return hashFn(&blake2bStatePool, fn)
}

func hashFn(pool *sync.Pool, fn func(w io.Writer)) (h Bytes32) {
	w := pool.Get().(*hashState)
	fn(w)
	w.Sum(w.b32[:0])
	h = w.b32 // to avoid 1 alloc
	w.Reset()
	pool.Put(w)
	return
}

type hashState struct {
	hash.Hash
	b32 Bytes32
}

var (
	blake2bStatePool = sync.Pool{
		New: func() any {
			return &hashState{Hash: NewBlake2b()}
		},
	}
	sha256StatePool = sync.Pool{
		New: func() any {
			return &hashState{Hash: sha256.New()}
		},
	}
)
