// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

import (
	"github.com/syndtr/goleveldb/leveldb/util"
)

type (
	getFunc        func(key []byte) ([]byte, error)
	hasFunc        func(key []byte) (bool, error)
	isNotFoundFunc func(err error) bool
	putFunc        func(key, val []byte) error
	deleteFunc     func(key []byte) error
)

func (f getFunc) Get(key []byte) ([]byte, error) { return f(key) }
func (f hasFunc) Has(key []byte) (bool, error) { return f(key) }
func (f isNotFoundFunc) IsNotFound(err error) bool { return f(err) }
func (f putFunc) Put(key, val []byte) error { return f(key, val) }
func (f deleteFunc) Delete(key []byte) error { return f(key) }

// Bucket provides logical bucket for kv store.
type Bucket string

// Key returns the full key of k in the bucket.
func (b Bucket) Key(k []byte) []byte {
	return append([]byte(b), k...)
}

// Range returns the key range covering the whole bucket.
func (b Bucket) Range() Range {
	r := util.BytesPrefix([]byte(b))
	return Range{Start: r.Start, Limit: r.Limit}
}

// NewGetter creates a bucket getter from the source getter.
func (b Bucket) NewGetter(src Getter) Getter {
	return &struct {
		getFunc
		hasFunc
		isNotFoundFunc
	}{
		func(key []byte) ([]byte, error) { return src.Get(b.Key(key)) },
		func(key []byte) (bool, error) { return src.Has(b.Key(key)) },
		src.IsNotFound,
	}
}

// NewPutter creates a bucket putter from the source putter.
func (b Bucket) NewPutter(src Putter) Putter {
	return &struct {
		putFunc
		deleteFunc
	}{
		func(key, val []byte) error { return src.Put(b.Key(key), val) },
		func(key []byte) error { return src.Delete(b.Key(key)) },
	}
}
