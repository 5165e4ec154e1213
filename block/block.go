// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package block

import (
	"fmt"
	"io"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/vechain/eternix/eternix"
)

// Block is the output of one slot. A block without proposer is a protocol block.
// Block is immutable.
type Block struct {
	slot      uint64
	timestamp uint64 // ms
	proposer  *uint64

	id atomic.Pointer[eternix.Bytes32]
}

// New creates a block proposed by proposer.
func New(slot, timestamp, proposer uint64) *Block {
	return &Block{slot: slot, timestamp: timestamp, proposer: &proposer}
}

// NewProtocol creates a protocol block.
func NewProtocol(slot, timestamp uint64) *Block {
	return &Block{slot: slot, timestamp: timestamp}
}

// Slot returns the slot index.
func (b *Block) Slot() uint64 { return b.slot }

// Timestamp returns the block time in milliseconds.
func (b *Block) Timestamp() uint64 { return b.timestamp }

// Proposer returns the proposer id, ok is false for protocol blocks.
func (b *Block) Proposer() (id uint64, ok bool) {
	if b.proposer == nil {
		return 0, false
	}
	return *b.proposer, true
}

// IsProtocol reports whether the block has no proposer.
func (b *Block) IsProtocol() bool { return b.proposer == nil }

// ID returns the blake2b hash of the rlp encoded block.
func (b *Block) ID() eternix.Bytes32 {
	if cached := b.id.Load(); cached != nil {
		return *cached
	}
	id := eternix.Blake2bFn(func(w io.Writer) {
		// encoding into a hasher can't fail
		_ = b.EncodeRLP(w)
	})
	b.id.Store(&id)
	return id
}

type payload struct {
	Slot      uint64
	Timestamp uint64
	Proposer  []uint64 // zero or one element
}

// EncodeRLP implements rlp.Encoder.
func (b *Block) EncodeRLP(w io.Writer) error {
	p := payload{Slot: b.slot, Timestamp: b.timestamp}
	if b.proposer != nil {
		p.Proposer = []uint64{*b.proposer}
	}
	return rlp.Encode(w, &p)
}

// DecodeRLP implements rlp.Decoder.
func (b *Block) DecodeRLP(s *rlp.Stream) error {
	var p payload
	if err := s.Decode(&p); err != nil {
		return err
	}
	if len(p.Proposer) > 1 {
		return errors.Errorf("block %d: %d proposers", p.Slot, len(p.Proposer))
	}
	b.slot, b.timestamp, b.proposer = p.Slot, p.Timestamp, nil
	b.id.Store(nil)
	if len(p.Proposer) == 1 {
		proposer := p.Proposer[0]
		b.proposer = &proposer
	}
	return nil
}

func (b *Block) String() string {
	proposer := "protocol"
	if id, ok := b.Proposer(); ok {
		proposer = fmt.Sprintf("%d", id)
	}
	return fmt.Sprintf(`Block(%v):
	Slot:       %v
	Timestamp:  %v
	Proposer:   %v`, b.ID().AbbrevString(), b.slot, b.timestamp, proposer)
}
