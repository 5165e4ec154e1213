// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package blocks

import (
	"github.com/vechain/eternix/block"
	"github.com/vechain/eternix/eternix"
)

type JSONBlock struct {
	ID        eternix.Bytes32 `json:"id"`
	Slot      uint64          `json:"slot"`
	Timestamp uint64          `json:"timestamp"`
	Proposer  *uint64         `json:"proposer"`
	Protocol  bool            `json:"protocol"`
}

func convertBlock(b *block.Block) *JSONBlock {
	jb := &JSONBlock{
		ID:        b.ID(),
		Slot:      b.Slot(),
		Timestamp: b.Timestamp(),
		Protocol:  b.IsProtocol(),
	}
	if p, ok := b.Proposer(); ok {
		jb.Proposer = &p
	}
	return jb
}
