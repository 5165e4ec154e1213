// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package block

import "fmt"

// Proposal is a block proposal submitted by a validator for one slot.
// Several proposals per slot are accepted; conflicting ones from the leader are double-signs.
type Proposal struct {
	Proposer uint64 `json:"proposer" yaml:"proposer"`
	BlockID  uint64 `json:"blockId" yaml:"blockId"`
}

func (p Proposal) String() string {
	return fmt.Sprintf("Proposal(%d by %d)", p.BlockID, p.Proposer)
}
