// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"bytes"

	"github.com/vechain/eternix/eternix"
)

// DevnetStake is the vault and bond of each devnet validator.
const DevnetStake = 1_000_000

// NewDevnet describes the two validator network used for local runs: one ticket each in
// active bucket 0, muted bucket 1 and dead bucket 2.
func NewDevnet() *Genesis {
	var seed eternix.Bytes32
	copy(seed[:], bytes.Repeat([]byte{7}, len(seed)))

	return &Genesis{
		Name: "devnet",
		Seed: seed,
		Buckets: []Bucket{
			{ID: 0, Category: "active"},
			{ID: 1, Category: "muted"},
			{ID: 2, Category: "dead"},
		},
		Validators: []Validator{
			{ID: 1, Vault: NewAmount(DevnetStake), Bond: NewAmount(DevnetStake), Tickets: 1},
			{ID: 2, Vault: NewAmount(DevnetStake), Bond: NewAmount(DevnetStake), Tickets: 1},
		},
	}
}
