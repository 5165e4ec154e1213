// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import (
	"github.com/vechain/eternix/state"
)

// BondPolicy decides whether a validator holds enough stake to be eligible.
type BondPolicy interface {
	Satisfied(v *state.Validator) bool
}

// InitialBond requires the vault to meet or exceed the bond fixed at creation.
type InitialBond struct{}

func (InitialBond) Satisfied(v *state.Validator) bool {
	return v.Vault().Cmp(v.InitialBond()) >= 0
}

// BondPolicyFunc adapts a function to BondPolicy.
type BondPolicyFunc func(v *state.Validator) bool

func (f BondPolicyFunc) Satisfied(v *state.Validator) bool { return f(v) }
