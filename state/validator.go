// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/holiman/uint256"
)

// MaxVaultBits bounds vault and bond values to unsigned 128-bit integers.
const MaxVaultBits = 128

// Validator is a staking participant.
type Validator struct {
	ID                 uint64
	MissCounter        uint32
	DoubleSignOffenses uint8   // never reset
	CooldownUntil      *uint64 // set only while cooling down

	status      Status
	vault       *uint256.Int
	initialBond *uint256.Int
}

// NewValidator creates an Active validator. vault and bond must fit in 128 bits.
func NewValidator(id uint64, vault, bond *uint256.Int) (*Validator, error) {
	if vault.BitLen() > MaxVaultBits || bond.BitLen() > MaxVaultBits {
		return nil, invariantf("validator %d: vault or bond exceeds %d bits", id, MaxVaultBits)
	}
	return &Validator{
		ID:          id,
		status:      StatusActive,
		vault:       new(uint256.Int).Set(vault),
		initialBond: new(uint256.Int).Set(bond),
	}, nil
}

// Status returns the lifecycle status.
func (v *Validator) Status() Status { return v.status }

// SetStatus updates the status. Jailed is terminal.
func (v *Validator) SetStatus(s Status) error {
	if v.status == StatusJailed && s != StatusJailed {
		return invariantf("validator %d is jailed, can't become %v", v.ID, s)
	}
	v.status = s
	return nil
}

// Vault returns a copy of the vault balance.
func (v *Validator) Vault() *uint256.Int { return new(uint256.Int).Set(v.vault) }

// SetVault replaces the vault balance.
func (v *Validator) SetVault(amount *uint256.Int) error {
	if amount.BitLen() > MaxVaultBits {
		return invariantf("validator %d: vault exceeds %d bits", v.ID, MaxVaultBits)
	}
	v.vault.Set(amount)
	return nil
}

// InitialBond returns a copy of the bond fixed at creation.
func (v *Validator) InitialBond() *uint256.Int { return new(uint256.Int).Set(v.initialBond) }
