// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package validators

import (
	"github.com/vechain/eternix/state"
)

type Validator struct {
	ID                 uint64       `json:"id"`
	Status             state.Status `json:"status"`
	Vault              string       `json:"vault"`
	InitialBond        string       `json:"initialBond"`
	MissCounter        uint32       `json:"missCounter"`
	DoubleSignOffenses uint8        `json:"doubleSignOffenses"`
	CooldownUntil      *uint64      `json:"cooldownUntil"`
	Tickets            []uint64     `json:"tickets"`
}

func convertValidator(st *state.State, v *state.Validator) *Validator {
	var cooldown *uint64
	if v.CooldownUntil != nil {
		until := *v.CooldownUntil
		cooldown = &until
	}
	tickets := st.TicketsOf(v.ID)
	if tickets == nil {
		tickets = []uint64{}
	}
	return &Validator{
		ID:                 v.ID,
		Status:             v.Status(),
		Vault:              v.Vault().Dec(),
		InitialBond:        v.InitialBond().Dec(),
		MissCounter:        v.MissCounter,
		DoubleSignOffenses: v.DoubleSignOffenses,
		CooldownUntil:      cooldown,
		Tickets:            tickets,
	}
}
