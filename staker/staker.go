// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package staker applies punishments and recoveries to validators.
package staker

import (
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/vechain/eternix/eternix"
	"github.com/vechain/eternix/log"
	"github.com/vechain/eternix/state"
)

var logger = log.WithContext("pkg", "staker")

// ErrVaultOverflow is returned when a refill would exceed the 128-bit vault bound.
// The state is left unchanged.
var ErrVaultOverflow = errors.New("vault overflow")

var (
	hundred  = uint256.NewInt(100)
	maxVault = new(uint256.Int).Sub(new(uint256.Int).Lsh(uint256.NewInt(1), state.MaxVaultBits), uint256.NewInt(1))
)

// Staker holds the punishment parameters.
type Staker struct {
	cfg    eternix.Config
	policy BondPolicy
}

// New creates a staker. A nil policy means InitialBond.
func New(cfg eternix.Config, policy BondPolicy) *Staker {
	if policy == nil {
		policy = InitialBond{}
	}
	return &Staker{cfg: cfg.Clone(), policy: policy}
}

// Policy returns the bond policy in use.
func (s *Staker) Policy() BondPolicy { return s.policy }

func percentOf(v *uint256.Int, pct uint64) *uint256.Int {
	out := new(uint256.Int).Mul(v, uint256.NewInt(pct))
	return out.Div(out, hundred)
}

// cooldown puts v in PunishedCooldown until epoch+epochs and mutes its tickets.
func cooldown(st *state.State, v *state.Validator, epochs uint64) error {
	if err := v.SetStatus(state.StatusPunishedCooldown); err != nil {
		return err
	}
	until := st.Epoch() + epochs
	v.CooldownUntil = &until

	muted, err := st.AnyMutedBucket()
	if err != nil {
		return err
	}
	return st.MoveAllValidatorTickets(v.ID, muted)
}

// ApplyLivenessSlash burns the liveness share of the vault (floor) and starts a cooldown.
func (s *Staker) ApplyLivenessSlash(st *state.State, id uint64) error {
	v, err := st.MustValidator(id)
	if err != nil {
		return err
	}
	vault := v.Vault()
	slashed := percentOf(vault, s.cfg.LivenessSlashPercent)
	if err := v.SetVault(vault.Sub(vault, slashed)); err != nil {
		return err
	}
	if err := cooldown(st, v, s.cfg.LivenessCooldown); err != nil {
		return err
	}
	metricSlashCount().AddWithLabel(1, map[string]string{"kind": "liveness"})
	logger.Info("liveness slash",
		"validator", id,
		"slashed", slashed,
		"vault", v.Vault(),
		"cooldownUntil", *v.CooldownUntil,
	)
	return nil
}

// ApplyDoubleSign walks the offense ladder. Offenses past the ladder burn the whole vault and jail.
func (s *Staker) ApplyDoubleSign(st *state.State, id uint64) error {
	v, err := st.MustValidator(id)
	if err != nil {
		return err
	}
	if v.DoubleSignOffenses < ^uint8(0) {
		v.DoubleSignOffenses++
	}
	offense := int(v.DoubleSignOffenses)

	if offense > len(s.cfg.DoubleSignLadder) {
		if err := v.SetVault(new(uint256.Int)); err != nil {
			return err
		}
		metricSlashCount().AddWithLabel(1, map[string]string{"kind": "double_sign"})
		logger.Warn("double sign, vault burnt", "validator", id, "offense", offense)
		return s.Jail(st, id)
	}

	step := s.cfg.DoubleSignLadder[offense-1]
	retained := percentOf(v.Vault(), 100-step.SlashPercent)
	if err := v.SetVault(retained); err != nil {
		return err
	}
	if err := cooldown(st, v, step.CooldownEpochs); err != nil {
		return err
	}
	metricSlashCount().AddWithLabel(1, map[string]string{"kind": "double_sign"})
	logger.Warn("double sign slash",
		"validator", id,
		"offense", offense,
		"slashPercent", step.SlashPercent,
		"vault", v.Vault(),
		"cooldownUntil", *v.CooldownUntil,
	)
	return nil
}

// Jail makes a validator permanently unselectable: status Jailed, cooldown cleared and every
// live ticket killed into the dead bucket. The vault is not touched. Tickets still pending in
// the retirement schedules are skipped when their epoch comes.
func (s *Staker) Jail(st *state.State, id uint64) error {
	v, err := st.MustValidator(id)
	if err != nil {
		return err
	}
	if err := v.SetStatus(state.StatusJailed); err != nil {
		return err
	}
	v.CooldownUntil = nil

	dead, err := st.DeadBucket()
	if err != nil {
		return err
	}
	killed := 0
	for _, tid := range st.TicketsOf(id) {
		t, err := st.MustTicket(tid)
		if err != nil {
			return err
		}
		if t.Status() == state.TicketDead {
			continue
		}
		if err := t.SetStatus(state.TicketDead); err != nil {
			return err
		}
		if err := st.MoveTicket(tid, t.Bucket(), dead); err != nil {
			return err
		}
		killed++
	}
	metricSlashCount().AddWithLabel(1, map[string]string{"kind": "jail"})
	logger.Warn("validator jailed", "validator", id, "killedTickets", killed)
	return nil
}

// OnVaultRefill tops up a vault. A paused validator meeting the bond rejoins immediately.
func (s *Staker) OnVaultRefill(st *state.State, id uint64, amount *uint256.Int) error {
	v, err := st.MustValidator(id)
	if err != nil {
		return err
	}
	vault, overflow := new(uint256.Int).AddOverflow(v.Vault(), amount)
	if overflow || vault.Gt(maxVault) {
		return errors.Wrapf(ErrVaultOverflow, "validator %d refill %v", id, amount)
	}
	if err := v.SetVault(vault); err != nil {
		return err
	}
	logger.Debug("vault refilled", "validator", id, "amount", amount, "vault", vault)

	if v.Status() != state.StatusPausedLowVault || !s.policy.Satisfied(v) {
		return nil
	}
	active, err := st.AnyActiveBucket()
	if err != nil {
		return err
	}
	if err := v.SetStatus(state.StatusActive); err != nil {
		return err
	}
	if err := st.MoveAllValidatorTickets(id, active); err != nil {
		return err
	}
	logger.Info("validator rejoined", "validator", id, "vault", vault)
	return nil
}

// ResolveCooldown ends an expired cooldown. The validator becomes Active when the bond policy
// holds, PausedLowVault otherwise, and its tickets follow. It reports whether anything changed.
func (s *Staker) ResolveCooldown(st *state.State, id uint64) (bool, error) {
	v, err := st.MustValidator(id)
	if err != nil {
		return false, err
	}
	if v.Status() != state.StatusPunishedCooldown || v.CooldownUntil == nil || *v.CooldownUntil > st.Epoch() {
		return false, nil
	}
	v.CooldownUntil = nil

	var (
		status = state.StatusPausedLowVault
		target uint64
	)
	if s.policy.Satisfied(v) {
		status = state.StatusActive
		target, err = st.AnyActiveBucket()
	} else {
		target, err = st.AnyMutedBucket()
	}
	if err != nil {
		return false, err
	}
	if err := v.SetStatus(status); err != nil {
		return false, err
	}
	if err := st.MoveAllValidatorTickets(id, target); err != nil {
		return false, err
	}
	logger.Info("cooldown resolved", "validator", id, "status", status, "epoch", st.Epoch())
	return true, nil
}
