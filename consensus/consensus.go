// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package consensus drives the state machine slot by slot and across epoch boundaries.
package consensus

import (
	"github.com/pkg/errors"

	"github.com/vechain/eternix/eternix"
	"github.com/vechain/eternix/log"
	"github.com/vechain/eternix/staker"
)

var logger = log.WithContext("pkg", "consensus")

// Engine processes slots and epoch transitions over a state owned by the caller.
// It keeps no state of its own besides its parameters.
type Engine struct {
	cfg    eternix.Config
	staker *staker.Staker
}

// New creates an engine. A nil policy means staker.InitialBond.
func New(cfg eternix.Config, policy staker.BondPolicy) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "consensus config")
	}
	cfg = cfg.Clone()
	return &Engine{cfg: cfg, staker: staker.New(cfg, policy)}, nil
}

// Config returns a copy of the parameters.
func (e *Engine) Config() eternix.Config { return e.cfg.Clone() }

// Staker returns the punishment and recovery rules used by the engine.
func (e *Engine) Staker() *staker.Staker { return e.staker }

// shouldLivenessSlash reports whether a miss counter moving from prev to now crosses a
// slash threshold: the first one, then every repeat interval after it.
func (e *Engine) shouldLivenessSlash(prev, now uint32) bool {
	if now <= prev {
		return false
	}
	first, interval := e.cfg.LivenessFirstThreshold, e.cfg.LivenessRepeatInterval
	if now == first {
		return true
	}
	return now > first && (now-first)%interval == 0
}
