// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eternix

import (
	"fmt"

	"github.com/pkg/errors"
)

// DoubleSignStep is one rung of the double-sign punishment ladder.
type DoubleSignStep struct {
	SlashPercent   uint64 `json:"slashPercent" yaml:"slashPercent"`     // share of the vault removed, the rest is retained (floor)
	CooldownEpochs uint64 `json:"cooldownEpochs" yaml:"cooldownEpochs"` // epochs from the offense until re-evaluation
}

// Config is the simulation parameters of the consensus core. The values are fixed once an engine is
// constructed; tests and custom genesis files override individual fields.
type Config struct {
	SlotDuration        uint64 `json:"slotDuration" yaml:"slotDuration"`               // milliseconds per slot
	EpochLength         uint64 `json:"epochLength" yaml:"epochLength"`                 // slots per epoch
	RetireDelay         uint64 `json:"retireDelay" yaml:"retireDelay"`                 // epochs between Retiring and Dead
	RetirePerEpochLimit uint64 `json:"retirePerEpochLimit" yaml:"retirePerEpochLimit"` // tickets of one validator that may begin retiring per epoch

	LivenessSlashPercent   uint64 `json:"livenessSlashPercent" yaml:"livenessSlashPercent"`
	LivenessCooldown       uint64 `json:"livenessCooldown" yaml:"livenessCooldown"`             // epochs
	LivenessFirstThreshold uint32 `json:"livenessFirstThreshold" yaml:"livenessFirstThreshold"` // misses before the first slash
	LivenessRepeatInterval uint32 `json:"livenessRepeatInterval" yaml:"livenessRepeatInterval"` // misses between later slashes

	// DoubleSignLadder is indexed by offense number minus one. An offense beyond the ladder jails the validator.
	DoubleSignLadder []DoubleSignStep `json:"doubleSignLadder" yaml:"doubleSignLadder"`
}

// DefaultConfig returns the documented default parameters.
func DefaultConfig() Config {
	return Config{
		SlotDuration:           3000,
		EpochLength:            10,
		RetireDelay:            2,
		RetirePerEpochLimit:    2,
		LivenessSlashPercent:   5,
		LivenessCooldown:       2,
		LivenessFirstThreshold: 5,
		LivenessRepeatInterval: 100,
		DoubleSignLadder: []DoubleSignStep{
			{SlashPercent: 50, CooldownEpochs: 3},
			{SlashPercent: 75, CooldownEpochs: 6},
		},
	}
}

// Validate checks the config for values the consensus core cannot work with.
func (c *Config) Validate() error {
	if c.SlotDuration == 0 {
		return errors.New("slot duration must not be 0")
	}
	if c.EpochLength == 0 {
		return errors.New("epoch length must not be 0")
	}
	if c.RetireDelay == 0 {
		return errors.New("retire delay must not be 0")
	}
	if c.RetirePerEpochLimit == 0 {
		return errors.New("retire per epoch limit must not be 0")
	}
	if c.LivenessSlashPercent > 100 {
		return fmt.Errorf("liveness slash percent %d exceeds 100", c.LivenessSlashPercent)
	}
	if c.LivenessFirstThreshold == 0 {
		return errors.New("liveness threshold must not be 0")
	}
	if c.LivenessRepeatInterval == 0 {
		return errors.New("liveness repeat interval must not be 0")
	}
	for i, step := range c.DoubleSignLadder {
		if step.SlashPercent > 100 {
			return fmt.Errorf("double sign step %d: slash percent %d exceeds 100", i+1, step.SlashPercent)
		}
	}
	return nil
}

// Clone returns a deep copy so the ladder can't be mutated through a shared slice.
func (c Config) Clone() Config {
	c.DoubleSignLadder = append([]DoubleSignStep(nil), c.DoubleSignLadder...)
	return c
}

// Merge overrides every non-zero field of o into c.
func (c Config) Merge(o Config) Config {
	if o.SlotDuration != 0 {
		c.SlotDuration = o.SlotDuration
	}
	if o.EpochLength != 0 {
		c.EpochLength = o.EpochLength
	}
	if o.RetireDelay != 0 {
		c.RetireDelay = o.RetireDelay
	}
	if o.RetirePerEpochLimit != 0 {
		c.RetirePerEpochLimit = o.RetirePerEpochLimit
	}
	if o.LivenessSlashPercent != 0 {
		c.LivenessSlashPercent = o.LivenessSlashPercent
	}
	if o.LivenessCooldown != 0 {
		c.LivenessCooldown = o.LivenessCooldown
	}
	if o.LivenessFirstThreshold != 0 {
		c.LivenessFirstThreshold = o.LivenessFirstThreshold
	}
	if o.LivenessRepeatInterval != 0 {
		c.LivenessRepeatInterval = o.LivenessRepeatInterval
	}
	if len(o.DoubleSignLadder) != 0 {
		c.DoubleSignLadder = o.DoubleSignLadder
	}
	return c.Clone()
}
