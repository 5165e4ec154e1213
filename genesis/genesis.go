// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package genesis describes and builds the initial consensus state.
package genesis

import (
	"cmp"
	"os"
	"slices"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/vechain/eternix/eternix"
	"github.com/vechain/eternix/state"
)

// ErrInvalidGenesis is wrapped by every validation failure of a genesis description.
var ErrInvalidGenesis = errors.New("invalid genesis")

// Genesis is the user-facing description of an initial state.
type Genesis struct {
	Name       string          `yaml:"name"`
	Seed       eternix.Bytes32 `yaml:"seed"`
	Config     *eternix.Config `yaml:"config"` // overrides on top of the defaults
	Buckets    []Bucket        `yaml:"buckets"`
	Validators []Validator     `yaml:"validators"`
}

// Bucket declares one bucket.
type Bucket struct {
	ID       uint64 `yaml:"id"`
	Category string `yaml:"category"` // active, muted or dead
}

// Validator declares one validator and its tickets.
type Validator struct {
	ID      uint64  `yaml:"id"`
	Vault   *Amount `yaml:"vault"`
	Bond    *Amount `yaml:"bond"`    // defaults to the vault
	Tickets uint64  `yaml:"tickets"` // count
	Bucket  *uint64 `yaml:"bucket"`  // active bucket for the tickets, round robin if unset
}

// Parse decodes a yaml genesis description.
func Parse(data []byte) (*Genesis, error) {
	var gen Genesis
	if err := yaml.Unmarshal(data, &gen); err != nil {
		return nil, errors.Wrap(err, "decode genesis")
	}
	return &gen, nil
}

// LoadFile reads and decodes a yaml genesis file.
func LoadFile(path string) (*Genesis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read genesis file")
	}
	return Parse(data)
}

// Marshal encodes the description as yaml.
func (g *Genesis) Marshal() ([]byte, error) {
	return yaml.Marshal(g)
}

func invalid(format string, args ...any) error {
	return errors.Wrapf(ErrInvalidGenesis, format, args...)
}

func parseCategory(s string) (state.Category, bool) {
	switch s {
	case "active":
		return state.CategoryActive, true
	case "muted":
		return state.CategoryMuted, true
	case "dead":
		return state.CategoryDead, true
	}
	return 0, false
}

// Build validates the description and creates the initial state with its config.
// Ticket ids are assigned from 1 by ascending validator id.
func (g *Genesis) Build() (*state.State, eternix.Config, error) {
	cfg := eternix.DefaultConfig()
	if g.Config != nil {
		cfg = cfg.Merge(*g.Config)
	}
	if err := cfg.Validate(); err != nil {
		return nil, eternix.Config{}, invalid("config: %v", err)
	}

	st := state.New(g.Seed, cfg.RetirePerEpochLimit)

	var dead, muted int
	for _, b := range g.Buckets {
		c, ok := parseCategory(b.Category)
		if !ok {
			return nil, eternix.Config{}, invalid("bucket %d: unknown category %q", b.ID, b.Category)
		}
		switch c {
		case state.CategoryDead:
			dead++
		case state.CategoryMuted:
			muted++
		}
		if err := st.AddBucket(b.ID, c); err != nil {
			return nil, eternix.Config{}, invalid("%v", err)
		}
	}
	if dead != 1 {
		return nil, eternix.Config{}, invalid("want exactly one dead bucket, got %d", dead)
	}
	if muted == 0 {
		return nil, eternix.Config{}, invalid("no muted bucket")
	}
	active := st.ActiveBuckets()

	validators := slices.Clone(g.Validators)
	slices.SortFunc(validators, func(a, b Validator) int { return cmp.Compare(a.ID, b.ID) })

	var (
		ticketID uint64 = 1
		next     int
	)
	for _, vg := range validators {
		if vg.Vault == nil {
			return nil, eternix.Config{}, invalid("validator %d: no vault", vg.ID)
		}
		bond := vg.Bond
		if bond == nil {
			bond = vg.Vault
		}
		v, err := state.NewValidator(vg.ID, vg.Vault.Int(), bond.Int())
		if err != nil {
			return nil, eternix.Config{}, invalid("%v", err)
		}
		if err := st.AddValidator(v); err != nil {
			return nil, eternix.Config{}, invalid("%v", err)
		}
		if vg.Tickets > 0 && len(active) == 0 && vg.Bucket == nil {
			return nil, eternix.Config{}, invalid("validator %d: no active bucket for tickets", vg.ID)
		}
		for range vg.Tickets {
			var bucket uint64
			if vg.Bucket != nil {
				if !st.IsActiveBucket(*vg.Bucket) {
					return nil, eternix.Config{}, invalid("validator %d: bucket %d is not active", vg.ID, *vg.Bucket)
				}
				bucket = *vg.Bucket
			} else {
				bucket = active[next%len(active)]
				next++
			}
			if _, err := st.AddTicket(ticketID, vg.ID, bucket, 0); err != nil {
				return nil, eternix.Config{}, invalid("%v", err)
			}
			ticketID++
		}
	}

	if err := st.CheckInvariants(); err != nil {
		return nil, eternix.Config{}, invalid("%v", err)
	}
	return st, cfg, nil
}
