// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"fmt"
)

// Status is the lifecycle status of a validator.
type Status uint8

const (
	StatusActive Status = iota
	StatusPausedLowVault
	StatusPunishedCooldown
	StatusInactive
	StatusJailed // terminal
)

var statusNames = [...]string{
	StatusActive:           "active",
	StatusPausedLowVault:   "paused_low_vault",
	StatusPunishedCooldown: "punished_cooldown",
	StatusInactive:         "inactive",
	StatusJailed:           "jailed",
}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return fmt.Sprintf("status(%d)", uint8(s))
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	for i := range statusNames {
		if statusNames[i] == string(text) {
			*s = Status(i)
			return nil
		}
	}
	return fmt.Errorf("unknown validator status %q", text)
}

// TicketStatus is the lifecycle status of a ticket. It only moves forward:
// Active -> Retiring -> Dead, or Active -> Dead.
type TicketStatus uint8

const (
	TicketActive TicketStatus = iota
	TicketRetiring
	TicketDead
)

func (s TicketStatus) String() string {
	switch s {
	case TicketActive:
		return "active"
	case TicketRetiring:
		return "retiring"
	case TicketDead:
		return "dead"
	}
	return fmt.Sprintf("ticket_status(%d)", uint8(s))
}

func (s TicketStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *TicketStatus) UnmarshalText(text []byte) error {
	for _, v := range []TicketStatus{TicketActive, TicketRetiring, TicketDead} {
		if v.String() == string(text) {
			*s = v
			return nil
		}
	}
	return fmt.Errorf("unknown ticket status %q", text)
}

// Category classifies buckets for sortition eligibility.
type Category uint8

const (
	CategoryActive Category = iota + 1
	CategoryMuted
	CategoryDead
)

func (c Category) String() string {
	switch c {
	case CategoryActive:
		return "active"
	case CategoryMuted:
		return "muted"
	case CategoryDead:
		return "dead"
	}
	return fmt.Sprintf("category(%d)", uint8(c))
}

func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Category) UnmarshalText(text []byte) error {
	for _, v := range []Category{CategoryActive, CategoryMuted, CategoryDead} {
		if v.String() == string(text) {
			*c = v
			return nil
		}
	}
	return fmt.Errorf("unknown bucket category %q", text)
}
