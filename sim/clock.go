// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package sim

// SimClock is the deterministic simulation clock. It never reads wall time.
type SimClock struct {
	Slot      uint64 `json:"slot"`      // index of the next slot to process
	SlotStart uint64 `json:"slotStart"` // ms
	duration  uint64
}

// NewClock starts at slot 0 at genesisTime (ms).
func NewClock(genesisTime, slotDuration uint64) SimClock {
	return SimClock{SlotStart: genesisTime, duration: slotDuration}
}

// Advance moves to the next slot.
func (c *SimClock) Advance() {
	c.Slot++
	c.SlotStart += c.duration
}
