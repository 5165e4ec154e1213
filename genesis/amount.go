// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"strings"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// Amount is a stake amount written as decimal or 0x-prefixed hex.
type Amount uint256.Int

// NewAmount wraps a uint64.
func NewAmount(v uint64) *Amount {
	return (*Amount)(uint256.NewInt(v))
}

// Int returns a copy as uint256.
func (a *Amount) Int() *uint256.Int {
	if a == nil {
		return new(uint256.Int)
	}
	return new(uint256.Int).Set((*uint256.Int)(a))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Amount) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	var (
		v   uint256.Int
		err error
	)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		err = v.SetFromHex(s)
	} else {
		err = v.SetFromDecimal(s)
	}
	if err != nil {
		return errors.Wrapf(err, "invalid amount %q", s)
	}
	*a = Amount(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (a *Amount) MarshalText() ([]byte, error) {
	return []byte(a.Int().Dec()), nil
}
