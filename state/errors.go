// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/pkg/errors"
)

// ErrInvariant marks a broken precondition of the consensus state. It is fatal: the caller
// built an inconsistent state and must halt instead of retrying.
var ErrInvariant = errors.New("state invariant violated")

func invariantf(format string, args ...any) error {
	return errors.Wrapf(ErrInvariant, format, args...)
}
