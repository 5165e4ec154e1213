// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import (
	"github.com/vechain/eternix/metrics"
)

var metricSlashCount = metrics.LazyLoadCounterVec("consensus_slash_count", []string{"kind"})
