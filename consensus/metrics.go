// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package consensus

import "github.com/vechain/eternix/metrics"

var (
	metricSlotsCount = metrics.LazyLoadCounterVec("consensus_slots_count", []string{"type"})
	metricEpochGauge = metrics.LazyLoadGauge("consensus_epoch_gauge")
)
