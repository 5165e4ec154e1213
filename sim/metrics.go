// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package sim

import "github.com/vechain/eternix/metrics"

var metricSlotDuration = metrics.LazyLoadHistogram("sim_slot_duration_ms", metrics.BucketSlotMillis)
