// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/eternix/log"
)

var (
	genesisFlag = cli.StringFlag{
		Name:  "genesis",
		Usage: "path to a genesis file (devnet if unset)",
	}
	slotsFlag = cli.Uint64Flag{
		Name:  "slots",
		Value: 100,
		Usage: "number of slots to simulate (0 runs until interrupted)",
	}
	dataDirFlag = cli.StringFlag{
		Name:  "data-dir",
		Usage: "directory for the block database (in memory if unset)",
	}
	verbosityFlag = cli.Uint64Flag{
		Name:  "verbosity",
		Value: log.LegacyLevelInfo,
		Usage: "log verbosity (0-9)",
	}
	jsonLogsFlag = cli.BoolFlag{
		Name:  "json-logs",
		Usage: "output logs in JSON format",
	}
	enableMetricsFlag = cli.BoolFlag{
		Name:  "enable-metrics",
		Usage: "enables metrics collection",
	}
	metricsAddrFlag = cli.StringFlag{
		Name:  "metrics-addr",
		Value: "localhost:2112",
		Usage: "metrics service listening address",
	}
	apiAddrFlag = cli.StringFlag{
		Name:  "api-addr",
		Usage: "API service listening address (disabled if unset)",
	}
	apiCorsFlag = cli.StringFlag{
		Name:  "api-cors",
		Usage: "comma separated list of domains from which to accept cross origin requests to API",
	}
	enableAPILogsFlag = cli.BoolFlag{
		Name:  "enable-api-logs",
		Usage: "enables API requests logging",
	}
	silentFlag = cli.StringFlag{
		Name:  "silent",
		Usage: "comma separated ids of validators that never propose",
	}
	doubleSignerFlag = cli.StringFlag{
		Name:  "double-signer",
		Usage: "comma separated ids of validators that propose two blocks when leading",
	}
	progressFlag = cli.BoolFlag{
		Name:  "progress",
		Usage: "show a progress bar (requires --slots)",
	}
	fromFlag = cli.Uint64Flag{
		Name:  "from",
		Usage: "first slot of the leader preview",
	}
	countFlag = cli.Uint64Flag{
		Name:  "count",
		Value: 20,
		Usage: "number of slots in the leader preview",
	}
)
