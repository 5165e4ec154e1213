// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// eternix runs the ticket sortition consensus simulator.
package main

import (
	"fmt"
	"os"

	cli "gopkg.in/urfave/cli.v1"
)

var (
	version   string
	gitCommit string
	gitTag    string
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

var runFlags = []cli.Flag{
	genesisFlag,
	slotsFlag,
	dataDirFlag,
	verbosityFlag,
	jsonLogsFlag,
	enableMetricsFlag,
	metricsAddrFlag,
	apiAddrFlag,
	apiCorsFlag,
	enableAPILogsFlag,
	silentFlag,
	doubleSignerFlag,
	progressFlag,
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "Eternix",
		Usage:     "Ticket sortition proof-of-stake consensus simulator",
		Copyright: "2026 VeChain Foundation <https://vechain.org/>",
		Flags:     runFlags,
		Action:    runAction,
		Commands: []cli.Command{
			{
				Name:   "run",
				Usage:  "simulate slots and epochs",
				Flags:  runFlags,
				Action: runAction,
			},
			{
				Name:  "schedule",
				Usage: "preview the slot leaders of the genesis state",
				Flags: []cli.Flag{
					genesisFlag,
					verbosityFlag,
					jsonLogsFlag,
					fromFlag,
					countFlag,
				},
				Action: scheduleAction,
			},
			{
				Name:  "dump",
				Usage: "simulate --slots slots and dump the final state",
				Flags: []cli.Flag{
					genesisFlag,
					slotsFlag,
					verbosityFlag,
					jsonLogsFlag,
					silentFlag,
					doubleSignerFlag,
				},
				Action: dumpAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
