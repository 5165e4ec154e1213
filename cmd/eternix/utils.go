// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"io"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/eternix/genesis"
	"github.com/vechain/eternix/kv"
	"github.com/vechain/eternix/log"
	"github.com/vechain/eternix/lvldb"
	"github.com/vechain/eternix/sim"
)

func initLogger(w io.Writer, lvl int, jsonLogs bool) *slog.LevelVar {
	logLevel := log.FromLegacyLevel(lvl)
	output := io.Writer(os.Stdout)
	if w != nil {
		output = w
	}
	var level slog.LevelVar
	level.Set(logLevel)

	var handler slog.Handler
	if jsonLogs {
		handler = log.JSONHandlerWithLevel(output, &level)
	} else {
		useColor := false
		if f, ok := output.(*os.File); ok {
			useColor = (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) && os.Getenv("TERM") != "dumb"
		}
		handler = log.NewTerminalHandlerWithLevel(output, &level, useColor)
	}
	log.SetDefault(log.NewLogger(handler))
	return &level
}

func readIntFromUInt64Flag(val uint64) (int, error) {
	if val > math.MaxInt {
		return 0, errors.Errorf("flag value %d overflows int", val)
	}
	return int(val), nil
}

func setupLogger(ctx *cli.Context) error {
	lvl, err := readIntFromUInt64Flag(ctx.Uint64(verbosityFlag.Name))
	if err != nil {
		return errors.Wrap(err, "parse verbosity flag")
	}
	initLogger(os.Stderr, lvl, ctx.Bool(jsonLogsFlag.Name))
	return nil
}

func handleExitSignal() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		exitSignalCh := make(chan os.Signal, 1)
		signal.Notify(exitSignalCh, os.Interrupt, syscall.SIGTERM)

		if sig := <-exitSignalCh; sig != nil {
			log.Info("exit signal received", "signal", sig)
			cancel()
		}
	}()
	return ctx
}

func loadGenesis(ctx *cli.Context) (*genesis.Genesis, error) {
	path := ctx.String(genesisFlag.Name)
	if path == "" {
		return genesis.NewDevnet(), nil
	}
	return genesis.LoadFile(path)
}

// openDB opens the block database under --data-dir, or an in-memory one.
func openDB(ctx *cli.Context, name string) (kv.StoreCloser, string, error) {
	dir := ctx.String(dataDirFlag.Name)
	if dir == "" {
		db, err := lvldb.NewMem()
		if err != nil {
			return nil, "", err
		}
		return db, "memory", nil
	}
	dir = filepath.Join(dir, name)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, "", errors.Wrapf(err, "create data dir [%v]", dir)
	}
	path := filepath.Join(dir, "blocks.db")
	db, err := lvldb.New(path, lvldb.Options{})
	if err != nil {
		return nil, "", errors.Wrapf(err, "open block database [%v]", path)
	}
	return db, path, nil
}

// parseIDs parses a comma separated list of validator ids.
func parseIDs(s string) ([]uint64, error) {
	var ids []uint64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "validator id %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// newBehaviors assigns the behavior flags to validators. Unknown validators and validators named
// twice are rejected.
func newBehaviors(ctx *cli.Context, validators []uint64) (*sim.Behaviors, error) {
	known := make(map[uint64]bool, len(validators))
	for _, id := range validators {
		known[id] = true
	}
	b := &sim.Behaviors{Validators: validators, ByID: make(map[uint64]sim.Behavior)}
	for _, f := range []struct {
		flag     cli.StringFlag
		behavior sim.Behavior
	}{
		{silentFlag, sim.Silent},
		{doubleSignerFlag, sim.DoubleSigner},
	} {
		ids, err := parseIDs(ctx.String(f.flag.Name))
		if err != nil {
			return nil, errors.Wrap(err, "--"+f.flag.Name)
		}
		for _, id := range ids {
			if !known[id] {
				return nil, errors.Errorf("--%s: unknown validator %d", f.flag.Name, id)
			}
			if _, ok := b.ByID[id]; ok {
				return nil, errors.Errorf("--%s: validator %d already has a behavior", f.flag.Name, id)
			}
			b.ByID[id] = f.behavior
		}
	}
	return b, nil
}
