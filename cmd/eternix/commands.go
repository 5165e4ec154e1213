// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"text/tabwriter"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"gopkg.in/cheggaaa/pb.v1"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/eternix/api"
	"github.com/vechain/eternix/chain"
	"github.com/vechain/eternix/cmd/eternix/httpserver"
	"github.com/vechain/eternix/co"
	"github.com/vechain/eternix/consensus"
	"github.com/vechain/eternix/genesis"
	"github.com/vechain/eternix/kv"
	"github.com/vechain/eternix/log"
	"github.com/vechain/eternix/metrics"
	"github.com/vechain/eternix/sim"
	"github.com/vechain/eternix/sortition"
	"github.com/vechain/eternix/state"
)

// instance is a simulator wired to its genesis, engine and block store.
type instance struct {
	gene *genesis.Genesis
	sim  *sim.Simulator
	repo *chain.Repository
	db   kv.StoreCloser
	path string
}

func newInstance(ctx *cli.Context, persist bool) (*instance, error) {
	gene, err := loadGenesis(ctx)
	if err != nil {
		return nil, err
	}
	st, cfg, err := gene.Build()
	if err != nil {
		return nil, err
	}
	engine, err := consensus.New(cfg, nil)
	if err != nil {
		return nil, err
	}
	source, err := newBehaviors(ctx, st.ValidatorIDs())
	if err != nil {
		return nil, err
	}

	inst := &instance{gene: gene}
	if persist {
		if inst.db, inst.path, err = openDB(ctx, gene.Name); err != nil {
			return nil, err
		}
		if inst.repo, err = chain.NewRepository(inst.db); err != nil {
			inst.db.Close()
			return nil, err
		}
		if _, ok := inst.repo.BestSlot(); ok {
			inst.db.Close()
			return nil, errors.Errorf("block database %v is not empty, the simulation always starts from genesis", inst.path)
		}
		inst.sim = sim.New(engine, st, source, inst.repo, 0)
	} else {
		inst.sim = sim.New(engine, st, source, nil, 0)
	}
	return inst, nil
}

func (i *instance) Close() {
	if i.db != nil {
		log.Info("closing block database...")
		if err := i.db.Close(); err != nil {
			log.Warn("failed to close block database", "err", err)
		}
	}
}

func runAction(ctx *cli.Context) error {
	if err := setupLogger(ctx); err != nil {
		return err
	}
	defer func() { log.Info("exited") }()

	slots := ctx.Uint64(slotsFlag.Name)
	if ctx.Bool(progressFlag.Name) && slots == 0 {
		return errors.New("--progress requires --slots")
	}

	inst, err := newInstance(ctx, true)
	if err != nil {
		return err
	}
	defer inst.Close()

	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
		url, closeFunc, err := httpserver.StartMetricsServer(ctx.String(metricsAddrFlag.Name))
		if err != nil {
			return errors.Wrap(err, "start metrics server")
		}
		defer func() { log.Info("stopping metrics server..."); closeFunc() }()
		log.Info("metrics server started", "url", url)
	}

	if addr := ctx.String(apiAddrFlag.Name); addr != "" {
		handler, closeSubs := api.New(inst.sim, inst.repo, api.Options{
			AllowedOrigins:  ctx.String(apiCorsFlag.Name),
			EnableReqLogger: ctx.Bool(enableAPILogsFlag.Name),
			EnableMetrics:   ctx.Bool(enableMetricsFlag.Name),
		})
		url, closeFunc, err := httpserver.StartAPIServer(addr, handler)
		if err != nil {
			return errors.Wrap(err, "start API server")
		}
		defer func() { log.Info("stopping API server..."); closeSubs(); closeFunc() }()
		log.Info("API server started", "url", url)
	}

	exitCtx := handleExitSignal()
	log.Info("simulation started", "genesis", inst.gene.Name, "slots", slots, "blocks", inst.path)

	runCtx, end := context.WithCancel(exitCtx)
	var (
		goes co.Goes
		bar  *pb.ProgressBar
	)
	if ctx.Bool(progressFlag.Name) {
		bar = pb.New64(int64(slots)).SetMaxWidth(90).Start()
		ticker := inst.repo.NewTicker()
		goes.Go(func() {
			for {
				select {
				case <-runCtx.Done():
					return
				case <-ticker.C():
					if best, ok := inst.repo.BestSlot(); ok {
						bar.Set64(int64(best + 1))
					}
				}
			}
		})
	}

	err = inst.sim.Run(exitCtx, slots)
	end()
	goes.Wait()
	if bar != nil {
		bar.Finish()
	}
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	if err != nil {
		return err
	}

	inst.sim.View(func(st *state.State, clock sim.SimClock) {
		printSummary(os.Stdout, st, clock)
	})

	// keep serving the api after the simulation is over
	if ctx.String(apiAddrFlag.Name) != "" && exitCtx.Err() == nil {
		log.Info("simulation finished, press ctrl-c to exit")
		<-exitCtx.Done()
	}
	return nil
}

func printSummary(w io.Writer, st *state.State, clock sim.SimClock) {
	fmt.Fprintf(w, "slot %d  epoch %d  time %dms\n", clock.Slot, st.Epoch(), clock.SlotStart)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "VALIDATOR\tSTATUS\tVAULT\tMISSES\tDOUBLE SIGNS\tTICKETS")
	for _, id := range st.ValidatorIDs() {
		v, _ := st.Validator(id)
		fmt.Fprintf(tw, "%d\t%v\t%v\t%d\t%d\t%d\n",
			v.ID, v.Status(), v.Vault().Dec(), v.MissCounter, v.DoubleSignOffenses, len(st.TicketsOf(id)))
	}
	tw.Flush()
}

func scheduleAction(ctx *cli.Context) error {
	if err := setupLogger(ctx); err != nil {
		return err
	}
	gene, err := loadGenesis(ctx)
	if err != nil {
		return err
	}
	st, _, err := gene.Build()
	if err != nil {
		return err
	}
	assignments, err := sortition.Schedule(st, ctx.Uint64(fromFlag.Name), ctx.Uint64(countFlag.Name))
	if err != nil {
		return err
	}
	printSchedule(os.Stdout, assignments)
	return nil
}

func printSchedule(w io.Writer, assignments []sortition.Assignment) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SLOT\tBUCKET\tTICKET\tLEADER")
	for _, a := range assignments {
		if a.Protocol {
			fmt.Fprintf(tw, "%d\t-\t-\tprotocol\n", a.Slot)
			continue
		}
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\n", a.Slot, a.Bucket, a.Ticket, a.Leader)
	}
	tw.Flush()
}

// snapshot is the dumpable form of a state.
type snapshot struct {
	Epoch      uint64
	Slot       uint64
	Validators []*state.Validator
	Tickets    []*state.Ticket
	Buckets    []*state.Bucket
	Retiring   []state.ScheduleEntry
	Finalizing []state.ScheduleEntry
}

func dumpAction(ctx *cli.Context) error {
	if err := setupLogger(ctx); err != nil {
		return err
	}
	inst, err := newInstance(ctx, false)
	if err != nil {
		return err
	}
	if slots := ctx.Uint64(slotsFlag.Name); slots > 0 {
		if err := inst.sim.Run(handleExitSignal(), slots); err != nil {
			return err
		}
	}

	var snap snapshot
	inst.sim.View(func(st *state.State, clock sim.SimClock) {
		snap.Epoch, snap.Slot = st.Epoch(), clock.Slot
		for _, id := range st.ValidatorIDs() {
			v, _ := st.Validator(id)
			snap.Validators = append(snap.Validators, v)
		}
		for _, id := range st.TicketIDs() {
			t, _ := st.Ticket(id)
			snap.Tickets = append(snap.Tickets, t)
		}
		for _, id := range st.BucketIDs() {
			b, _ := st.Bucket(id)
			snap.Buckets = append(snap.Buckets, b)
		}
		st.RetireSchedule().Ascend(func(e *state.ScheduleEntry) bool {
			snap.Retiring = append(snap.Retiring, state.ScheduleEntry{Epoch: e.Epoch, Tickets: slices.Clone(e.Tickets)})
			return true
		})
		st.RetireFinalize().Ascend(func(e *state.ScheduleEntry) bool {
			snap.Finalizing = append(snap.Finalizing, state.ScheduleEntry{Epoch: e.Epoch, Tickets: slices.Clone(e.Tickets)})
			return true
		})
	})

	cfg := spew.ConfigState{Indent: "  ", SortKeys: true, DisablePointerAddresses: true}
	cfg.Fdump(os.Stdout, snap)
	return nil
}
