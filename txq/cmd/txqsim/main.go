// Copyright 2020 Anapaya Systems
// Copyright 2026 The openwmac Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/openwmac/wmac/pkg/log"
	"github.com/openwmac/wmac/pkg/private/serrors"
	"github.com/openwmac/wmac/private/app/launcher"
	"github.com/openwmac/wmac/txq"
	"github.com/openwmac/wmac/txq/config"
	"github.com/openwmac/wmac/txq/frame"
	"github.com/openwmac/wmac/txq/hwring"
	"github.com/openwmac/wmac/txq/mgmtapi"
	"github.com/openwmac/wmac/txq/sim"
)

var globalCfg config.Config

func main() {
	application := launcher.Application{
		TOMLConfig: &globalCfg,
		ShortName:  "Transmit Scheduler Simulator",
		Main:       realMain,
	}
	application.Run()
}

func realMain(ctx context.Context) error {
	g, errCtx := errgroup.WithContext(ctx)
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	simCfg := globalCfg.Sim
	ring := hwring.New(simCfg.RingSize)
	dev := hwring.NewDevice(ring, hwring.DeviceConfig{
		Latency:      simCfg.Latency.Duration,
		FailureRate:  simCfg.FailureRate,
		MgmtRingSize: simCfg.MgmtRingSize,
	})
	pm := &sim.PowerManager{}
	logger := log.New("interface", globalCfg.General.ID)
	sched, err := txq.New(globalCfg.Scheduler, txq.Deps{
		Ring:         ring,
		Transmitter:  dev,
		Mgmt:         dev,
		PowerManager: pm,
		Releaser: txq.ReleaserFunc(func(f *frame.Frame, reason txq.DropReason) {
			if logger.Enabled(log.DebugLevel) {
				logger.Debug("Frame dropped", "reason", reason, "len", f.Len())
			}
		}),
		Metrics: txq.NewMetrics(reg),
		Logger:  logger,
	})
	if err != nil {
		return serrors.Wrap("creating scheduler", err)
	}
	traffic, err := sim.Associate(sched, pm, simCfg, uint64(time.Now().UnixNano()))
	if err != nil {
		return err
	}
	runner := txq.NewRunner(sched)
	runCtx := log.CtxWith(errCtx, logger)

	g.Go(func() error {
		defer log.HandlePanic()
		return globalCfg.Metrics.ServePrometheus(errCtx, reg)
	})
	g.Go(func() error {
		defer log.HandlePanic()
		return globalCfg.API.Serve(errCtx, mgmtapi.Handler(&mgmtapi.Server{Scheduler: sched}))
	})
	g.Go(func() error {
		defer log.HandlePanic()
		return runner.Run(runCtx)
	})
	g.Go(func() error {
		defer log.HandlePanic()
		return dev.Run(runCtx, sched, simCfg.Tick.Duration)
	})
	g.Go(func() error {
		defer log.HandlePanic()
		if err := traffic.Run(runCtx); err != nil {
			return serrors.Wrap("generating traffic", err)
		}
		return nil
	})
	g.Go(func() error {
		defer log.HandlePanic()
		<-errCtx.Done()
		stats := sched.Stats()
		logger.Info("Scheduler totals", "admitted", stats.Admitted,
			"dispatched", stats.Dispatched, "batches", stats.Batches,
			"dropped", stats.Dropped, "ring_full", stats.RingFull,
			"ps_diverted", stats.PSDiverted)
		return nil
	})
	return g.Wait()
}
