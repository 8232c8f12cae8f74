// Copyright 2018 ETH Zurich, Anapaya Systems
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

// Package env contains the config blocks shared by all services: general
// service identity, metrics export and the management API listener.
package env

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/openwmac/wmac/pkg/log"
	"github.com/openwmac/wmac/pkg/private/serrors"
	"github.com/openwmac/wmac/private/config"
)

const (
	// ShutdownGraceInterval is the time servers are given to finish
	// in-flight requests after the service context is cancelled.
	ShutdownGraceInterval = 5 * time.Second

	// HandlerTimeout is the time after which the http handler gives up on a
	// request and returns an error instead.
	HandlerTimeout = time.Minute
)

var _ config.Config = (*General)(nil)

// General contains general service information.
type General struct {
	// ID is the name of the radio interface this service schedules for.
	ID string `toml:"id,omitempty"`
}

func (cfg *General) InitDefaults() {}

func (cfg *General) Validate() error {
	if cfg.ID == "" {
		return serrors.New("no interface id specified")
	}
	return nil
}

func (cfg *General) Sample(dst io.Writer, _ config.Path, ctx config.CtxMap) {
	config.WriteString(dst, fmt.Sprintf(generalSample, ctx[ID]))
}

func (cfg *General) ConfigName() string {
	return "general"
}

// ID is the sample context key for the service ID.
const ID = "id"

var _ config.Config = (*Metrics)(nil)

// Metrics contains the prometheus export configuration.
type Metrics struct {
	config.NoDefaulter
	config.NoValidator
	// Prometheus contains the address to export prometheus metrics on. If
	// not set, metrics are not exported.
	Prometheus string `toml:"prometheus,omitempty"`
}

func (cfg *Metrics) Sample(dst io.Writer, _ config.Path, _ config.CtxMap) {
	config.WriteString(dst, metricsSample)
}

func (cfg *Metrics) ConfigName() string {
	return "metrics"
}

// ServePrometheus serves the metrics gathered by g until ctx is done. It
// returns immediately if no address is configured.
func (cfg *Metrics) ServePrometheus(ctx context.Context, g prometheus.Gatherer) error {
	if cfg.Prometheus == "" {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{Timeout: HandlerTimeout}))
	log.Info("Exporting prometheus metrics", "addr", cfg.Prometheus)
	return serve(ctx, &http.Server{Addr: cfg.Prometheus, Handler: mux}, "prometheus metrics")
}

var _ config.Config = (*API)(nil)

// API contains the management API listener configuration.
type API struct {
	config.NoDefaulter
	config.NoValidator
	// Addr is the address the management API listens on. If not set, the
	// API is disabled.
	Addr string `toml:"addr,omitempty"`
}

func (cfg *API) Sample(dst io.Writer, _ config.Path, _ config.CtxMap) {
	config.WriteString(dst, apiSample)
}

func (cfg *API) ConfigName() string {
	return "api"
}

// Serve serves handler until ctx is done. It returns immediately if no
// address is configured.
func (cfg *API) Serve(ctx context.Context, handler http.Handler) error {
	if cfg.Addr == "" {
		return nil
	}
	log.Info("Exposing management API", "addr", cfg.Addr)
	return serve(ctx, &http.Server{Addr: cfg.Addr, Handler: handler}, "management API")
}

func serve(ctx context.Context, server *http.Server, what string) error {
	go func() {
		defer log.HandlePanic()
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownGraceInterval)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()
	err := server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return serrors.Wrap("serving "+what, err, "addr", server.Addr)
	}
	return nil
}
