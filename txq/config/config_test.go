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

package config_test

import (
	"bytes"
	"testing"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openwmac/wmac/pkg/log"
	libconfig "github.com/openwmac/wmac/private/config"
	"github.com/openwmac/wmac/private/env"
	"github.com/openwmac/wmac/txq"
	"github.com/openwmac/wmac/txq/config"
)

func TestConfigSample(t *testing.T) {
	var sample bytes.Buffer
	var cfg config.Config
	cfg.Sample(&sample, nil, libconfig.CtxMap{env.ID: "wlan0"})

	err := toml.NewDecoder(bytes.NewReader(sample.Bytes())).DisallowUnknownFields().Decode(&cfg)
	require.NoError(t, err)
	cfg.InitDefaults()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "wlan0", cfg.General.ID)
	assert.Equal(t, log.DefaultConsoleLevel, cfg.Logging.Console.Level)
	assert.Empty(t, cfg.Metrics.Prometheus)
	assert.Empty(t, cfg.API.Addr)
	assert.Equal(t, txq.DefaultClassQuota, cfg.Scheduler.ClassQuota)
	assert.Equal(t, config.DefaultRingSize, cfg.Sim.RingSize)
	assert.Equal(t, config.DefaultLatency, cfg.Sim.Latency.Duration)
	assert.Equal(t, config.DefaultDTIMInterval, cfg.Sim.DTIMInterval.Duration)
	assert.Zero(t, cfg.Sim.Sleepers)
}

func TestSimValidate(t *testing.T) {
	testCases := map[string]struct {
		Modify    func(*config.Sim)
		AssertErr assert.ErrorAssertionFunc
	}{
		"defaults": {
			Modify:    func(*config.Sim) {},
			AssertErr: assert.NoError,
		},
		"all sleep": {
			Modify:    func(cfg *config.Sim) { cfg.Sleepers = cfg.Clients },
			AssertErr: assert.NoError,
		},
		"more sleepers than clients": {
			Modify:    func(cfg *config.Sim) { cfg.Sleepers = cfg.Clients + 1 },
			AssertErr: assert.Error,
		},
		"failure rate above one": {
			Modify:    func(cfg *config.Sim) { cfg.FailureRate = 1.5 },
			AssertErr: assert.Error,
		},
		"negative ring": {
			Modify:    func(cfg *config.Sim) { cfg.RingSize = -1 },
			AssertErr: assert.Error,
		},
		"short frames": {
			Modify:    func(cfg *config.Sim) { cfg.FrameSize = 20 },
			AssertErr: assert.Error,
		},
		"negative tick": {
			Modify:    func(cfg *config.Sim) { cfg.Tick.Duration = -time.Millisecond },
			AssertErr: assert.Error,
		},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			var cfg config.Sim
			cfg.InitDefaults()
			tc.Modify(&cfg)
			tc.AssertErr(t, cfg.Validate())
		})
	}
}

func TestConfigValidateMissingID(t *testing.T) {
	var cfg config.Config
	cfg.InitDefaults()
	assert.Error(t, cfg.Validate())
	cfg.General.ID = "wlan0"
	assert.NoError(t, cfg.Validate())
}
