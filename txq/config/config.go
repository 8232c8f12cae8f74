// Copyright 2016 ETH Zurich
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

// Package config is the configuration of the transmit scheduler simulator.
package config

import (
	"io"
	"time"

	"github.com/openwmac/wmac/pkg/log"
	"github.com/openwmac/wmac/pkg/private/serrors"
	"github.com/openwmac/wmac/private/config"
	"github.com/openwmac/wmac/private/env"
	"github.com/openwmac/wmac/txq"
)

// Defaults of the simulation block.
const (
	DefaultRingSize      = 128
	DefaultMgmtRingSize  = 16
	DefaultLatency       = 2 * time.Millisecond
	DefaultTick          = time.Millisecond
	DefaultClients       = 8
	DefaultFrameSize     = 1500
	DefaultFramesPerTick = 16
	DefaultDTIMInterval  = 100 * time.Millisecond
	DefaultSleepCycle    = 300 * time.Millisecond
)

var _ config.Config = (*Config)(nil)

// Config is the simulator configuration.
type Config struct {
	General   env.General `toml:"general,omitempty"`
	Logging   log.Config  `toml:"log,omitempty"`
	Metrics   env.Metrics `toml:"metrics,omitempty"`
	API       env.API     `toml:"api,omitempty"`
	Scheduler txq.Config  `toml:"scheduler,omitempty"`
	Sim       Sim         `toml:"sim,omitempty"`
}

func (cfg *Config) InitDefaults() {
	config.InitAll(
		&cfg.General,
		&cfg.Logging,
		&cfg.Metrics,
		&cfg.API,
		&cfg.Scheduler,
		&cfg.Sim,
	)
}

func (cfg *Config) Validate() error {
	return config.ValidateAll(
		&cfg.General,
		&cfg.Logging,
		&cfg.Metrics,
		&cfg.API,
		&cfg.Scheduler,
		&cfg.Sim,
	)
}

func (cfg *Config) Sample(dst io.Writer, path config.Path, ctx config.CtxMap) {
	config.WriteSample(dst, path, ctx,
		&cfg.General,
		&cfg.Logging,
		&cfg.Metrics,
		&cfg.API,
		&cfg.Scheduler,
		&cfg.Sim,
	)
}

var _ config.Config = (*Sim)(nil)

// Sim describes the simulated radio and the traffic offered to it.
type Sim struct {
	// RingSize is the number of descriptors per access category ring.
	RingSize int `toml:"ring_size,omitempty"`
	// MgmtRingSize is the number of management descriptors.
	MgmtRingSize int `toml:"mgmt_ring_size,omitempty"`
	// Latency is the time between dispatch and completion.
	Latency config.Duration `toml:"latency,omitempty"`
	// FailureRate is the probability that a batch is not acknowledged.
	FailureRate float64 `toml:"failure_rate,omitempty"`
	// Tick is the period of the completion and traffic loops.
	Tick config.Duration `toml:"tick,omitempty"`
	// Clients is the number of associated clients.
	Clients int `toml:"clients,omitempty"`
	// Sleepers is the number of clients that cycle through power save.
	Sleepers int `toml:"sleepers,omitempty"`
	// SleepCycle is the time a sleeper spends in each power state.
	SleepCycle config.Duration `toml:"sleep_cycle,omitempty"`
	// DTIMInterval is the beacon interval at which group traffic is
	// released.
	DTIMInterval config.Duration `toml:"dtim_interval,omitempty"`
	// FramesPerTick is the number of frames offered per tick.
	FramesPerTick int `toml:"frames_per_tick,omitempty"`
	// FrameSize is the length of a generated frame in bytes.
	FrameSize int `toml:"frame_size,omitempty"`
}

func (cfg *Sim) InitDefaults() {
	if cfg.RingSize == 0 {
		cfg.RingSize = DefaultRingSize
	}
	if cfg.MgmtRingSize == 0 {
		cfg.MgmtRingSize = DefaultMgmtRingSize
	}
	if cfg.Latency.Duration == 0 {
		cfg.Latency.Duration = DefaultLatency
	}
	if cfg.Tick.Duration == 0 {
		cfg.Tick.Duration = DefaultTick
	}
	if cfg.Clients == 0 {
		cfg.Clients = DefaultClients
	}
	if cfg.SleepCycle.Duration == 0 {
		cfg.SleepCycle.Duration = DefaultSleepCycle
	}
	if cfg.DTIMInterval.Duration == 0 {
		cfg.DTIMInterval.Duration = DefaultDTIMInterval
	}
	if cfg.FramesPerTick == 0 {
		cfg.FramesPerTick = DefaultFramesPerTick
	}
	if cfg.FrameSize == 0 {
		cfg.FrameSize = DefaultFrameSize
	}
}

func (cfg *Sim) Validate() error {
	if cfg.RingSize <= 0 || cfg.MgmtRingSize <= 0 {
		return serrors.New("ring sizes must be positive",
			"ring_size", cfg.RingSize, "mgmt_ring_size", cfg.MgmtRingSize)
	}
	if cfg.FailureRate < 0 || cfg.FailureRate > 1 {
		return serrors.New("failure rate out of range", "failure_rate", cfg.FailureRate)
	}
	if cfg.Sleepers < 0 || cfg.Sleepers > cfg.Clients {
		return serrors.New("sleepers must be between zero and the number of clients",
			"sleepers", cfg.Sleepers, "clients", cfg.Clients)
	}
	// 14 bytes Ethernet, 20 bytes IPv4, 8 bytes UDP.
	if cfg.FrameSize < 42 {
		return serrors.New("frame too short", "frame_size", cfg.FrameSize)
	}
	if cfg.Tick.Duration <= 0 {
		return serrors.New("tick must be positive", "tick", cfg.Tick.Duration)
	}
	return nil
}

func (cfg *Sim) Sample(dst io.Writer, _ config.Path, _ config.CtxMap) {
	config.WriteString(dst, simSample)
}

func (cfg *Sim) ConfigName() string {
	return "sim"
}

const simSample = `
# Descriptors per access category ring. (default 128)
ring_size = 128

# Management ring descriptors. (default 16)
mgmt_ring_size = 16

# Time between dispatch and completion. (default "2ms")
latency = "2ms"

# Probability that a batch is not acknowledged. (default 0)
failure_rate = 0.0

# Period of the completion and traffic loops. (default "1ms")
tick = "1ms"

# Number of associated clients, and how many of them cycle through power
# save. (defaults 8 and 0)
clients = 8
sleepers = 0

# Time a sleeper spends awake and asleep. (default "300ms")
sleep_cycle = "300ms"

# Interval at which buffered group traffic is released. (default "100ms")
dtim_interval = "100ms"

# Frames offered per tick and their length in bytes. (defaults 16 and 1500)
frames_per_tick = 16
frame_size = 1500
`
