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

package txq

import (
	"io"
	"time"

	"github.com/openwmac/wmac/pkg/private/serrors"
	"github.com/openwmac/wmac/private/config"
)

// Defaults of the scheduler configuration.
const (
	DefaultMaxStations        = 64
	DefaultSWFIFOLen          = 512
	DefaultClassQuota         = 32
	DefaultMaxQueuedPerPeer   = 2048
	DefaultReservedPerClass   = 512
	DefaultPSQueueLen         = 128
	DefaultMcastPSQueueLen    = 32
	DefaultMaxAggregateBytes  = 3840 - 100
	DefaultJamThreshold       = 1024
	DefaultJamRetryInterval   = 100 * time.Millisecond
	DefaultRelayRetryInterval = time.Minute
	DefaultMaxBatchesPerRound = 64
)

var _ config.Config = (*Config)(nil)

// Config is the scheduler configuration.
type Config struct {
	// MaxStations is the capacity of the station table, multicast entries
	// included.
	MaxStations int `toml:"max_stations,omitempty"`
	// SWFIFOLen is the number of software FIFO slots per access category.
	SWFIFOLen int `toml:"swq_fifo_len,omitempty"`
	// ClassQuota is the number of frames one access category may take off
	// the queues per scheduling round.
	ClassQuota int `toml:"class_quota,omitempty"`
	// MaxQueuedPerPeer and ReservedPerClass bound the queue depth of one
	// peer: once the peer holds more than MaxQueuedPerPeer frames, a class
	// queue may only grow up to ReservedPerClass.
	MaxQueuedPerPeer int `toml:"max_queued_per_peer,omitempty"`
	ReservedPerClass int `toml:"reserved_per_class,omitempty"`
	// PSQueueLen bounds the power-save side queue of a client.
	PSQueueLen int `toml:"ps_queue_len,omitempty"`
	// McastPSQueueLen bounds the side queue of the multicast entry.
	McastPSQueueLen int `toml:"mcast_ps_queue_len,omitempty"`
	// MaxAggregateBytes is the byte ceiling of an aggregate batch.
	MaxAggregateBytes int `toml:"max_aggregate_bytes,omitempty"`
	// AggregateHoldback keeps a lone aggregatable frame queued while the
	// ring still has descriptors in flight, so that it can be batched with
	// the next one.
	AggregateHoldback bool `toml:"aggregate_holdback,omitempty"`
	// JamThreshold is the number of continuous failures after which a peer
	// is throttled. A negative value disables jam detection.
	JamThreshold int `toml:"jam_threshold,omitempty"`
	// JamRetryInterval is how often a jammed client is allowed one frame.
	JamRetryInterval config.Duration `toml:"jam_retry_interval,omitempty"`
	// RelayRetryInterval is how often a jammed relay is allowed one frame.
	RelayRetryInterval config.Duration `toml:"relay_retry_interval,omitempty"`
	// MaxBatchesPerRound bounds the work of a single scheduling round.
	MaxBatchesPerRound int `toml:"max_batches_per_round,omitempty"`
}

// InitDefaults sets every unset field to its default.
func (cfg *Config) InitDefaults() {
	setDefault(&cfg.MaxStations, DefaultMaxStations)
	setDefault(&cfg.SWFIFOLen, DefaultSWFIFOLen)
	setDefault(&cfg.ClassQuota, DefaultClassQuota)
	setDefault(&cfg.MaxQueuedPerPeer, DefaultMaxQueuedPerPeer)
	setDefault(&cfg.ReservedPerClass, DefaultReservedPerClass)
	setDefault(&cfg.PSQueueLen, DefaultPSQueueLen)
	setDefault(&cfg.McastPSQueueLen, DefaultMcastPSQueueLen)
	setDefault(&cfg.MaxAggregateBytes, DefaultMaxAggregateBytes)
	setDefault(&cfg.JamThreshold, DefaultJamThreshold)
	setDefault(&cfg.MaxBatchesPerRound, DefaultMaxBatchesPerRound)
	if cfg.JamRetryInterval.Duration == 0 {
		cfg.JamRetryInterval.Duration = DefaultJamRetryInterval
	}
	if cfg.RelayRetryInterval.Duration == 0 {
		cfg.RelayRetryInterval.Duration = DefaultRelayRetryInterval
	}
}

func setDefault(v *int, def int) {
	if *v == 0 {
		*v = def
	}
}

// Validate checks the configuration.
func (cfg *Config) Validate() error {
	positive := []struct {
		name string
		v    int
	}{
		{"max_stations", cfg.MaxStations},
		{"swq_fifo_len", cfg.SWFIFOLen},
		{"class_quota", cfg.ClassQuota},
		{"max_queued_per_peer", cfg.MaxQueuedPerPeer},
		{"reserved_per_class", cfg.ReservedPerClass},
		{"ps_queue_len", cfg.PSQueueLen},
		{"mcast_ps_queue_len", cfg.McastPSQueueLen},
		{"max_aggregate_bytes", cfg.MaxAggregateBytes},
		{"max_batches_per_round", cfg.MaxBatchesPerRound},
	}
	for _, p := range positive {
		if p.v <= 0 {
			return serrors.New("value must be positive", "field", p.name, "value", p.v)
		}
	}
	if cfg.MaxStations > 1<<16 {
		return serrors.New("too many stations", "max_stations", cfg.MaxStations)
	}
	return nil
}

// Sample writes a sample configuration.
func (cfg *Config) Sample(dst io.Writer, _ config.Path, _ config.CtxMap) {
	config.WriteString(dst, schedulerSample)
}

// ConfigName returns the name of the config block.
func (cfg *Config) ConfigName() string {
	return "scheduler"
}

const schedulerSample = `
# Capacity of the station table, multicast entries included. (default 64)
max_stations = 64

# Software FIFO slots per access category. (default 512)
swq_fifo_len = 512

# Frames one access category may dequeue per scheduling round. (default 32)
class_quota = 32

# Once a peer holds more than max_queued_per_peer frames, each of its class
# queues may only grow up to reserved_per_class. (defaults 2048 and 512)
max_queued_per_peer = 2048
reserved_per_class = 512

# Power-save side queue bounds for clients and the multicast entry.
# (defaults 128 and 32)
ps_queue_len = 128
mcast_ps_queue_len = 32

# Byte ceiling of an aggregate batch. (default 3740)
max_aggregate_bytes = 3740

# Hold a lone aggregatable frame back while descriptors are in flight.
# (default false)
aggregate_holdback = false

# Continuous failures after which a peer is throttled, negative disables.
# (default 1024)
jam_threshold = 1024

# How often a throttled client or relay may try one frame.
# (defaults "100ms" and "1m")
jam_retry_interval = "100ms"
relay_retry_interval = "1m"

# Upper bound of batches dispatched per scheduling round. (default 64)
max_batches_per_round = 64
`
