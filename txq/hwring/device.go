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

package hwring

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/openwmac/wmac/pkg/log"
	"github.com/openwmac/wmac/txq"
	"github.com/openwmac/wmac/txq/frame"
	"github.com/openwmac/wmac/txq/station"
)

// Completer receives completion interrupts.
type Completer interface {
	Complete(ac frame.AccessCategory, freed int, reports []txq.TxStatus)
}

// DeviceConfig configures the simulated device.
type DeviceConfig struct {
	// Latency is the time between dispatch and completion.
	Latency time.Duration
	// FailureRate is the probability that a batch is not acknowledged.
	FailureRate float64
	// MgmtRingSize is the number of management descriptors.
	MgmtRingSize int
	// Unreachable lists peers whose batches always fail.
	Unreachable map[station.Ref]bool
}

type pending struct {
	ac          frame.AccessCategory
	mgmt        bool
	descriptors int
	peer        station.Ref
	frames      []*frame.Frame
	due         time.Time
}

// Device is a simulated radio. It implements txq.Transmitter and
// txq.MgmtTransmitter on top of a Ring and completes batches from Run.
type Device struct {
	ring *Ring
	cfg  DeviceConfig

	mu       sync.Mutex
	queue    []pending
	mgmtUsed int
	sent     map[station.Ref]int
	failed   map[station.Ref]int
	now      func() time.Time
	rnd      func() float64
}

// NewDevice creates a device transmitting on ring.
func NewDevice(ring *Ring, cfg DeviceConfig) *Device {
	return &Device{
		ring:   ring,
		cfg:    cfg,
		sent:   make(map[station.Ref]int),
		failed: make(map[station.Ref]int),
		now:    time.Now,
		rnd:    rand.Float64,
	}
}

// Transmit implements txq.Transmitter.
func (d *Device) Transmit(b *txq.Batch) error {
	if err := d.ring.Take(b.AC, b.Descriptors); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.queue = append(d.queue, pending{
		ac:          b.AC,
		descriptors: b.Descriptors,
		peer:        b.Peer,
		frames:      b.Frames,
		due:         d.now().Add(d.cfg.Latency),
	})
	return nil
}

// FreeMgmtDescriptors implements txq.MgmtTransmitter.
func (d *Device) FreeMgmtDescriptors() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cfg.MgmtRingSize - d.mgmtUsed
}

// TransmitMgmt implements txq.MgmtTransmitter.
func (d *Device) TransmitMgmt(peer station.Ref, f *frame.Frame) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.mgmtUsed >= d.cfg.MgmtRingSize {
		return ErrRingFull
	}
	d.mgmtUsed++
	d.queue = append(d.queue, pending{
		ac:          frame.Voice,
		mgmt:        true,
		descriptors: 1,
		peer:        peer,
		frames:      []*frame.Frame{f},
		due:         d.now().Add(d.cfg.Latency),
	})
	return nil
}

// Sent returns the number of acknowledged frames per peer.
func (d *Device) Sent() map[station.Ref]int {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make(map[station.Ref]int, len(d.sent))
	for k, v := range d.sent {
		out[k] = v
	}
	return out
}

// Failed returns the number of unacknowledged frames per peer.
func (d *Device) Failed() map[station.Ref]int {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make(map[station.Ref]int, len(d.failed))
	for k, v := range d.failed {
		out[k] = v
	}
	return out
}

// Run completes due batches every tick until ctx is done.
func (d *Device) Run(ctx context.Context, c Completer, tick time.Duration) error {
	ticker := time.NewTicker(tick)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			d.CompleteDue(c)
		}
	}
}

// CompleteDue reports every batch whose latency elapsed to c.
func (d *Device) CompleteDue(c Completer) {
	var freed [frame.NumAC]int
	var reports [frame.NumAC][]txq.TxStatus
	d.mu.Lock()
	now := d.now()
	kept := d.queue[:0]
	for _, p := range d.queue {
		if p.due.After(now) {
			kept = append(kept, p)
			continue
		}
		ok := !d.cfg.Unreachable[p.peer] && d.rnd() >= d.cfg.FailureRate
		if ok {
			d.sent[p.peer] += len(p.frames)
		} else {
			d.failed[p.peer] += len(p.frames)
		}
		if p.mgmt {
			d.mgmtUsed--
		} else {
			freed[p.ac] += p.descriptors
		}
		reports[p.ac] = append(reports[p.ac], txq.TxStatus{Peer: p.peer, OK: ok})
	}
	for i := len(kept); i < len(d.queue); i++ {
		d.queue[i] = pending{}
	}
	d.queue = kept
	d.mu.Unlock()

	for ac := frame.AccessCategory(0); ac < frame.NumAC; ac++ {
		if freed[ac] == 0 && len(reports[ac]) == 0 {
			continue
		}
		c.Complete(ac, freed[ac], reports[ac])
	}
	if n := len(kept); n > 0 {
		log.Debug("Batches still in flight", "count", n)
	}
}
