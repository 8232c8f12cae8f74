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

package txq_test

import (
	"encoding/binary"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/openwmac/wmac/pkg/log/testlog"
	"github.com/openwmac/wmac/txq"
	"github.com/openwmac/wmac/txq/frame"
	"github.com/openwmac/wmac/txq/station"
)

// fakeHW is a descriptor ring and transmitter that records every batch.
type fakeHW struct {
	free    [frame.NumAC]int
	batches []*txq.Batch
	err     error
}

func newFakeHW(free int) *fakeHW {
	hw := &fakeHW{}
	for i := range hw.free {
		hw.free[i] = free
	}
	return hw
}

func (hw *fakeHW) FreeDescriptors(ac frame.AccessCategory) int { return hw.free[ac] }

func (hw *fakeHW) Reclaim(ac frame.AccessCategory, n int) { hw.free[ac] += n }

func (hw *fakeHW) Transmit(b *txq.Batch) error {
	if hw.err != nil {
		return hw.err
	}
	hw.free[b.AC] -= b.Descriptors
	hw.batches = append(hw.batches, b)
	return nil
}

// frames returns the dispatched frames of the peer in dispatch order.
func (hw *fakeHW) frames(peer station.Ref) []*frame.Frame {
	var out []*frame.Frame
	for _, b := range hw.batches {
		if b.Peer == peer {
			out = append(out, b.Frames...)
		}
	}
	return out
}

// dropLog records the frames the scheduler released.
type dropLog struct {
	frames  []*frame.Frame
	reasons []txq.DropReason
}

func (d *dropLog) Release(f *frame.Frame, reason txq.DropReason) {
	d.frames = append(d.frames, f)
	d.reasons = append(d.reasons, reason)
}

// clock is a manually advanced time source.
type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func (c *clock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type env struct {
	s     *txq.Scheduler
	hw    *fakeHW
	drops *dropLog
	clock *clock
}

func newEnv(t *testing.T, mod func(*txq.Config), deps ...func(*txq.Deps)) env {
	t.Helper()
	cfg := txq.Config{}
	if mod != nil {
		mod(&cfg)
	}
	cfg.InitDefaults()
	e := env{
		hw:    newFakeHW(64),
		drops: &dropLog{},
		clock: &clock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	d := txq.Deps{
		Ring:        e.hw,
		Transmitter: e.hw,
		Releaser:    e.drops,
		Logger:      testlog.NewLogger(t),
		Now:         e.clock.Now,
	}
	for _, fn := range deps {
		fn(&d)
	}
	s, err := txq.New(cfg, d)
	require.NoError(t, err)
	e.s = s
	return e
}

func mac(last byte) net.HardwareAddr {
	return net.HardwareAddr{0x02, 0, 0, 0, 0, last}
}

var groupAddr = net.HardwareAddr{0x01, 0, 0x5e, 0, 0, 1}

func (e env) addClient(t *testing.T, last byte, caps station.Caps) station.Ref {
	t.Helper()
	ref, err := e.s.AddStation(txq.StationConfig{Kind: station.Client{}, Addr: mac(last), Caps: caps})
	require.NoError(t, err)
	return ref
}

func (e env) addStation(t *testing.T, kind station.Kind, addr net.HardwareAddr) station.Ref {
	t.Helper()
	ref, err := e.s.AddStation(txq.StationConfig{Kind: kind, Addr: addr})
	require.NoError(t, err)
	return ref
}

var frameSeq atomic.Uint64

// data returns a data frame of size bytes for dst. Every frame carries a
// unique sequence number, so that equal-sized frames compare unequal.
func data(dst net.HardwareAddr, size int) *frame.Frame {
	b := make([]byte, size)
	binary.BigEndian.PutUint64(b, frameSeq.Add(1))
	return frame.New(b, frame.Attrs{Dst: dst})
}

// submitN admits n frames and fails the test on the first rejection.
func (e env) submitN(t *testing.T, peer station.Ref, dst net.HardwareAddr,
	ac frame.AccessCategory, n int) []*frame.Frame {

	t.Helper()
	out := make([]*frame.Frame, 0, n)
	for i := 0; i < n; i++ {
		f := data(dst, 100+i)
		require.Equal(t, txq.Admitted, e.s.Submit(f, peer, ac), "frame %d", i)
		out = append(out, f)
	}
	return out
}

var swAgg = station.Caps{SWAggregation: true}
