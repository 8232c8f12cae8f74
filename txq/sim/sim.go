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

// Package sim drives a scheduler with synthetic traffic: it associates a
// set of clients, offers encoded Ethernet frames, cycles clients through
// power save and answers the power management requests of the scheduler.
package sim

import (
	"context"
	"math/rand/v2"
	"net"
	"sync"
	"time"

	"github.com/gopacket/gopacket"
	"github.com/gopacket/gopacket/layers"

	"github.com/openwmac/wmac/pkg/log"
	"github.com/openwmac/wmac/pkg/private/serrors"
	"github.com/openwmac/wmac/txq"
	"github.com/openwmac/wmac/txq/config"
	"github.com/openwmac/wmac/txq/frame"
	"github.com/openwmac/wmac/txq/station"
)

var (
	bssid     = net.HardwareAddr{0x02, 0, 0, 0, 0, 0}
	groupAddr = net.HardwareAddr{0x01, 0, 0x5e, 0, 0, 1}
)

// Header lengths of a generated frame.
const headerLen = 14 + 20 + 8

// PowerManager queues the power-save clear requests of the scheduler. It is
// called under the scheduler lock, so requests are answered later by
// Traffic.Step.
type PowerManager struct {
	mu      sync.Mutex
	pending []station.Ref
}

// RequestPSClear implements txq.PowerManager.
func (pm *PowerManager) RequestPSClear(peer station.Ref) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	pm.pending = append(pm.pending, peer)
}

func (pm *PowerManager) take() []station.Ref {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	out := pm.pending
	pm.pending = nil
	return out
}

// Peer is an associated station of the simulation.
type Peer struct {
	Ref     station.Ref
	Addr    net.HardwareAddr
	Sleeper bool
	asleep  bool
}

// Counters summarize the offered traffic.
type Counters struct {
	Offered  uint64
	Admitted uint64
	Rejected uint64
	Mgmt     uint64
}

// Traffic generates the load of the simulation.
type Traffic struct {
	sched *txq.Scheduler
	pm    *PowerManager
	cfg   config.Sim
	group Peer
	peers []*Peer
	rnd   *rand.Rand

	lastDTIM   time.Time
	lastToggle time.Time
	counters   Counters
}

// Associate adds the multicast entry and cfg.Clients clients to s. The
// first cfg.Sleepers clients cycle through power save.
func Associate(s *txq.Scheduler, pm *PowerManager, cfg config.Sim, seed uint64) (*Traffic, error) {
	group, err := s.AddStation(txq.StationConfig{Kind: station.Multicast{}, Addr: groupAddr})
	if err != nil {
		return nil, serrors.Wrap("adding multicast entry", err)
	}
	t := &Traffic{
		sched: s,
		pm:    pm,
		cfg:   cfg,
		group: Peer{Ref: group, Addr: groupAddr},
		rnd:   rand.New(rand.NewPCG(seed, seed^0x5eed)),
	}
	for i := 0; i < cfg.Clients; i++ {
		addr := net.HardwareAddr{0x02, 0, 0, 0, byte(i >> 8), byte(i + 1)}
		caps := station.Caps{
			SWAggregation:    true,
			HWAggregation:    i%2 == 0,
			Sessions:         0xff,
			PowerSaveCapable: i < cfg.Sleepers,
		}
		ref, err := s.AddStation(txq.StationConfig{
			Kind: station.Client{},
			Addr: addr,
			Caps: caps,
		})
		if err != nil {
			return nil, serrors.Wrap("adding client", err, "addr", addr)
		}
		t.peers = append(t.peers, &Peer{Ref: ref, Addr: addr, Sleeper: i < cfg.Sleepers})
	}
	return t, nil
}

// Peers returns the associated clients.
func (t *Traffic) Peers() []Peer {
	out := make([]Peer, 0, len(t.peers))
	for _, p := range t.peers {
		out = append(out, *p)
	}
	return out
}

// Counters returns the traffic counters.
func (t *Traffic) Counters() Counters {
	return t.counters
}

// Run calls Step every tick until ctx is done.
func (t *Traffic) Run(ctx context.Context) error {
	ticker := time.NewTicker(t.cfg.Tick.Duration)
	defer ticker.Stop()
	t.lastDTIM, t.lastToggle = time.Now(), time.Now()
	for {
		select {
		case <-ctx.Done():
			c := t.counters
			log.FromCtx(ctx).Info("Traffic generator stopped", "offered", c.Offered,
				"admitted", c.Admitted, "rejected", c.Rejected, "mgmt", c.Mgmt)
			return nil
		case now := <-ticker.C:
			if err := t.Step(now); err != nil {
				return err
			}
		}
	}
}

// Step runs one tick of the simulation at time now.
func (t *Traffic) Step(now time.Time) error {
	if err := t.answerPSClear(); err != nil {
		return err
	}
	if now.Sub(t.lastToggle) >= t.cfg.SleepCycle.Duration {
		t.lastToggle = now
		if err := t.toggleSleepers(); err != nil {
			return err
		}
	}
	if now.Sub(t.lastDTIM) >= t.cfg.DTIMInterval.Duration {
		t.lastDTIM = now
		if err := t.beacon(); err != nil {
			return err
		}
	}
	for i := 0; i < t.cfg.FramesPerTick; i++ {
		if err := t.offer(); err != nil {
			return err
		}
	}
	return nil
}

func (t *Traffic) answerPSClear() error {
	for _, ref := range t.pm.take() {
		p := t.lookup(ref)
		if p == nil {
			continue
		}
		if err := t.sched.OnRetrieveComplete(ref, p.asleep); err != nil {
			return serrors.Wrap("answering power-save clear", err, "peer", ref)
		}
	}
	return nil
}

func (t *Traffic) toggleSleepers() error {
	for _, p := range t.peers {
		if !p.Sleeper {
			continue
		}
		var err error
		if p.asleep {
			err = t.sched.OnAwake(p.Ref)
		} else {
			err = t.sched.OnPowerSaveEntered(p.Ref)
		}
		if err != nil {
			return serrors.Wrap("changing power state", err, "peer", p.Ref)
		}
		p.asleep = !p.asleep
	}
	return nil
}

// beacon releases group traffic and lets every sleeping peer named in the
// traffic indication map poll its buffered frames.
func (t *Traffic) beacon() error {
	t.sched.OnDTIM()
	for _, ref := range t.sched.TIM() {
		p := t.lookup(ref)
		if p == nil || !p.asleep {
			continue
		}
		if err := t.sched.OnRetrieveTrigger(ref); err != nil {
			return serrors.Wrap("polling buffered frames", err, "peer", ref)
		}
	}
	return nil
}

func (t *Traffic) offer() error {
	if len(t.peers) == 0 {
		return nil
	}
	dst := t.group
	if t.rnd.IntN(8) != 0 {
		dst = *t.peers[t.rnd.IntN(len(t.peers))]
	}
	t.counters.Offered++
	if t.rnd.IntN(64) == 0 && dst.Ref != t.group.Ref {
		t.counters.Mgmt++
		f := frame.New(make([]byte, 64), frame.Attrs{Dst: dst.Addr})
		t.count(t.sched.SubmitMgmt(f, dst.Ref))
		return nil
	}
	raw, err := Encode(dst.Addr, uint8(t.rnd.IntN(8)), t.cfg.FrameSize)
	if err != nil {
		return err
	}
	attrs, err := frame.Inspect(raw)
	if err != nil {
		return err
	}
	t.count(t.sched.Submit(frame.New(raw, attrs), dst.Ref, txq.FromFrame))
	return nil
}

func (t *Traffic) count(s txq.Status) {
	if s == txq.Admitted {
		t.counters.Admitted++
	} else {
		t.counters.Rejected++
	}
}

func (t *Traffic) lookup(ref station.Ref) *Peer {
	for _, p := range t.peers {
		if p.Ref == ref {
			return p
		}
	}
	return nil
}

// Encode builds an Ethernet/IPv4/UDP frame of size bytes for dst that
// carries the user priority in the IP precedence bits.
func Encode(dst net.HardwareAddr, up uint8, size int) ([]byte, error) {
	if size < headerLen {
		return nil, serrors.New("frame too short", "size", size, "min", headerLen)
	}
	eth := &layers.Ethernet{
		SrcMAC:       bssid,
		DstMAC:       dst,
		EthernetType: layers.EthernetTypeIPv4,
	}
	ip := &layers.IPv4{
		Version:  4,
		IHL:      5,
		TTL:      64,
		TOS:      up << 5,
		Protocol: layers.IPProtocolUDP,
		SrcIP:    net.IP{10, 0, 0, 1},
		DstIP:    net.IP{10, 0, 0, 2},
	}
	udp := &layers.UDP{SrcPort: 5000, DstPort: 5001}
	if err := udp.SetNetworkLayerForChecksum(ip); err != nil {
		return nil, err
	}
	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{FixLengths: true, ComputeChecksums: true}
	payload := gopacket.Payload(make([]byte, size-headerLen))
	if err := gopacket.SerializeLayers(buf, opts, eth, ip, udp, payload); err != nil {
		return nil, serrors.Wrap("encoding frame", err)
	}
	return buf.Bytes(), nil
}
