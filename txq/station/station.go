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

// Package station holds the per-peer transmit state of the scheduler.
//
// Stations live in a fixed-capacity Table and are addressed by a Ref, a slot
// index plus a generation. A Ref stays valid only for the association it was
// issued for; once the station is removed, lookups with the old Ref fail even
// after the slot has been reused.
//
// Nothing in this package is safe for concurrent use. The scheduler guards
// all stations with its own lock.
package station

import (
	"fmt"
	"net"
	"time"

	"github.com/openwmac/wmac/txq/deque"
	"github.com/openwmac/wmac/txq/frame"
)

// Kind is the closed set of station entry kinds.
type Kind interface {
	fmt.Stringer
	isKind()
}

// Multicast is the group-addressed entry of the radio. There is one per BSS.
type Multicast struct{}

// Client is an associated client station.
type Client struct{}

// Relay is a static point-to-point relay link to another access point.
type Relay struct{}

func (Multicast) isKind() {}
func (Client) isKind()    {}
func (Relay) isKind()     {}

func (Multicast) String() string { return "multicast" }
func (Client) String() string    { return "client" }
func (Relay) String() string     { return "relay" }

// Caps describes what the peer negotiated.
type Caps struct {
	// HWAggregation is set when the peer supports the newer, session-based
	// aggregation protocol.
	HWAggregation bool
	// SWAggregation is set when the peer supports the legacy driver-level
	// aggregation.
	SWAggregation bool
	// PowerSaveCapable is set when the peer may enter power save.
	PowerSaveCapable bool
	// Sessions has bit n set when a hardware aggregation session is active
	// for user priority n.
	Sessions uint8
}

// SessionActive reports whether a hardware aggregation session is active for
// the user priority.
func (c Caps) SessionActive(up uint8) bool {
	return c.HWAggregation && c.Sessions&(1<<(up&0x7)) != 0
}

// PSMode is the power management mode a peer announced.
type PSMode uint8

const (
	Active PSMode = iota
	PowerSave
)

func (m PSMode) String() string {
	if m == PowerSave {
		return "power_save"
	}
	return "active"
}

// RetrieveState tracks the flush of a peer's power-save backlog.
type RetrieveState uint8

const (
	Idle RetrieveState = iota
	Retrieving
	WaitingEvent
	Done
)

func (s RetrieveState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Retrieving:
		return "retrieving"
	case WaitingEvent:
		return "waiting_event"
	case Done:
		return "done"
	default:
		return fmt.Sprintf("RetrieveState(%d)", uint8(s))
	}
}

// Ref is a generation-checked reference to a station.
type Ref struct {
	Index uint16
	Gen   uint32
}

func (r Ref) String() string {
	return fmt.Sprintf("%d/%d", r.Index, r.Gen)
}

// Station is the transmit state of one peer.
type Station struct {
	ref  Ref
	kind Kind
	addr net.HardwareAddr

	// Caps are the negotiated capabilities. They may be updated in place
	// while the station is associated.
	Caps Caps
	// PSMode is the announced power management mode.
	PSMode PSMode
	// Retrieve is the state of the power-save flush.
	Retrieve RetrieveState
	// AdmissionEnabled gates new frames for this peer.
	AdmissionEnabled bool
	// ContinuousFailures counts back-to-back hardware transmit failures.
	ContinuousFailures int
	// LastRetry is the last time a jammed peer was allowed a frame.
	LastRetry time.Time
	// RetrieveBitmap has bit n set while access category n still has
	// power-save frames to flush.
	RetrieveBitmap uint8

	queues   [frame.NumAC]deque.Deque[*frame.Frame]
	enqueued int
	psQueue  deque.Deque[Buffered]
}

// Buffered is a frame held in the power-save side queue together with the
// access category it was admitted for.
type Buffered struct {
	Frame *frame.Frame
	AC    frame.AccessCategory
}

// Ref returns the station's reference.
func (s *Station) Ref() Ref { return s.ref }

// Kind returns the entry kind.
func (s *Station) Kind() Kind { return s.kind }

// Addr returns the peer's link-layer address.
func (s *Station) Addr() net.HardwareAddr { return s.addr }

// Enqueued returns the number of frames in the four class queues.
func (s *Station) Enqueued() int { return s.enqueued }

// QueueLen returns the length of the class queue.
func (s *Station) QueueLen(ac frame.AccessCategory) int {
	return s.queues[ac].Len()
}

// Push appends f to the class queue.
func (s *Station) Push(ac frame.AccessCategory, f *frame.Frame) {
	s.queues[ac].PushBack(f)
	s.enqueued++
}

// PushFront returns f to the head of the class queue.
func (s *Station) PushFront(ac frame.AccessCategory, f *frame.Frame) {
	s.queues[ac].PushFront(f)
	s.enqueued++
}

// Pop removes the head of the class queue.
func (s *Station) Pop(ac frame.AccessCategory) (*frame.Frame, bool) {
	f, ok := s.queues[ac].PopFront()
	if ok {
		s.enqueued--
	}
	return f, ok
}

// Peek returns the head of the class queue without removing it.
func (s *Station) Peek(ac frame.AccessCategory) (*frame.Frame, bool) {
	return s.queues[ac].Front()
}

// DrainQueue removes every frame of the class queue in order.
func (s *Station) DrainQueue(ac frame.AccessCategory, fn func(*frame.Frame)) {
	s.queues[ac].Drain(func(f *frame.Frame) {
		s.enqueued--
		fn(f)
	})
}

// PSLen returns the length of the power-save side queue.
func (s *Station) PSLen() int { return s.psQueue.Len() }

// PSPush appends f to the power-save side queue unless it already holds
// limit frames.
func (s *Station) PSPush(f *frame.Frame, ac frame.AccessCategory, limit int) bool {
	if s.psQueue.Len() >= limit {
		return false
	}
	s.psQueue.PushBack(Buffered{Frame: f, AC: ac})
	return true
}

// PSHolds reports whether the side queue holds a frame of the class.
func (s *Station) PSHolds(ac frame.AccessCategory) bool {
	for i := 0; i < s.psQueue.Len(); i++ {
		if s.psQueue.At(i).AC == ac {
			return true
		}
	}
	return false
}

// PSPushFront returns b to the head of the power-save side queue.
func (s *Station) PSPushFront(b Buffered) {
	s.psQueue.PushFront(b)
}

// PSPop removes the head of the power-save side queue.
func (s *Station) PSPop() (Buffered, bool) {
	return s.psQueue.PopFront()
}

// PSDrain removes every frame of the power-save side queue in order.
func (s *Station) PSDrain(fn func(Buffered)) {
	s.psQueue.Drain(fn)
}

// Jammed reports whether the peer reached the failure threshold.
func (s *Station) Jammed(threshold int) bool {
	return threshold > 0 && s.ContinuousFailures >= threshold
}

// Snapshot is a copy of the externally visible station state.
type Snapshot struct {
	Ref                Ref
	Kind               string
	Addr               string
	Caps               Caps
	PSMode             string
	Retrieve           string
	AdmissionEnabled   bool
	Enqueued           int
	QueueLens          [frame.NumAC]int
	PSQueued           int
	ContinuousFailures int
	RetrieveBitmap     uint8
}

// Snapshot copies the station state.
func (s *Station) Snapshot() Snapshot {
	snap := Snapshot{
		Ref:                s.ref,
		Kind:               s.kind.String(),
		Addr:               s.addr.String(),
		Caps:               s.Caps,
		PSMode:             s.PSMode.String(),
		Retrieve:           s.Retrieve.String(),
		AdmissionEnabled:   s.AdmissionEnabled,
		Enqueued:           s.enqueued,
		PSQueued:           s.psQueue.Len(),
		ContinuousFailures: s.ContinuousFailures,
		RetrieveBitmap:     s.RetrieveBitmap,
	}
	for ac := range snap.QueueLens {
		snap.QueueLens[ac] = s.queues[ac].Len()
	}
	return snap
}
