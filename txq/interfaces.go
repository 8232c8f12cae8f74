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
	"github.com/openwmac/wmac/txq/frame"
	"github.com/openwmac/wmac/txq/station"
)

// Ring is the hardware transmit descriptor ring, one per access category.
type Ring interface {
	// FreeDescriptors returns the number of descriptors currently free for
	// the access category.
	FreeDescriptors(ac frame.AccessCategory) int
}

// BusyRing is a Ring that also reports how many descriptors are still owned
// by the hardware. It enables the aggregation hold-back.
type BusyRing interface {
	Ring
	InFlight(ac frame.AccessCategory) int
}

// Reclaimer is a Ring that must be told, under the scheduler lock, how many
// descriptors the hardware finished.
type Reclaimer interface {
	Reclaim(ac frame.AccessCategory, n int)
}

// Transmitter hands a batch to the hardware. On success it owns the frames
// of the batch and reports completion through Scheduler.Complete. On error
// the frames are still owned by the scheduler, which drops them.
//
// Transmit is called with the scheduler lock held and must not call back
// into the scheduler.
type Transmitter interface {
	Transmit(b *Batch) error
}

// MgmtTransmitter is the single-frame path for management frames.
type MgmtTransmitter interface {
	// FreeMgmtDescriptors returns the free descriptors of the management
	// ring.
	FreeMgmtDescriptors() int
	// TransmitMgmt sends one management frame. The ownership rules of
	// Transmitter apply.
	TransmitMgmt(peer station.Ref, f *frame.Frame) error
}

// PowerManager receives requests from the power-save state machine.
type PowerManager interface {
	// RequestPSClear asks the power management module to decide whether the
	// peer stays asleep once its buffered frames were flushed. The answer
	// arrives through Scheduler.OnRetrieveComplete.
	RequestPSClear(peer station.Ref)
}

// CapabilityProvider reports the negotiated capabilities of a peer. When set,
// it is consulted each time a frame is classified.
type CapabilityProvider interface {
	PeerCapability(peer station.Ref) (station.Caps, bool)
}

// Releaser takes back frames the scheduler drops.
type Releaser interface {
	Release(f *frame.Frame, reason DropReason)
}

// ReleaserFunc adapts a function to the Releaser interface.
type ReleaserFunc func(f *frame.Frame, reason DropReason)

// Release calls fn(f, reason).
func (fn ReleaserFunc) Release(f *frame.Frame, reason DropReason) {
	fn(f, reason)
}

// DropReason says why the scheduler released a frame without sending it.
type DropReason string

const (
	DropJam        DropReason = "jam"
	DropPSOverflow DropReason = "ps_overflow"
	DropTeardown   DropReason = "teardown"
	DropPeerGone   DropReason = "peer_gone"
	DropTxError    DropReason = "tx_error"
)
