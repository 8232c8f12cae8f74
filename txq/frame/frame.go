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

// Package frame defines the outbound link-layer frame handled by the transmit
// scheduler, together with the attributes the scheduler branches on and the
// four priority classes (access categories).
package frame

import (
	"fmt"
	"net"
)

// AccessCategory is one of the four transmit priority classes.
type AccessCategory uint8

// The access categories in ascending priority order.
const (
	Background AccessCategory = iota
	BestEffort
	Video
	Voice
)

// NumAC is the number of access categories.
const NumAC = 4

// Descending lists the access categories from highest to lowest priority.
var Descending = [NumAC]AccessCategory{Voice, Video, BestEffort, Background}

func (ac AccessCategory) String() string {
	switch ac {
	case Background:
		return "BK"
	case BestEffort:
		return "BE"
	case Video:
		return "VI"
	case Voice:
		return "VO"
	default:
		return fmt.Sprintf("AC(%d)", uint8(ac))
	}
}

// Valid reports whether ac names one of the four classes.
func (ac AccessCategory) Valid() bool {
	return ac < NumAC
}

// FromUserPriority maps an 802.1D user priority (0-7) to its access category.
func FromUserPriority(up uint8) AccessCategory {
	switch up & 0x7 {
	case 1, 2:
		return Background
	case 0, 3:
		return BestEffort
	case 4, 5:
		return Video
	default:
		return Voice
	}
}

// Minimum frame lengths below which a frame carries no payload worth
// aggregating.
const (
	EthernetHeaderLen = 14
	VLANTagLen        = 4
	SNAPHeaderLen     = 8
)

// Attrs are the per-frame attributes the scheduler branches on.
type Attrs struct {
	// Dst is the link-layer destination.
	Dst net.HardwareAddr
	// UserPriority is the 802.1D priority (0-7).
	UserPriority uint8
	// Fragments is the number of fragments the frame is split into on air.
	// Zero and one both mean unfragmented.
	Fragments int
	// ChecksumOffload is set when the hardware computes the L4 checksum.
	ChecksumOffload bool
	// SegmentOffload is set when the hardware segments the frame.
	SegmentOffload bool
	// ControlPlane marks key exchange and address configuration traffic
	// (EAPOL, WAI, DHCP) that must go out unaggregated at a robust rate.
	ControlPlane bool
	// LowRate forces the frame to the legacy path.
	LowRate bool
	// Mgmt marks an 802.11 management frame.
	Mgmt bool
	// VLAN is set when the frame carries an 802.1Q tag.
	VLAN bool
	// SNAP is set when the frame carries an LLC/SNAP header.
	SNAP bool
}

// Frame is an outbound frame. Frames are owned by exactly one holder at a
// time: the caller, a scheduler queue, or a dispatched batch.
type Frame struct {
	Data  []byte
	Attrs Attrs
}

// New creates a frame from raw data and attributes.
func New(data []byte, attrs Attrs) *Frame {
	return &Frame{Data: data, Attrs: attrs}
}

// Len returns the frame length in bytes.
func (f *Frame) Len() int {
	return len(f.Data)
}

// Multicast reports whether the destination is a group address.
func (f *Frame) Multicast() bool {
	return len(f.Attrs.Dst) > 0 && f.Attrs.Dst[0]&0x01 != 0
}

// FragmentCount returns the number of on-air fragments, at least one.
func (f *Frame) FragmentCount() int {
	if f.Attrs.Fragments < 1 {
		return 1
	}
	return f.Attrs.Fragments
}

// AccessCategory returns the class derived from the frame's user priority.
// Management frames always use Voice.
func (f *Frame) AccessCategory() AccessCategory {
	if f.Attrs.Mgmt {
		return Voice
	}
	return FromUserPriority(f.Attrs.UserPriority)
}

// MinAggregateLen is the length a frame must exceed to carry any payload
// after its link-layer headers.
func (f *Frame) MinAggregateLen() int {
	n := EthernetHeaderLen
	if f.Attrs.VLAN {
		n += VLANTagLen
	}
	if f.Attrs.SNAP {
		n += SNAPHeaderLen
	}
	return n
}
