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

// Package classify decides how an outbound frame may be sent to its peer.
package classify

import (
	"fmt"

	"github.com/openwmac/wmac/txq/frame"
	"github.com/openwmac/wmac/txq/station"
)

// Class is the transmit class of a frame.
type Class uint8

const (
	Legacy Class = iota
	Multicast
	Fragmentable
	SWAggregate
	HWAggregate
)

func (c Class) String() string {
	switch c {
	case Legacy:
		return "legacy"
	case Multicast:
		return "multicast"
	case Fragmentable:
		return "fragmentable"
	case SWAggregate:
		return "sw_aggregate"
	case HWAggregate:
		return "hw_aggregate"
	default:
		return fmt.Sprintf("Class(%d)", uint8(c))
	}
}

// Aggregatable reports whether frames of this class may be batched.
func (c Class) Aggregatable() bool {
	return c == SWAggregate || c == HWAggregate
}

// Classify returns the transmit class of f for st. It keeps no state between
// calls.
func Classify(f *frame.Frame, st *station.Station) Class {
	switch st.Kind().(type) {
	case station.Multicast:
		return Multicast
	case station.Client:
		if f.Multicast() {
			return Multicast
		}
		if st.PSMode == station.PowerSave {
			return Legacy
		}
		return unicast(f, st.Caps)
	case station.Relay:
		// Relay links never sleep.
		if f.Multicast() {
			return Multicast
		}
		return unicast(f, st.Caps)
	default:
		panic(fmt.Sprintf("unhandled station kind %T", st.Kind()))
	}
}

func unicast(f *frame.Frame, caps station.Caps) Class {
	a := f.Attrs
	switch {
	case a.Mgmt || a.LowRate || a.ControlPlane:
		return Legacy
	case caps.SessionActive(a.UserPriority):
		return HWAggregate
	case caps.SWAggregation && !a.ChecksumOffload && !a.SegmentOffload:
		return SWAggregate
	case f.FragmentCount() > 1:
		return Fragmentable
	default:
		return Legacy
	}
}
