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

package classify_test

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openwmac/wmac/txq/classify"
	"github.com/openwmac/wmac/txq/frame"
	"github.com/openwmac/wmac/txq/station"
)

var (
	unicastMAC = net.HardwareAddr{0x02, 0, 0, 0, 0, 9}
	groupMAC   = net.HardwareAddr{0xff, 0xff, 0xff, 0xff, 0xff, 0xff}
)

func TestClassify(t *testing.T) {
	hw := station.Caps{HWAggregation: true, Sessions: 1 << 0}
	sw := station.Caps{SWAggregation: true}

	testCases := map[string]struct {
		kind   station.Kind
		caps   station.Caps
		ps     station.PSMode
		attrs  frame.Attrs
		expect classify.Class
	}{
		"multicast entry": {
			kind:   station.Multicast{},
			attrs:  frame.Attrs{Dst: unicastMAC},
			expect: classify.Multicast,
		},
		"group destination": {
			kind:   station.Client{},
			caps:   hw,
			attrs:  frame.Attrs{Dst: groupMAC},
			expect: classify.Multicast,
		},
		"power save": {
			kind:   station.Client{},
			caps:   hw,
			ps:     station.PowerSave,
			attrs:  frame.Attrs{Dst: unicastMAC},
			expect: classify.Legacy,
		},
		"relay ignores power save": {
			kind:   station.Relay{},
			caps:   sw,
			ps:     station.PowerSave,
			attrs:  frame.Attrs{Dst: unicastMAC},
			expect: classify.SWAggregate,
		},
		"control plane": {
			kind:   station.Client{},
			caps:   hw,
			attrs:  frame.Attrs{Dst: unicastMAC, ControlPlane: true},
			expect: classify.Legacy,
		},
		"low rate": {
			kind:   station.Client{},
			caps:   sw,
			attrs:  frame.Attrs{Dst: unicastMAC, LowRate: true},
			expect: classify.Legacy,
		},
		"hw session active": {
			kind:   station.Client{},
			caps:   hw,
			attrs:  frame.Attrs{Dst: unicastMAC, UserPriority: 0, ChecksumOffload: true},
			expect: classify.HWAggregate,
		},
		"hw session inactive for priority": {
			kind:   station.Client{},
			caps:   hw,
			attrs:  frame.Attrs{Dst: unicastMAC, UserPriority: 6},
			expect: classify.Legacy,
		},
		"sw aggregation": {
			kind:   station.Client{},
			caps:   sw,
			attrs:  frame.Attrs{Dst: unicastMAC},
			expect: classify.SWAggregate,
		},
		"sw aggregation with offload": {
			kind:   station.Client{},
			caps:   sw,
			attrs:  frame.Attrs{Dst: unicastMAC, SegmentOffload: true},
			expect: classify.Legacy,
		},
		"fragmented": {
			kind:   station.Client{},
			attrs:  frame.Attrs{Dst: unicastMAC, Fragments: 3},
			expect: classify.Fragmentable,
		},
		"fragmented with sw aggregation": {
			kind:   station.Client{},
			caps:   sw,
			attrs:  frame.Attrs{Dst: unicastMAC, Fragments: 3},
			expect: classify.SWAggregate,
		},
		"plain": {
			kind:   station.Client{},
			attrs:  frame.Attrs{Dst: unicastMAC},
			expect: classify.Legacy,
		},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			tbl := station.NewTable(1)
			st, err := tbl.Add(tc.kind, unicastMAC, tc.caps)
			require.NoError(t, err)
			st.PSMode = tc.ps
			got := classify.Classify(frame.New(make([]byte, 64), tc.attrs), st)
			assert.Equal(t, tc.expect, got)
		})
	}
}

func TestAggregatable(t *testing.T) {
	assert.True(t, classify.SWAggregate.Aggregatable())
	assert.True(t, classify.HWAggregate.Aggregatable())
	assert.False(t, classify.Fragmentable.Aggregatable())
	assert.False(t, classify.Legacy.Aggregatable())
	assert.False(t, classify.Multicast.Aggregatable())
}
