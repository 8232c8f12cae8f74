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

package station_test

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openwmac/wmac/txq/frame"
	"github.com/openwmac/wmac/txq/station"
)

var peerMAC = net.HardwareAddr{0x02, 0, 0, 0, 0, 7}

func TestTableGenerations(t *testing.T) {
	tbl := station.NewTable(2)
	a, err := tbl.Add(station.Client{}, peerMAC, station.Caps{})
	require.NoError(t, err)
	b, err := tbl.Add(station.Relay{}, peerMAC, station.Caps{})
	require.NoError(t, err)
	assert.Equal(t, uint16(0), a.Ref().Index)
	assert.Equal(t, uint16(1), b.Ref().Index)

	_, err = tbl.Add(station.Client{}, peerMAC, station.Caps{})
	assert.ErrorIs(t, err, station.ErrTableFull)

	old := a.Ref()
	require.NoError(t, tbl.Remove(old))
	assert.ErrorIs(t, tbl.Remove(old), station.ErrUnknown)

	c, err := tbl.Add(station.Client{}, peerMAC, station.Caps{})
	require.NoError(t, err)
	assert.Equal(t, old.Index, c.Ref().Index)
	assert.NotEqual(t, old.Gen, c.Ref().Gen)

	_, ok := tbl.Get(old)
	assert.False(t, ok)
	got, ok := tbl.Get(c.Ref())
	assert.True(t, ok)
	assert.Same(t, c, got)
	assert.Equal(t, 2, tbl.Len())
}

func TestRemoveRequiresEmpty(t *testing.T) {
	tbl := station.NewTable(1)
	st, err := tbl.Add(station.Client{}, peerMAC, station.Caps{})
	require.NoError(t, err)
	st.Push(frame.Voice, frame.New(nil, frame.Attrs{}))
	assert.ErrorIs(t, tbl.Remove(st.Ref()), station.ErrNotEmpty)
	st.DrainQueue(frame.Voice, func(*frame.Frame) {})
	assert.NoError(t, tbl.Remove(st.Ref()))
}

func TestEnqueuedCount(t *testing.T) {
	tbl := station.NewTable(1)
	st, err := tbl.Add(station.Client{}, peerMAC, station.Caps{})
	require.NoError(t, err)

	f1, f2, f3 := frame.New(nil, frame.Attrs{}), frame.New(nil, frame.Attrs{}), frame.New(nil, frame.Attrs{})
	st.Push(frame.BestEffort, f1)
	st.Push(frame.BestEffort, f2)
	st.Push(frame.Video, f3)
	assert.Equal(t, 3, st.Enqueued())

	got, ok := st.Pop(frame.BestEffort)
	require.True(t, ok)
	assert.Same(t, f1, got)
	st.PushFront(frame.BestEffort, got)
	assert.Equal(t, 3, st.Enqueued())

	var drained []*frame.Frame
	st.DrainQueue(frame.BestEffort, func(f *frame.Frame) { drained = append(drained, f) })
	assert.Equal(t, []*frame.Frame{f1, f2}, drained)
	assert.Equal(t, 1, st.Enqueued())
	assert.Equal(t, 1, st.QueueLen(frame.Video))
}

func TestPSQueueBound(t *testing.T) {
	tbl := station.NewTable(1)
	st, err := tbl.Add(station.Client{}, peerMAC, station.Caps{})
	require.NoError(t, err)
	first := frame.New(nil, frame.Attrs{})
	assert.True(t, st.PSPush(first, frame.Video, 2))
	assert.True(t, st.PSPush(frame.New(nil, frame.Attrs{}), frame.BestEffort, 2))
	assert.False(t, st.PSPush(frame.New(nil, frame.Attrs{}), frame.BestEffort, 2))
	assert.Equal(t, 2, st.PSLen())
	assert.Equal(t, 0, st.Enqueued())

	b, ok := st.PSPop()
	require.True(t, ok)
	assert.Same(t, first, b.Frame)
	assert.Equal(t, frame.Video, b.AC)
	st.PSPushFront(b)
	assert.Equal(t, 2, st.PSLen())
}

func TestAnyInPowerSave(t *testing.T) {
	tbl := station.NewTable(3)
	mc, _ := tbl.Add(station.Multicast{}, nil, station.Caps{})
	cl, _ := tbl.Add(station.Client{}, peerMAC, station.Caps{PowerSaveCapable: true})
	assert.False(t, tbl.AnyInPowerSave())
	mc.PSMode = station.PowerSave
	assert.False(t, tbl.AnyInPowerSave())
	cl.PSMode = station.PowerSave
	assert.True(t, tbl.AnyInPowerSave())
}

func TestSessionActive(t *testing.T) {
	caps := station.Caps{HWAggregation: true, Sessions: 1 << 5}
	assert.True(t, caps.SessionActive(5))
	assert.False(t, caps.SessionActive(0))
	caps.HWAggregation = false
	assert.False(t, caps.SessionActive(5))
}
