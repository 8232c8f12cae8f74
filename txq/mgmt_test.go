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
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openwmac/wmac/txq"
	"github.com/openwmac/wmac/txq/classify"
	"github.com/openwmac/wmac/txq/frame"
	"github.com/openwmac/wmac/txq/mock_txq"
	"github.com/openwmac/wmac/txq/station"
)

func TestSubmitMgmt(t *testing.T) {
	t.Run("default path", func(t *testing.T) {
		e := newEnv(t, nil)
		p := e.addClient(t, 1, swAgg)
		f := data(mac(1), 60)
		assert.Equal(t, txq.Admitted, e.s.SubmitMgmt(f, p))
		require.Len(t, e.hw.batches, 1)
		b := e.hw.batches[0]
		assert.Equal(t, frame.Voice, b.AC)
		assert.Equal(t, classify.Legacy, b.Class)
		assert.Equal(t, []*frame.Frame{f}, b.Frames)
		assert.EqualValues(t, 1, e.s.Stats().MgmtSent)
		assert.Zero(t, e.s.OccupiedSlots(frame.Voice))
	})
	t.Run("management ring", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mgmt := mock_txq.NewMockMgmtTransmitter(ctrl)
		e := newEnv(t, nil, func(d *txq.Deps) { d.Mgmt = mgmt })
		p := e.addClient(t, 1, station.Caps{})
		f := data(mac(1), 60)
		mgmt.EXPECT().FreeMgmtDescriptors().Return(4)
		mgmt.EXPECT().TransmitMgmt(p, f).Return(nil)

		assert.Equal(t, txq.Admitted, e.s.SubmitMgmt(f, p))
		assert.Empty(t, e.hw.batches)
		assert.EqualValues(t, 1, e.s.Stats().MgmtSent)
	})
	t.Run("management ring busy", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mgmt := mock_txq.NewMockMgmtTransmitter(ctrl)
		e := newEnv(t, nil, func(d *txq.Deps) { d.Mgmt = mgmt })
		p := e.addClient(t, 1, station.Caps{})
		f := data(mac(1), 60)
		gomock.InOrder(
			mgmt.EXPECT().FreeMgmtDescriptors().Return(0),
			mgmt.EXPECT().FreeMgmtDescriptors().Return(1),
			mgmt.EXPECT().TransmitMgmt(p, f).Return(nil),
		)

		assert.Equal(t, txq.Admitted, e.s.SubmitMgmt(f, p))
		assert.Equal(t, 1, e.s.OccupiedSlots(frame.Voice))
		assert.Equal(t, 1, e.s.RunRound(0))
		assert.Zero(t, e.s.OccupiedSlots(frame.Voice))
		st := e.s.Stats()
		assert.EqualValues(t, 1, st.MgmtSent)
		assert.EqualValues(t, 1, st.RingFull)
	})
	t.Run("management transmit error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mgmt := mock_txq.NewMockMgmtTransmitter(ctrl)
		e := newEnv(t, nil, func(d *txq.Deps) { d.Mgmt = mgmt })
		p := e.addClient(t, 1, station.Caps{})
		f := data(mac(1), 60)
		mgmt.EXPECT().FreeMgmtDescriptors().Return(1)
		mgmt.EXPECT().TransmitMgmt(p, f).Return(errors.New("no buffer"))

		assert.Equal(t, txq.Admitted, e.s.SubmitMgmt(f, p))
		assert.Equal(t, []*frame.Frame{f}, e.drops.frames)
		assert.Equal(t, []txq.DropReason{txq.DropTxError}, e.drops.reasons)
	})
	t.Run("behind queued voice frames", func(t *testing.T) {
		e := newEnv(t, nil)
		p := e.addClient(t, 1, station.Caps{})
		vo := e.submitN(t, p, mac(1), frame.Voice, 1)
		f := data(mac(1), 60)
		assert.Equal(t, txq.Admitted, e.s.SubmitMgmt(f, p))
		assert.Empty(t, e.hw.batches)

		for e.s.RunRound(0) > 0 {
		}
		assert.Equal(t, append(vo, f), e.hw.frames(p))
	})
	t.Run("sleeping peer", func(t *testing.T) {
		e := newEnv(t, nil)
		p := e.addClient(t, 1, station.Caps{})
		require.NoError(t, e.s.OnPowerSaveEntered(p))
		f := data(mac(1), 60)
		assert.Equal(t, txq.Admitted, e.s.SubmitMgmt(f, p))
		assert.Equal(t, 1, snapshot(t, e.s, p).PSQueued)
		assert.Empty(t, e.hw.batches)

		require.NoError(t, e.s.OnRetrieveTrigger(p))
		assert.Equal(t, 1, e.s.RunRound(0))
		assert.Equal(t, []*frame.Frame{f}, e.hw.frames(p))
	})
	t.Run("unknown peer", func(t *testing.T) {
		e := newEnv(t, nil)
		assert.Equal(t, txq.Rejected, e.s.SubmitMgmt(data(mac(1), 60), station.Ref{Index: 2}))
	})
}
