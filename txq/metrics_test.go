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
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openwmac/wmac/txq"
	"github.com/openwmac/wmac/txq/frame"
	"github.com/openwmac/wmac/txq/station"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	metrics := txq.NewMetrics(reg)
	e := newEnv(t, func(cfg *txq.Config) { cfg.SWFIFOLen = 1 },
		func(d *txq.Deps) { d.Metrics = metrics })
	p1 := e.addClient(t, 1, swAgg)
	p2 := e.addClient(t, 2, station.Caps{})
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.Stations))

	e.submitN(t, p1, mac(1), frame.BestEffort, 2)
	require.Equal(t, txq.Rejected, e.s.Submit(data(mac(2), 100), p2, frame.BestEffort))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.AdmittedFramesTotal.WithLabelValues("BE")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.RejectedFramesTotal.WithLabelValues("BE")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.OccupiedSlots.WithLabelValues("BE")))

	assert.Equal(t, 1, e.s.RunRound(0))
	assert.Equal(t, 1.0, testutil.ToFloat64(
		metrics.DispatchedBatchTotal.WithLabelValues("BE", "sw_aggregate")))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.DispatchedFramesTotal.WithLabelValues("BE")))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.OccupiedSlots.WithLabelValues("BE")))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.QueuedFrames.WithLabelValues("BE")))

	require.NoError(t, e.s.OnPowerSaveEntered(p2))
	e.submitN(t, p2, mac(2), frame.Video, 1)
	e.s.RunRound(0)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.PSDivertedFramesTotal.WithLabelValues("VI")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.PSQueuedFrames))

	require.NoError(t, e.s.TeardownPeer(p2))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.DroppedFramesTotal.WithLabelValues("teardown")))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.PSQueuedFrames))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Stations))

	e.hw.free[frame.Voice] = 0
	e.submitN(t, p1, mac(1), frame.Voice, 1)
	e.s.RunRound(0)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.RingFullTotal.WithLabelValues("VO")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.QueuedFrames.WithLabelValues("VO")))
}

func TestNilMetrics(t *testing.T) {
	assert.NotNil(t, txq.NewMetrics(nil))
}
