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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics defines the transmit scheduler metrics.
type Metrics struct {
	AdmittedFramesTotal   *prometheus.CounterVec
	RejectedFramesTotal   *prometheus.CounterVec
	DispatchedBatchTotal  *prometheus.CounterVec
	DispatchedFramesTotal *prometheus.CounterVec
	DroppedFramesTotal    *prometheus.CounterVec
	RingFullTotal         *prometheus.CounterVec
	PSDivertedFramesTotal *prometheus.CounterVec
	OccupiedSlots         *prometheus.GaugeVec
	QueuedFrames          *prometheus.GaugeVec
	PSQueuedFrames        prometheus.Gauge
	Stations              prometheus.Gauge
}

// NewMetrics creates the scheduler metrics and registers them with reg. A nil
// reg registers nothing, which is useful in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		AdmittedFramesTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "txq_admitted_frames_total",
				Help: "Total number of frames admitted into the software queues.",
			},
			[]string{"ac"},
		),
		RejectedFramesTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "txq_rejected_frames_total",
				Help: "Total number of frames refused at admission.",
			},
			[]string{"ac"},
		),
		DispatchedBatchTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "txq_dispatched_batches_total",
				Help: "Total number of batches handed to the hardware.",
			},
			[]string{"ac", "type"},
		),
		DispatchedFramesTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "txq_dispatched_frames_total",
				Help: "Total number of frames handed to the hardware.",
			},
			[]string{"ac"},
		),
		DroppedFramesTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "txq_dropped_frames_total",
				Help: "Total number of admitted frames released without transmission.",
			},
			[]string{"reason"},
		),
		RingFullTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "txq_ring_full_total",
				Help: "Total number of frames deferred because the descriptor ring was full.",
			},
			[]string{"ac"},
		),
		PSDivertedFramesTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "txq_ps_diverted_frames_total",
				Help: "Total number of frames moved to a power-save side queue.",
			},
			[]string{"ac"},
		),
		OccupiedSlots: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "txq_swfifo_occupied_slots",
				Help: "Number of occupied software FIFO slots.",
			},
			[]string{"ac"},
		),
		QueuedFrames: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "txq_queued_frames",
				Help: "Number of frames waiting in the class queues.",
			},
			[]string{"ac"},
		),
		PSQueuedFrames: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "txq_ps_queued_frames",
				Help: "Number of frames waiting in power-save side queues.",
			},
		),
		Stations: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "txq_stations",
				Help: "Number of live station records.",
			},
		),
	}
}
