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
	"github.com/openwmac/wmac/txq/classify"
	"github.com/openwmac/wmac/txq/frame"
	"github.com/openwmac/wmac/txq/station"
)

// dispatch hands b to the transmit path of its peer. If the peer is gone or
// the transmitter refuses the batch, its frames are dropped.
func (s *Scheduler) dispatch(st *station.Station, b *Batch) bool {
	if cur, ok := s.stations.Get(b.Peer); !ok || cur != st {
		s.dropBatch(b, DropPeerGone)
		return false
	}
	tx := s.paths[b.Peer.Index]
	if tx == nil {
		tx = s.tx
	}
	if err := tx.Transmit(b); err != nil {
		s.logger.Error("Transmit failed", "peer", b.Peer, "ac", b.AC,
			"frames", len(b.Frames), "err", err)
		s.dropBatch(b, DropTxError)
		return false
	}
	s.stats.Batches++
	s.stats.Dispatched += uint64(len(b.Frames))
	if s.metrics != nil {
		s.metrics.DispatchedBatchTotal.WithLabelValues(b.AC.String(), b.Class.String()).Inc()
		s.metrics.DispatchedFramesTotal.WithLabelValues(b.AC.String()).Add(float64(len(b.Frames)))
	}
	return true
}

func (s *Scheduler) dropBatch(b *Batch, reason DropReason) {
	for _, f := range b.Frames {
		s.drop(f, reason)
	}
	b.Frames = nil
}

type mgmtResult uint8

const (
	mgmtSent mgmtResult = iota
	mgmtBusy
	mgmtFailed
)

// submitMgmt admits a management frame. It is sent right away when the
// management ring has room and nothing is queued ahead of it, buffered when
// the peer sleeps, and parked in the Voice queue otherwise.
func (s *Scheduler) submitMgmt(st *station.Station, f *frame.Frame) Status {
	const ac = frame.Voice
	if s.buffering(st, ac) {
		if !s.psEnqueue(st, f, ac) {
			return s.reject(ac, "peer", st.Ref(), "cause", "power-save queue full")
		}
		return s.admitted(ac)
	}
	if st.QueueLen(ac) == 0 {
		switch s.sendMgmt(st, f) {
		case mgmtSent, mgmtFailed:
			s.stats.Admitted++
			return Admitted
		}
	}
	if !s.budget.Acquire(ac, st.Ref()) {
		return s.reject(ac, "peer", st.Ref(), "cause", "software fifo full")
	}
	st.Push(ac, f)
	return s.admitted(ac)
}

// sendMgmt sends one management frame on the single-frame path. Without a
// dedicated management transmitter, the frame goes out as a one-frame Voice
// batch.
func (s *Scheduler) sendMgmt(st *station.Station, f *frame.Frame) mgmtResult {
	if s.mgmt == nil {
		if s.ring.FreeDescriptors(frame.Voice) < 1 {
			s.ringFull(frame.Voice)
			return mgmtBusy
		}
		b := &Batch{Peer: st.Ref(), AC: frame.Voice}
		b.add(f, classify.Legacy, 1)
		if !s.dispatch(st, b) {
			return mgmtFailed
		}
		s.stats.MgmtSent++
		return mgmtSent
	}
	if s.mgmt.FreeMgmtDescriptors() < 1 {
		s.ringFull(frame.Voice)
		return mgmtBusy
	}
	if err := s.mgmt.TransmitMgmt(st.Ref(), f); err != nil {
		s.logger.Error("Management transmit failed", "peer", st.Ref(), "err", err)
		s.drop(f, DropTxError)
		return mgmtFailed
	}
	s.stats.MgmtSent++
	s.stats.Dispatched++
	return mgmtSent
}
