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
	"bytes"

	"github.com/openwmac/wmac/txq/classify"
	"github.com/openwmac/wmac/txq/frame"
	"github.com/openwmac/wmac/txq/station"
)

type gatherResult struct {
	batch *Batch
	// consumed is the number of frames taken off the queue, sent or dropped.
	consumed int
	// mgmt is the number of management frames sent on the single-frame
	// path.
	mgmt int
	// stop is set when the class must not be served further this round.
	stop bool
}

// gather builds one batch from the head of the peer's class queue. Frames
// that cannot join the batch stay at the head of the queue.
func (s *Scheduler) gather(st *station.Station, ac frame.AccessCategory, quota int) gatherResult {
	var res gatherResult
	b := &Batch{Peer: st.Ref(), AC: ac}
	for res.consumed < quota {
		f, ok := st.Pop(ac)
		if !ok {
			break
		}
		if f.Attrs.Mgmt {
			if len(b.Frames) != 0 {
				st.PushFront(ac, f)
				break
			}
			switch s.sendMgmt(st, f) {
			case mgmtBusy:
				st.PushFront(ac, f)
				res.stop = true
			case mgmtSent:
				res.mgmt++
			}
			if res.stop {
				break
			}
			res.consumed++
			continue
		}
		if s.jamDrop(st) {
			s.drop(f, DropJam)
			res.consumed++
			continue
		}

		cls := s.classify(f, st)
		need := descriptorsFor(f, cls)
		if s.ring.FreeDescriptors(ac)-b.Descriptors < need {
			st.PushFront(ac, f)
			s.ringFull(ac)
			res.stop = true
			break
		}
		if len(b.Frames) == 0 {
			if cls.Aggregatable() && s.holdBack(st, ac) {
				st.PushFront(ac, f)
				res.stop = true
				break
			}
			b.add(f, cls, need)
			res.consumed++
			if !cls.Aggregatable() || !s.aggregatable(f, 0) {
				break
			}
			continue
		}
		if cls != b.Class || !s.compatible(b, f) {
			st.PushFront(ac, f)
			break
		}
		b.add(f, cls, need)
		res.consumed++
		if b.Class == classify.SWAggregate && len(b.Frames) >= SWAggregateMaxFrames {
			break
		}
	}
	if len(b.Frames) == 0 {
		return res
	}
	if len(b.Frames) == 1 && b.Class.Aggregatable() {
		b.Class = classify.Legacy
	}
	res.batch = b
	return res
}

// holdBack reports whether a lone aggregatable frame should wait for company.
// It only applies when the frame was the last one queued, no other peer
// waits in the class and the ring still has descriptors in flight.
func (s *Scheduler) holdBack(st *station.Station, ac frame.AccessCategory) bool {
	if !s.cfg.AggregateHoldback || st.QueueLen(ac) != 0 || s.budget.Occupied(ac) != 0 {
		return false
	}
	busy, ok := s.ring.(BusyRing)
	return ok && busy.InFlight(ac) > 0
}

// aggregatable reports whether f may join an aggregate of held bytes.
func (s *Scheduler) aggregatable(f *frame.Frame, held int) bool {
	a := f.Attrs
	switch {
	case a.Mgmt, a.ControlPlane, a.ChecksumOffload, a.SegmentOffload:
		return false
	case f.Multicast():
		return false
	case f.Len() <= f.MinAggregateLen():
		return false
	default:
		return held+f.Len() <= s.cfg.MaxAggregateBytes
	}
}

// compatible reports whether f can be folded into the aggregate b.
func (s *Scheduler) compatible(b *Batch, f *frame.Frame) bool {
	if b.Class == classify.SWAggregate && len(b.Frames) >= SWAggregateMaxFrames {
		return false
	}
	if !bytes.Equal(b.Frames[0].Attrs.Dst, f.Attrs.Dst) {
		return false
	}
	return s.aggregatable(f, b.Bytes)
}

func (s *Scheduler) ringFull(ac frame.AccessCategory) {
	s.stats.RingFull++
	if s.metrics != nil {
		s.metrics.RingFullTotal.WithLabelValues(ac.String()).Inc()
	}
}
