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
	"github.com/openwmac/wmac/pkg/private/serrors"
	"github.com/openwmac/wmac/txq/frame"
	"github.com/openwmac/wmac/txq/priority"
	"github.com/openwmac/wmac/txq/station"
)

// OnPowerSaveEntered records that the peer went to sleep. Frames already
// queued for it count as buffered right away and are moved to its side queue
// by the next scheduling round.
func (s *Scheduler) OnPowerSaveEntered(peer station.Ref) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.client(peer)
	if err != nil {
		return err
	}
	if st.PSMode == station.PowerSave {
		return nil
	}
	st.PSMode = station.PowerSave
	st.Retrieve = station.Idle
	for ac := frame.AccessCategory(0); ac < frame.NumAC; ac++ {
		if st.QueueLen(ac) > 0 {
			st.RetrieveBitmap |= 1 << ac
		}
	}
	if st.RetrieveBitmap != 0 {
		s.tim.Set(peer.Index)
		s.kick(priority.Submission)
	}
	s.logger.Debug("Peer entered power save", "peer", peer, "queued", st.Enqueued())
	return nil
}

// OnRetrieveTrigger starts flushing the side queue of a sleeping peer, for
// example on a PS-Poll or a trigger frame.
func (s *Scheduler) OnRetrieveTrigger(peer station.Ref) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.client(peer)
	if err != nil {
		return err
	}
	if st.PSMode != station.PowerSave {
		return serrors.JoinNoStack(errNotInPowerSave, nil, "peer", peer)
	}
	st.Retrieve = station.Retrieving
	s.tokens.Enqueue(peer)
	s.kick(priority.Submission)
	return nil
}

// OnRetrieveComplete is the answer of the power management module to
// PowerManager.RequestPSClear. A peer that stays asleep keeps buffering; a
// peer that woke up gets its remaining backlog back on the normal path.
func (s *Scheduler) OnRetrieveComplete(peer station.Ref, stillAsleep bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.client(peer)
	if err != nil {
		return err
	}
	if stillAsleep {
		st.PSMode = station.PowerSave
		st.Retrieve = station.Idle
		return nil
	}
	s.wake(st)
	return nil
}

// OnAwake records that the peer left power save on its own.
func (s *Scheduler) OnAwake(peer station.Ref) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.client(peer)
	if err != nil {
		return err
	}
	s.wake(st)
	return nil
}

// OnDTIM releases the buffered group-addressed traffic after a DTIM beacon.
func (s *Scheduler) OnDTIM() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.releaseGroupTraffic()
	s.kick(priority.Submission)
}

func (s *Scheduler) releaseGroupTraffic() {
	s.stations.Each(func(st *station.Station) {
		if _, ok := st.Kind().(station.Multicast); !ok {
			return
		}
		if st.PSLen() == 0 && st.Enqueued() == 0 {
			return
		}
		st.Retrieve = station.Retrieving
		s.tokens.Enqueue(st.Ref())
	})
}

// MoreData reports whether frames are buffered for the peer, which is the
// value of the more-data indication sent to a sleeping peer.
func (s *Scheduler) MoreData(peer station.Ref) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.stations.Get(peer)
	if !ok {
		return false
	}
	return st.PSLen() > 0 || (st.PSMode == station.PowerSave && st.Enqueued() > 0)
}

// TIM returns the peers with buffered power-save traffic in index order.
func (s *Scheduler) TIM() []station.Ref {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []station.Ref
	for _, idx := range s.tim.Indices() {
		s.stations.Each(func(st *station.Station) {
			if st.Ref().Index == idx {
				out = append(out, st.Ref())
			}
		})
	}
	return out
}

func (s *Scheduler) client(peer station.Ref) (*station.Station, error) {
	st, err := s.get(peer)
	if err != nil {
		return nil, err
	}
	if _, ok := st.Kind().(station.Client); !ok {
		return nil, serrors.JoinNoStack(errNotClient, nil, "peer", peer, "kind", st.Kind())
	}
	return st, nil
}

func (s *Scheduler) wake(st *station.Station) {
	st.PSMode = station.Active
	st.Retrieve = station.Done
	if st.PSLen() > 0 {
		s.tokens.Enqueue(st.Ref())
	} else {
		st.RetrieveBitmap = 0
		s.tim.Clear(st.Ref().Index)
	}
	if !s.stations.AnyInPowerSave() {
		s.releaseGroupTraffic()
	}
	s.kick(priority.Submission)
}

// sleeping reports whether st cannot receive now: a client in power save, or
// the multicast entry while any client sleeps.
func (s *Scheduler) sleeping(st *station.Station) bool {
	switch st.Kind().(type) {
	case station.Client:
		return st.PSMode == station.PowerSave
	case station.Multicast:
		return s.stations.AnyInPowerSave()
	default:
		return false
	}
}

// buffering reports whether a new frame of the class goes to the side queue.
// Frames of a class never overtake each other: while the side queue still
// holds frames of the class, new ones follow them there, and while older
// frames wait in the class queue to be diverted, new ones line up behind
// them.
func (s *Scheduler) buffering(st *station.Station, ac frame.AccessCategory) bool {
	if st.PSHolds(ac) {
		return true
	}
	if !s.sleeping(st) {
		return false
	}
	return st.Retrieve == station.Retrieving || st.QueueLen(ac) == 0
}

// deferred reports whether the selector must not serve st now.
func (s *Scheduler) deferred(st *station.Station, anyAsleep bool) bool {
	if st.Retrieve == station.Retrieving {
		return false
	}
	switch st.Kind().(type) {
	case station.Client:
		return st.PSMode == station.PowerSave
	case station.Multicast:
		return anyAsleep
	default:
		return false
	}
}

func (s *Scheduler) psLimit(st *station.Station) int {
	if _, ok := st.Kind().(station.Multicast); ok {
		return s.cfg.McastPSQueueLen
	}
	return s.cfg.PSQueueLen
}

// psEnqueue buffers f for the sleeping peer st.
func (s *Scheduler) psEnqueue(st *station.Station, f *frame.Frame, ac frame.AccessCategory) bool {
	if !st.PSPush(f, ac, s.psLimit(st)) {
		return false
	}
	s.buffered(st, ac, 1)
	if st.Retrieve == station.Retrieving || !s.sleeping(st) {
		s.tokens.Enqueue(st.Ref())
	}
	return true
}

func (s *Scheduler) buffered(st *station.Station, ac frame.AccessCategory, n int) {
	st.RetrieveBitmap |= 1 << ac
	s.tim.Set(st.Ref().Index)
	s.stats.PSDiverted += uint64(n)
	if s.metrics != nil {
		s.metrics.PSDivertedFramesTotal.WithLabelValues(ac.String()).Add(float64(n))
	}
}

// divert moves the class queue of a sleeping peer to its side queue. The
// caller already cleared the peer's slot. Frames still in the class queue are
// older than any buffered frame of the class, so they go to the front. Frames
// beyond the side queue bound are dropped, newest first.
func (s *Scheduler) divert(st *station.Station, ac frame.AccessCategory) {
	var fs []*frame.Frame
	st.DrainQueue(ac, func(f *frame.Frame) {
		fs = append(fs, f)
	})
	room := max(s.psLimit(st)-st.PSLen(), 0)
	if len(fs) > room {
		for _, f := range fs[room:] {
			s.drop(f, DropPSOverflow)
		}
		fs = fs[:room]
	}
	for i := len(fs) - 1; i >= 0; i-- {
		st.PSPushFront(station.Buffered{Frame: fs[i], AC: ac})
	}
	if len(fs) > 0 {
		s.buffered(st, ac, len(fs))
	}
}

// serveRetrieveToken pops one retrieve token and moves the side queue of its
// peer onto the class queues, so the selector serves it this round. A class
// without a free slot keeps its frames buffered, in order, without holding
// back the other classes.
func (s *Scheduler) serveRetrieveToken() {
	ref, ok := s.tokens.Dequeue()
	if !ok {
		return
	}
	st, ok := s.stations.Get(ref)
	if !ok || s.deferred(st, s.stations.AnyInPowerSave()) {
		return
	}
	var blocked [frame.NumAC]bool
	var kept []station.Buffered
	for {
		b, ok := st.PSPop()
		if !ok {
			break
		}
		if blocked[b.AC] || !s.budget.Acquire(b.AC, ref) {
			blocked[b.AC] = true
			kept = append(kept, b)
			continue
		}
		st.Push(b.AC, b.Frame)
		st.RetrieveBitmap |= 1 << b.AC
	}
	for i := len(kept) - 1; i >= 0; i-- {
		st.PSPushFront(kept[i])
	}
	if st.PSLen() > 0 {
		s.tokens.Enqueue(ref)
		return
	}
	s.retrieveProgress(st)
}

// retrieveProgress clears the retrieve bits of drained classes and ends the
// flush once nothing is left.
func (s *Scheduler) retrieveProgress(st *station.Station) {
	for ac := frame.AccessCategory(0); ac < frame.NumAC; ac++ {
		if st.QueueLen(ac) == 0 && !st.PSHolds(ac) {
			st.RetrieveBitmap &^= 1 << ac
		}
	}
	if st.PSLen() != 0 || st.RetrieveBitmap != 0 {
		return
	}
	s.tim.Clear(st.Ref().Index)
	if st.Retrieve != station.Retrieving {
		return
	}
	switch st.Kind().(type) {
	case station.Client:
		st.Retrieve = station.WaitingEvent
		if s.pm != nil {
			s.pm.RequestPSClear(st.Ref())
		}
	default:
		st.Retrieve = station.Idle
	}
}
