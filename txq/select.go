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
	"github.com/openwmac/wmac/txq/frame"
)

// RunRound performs one scheduling pass over all access categories and
// returns the number of batches handed to the hardware, management frames
// sent on their own path included. At most maxBatches batches are
// dispatched; a non-positive value uses the configured bound.
func (s *Scheduler) RunRound(maxBatches int) int {
	if maxBatches <= 0 {
		maxBatches = s.cfg.MaxBatchesPerRound
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.serveRetrieveToken()

	anyAsleep := s.stations.AnyInPowerSave()
	dispatched := 0
	for _, ac := range frame.Descending {
		if dispatched >= maxBatches {
			break
		}
		dispatched += s.serveClass(ac, anyAsleep, maxBatches-dispatched)
	}
	s.updateGauges()
	return dispatched
}

// serveClass walks the slot ring of one access category until its quota is
// used up, the ring pushes back, or every slot was visited once.
func (s *Scheduler) serveClass(ac frame.AccessCategory, anyAsleep bool, maxBatches int) int {
	quota := s.cfg.ClassQuota
	dispatched := 0
	// Peers that still have work re-acquire a tail slot, so visiting each
	// slot once bounds the loop.
	for visits := s.budget.Occupied(ac); visits > 0; visits-- {
		if quota <= 0 || dispatched >= maxBatches {
			break
		}
		ref, ok := s.budget.PopHead(ac)
		if !ok {
			break
		}
		st, ok := s.stations.Get(ref)
		if !ok || st.QueueLen(ac) == 0 {
			continue
		}
		if s.deferred(st, anyAsleep) {
			s.divert(st, ac)
			continue
		}

		res := s.gather(st, ac, quota)
		quota -= res.consumed
		dispatched += res.mgmt
		if res.batch != nil {
			s.dispatch(st, res.batch)
			dispatched++
		}
		switch {
		case st.QueueLen(ac) == 0:
			s.retrieveProgress(st)
		case res.stop:
			s.budget.Restore(ac, ref)
			return dispatched
		default:
			s.budget.Acquire(ac, ref)
		}
	}
	return dispatched
}
