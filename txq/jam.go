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
	"github.com/openwmac/wmac/txq/priority"
	"github.com/openwmac/wmac/txq/station"
)

// TxStatus is the completion report of one batch.
type TxStatus struct {
	Peer station.Ref
	OK   bool
}

// Complete is called when the hardware finished freed descriptors of the
// access category. The reports update the failure counters of their peers;
// reports for peers that are gone are ignored.
func (s *Scheduler) Complete(ac frame.AccessCategory, freed int, reports []TxStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.ring.(Reclaimer); ok && freed > 0 {
		r.Reclaim(ac, freed)
	}
	for _, rep := range reports {
		st, ok := s.stations.Get(rep.Peer)
		if !ok {
			continue
		}
		if rep.OK {
			if st.Jammed(s.cfg.JamThreshold) {
				s.logger.Info("Peer recovered from jam", "peer", rep.Peer)
			}
			st.ContinuousFailures = 0
			continue
		}
		st.ContinuousFailures++
		if st.ContinuousFailures == s.cfg.JamThreshold {
			s.logger.Info("Peer jammed, throttling", "peer", rep.Peer,
				"failures", st.ContinuousFailures)
		}
	}
	s.kick(priority.Completion)
}

// jamDrop reports whether the next frame of a jammed peer must be dropped.
// A jammed peer may send one frame per retry interval.
func (s *Scheduler) jamDrop(st *station.Station) bool {
	if !st.Jammed(s.cfg.JamThreshold) {
		return false
	}
	interval := s.cfg.JamRetryInterval.Duration
	if _, ok := st.Kind().(station.Relay); ok {
		interval = s.cfg.RelayRetryInterval.Duration
	}
	now := s.now()
	if now.Before(st.LastRetry.Add(interval)) {
		return true
	}
	st.LastRetry = now
	return false
}
