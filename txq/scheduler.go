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

// Package txq implements the transmit software-queueing and aggregation
// scheduler of a wireless MAC.
//
// Frames enter through Submit. They are classified, held in per-peer,
// per-access-category queues and counted against the software FIFO, a small
// per-category budget of peer slots. RunRound walks the categories from
// Voice down to Background, picks the peer at the head of each category's
// slot ring, gathers one batch of its frames (aggregating where the peer and
// the frames allow), checks the descriptor ring and hands the batch to the
// Transmitter. Peers in power save have their frames diverted to a side
// queue until they retrieve them.
//
// All state is guarded by a single lock. No method blocks.
package txq

import (
	"errors"
	"net"
	"sync"
	"time"

	"github.com/openwmac/wmac/pkg/log"
	"github.com/openwmac/wmac/pkg/private/serrors"
	"github.com/openwmac/wmac/txq/classify"
	"github.com/openwmac/wmac/txq/frame"
	"github.com/openwmac/wmac/txq/priority"
	"github.com/openwmac/wmac/txq/psq"
	"github.com/openwmac/wmac/txq/station"
	"github.com/openwmac/wmac/txq/swfifo"
)

// Status is the outcome of a submission.
type Status uint8

const (
	// Admitted means the scheduler took ownership of the frame.
	Admitted Status = iota
	// Rejected means the caller still owns the frame and must retry later
	// or release it.
	Rejected
)

func (s Status) String() string {
	if s == Admitted {
		return "admitted"
	}
	return "rejected"
}

// FromFrame as priority hint makes Submit derive the access category from
// the frame's user priority.
const FromFrame = frame.AccessCategory(0xff)

var (
	errMissingRing        = errors.New("ring must be set")
	errMissingTransmitter = errors.New("transmitter must be set")
	errNotInPowerSave     = errors.New("peer is not in power save")
	errNotClient          = errors.New("peer is not a client")
)

// Deps are the collaborators of the scheduler. Ring and Transmitter are
// required.
type Deps struct {
	Ring         Ring
	Transmitter  Transmitter
	Mgmt         MgmtTransmitter
	PowerManager PowerManager
	Capabilities CapabilityProvider
	Releaser     Releaser
	Metrics      *Metrics
	Logger       log.Logger
	// Now returns the current time. It defaults to time.Now.
	Now func() time.Time
}

// StationConfig describes a new station.
type StationConfig struct {
	Kind station.Kind
	Addr net.HardwareAddr
	Caps station.Caps
	// Transmitter, if set, replaces the default transmit path for this
	// peer.
	Transmitter Transmitter
}

// Stats are the scheduler counters.
type Stats struct {
	Admitted   uint64
	Rejected   uint64
	Batches    uint64
	Dispatched uint64
	Dropped    uint64
	RingFull   uint64
	PSDiverted uint64
	MgmtSent   uint64
}

// Scheduler is the transmit scheduler.
type Scheduler struct {
	mu sync.Mutex

	cfg      Config
	stations *station.Table
	budget   *swfifo.Budget
	tokens   *psq.TokenQueue
	tim      *psq.TIM
	paths    []Transmitter

	ring     Ring
	tx       Transmitter
	mgmt     MgmtTransmitter
	pm       PowerManager
	caps     CapabilityProvider
	releaser Releaser
	metrics  *Metrics
	logger   log.Logger
	now      func() time.Time
	kick     func(priority.Label)

	stats Stats
}

// New creates a scheduler. cfg must have its defaults initialized.
func New(cfg Config, deps Deps) (*Scheduler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if deps.Ring == nil {
		return nil, errMissingRing
	}
	if deps.Transmitter == nil {
		return nil, errMissingTransmitter
	}
	s := &Scheduler{
		cfg:      cfg,
		stations: station.NewTable(cfg.MaxStations),
		budget:   swfifo.New(cfg.SWFIFOLen, cfg.MaxStations),
		tokens:   psq.NewTokenQueue(cfg.MaxStations),
		tim:      psq.NewTIM(cfg.MaxStations),
		paths:    make([]Transmitter, cfg.MaxStations),
		ring:     deps.Ring,
		tx:       deps.Transmitter,
		mgmt:     deps.Mgmt,
		pm:       deps.PowerManager,
		caps:     deps.Capabilities,
		releaser: deps.Releaser,
		metrics:  deps.Metrics,
		logger:   deps.Logger,
		now:      deps.Now,
		kick:     func(priority.Label) {},
	}
	if s.logger == nil {
		s.logger = log.Root()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s, nil
}

// AddStation creates the record of a newly associated peer.
func (s *Scheduler) AddStation(sc StationConfig) (station.Ref, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.stations.Add(sc.Kind, sc.Addr, sc.Caps)
	if err != nil {
		return station.Ref{}, err
	}
	s.paths[st.Ref().Index] = sc.Transmitter
	s.logger.Info("Station added", "peer", st.Ref(), "kind", sc.Kind, "addr", st.Addr())
	if s.metrics != nil {
		s.metrics.Stations.Set(float64(s.stations.Len()))
	}
	return st.Ref(), nil
}

// SetCaps updates the negotiated capabilities of a peer.
func (s *Scheduler) SetCaps(peer station.Ref, caps station.Caps) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.get(peer)
	if err != nil {
		return err
	}
	st.Caps = caps
	return nil
}

// SetAdmission enables or disables admission of new frames for a peer.
// Disabling it lets the queues of a departing peer drain.
func (s *Scheduler) SetAdmission(peer station.Ref, enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.get(peer)
	if err != nil {
		return err
	}
	st.AdmissionEnabled = enabled
	return nil
}

// Submit offers a frame for the peer. hint selects the access category;
// FromFrame derives it from the frame. Management frames take the
// single-frame path.
func (s *Scheduler) Submit(f *frame.Frame, peer station.Ref, hint frame.AccessCategory) Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	ac := hint
	if !ac.Valid() {
		ac = f.AccessCategory()
	}
	st, err := s.get(peer)
	if err != nil {
		return s.reject(ac, "peer", peer, "err", err)
	}
	if f.Attrs.Mgmt {
		return s.submitMgmt(st, f)
	}
	if !st.AdmissionEnabled {
		return s.reject(ac, "peer", peer, "cause", "admission disabled")
	}
	if s.buffering(st, ac) {
		if !s.psEnqueue(st, f, ac) {
			return s.reject(ac, "peer", peer, "cause", "power-save queue full")
		}
		return s.admitted(ac)
	}
	if st.Enqueued() >= s.cfg.MaxQueuedPerPeer && st.QueueLen(ac) >= s.cfg.ReservedPerClass {
		return s.reject(ac, "peer", peer, "cause", "peer queue depth")
	}
	if !s.budget.Acquire(ac, peer) {
		return s.reject(ac, "peer", peer, "cause", "software fifo full")
	}
	st.Push(ac, f)
	return s.admitted(ac)
}

// SubmitMgmt offers a management frame for the peer.
func (s *Scheduler) SubmitMgmt(f *frame.Frame, peer station.Ref) Status {
	f.Attrs.Mgmt = true
	return s.Submit(f, peer, frame.Voice)
}

// TeardownPeer releases every frame queued for the peer and frees its
// record. The reference is invalid afterwards.
func (s *Scheduler) TeardownPeer(peer station.Ref) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.get(peer)
	if err != nil {
		return err
	}
	released := 0
	for ac := frame.AccessCategory(0); ac < frame.NumAC; ac++ {
		st.DrainQueue(ac, func(f *frame.Frame) {
			s.drop(f, DropTeardown)
			released++
		})
		s.budget.Release(ac, peer)
	}
	st.PSDrain(func(b station.Buffered) {
		s.drop(b.Frame, DropTeardown)
		released++
	})
	s.tokens.Remove(peer.Index)
	s.tim.Clear(peer.Index)
	s.paths[peer.Index] = nil
	wasAsleep := st.PSMode == station.PowerSave
	if err := s.stations.Remove(peer); err != nil {
		return err
	}
	s.logger.Info("Station removed", "peer", peer, "released", released)
	if wasAsleep && !s.stations.AnyInPowerSave() {
		s.releaseGroupTraffic()
		s.kick(priority.Submission)
	}
	if s.metrics != nil {
		s.metrics.Stations.Set(float64(s.stations.Len()))
	}
	s.updateGauges()
	return nil
}

// Stats returns a copy of the counters.
func (s *Scheduler) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// Station returns a snapshot of the peer's state.
func (s *Scheduler) Station(peer station.Ref) (station.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.get(peer)
	if err != nil {
		return station.Snapshot{}, err
	}
	return st.Snapshot(), nil
}

// Stations returns snapshots of all live stations in table order.
func (s *Scheduler) Stations() []station.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]station.Snapshot, 0, s.stations.Len())
	s.stations.Each(func(st *station.Station) {
		out = append(out, st.Snapshot())
	})
	return out
}

// StationByIndex returns the live station at the table index.
func (s *Scheduler) StationByIndex(idx uint16) (station.Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var snap station.Snapshot
	found := false
	s.stations.Each(func(st *station.Station) {
		if st.Ref().Index == idx {
			snap, found = st.Snapshot(), true
		}
	})
	return snap, found
}

// OccupiedSlots returns the number of occupied software FIFO slots of the
// access category.
func (s *Scheduler) OccupiedSlots(ac frame.AccessCategory) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.budget.Occupied(ac)
}

// SetKick installs the function called when new work is available.
func (s *Scheduler) SetKick(kick func(priority.Label)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.kick = kick
}

func (s *Scheduler) get(peer station.Ref) (*station.Station, error) {
	st, ok := s.stations.Get(peer)
	if !ok {
		return nil, serrors.JoinNoStack(station.ErrUnknown, nil, "peer", peer)
	}
	return st, nil
}

func (s *Scheduler) capsOf(st *station.Station) {
	if s.caps == nil {
		return
	}
	if caps, ok := s.caps.PeerCapability(st.Ref()); ok {
		st.Caps = caps
	}
}

func (s *Scheduler) classify(f *frame.Frame, st *station.Station) classify.Class {
	s.capsOf(st)
	return classify.Classify(f, st)
}

func (s *Scheduler) admitted(ac frame.AccessCategory) Status {
	s.stats.Admitted++
	if s.metrics != nil {
		s.metrics.AdmittedFramesTotal.WithLabelValues(ac.String()).Inc()
		s.metrics.OccupiedSlots.WithLabelValues(ac.String()).Set(float64(s.budget.Occupied(ac)))
	}
	s.kick(priority.Submission)
	return Admitted
}

func (s *Scheduler) reject(ac frame.AccessCategory, ctx ...any) Status {
	s.stats.Rejected++
	if s.metrics != nil {
		s.metrics.RejectedFramesTotal.WithLabelValues(ac.String()).Inc()
	}
	if s.logger.Enabled(log.DebugLevel) {
		s.logger.Debug("Frame rejected", append([]any{"ac", ac}, ctx...)...)
	}
	return Rejected
}

func (s *Scheduler) drop(f *frame.Frame, reason DropReason) {
	s.stats.Dropped++
	if s.metrics != nil {
		s.metrics.DroppedFramesTotal.WithLabelValues(string(reason)).Inc()
	}
	if s.releaser != nil {
		s.releaser.Release(f, reason)
	}
}

func (s *Scheduler) updateGauges() {
	if s.metrics == nil {
		return
	}
	var queued [frame.NumAC]int
	psQueued := 0
	s.stations.Each(func(st *station.Station) {
		for ac := range queued {
			queued[ac] += st.QueueLen(frame.AccessCategory(ac))
		}
		psQueued += st.PSLen()
	})
	for ac := frame.AccessCategory(0); ac < frame.NumAC; ac++ {
		s.metrics.QueuedFrames.WithLabelValues(ac.String()).Set(float64(queued[ac]))
		s.metrics.OccupiedSlots.WithLabelValues(ac.String()).Set(float64(s.budget.Occupied(ac)))
	}
	s.metrics.PSQueuedFrames.Set(float64(psQueued))
}
