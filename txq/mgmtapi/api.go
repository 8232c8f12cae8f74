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

// Package mgmtapi implements the http status API of the transmit scheduler.
package mgmtapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/openwmac/wmac/txq"
	"github.com/openwmac/wmac/txq/frame"
	"github.com/openwmac/wmac/txq/station"
)

// Scheduler is the read-only view of the scheduler the API exposes.
type Scheduler interface {
	Stations() []station.Snapshot
	StationByIndex(idx uint16) (station.Snapshot, bool)
	Stats() txq.Stats
	OccupiedSlots(ac frame.AccessCategory) int
	TIM() []station.Ref
}

// Server implements the http status API of the scheduler.
type Server struct {
	Scheduler Scheduler
}

// Handler returns the router serving the API under /api/v1.
func Handler(s *Server) http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
	}))
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/stations", s.GetStations)
		r.Get("/stations/{index}", s.GetStation)
		r.Get("/stats", s.GetStats)
	})
	return r
}

// Station is the API representation of a station.
type Station struct {
	Index              uint16         `json:"index"`
	Generation         uint32         `json:"generation"`
	Kind               string         `json:"kind"`
	Addr               string         `json:"addr"`
	PSMode             string         `json:"ps_mode"`
	Retrieve           string         `json:"retrieve"`
	AdmissionEnabled   bool           `json:"admission_enabled"`
	Enqueued           int            `json:"enqueued"`
	Queues             map[string]int `json:"queues"`
	PSQueued           int            `json:"ps_queued"`
	ContinuousFailures int            `json:"continuous_failures"`
	Caps               Caps           `json:"caps"`
}

// Caps is the API representation of the negotiated capabilities.
type Caps struct {
	HWAggregation    bool  `json:"hw_aggregation"`
	SWAggregation    bool  `json:"sw_aggregation"`
	PowerSaveCapable bool  `json:"power_save_capable"`
	Sessions         uint8 `json:"sessions"`
}

// StatsResponse is the body of the stats endpoint.
type StatsResponse struct {
	Admitted      uint64         `json:"admitted"`
	Rejected      uint64         `json:"rejected"`
	Batches       uint64         `json:"batches"`
	Dispatched    uint64         `json:"dispatched"`
	Dropped       uint64         `json:"dropped"`
	RingFull      uint64         `json:"ring_full"`
	PSDiverted    uint64         `json:"ps_diverted"`
	MgmtSent      uint64         `json:"mgmt_sent"`
	OccupiedSlots map[string]int `json:"occupied_slots"`
	TIM           []uint16       `json:"tim"`
}

// Problem is an RFC 7807 error body.
type Problem struct {
	Detail string `json:"detail,omitempty"`
	Status int    `json:"status"`
	Title  string `json:"title"`
}

// GetStations lists all associated stations.
func (s *Server) GetStations(w http.ResponseWriter, r *http.Request) {
	snaps := s.Scheduler.Stations()
	rep := make([]Station, 0, len(snaps))
	for _, snap := range snaps {
		rep = append(rep, convertStation(snap))
	}
	writeJSON(w, rep)
}

// GetStation returns one station by its table index.
func (s *Server) GetStation(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "index")
	idx, err := strconv.ParseUint(raw, 10, 16)
	if err != nil {
		ErrorResponse(w, Problem{
			Detail: err.Error(),
			Status: http.StatusBadRequest,
			Title:  "malformed station index",
		})
		return
	}
	snap, ok := s.Scheduler.StationByIndex(uint16(idx))
	if !ok {
		ErrorResponse(w, Problem{
			Detail: "no station at index " + raw,
			Status: http.StatusNotFound,
			Title:  "station not found",
		})
		return
	}
	writeJSON(w, convertStation(snap))
}

// GetStats returns the scheduler counters.
func (s *Server) GetStats(w http.ResponseWriter, r *http.Request) {
	st := s.Scheduler.Stats()
	rep := StatsResponse{
		Admitted:      st.Admitted,
		Rejected:      st.Rejected,
		Batches:       st.Batches,
		Dispatched:    st.Dispatched,
		Dropped:       st.Dropped,
		RingFull:      st.RingFull,
		PSDiverted:    st.PSDiverted,
		MgmtSent:      st.MgmtSent,
		OccupiedSlots: make(map[string]int, frame.NumAC),
		TIM:           []uint16{},
	}
	for ac := frame.AccessCategory(0); ac < frame.NumAC; ac++ {
		rep.OccupiedSlots[ac.String()] = s.Scheduler.OccupiedSlots(ac)
	}
	for _, ref := range s.Scheduler.TIM() {
		rep.TIM = append(rep.TIM, ref.Index)
	}
	writeJSON(w, rep)
}

func convertStation(snap station.Snapshot) Station {
	queues := make(map[string]int, frame.NumAC)
	for ac, n := range snap.QueueLens {
		queues[frame.AccessCategory(ac).String()] = n
	}
	return Station{
		Index:              snap.Ref.Index,
		Generation:         snap.Ref.Gen,
		Kind:               snap.Kind,
		Addr:               snap.Addr,
		PSMode:             snap.PSMode,
		Retrieve:           snap.Retrieve,
		AdmissionEnabled:   snap.AdmissionEnabled,
		Enqueued:           snap.Enqueued,
		Queues:             queues,
		PSQueued:           snap.PSQueued,
		ContinuousFailures: snap.ContinuousFailures,
		Caps: Caps{
			HWAggregation:    snap.Caps.HWAggregation,
			SWAggregation:    snap.Caps.SWAggregation,
			PowerSaveCapable: snap.Caps.PowerSaveCapable,
			Sessions:         snap.Caps.Sessions,
		},
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		ErrorResponse(w, Problem{
			Detail: err.Error(),
			Status: http.StatusInternalServerError,
			Title:  "unable to marshal response",
		})
	}
}

// ErrorResponse writes a detailed error response.
func ErrorResponse(w http.ResponseWriter, p Problem) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	// Nothing left to do if this fails.
	_ = enc.Encode(p)
}
