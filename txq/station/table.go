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

package station

import (
	"errors"
	"net"

	"github.com/openwmac/wmac/pkg/private/serrors"
)

var (
	// ErrTableFull is returned when every slot of the table is in use.
	ErrTableFull = errors.New("station table full")
	// ErrUnknown is returned for references that do not name a live station.
	ErrUnknown = errors.New("unknown station")
	// ErrNotEmpty is returned when removing a station that still owns frames.
	ErrNotEmpty = errors.New("station still owns frames")
)

type slot struct {
	gen     uint32
	station *Station
}

// Table is a fixed-capacity arena of stations.
type Table struct {
	slots []slot
	free  []uint16
	live  int
}

// NewTable creates a table with room for capacity stations.
func NewTable(capacity int) *Table {
	t := &Table{
		slots: make([]slot, capacity),
		free:  make([]uint16, 0, capacity),
	}
	// Hand out low indices first.
	for i := capacity - 1; i >= 0; i-- {
		t.free = append(t.free, uint16(i))
	}
	return t
}

// Cap returns the capacity of the table.
func (t *Table) Cap() int { return len(t.slots) }

// Len returns the number of live stations.
func (t *Table) Len() int { return t.live }

// Add creates a station. Admission starts enabled.
func (t *Table) Add(kind Kind, addr net.HardwareAddr, caps Caps) (*Station, error) {
	if len(t.free) == 0 {
		return nil, serrors.JoinNoStack(ErrTableFull, nil, "capacity", len(t.slots))
	}
	idx := t.free[len(t.free)-1]
	t.free = t.free[:len(t.free)-1]
	sl := &t.slots[idx]
	sl.gen++
	sl.station = &Station{
		ref:              Ref{Index: idx, Gen: sl.gen},
		kind:             kind,
		addr:             append(net.HardwareAddr(nil), addr...),
		Caps:             caps,
		AdmissionEnabled: true,
	}
	t.live++
	return sl.station, nil
}

// Get returns the station named by ref.
func (t *Table) Get(ref Ref) (*Station, bool) {
	if int(ref.Index) >= len(t.slots) {
		return nil, false
	}
	sl := &t.slots[ref.Index]
	if sl.station == nil || sl.gen != ref.Gen {
		return nil, false
	}
	return sl.station, true
}

// Remove frees the slot of the station named by ref. The station must not
// own any frame.
func (t *Table) Remove(ref Ref) error {
	st, ok := t.Get(ref)
	if !ok {
		return serrors.JoinNoStack(ErrUnknown, nil, "ref", ref)
	}
	if st.enqueued != 0 || st.psQueue.Len() != 0 {
		return serrors.JoinNoStack(ErrNotEmpty, nil, "ref", ref,
			"enqueued", st.enqueued, "ps_queued", st.psQueue.Len())
	}
	t.slots[ref.Index].station = nil
	t.free = append(t.free, ref.Index)
	t.live--
	return nil
}

// Each calls fn for every live station in index order.
func (t *Table) Each(fn func(*Station)) {
	for i := range t.slots {
		if st := t.slots[i].station; st != nil {
			fn(st)
		}
	}
}

// AnyInPowerSave reports whether any client station is in power save.
func (t *Table) AnyInPowerSave() bool {
	for i := range t.slots {
		st := t.slots[i].station
		if st == nil {
			continue
		}
		if _, ok := st.kind.(Client); ok && st.PSMode == PowerSave {
			return true
		}
	}
	return false
}
