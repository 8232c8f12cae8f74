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

// Package swfifo implements the software FIFO, the token budget that bounds
// how many peers may have queued work per access category.
//
// Each access category has a fixed-length ring of slots. A slot names one
// peer, and a peer holds at most one slot per category. The head of a ring is
// the peer served next; a served peer that still has work re-acquires a slot
// at the tail, so peers sharing a category take turns in slot order.
package swfifo

import (
	"github.com/openwmac/wmac/txq/deque"
	"github.com/openwmac/wmac/txq/frame"
	"github.com/openwmac/wmac/txq/station"
)

type ring struct {
	slots deque.Deque[station.Ref]
	held  []bool
}

// Budget is the set of per-category slot rings.
type Budget struct {
	length int
	rings  [frame.NumAC]ring
}

// New creates a budget with length slots per category for peers with table
// indices below maxStations.
func New(length, maxStations int) *Budget {
	b := &Budget{length: length}
	for i := range b.rings {
		b.rings[i].held = make([]bool, maxStations)
	}
	return b
}

// Len returns the number of slots per category.
func (b *Budget) Len() int { return b.length }

// Occupied returns the number of occupied slots of the category.
func (b *Budget) Occupied(ac frame.AccessCategory) int {
	return b.rings[ac].slots.Len()
}

// Holds reports whether ref holds a slot in the category.
func (b *Budget) Holds(ac frame.AccessCategory, ref station.Ref) bool {
	return b.rings[ac].held[ref.Index]
}

// Acquire reserves a tail slot for ref. It reports whether ref holds a slot
// afterwards; a peer that already holds one keeps it.
func (b *Budget) Acquire(ac frame.AccessCategory, ref station.Ref) bool {
	r := &b.rings[ac]
	if r.held[ref.Index] {
		return true
	}
	if r.slots.Len() >= b.length {
		return false
	}
	r.slots.PushBack(ref)
	r.held[ref.Index] = true
	return true
}

// Head returns the peer named by the head slot of the category.
func (b *Budget) Head(ac frame.AccessCategory) (station.Ref, bool) {
	return b.rings[ac].slots.Front()
}

// PopHead clears the head slot of the category and returns the peer it named.
func (b *Budget) PopHead(ac frame.AccessCategory) (station.Ref, bool) {
	r := &b.rings[ac]
	ref, ok := r.slots.PopFront()
	if ok {
		r.held[ref.Index] = false
	}
	return ref, ok
}

// Restore puts ref back at the head of the category. It is used when the
// peer taken off the head could not be served this round.
func (b *Budget) Restore(ac frame.AccessCategory, ref station.Ref) {
	r := &b.rings[ac]
	if r.held[ref.Index] {
		return
	}
	r.slots.PushFront(ref)
	r.held[ref.Index] = true
}

// Release clears the slot ref holds in the category, wherever it is.
func (b *Budget) Release(ac frame.AccessCategory, ref station.Ref) {
	r := &b.rings[ac]
	if !r.held[ref.Index] {
		return
	}
	r.slots.RemoveFunc(func(s station.Ref) bool { return s.Index == ref.Index })
	r.held[ref.Index] = false
}

// Slots returns the peers named by the category's slots, head first.
func (b *Budget) Slots(ac frame.AccessCategory) []station.Ref {
	r := &b.rings[ac]
	out := make([]station.Ref, 0, r.slots.Len())
	for i := 0; i < r.slots.Len(); i++ {
		out = append(out, r.slots.At(i))
	}
	return out
}
