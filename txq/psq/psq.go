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

// Package psq contains the power-save bookkeeping shared across peers: the
// retrieve token queue and the traffic indication bitmap.
package psq

import (
	"github.com/openwmac/wmac/txq/deque"
	"github.com/openwmac/wmac/txq/station"
)

// TokenQueue is a FIFO of peers waiting for a retrieve opportunity. A peer is
// queued at most once.
type TokenQueue struct {
	q      deque.Deque[station.Ref]
	queued []bool
}

// NewTokenQueue creates a queue for peers with indices below maxStations.
func NewTokenQueue(maxStations int) *TokenQueue {
	return &TokenQueue{queued: make([]bool, maxStations)}
}

// Enqueue appends ref unless it is already queued. It reports whether ref was
// added.
func (t *TokenQueue) Enqueue(ref station.Ref) bool {
	if t.queued[ref.Index] {
		return false
	}
	t.q.PushBack(ref)
	t.queued[ref.Index] = true
	return true
}

// Dequeue pops the oldest token.
func (t *TokenQueue) Dequeue() (station.Ref, bool) {
	ref, ok := t.q.PopFront()
	if ok {
		t.queued[ref.Index] = false
	}
	return ref, ok
}

// Remove drops the token of the peer at index idx, if any.
func (t *TokenQueue) Remove(idx uint16) {
	if !t.queued[idx] {
		return
	}
	t.q.RemoveFunc(func(r station.Ref) bool { return r.Index == idx })
	t.queued[idx] = false
}

// Len returns the number of queued tokens.
func (t *TokenQueue) Len() int { return t.q.Len() }

// TIM is the traffic indication bitmap: bit n is set while the peer at table
// index n has power-save frames buffered.
type TIM struct {
	words []uint64
}

// NewTIM creates a bitmap for maxStations peers.
func NewTIM(maxStations int) *TIM {
	return &TIM{words: make([]uint64, (maxStations+63)/64)}
}

// Set marks the peer as having buffered traffic.
func (m *TIM) Set(idx uint16) { m.words[idx/64] |= 1 << (idx % 64) }

// Clear marks the peer as having nothing buffered.
func (m *TIM) Clear(idx uint16) { m.words[idx/64] &^= 1 << (idx % 64) }

// IsSet reports whether the peer has buffered traffic.
func (m *TIM) IsSet(idx uint16) bool { return m.words[idx/64]&(1<<(idx%64)) != 0 }

// Indices returns the indices of all marked peers in ascending order.
func (m *TIM) Indices() []uint16 {
	var out []uint16
	for w, word := range m.words {
		for b := 0; word != 0; b++ {
			if word&1 != 0 {
				out = append(out, uint16(w*64+b))
			}
			word >>= 1
		}
	}
	return out
}
