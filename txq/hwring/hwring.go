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

// Package hwring simulates the hardware side of the transmit path: one
// descriptor ring per access category, a management ring, and a device that
// completes dispatched batches after a delay.
package hwring

import (
	"errors"
	"sync"

	"github.com/openwmac/wmac/pkg/private/serrors"
	"github.com/openwmac/wmac/txq/frame"
)

// ErrRingFull is returned when a batch needs more descriptors than are free.
var ErrRingFull = errors.New("descriptor ring full")

// Ring is a set of descriptor rings, one per access category.
type Ring struct {
	mu       sync.Mutex
	size     int
	inFlight [frame.NumAC]int
}

// New creates rings of size descriptors each.
func New(size int) *Ring {
	return &Ring{size: size}
}

// Size returns the number of descriptors per ring.
func (r *Ring) Size() int { return r.size }

// FreeDescriptors returns the free descriptors of the access category.
func (r *Ring) FreeDescriptors(ac frame.AccessCategory) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.size - r.inFlight[ac]
}

// InFlight returns the descriptors owned by the hardware.
func (r *Ring) InFlight(ac frame.AccessCategory) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.inFlight[ac]
}

// Take hands n descriptors to the hardware.
func (r *Ring) Take(ac frame.AccessCategory, n int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if free := r.size - r.inFlight[ac]; free < n {
		return serrors.JoinNoStack(ErrRingFull, nil, "ac", ac, "free", free, "need", n)
	}
	r.inFlight[ac] += n
	return nil
}

// Reclaim returns n finished descriptors to the ring.
func (r *Ring) Reclaim(ac frame.AccessCategory, n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inFlight[ac] -= n
	if r.inFlight[ac] < 0 {
		r.inFlight[ac] = 0
	}
}
