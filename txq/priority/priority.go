// Copyright 2025 ETH Zurich
// Copyright 2026 The openwmac Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package priority reads wake-up signals from a fixed set of channels,
// always preferring the lower-numbered channel. The scheduling loop uses it
// so that completion signals (ring space freed) are handled before submission
// signals (new work queued).
package priority

import (
	"context"
)

// Label names a kick channel.
type Label uint8

const (
	// Completion is raised when the hardware reports finished descriptors.
	Completion Label = iota
	// Submission is raised when new frames were admitted.
	Submission
	lastLabel

	QueueCount = int(lastLabel)
)

func (l Label) String() string {
	switch l {
	case Completion:
		return "completion"
	case Submission:
		return "submission"
	default:
		return "unknown"
	}
}

// Queue is a set of channels indexed by Label.
type Queue[T any] [QueueCount]<-chan T

// ReadAsync returns a value from the highest-priority channel that has one,
// without blocking. Closed channels are skipped.
func ReadAsync[T any](queue Queue[T]) (T, bool) {
	var v T
	var ok bool
loop:
	for _, q := range queue {
		select {
		case v, ok = <-q:
			if !ok {
				continue
			}
			break loop
		default:
		}
	}
	return v, ok
}

// ReadBlocking returns a value from the highest-priority channel that has one.
// If none has, it blocks until any channel delivers or ctx is done, in which
// case it returns false.
func ReadBlocking[T any](ctx context.Context, queue Queue[T]) (T, bool) {
	// The select below is written for exactly two channels.
	var _ [2 - len(queue)]int
	var _ [len(queue) - 2]int

	if v, ok := ReadAsync(queue); ok {
		return v, ok
	}
	select {
	case v, ok := <-queue[Completion]:
		return v, ok
	case v, ok := <-queue[Submission]:
		return v, ok
	case <-ctx.Done():
		var zero T
		return zero, false
	}
}

// Kicker raises coalescing wake-up signals. A signal raised while an earlier
// one of the same label is still pending is dropped.
type Kicker struct {
	chans [QueueCount]chan Label
}

// NewKicker creates a kicker.
func NewKicker() *Kicker {
	k := &Kicker{}
	for i := range k.chans {
		k.chans[i] = make(chan Label, 1)
	}
	return k
}

// Kick raises a signal with the label.
func (k *Kicker) Kick(l Label) {
	select {
	case k.chans[l] <- l:
	default:
	}
}

// Queue returns the receive side of the kicker.
func (k *Kicker) Queue() Queue[Label] {
	var q Queue[Label]
	for i := range k.chans {
		q[i] = k.chans[i]
	}
	return q
}
