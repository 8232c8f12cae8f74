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
	"github.com/openwmac/wmac/txq/classify"
	"github.com/openwmac/wmac/txq/frame"
	"github.com/openwmac/wmac/txq/station"
)

// SWAggregateMaxFrames caps software aggregates.
const SWAggregateMaxFrames = 2

// Batch is a set of frames for one peer and one access category that is
// handed to the hardware as a unit.
type Batch struct {
	Peer station.Ref
	AC   frame.AccessCategory
	// Class is the transmit class of the batch. A batch of one frame is
	// never tagged as an aggregate.
	Class  classify.Class
	Frames []*frame.Frame

	FrameCount int
	FragCount  int
	Bytes      int
	// Descriptors is the number of ring descriptors the batch occupies.
	Descriptors int
}

func (b *Batch) add(f *frame.Frame, cls classify.Class, descriptors int) {
	if len(b.Frames) == 0 {
		b.Class = cls
	}
	b.Frames = append(b.Frames, f)
	b.FrameCount++
	b.FragCount += f.FragmentCount()
	b.Bytes += f.Len()
	b.Descriptors += descriptors
}

// descriptorsFor returns the ring descriptors a frame of the class needs.
func descriptorsFor(f *frame.Frame, cls classify.Class) int {
	if cls == classify.Fragmentable {
		return f.FragmentCount()
	}
	return 1
}
