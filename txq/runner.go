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
	"context"

	"github.com/openwmac/wmac/pkg/log"
	"github.com/openwmac/wmac/txq/priority"
)

// Runner is the work context of the scheduler. It runs scheduling rounds
// whenever submissions or completions signal new work, completions first,
// until a round dispatches nothing.
type Runner struct {
	s      *Scheduler
	kicker *priority.Kicker
}

// NewRunner creates a runner and attaches it to s.
func NewRunner(s *Scheduler) *Runner {
	r := &Runner{s: s, kicker: priority.NewKicker()}
	s.SetKick(r.kicker.Kick)
	return r
}

// Kick wakes the runner.
func (r *Runner) Kick(l priority.Label) {
	r.kicker.Kick(l)
}

// Run serves rounds until ctx is done.
func (r *Runner) Run(ctx context.Context) error {
	ctx, logger := log.WithLabels(ctx, "component", "runner")
	queue := r.kicker.Queue()
	for {
		label, ok := priority.ReadBlocking(ctx, queue)
		if !ok {
			logger.Debug("Scheduler runner stopped")
			return nil
		}
		rounds := 0
		for r.s.RunRound(0) > 0 {
			rounds++
			if ctx.Err() != nil {
				return nil
			}
		}
		if logger.Enabled(log.DebugLevel) {
			logger.Debug("Scheduler woke up", "cause", label, "busy_rounds", rounds)
		}
	}
}
