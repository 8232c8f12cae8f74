// Copyright 2018 ETH Zurich
// Copyright 2019 ETH Zurich, Anapaya Systems
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

package log

import (
	"context"
)

type ctxKey struct{}

// CtxWith attaches logger to ctx, replacing any logger already attached.
func CtxWith(ctx context.Context, logger Logger) context.Context {
	if ctx == nil {
		panic("nil context")
	}
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromCtx returns the logger attached to ctx, or the root logger. It never
// returns nil.
func FromCtx(ctx context.Context) Logger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxKey{}).(Logger); ok && l != nil {
			return l
		}
	}
	return Root()
}

// WithLabels attaches a logger carrying the additional labels to ctx and
// returns both.
func WithLabels(ctx context.Context, labels ...any) (context.Context, Logger) {
	l := FromCtx(ctx).New(labels...)
	return CtxWith(ctx, l), l
}
