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

// Package testlog provides loggers for tests.
package testlog

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/openwmac/wmac/pkg/log"
)

// NewLogger builds a Logger that writes all messages to t.
func NewLogger(t testing.TB, opts ...zaptest.LoggerOption) log.Logger {
	return wrap(zaptest.NewLogger(t, opts...))
}

// NewObserved builds a Logger that records every message at or above lvl.
// Tests assert on the returned entries.
func NewObserved(lvl log.Level) (log.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.Level(lvl))
	return wrap(zap.New(core)), logs
}

// Messages returns the messages of the recorded entries in order.
func Messages(logs *observer.ObservedLogs) []string {
	entries := logs.All()
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Message)
	}
	return out
}

type logger struct {
	logger *zap.Logger
}

func wrap(l *zap.Logger) log.Logger {
	return &logger{logger: l}
}

func (l *logger) New(ctx ...any) log.Logger {
	return &logger{logger: l.logger.With(fields(ctx)...)}
}

func (l *logger) Debug(msg string, ctx ...any) {
	l.logger.Debug(msg, fields(ctx)...)
}

func (l *logger) Info(msg string, ctx ...any) {
	l.logger.Info(msg, fields(ctx)...)
}

func (l *logger) Error(msg string, ctx ...any) {
	l.logger.Error(msg, fields(ctx)...)
}

func (l *logger) Enabled(lvl log.Level) bool {
	return l.logger.Core().Enabled(zapcore.Level(lvl))
}

func fields(ctx []any) []zap.Field {
	out := make([]zap.Field, 0, len(ctx)/2)
	for i := 0; i+1 < len(ctx); i += 2 {
		key, ok := ctx[i].(string)
		if !ok {
			key = "!badkey"
		}
		out = append(out, zap.Any(key, ctx[i+1]))
	}
	return out
}
