// Copyright 2019 Anapaya Systems
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

// Package log is a thin leveled key/value facade over zap.
//
// Messages are logged with alternating key and value arguments:
//
//	log.Info("peer associated", "peer", ref, "kind", kind)
//
// The root logger discards everything until Setup is called.
package log

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/openwmac/wmac/pkg/private/serrors"
)

// Level is the log level.
type Level zapcore.Level

// Supported levels.
const (
	DebugLevel = Level(zapcore.DebugLevel)
	InfoLevel  = Level(zapcore.InfoLevel)
	ErrorLevel = Level(zapcore.ErrorLevel)
)

// Logger describes the logger interface.
type Logger interface {
	New(ctx ...any) Logger
	Debug(msg string, ctx ...any)
	Info(msg string, ctx ...any)
	Error(msg string, ctx ...any)
	Enabled(lvl Level) bool
}

var (
	mu   sync.RWMutex
	root = &logger{logger: zap.NewNop()}
)

type logger struct {
	logger *zap.Logger
}

func (l *logger) New(ctx ...any) Logger {
	return &logger{logger: l.logger.With(convertCtx(ctx)...)}
}

func (l *logger) Debug(msg string, ctx ...any) {
	l.logger.Debug(msg, convertCtx(ctx)...)
}

func (l *logger) Info(msg string, ctx ...any) {
	l.logger.Info(msg, convertCtx(ctx)...)
}

func (l *logger) Error(msg string, ctx ...any) {
	l.logger.Error(msg, convertCtx(ctx)...)
}

func (l *logger) Enabled(lvl Level) bool {
	return l.logger.Core().Enabled(zapcore.Level(lvl))
}

// WithOptions returns a copy of the logger with the zap options applied.
func (l *logger) WithOptions(opts ...zap.Option) Logger {
	return &logger{logger: l.logger.WithOptions(opts...)}
}

// Root returns the root logger.
func Root() Logger {
	mu.RLock()
	defer mu.RUnlock()
	return root
}

// New creates a logger from the root logger with the given context.
func New(ctx ...any) Logger {
	return Root().New(ctx...)
}

// Debug logs at debug level on the root logger.
func Debug(msg string, ctx ...any) {
	rootZap().Debug(msg, convertCtx(ctx)...)
}

// Info logs at info level on the root logger.
func Info(msg string, ctx ...any) {
	rootZap().Info(msg, convertCtx(ctx)...)
}

// Error logs at error level on the root logger.
func Error(msg string, ctx ...any) {
	rootZap().Error(msg, convertCtx(ctx)...)
}

// Setup configures the root logger from cfg. It must be called before any
// goroutine that logs is started.
func Setup(cfg Config) error {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(cfg.Console.Level)); err != nil {
		return serrors.Wrap("parsing console level", err, "level", cfg.Console.Level)
	}
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	var enc zapcore.Encoder
	switch cfg.Console.Format {
	case "human", "":
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	case "json":
		enc = zapcore.NewJSONEncoder(encCfg)
	default:
		return serrors.New("unsupported console format", "format", cfg.Console.Format)
	}
	core := zapcore.NewCore(enc, zapcore.Lock(os.Stderr), zap.NewAtomicLevelAt(lvl))
	opts := []zap.Option{zap.AddCallerSkip(1)}
	if !cfg.Console.DisableCaller {
		opts = append(opts, zap.AddCaller())
	}
	l := zap.New(core, opts...)

	mu.Lock()
	defer mu.Unlock()
	root = &logger{logger: l}
	zap.ReplaceGlobals(l)
	return nil
}

// Flush writes buffered log entries.
func Flush() {
	_ = rootZap().Sync()
}

// HandlePanic catches panics and logs them. It must be deferred at the top of
// every goroutine.
func HandlePanic() {
	if msg := recover(); msg != nil {
		rootZap().Error("Panic", zap.Any("msg", msg), zap.ByteString("stack", debug.Stack()))
		Flush()
		panic(msg)
	}
}

func rootZap() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return root.logger
}

func convertCtx(ctx []any) []zap.Field {
	fields := make([]zap.Field, 0, len(ctx)/2)
	for i := 0; i+1 < len(ctx); i += 2 {
		fields = append(fields, zap.Any(fmt.Sprint(ctx[i]), ctx[i+1]))
	}
	return fields
}
