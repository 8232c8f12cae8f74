// Copyright 2016 ETH Zurich
// Copyright 2019 ETH Zurich, Anapaya Systems
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

// Package serrors provides errors that carry key/value context. Every error
// returned by this package supports errors.Is against its message-less base
// error (Join) and against its cause (Wrap, Join).
//
// Sentinel errors should be declared with errors.New and decorated at the
// point of failure with JoinNoStack, which is cheap enough for the transmit
// path.
package serrors

import (
	"errors"
	"fmt"
	"runtime"
	"sort"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxPair struct {
	Key   string
	Value any
}

type errorInfo struct {
	ctx   []ctxPair
	cause error
	stack []uintptr
}

func (e errorInfo) suffix() string {
	var b strings.Builder
	if len(e.ctx) != 0 {
		b.WriteString(" {")
		for i, p := range e.ctx {
			if i != 0 {
				b.WriteString("; ")
			}
			fmt.Fprintf(&b, "%s=%v", p.Key, p.Value)
		}
		b.WriteString("}")
	}
	if e.cause != nil {
		fmt.Fprintf(&b, ": %s", e.cause)
	}
	return b.String()
}

func (e errorInfo) marshalLogObject(enc zapcore.ObjectEncoder) error {
	if e.cause != nil {
		if m, ok := e.cause.(zapcore.ObjectMarshaler); ok {
			if err := enc.AddObject("cause", m); err != nil {
				return err
			}
		} else {
			enc.AddString("cause", e.cause.Error())
		}
	}
	if len(e.stack) != 0 {
		if err := enc.AddArray("stacktrace", stackMarshaler(e.stack)); err != nil {
			return err
		}
	}
	for _, pair := range e.ctx {
		zap.Any(pair.Key, pair.Value).AddTo(enc)
	}
	return nil
}

func mkErrorInfo(cause error, addStack bool, errCtx ...any) errorInfo {
	np := len(errCtx) / 2
	ctx := make([]ctxPair, np)
	for i := 0; i < np; i++ {
		ctx[i] = ctxPair{Key: fmt.Sprint(errCtx[2*i]), Value: errCtx[2*i+1]}
	}
	sort.SliceStable(ctx, func(a, b int) bool { return ctx[a].Key < ctx[b].Key })
	r := errorInfo{ctx: ctx, cause: cause}
	if !addStack {
		return r
	}
	// A cause built by this package already carries the interesting frames.
	var be *basicError
	var je *joinedError
	if cause == nil || !(errors.As(cause, &be) || errors.As(cause, &je)) {
		pcs := make([]uintptr, 32)
		n := runtime.Callers(3, pcs)
		r.stack = pcs[:n]
	}
	return r
}

type basicError struct {
	errorInfo
	msg string
}

func (e *basicError) Error() string {
	return e.msg + e.errorInfo.suffix()
}

func (e *basicError) Unwrap() error {
	return e.cause
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (e *basicError) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("msg", e.msg)
	return e.errorInfo.marshalLogObject(enc)
}

// New creates an error with the given message and context, plus a stack
// trace. Sentinel errors should use errors.New instead.
func New(msg string, errCtx ...any) error {
	return &basicError{errorInfo: mkErrorInfo(nil, true, errCtx...), msg: msg}
}

// Wrap returns an error with the given message that wraps cause and carries
// the given context. errors.Is(err, cause) holds.
func Wrap(msg string, cause error, errCtx ...any) error {
	return &basicError{errorInfo: mkErrorInfo(cause, true, errCtx...), msg: msg}
}

// WrapNoStack is like Wrap but never records a stack trace.
func WrapNoStack(msg string, cause error, errCtx ...any) error {
	return &basicError{errorInfo: mkErrorInfo(cause, false, errCtx...), msg: msg}
}

type joinedError struct {
	errorInfo
	error error
}

func (e *joinedError) Error() string {
	return e.error.Error() + e.errorInfo.suffix()
}

func (e *joinedError) Unwrap() []error {
	if e.cause == nil {
		return []error{e.error}
	}
	return []error{e.error, e.cause}
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (e *joinedError) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("msg", e.error.Error())
	return e.errorInfo.marshalLogObject(enc)
}

// Join decorates err with an optional cause and context. Both errors.Is(x,
// err) and errors.Is(x, cause) hold for the result. Join(nil, nil) is nil.
func Join(err, cause error, errCtx ...any) error {
	if err == nil && cause == nil {
		return nil
	}
	return &joinedError{errorInfo: mkErrorInfo(cause, true, errCtx...), error: err}
}

// JoinNoStack is like Join but never records a stack trace.
func JoinNoStack(err, cause error, errCtx ...any) error {
	if err == nil && cause == nil {
		return nil
	}
	return &joinedError{errorInfo: mkErrorInfo(cause, false, errCtx...), error: err}
}

// List is a slice of errors.
type List []error

// Error implements the error interface.
func (e List) Error() string {
	s := make([]string, 0, len(e))
	for _, err := range e {
		s = append(s, err.Error())
	}
	return fmt.Sprintf("[ %s ]", strings.Join(s, "; "))
}

// ToError returns the object as error interface implementation.
func (e List) ToError() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// MarshalLogArray implements zapcore.ArrayMarshaler.
func (e List) MarshalLogArray(ae zapcore.ArrayEncoder) error {
	for _, err := range e {
		if m, ok := err.(zapcore.ObjectMarshaler); ok {
			if err := ae.AppendObject(m); err != nil {
				return err
			}
		} else {
			ae.AppendString(err.Error())
		}
	}
	return nil
}

type stackMarshaler []uintptr

func (s stackMarshaler) MarshalLogArray(enc zapcore.ArrayEncoder) error {
	frames := runtime.CallersFrames(s)
	for {
		f, more := frames.Next()
		enc.AppendString(fmt.Sprintf("%s %s:%d", f.Function, f.File, f.Line))
		if !more {
			return nil
		}
	}
}
