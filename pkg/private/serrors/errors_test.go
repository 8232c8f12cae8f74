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

package serrors_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"

	"github.com/openwmac/wmac/pkg/private/serrors"
)

func TestIs(t *testing.T) {
	base := errors.New("base")
	cause := errors.New("cause")

	testCases := map[string]struct {
		err     error
		target  error
		matches bool
	}{
		"join matches base":        {serrors.JoinNoStack(base, nil), base, true},
		"join matches cause":       {serrors.Join(base, cause, "k", 1), cause, true},
		"wrap matches cause":       {serrors.Wrap("msg", cause), cause, true},
		"wrap does not match base": {serrors.Wrap("msg", cause), base, false},
		"new matches itself only":  {serrors.New("new"), base, false},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.matches, errors.Is(tc.err, tc.target))
		})
	}
}

func TestJoinNil(t *testing.T) {
	assert.NoError(t, serrors.Join(nil, nil))
	assert.NoError(t, serrors.JoinNoStack(nil, nil))
}

func TestErrorString(t *testing.T) {
	base := errors.New("peer unknown")
	err := serrors.JoinNoStack(base, nil, "peer", 3, "gen", 1)
	assert.Equal(t, "peer unknown {gen=1; peer=3}", err.Error())

	wrapped := serrors.WrapNoStack("dispatching", err, "ac", "VO")
	assert.Equal(t, "dispatching {ac=VO}: peer unknown {gen=1; peer=3}", wrapped.Error())
}

func TestList(t *testing.T) {
	var l serrors.List
	assert.NoError(t, l.ToError())
	l = append(l, errors.New("a"), serrors.New("b"))
	assert.Equal(t, "[ a; b ]", l.ToError().Error())
}

func TestMarshalLogObject(t *testing.T) {
	err := serrors.Wrap("outer", errors.New("inner"), "key", "value")
	m, ok := err.(zapcore.ObjectMarshaler)
	assert.True(t, ok)
	enc := zapcore.NewMapObjectEncoder()
	assert.NoError(t, m.MarshalLogObject(enc))
	assert.Equal(t, "outer", enc.Fields["msg"])
	assert.Equal(t, "inner", enc.Fields["cause"])
	assert.Equal(t, "value", enc.Fields["key"])
}
