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

package config_test

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openwmac/wmac/private/config"
)

type block struct {
	Name     string          `toml:"name"`
	Interval config.Duration `toml:"interval"`
}

func TestDecode(t *testing.T) {
	var b block
	err := config.Decode([]byte("name = \"x\"\ninterval = \"150ms\"\n"), &b)
	require.NoError(t, err)
	assert.Equal(t, "x", b.Name)
	assert.Equal(t, 150*time.Millisecond, b.Interval.Duration)
}

func TestDecodeUnknownField(t *testing.T) {
	var b block
	assert.Error(t, config.Decode([]byte("nmae = \"x\"\n"), &b))
}

func TestDecodeBadDuration(t *testing.T) {
	var b block
	assert.Error(t, config.Decode([]byte("interval = \"soon\"\n"), &b))
}

type failing struct{ err error }

func (f failing) Validate() error { return f.err }

func TestValidateAll(t *testing.T) {
	boom := errors.New("boom")
	assert.NoError(t, config.ValidateAll(config.NoValidator{}))
	err := config.ValidateAll(config.NoValidator{}, failing{err: boom})
	assert.ErrorIs(t, err, boom)
}

func TestWriteSample(t *testing.T) {
	var buf bytes.Buffer
	config.WriteSample(&buf, nil, nil,
		config.StringSampler{Text: "\na = 1\n", Name: "outer"},
	)
	assert.Equal(t, "\n[outer]\n    a = 1\n", buf.String())
}
