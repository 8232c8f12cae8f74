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

package env_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openwmac/wmac/private/config"
	"github.com/openwmac/wmac/private/env"
)

type testConfig struct {
	General env.General `toml:"general"`
	Metrics env.Metrics `toml:"metrics"`
	API     env.API     `toml:"api"`
}

func TestSampleDecodes(t *testing.T) {
	var sample bytes.Buffer
	var cfg testConfig
	config.WriteSample(&sample, nil, config.CtxMap{env.ID: "wlan0"},
		&cfg.General, &cfg.Metrics, &cfg.API)

	var decoded testConfig
	require.NoError(t, config.Decode(sample.Bytes(), &decoded))
	assert.Equal(t, "wlan0", decoded.General.ID)
	assert.NoError(t, decoded.General.Validate())
	assert.Empty(t, decoded.Metrics.Prometheus)
}

func TestGeneralRequiresID(t *testing.T) {
	var g env.General
	assert.Error(t, g.Validate())
}

func TestServeDisabled(t *testing.T) {
	var m env.Metrics
	assert.NoError(t, m.ServePrometheus(context.Background(), prometheus.NewRegistry()))
	var a env.API
	assert.NoError(t, a.Serve(context.Background(), nil))
}
