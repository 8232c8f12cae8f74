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

package log

import (
	"fmt"
	"io"

	"go.uber.org/zap/zapcore"

	"github.com/openwmac/wmac/pkg/private/serrors"
	"github.com/openwmac/wmac/private/config"
)

const (
	// DefaultConsoleLevel is the default log level for the console.
	DefaultConsoleLevel = "info"
	// DefaultConsoleFormat is the default console format.
	DefaultConsoleFormat = "human"
)

// Config is the configuration for the logger.
type Config struct {
	Console ConsoleConfig `toml:"console,omitempty"`
}

// ConsoleConfig is the config for the console logger.
type ConsoleConfig struct {
	// Level of console logging (debug|info|error).
	Level string `toml:"level,omitempty"`
	// Format of the console logging (human|json).
	Format string `toml:"format,omitempty"`
	// DisableCaller stops annotating logs with the calling function's file
	// name and line number.
	DisableCaller bool `toml:"disable_caller,omitempty"`
}

// InitDefaults populates unset fields with default values.
func (c *Config) InitDefaults() {
	if c.Console.Level == "" {
		c.Console.Level = DefaultConsoleLevel
	}
	if c.Console.Format == "" {
		c.Console.Format = DefaultConsoleFormat
	}
}

// Validate checks that the level and format are known.
func (c *Config) Validate() error {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(c.Console.Level)); err != nil {
		return serrors.New("invalid console level", "level", c.Console.Level)
	}
	switch c.Console.Format {
	case "human", "json":
		return nil
	default:
		return serrors.New("invalid console format", "format", c.Console.Format)
	}
}

// Sample writes the sample configuration.
func (c *Config) Sample(dst io.Writer, path config.Path, _ config.CtxMap) {
	config.WriteString(dst, fmt.Sprintf(loggingSample, path.Extend("console")))
}

// ConfigName returns the name of the config block.
func (c *Config) ConfigName() string {
	return "log"
}

const loggingSample = `
[%s]
# Console logging level (debug|info|error) (default info)
level = "info"

# Console logging format (human|json) (default human)
format = "human"

# Omit the caller file and line (default false)
disable_caller = false
`
