// Copyright 2020 Anapaya Systems
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

// Package launcher includes the shared application execution boilerplate of
// all service binaries: flag parsing, config loading, logging setup and
// signal handling.
package launcher

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/openwmac/wmac/pkg/log"
	"github.com/openwmac/wmac/pkg/private/serrors"
	libconfig "github.com/openwmac/wmac/private/config"
	"github.com/openwmac/wmac/private/env"
)

// Configuration keys used by the launcher.
const (
	cfgConfigFile       = "config"
	cfgLogConsoleLevel  = "log.console.level"
	cfgLogConsoleFormat = "log.console.format"
	cfgLogDisableCaller = "log.console.disable_caller"
	cfgGeneralID        = "general.id"
)

// Application models a service binary.
type Application struct {
	// TOMLConfig holds the Go data structure for the application-specific
	// TOML configuration.
	TOMLConfig libconfig.Config

	// ShortName is the short name of the application. If empty, the
	// executable name is used.
	ShortName string

	// Main is the custom logic of the application. If Main returns an error,
	// Run exits with a non-zero exit code.
	Main func(ctx context.Context) error

	// ErrorWriter specifies where error output should be printed. If nil,
	// os.Stderr is used.
	ErrorWriter io.Writer

	config *viper.Viper
}

// Run sets up the application and executes Main. It exits the process on
// failure.
func (a *Application) Run() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := a.run(ctx); err != nil {
		fmt.Fprintf(a.errorWriter(), "fatal error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func (a *Application) run(ctx context.Context) error {
	executable := filepath.Base(os.Args[0])
	shortName := a.ShortName
	if shortName == "" {
		shortName = executable
	}

	cmd := &cobra.Command{
		Use:           executable + " --config <config.toml>",
		Short:         shortName,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.executeCommand(cmd.Context(), shortName)
		},
	}
	cmd.Flags().String(cfgConfigFile, "", "Configuration file (required)")
	cmd.Flags().String(cfgLogConsoleLevel, "", "Override the console log level of the config file")
	cmd.AddCommand(&cobra.Command{
		Use:   "sample",
		Short: "Display a sample configuration file",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			a.TOMLConfig.Sample(cmd.OutOrStdout(), nil, libconfig.CtxMap{env.ID: executable})
		},
	})

	a.config = viper.New()
	a.config.SetDefault(cfgLogConsoleLevel, log.DefaultConsoleLevel)
	a.config.SetDefault(cfgLogConsoleFormat, log.DefaultConsoleFormat)
	a.config.SetDefault(cfgLogDisableCaller, false)
	a.config.SetDefault(cfgGeneralID, executable)
	if err := bindFlags(a.config, cmd.Flags(), cfgConfigFile, cfgLogConsoleLevel); err != nil {
		return err
	}
	return cmd.ExecuteContext(ctx)
}

// bindFlags binds the named flags to their viper keys. A flag that is not
// set on the command line does not shadow the value of the config file.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet, names ...string) error {
	for _, name := range names {
		if err := v.BindPFlag(name, flags.Lookup(name)); err != nil {
			return serrors.Wrap("binding flag", err, "flag", name)
		}
	}
	return nil
}

func (a *Application) executeCommand(ctx context.Context, shortName string) error {
	file := a.config.GetString(cfgConfigFile)
	if file == "" {
		return serrors.New("no config file specified")
	}
	// Launcher settings come from the same file as the application config.
	a.config.SetConfigType("toml")
	a.config.SetConfigFile(file)
	if err := a.config.ReadInConfig(); err != nil {
		return serrors.Wrap("loading generic server config from file", err, "file", file)
	}
	if err := libconfig.LoadFile(file, a.TOMLConfig); err != nil {
		return serrors.Wrap("loading config from file", err, "file", file)
	}
	a.TOMLConfig.InitDefaults()

	if err := log.Setup(a.logging()); err != nil {
		return serrors.Wrap("initialize logging", err)
	}
	defer log.Flush()
	defer log.HandlePanic()

	id := a.config.GetString(cfgGeneralID)
	log.Info("Service started", "service", shortName, "id", id)
	defer log.Info("Service stopped", "service", shortName, "id", id)

	if err := a.TOMLConfig.Validate(); err != nil {
		return serrors.Wrap("validate config", err)
	}
	if a.Main == nil {
		return nil
	}
	done := make(chan error, 1)
	go func() {
		defer log.HandlePanic()
		done <- a.Main(ctx)
	}()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
	}
	select {
	case err := <-done:
		return err
	case <-time.After(env.ShutdownGraceInterval):
		return serrors.New("main goroutine did not shut down in time",
			"grace", env.ShutdownGraceInterval)
	}
}

func (a *Application) logging() log.Config {
	return log.Config{
		Console: log.ConsoleConfig{
			Level:         a.config.GetString(cfgLogConsoleLevel),
			Format:        a.config.GetString(cfgLogConsoleFormat),
			DisableCaller: a.config.GetBool(cfgLogDisableCaller),
		},
	}
}

func (a *Application) errorWriter() io.Writer {
	if a.ErrorWriter != nil {
		return a.ErrorWriter
	}
	return os.Stderr
}
