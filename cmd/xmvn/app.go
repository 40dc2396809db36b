// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/afero"

	"github.com/mkoncek/xmvn/internal/config"
)

type (
	// App wires CLI services and shared dependencies. All Cobra command
	// handlers receive an App reference.
	App struct {
		Config ConfigProvider
		Fs     afero.Fs
		stdout io.Writer
		stderr io.Writer

		// configPath is the --config flag value.
		configPath string
		// verbose is the --verbose flag value, or ui.verbose once loaded.
		verbose     bool
		logger      *slog.Logger
		colorScheme config.ColorScheme
		// publish, when set, receives every logger the App switches to.
		// Execute sets it to slog.SetDefault.
		publish func(*slog.Logger)
	}

	// Dependencies defines the injection points for building an App. Nil fields are
	// replaced with production defaults by NewApp.
	Dependencies struct {
		Config ConfigProvider
		Fs     afero.Fs
		Stdout io.Writer
		Stderr io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
		Source(opts config.LoadOptions) (string, error)
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) (*App, error) {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Fs == nil {
		deps.Fs = afero.NewOsFs()
	}

	return &App{
		Config: deps.Config,
		Fs:     deps.Fs,
		stdout: deps.Stdout,
		stderr: deps.Stderr,
		logger:      slog.New(slog.DiscardHandler),
		colorScheme: config.ColorSchemeAuto,
	}, nil
}

// loadOptions returns the config loading options for this invocation.
func (a *App) loadOptions() config.LoadOptions {
	return config.LoadOptions{ConfigFilePath: a.configPath}
}

// loadConfig loads the configuration and applies the ui.verbose setting
// when --verbose was not given.
func (a *App) loadConfig(ctx context.Context) (*config.Config, error) {
	cfg, err := a.Config.Load(ctx, a.loadOptions())
	if err != nil {
		return nil, err
	}
	a.colorScheme = cfg.UI.ColorScheme
	if cfg.UI.Verbose && !a.verbose {
		a.verbose = true
		a.useLogger(newLogger(a.stderr, true))
	}
	return cfg, nil
}

// useLogger switches the invocation's logger.
func (a *App) useLogger(logger *slog.Logger) {
	a.logger = logger
	if a.publish != nil {
		a.publish(logger)
	}
}

// Logger returns the logger configured for this invocation.
func (a *App) Logger() *slog.Logger {
	return a.logger
}
