// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/mkoncek/xmvn/pkg/types"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the xmvn command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "xmvn",
		Short: "Resolve, install and record build artifacts for distribution packages",
		Long: TitleStyle.Render("xmvn") + SubtitleStyle.Render(" - artifact resolution and installation for packagers") + `

xmvn locates build artifacts in system repositories, records the artifacts a
multi-module build produces in a reactor installation plan, and installs them
into distribution packages following packaging rules.

` + SubtitleStyle.Render("Examples:") + `
  xmvn resolve junit:junit:4.13         Locate an installed artifact
  xmvn match 'org.example:*' g:a:1      Test a coordinate pattern
  xmvn deploy g:a:1 target/a-1.jar      Record a built artifact
  xmvn install --build-root buildroot   Install the recorded artifacts
  xmvn config show                      Show current configuration`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			app.useLogger(newLogger(app.stderr, app.verbose))
			return nil
		},
	}

	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)

	rootCmd.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&app.configPath, "config", "", "config file (default is $HOME/.config/xmvn/config.cue)")

	rootCmd.AddCommand(newResolveCommand(app))
	rootCmd.AddCommand(newMatchCommand(app))
	rootCmd.AddCommand(newDeployCommand(app))
	rootCmd.AddCommand(newPlanCommand(app))
	rootCmd.AddCommand(newInstallCommand(app))
	rootCmd.AddCommand(newConfigCommand(app))

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute builds the command tree and runs it. It is called by main.main().
func Execute() {
	app, err := NewApp(Dependencies{})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(int(types.ExitFailure))
	}

	app.publish = slog.SetDefault
	rootCmd := NewRootCommand(app)

	// fang overrides rootCmd.Version, so the version goes through fang.WithVersion().
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(int(types.ExitFailure))
	}
}

// fail renders err for the user and returns an ExitError carrying code.
// Cobra's own error printing is silenced so the message appears once.
func (a *App) fail(cmd *cobra.Command, code types.ExitCode, err error) error {
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	issueID, styled := classifyError(err, a.verbose)
	renderServiceError(a.stderr, newServiceError(err, issueID, styled), a.colorScheme)
	return &ExitError{Code: code, Err: err}
}
