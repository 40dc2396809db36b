// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkoncek/xmvn/pkg/artifact"
	"github.com/mkoncek/xmvn/pkg/repository"
	"github.com/mkoncek/xmvn/pkg/types"
)

// ErrUnresolved is returned when at least one coordinate could not be located.
var ErrUnresolved = errors.New("artifact not found")

// UnresolvedError lists the coordinates resolve could not locate.
type UnresolvedError struct {
	Coordinates []string
}

// Error implements the error interface.
func (e *UnresolvedError) Error() string {
	if len(e.Coordinates) == 1 {
		return fmt.Sprintf("artifact not found: %s", e.Coordinates[0])
	}
	return fmt.Sprintf("%d artifacts not found", len(e.Coordinates))
}

// Unwrap returns ErrUnresolved for errors.Is() compatibility.
func (e *UnresolvedError) Unwrap() error { return ErrUnresolved }

// newResolveCommand creates the `xmvn resolve` command.
func newResolveCommand(app *App) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "resolve <coordinate>...",
		Short: "Locate installed artifacts in the system repositories",
		Long: `Locate installed artifacts in the system repositories.

Coordinates have the form groupId:artifactId[:extension[:classifier]][:version].
Binary artifacts are searched in resolver.jar_repositories and descriptors
(extension "pom") in resolver.pom_repositories. Each directory is probed with
the versioned layouts first, then with the version-less ones.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, app, args, raw)
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "print only resolved paths, one per line")

	return cmd
}

func runResolve(cmd *cobra.Command, app *App, coords []string, raw bool) error {
	cfg, err := app.loadConfig(cmd.Context())
	if err != nil {
		return app.fail(cmd, types.ExitFailure, err)
	}

	resolver := repository.NewAggregated(app.Fs, types.FilesystemPath(cfg.Resolver.Root), cfg.Resolver.Settings())

	var unresolved []string
	for _, c := range coords {
		a, err := artifact.Parse(c)
		if err != nil {
			return app.fail(cmd, types.ExitFailure, err)
		}

		path, ok := resolver.Resolve(a)
		if !ok {
			app.logger.Debug("artifact not resolved", "artifact", a.String())
			unresolved = append(unresolved, c)
			if !raw {
				fmt.Fprintf(app.stdout, "%s: %s\n", CmdStyle.Render(c), WarningStyle.Render("not found"))
			}
			continue
		}

		app.logger.Debug("artifact resolved", "artifact", a.String(), "path", path)
		if raw {
			fmt.Fprintln(app.stdout, path)
		} else {
			fmt.Fprintf(app.stdout, "%s: %s\n", CmdStyle.Render(c), SuccessStyle.Render(path.String()))
		}
	}

	if len(unresolved) > 0 {
		return app.fail(cmd, types.ExitUnresolved, &UnresolvedError{Coordinates: unresolved})
	}
	return nil
}
