// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkoncek/xmvn/pkg/artifact"
	"github.com/mkoncek/xmvn/pkg/types"
)

// newMatchCommand creates the `xmvn match` command.
func newMatchCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "match <pattern> <coordinate>...",
		Short: "Test coordinates against a coordinate pattern",
		Long: `Test coordinates against a coordinate pattern.

A pattern has the form groupId:artifactId:version. Each field is a glob:
"*" matches any value and "{a,b}" matches either alternative. Omitted
trailing fields match anything. Matching coordinates are printed; the
command fails when none match.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMatch(cmd, app, args[0], args[1:])
		},
	}
}

func runMatch(cmd *cobra.Command, app *App, pattern string, coords []string) error {
	glob, err := artifact.CompileGlob(pattern)
	if err != nil {
		return app.fail(cmd, types.ExitFailure, err)
	}

	matched := 0
	for _, c := range coords {
		a, err := artifact.Parse(c)
		if err != nil {
			return app.fail(cmd, types.ExitFailure, err)
		}
		if glob.Matches(a) {
			matched++
			fmt.Fprintln(app.stdout, c)
		}
	}

	if matched == 0 {
		cmd.SilenceErrors = true
		return &ExitError{Code: types.ExitFailure}
	}
	return nil
}
