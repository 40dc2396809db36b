// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkoncek/xmvn/internal/config"
	"github.com/mkoncek/xmvn/pkg/artifact"
	"github.com/mkoncek/xmvn/pkg/deployer"
	"github.com/mkoncek/xmvn/pkg/types"
)

// newDeployCommand creates the `xmvn deploy` command.
func newDeployCommand(app *App) *cobra.Command {
	var stereotype string

	cmd := &cobra.Command{
		Use:   "deploy <coordinate> <file>",
		Short: "Record a built artifact in the reactor installation plan",
		Long: `Record a built artifact in the reactor installation plan.

The plan file (plan_file, default .xmvn-reactor) is created on first use and
every later deployment appends to it. A plan that cannot be parsed is never
overwritten.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeploy(cmd, app, args[0], args[1], stereotype)
		},
	}

	cmd.Flags().StringVar(&stereotype, "stereotype", "", "packaging type the artifact was built with (e.g. maven-plugin)")

	return cmd
}

func runDeploy(cmd *cobra.Command, app *App, coords, file, stereotype string) error {
	cfg, err := app.loadConfig(cmd.Context())
	if err != nil {
		return app.fail(cmd, types.ExitFailure, err)
	}

	a, err := artifact.Parse(coords)
	if err != nil {
		return app.fail(cmd, types.ExitFailure, err)
	}
	a.Stereotype = stereotype
	a = a.WithPath(types.FilesystemPath(file))

	result := app.newDeployer(cfg).Deploy(deployer.DeploymentRequest{Artifact: a})
	if !result.OK() {
		return app.fail(cmd, types.ExitDeployFailed, result.Err())
	}

	fmt.Fprintf(app.stdout, "%s Deployed %s\n", SuccessStyle.Render("✓"), CmdStyle.Render(a.String()))
	return nil
}

// newDeployer returns a deployer over the configured plan file.
func (a *App) newDeployer(cfg *config.Config) *deployer.Deployer {
	return deployer.New(
		deployer.WithFs(a.Fs),
		deployer.WithPlanPath(cfg.PlanFile),
		deployer.WithLogger(a.logger),
	)
}
