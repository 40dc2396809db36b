// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkoncek/xmvn/internal/config"
	"github.com/mkoncek/xmvn/internal/issue"
	"github.com/mkoncek/xmvn/pkg/deployer"
	"github.com/mkoncek/xmvn/pkg/types"
)

// newPlanCommand creates the `xmvn plan` command tree.
func newPlanCommand(app *App) *cobra.Command {
	planCmd := &cobra.Command{
		Use:   "plan",
		Short: "Inspect or reset the reactor installation plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	planCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "List the artifacts recorded in the plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showPlan(cmd, app)
		},
	})

	planCmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Delete the plan file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return resetPlan(cmd, app)
		},
	})

	return planCmd
}

func showPlan(cmd *cobra.Command, app *App) error {
	cfg, err := app.loadConfig(cmd.Context())
	if err != nil {
		return app.fail(cmd, types.ExitFailure, err)
	}

	plan, err := app.loadPlan(cfg)
	if err != nil {
		return app.fail(cmd, types.ExitFailure, err)
	}

	fmt.Fprintf(app.stdout, "%s %s\n", TitleStyle.Render("Reactor installation plan"), SubtitleStyle.Render(cfg.PlanFile))
	if plan.Len() == 0 {
		fmt.Fprintf(app.stdout, "  %s\n", SubtitleStyle.Render("(empty)"))
		return nil
	}

	for _, entry := range plan.Entries {
		a := entry.Artifact()
		line := "  " + CmdStyle.Render(a.String())
		if a.Path != "" {
			line += " " + SuccessStyle.Render(a.Path.String())
		}
		if a.Stereotype != "" {
			line += " " + SubtitleStyle.Render("("+a.Stereotype+")")
		}
		fmt.Fprintln(app.stdout, line)
	}
	return nil
}

func resetPlan(cmd *cobra.Command, app *App) error {
	cfg, err := app.loadConfig(cmd.Context())
	if err != nil {
		return app.fail(cmd, types.ExitFailure, err)
	}

	if err := app.newDeployer(cfg).Reset(); err != nil {
		return app.fail(cmd, types.ExitFailure, err)
	}

	fmt.Fprintf(app.stdout, "%s Removed %s\n", SuccessStyle.Render("✓"), cfg.PlanFile)
	return nil
}

// loadPlan reads the reactor plan named by cfg.
func (a *App) loadPlan(cfg *config.Config) (*deployer.Plan, error) {
	plan, err := a.newDeployer(cfg).LoadPlan()
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation(opLoadPlan).
			WithResource(cfg.PlanFile).
			WithSuggestion("Run 'xmvn plan reset' and deploy the reactor modules again").
			Wrap(err).
			BuildError()
	}
	return plan, nil
}
