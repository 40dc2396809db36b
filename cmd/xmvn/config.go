// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mkoncek/xmvn/internal/config"
	"github.com/mkoncek/xmvn/pkg/types"
)

// newConfigCommand creates the `xmvn config` command tree.
// Subcommands that read configuration use the App's ConfigProvider.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage xmvn configuration",
		Long: `Manage xmvn configuration.

Configuration is read from the first file found of:
  - the file given with --config
  - config.cue in the user config directory
      Linux: ~/.config/xmvn/config.cue
      macOS: ~/Library/Application Support/xmvn/config.cue
      Windows: %APPDATA%\xmvn\config.cue
  - xmvn.cue in the current directory

Any value can be overridden with an XMVN_* environment variable, for example
XMVN_PLAN_FILE or XMVN_RESOLVER_ROOT.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd, app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd, app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath(cmd, app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration as CUE",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig(cmd.Context())
			if err != nil {
				return app.fail(cmd, types.ExitFailure, err)
			}

			fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
			return nil
		},
	})

	return cfgCmd
}

func showConfig(cmd *cobra.Command, app *App) error {
	cfg, err := app.loadConfig(cmd.Context())
	if err != nil {
		return app.fail(cmd, types.ExitFailure, err)
	}

	keyStyle := CmdStyle
	valueStyle := SuccessStyle
	out := app.stdout

	fmt.Fprintln(out, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(out)

	source, err := app.Config.Source(app.loadOptions())
	if err != nil || source == "" {
		fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	} else {
		fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("Config file"), source)
	}
	fmt.Fprintln(out)

	fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("plan_file"), valueStyle.Render(cfg.PlanFile))
	fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("rules_file"), valueStyle.Render(cfg.RulesFile))
	fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("build_root"), valueStyle.Render(cfg.BuildRoot))
	fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("default_package"), valueStyle.Render(cfg.DefaultPackage.String()))

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s:\n", keyStyle.Render("resolver"))
	fmt.Fprintf(out, "  root: %s\n", valueStyle.Render(cfg.Resolver.Root))
	fmt.Fprintf(out, "  jar_repositories: %s\n", valueStyle.Render(strings.Join(cfg.Resolver.JarRepositories, ", ")))
	fmt.Fprintf(out, "  pom_repositories: %s\n", valueStyle.Render(strings.Join(cfg.Resolver.PomRepositories, ", ")))

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s:\n", keyStyle.Render("repositories"))
	if len(cfg.Repositories) == 0 {
		fmt.Fprintf(out, "  %s\n", SubtitleStyle.Render("(none configured)"))
	}
	for _, def := range cfg.Repositories {
		detail := def.Type
		switch {
		case len(def.Repositories) > 0:
			detail += " [" + strings.Join(def.Repositories, ", ") + "]"
		case def.Root != "":
			detail += " " + def.Root
		}
		if def.Kind != "" {
			detail += " (" + def.Kind.String() + ")"
		}
		fmt.Fprintf(out, "  - %s: %s\n", valueStyle.Render(def.ID), detail)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s:\n", keyStyle.Render("ui"))
	fmt.Fprintf(out, "  color_scheme: %s\n", valueStyle.Render(cfg.UI.ColorScheme.String()))
	fmt.Fprintf(out, "  verbose: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.UI.Verbose)))

	return nil
}

func initConfig(cmd *cobra.Command, app *App) error {
	path, created, err := config.CreateDefaultConfig()
	if err != nil {
		return app.fail(cmd, types.ExitFailure, fmt.Errorf("failed to create config: %w", err))
	}

	if !created {
		fmt.Fprintf(app.stdout, "%s Configuration already exists at %s\n", WarningStyle.Render("!"), path)
		return nil
	}
	fmt.Fprintf(app.stdout, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), path)
	return nil
}

func showConfigPath(cmd *cobra.Command, app *App) error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return app.fail(cmd, types.ExitFailure, err)
	}

	fmt.Fprintf(app.stdout, "Config directory: %s\n", cfgDir)

	source, err := app.Config.Source(app.loadOptions())
	if err != nil {
		return app.fail(cmd, types.ExitFailure, err)
	}
	if source == "" {
		source = "(none, using defaults)"
	}
	fmt.Fprintf(app.stdout, "Config file: %s\n", source)

	return nil
}
