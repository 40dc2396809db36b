// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/mkoncek/xmvn/internal/config"
	"github.com/mkoncek/xmvn/internal/issue"
	"github.com/mkoncek/xmvn/pkg/fspath"
	"github.com/mkoncek/xmvn/pkg/install"
	"github.com/mkoncek/xmvn/pkg/repository"
	"github.com/mkoncek/xmvn/pkg/types"
)

// manifestPrefix names the per-package file lists written by install.
const manifestPrefix = ".mfiles"

type installOptions struct {
	buildRoot   string
	rulesFile   string
	manifestDir string
	digests     bool
}

// newInstallCommand creates the `xmvn install` command.
func newInstallCommand(app *App) *cobra.Command {
	var opts installOptions

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install the artifacts recorded in the reactor plan into packages",
		Long: `Install the artifacts recorded in the reactor plan into packages.

Every plan entry is matched against the packaging rules (first match wins),
placed into the repository the rule names (default "install") and recorded in
its package's metadata. Packages are then written below the build root, and
a file list per package is written to the manifest directory: .mfiles for the
default package and .mfiles-<package> for the others.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall(cmd, app, opts)
		},
	}

	cmd.Flags().StringVar(&opts.buildRoot, "build-root", "", "directory packages are installed into (default build_root)")
	cmd.Flags().StringVar(&opts.rulesFile, "rules", "", "packaging rule file (default rules_file)")
	cmd.Flags().StringVar(&opts.manifestDir, "manifest-dir", ".", "directory the package file lists are written to")
	cmd.Flags().BoolVar(&opts.digests, "digests", false, "also write BLAKE3 digests of installed files (.b3sum)")

	return cmd
}

func runInstall(cmd *cobra.Command, app *App, opts installOptions) error {
	cfg, err := app.loadConfig(cmd.Context())
	if err != nil {
		return app.fail(cmd, types.ExitFailure, err)
	}
	if opts.buildRoot == "" {
		opts.buildRoot = cfg.BuildRoot
	}
	if opts.rulesFile == "" {
		opts.rulesFile = cfg.RulesFile
	}

	buildRoot, err := fspath.Abs(types.FilesystemPath(opts.buildRoot))
	if err != nil {
		return app.fail(cmd, types.ExitFailure, err)
	}

	session, err := app.newSession(cfg, opts.rulesFile)
	if err != nil {
		return app.fail(cmd, types.ExitFailure, err)
	}

	plan, err := app.loadPlan(cfg)
	if err != nil {
		return app.fail(cmd, types.ExitFailure, err)
	}
	if err := session.InstallPlan(plan); err != nil {
		return app.fail(cmd, types.ExitFailure, err)
	}

	installed := 0
	for _, pkg := range session.Packages() {
		if pkg.IsEmpty() {
			continue
		}
		manifest, err := pkg.Materialize(app.Fs, buildRoot)
		if err != nil {
			return app.fail(cmd, types.ExitFailure, fmt.Errorf("package %s: %w", pkg.ID, err))
		}

		name := manifestName(pkg.ID, cfg.DefaultPackage)
		if err := app.writeManifest(filepath.Join(opts.manifestDir, name), manifest, opts.digests); err != nil {
			return app.fail(cmd, types.ExitFailure, err)
		}

		installed++
		fmt.Fprintf(app.stdout, "%s Installed package %s (%d files)\n",
			SuccessStyle.Render("✓"), CmdStyle.Render(pkg.ID), len(manifest.Entries))
	}

	if installed == 0 {
		fmt.Fprintln(app.stdout, SubtitleStyle.Render("Nothing to install"))
	}
	return nil
}

// newSession wires the rule set, repository configurator and installer.
func (a *App) newSession(cfg *config.Config, rulesFile string) (*install.Session, error) {
	rules, err := install.LoadRules(a.Fs, types.FilesystemPath(rulesFile))
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation(opLoadRules).
			WithResource(rulesFile).
			WithSuggestion("Check the rule file against the documented schema").
			WithSuggestion("Coordinate patterns are groupId:artifactId:version globs").
			Wrap(err).
			BuildError()
	}

	repos, err := repository.NewConfigurator(cfg.Repositories, repository.WithFs(a.Fs))
	if err != nil {
		return nil, err
	}

	installer := install.NewInstaller(repos, install.WithLogger(a.logger))
	return install.NewSession(installer, rules,
		install.WithDefaultPackage(cfg.DefaultPackage.String()),
		install.WithSessionLogger(a.logger),
	), nil
}

// manifestName returns the file list name for a package.
func manifestName(pkgID string, defaultPackage config.PackageName) string {
	if pkgID == defaultPackage.String() {
		return manifestPrefix
	}
	return manifestPrefix + "-" + pkgID
}

func (a *App) writeManifest(path string, m *install.Manifest, digests bool) error {
	var buf bytes.Buffer
	if _, err := m.WriteTo(&buf); err != nil {
		return err
	}
	if err := afero.WriteFile(a.Fs, path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write file list: %w", err)
	}
	if !digests {
		return nil
	}

	buf.Reset()
	if err := m.WriteDigests(&buf); err != nil {
		return err
	}
	if err := afero.WriteFile(a.Fs, path+".b3sum", buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write digests: %w", err)
	}
	return nil
}
