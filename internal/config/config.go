// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"

	"github.com/mkoncek/xmvn/internal/issue"
	"github.com/mkoncek/xmvn/pkg/cueutil"
)

const (
	// AppName is the application name.
	AppName = "xmvn"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
	// LocalConfigFile is the project-level config file in the working directory.
	LocalConfigFile = "xmvn.cue"
	// EnvPrefix prefixes environment variable overrides (XMVN_PLAN_FILE, ...).
	EnvPrefix = "XMVN"
)

//go:embed config_schema.cue
var configSchema string

// ConfigDir returns the xmvn configuration directory using platform-specific
// conventions: Windows uses %APPDATA%, macOS uses ~/Library/Application Support,
// and Linux/others use $XDG_CONFIG_HOME (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default:
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// ConfigFilePath returns the path of the user config file.
func ConfigFilePath() (string, error) {
	cfgDir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt), nil
}

// newViper returns a Viper instance carrying the defaults and environment
// overrides.
func newViper() *viper.Viper {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("plan_file", defaults.PlanFile)
	v.SetDefault("rules_file", defaults.RulesFile)
	v.SetDefault("build_root", defaults.BuildRoot)
	v.SetDefault("default_package", defaults.DefaultPackage)
	v.SetDefault("resolver.root", defaults.Resolver.Root)
	v.SetDefault("resolver.jar_repositories", defaults.Resolver.JarRepositories)
	v.SetDefault("resolver.pom_repositories", defaults.Resolver.PomRepositories)
	v.SetDefault("repositories", defaults.Repositories)
	v.SetDefault("ui.color_scheme", defaults.UI.ColorScheme)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// loadWithOptions performs option-driven config loading without mutating
// package-level state. It returns the config and the file it was read
// from ("" when only defaults apply).
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := newViper()

	resolvedPath, err := resolveConfigFile(opts)
	if err != nil {
		return nil, "", err
	}
	if resolvedPath != "" {
		if err := loadCUEIntoViper(v, resolvedPath); err != nil {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(resolvedPath).
				WithSuggestion("Check that the file contains valid CUE syntax").
				WithSuggestion("Verify the configuration values match the expected schema").
				WithSuggestion("Use 'xmvn config dump' to see a complete configuration").
				Wrap(err).
				BuildError()
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	if valid, errs := cfg.IsValid(); !valid {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(resolvedPath).
			WithSuggestion("Repository definitions need an id and a known type").
			WithSuggestion("Only compound repositories may list member repositories").
			Wrap(errs[0]).
			BuildError()
	}

	return &cfg, resolvedPath, nil
}

// resolveConfigFile picks the config file: an explicit path must exist;
// otherwise the user config directory is tried, then the working directory.
func resolveConfigFile(opts LoadOptions) (string, error) {
	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath) {
			return "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Use 'xmvn config init' to create a default configuration").
				Wrap(fmt.Errorf("config file not found: %s", opts.ConfigFilePath)).
				BuildError()
		}
		return opts.ConfigFilePath, nil
	}

	cfgDir, err := configDirWithOverride(opts.ConfigDirPath)
	if err != nil {
		return "", err
	}
	if cuePath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt); fileExists(cuePath) {
		return cuePath, nil
	}
	if fileExists(LocalConfigFile) {
		return LocalConfigFile, nil
	}
	return "", nil
}

// configDirWithOverride resolves the configuration directory, honoring
// explicit provider options before platform defaults.
func configDirWithOverride(configDirPath string) (string, error) {
	if configDirPath != "" {
		return configDirPath, nil
	}

	return ConfigDir()
}

// loadCUEIntoViper validates a CUE file against the #Config schema and
// merges its contents into Viper. The file decodes to a map rather than
// Config so that keys it leaves out keep their Viper defaults.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	configMap, err := cueutil.ParseAndDecode[map[string]any]([]byte(configSchema), data, "#Config",
		cueutil.WithFilename(path))
	if err != nil {
		return err
	}

	if err := v.MergeConfigMap(*configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}
	return nil
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// CreateDefaultConfig writes the default configuration to the user config
// file unless one already exists. It returns the file path and whether the
// file was created.
func CreateDefaultConfig() (string, bool, error) {
	cfgPath, err := ConfigFilePath()
	if err != nil {
		return "", false, err
	}

	if _, err := os.Stat(cfgPath); err == nil {
		return cfgPath, false, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfgPath), 0o755); err != nil {
		return "", false, fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(cfgPath, []byte(GenerateCUE(DefaultConfig())), 0o644); err != nil {
		return "", false, fmt.Errorf("failed to write config file: %w", err)
	}

	return cfgPath, true, nil
}

// GenerateCUE generates a CUE representation of the configuration
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// xmvn configuration file\n\n")

	fmt.Fprintf(&sb, "plan_file:       %q\n", cfg.PlanFile)
	fmt.Fprintf(&sb, "rules_file:      %q\n", cfg.RulesFile)
	fmt.Fprintf(&sb, "build_root:      %q\n", cfg.BuildRoot)
	fmt.Fprintf(&sb, "default_package: %q\n", cfg.DefaultPackage)

	sb.WriteString("\nresolver: {\n")
	fmt.Fprintf(&sb, "\troot: %q\n", cfg.Resolver.Root)
	fmt.Fprintf(&sb, "\tjar_repositories: %s\n", cueStringList(cfg.Resolver.JarRepositories))
	fmt.Fprintf(&sb, "\tpom_repositories: %s\n", cueStringList(cfg.Resolver.PomRepositories))
	sb.WriteString("}\n")

	if len(cfg.Repositories) > 0 {
		sb.WriteString("\nrepositories: [\n")
		for _, def := range cfg.Repositories {
			fields := []string{fmt.Sprintf("id: %q", def.ID), fmt.Sprintf("type: %q", def.Type)}
			if def.Root != "" {
				fields = append(fields, fmt.Sprintf("root: %q", def.Root))
			}
			if def.Namespace != "" {
				fields = append(fields, fmt.Sprintf("namespace: %q", def.Namespace))
			}
			if def.Kind != "" {
				fields = append(fields, fmt.Sprintf("kind: %q", def.Kind))
			}
			if len(def.Repositories) > 0 {
				fields = append(fields, "repositories: "+cueStringList(def.Repositories))
			}
			if def.RequireExisting {
				fields = append(fields, "require_existing: true")
			}
			fmt.Fprintf(&sb, "\t{%s},\n", strings.Join(fields, ", "))
		}
		sb.WriteString("]\n")
	}

	sb.WriteString("\nui: {\n")
	fmt.Fprintf(&sb, "\tcolor_scheme: %q\n", cfg.UI.ColorScheme)
	fmt.Fprintf(&sb, "\tverbose: %v\n", cfg.UI.Verbose)
	sb.WriteString("}\n")

	return sb.String()
}

func cueStringList(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = fmt.Sprintf("%q", s)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
