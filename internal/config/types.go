// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/mkoncek/xmvn/pkg/deployer"
	"github.com/mkoncek/xmvn/pkg/install"
	"github.com/mkoncek/xmvn/pkg/repository"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// DefaultRulesFile is the packaging-rule file looked up in the working directory.
	DefaultRulesFile = "xmvn-rules.cue"
	// DefaultBuildRoot is where `xmvn install` materializes packages.
	DefaultBuildRoot = "target/buildroot"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidPackageName is the sentinel error wrapped by InvalidPackageNameError.
	ErrInvalidPackageName = errors.New("invalid package name")
	// ErrInvalidUIConfig is the sentinel error wrapped by InvalidUIConfigError.
	ErrInvalidUIConfig = errors.New("invalid UI config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")

	packageNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._+-]*$`)
)

type (
	// ColorScheme selects the CLI color palette.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// PackageName names an output package.
	PackageName string

	// InvalidPackageNameError is returned when a PackageName is empty or
	// contains characters not allowed in file names.
	InvalidPackageNameError struct {
		Value PackageName
	}

	// InvalidUIConfigError is returned when a UIConfig has invalid fields.
	InvalidUIConfigError struct {
		FieldErrors []error
	}

	// InvalidConfigError is returned when a Config has invalid fields. It
	// collects field-level validation errors.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// PlanFile is the reactor installation plan path.
		PlanFile string `json:"plan_file" mapstructure:"plan_file"`
		// RulesFile is the packaging-rule file.
		RulesFile string `json:"rules_file" mapstructure:"rules_file"`
		// BuildRoot is where installed packages are materialized.
		BuildRoot string `json:"build_root" mapstructure:"build_root"`
		// DefaultPackage receives artifacts whose rule names no package.
		DefaultPackage PackageName `json:"default_package" mapstructure:"default_package"`
		// Resolver configures the artifact resolver search path.
		Resolver ResolverConfig `json:"resolver" mapstructure:"resolver"`
		// Repositories declares the repositories installers can target.
		Repositories []repository.Definition `json:"repositories" mapstructure:"repositories"`
		// UI configures the user interface
		UI UIConfig `json:"ui" mapstructure:"ui"`
	}

	// ResolverConfig lists the directories searched for installed artifacts.
	ResolverConfig struct {
		// Root prefixes every repository directory.
		Root string `json:"root" mapstructure:"root"`
		// JarRepositories are searched for binary artifacts.
		JarRepositories []string `json:"jar_repositories" mapstructure:"jar_repositories"`
		// PomRepositories are searched for descriptors.
		PomRepositories []string `json:"pom_repositories" mapstructure:"pom_repositories"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		// Verbose enables debug logging and verbose error output
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}
)

// Settings converts the resolver configuration for repository.NewAggregated.
func (c ResolverConfig) Settings() repository.Settings {
	return repository.Settings{
		JarRepositories: c.JarRepositories,
		PomRepositories: c.PomRepositories,
	}
}

// IsValid returns whether the UIConfig has valid fields.
func (c UIConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidUIConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidUIConfigError.
func (e *InvalidUIConfigError) Error() string {
	return fmt.Sprintf("invalid UI config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidUIConfig for errors.Is() compatibility.
func (e *InvalidUIConfigError) Unwrap() error { return ErrInvalidUIConfig }

// IsValid returns whether the Config has valid fields. Repository
// definitions are checked individually; references between them are
// checked when the repository configurator is built.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if c.PlanFile == "" {
		errs = append(errs, errors.New("plan_file must not be empty"))
	}
	if valid, fieldErrs := c.DefaultPackage.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	for _, def := range c.Repositories {
		if err := def.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if valid, fieldErrs := c.UI.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	if len(e.FieldErrors) == 1 {
		return "invalid config: " + e.FieldErrors[0].Error()
	}
	return fmt.Sprintf("invalid config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidConfig followed by the field errors, so
// errors.Is matches both the config sentinel and the field sentinels.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

// String returns the string representation of the PackageName.
func (p PackageName) String() string { return string(p) }

// IsValid returns whether the PackageName can be used as a file name.
func (p PackageName) IsValid() (bool, []error) {
	if !packageNamePattern.MatchString(string(p)) {
		return false, []error{&InvalidPackageNameError{Value: p}}
	}
	return true, nil
}

// Error implements the error interface.
func (e *InvalidPackageNameError) Error() string {
	return fmt.Sprintf("invalid package name %q", e.Value)
}

// Unwrap returns ErrInvalidPackageName for errors.Is() compatibility.
func (e *InvalidPackageNameError) Unwrap() error { return ErrInvalidPackageName }

// Error implements the error interface.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns ErrInvalidColorScheme for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// DefaultRepositories returns the default install target: a compound
// repository placing binaries in the jpp layout under usr/share/java and
// descriptors in the flat layout under usr/share/maven-poms.
func DefaultRepositories() []repository.Definition {
	return []repository.Definition{
		{
			ID:           install.DefaultRepositoryID,
			Type:         repository.TypeCompound,
			Repositories: []string{"install-jar", "install-pom"},
		},
		{
			ID:   "install-jar",
			Type: repository.LayoutJPP.String(),
			Root: "usr/share/java",
			Kind: repository.KindBinary,
		},
		{
			ID:   "install-pom",
			Type: repository.LayoutFlat.String(),
			Root: "usr/share/maven-poms",
			Kind: repository.KindDescriptor,
		},
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		PlanFile:       deployer.DefaultPlanPath,
		RulesFile:      DefaultRulesFile,
		BuildRoot:      DefaultBuildRoot,
		DefaultPackage: install.DefaultPackageID,
		Resolver: ResolverConfig{
			Root:            "/",
			JarRepositories: []string{"usr/share/java"},
			PomRepositories: []string{"usr/share/maven-poms"},
		},
		Repositories: DefaultRepositories(),
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
		},
	}
}
