// SPDX-License-Identifier: MPL-2.0

package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/afero"

	"github.com/mkoncek/xmvn/pkg/types"
)

// TypeCompound is the Definition type of compound repositories. Every other
// type names a Layout.
const TypeCompound = "compound"

var (
	// ErrUnknownRepository is the sentinel error wrapped by UnknownRepositoryError.
	ErrUnknownRepository = errors.New("unknown repository")
	// ErrRepositoryCycle is the sentinel error wrapped by RepositoryCycleError.
	ErrRepositoryCycle = errors.New("repository cycle")
	// ErrInvalidDefinition is the sentinel error wrapped by InvalidDefinitionError.
	ErrInvalidDefinition = errors.New("invalid repository definition")
)

type (
	// Definition declares one named repository.
	Definition struct {
		ID        string `json:"id" mapstructure:"id"`
		Type      string `json:"type" mapstructure:"type"`
		Root      string `json:"root,omitempty" mapstructure:"root"`
		Namespace string `json:"namespace,omitempty" mapstructure:"namespace"`
		// Kind applies when the repository is a member of a compound.
		Kind Kind `json:"kind,omitempty" mapstructure:"kind"`
		// Repositories lists member ids of a compound repository.
		Repositories []string `json:"repositories,omitempty" mapstructure:"repositories"`
		// RequireExisting makes layout repositories report only existing files.
		RequireExisting bool `json:"require_existing,omitempty" mapstructure:"require_existing"`
	}

	// Configurator builds repositories from definitions.
	Configurator struct {
		defs map[string]Definition
		fs   afero.Fs
	}

	// ConfiguratorOption configures a Configurator.
	ConfiguratorOption func(*Configurator)

	// UnknownRepositoryError is returned for ids with no definition.
	UnknownRepositoryError struct {
		ID string
	}

	// RepositoryCycleError is returned when compound members refer back to
	// a repository that is already being built.
	RepositoryCycleError struct {
		Chain []string
	}

	// InvalidDefinitionError is returned when a definition is malformed.
	InvalidDefinitionError struct {
		ID     string
		Reason string
	}
)

// Error implements the error interface.
func (e *UnknownRepositoryError) Error() string {
	return fmt.Sprintf("unknown repository %q", e.ID)
}

// Unwrap returns ErrUnknownRepository for errors.Is() compatibility.
func (e *UnknownRepositoryError) Unwrap() error { return ErrUnknownRepository }

// Error implements the error interface.
func (e *RepositoryCycleError) Error() string {
	return "repository cycle: " + strings.Join(e.Chain, " -> ")
}

// Unwrap returns ErrRepositoryCycle for errors.Is() compatibility.
func (e *RepositoryCycleError) Unwrap() error { return ErrRepositoryCycle }

// Error implements the error interface.
func (e *InvalidDefinitionError) Error() string {
	return fmt.Sprintf("invalid repository %q: %s", e.ID, e.Reason)
}

// Unwrap returns ErrInvalidDefinition for errors.Is() compatibility.
func (e *InvalidDefinitionError) Unwrap() error { return ErrInvalidDefinition }

// WithFs sets the filesystem used by repositories with RequireExisting.
func WithFs(fs afero.Fs) ConfiguratorOption {
	return func(c *Configurator) { c.fs = fs }
}

// NewConfigurator validates defs and returns a configurator over them.
func NewConfigurator(defs []Definition, opts ...ConfiguratorOption) (*Configurator, error) {
	c := &Configurator{defs: make(map[string]Definition, len(defs))}
	for _, opt := range opts {
		opt(c)
	}
	if c.fs == nil {
		c.fs = afero.NewOsFs()
	}

	for _, d := range defs {
		if err := d.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.defs[d.ID]; dup {
			return nil, &InvalidDefinitionError{ID: d.ID, Reason: "defined more than once"}
		}
		c.defs[d.ID] = d
	}
	return c, nil
}

// Validate checks a single definition in isolation.
func (d Definition) Validate() error {
	if d.ID == "" {
		return &InvalidDefinitionError{Reason: "id must not be empty"}
	}
	if err := d.Kind.Validate(); err != nil {
		return &InvalidDefinitionError{ID: d.ID, Reason: err.Error()}
	}
	if d.Type == TypeCompound {
		if d.Root != "" {
			return &InvalidDefinitionError{ID: d.ID, Reason: "compound repositories have no root"}
		}
		return nil
	}
	if err := Layout(d.Type).Validate(); err != nil {
		return &InvalidDefinitionError{ID: d.ID, Reason: err.Error()}
	}
	if len(d.Repositories) > 0 {
		return &InvalidDefinitionError{ID: d.ID, Reason: "only compound repositories have members"}
	}
	return nil
}

// Definition returns the definition registered under id.
func (c *Configurator) Definition(id string) (Definition, bool) {
	d, ok := c.defs[id]
	return d, ok
}

// ConfigureRepository builds the repository registered under id. A
// non-empty namespace overrides the namespace of the top-level repository.
func (c *Configurator) ConfigureRepository(id, namespace string) (Repository, error) {
	return c.build(id, namespace, nil)
}

func (c *Configurator) build(id, namespace string, chain []string) (Repository, error) {
	for _, seen := range chain {
		if seen == id {
			return nil, &RepositoryCycleError{Chain: append(append([]string(nil), chain...), id)}
		}
	}

	d, ok := c.defs[id]
	if !ok {
		return nil, &UnknownRepositoryError{ID: id}
	}
	if namespace == "" {
		namespace = d.Namespace
	}

	if d.Type != TypeCompound {
		opts := []Option{WithNamespace(namespace)}
		if d.RequireExisting {
			opts = append(opts, WithExistenceCheck(c.fs))
		}
		return NewLayoutRepository(types.FilesystemPath(d.Root), Layout(d.Type), opts...), nil
	}

	chain = append(chain, id)
	members := make([]Member, 0, len(d.Repositories))
	for _, childID := range d.Repositories {
		child, err := c.build(childID, namespace, chain)
		if err != nil {
			return nil, err
		}
		members = append(members, Member{Repository: child, Kind: c.defs[childID].Kind})
	}
	return NewCompound(namespace, members...), nil
}
