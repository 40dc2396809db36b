// SPDX-License-Identifier: MPL-2.0

package deployer

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/mkoncek/xmvn/pkg/artifact"
)

// DefaultPlanPath is the plan location relative to the working directory.
const DefaultPlanPath = ".xmvn-reactor"

type (
	// DeploymentRequest asks for one artifact to be added to the plan.
	// Artifact.Path is recorded as the entry's file.
	DeploymentRequest struct {
		Artifact artifact.Artifact
	}

	// DeploymentResult carries the outcome of Deploy.
	DeploymentResult struct {
		err error
	}

	// Deployer appends artifacts to the reactor installation plan.
	Deployer struct {
		fs     afero.Fs
		path   string
		logger *slog.Logger
	}

	// Option configures a Deployer.
	Option func(*Deployer)
)

// Err returns the failure, or nil when the artifact was recorded.
func (r DeploymentResult) Err() error { return r.err }

// OK reports whether the deployment succeeded.
func (r DeploymentResult) OK() bool { return r.err == nil }

// WithFs sets the filesystem the plan is stored on.
func WithFs(fsys afero.Fs) Option {
	return func(d *Deployer) { d.fs = fsys }
}

// WithPlanPath sets the plan file location.
func WithPlanPath(path string) Option {
	return func(d *Deployer) { d.path = path }
}

// WithLogger sets the deployer's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Deployer) { d.logger = logger }
}

// New creates a deployer. By default the plan is DefaultPlanPath on the
// OS filesystem.
func New(opts ...Option) *Deployer {
	d := &Deployer{
		fs:     afero.NewOsFs(),
		path:   DefaultPlanPath,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// PlanPath returns the plan file location.
func (d *Deployer) PlanPath() string { return d.path }

// Deploy adds req.Artifact to the plan. It never panics and never returns
// an error directly; failures are reported through the result. When the
// existing plan cannot be parsed the file is left untouched.
func (d *Deployer) Deploy(req DeploymentRequest) DeploymentResult {
	plan, err := d.LoadPlan()
	if err != nil {
		d.logger.Debug("deployment failed", "artifact", req.Artifact.String(), "error", err)
		return DeploymentResult{err: err}
	}

	plan.Add(EntryFor(req.Artifact))

	if err := d.save(plan); err != nil {
		d.logger.Debug("deployment failed", "artifact", req.Artifact.String(), "error", err)
		return DeploymentResult{err: err}
	}

	d.logger.Debug("deployed artifact", "artifact", req.Artifact.String(), "plan", d.path, "entries", plan.Len())
	return DeploymentResult{}
}

// LoadPlan reads the plan. A missing file yields an empty plan.
func (d *Deployer) LoadPlan() (*Plan, error) {
	data, err := afero.ReadFile(d.fs, d.path)
	if err != nil {
		if isNotExist(err) {
			return &Plan{}, nil
		}
		return nil, fmt.Errorf("failed to read reactor installation plan: %w", err)
	}
	return ParsePlan(data, d.path)
}

// Reset removes the plan file. A missing file is not an error.
func (d *Deployer) Reset() error {
	if err := d.fs.Remove(d.path); err != nil && !isNotExist(err) {
		return fmt.Errorf("failed to remove reactor installation plan: %w", err)
	}
	return nil
}

// save replaces the plan file with a temp file renamed over it, so readers
// see either the old or the new document.
func (d *Deployer) save(plan *Plan) error {
	data, err := plan.Marshal()
	if err != nil {
		return err
	}

	dir := filepath.Dir(d.path)
	if err := d.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := afero.TempFile(d.fs, dir, filepath.Base(d.path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("failed to write reactor installation plan: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = d.fs.Remove(tmpName)
		return fmt.Errorf("failed to write reactor installation plan: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = d.fs.Remove(tmpName)
		return fmt.Errorf("failed to write reactor installation plan: %w", err)
	}
	if err := d.fs.Chmod(tmpName, 0o644); err != nil {
		_ = d.fs.Remove(tmpName)
		return fmt.Errorf("failed to write reactor installation plan: %w", err)
	}

	if err := d.fs.Rename(tmpName, d.path); err != nil {
		_ = d.fs.Remove(tmpName)
		return fmt.Errorf("failed to rename reactor installation plan: %w", err)
	}
	return nil
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
