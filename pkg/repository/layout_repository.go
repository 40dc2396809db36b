// SPDX-License-Identifier: MPL-2.0

package repository

import (
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/mkoncek/xmvn/pkg/artifact"
	"github.com/mkoncek/xmvn/pkg/fspath"
	"github.com/mkoncek/xmvn/pkg/types"
)

type (
	// LayoutRepository is a single directory tree with one naming convention.
	LayoutRepository struct {
		root      types.FilesystemPath
		layout    Layout
		namespace string
		// fs is non-nil when Locate must verify that the file exists.
		fs afero.Fs
	}

	// Option configures a LayoutRepository.
	Option func(*LayoutRepository)
)

// WithNamespace sets the namespace recorded for installed artifacts.
func WithNamespace(namespace string) Option {
	return func(r *LayoutRepository) { r.namespace = namespace }
}

// WithExistenceCheck makes Locate report "absent" for paths that do not
// exist as regular files on fs.
func WithExistenceCheck(fs afero.Fs) Option {
	return func(r *LayoutRepository) { r.fs = fs }
}

// NewLayoutRepository creates a repository rooted at root.
func NewLayoutRepository(root types.FilesystemPath, layout Layout, opts ...Option) *LayoutRepository {
	r := &LayoutRepository{root: root, layout: layout}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Root returns the repository root directory.
func (r *LayoutRepository) Root() types.FilesystemPath { return r.root }

// Layout returns the repository layout.
func (r *LayoutRepository) Layout() Layout { return r.layout }

// Namespace implements Repository.
func (r *LayoutRepository) Namespace() string { return r.namespace }

// RequiresExisting reports whether Locate probes the filesystem.
func (r *LayoutRepository) RequiresExisting() bool { return r.fs != nil }

// Locate implements Repository.
func (r *LayoutRepository) Locate(a artifact.Artifact, versioned bool) (types.FilesystemPath, bool) {
	rel, ok := r.layout.ArtifactPath(a, versioned)
	if !ok {
		return "", false
	}

	p := types.FilesystemPath(filepath.FromSlash(rel))
	if r.root != "" {
		p = fspath.JoinStr(r.root, string(p))
	}

	if r.fs != nil {
		info, err := r.fs.Stat(string(p))
		if err != nil || !info.Mode().IsRegular() {
			return "", false
		}
	}
	return p, true
}

// String returns "<layout>:<root>".
func (r *LayoutRepository) String() string {
	return r.layout.String() + ":" + r.root.String()
}
