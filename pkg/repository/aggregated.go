// SPDX-License-Identifier: MPL-2.0

package repository

import (
	"github.com/spf13/afero"

	"github.com/mkoncek/xmvn/pkg/artifact"
	"github.com/mkoncek/xmvn/pkg/fspath"
	"github.com/mkoncek/xmvn/pkg/types"
)

type (
	// Settings lists the directories the resolver searches, relative to a
	// common root.
	Settings struct {
		JarRepositories []string
		PomRepositories []string
	}

	// Aggregated is the resolver's view of every installed-artifact
	// directory. Binary artifacts and descriptors use separate lists.
	Aggregated struct {
		jarRepos []Repository
		pomRepos []Repository
	}
)

// NewAggregated builds the search path from settings. Binary directories
// are probed with the jpp layout first and jpp-versionless second;
// descriptor directories with flat then flat-versionless. Every directory
// of the first variant is tried before any directory of the second. Only
// files that exist on fs are reported.
func NewAggregated(fs afero.Fs, root types.FilesystemPath, settings Settings) *Aggregated {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Aggregated{
		jarRepos: variantRepositories(fs, root, settings.JarRepositories, LayoutJPP, LayoutJPPVersionless),
		pomRepos: variantRepositories(fs, root, settings.PomRepositories, LayoutFlat, LayoutFlatVersionless),
	}
}

// NewAggregatedFrom builds an aggregated repository from explicit lists.
func NewAggregatedFrom(jarRepos, pomRepos []Repository) *Aggregated {
	return &Aggregated{jarRepos: jarRepos, pomRepos: pomRepos}
}

func variantRepositories(fs afero.Fs, root types.FilesystemPath, dirs []string, first, second Layout) []Repository {
	repos := make([]Repository, 0, 2*len(dirs))
	for _, layout := range []Layout{first, second} {
		for _, dir := range dirs {
			repos = append(repos, NewLayoutRepository(fspath.JoinStr(root, dir), layout, WithExistenceCheck(fs)))
		}
	}
	return repos
}

// Namespace implements Repository. The aggregated view has no namespace.
func (r *Aggregated) Namespace() string { return "" }

// Repositories returns the probe order for artifacts of the given kind.
func (r *Aggregated) Repositories(kind Kind) []Repository {
	src := r.jarRepos
	if kind == KindDescriptor {
		src = r.pomRepos
	}
	out := make([]Repository, len(src))
	copy(out, src)
	return out
}

// Locate implements Repository. "Not found" is reported through the
// boolean, never as an error.
func (r *Aggregated) Locate(a artifact.Artifact, versioned bool) (types.FilesystemPath, bool) {
	repos := r.jarRepos
	if a.IsDescriptor() {
		repos = r.pomRepos
	}
	for _, repo := range repos {
		if p, ok := repo.Locate(a, versioned); ok {
			return p, true
		}
	}
	return "", false
}

// Resolve looks up the versioned path first and falls back to the
// version-less one.
func (r *Aggregated) Resolve(a artifact.Artifact) (types.FilesystemPath, bool) {
	if p, ok := r.Locate(a, true); ok {
		return p, true
	}
	return r.Locate(a, false)
}
