// SPDX-License-Identifier: MPL-2.0

package install

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mkoncek/xmvn/pkg/artifact"
	"github.com/mkoncek/xmvn/pkg/fspath"
	"github.com/mkoncek/xmvn/pkg/metadata"
	"github.com/mkoncek/xmvn/pkg/repository"
)

// DefaultRepositoryID is the repository used by rules that do not name one.
const DefaultRepositoryID = "install"

var (
	// ErrRepositoryResolution is the sentinel error wrapped by RepositoryResolutionError.
	ErrRepositoryResolution = errors.New("artifact not representable in repository")
	// ErrDuplicateArtifact is the sentinel error wrapped by DuplicateArtifactError.
	ErrDuplicateArtifact = errors.New("duplicate artifact")
)

type (
	// RepositoryConfigurator builds repositories by id.
	RepositoryConfigurator interface {
		ConfigureRepository(id, namespace string) (repository.Repository, error)
	}

	// Installer installs single artifacts into packages.
	Installer struct {
		repos  RepositoryConfigurator
		logger *slog.Logger
		newID  func() string
	}

	// InstallerOption configures an Installer.
	InstallerOption func(*Installer)

	// RepositoryResolutionError is returned when the target repository has
	// no path for the artifact.
	RepositoryResolutionError struct {
		Artifact   string
		Repository string
	}

	// DuplicateArtifactError is returned when a package already contains an
	// artifact with the same coordinate.
	DuplicateArtifactError struct {
		Artifact string
		Package  string
	}
)

// Error implements the error interface.
func (e *RepositoryResolutionError) Error() string {
	return fmt.Sprintf("repository %q has no location for artifact %s", e.Repository, e.Artifact)
}

// Unwrap returns ErrRepositoryResolution for errors.Is() compatibility.
func (e *RepositoryResolutionError) Unwrap() error { return ErrRepositoryResolution }

// Error implements the error interface.
func (e *DuplicateArtifactError) Error() string {
	return fmt.Sprintf("artifact %s is already installed in package %q", e.Artifact, e.Package)
}

// Unwrap returns ErrDuplicateArtifact for errors.Is() compatibility.
func (e *DuplicateArtifactError) Unwrap() error { return ErrDuplicateArtifact }

// WithLogger sets the installer's logger.
func WithLogger(logger *slog.Logger) InstallerOption {
	return func(i *Installer) { i.logger = logger }
}

// WithIDGenerator replaces the random UUID generator.
func WithIDGenerator(gen func() string) InstallerOption {
	return func(i *Installer) { i.newID = gen }
}

// NewInstaller creates an installer that obtains target repositories from repos.
func NewInstaller(repos RepositoryConfigurator, opts ...InstallerOption) *Installer {
	i := &Installer{
		repos:  repos,
		logger: slog.Default(),
		newID:  func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Install places a into pkg according to rule. On success a.Path is set to
// the absolute installed path. On failure pkg and a are left unchanged.
func (i *Installer) Install(pkg *Package, a *artifact.Artifact, rule *PackagingRule) error {
	if rule == nil {
		rule = &PackagingRule{}
	}
	if pkg.Contains(*a) {
		return &DuplicateArtifactError{Artifact: a.String(), Package: pkg.ID}
	}

	repoID := rule.TargetRepository
	if repoID == "" {
		repoID = DefaultRepositoryID
	}
	repo, err := i.repos.ConfigureRepository(repoID, rule.Namespace)
	if err != nil {
		return fmt.Errorf("failed to configure repository %q: %w", repoID, err)
	}

	primary, ok := repo.Locate(*a, true)
	if !ok {
		return &RepositoryResolutionError{Artifact: a.String(), Repository: repoID}
	}
	installed := fspath.Rooted(primary)

	namespace := rule.Namespace
	if namespace == "" {
		namespace = repo.Namespace()
	}

	md := metadata.ArtifactMetadata{
		GroupID:        a.GroupID,
		ArtifactID:     a.ArtifactID,
		Extension:      a.EffectiveExtension(),
		Classifier:     a.Classifier,
		Version:        a.Version,
		Path:           installed.Slash(),
		Namespace:      namespace,
		UUID:           i.newID(),
		CompatVersions: dedupe(rule.Versions),
		Aliases:        aliases(rule.Aliases),
	}

	firstArtifact := pkg.Metadata.Len() == 0
	pkg.addFile(File{Source: a.Path, TargetPath: primary, Kind: FileArtifact})
	for _, name := range rule.Files {
		pkg.addFile(File{
			TargetPath: fspath.JoinStr(fspath.Dir(primary), name),
			Kind:       FileSymlink,
			LinkTarget: installed,
		})
	}
	if firstArtifact {
		pkg.addFile(File{TargetPath: pkg.MetadataPath, Kind: FileMetadata})
	}
	pkg.addArtifact(*a, md)

	i.logger.Debug("installed artifact", "artifact", a.String(), "package", pkg.ID, "path", installed)
	a.Path = installed
	return nil
}

// dedupe drops repeated versions, keeping the first occurrence.
func dedupe(versions []string) []string {
	if len(versions) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(versions))
	out := make([]string, 0, len(versions))
	for _, v := range versions {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func aliases(rules []AliasRule) []metadata.Alias {
	if len(rules) == 0 {
		return nil
	}
	out := make([]metadata.Alias, len(rules))
	for i, r := range rules {
		out[i] = metadata.Alias{
			GroupID:    r.GroupID,
			ArtifactID: r.ArtifactID,
			Extension:  r.Extension,
			Classifier: r.Classifier,
		}
	}
	return out
}

var _ RepositoryConfigurator = (*repository.Configurator)(nil)
