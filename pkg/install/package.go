// SPDX-License-Identifier: MPL-2.0

package install

import (
	"fmt"

	"github.com/mkoncek/xmvn/pkg/artifact"
	"github.com/mkoncek/xmvn/pkg/fspath"
	"github.com/mkoncek/xmvn/pkg/metadata"
	"github.com/mkoncek/xmvn/pkg/types"
)

const (
	// FileArtifact is an artifact file copied from its build output.
	FileArtifact FileKind = "artifact"
	// FileMetadata is the package metadata descriptor.
	FileMetadata FileKind = "metadata"
	// FileSymlink is an extra name pointing at an installed artifact.
	FileSymlink FileKind = "symlink"

	// MetadataDir is where package metadata descriptors are installed.
	MetadataDir = "usr/share/maven-metadata"
)

type (
	// FileKind classifies file placements.
	FileKind string

	// File is one file placed into a package. TargetPath is relative to
	// the installation root.
	File struct {
		// Source is the file to copy. Empty for metadata and symlinks.
		Source     types.FilesystemPath
		TargetPath types.FilesystemPath
		Kind       FileKind
		// LinkTarget is the absolute installed path a symlink points at.
		LinkTarget types.FilesystemPath
	}

	// Package accumulates the files and metadata of one output package.
	Package struct {
		ID           string
		MetadataPath types.FilesystemPath
		Metadata     *metadata.PackageMetadata

		files []File
		keys  map[string]struct{}
	}
)

// String returns the string representation of the FileKind.
func (k FileKind) String() string { return string(k) }

// NewPackage creates an empty package. An empty metadataPath selects
// MetadataDir/<id>.xml.
func NewPackage(id string, metadataPath types.FilesystemPath) *Package {
	if metadataPath == "" {
		metadataPath = DefaultMetadataPath(id)
	}
	return &Package{
		ID:           id,
		MetadataPath: metadataPath,
		Metadata:     &metadata.PackageMetadata{},
		keys:         make(map[string]struct{}),
	}
}

// DefaultMetadataPath returns the metadata descriptor path of a package.
func DefaultMetadataPath(id string) types.FilesystemPath {
	return fspath.JoinStr(MetadataDir, id+".xml")
}

// Files returns the file placements in insertion order.
func (p *Package) Files() []File {
	out := make([]File, len(p.files))
	copy(out, p.files)
	return out
}

// Contains reports whether an artifact with the same coordinate has been
// installed into the package.
func (p *Package) Contains(a artifact.Artifact) bool {
	_, ok := p.keys[a.Key()]
	return ok
}

// IsEmpty reports whether nothing has been installed into the package.
func (p *Package) IsEmpty() bool { return len(p.files) == 0 }

func (p *Package) String() string {
	return fmt.Sprintf("%s (%d artifacts)", p.ID, p.Metadata.Len())
}

func (p *Package) addFile(f File) {
	p.files = append(p.files, f)
}

func (p *Package) addArtifact(a artifact.Artifact, md metadata.ArtifactMetadata) {
	p.keys[a.Key()] = struct{}{}
	p.Metadata.Add(md)
}
