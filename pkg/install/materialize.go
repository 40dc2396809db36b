// SPDX-License-Identifier: MPL-2.0

package install

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
	"github.com/zeebo/blake3"

	"github.com/mkoncek/xmvn/pkg/fspath"
	"github.com/mkoncek/xmvn/pkg/metadata"
	"github.com/mkoncek/xmvn/pkg/types"
)

type (
	// Digest is a 32-byte BLAKE3 hash of an installed file.
	Digest [32]byte

	// ManifestEntry is one installed file.
	ManifestEntry struct {
		// Path is the absolute path the file has once the package is
		// installed.
		Path types.FilesystemPath
		Kind FileKind
		// Digest is zero for symlinks.
		Digest Digest
	}

	// Manifest lists the files Materialize wrote.
	Manifest struct {
		Package string
		Entries []ManifestEntry
	}
)

// String returns the hex encoding of the digest.
func (d Digest) String() string { return hex.EncodeToString(d[:]) }

// IsZero reports whether the digest is unset.
func (d Digest) IsZero() bool { return d == Digest{} }

// Materialize writes the package's files below buildRoot on fsys: artifact
// sources are copied, symlinks are created where fsys supports them (and
// copied otherwise) and the metadata descriptor is rendered.
func (p *Package) Materialize(fsys afero.Fs, buildRoot types.FilesystemPath) (*Manifest, error) {
	m := &Manifest{Package: p.ID}

	for _, f := range p.files {
		dst := fspath.JoinStr(buildRoot, string(f.TargetPath))
		if err := fsys.MkdirAll(string(fspath.Dir(dst)), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}

		entry := ManifestEntry{Path: fspath.Rooted(f.TargetPath), Kind: f.Kind}
		var err error
		switch f.Kind {
		case FileArtifact:
			entry.Digest, err = copyFile(fsys, f.Source, dst)
		case FileMetadata:
			entry.Digest, err = p.writeMetadata(fsys, dst)
		case FileSymlink:
			err = p.link(fsys, f, buildRoot, dst)
		default:
			err = fmt.Errorf("unknown file kind %q", f.Kind)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to install %s: %w", entry.Path, err)
		}
		m.Entries = append(m.Entries, entry)
	}
	return m, nil
}

func (p *Package) writeMetadata(fsys afero.Fs, dst types.FilesystemPath) (Digest, error) {
	data, err := metadata.Marshal(p.Metadata)
	if err != nil {
		return Digest{}, err
	}
	if err := afero.WriteFile(fsys, string(dst), data, 0o644); err != nil {
		return Digest{}, err
	}
	return Digest(blake3.Sum256(data)), nil
}

func (p *Package) link(fsys afero.Fs, f File, buildRoot, dst types.FilesystemPath) error {
	if linker, ok := fsys.(afero.Linker); ok {
		_ = fsys.Remove(string(dst))
		return linker.SymlinkIfPossible(string(f.LinkTarget), string(dst))
	}
	_, err := copyFile(fsys, fspath.JoinStr(buildRoot, string(f.LinkTarget)), dst)
	return err
}

// copyFile copies src to dst and returns the BLAKE3 digest of the content.
func copyFile(fsys afero.Fs, src, dst types.FilesystemPath) (Digest, error) {
	in, err := fsys.Open(string(src))
	if err != nil {
		return Digest{}, err
	}
	defer in.Close()

	out, err := fsys.OpenFile(string(dst), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return Digest{}, err
	}

	h := blake3.New()
	if _, err := io.Copy(io.MultiWriter(out, h), in); err != nil {
		_ = out.Close()
		return Digest{}, err
	}
	if err := out.Close(); err != nil {
		return Digest{}, err
	}

	var d Digest
	copy(d[:], h.Sum(nil))
	return d, nil
}

// WriteTo writes one installed path per line, in installation order.
func (m *Manifest) WriteTo(w io.Writer) (int64, error) {
	var n int64
	for _, e := range m.Entries {
		k, err := fmt.Fprintln(w, e.Path.Slash())
		n += int64(k)
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

// WriteDigests writes "<hex digest>  <path>" lines for every entry with
// content, in the format of b3sum.
func (m *Manifest) WriteDigests(w io.Writer) error {
	for _, e := range m.Entries {
		if e.Digest.IsZero() {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s  %s\n", e.Digest, e.Path.Slash()); err != nil {
			return err
		}
	}
	return nil
}
