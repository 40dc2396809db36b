// SPDX-License-Identifier: MPL-2.0

package metadata

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"github.com/mkoncek/xmvn/internal/xmldoc"
)

// ErrInvalidMetadata is returned by Decode for documents that are not
// package metadata.
var ErrInvalidMetadata = errors.New("invalid package metadata")

// Encode writes m as an indented XML document. Compatible versions are
// written in sorted order so output is reproducible.
func Encode(w io.Writer, m *PackageMetadata) error {
	doc := *m
	doc.Artifacts = make([]ArtifactMetadata, len(m.Artifacts))
	for i, a := range m.Artifacts {
		a.CompatVersions = SortedVersions(a.CompatVersions)
		doc.Artifacts[i] = a
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("failed to write metadata: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(&doc); err != nil {
		return fmt.Errorf("failed to encode metadata: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to encode metadata: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// Marshal is Encode into a byte slice.
func Marshal(m *PackageMetadata) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode reads a package metadata document. Documents declaring a legacy
// character set (e.g. US-ASCII, ISO-8859-1) are transcoded.
func Decode(r io.Reader) (*PackageMetadata, error) {
	dec := xmldoc.NewDecoder(r)

	var m PackageMetadata
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidMetadata, err)
	}
	if err := xmldoc.ExpectEnd(dec); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidMetadata, err)
	}
	return &m, nil
}
