// SPDX-License-Identifier: MPL-2.0

package metadata

import (
	"encoding/xml"
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"
)

type (
	// Alias is an alternate coordinate that resolves to the same installed
	// artifact.
	Alias struct {
		GroupID    string `xml:"groupId"`
		ArtifactID string `xml:"artifactId"`
		Extension  string `xml:"extension,omitempty"`
		Classifier string `xml:"classifier,omitempty"`
	}

	// ArtifactMetadata describes one installed artifact. Values are built
	// once by the installer and not modified afterwards.
	ArtifactMetadata struct {
		GroupID    string `xml:"groupId"`
		ArtifactID string `xml:"artifactId"`
		Extension  string `xml:"extension,omitempty"`
		Classifier string `xml:"classifier,omitempty"`
		Version    string `xml:"version,omitempty"`
		// Path is the absolute installed path of the artifact file.
		Path      string `xml:"path,omitempty"`
		Namespace string `xml:"namespace,omitempty"`
		UUID      string `xml:"uuid,omitempty"`
		// CompatVersions keeps rule order; Encode renders it sorted.
		CompatVersions []string `xml:"compatVersions>version,omitempty"`
		Aliases        []Alias  `xml:"aliases>alias,omitempty"`
	}

	// PackageMetadata is the metadata document of one package.
	PackageMetadata struct {
		XMLName   xml.Name           `xml:"metadata"`
		UUID      string             `xml:"uuid,omitempty"`
		Artifacts []ArtifactMetadata `xml:"artifacts>artifact,omitempty"`
	}
)

// Add appends artifact metadata, preserving insertion order.
func (m *PackageMetadata) Add(a ArtifactMetadata) {
	m.Artifacts = append(m.Artifacts, a)
}

// Len returns the number of artifacts recorded.
func (m *PackageMetadata) Len() int { return len(m.Artifacts) }

// Find returns the first artifact with the given groupId and artifactId.
func (m *PackageMetadata) Find(groupID, artifactID string) (ArtifactMetadata, bool) {
	for _, a := range m.Artifacts {
		if a.GroupID == groupID && a.ArtifactID == artifactID {
			return a, true
		}
	}
	return ArtifactMetadata{}, false
}

// SortedVersions returns a sorted copy of versions. When every entry is a
// valid semantic version (loosely parsed, so "3" and "3.4" qualify) the
// semver ordering is used; otherwise the order is lexical.
func SortedVersions(versions []string) []string {
	out := slices.Clone(versions)

	parsed := make(map[string]*semver.Version, len(out))
	for _, v := range out {
		sv, err := semver.NewVersion(v)
		if err != nil {
			slices.Sort(out)
			return out
		}
		parsed[v] = sv
	}

	slices.SortFunc(out, func(a, b string) int {
		if c := parsed[a].Compare(parsed[b]); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
	return out
}
