// SPDX-License-Identifier: MPL-2.0

package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mkoncek/xmvn/pkg/artifact"
)

const (
	// LayoutJPP places artifacts at <groupId>/<artifactId>[-<version>][-<classifier>].<ext>.
	// A "JPP/" group prefix is dropped and the bare "JPP" group has no directory.
	LayoutJPP Layout = "jpp"
	// LayoutJPPVersionless is LayoutJPP that never embeds the version.
	LayoutJPPVersionless Layout = "jpp-versionless"
	// LayoutFlat places artifacts at <groupId>-<artifactId>[-<version>][-<classifier>].<ext>
	// with "/" in the groupId replaced by ".".
	LayoutFlat Layout = "flat"
	// LayoutFlatVersionless is LayoutFlat that never embeds the version.
	LayoutFlatVersionless Layout = "flat-versionless"
	// LayoutMaven is the Maven 2 repository layout. It has no version-less form.
	LayoutMaven Layout = "maven"

	jppGroupPrefix = "JPP"
)

// ErrInvalidLayout is the sentinel error wrapped by InvalidLayoutError.
var ErrInvalidLayout = errors.New("invalid repository layout")

type (
	// Layout is a file naming convention for artifacts below a repository root.
	Layout string

	// InvalidLayoutError is returned when a Layout value is not recognized.
	InvalidLayoutError struct {
		Value Layout
	}
)

// Error implements the error interface.
func (e *InvalidLayoutError) Error() string {
	return fmt.Sprintf("invalid repository layout %q", e.Value)
}

// Unwrap returns ErrInvalidLayout for errors.Is() compatibility.
func (e *InvalidLayoutError) Unwrap() error { return ErrInvalidLayout }

// Layouts lists every supported layout.
func Layouts() []Layout {
	return []Layout{LayoutJPP, LayoutJPPVersionless, LayoutFlat, LayoutFlatVersionless, LayoutMaven}
}

// String returns the string representation of the Layout.
func (l Layout) String() string { return string(l) }

// Validate returns nil if the layout is supported.
func (l Layout) Validate() error {
	switch l {
	case LayoutJPP, LayoutJPPVersionless, LayoutFlat, LayoutFlatVersionless, LayoutMaven:
		return nil
	default:
		return &InvalidLayoutError{Value: l}
	}
}

// ArtifactPath returns the slash-separated path of a relative to a
// repository root. The boolean is false when the layout cannot represent
// the artifact in the requested form.
func (l Layout) ArtifactPath(a artifact.Artifact, versioned bool) (string, bool) {
	if a.GroupID == "" || a.ArtifactID == "" {
		return "", false
	}
	switch l {
	case LayoutJPP:
		return jppPath(a, versioned), true
	case LayoutJPPVersionless:
		return jppPath(a, false), true
	case LayoutFlat:
		return flatPath(a, versioned), true
	case LayoutFlatVersionless:
		return flatPath(a, false), true
	case LayoutMaven:
		if !versioned || a.Version == "" {
			return "", false
		}
		return mavenPath(a), true
	default:
		return "", false
	}
}

func jppPath(a artifact.Artifact, versioned bool) string {
	var sb strings.Builder
	group := a.GroupID
	switch {
	case group == jppGroupPrefix:
		group = ""
	case strings.HasPrefix(group, jppGroupPrefix+"/"):
		group = strings.TrimPrefix(group, jppGroupPrefix+"/")
	}
	if group != "" {
		sb.WriteString(group)
		sb.WriteByte('/')
	}
	writeFileName(&sb, a, versioned)
	return sb.String()
}

func flatPath(a artifact.Artifact, versioned bool) string {
	var sb strings.Builder
	sb.WriteString(strings.ReplaceAll(a.GroupID, "/", "."))
	sb.WriteByte('-')
	writeFileName(&sb, a, versioned)
	return sb.String()
}

func mavenPath(a artifact.Artifact) string {
	var sb strings.Builder
	sb.WriteString(strings.ReplaceAll(a.GroupID, ".", "/"))
	sb.WriteByte('/')
	sb.WriteString(a.ArtifactID)
	sb.WriteByte('/')
	sb.WriteString(a.Version)
	sb.WriteByte('/')
	writeFileName(&sb, a, true)
	return sb.String()
}

// writeFileName writes <artifactId>[-<version>][-<classifier>].<ext>.
func writeFileName(sb *strings.Builder, a artifact.Artifact, versioned bool) {
	sb.WriteString(a.ArtifactID)
	if versioned && a.Version != "" {
		sb.WriteByte('-')
		sb.WriteString(a.Version)
	}
	if a.Classifier != "" {
		sb.WriteByte('-')
		sb.WriteString(a.Classifier)
	}
	sb.WriteByte('.')
	sb.WriteString(a.EffectiveExtension())
}
