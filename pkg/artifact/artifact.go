// SPDX-License-Identifier: MPL-2.0

package artifact

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mkoncek/xmvn/pkg/types"
)

const (
	// DefaultExtension is used when a coordinate does not name an extension.
	DefaultExtension = "jar"
	// DefaultVersion is used when a coordinate does not name a version.
	DefaultVersion = "SYSTEM"
	// DescriptorExtension marks project descriptor artifacts.
	DescriptorExtension = "pom"
)

// ErrInvalidCoordinate is the sentinel error wrapped by InvalidCoordinateError.
var ErrInvalidCoordinate = errors.New("invalid artifact coordinate")

type (
	// Artifact is a coordinate plus the filesystem location of the file it
	// describes. The coordinate fields are treated as immutable once the
	// artifact is built; Path is rewritten when the artifact is relocated
	// by an installer.
	Artifact struct {
		GroupID    string
		ArtifactID string
		Extension  string
		Classifier string
		Version    string

		// Stereotype is the packaging type the artifact was produced with
		// (e.g. "pom", "maven-plugin"). Optional.
		Stereotype string

		// Path is the resolved filesystem path of the artifact file. Empty
		// until the artifact has been materialized or located.
		Path types.FilesystemPath
	}

	// InvalidCoordinateError is returned when a coordinate string cannot be
	// parsed or when a required field is missing.
	InvalidCoordinateError struct {
		Value  string
		Reason string
	}
)

// Error implements the error interface.
func (e *InvalidCoordinateError) Error() string {
	return fmt.Sprintf("invalid artifact coordinate %q: %s", e.Value, e.Reason)
}

// Unwrap returns ErrInvalidCoordinate for errors.Is() compatibility.
func (e *InvalidCoordinateError) Unwrap() error { return ErrInvalidCoordinate }

// New returns an artifact with the default extension.
func New(groupID, artifactID, version string) Artifact {
	return Artifact{
		GroupID:    groupID,
		ArtifactID: artifactID,
		Extension:  DefaultExtension,
		Version:    version,
	}
}

// Parse parses groupId:artifactId[:extension[:classifier]][:version].
func Parse(coords string) (Artifact, error) {
	tok := strings.Split(coords, ":")
	for _, t := range tok {
		if strings.ContainsAny(t, " \t\n") {
			return Artifact{}, &InvalidCoordinateError{Value: coords, Reason: "coordinates must not contain whitespace"}
		}
	}

	var a Artifact
	switch len(tok) {
	case 2:
		a = Artifact{GroupID: tok[0], ArtifactID: tok[1]}
	case 3:
		a = Artifact{GroupID: tok[0], ArtifactID: tok[1], Version: tok[2]}
	case 4:
		a = Artifact{GroupID: tok[0], ArtifactID: tok[1], Extension: tok[2], Version: tok[3]}
	case 5:
		a = Artifact{GroupID: tok[0], ArtifactID: tok[1], Extension: tok[2], Classifier: tok[3], Version: tok[4]}
	default:
		return Artifact{}, &InvalidCoordinateError{Value: coords, Reason: "expected 2 to 5 colon-separated fields"}
	}

	a = a.normalize()
	if err := a.Validate(); err != nil {
		return Artifact{}, &InvalidCoordinateError{Value: coords, Reason: err.Error()}
	}
	return a, nil
}

// MustParse is like Parse but panics on error. Intended for fixtures.
func MustParse(coords string) Artifact {
	a, err := Parse(coords)
	if err != nil {
		panic(err)
	}
	return a
}

// normalize fills in the default extension and version.
func (a Artifact) normalize() Artifact {
	if a.Extension == "" {
		a.Extension = DefaultExtension
	}
	if a.Version == "" {
		a.Version = DefaultVersion
	}
	return a
}

// Validate reports whether the mandatory coordinate fields are present.
func (a Artifact) Validate() error {
	switch {
	case a.GroupID == "":
		return errors.New("groupId must not be empty")
	case a.ArtifactID == "":
		return errors.New("artifactId must not be empty")
	case a.Version == "":
		return errors.New("version must not be empty")
	}
	return nil
}

// IsDescriptor reports whether the artifact is a project descriptor rather
// than a binary artifact.
func (a Artifact) IsDescriptor() bool {
	return a.Extension == DescriptorExtension
}

// EffectiveExtension returns the extension, defaulting to DefaultExtension.
func (a Artifact) EffectiveExtension() string {
	if a.Extension == "" {
		return DefaultExtension
	}
	return a.Extension
}

// WithPath returns a copy of the artifact pointing at p.
func (a Artifact) WithPath(p types.FilesystemPath) Artifact {
	a.Path = p
	return a
}

// WithVersion returns a copy of the artifact with a different version.
func (a Artifact) WithVersion(v string) Artifact {
	a.Version = v
	return a
}

// Key returns the identity of the coordinate, including every field that
// distinguishes two installed files. The path is not part of the key.
func (a Artifact) Key() string {
	return strings.Join([]string{a.GroupID, a.ArtifactID, a.EffectiveExtension(), a.Classifier, a.Version}, ":")
}

// String renders the coordinate in the form accepted by Parse, omitting the
// extension when it is the default and no classifier is present.
func (a Artifact) String() string {
	var sb strings.Builder
	sb.WriteString(a.GroupID)
	sb.WriteByte(':')
	sb.WriteString(a.ArtifactID)
	switch {
	case a.Classifier != "":
		sb.WriteByte(':')
		sb.WriteString(a.EffectiveExtension())
		sb.WriteByte(':')
		sb.WriteString(a.Classifier)
	case a.EffectiveExtension() != DefaultExtension:
		sb.WriteByte(':')
		sb.WriteString(a.Extension)
	}
	if a.Version != "" {
		sb.WriteByte(':')
		sb.WriteString(a.Version)
	}
	return sb.String()
}
