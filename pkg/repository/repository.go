// SPDX-License-Identifier: MPL-2.0

package repository

import (
	"errors"
	"fmt"

	"github.com/mkoncek/xmvn/pkg/artifact"
	"github.com/mkoncek/xmvn/pkg/types"
)

const (
	// KindAny accepts every artifact.
	KindAny Kind = ""
	// KindBinary accepts artifacts that are not descriptors.
	KindBinary Kind = "binary"
	// KindDescriptor accepts descriptor (pom) artifacts only.
	KindDescriptor Kind = "descriptor"
)

// ErrInvalidKind is the sentinel error wrapped by InvalidKindError.
var ErrInvalidKind = errors.New("invalid repository kind")

type (
	// Repository locates artifact files under one storage convention.
	Repository interface {
		// Locate returns the path at which a is expected. When versioned is
		// false the version-less form of the path is returned. The boolean is
		// false when the repository has no such path.
		Locate(a artifact.Artifact, versioned bool) (types.FilesystemPath, bool)

		// Namespace is the namespace recorded for artifacts installed into
		// this repository. May be empty.
		Namespace() string
	}

	// Kind restricts which artifacts a repository serves.
	Kind string

	// InvalidKindError is returned when a Kind value is not recognized.
	InvalidKindError struct {
		Value Kind
	}
)

// Error implements the error interface.
func (e *InvalidKindError) Error() string {
	return fmt.Sprintf("invalid repository kind %q (valid: %q, %q or empty)", e.Value, KindBinary, KindDescriptor)
}

// Unwrap returns ErrInvalidKind for errors.Is() compatibility.
func (e *InvalidKindError) Unwrap() error { return ErrInvalidKind }

// String returns the string representation of the Kind.
func (k Kind) String() string { return string(k) }

// Validate returns nil if the Kind is one of the known kinds.
func (k Kind) Validate() error {
	switch k {
	case KindAny, KindBinary, KindDescriptor:
		return nil
	default:
		return &InvalidKindError{Value: k}
	}
}

// Accepts reports whether an artifact falls into this kind.
func (k Kind) Accepts(a artifact.Artifact) bool {
	switch k {
	case KindBinary:
		return !a.IsDescriptor()
	case KindDescriptor:
		return a.IsDescriptor()
	default:
		return true
	}
}

// KindOf returns the kind an artifact belongs to.
func KindOf(a artifact.Artifact) Kind {
	if a.IsDescriptor() {
		return KindDescriptor
	}
	return KindBinary
}
