// SPDX-License-Identifier: MPL-2.0

package repository

import (
	"github.com/mkoncek/xmvn/pkg/artifact"
	"github.com/mkoncek/xmvn/pkg/types"
)

type (
	// Member is one child of a Compound repository.
	Member struct {
		Repository Repository
		// Kind limits the child to binary or descriptor artifacts.
		Kind Kind
	}

	// Compound delegates to its members in order; the first hit wins.
	Compound struct {
		namespace string
		members   []Member
	}
)

// NewCompound creates a compound repository.
func NewCompound(namespace string, members ...Member) *Compound {
	return &Compound{namespace: namespace, members: members}
}

// Namespace implements Repository.
func (c *Compound) Namespace() string { return c.namespace }

// Members returns a copy of the member list.
func (c *Compound) Members() []Member {
	out := make([]Member, len(c.members))
	copy(out, c.members)
	return out
}

// Locate implements Repository.
func (c *Compound) Locate(a artifact.Artifact, versioned bool) (types.FilesystemPath, bool) {
	for _, m := range c.members {
		if !m.Kind.Accepts(a) {
			continue
		}
		if p, ok := m.Repository.Locate(a, versioned); ok {
			return p, true
		}
	}
	return "", false
}
