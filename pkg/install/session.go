// SPDX-License-Identifier: MPL-2.0

package install

import (
	"fmt"
	"log/slog"

	"github.com/mkoncek/xmvn/pkg/deployer"
)

// DefaultPackageID is the package artifacts go to when their rule does not
// name one.
const DefaultPackageID = "main"

type (
	// Session installs every artifact of a reactor installation plan.
	Session struct {
		installer      *Installer
		rules          *RuleSet
		defaultPackage string
		logger         *slog.Logger

		packages []*Package
		byID     map[string]*Package
	}

	// SessionOption configures a Session.
	SessionOption func(*Session)
)

// WithDefaultPackage sets the package used by rules without a target package.
func WithDefaultPackage(id string) SessionOption {
	return func(s *Session) { s.defaultPackage = id }
}

// WithSessionLogger sets the session's logger.
func WithSessionLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) { s.logger = logger }
}

// NewSession creates a session. A nil rule set installs everything into
// the default package.
func NewSession(installer *Installer, rules *RuleSet, opts ...SessionOption) *Session {
	s := &Session{
		installer:      installer,
		rules:          rules,
		defaultPackage: DefaultPackageID,
		logger:         slog.Default(),
		byID:           make(map[string]*Package),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Package returns the package with the given id, creating it on first use.
func (s *Session) Package(id string) *Package {
	if p, ok := s.byID[id]; ok {
		return p
	}
	p := NewPackage(id, "")
	s.byID[id] = p
	s.packages = append(s.packages, p)
	return p
}

// Packages returns the packages in creation order.
func (s *Session) Packages() []*Package {
	out := make([]*Package, len(s.packages))
	copy(out, s.packages)
	return out
}

// InstallPlan installs every plan entry in order. Entries without a file
// and entries matched by an optional rule are skipped. The first failure
// stops the session.
func (s *Session) InstallPlan(plan *deployer.Plan) error {
	for _, entry := range plan.Entries {
		a := entry.Artifact()
		if a.Path == "" {
			s.logger.Debug("skipping artifact without file", "artifact", a.String())
			continue
		}

		rule := s.rules.Match(a)
		if rule.Optional {
			s.logger.Debug("skipping optional artifact", "artifact", a.String(), "rule", rule.Artifact)
			continue
		}

		pkgID := rule.TargetPackage
		if pkgID == "" {
			pkgID = s.defaultPackage
		}
		if err := s.installer.Install(s.Package(pkgID), &a, rule); err != nil {
			return fmt.Errorf("failed to install %s: %w", a, err)
		}
	}
	return nil
}
