// SPDX-License-Identifier: MPL-2.0

package install

import (
	"github.com/mkoncek/xmvn/pkg/artifact"
)

type (
	// AliasRule is an alternate coordinate declared by a packaging rule.
	AliasRule struct {
		GroupID    string `json:"groupId"`
		ArtifactID string `json:"artifactId"`
		Extension  string `json:"extension,omitempty"`
		Classifier string `json:"classifier,omitempty"`
	}

	// PackagingRule selects artifacts by coordinate glob and describes how
	// matching artifacts are installed.
	PackagingRule struct {
		// Artifact is a "group:artifact:version" glob. Empty matches every
		// artifact.
		Artifact string `json:"artifact"`

		TargetPackage    string `json:"targetPackage,omitempty"`
		TargetRepository string `json:"targetRepository,omitempty"`
		// Namespace overrides the target repository's namespace.
		Namespace string `json:"namespace,omitempty"`

		// Versions lists compatible versions the artifact also satisfies.
		Versions []string    `json:"versions,omitempty"`
		Aliases  []AliasRule `json:"aliases,omitempty"`
		// Files lists extra file names, next to the installed artifact,
		// that link to it.
		Files []string `json:"files,omitempty"`
		// Optional artifacts are not installed.
		Optional bool `json:"optional,omitempty"`

		glob *artifact.Glob
	}

	// RuleSet is an ordered list of compiled packaging rules.
	RuleSet struct {
		rules []*PackagingRule
	}
)

// Compile parses the rule's artifact glob. Rules must be compiled before
// Matches is called with a non-empty pattern.
func (r *PackagingRule) Compile() error {
	if r.Artifact == "" {
		r.glob = nil
		return nil
	}
	g, err := artifact.CompileGlob(r.Artifact)
	if err != nil {
		return err
	}
	r.glob = g
	return nil
}

// Matches reports whether the rule applies to a.
func (r *PackagingRule) Matches(a artifact.Artifact) bool {
	if r.Artifact == "" {
		return true
	}
	if r.glob == nil {
		if err := r.Compile(); err != nil {
			return false
		}
	}
	return r.glob.Matches(a)
}

// NewRuleSet compiles rules and keeps them in the given order.
func NewRuleSet(rules ...PackagingRule) (*RuleSet, error) {
	rs := &RuleSet{rules: make([]*PackagingRule, 0, len(rules))}
	for i := range rules {
		r := rules[i]
		if err := r.Compile(); err != nil {
			return nil, err
		}
		rs.rules = append(rs.rules, &r)
	}
	return rs, nil
}

// Len returns the number of rules.
func (rs *RuleSet) Len() int { return len(rs.rules) }

// Rules returns the rules in declared order.
func (rs *RuleSet) Rules() []*PackagingRule {
	out := make([]*PackagingRule, len(rs.rules))
	copy(out, rs.rules)
	return out
}

// Match returns the first rule, in declared order, that matches a. When
// no rule matches an empty rule is returned, which installs the artifact
// into the default package and repository unchanged.
func (rs *RuleSet) Match(a artifact.Artifact) *PackagingRule {
	if rs != nil {
		for _, r := range rs.rules {
			if r.Matches(a) {
				return r
			}
		}
	}
	return &PackagingRule{}
}
