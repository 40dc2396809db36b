// SPDX-License-Identifier: MPL-2.0

package artifact

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// globMetaChars are the characters that make a glob token a pattern rather
// than a literal.
const globMetaChars = `*?[]{}\`

// separatorStandIn replaces "/" in both pattern and subject before a pattern
// is evaluated. Coordinate fields are not paths ("JPP/commons-io" is a valid
// groupId), so a "*" must be able to span a slash.
const separatorStandIn = "\x00"

// ErrMalformedPattern is the sentinel error wrapped by MalformedPatternError.
var ErrMalformedPattern = errors.New("malformed coordinate pattern")

type (
	// Glob matches artifacts by groupId, artifactId and version. A nil field
	// matcher accepts any value. Glob values are immutable and safe for
	// concurrent use.
	Glob struct {
		pattern    string
		groupID    *fieldMatcher
		artifactID *fieldMatcher
		version    *fieldMatcher
	}

	// MalformedPatternError is returned by CompileGlob when one of the
	// pattern's fields has invalid wildcard syntax.
	MalformedPatternError struct {
		Pattern string
		Field   string
		Token   string
	}

	fieldMatcher struct {
		token   string
		literal bool
	}
)

// Error implements the error interface.
func (e *MalformedPatternError) Error() string {
	return fmt.Sprintf("malformed coordinate pattern %q: invalid %s glob %q", e.Pattern, e.Field, e.Token)
}

// Unwrap returns ErrMalformedPattern for errors.Is() compatibility.
func (e *MalformedPatternError) Unwrap() error { return ErrMalformedPattern }

// CompileGlob compiles a "group:artifact:version" pattern. Missing trailing
// fields are wildcards. Any colon past the second belongs to the version
// field.
func CompileGlob(pattern string) (*Glob, error) {
	tok := strings.SplitN(pattern, ":", 3)
	for len(tok) < 3 {
		tok = append(tok, "")
	}

	g := &Glob{pattern: pattern}
	fields := []struct {
		name string
		dst  **fieldMatcher
	}{
		{"groupId", &g.groupID},
		{"artifactId", &g.artifactID},
		{"version", &g.version},
	}
	for i, f := range fields {
		m, err := compileField(tok[i])
		if err != nil {
			return nil, &MalformedPatternError{Pattern: pattern, Field: f.name, Token: tok[i]}
		}
		*f.dst = m
	}
	return g, nil
}

// MustCompileGlob is like CompileGlob but panics on error.
func MustCompileGlob(pattern string) *Glob {
	g, err := CompileGlob(pattern)
	if err != nil {
		panic(err)
	}
	return g
}

// Matches reports whether every field matcher accepts the corresponding
// field of a.
func (g *Glob) Matches(a Artifact) bool {
	return g.groupID.matches(a.GroupID) &&
		g.artifactID.matches(a.ArtifactID) &&
		g.version.matches(a.Version)
}

// String returns the pattern the glob was compiled from.
func (g *Glob) String() string { return g.pattern }

func compileField(token string) (*fieldMatcher, error) {
	if token == "" {
		return nil, nil
	}
	if !strings.ContainsAny(token, globMetaChars) {
		return &fieldMatcher{token: token, literal: true}, nil
	}
	mapped := strings.ReplaceAll(token, "/", separatorStandIn)
	if !doublestar.ValidatePattern(mapped) {
		return nil, doublestar.ErrBadPattern
	}
	return &fieldMatcher{token: mapped}, nil
}

func (m *fieldMatcher) matches(value string) bool {
	if m == nil {
		return true
	}
	if m.literal {
		return m.token == value
	}
	ok, err := doublestar.Match(m.token, strings.ReplaceAll(value, "/", separatorStandIn))
	return err == nil && ok
}
