// SPDX-License-Identifier: MPL-2.0

package deployer

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"

	"github.com/mkoncek/xmvn/internal/xmldoc"
	"github.com/mkoncek/xmvn/pkg/artifact"
	"github.com/mkoncek/xmvn/pkg/types"
)

const (
	planRootElement = "reactorInstallationPlan"
	planComment     = " Reactor installation plan generated by XMvn "
	planIndent      = "  "
)

// ErrCorruptPlan is the sentinel error wrapped by CorruptPlanError.
var ErrCorruptPlan = errors.New("corrupt reactor installation plan")

type (
	// Plan is the reactor installation plan document.
	Plan struct {
		XMLName xml.Name    `xml:"reactorInstallationPlan"`
		Entries []PlanEntry `xml:"artifact"`
	}

	// PlanEntry describes one deployed artifact. Empty fields are omitted
	// from the document.
	PlanEntry struct {
		GroupID    string `xml:"groupId,omitempty"`
		ArtifactID string `xml:"artifactId,omitempty"`
		Extension  string `xml:"extension,omitempty"`
		Classifier string `xml:"classifier,omitempty"`
		Version    string `xml:"version,omitempty"`
		File       string `xml:"file,omitempty"`
		Stereotype string `xml:"stereotype,omitempty"`

		// Other keeps elements this version does not know about, so that
		// rewriting the plan does not drop them.
		Other []element `xml:",any"`
	}

	element struct {
		XMLName xml.Name
		Inner   string `xml:",innerxml"`
	}

	// CorruptPlanError is returned when an existing plan file cannot be
	// parsed.
	CorruptPlanError struct {
		Path string
		Err  error
	}
)

// Error implements the error interface.
func (e *CorruptPlanError) Error() string {
	return fmt.Sprintf("failed to parse existing reactor installation plan %s: %v", e.Path, e.Err)
}

// Unwrap returns ErrCorruptPlan for errors.Is() compatibility.
func (e *CorruptPlanError) Unwrap() error { return ErrCorruptPlan }

// Cause returns the underlying parse error.
func (e *CorruptPlanError) Cause() error { return e.Err }

// EntryFor builds the plan entry describing a.
func EntryFor(a artifact.Artifact) PlanEntry {
	return PlanEntry{
		GroupID:    a.GroupID,
		ArtifactID: a.ArtifactID,
		Extension:  a.Extension,
		Classifier: a.Classifier,
		Version:    a.Version,
		File:       a.Path.String(),
		Stereotype: a.Stereotype,
	}
}

// Artifact converts the entry back into an artifact, applying the default
// extension and version.
func (e PlanEntry) Artifact() artifact.Artifact {
	a := artifact.Artifact{
		GroupID:    e.GroupID,
		ArtifactID: e.ArtifactID,
		Extension:  e.Extension,
		Classifier: e.Classifier,
		Version:    e.Version,
		Stereotype: e.Stereotype,
		Path:       types.FilesystemPath(e.File),
	}
	if a.Extension == "" {
		a.Extension = artifact.DefaultExtension
	}
	if a.Version == "" {
		a.Version = artifact.DefaultVersion
	}
	return a
}

// Len returns the number of entries.
func (p *Plan) Len() int { return len(p.Entries) }

// Add appends an entry.
func (p *Plan) Add(e PlanEntry) {
	p.Entries = append(p.Entries, e)
}

// ParsePlan decodes a plan document. Any input that is not a well-formed
// plan, including an empty one or one with a second root element, is
// reported as *CorruptPlanError.
func ParsePlan(data []byte, path string) (*Plan, error) {
	dec := xmldoc.NewDecoder(bytes.NewReader(data))

	var p Plan
	if err := dec.Decode(&p); err != nil {
		return nil, &CorruptPlanError{Path: path, Err: err}
	}
	if err := xmldoc.ExpectEnd(dec); err != nil {
		return nil, &CorruptPlanError{Path: path, Err: err}
	}
	return &p, nil
}

// Marshal renders the plan: XML declaration, generator comment and the
// indented document.
func (p *Plan) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	buf.WriteString("<!--" + planComment + "-->\n")

	doc := *p
	doc.XMLName = xml.Name{Local: planRootElement}
	enc := xml.NewEncoder(&buf)
	enc.Indent("", planIndent)
	if err := enc.Encode(&doc); err != nil {
		return nil, fmt.Errorf("failed to encode reactor installation plan: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode reactor installation plan: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
