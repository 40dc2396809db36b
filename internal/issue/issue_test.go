// SPDX-License-Identifier: EPL-2.0

package issue

import (
	"strings"
	"testing"
)

// plainRender replaces glamour so tests see the raw markdown.
func plainRender(t *testing.T) {
	t.Helper()
	original := render
	render = func(in, _ string) (string, error) { return in, nil }
	t.Cleanup(func() { render = original })
}

func TestGet(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id      Id
		heading string
		hint    string
	}{
		{FileNotFoundId, "# File not found!", "project root"},
		{ConfigLoadFailedId, "# Failed to load configuration!", "xmvn config dump"},
		{PlanCorruptId, "# The reactor installation plan is corrupt!", "xmvn plan reset"},
		{RulesParseErrorId, "# Failed to parse packaging rules!", `artifact: "org.example:*-tests"`},
		{ArtifactNotFoundId, "# Artifact not found!", "groupId:artifactId"},
		{RepositoryNotFoundId, "# Repository not found!", "targetRepository"},
		{RepositoryCycleId, "# Repository cycle detected!", "compound"},
		{DuplicateArtifactId, "# Duplicate artifact!", "xmvn plan show"},
		{PermissionDeniedId, "# Permission denied!", "--build-root"},
	}

	for _, tt := range tests {
		t.Run(tt.heading, func(t *testing.T) {
			t.Parallel()

			entry := Get(tt.id)
			if entry == nil {
				t.Fatalf("Get(%d) = nil", tt.id)
			}
			if entry.Id() != tt.id {
				t.Errorf("Id() = %d, want %d", entry.Id(), tt.id)
			}
			msg := string(entry.MarkdownMsg())
			if !strings.Contains(msg, tt.heading) {
				t.Errorf("message for %d lacks heading %q:\n%s", tt.id, tt.heading, msg)
			}
			if !strings.Contains(msg, tt.hint) {
				t.Errorf("message for %d lacks %q:\n%s", tt.id, tt.hint, msg)
			}
		})
	}
}

func TestGet_Unknown(t *testing.T) {
	t.Parallel()

	for _, id := range []Id{0, PermissionDeniedId + 1, -1} {
		if entry := Get(id); entry != nil {
			t.Errorf("Get(%d) = %v, want nil", id, entry)
		}
	}
}

func TestValues_OrderedByID(t *testing.T) {
	t.Parallel()

	values := Values()
	if got, want := len(values), int(PermissionDeniedId); got != want {
		t.Fatalf("len(Values()) = %d, want %d", got, want)
	}
	for i, entry := range values {
		if want := Id(i + 1); entry.Id() != want {
			t.Errorf("Values()[%d].Id() = %d, want %d", i, entry.Id(), want)
		}
	}
}

// Render swaps the package-level renderer, so these tests do not run in
// parallel with each other.
func TestIssue_Render(t *testing.T) {
	plainRender(t)

	for _, entry := range Values() {
		rendered, err := entry.Render("notty")
		if err != nil {
			t.Errorf("Render() for %d: %v", entry.Id(), err)
			continue
		}
		if rendered != string(entry.MarkdownMsg()) {
			t.Errorf("Render() for %d altered the message", entry.Id())
		}
	}
}

func TestIssue_RenderWithGlamour(t *testing.T) {
	rendered, err := Get(PlanCorruptId).Render("notty")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(rendered, "corrupt") {
		t.Errorf("rendered output lost the heading:\n%s", rendered)
	}
	if !strings.Contains(rendered, "xmvn plan reset") {
		t.Errorf("rendered output lost the code block:\n%s", rendered)
	}
}
