// SPDX-License-Identifier: MPL-2.0

package install

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/mkoncek/xmvn/pkg/artifact"
	"github.com/mkoncek/xmvn/pkg/cueutil"
)

func TestRuleSet_FirstMatchWins(t *testing.T) {
	t.Parallel()

	rs, err := NewRuleSet(
		PackagingRule{Artifact: "org.apache.*:*", TargetPackage: "apache"},
		PackagingRule{Artifact: "org.apache.commons:commons-io", TargetPackage: "never"},
		PackagingRule{Artifact: "*:*-tests", Optional: true},
	)
	if err != nil {
		t.Fatalf("NewRuleSet() = %v", err)
	}

	tests := []struct {
		coords      string
		wantPackage string
		wantOpt     bool
	}{
		{"org.apache.commons:commons-io:2.4", "apache", false},
		{"com.example:lib-tests:1", "", true},
		{"com.example:lib:1", "", false},
	}
	for _, tt := range tests {
		r := rs.Match(artifact.MustParse(tt.coords))
		if r.TargetPackage != tt.wantPackage || r.Optional != tt.wantOpt {
			t.Errorf("Match(%s) = %+v", tt.coords, r)
		}
	}
	if rs.Len() != 3 || len(rs.Rules()) != 3 {
		t.Errorf("Len() = %d", rs.Len())
	}
}

func TestRuleSet_NilAndEmpty(t *testing.T) {
	t.Parallel()

	var nilSet *RuleSet
	if r := nilSet.Match(artifact.New("g", "a", "1")); r == nil || r.TargetPackage != "" {
		t.Errorf("nil RuleSet Match() = %+v", r)
	}

	catchAll := PackagingRule{TargetPackage: "all"}
	if !catchAll.Matches(artifact.New("any", "thing", "1")) {
		t.Error("empty pattern should match every artifact")
	}
}

func TestNewRuleSet_MalformedGlob(t *testing.T) {
	t.Parallel()

	_, err := NewRuleSet(PackagingRule{Artifact: "org.[apache:*"})
	var malformed *artifact.MalformedPatternError
	if !errors.As(err, &malformed) || malformed.Field != "groupId" {
		t.Errorf("NewRuleSet() = %v, want MalformedPatternError on groupId", err)
	}
}

func TestParseRules(t *testing.T) {
	t.Parallel()

	data := []byte(`
rules: [
	{
		artifact:      "com.example:test"
		targetPackage: "test"
		namespace:     "ns"
		versions: ["3.4", "3"]
		aliases: [
			{groupId: "com.example", artifactId: "alias1"},
			{groupId: "com.example", artifactId: "alias2", classifier: "war"},
		]
		files: ["test.jar"]
	},
	{artifact: "*:*-javadoc", optional: true},
]
`)

	rs, err := ParseRules(data, "xmvn-rules.cue")
	if err != nil {
		t.Fatalf("ParseRules() = %v", err)
	}
	if rs.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", rs.Len())
	}

	r := rs.Match(artifact.MustParse("com.example:test:4.5"))
	if r.TargetPackage != "test" || r.Namespace != "ns" || len(r.Versions) != 2 || len(r.Files) != 1 {
		t.Errorf("rule = %+v", r)
	}
	if len(r.Aliases) != 2 || r.Aliases[1].Classifier != "war" {
		t.Errorf("aliases = %+v", r.Aliases)
	}
	if !rs.Match(artifact.MustParse("x:y-javadoc:1")).Optional {
		t.Error("javadoc rule not matched")
	}
}

func TestParseRules_Errors(t *testing.T) {
	t.Parallel()

	t.Run("schema violation", func(t *testing.T) {
		t.Parallel()

		_, err := ParseRules([]byte(`rules: [{artifact: "g:a", versions: "1"}]`), "xmvn-rules.cue")
		if err == nil {
			t.Fatal("expected error")
		}
		var ve *cueutil.ValidationError
		if errors.As(err, &ve) && ve.FilePath != "xmvn-rules.cue" {
			t.Errorf("FilePath = %q", ve.FilePath)
		}
		if !strings.Contains(err.Error(), "rules[0].versions") {
			t.Errorf("error does not name the field: %v", err)
		}
	})

	t.Run("unknown field", func(t *testing.T) {
		t.Parallel()

		if _, err := ParseRules([]byte(`rules: [{artifact: "g:a", package: "x"}]`), "xmvn-rules.cue"); err == nil {
			t.Error("expected error for unknown field")
		}
	})

	t.Run("malformed glob", func(t *testing.T) {
		t.Parallel()

		_, err := ParseRules([]byte(`rules: [{artifact: "g:{a,b"}]`), "xmvn-rules.cue")
		if !errors.Is(err, artifact.ErrMalformedPattern) {
			t.Errorf("ParseRules() = %v, want ErrMalformedPattern", err)
		}
	})
}

func TestLoadRules(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()

	rs, err := LoadRules(fs, "missing.cue")
	if err != nil || rs.Len() != 0 {
		t.Fatalf("LoadRules(missing) = (%v, %v), want empty set", rs, err)
	}

	path := filepath.Join("project", "xmvn-rules.cue")
	if err := afero.WriteFile(fs, path, []byte(`rules: [{artifact: "g:a", targetPackage: "p"}]`), 0o644); err != nil {
		t.Fatal(err)
	}
	rs, err = LoadRules(fs, "project/xmvn-rules.cue")
	if err != nil {
		t.Fatalf("LoadRules() = %v", err)
	}
	if got := rs.Match(artifact.New("g", "a", "1")).TargetPackage; got != "p" {
		t.Errorf("TargetPackage = %q", got)
	}
}
