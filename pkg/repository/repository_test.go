// SPDX-License-Identifier: MPL-2.0

package repository

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"

	"github.com/mkoncek/xmvn/pkg/artifact"
	"github.com/mkoncek/xmvn/pkg/types"
)

// stubRepository reports a fixed path for a fixed set of artifact ids.
type stubRepository struct {
	name  string
	found map[string]bool
	calls *[]string
}

func (s *stubRepository) Locate(a artifact.Artifact, _ bool) (types.FilesystemPath, bool) {
	if s.calls != nil {
		*s.calls = append(*s.calls, s.name)
	}
	if !s.found[a.ArtifactID] {
		return "", false
	}
	return types.FilesystemPath(s.name + "/" + a.ArtifactID), true
}

func (s *stubRepository) Namespace() string { return "" }

func touch(t *testing.T, fs afero.Fs, path string) {
	t.Helper()
	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := afero.WriteFile(fs, path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLayoutRepository_Locate(t *testing.T) {
	t.Parallel()

	a := artifact.New("org.example", "lib", "1.0")

	r := NewLayoutRepository("/usr/share/java", LayoutJPP, WithNamespace("ns"))
	got, ok := r.Locate(a, true)
	want := types.FilesystemPath(filepath.Join("/usr/share/java", "org.example", "lib-1.0.jar"))
	if !ok || got != want {
		t.Errorf("Locate() = (%q, %v), want (%q, true)", got, ok, want)
	}
	if r.Namespace() != "ns" {
		t.Errorf("Namespace() = %q, want %q", r.Namespace(), "ns")
	}
	if r.RequiresExisting() {
		t.Error("RequiresExisting() = true without an existence check")
	}

	// A relative root keeps the result relative.
	rel := NewLayoutRepository("usr/share/java", LayoutJPP)
	if got, _ := rel.Locate(a, false); got != types.FilesystemPath(filepath.Join("usr/share/java", "org.example", "lib.jar")) {
		t.Errorf("relative Locate() = %q", got)
	}
}

func TestLayoutRepository_ExistenceCheck(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	touch(t, fs, "/repo/org.example/lib.jar")
	if err := fs.MkdirAll("/repo/org.example/dir.jar", 0o755); err != nil {
		t.Fatal(err)
	}

	r := NewLayoutRepository("/repo", LayoutJPP, WithExistenceCheck(fs))

	if _, ok := r.Locate(artifact.New("org.example", "lib", "1.0"), true); ok {
		t.Error("versioned file does not exist, Locate() should report absent")
	}
	if p, ok := r.Locate(artifact.New("org.example", "lib", "1.0"), false); !ok || p != "/repo/org.example/lib.jar" {
		t.Errorf("Locate(versionless) = (%q, %v)", p, ok)
	}
	if _, ok := r.Locate(artifact.New("org.example", "dir", "1.0"), false); ok {
		t.Error("directories must not be reported as artifacts")
	}
}

func TestAggregated_ProbeOrder(t *testing.T) {
	t.Parallel()

	// R1 = (variant A, dir1), R2 = (A, dir2), R3 = (B, dir1), R4 = (B, dir2).
	var calls []string
	r1 := &stubRepository{name: "A-dir1", found: map[string]bool{"both": true}, calls: &calls}
	r2 := &stubRepository{name: "A-dir2", found: map[string]bool{}, calls: &calls}
	r3 := &stubRepository{name: "B-dir1", found: map[string]bool{"both": true, "only-b": true}, calls: &calls}
	r4 := &stubRepository{name: "B-dir2", found: map[string]bool{}, calls: &calls}
	agg := NewAggregatedFrom([]Repository{r1, r2, r3, r4}, nil)

	got, ok := agg.Locate(artifact.New("g", "both", "1"), true)
	if !ok || got != "A-dir1/both" {
		t.Errorf("Locate(both) = (%q, %v), want R1's result", got, ok)
	}

	calls = nil
	got, ok = agg.Locate(artifact.New("g", "only-b", "1"), true)
	if !ok || got != "B-dir1/only-b" {
		t.Errorf("Locate(only-b) = (%q, %v), want R3's result", got, ok)
	}
	wantCalls := []string{"A-dir1", "A-dir2", "B-dir1"}
	if len(calls) != len(wantCalls) {
		t.Fatalf("probe order = %v, want %v", calls, wantCalls)
	}
	for i := range wantCalls {
		if calls[i] != wantCalls[i] {
			t.Errorf("probe order = %v, want %v", calls, wantCalls)
			break
		}
	}

	if _, ok := agg.Locate(artifact.New("g", "missing", "1"), true); ok {
		t.Error("Locate(missing) reported present")
	}
}

func TestAggregated_DescriptorsUsePomRepositories(t *testing.T) {
	t.Parallel()

	jar := &stubRepository{name: "jar", found: map[string]bool{"a": true}}
	pom := &stubRepository{name: "pom", found: map[string]bool{"a": true}}
	agg := NewAggregatedFrom([]Repository{jar}, []Repository{pom})

	if p, _ := agg.Locate(artifact.Artifact{GroupID: "g", ArtifactID: "a", Extension: "pom", Version: "1"}, true); p != "pom/a" {
		t.Errorf("descriptor Locate() = %q, want pom/a", p)
	}
	if p, _ := agg.Locate(artifact.New("g", "a", "1"), true); p != "jar/a" {
		t.Errorf("binary Locate() = %q, want jar/a", p)
	}
}

func TestNewAggregated_Settings(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	touch(t, fs, "/root/dir1/org.example/lib.jar")
	touch(t, fs, "/root/dir2/org.example/lib-1.0.jar")
	touch(t, fs, "/root/poms/JPP-lib.pom")

	agg := NewAggregated(fs, "/root", Settings{
		JarRepositories: []string{"dir1", "dir2"},
		PomRepositories: []string{"poms"},
	})

	if n := len(agg.Repositories(KindBinary)); n != 4 {
		t.Errorf("len(jar repositories) = %d, want 4", n)
	}

	// dir2 has the versioned file under variant A, which beats dir1's
	// version-less file under variant B.
	p, ok := agg.Locate(artifact.New("org.example", "lib", "1.0"), true)
	if !ok || p != "/root/dir2/org.example/lib-1.0.jar" {
		t.Errorf("Locate() = (%q, %v)", p, ok)
	}

	p, ok = agg.Resolve(artifact.New("org.example", "lib", "2.0"))
	if !ok || p != "/root/dir1/org.example/lib.jar" {
		t.Errorf("Resolve() fallback = (%q, %v)", p, ok)
	}

	p, ok = agg.Resolve(artifact.Artifact{GroupID: "JPP", ArtifactID: "lib", Extension: "pom", Version: "1"})
	if !ok || p != "/root/poms/JPP-lib.pom" {
		t.Errorf("Resolve(pom) = (%q, %v)", p, ok)
	}

	if _, ok := agg.Resolve(artifact.New("org.example", "absent", "1")); ok {
		t.Error("Resolve(absent) reported present")
	}
}

func TestCompound_KindFilter(t *testing.T) {
	t.Parallel()

	jars := &stubRepository{name: "jars", found: map[string]bool{"a": true}}
	poms := &stubRepository{name: "poms", found: map[string]bool{"a": true}}
	c := NewCompound("ns", Member{Repository: jars, Kind: KindBinary}, Member{Repository: poms, Kind: KindDescriptor})

	if p, _ := c.Locate(artifact.New("g", "a", "1"), true); p != "jars/a" {
		t.Errorf("Locate(jar) = %q", p)
	}
	if p, _ := c.Locate(artifact.Artifact{GroupID: "g", ArtifactID: "a", Extension: "pom", Version: "1"}, true); p != "poms/a" {
		t.Errorf("Locate(pom) = %q", p)
	}
	if _, ok := c.Locate(artifact.New("g", "b", "1"), true); ok {
		t.Error("Locate(b) reported present")
	}
	if c.Namespace() != "ns" || len(c.Members()) != 2 {
		t.Errorf("Namespace() = %q, Members() = %d", c.Namespace(), len(c.Members()))
	}
}

func TestConfigurator_ConfigureRepository(t *testing.T) {
	t.Parallel()

	defs := []Definition{
		{ID: "install", Type: TypeCompound, Namespace: "base", Repositories: []string{"install-jar", "install-pom"}},
		{ID: "install-jar", Type: "jpp", Root: "usr/share/java", Kind: KindBinary},
		{ID: "install-pom", Type: "flat", Root: "usr/share/maven-poms", Kind: KindDescriptor},
	}
	c, err := NewConfigurator(defs, WithFs(afero.NewMemMapFs()))
	if err != nil {
		t.Fatalf("NewConfigurator() = %v", err)
	}

	repo, err := c.ConfigureRepository("install", "")
	if err != nil {
		t.Fatalf("ConfigureRepository() = %v", err)
	}
	if repo.Namespace() != "base" {
		t.Errorf("Namespace() = %q, want base", repo.Namespace())
	}

	p, ok := repo.Locate(artifact.New("com.example", "test", "1"), true)
	if !ok || p != types.FilesystemPath(filepath.Join("usr/share/java", "com.example", "test-1.jar")) {
		t.Errorf("Locate(jar) = (%q, %v)", p, ok)
	}
	p, ok = repo.Locate(artifact.Artifact{GroupID: "com.example", ArtifactID: "test", Extension: "pom", Version: "1"}, false)
	if !ok || p != types.FilesystemPath(filepath.Join("usr/share/maven-poms", "com.example-test.pom")) {
		t.Errorf("Locate(pom) = (%q, %v)", p, ok)
	}

	override, err := c.ConfigureRepository("install", "custom")
	if err != nil {
		t.Fatal(err)
	}
	if override.Namespace() != "custom" {
		t.Errorf("Namespace() = %q, want custom", override.Namespace())
	}
}

func TestConfigurator_Errors(t *testing.T) {
	t.Parallel()

	c, err := NewConfigurator([]Definition{
		{ID: "a", Type: TypeCompound, Repositories: []string{"b"}},
		{ID: "b", Type: TypeCompound, Repositories: []string{"a"}},
		{ID: "dangling", Type: TypeCompound, Repositories: []string{"nowhere"}},
	})
	if err != nil {
		t.Fatalf("NewConfigurator() = %v", err)
	}

	_, err = c.ConfigureRepository("missing", "")
	var unknown *UnknownRepositoryError
	if !errors.As(err, &unknown) || unknown.ID != "missing" {
		t.Errorf("ConfigureRepository(missing) = %v, want UnknownRepositoryError", err)
	}

	_, err = c.ConfigureRepository("dangling", "")
	if !errors.Is(err, ErrUnknownRepository) {
		t.Errorf("ConfigureRepository(dangling) = %v, want ErrUnknownRepository", err)
	}

	_, err = c.ConfigureRepository("a", "")
	var cycle *RepositoryCycleError
	if !errors.As(err, &cycle) {
		t.Fatalf("ConfigureRepository(a) = %v, want RepositoryCycleError", err)
	}
	if got := cycle.Error(); got != "repository cycle: a -> b -> a" {
		t.Errorf("Error() = %q", got)
	}
}

func TestNewConfigurator_InvalidDefinitions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		defs []Definition
	}{
		{"empty id", []Definition{{Type: "jpp"}}},
		{"unknown type", []Definition{{ID: "x", Type: "ivy"}}},
		{"duplicate", []Definition{{ID: "x", Type: "jpp"}, {ID: "x", Type: "flat"}}},
		{"layout with members", []Definition{{ID: "x", Type: "jpp", Repositories: []string{"y"}}}},
		{"compound with root", []Definition{{ID: "x", Type: TypeCompound, Root: "/r"}}},
		{"bad kind", []Definition{{ID: "x", Type: "jpp", Kind: "source"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := NewConfigurator(tt.defs); !errors.Is(err, ErrInvalidDefinition) {
				t.Errorf("NewConfigurator() = %v, want ErrInvalidDefinition", err)
			}
		})
	}
}

func TestConfigurator_RequireExisting(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	touch(t, fs, "/repo/g/present.jar")

	c, err := NewConfigurator([]Definition{{ID: "sys", Type: "jpp", Root: "/repo", RequireExisting: true}}, WithFs(fs))
	if err != nil {
		t.Fatal(err)
	}
	repo, err := c.ConfigureRepository("sys", "")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := repo.Locate(artifact.New("g", "present", "1"), false); !ok {
		t.Error("existing file reported absent")
	}
	if _, ok := repo.Locate(artifact.New("g", "absent", "1"), false); ok {
		t.Error("missing file reported present")
	}
}
