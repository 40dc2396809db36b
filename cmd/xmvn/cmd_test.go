// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/mkoncek/xmvn/internal/config"
	"github.com/mkoncek/xmvn/pkg/deployer"
	"github.com/mkoncek/xmvn/pkg/types"
)

type (
	stubConfigProvider struct {
		cfg    *config.Config
		source string
		err    error
	}

	testEnv struct {
		app    *App
		fs     afero.Fs
		stdout *bytes.Buffer
		stderr *bytes.Buffer
	}
)

func (p *stubConfigProvider) Load(_ context.Context, _ config.LoadOptions) (*config.Config, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.cfg, nil
}

func (p *stubConfigProvider) Source(_ config.LoadOptions) (string, error) {
	return p.source, nil
}

func newTestEnv(t *testing.T, cfg *config.Config) *testEnv {
	t.Helper()

	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	env := &testEnv{
		fs:     afero.NewMemMapFs(),
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
	}
	app, err := NewApp(Dependencies{
		Config: &stubConfigProvider{cfg: cfg},
		Fs:     env.fs,
		Stdout: env.stdout,
		Stderr: env.stderr,
	})
	if err != nil {
		t.Fatalf("NewApp() error: %v", err)
	}
	env.app = app
	return env
}

func (e *testEnv) run(args ...string) error {
	root := NewRootCommand(e.app)
	root.SetArgs(args)
	return root.ExecuteContext(context.Background())
}

func (e *testEnv) writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := afero.WriteFile(e.fs, path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func exitCode(t *testing.T, err error) types.ExitCode {
	t.Helper()
	if err == nil {
		return types.ExitSuccess
	}
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected *ExitError, got %T: %v", err, err)
	}
	return exitErr.Code
}

func TestResolve_Found(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil)
	env.writeFile(t, "/usr/share/java/org.foo/bar.jar", "jar")

	if err := env.run("resolve", "--raw", "org.foo:bar:1.0"); err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if got := strings.TrimSpace(env.stdout.String()); got != "/usr/share/java/org.foo/bar.jar" {
		t.Errorf("resolve output = %q", got)
	}
}

func TestResolve_VersionedWins(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil)
	env.writeFile(t, "/usr/share/java/org.foo/bar.jar", "jar")
	env.writeFile(t, "/usr/share/java/org.foo/bar-1.0.jar", "jar")

	if err := env.run("resolve", "--raw", "org.foo:bar:1.0"); err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if got := strings.TrimSpace(env.stdout.String()); got != "/usr/share/java/org.foo/bar-1.0.jar" {
		t.Errorf("resolve output = %q", got)
	}
}

func TestResolve_Descriptor(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil)
	env.writeFile(t, "/usr/share/maven-poms/org.foo-bar.pom", "<project/>")

	if err := env.run("resolve", "--raw", "org.foo:bar:pom:1.0"); err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if got := strings.TrimSpace(env.stdout.String()); got != "/usr/share/maven-poms/org.foo-bar.pom" {
		t.Errorf("resolve output = %q", got)
	}
}

func TestResolve_NotFound(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil)

	err := env.run("resolve", "org.foo:missing:1.0")
	if code := exitCode(t, err); code != types.ExitUnresolved {
		t.Errorf("exit code = %d, want %d", code, types.ExitUnresolved)
	}
	if !errors.Is(err, ErrUnresolved) {
		t.Errorf("expected ErrUnresolved, got %v", err)
	}
	if !strings.Contains(env.stdout.String(), "not found") {
		t.Errorf("expected 'not found' in output, got %q", env.stdout.String())
	}
}

func TestResolve_InvalidCoordinate(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil)
	if code := exitCode(t, env.run("resolve", "justone")); code != types.ExitFailure {
		t.Errorf("exit code = %d, want %d", code, types.ExitFailure)
	}
}

func TestMatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		want    []string
		wantErr bool
	}{
		{
			name: "wildcard artifact",
			args: []string{"org.example:*", "org.example:a:1", "org.other:a:1", "org.example:b:2"},
			want: []string{"org.example:a:1", "org.example:b:2"},
		},
		{
			name: "alternatives",
			args: []string{"org.example:{a,c}:1", "org.example:a:1", "org.example:b:1", "org.example:c:1"},
			want: []string{"org.example:a:1", "org.example:c:1"},
		},
		{
			name:    "no match",
			args:    []string{"org.example:a:2", "org.example:a:1"},
			wantErr: true,
		},
		{
			name:    "malformed pattern",
			args:    []string{"org.example:[a", "org.example:a:1"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(t, nil)
			err := env.run(append([]string{"match"}, tt.args...)...)
			if tt.wantErr {
				if code := exitCode(t, err); code != types.ExitFailure {
					t.Errorf("exit code = %d, want %d", code, types.ExitFailure)
				}
				return
			}
			if err != nil {
				t.Fatalf("match failed: %v", err)
			}
			got := strings.Fields(env.stdout.String())
			if strings.Join(got, " ") != strings.Join(tt.want, " ") {
				t.Errorf("match output = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDeploy_AppendsToPlan(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil)

	if err := env.run("deploy", "org.example:a:1.0", "target/a-1.0.jar"); err != nil {
		t.Fatalf("first deploy failed: %v", err)
	}
	if err := env.run("deploy", "--stereotype", "maven-plugin", "org.example:b:1.0", "target/b-1.0.jar"); err != nil {
		t.Fatalf("second deploy failed: %v", err)
	}

	plan, err := deployer.New(deployer.WithFs(env.fs)).LoadPlan()
	if err != nil {
		t.Fatalf("LoadPlan() error: %v", err)
	}
	if plan.Len() != 2 {
		t.Fatalf("expected 2 plan entries, got %d", plan.Len())
	}
	first := plan.Entries[0].Artifact()
	if first.ArtifactID != "a" || first.Path != "target/a-1.0.jar" {
		t.Errorf("unexpected first entry: %+v", first)
	}
	if second := plan.Entries[1].Artifact(); second.Stereotype != "maven-plugin" {
		t.Errorf("Stereotype = %q, want maven-plugin", second.Stereotype)
	}
}

func TestDeploy_CorruptPlan(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil)
	env.writeFile(t, deployer.DefaultPlanPath, "not xml at all")

	err := env.run("deploy", "org.example:a:1.0", "a.jar")
	if code := exitCode(t, err); code != types.ExitDeployFailed {
		t.Errorf("exit code = %d, want %d", code, types.ExitDeployFailed)
	}
	if !errors.Is(err, deployer.ErrCorruptPlan) {
		t.Errorf("expected ErrCorruptPlan, got %v", err)
	}

	data, readErr := afero.ReadFile(env.fs, deployer.DefaultPlanPath)
	if readErr != nil {
		t.Fatalf("failed to read plan: %v", readErr)
	}
	if string(data) != "not xml at all" {
		t.Error("corrupt plan was modified")
	}
	if !strings.Contains(env.stderr.String(), "Error:") {
		t.Errorf("expected rendered error on stderr, got %q", env.stderr.String())
	}
}

func TestPlanShowAndReset(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil)

	if err := env.run("plan", "show"); err != nil {
		t.Fatalf("plan show failed: %v", err)
	}
	if !strings.Contains(env.stdout.String(), "(empty)") {
		t.Errorf("expected empty plan, got %q", env.stdout.String())
	}

	if err := env.run("deploy", "org.example:a:1.0", "a.jar"); err != nil {
		t.Fatalf("deploy failed: %v", err)
	}
	env.stdout.Reset()
	if err := env.run("plan", "show"); err != nil {
		t.Fatalf("plan show failed: %v", err)
	}
	if !strings.Contains(env.stdout.String(), "org.example:a:1.0") {
		t.Errorf("expected entry in output, got %q", env.stdout.String())
	}

	if err := env.run("plan", "reset"); err != nil {
		t.Fatalf("plan reset failed: %v", err)
	}
	if exists, _ := afero.Exists(env.fs, deployer.DefaultPlanPath); exists {
		t.Error("plan file still exists after reset")
	}
}

func TestConfigLoadFailure(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil)
	env.app.Config = &stubConfigProvider{err: errors.New("boom")}

	if code := exitCode(t, env.run("plan", "show")); code != types.ExitFailure {
		t.Errorf("exit code = %d, want %d", code, types.ExitFailure)
	}
	if !strings.Contains(env.stderr.String(), "boom") {
		t.Errorf("expected error on stderr, got %q", env.stderr.String())
	}
}

func TestConfigShowAndDump(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.PlanFile = "custom-plan.xml"
	env := newTestEnv(t, cfg)

	if err := env.run("config", "show"); err != nil {
		t.Fatalf("config show failed: %v", err)
	}
	out := env.stdout.String()
	for _, want := range []string{"custom-plan.xml", "install-jar", "(using defaults)"} {
		if !strings.Contains(out, want) {
			t.Errorf("config show output missing %q:\n%s", want, out)
		}
	}

	env.stdout.Reset()
	if err := env.run("config", "dump"); err != nil {
		t.Fatalf("config dump failed: %v", err)
	}
	if !strings.Contains(env.stdout.String(), `plan_file:       "custom-plan.xml"`) {
		t.Errorf("config dump output = %q", env.stdout.String())
	}
}

func TestManifestName(t *testing.T) {
	t.Parallel()

	if got := manifestName("main", "main"); got != ".mfiles" {
		t.Errorf("manifestName(main) = %q, want .mfiles", got)
	}
	if got := manifestName("foo-core", "main"); got != ".mfiles-foo-core" {
		t.Errorf("manifestName(foo-core) = %q, want .mfiles-foo-core", got)
	}
}
