// SPDX-License-Identifier: MPL-2.0

package fspath_test

import (
	"path/filepath"
	"testing"

	"github.com/mkoncek/xmvn/pkg/fspath"
	"github.com/mkoncek/xmvn/pkg/types"
)

func TestJoinStr_MultipleSegments(t *testing.T) {
	t.Parallel()

	got := fspath.JoinStr(types.FilesystemPath("usr/share/java"), "commons", "io.jar")
	want := types.FilesystemPath(filepath.Join("usr/share/java", "commons", "io.jar"))
	if got != want {
		t.Errorf("JoinStr() = %q, want %q", got, want)
	}
}

func TestDir(t *testing.T) {
	t.Parallel()

	p := types.FilesystemPath(filepath.Join("usr", "share", "java", "foo.jar"))
	if got, want := fspath.Dir(p), types.FilesystemPath(filepath.Join("usr", "share", "java")); got != want {
		t.Errorf("Dir() = %q, want %q", got, want)
	}
}

func TestClean(t *testing.T) {
	t.Parallel()

	got := fspath.Clean(types.FilesystemPath("usr/./share//java/"))
	want := types.FilesystemPath(filepath.Clean("usr/./share//java/"))
	if got != want {
		t.Errorf("Clean() = %q, want %q", got, want)
	}
}

func TestAbs(t *testing.T) {
	t.Parallel()

	got, err := fspath.Abs(types.FilesystemPath("relative"))
	if err != nil {
		t.Fatalf("Abs() error: %v", err)
	}
	if !fspath.IsAbs(got) {
		t.Errorf("Abs() = %q, want absolute path", got)
	}
}

func TestRooted(t *testing.T) {
	t.Parallel()

	sep := string(filepath.Separator)
	tests := []struct {
		name string
		in   types.FilesystemPath
		want types.FilesystemPath
	}{
		{"relative file", "com.example-test", types.FilesystemPath(sep + "com.example-test")},
		{"relative nested", types.FilesystemPath(filepath.Join("usr", "share", "java", "a.jar")), types.FilesystemPath(filepath.Join(sep, "usr", "share", "java", "a.jar"))},
		{"already absolute", types.FilesystemPath(filepath.Join(sep, "opt", "x.jar")), types.FilesystemPath(filepath.Join(sep, "opt", "x.jar"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := fspath.Rooted(tt.in); got != tt.want {
				t.Errorf("Rooted(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
