// SPDX-License-Identifier: MPL-2.0

package packaging

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestFindPackages(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root,
		"pkg/__init__.py",
		"pkg/core/__init__.py",
		"pkg/core/tests/__init__.py",
		"pkg/core/tests/fixtures/__init__.py",
		"pkg/nopkg/inner/__init__.py",
		"pkg/my.dotted/__init__.py",
		"tests/__init__.py",
		"tests/unit/__init__.py",
		"docs/conf.py",
	)

	tests := []struct {
		name     string
		excludes []string
		want     []string
	}{
		{
			name: "no excludes",
			want: []string{
				"pkg", "pkg.core", "pkg.core.tests", "pkg.core.tests.fixtures",
				"tests", "tests.unit",
			},
		},
		{
			name:     "default excludes",
			excludes: DefaultExcludes,
			want:     []string{"pkg", "pkg.core"},
		},
		{
			name:     "exact only",
			excludes: []string{"tests"},
			want: []string{
				"pkg", "pkg.core", "pkg.core.tests", "pkg.core.tests.fixtures",
				"tests.unit",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := FindPackages(root, tt.excludes...)
			if err != nil {
				t.Fatalf("FindPackages() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FindPackages() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFindPackages_BadPattern(t *testing.T) {
	t.Parallel()

	if _, err := FindPackages(t.TempDir(), "[unclosed"); err == nil {
		t.Error("expected error for malformed pattern")
	}
}

func TestFindPackages_Empty(t *testing.T) {
	t.Parallel()

	got, err := FindPackages(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("FindPackages() = %q, want none", got)
	}
}
