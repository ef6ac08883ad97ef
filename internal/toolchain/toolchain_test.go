// SPDX-License-Identifier: MPL-2.0

package toolchain

import (
	"errors"
	"io/fs"
	"reflect"
	"testing"

	"github.com/repoutils/repoutils/internal/issue"
)

func fakeResolver(onPath map[string]string, env map[string]string) *Resolver {
	return &Resolver{
		LookPath: func(file string) (string, error) {
			if p, ok := onPath[file]; ok {
				return p, nil
			}
			return "", fs.ErrNotExist
		},
		Getenv: func(key string) string { return env[key] },
	}
}

func TestResolver_Python(t *testing.T) {
	t.Parallel()

	path := map[string]string{
		"python3":    "/usr/bin/python3",
		"python":     "/usr/bin/python",
		"pypy3":      "/opt/pypy3",
		"python3.12": "/usr/bin/python3.12",
	}

	tests := []struct {
		name       string
		onPath     map[string]string
		env        map[string]string
		configured string
		want       string
		wantErr    bool
	}{
		{name: "python3 preferred", onPath: path, want: "/usr/bin/python3"},
		{name: "falls back to python", onPath: map[string]string{"python": "/usr/bin/python"}, want: "/usr/bin/python"},
		{name: "configured", onPath: path, configured: "python3.12", want: "/usr/bin/python3.12"},
		{name: "env wins", onPath: path, configured: "python3.12", env: map[string]string{PythonEnvVar: "pypy3"}, want: "/opt/pypy3"},
		{name: "configured missing does not fall back", onPath: path, configured: "python2", wantErr: true},
		{name: "nothing found", onPath: map[string]string{}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := fakeResolver(tt.onPath, tt.env).Python(tt.configured)
			if tt.wantErr {
				if !errors.Is(err, ErrToolNotFound) {
					t.Fatalf("Python() error = %v, want ErrToolNotFound", err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("Python() = %q, %v; want %q", got, err, tt.want)
			}
		})
	}
}

func TestResolver_Require(t *testing.T) {
	t.Parallel()

	r := fakeResolver(map[string]string{"git": "/usr/bin/git"}, nil)
	if err := r.Require("git"); err != nil {
		t.Fatalf("Require(git) error = %v", err)
	}

	err := r.Require("git", "twine")
	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("Require() error = %v, want *issue.ActionableError", err)
	}
	if !ae.HasSuggestions() || ae.Suggestions[0] != InstallHint("twine") {
		t.Errorf("suggestions = %q", ae.Suggestions)
	}
	var tnf *ToolNotFoundError
	if !errors.As(err, &tnf) || tnf.Tool != "twine" {
		t.Errorf("ToolNotFoundError = %+v", tnf)
	}
}

func TestPrograms(t *testing.T) {
	t.Parallel()

	got := Programs(
		"/usr/bin/python3 -m build --sdist --wheel",
		"twine upload dist/*",
		"TWINE_NON_INTERACTIVE=1 twine check dist/*",
		"git tag v1.0.0",
		"git push --tags",
		"   ",
		"'/opt/my python/python3' -m pytest",
		`"C:/Program Files/Python312/python.exe" -m build && twine check dist/*`,
		"if then fi (",
	)
	want := []string{
		"/usr/bin/python3",
		"twine",
		"git",
		"/opt/my python/python3",
		"C:/Program Files/Python312/python.exe",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Programs() = %q, want %q", got, want)
	}
}
