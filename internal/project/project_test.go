// SPDX-License-Identifier: MPL-2.0

package project

import (
	"context"
	"errors"
	"io/fs"
	"reflect"
	"testing"

	"github.com/repoutils/repoutils/internal/issue"
	"github.com/repoutils/repoutils/internal/meta"
	"github.com/repoutils/repoutils/internal/packaging"
	"github.com/repoutils/repoutils/internal/readme"
	"github.com/repoutils/repoutils/internal/testutil"
)

func TestOpen(t *testing.T) {
	t.Parallel()

	repo := testutil.NewPythonRepo(t)
	repo.Write("README.md", "# Package\n")

	p, err := Open(context.Background(), repo.Root, Options{})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if p.Meta.Name != "package-name" || p.Meta.Path != "package_name" {
		t.Errorf("Meta = %+v", p.Meta)
	}
	if got := p.Requirements.ExtraNames(); !reflect.DeepEqual(got, []string{"all", "dev"}) {
		t.Errorf("ExtraNames() = %v", got)
	}
	if p.LongDescription.ContentType != readme.ContentTypeMarkdown {
		t.Errorf("LongDescription = %+v", p.LongDescription)
	}
}

func TestOpen_MissingRequirements(t *testing.T) {
	t.Parallel()

	repo := testutil.NewRepo(t)
	repo.Write("package_name/__meta__.toml", testutil.MetaTOML)

	_, err := Open(context.Background(), repo.Root, Options{})
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("Open() error = %v, want fs.ErrNotExist", err)
	}
	var ae *issue.ActionableError
	if !errors.As(err, &ae) || !ae.HasSuggestions() {
		t.Errorf("error should be actionable with a suggestion: %v", err)
	}
}

func TestOpen_MissingMeta(t *testing.T) {
	t.Parallel()

	repo := testutil.NewRepo(t)
	repo.Write("requirements.txt", "")

	_, err := Open(context.Background(), repo.Root, Options{})
	if !errors.Is(err, meta.ErrMetaNotFound) {
		t.Errorf("Open() error = %v, want ErrMetaNotFound", err)
	}
}

func TestPrepare_StubsLiveUntilClose(t *testing.T) {
	t.Parallel()

	repo := testutil.NewPythonRepo(t)
	p, err := Open(context.Background(), repo.Root, Options{})
	if err != nil {
		t.Fatal(err)
	}

	prepared, err := p.Prepare(context.Background())
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	want := []string{"package_name", "package_name.core", "package_name.start_command_line"}
	if !reflect.DeepEqual(prepared.Config.Packages, want) {
		t.Errorf("Packages = %q, want %q", prepared.Config.Packages, want)
	}
	if !repo.Exists("package_name/core/__init__.py") {
		t.Error("stub should exist while prepared")
	}
	if repo.Exists("package_name/tests/__init__.py") {
		t.Error("tests directory must not get a stub")
	}

	if err := prepared.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	for _, path := range prepared.Stubs.Paths() {
		if testutil.Exists(path) {
			t.Errorf("%s survived Close()", path)
		}
	}
	if !repo.Exists("package_name/__init__.py") {
		t.Error("pre-existing __init__.py must be kept")
	}
}

func TestAssemble_WithoutStubs(t *testing.T) {
	t.Parallel()

	repo := testutil.NewPythonRepo(t)
	p, err := Open(context.Background(), repo.Root, Options{
		Settings: packaging.Settings{ConsoleScript: "pn"},
	})
	if err != nil {
		t.Fatal(err)
	}

	cfg, err := p.Assemble()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(cfg.Packages, []string{"package_name"}) {
		t.Errorf("Packages = %q", cfg.Packages)
	}
	if got := cfg.EntryPoints[packaging.ConsoleScriptsGroup]; len(got) != 1 || got[0] != "pn=package_name:start_command_line" {
		t.Errorf("entry points = %q", got)
	}
	if p.PyprojectPath() != repo.Path("pyproject.toml") {
		t.Errorf("PyprojectPath() = %q", p.PyprojectPath())
	}
}

func TestPrepare_MissingPackageDir(t *testing.T) {
	t.Parallel()

	repo := testutil.NewRepo(t)
	repo.Write("__meta__.toml", testutil.MetaTOML)
	repo.Write("requirements.txt", "")

	p, err := Open(context.Background(), repo.Root, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.Prepare(context.Background()); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Prepare() error = %v, want fs.ErrNotExist", err)
	}
}
