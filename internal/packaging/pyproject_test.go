// SPDX-License-Identifier: MPL-2.0

package packaging

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"
)

func TestWritePyproject(t *testing.T) {
	t.Parallel()

	in := testInput()
	in.LongDescription.Text = "# Title\n\nline \"two\"\n"
	cfg := Assemble(in)

	var buf bytes.Buffer
	if err := cfg.WritePyproject(&buf); err != nil {
		t.Fatalf("WritePyproject() error = %v", err)
	}
	if !strings.HasPrefix(buf.String(), GeneratedHeader+"\n") {
		t.Errorf("missing generated header:\n%s", buf.String())
	}

	var doc struct {
		BuildSystem struct {
			BuildBackend string `toml:"build-backend"`
		} `toml:"build-system"`
		Project struct {
			Name   string `toml:"name"`
			Readme struct {
				Text        string `toml:"text"`
				ContentType string `toml:"content-type"`
			} `toml:"readme"`
			OptionalDependencies map[string][]string `toml:"optional-dependencies"`
			Scripts              map[string]string   `toml:"scripts"`
			URLs                 map[string]string   `toml:"urls"`
		} `toml:"project"`
		Tool struct {
			Setuptools struct {
				Packages    []string          `toml:"packages"`
				PackageDir  map[string]string `toml:"package-dir"`
				ScriptFiles []string          `toml:"script-files"`
			} `toml:"setuptools"`
		} `toml:"tool"`
	}
	if err := toml.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("generated file is not valid TOML: %v\n%s", err, buf.String())
	}

	if doc.BuildSystem.BuildBackend != "setuptools.build_meta" {
		t.Errorf("build-backend = %q", doc.BuildSystem.BuildBackend)
	}
	if doc.Project.Name != "package-name" {
		t.Errorf("name = %q", doc.Project.Name)
	}
	if doc.Project.Readme.Text != in.LongDescription.Text {
		t.Errorf("readme text = %q", doc.Project.Readme.Text)
	}
	if got := doc.Project.Scripts["package_name"]; got != "package_name:start_command_line" {
		t.Errorf("scripts = %v", doc.Project.Scripts)
	}
	if doc.Project.URLs["Homepage"] != "https://example.com/package-name" {
		t.Errorf("urls = %v", doc.Project.URLs)
	}
	if len(doc.Project.OptionalDependencies["all"]) != 1 {
		t.Errorf("optional-dependencies = %v", doc.Project.OptionalDependencies)
	}
	if doc.Tool.Setuptools.PackageDir["package-name"] != "./package_name" {
		t.Errorf("package-dir = %v", doc.Tool.Setuptools.PackageDir)
	}
	if len(doc.Tool.Setuptools.Packages) != 2 || doc.Tool.Setuptools.ScriptFiles[0] != "install.py" {
		t.Errorf("setuptools = %+v", doc.Tool.Setuptools)
	}
}

func TestSavePyproject(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, PyprojectFile)
	cfg := Assemble(testInput())

	if err := SavePyproject(cfg, path); err != nil {
		t.Fatalf("first SavePyproject() error = %v", err)
	}
	generated, err := IsGenerated(path)
	if err != nil || !generated {
		t.Fatalf("IsGenerated() = %v, %v", generated, err)
	}

	cfg.Version = "2.0.0"
	if err := SavePyproject(cfg, path); err != nil {
		t.Fatalf("regenerating must be allowed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"2.0.0"`) && !strings.Contains(string(data), `'2.0.0'`) {
		t.Errorf("version not updated:\n%s", data)
	}
}

func TestSavePyproject_RefusesForeignFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, PyprojectFile)
	original := "[project]\nname = \"hand-written\"\n"
	if err := os.WriteFile(path, []byte(original), 0o644); err != nil {
		t.Fatal(err)
	}

	err := SavePyproject(Assemble(testInput()), path)
	if !errors.Is(err, ErrForeignPyproject) {
		t.Fatalf("SavePyproject() error = %v, want ErrForeignPyproject", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != original {
		t.Error("foreign pyproject.toml was modified")
	}
}
