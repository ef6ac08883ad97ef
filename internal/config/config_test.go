// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/repoutils/repoutils/internal/issue"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.PythonRequires != ">=3.6" {
		t.Errorf("PythonRequires = %q, want >=3.6", cfg.PythonRequires)
	}
	if len(cfg.Scripts) != 1 || cfg.Scripts[0] != "install.py" {
		t.Errorf("Scripts = %v, want [install.py]", cfg.Scripts)
	}
	if len(cfg.Release.Steps) != 4 {
		t.Fatalf("Release.Steps = %v, want 4 steps", cfg.Release.Steps)
	}
	if cfg.Release.Steps[2] != "git tag v{version}" {
		t.Errorf("tag step = %q", cfg.Release.Steps[2])
	}
	if cfg.UI.ColorScheme != ColorSchemeAuto {
		t.Errorf("ColorScheme = %q, want auto", cfg.UI.ColorScheme)
	}
	if valid, errs := cfg.IsValid(); !valid {
		t.Errorf("default config should be valid, got %v", errs)
	}
}

func TestLoad_DefaultsWhenNoFiles(t *testing.T) {
	t.Parallel()

	cfg, sources, err := loadWithOptions(context.Background(), LoadOptions{
		ConfigDirPath: t.TempDir(),
		ProjectRoot:   t.TempDir(),
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(sources) != 0 {
		t.Errorf("sources = %v, want none", sources)
	}
	if cfg.Build.Command != DefaultConfig().Build.Command {
		t.Errorf("Build.Command = %q, want default", cfg.Build.Command)
	}
}

func TestLoad_ProjectOverridesUser(t *testing.T) {
	t.Parallel()

	userDir := t.TempDir()
	root := t.TempDir()

	writeFile(t, filepath.Join(userDir, "config.cue"), `
python: "/usr/bin/python3.11"
ui: verbose: true
`)
	writeFile(t, filepath.Join(root, ProjectConfigFile), `
python: "/opt/venv/bin/python"
release: steps: ["echo one", "echo two"]
`)

	cfg, sources, err := loadWithOptions(context.Background(), LoadOptions{
		ConfigDirPath: userDir,
		ProjectRoot:   root,
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if len(sources) != 2 {
		t.Fatalf("sources = %v, want user then project", sources)
	}
	if cfg.Python != "/opt/venv/bin/python" {
		t.Errorf("Python = %q, project file should win", cfg.Python)
	}
	if !cfg.UI.Verbose {
		t.Error("ui.verbose from the user file should survive the project merge")
	}
	if len(cfg.Release.Steps) != 2 || cfg.Release.Steps[1] != "echo two" {
		t.Errorf("Release.Steps = %v", cfg.Release.Steps)
	}
	if cfg.Test.Command != DefaultConfig().Test.Command {
		t.Errorf("unset Test.Command should keep the default, got %q", cfg.Test.Command)
	}
}

func TestLoad_ExplicitPath(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "custom.cue")
	writeFile(t, path, `console_script: "pkg-cli"`)

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: path})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ConsoleScript != "pkg-cli" {
		t.Errorf("ConsoleScript = %q, want pkg-cli", cfg.ConsoleScript)
	}
}

func TestLoad_ExplicitPathMissing(t *testing.T) {
	t.Parallel()

	_, err := NewProvider().Load(context.Background(), LoadOptions{
		ConfigFilePath: filepath.Join(t.TempDir(), "nope.cue"),
	})
	if err == nil {
		t.Fatal("expected error for missing explicit config")
	}
	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("expected ActionableError, got %T", err)
	}
	if !ae.HasSuggestions() {
		t.Error("expected suggestions")
	}
}

func TestLoad_SchemaViolation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{name: "unknown field", content: `container_engine: "docker"`},
		{name: "bad color scheme", content: `ui: color_scheme: "neon"`},
		{name: "wrong type", content: `scripts: "install.py"`},
		{name: "empty step", content: `release: steps: [""]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "bad.cue")
			writeFile(t, path, tt.content)

			_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: path})
			if err == nil {
				t.Fatal("expected schema error")
			}
			if !strings.Contains(err.Error(), "bad.cue") {
				t.Errorf("error should name the file, got %v", err)
			}
		})
	}
}

func TestLoad_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewProvider().Load(ctx, LoadOptions{}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestGenerateCUE_RoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.cue")
	written, err := CreateDefaultConfig(path)
	if err != nil {
		t.Fatalf("CreateDefaultConfig: %v", err)
	}
	if !written {
		t.Fatal("expected file to be written")
	}

	written, err = CreateDefaultConfig(path)
	if err != nil || written {
		t.Errorf("second CreateDefaultConfig should be a no-op, got written=%v err=%v", written, err)
	}

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: path})
	if err != nil {
		t.Fatalf("generated config should load: %v", err)
	}
	if len(cfg.Release.Steps) != len(DefaultConfig().Release.Steps) {
		t.Errorf("Release.Steps = %v", cfg.Release.Steps)
	}
}

func TestConfigDirFromEnv(t *testing.T) {
	t.Setenv(ConfigDirEnvVar, "/tmp/repoutils-test")

	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir: %v", err)
	}
	if dir != "/tmp/repoutils-test" {
		t.Errorf("ConfigDir() = %q", dir)
	}

	path, err := UserConfigPath()
	if err != nil {
		t.Fatalf("UserConfigPath: %v", err)
	}
	if filepath.Base(path) != "config.cue" {
		t.Errorf("UserConfigPath() = %q", path)
	}
}
