// SPDX-License-Identifier: MPL-2.0

package packaging

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

const (
	// PyprojectFile is the build configuration file name.
	PyprojectFile = "pyproject.toml"
	// GeneratedHeader marks pyproject.toml files owned by repoutils.
	GeneratedHeader = "# Code generated by repoutils. DO NOT EDIT."
)

// ErrForeignPyproject is returned when a hand-written pyproject.toml is in the way.
var ErrForeignPyproject = errors.New("pyproject.toml was not generated by repoutils")

type (
	pyproject struct {
		BuildSystem buildSystem `toml:"build-system"`
		Project     project     `toml:"project"`
		Tool        tool        `toml:"tool"`
	}

	buildSystem struct {
		Requires     []string `toml:"requires"`
		BuildBackend string   `toml:"build-backend"`
	}

	project struct {
		Name                 string              `toml:"name"`
		Version              string              `toml:"version"`
		Description          string              `toml:"description"`
		Readme               readmeTable         `toml:"readme,inline"`
		RequiresPython       string              `toml:"requires-python"`
		License              licenseTable        `toml:"license,inline"`
		Authors              []person            `toml:"authors"`
		Classifiers          []string            `toml:"classifiers"`
		Dependencies         []string            `toml:"dependencies,omitempty"`
		OptionalDependencies map[string][]string `toml:"optional-dependencies,omitempty"`
		URLs                 map[string]string   `toml:"urls,omitempty"`
		Scripts              map[string]string   `toml:"scripts,omitempty"`
	}

	readmeTable struct {
		Text        string `toml:"text"`
		ContentType string `toml:"content-type"`
	}

	licenseTable struct {
		Text string `toml:"text"`
	}

	person struct {
		Name  string `toml:"name"`
		Email string `toml:"email,omitempty"`
	}

	tool struct {
		Setuptools setuptoolsTable `toml:"setuptools"`
	}

	setuptoolsTable struct {
		Packages    []string          `toml:"packages"`
		PackageDir  map[string]string `toml:"package-dir"`
		ScriptFiles []string          `toml:"script-files,omitempty"`
	}
)

func (c *Config) pyproject() pyproject {
	p := pyproject{
		BuildSystem: buildSystem{
			Requires:     []string{"setuptools>=61.0", "wheel"},
			BuildBackend: "setuptools.build_meta",
		},
		Project: project{
			Name:           c.Name,
			Version:        c.Version,
			Description:    c.Description,
			Readme:         readmeTable{Text: c.LongDescription, ContentType: c.LongDescriptionContentType},
			RequiresPython: c.PythonRequires,
			License:        licenseTable{Text: c.License},
			Authors:        []person{{Name: c.Author, Email: c.AuthorEmail}},
			Classifiers:    c.Classifiers,
			Dependencies:   c.InstallRequires,
		},
		Tool: tool{Setuptools: setuptoolsTable{
			Packages:    c.Packages,
			PackageDir:  c.PackageDir,
			ScriptFiles: c.Scripts,
		}},
	}
	if p.Tool.Setuptools.Packages == nil {
		p.Tool.Setuptools.Packages = []string{}
	}
	if len(c.ExtrasRequire) > 0 {
		p.Project.OptionalDependencies = c.ExtrasRequire
	}
	if c.URL != "" {
		p.Project.URLs = map[string]string{"Homepage": c.URL}
	}
	for _, ep := range c.EntryPoints[ConsoleScriptsGroup] {
		name, target, ok := strings.Cut(ep, "=")
		if !ok {
			continue
		}
		if p.Project.Scripts == nil {
			p.Project.Scripts = make(map[string]string)
		}
		p.Project.Scripts[strings.TrimSpace(name)] = strings.TrimSpace(target)
	}
	return p
}

// WritePyproject renders the configuration as a PEP 621 pyproject.toml.
func (c *Config) WritePyproject(w io.Writer) error {
	if _, err := io.WriteString(w, GeneratedHeader+"\n\n"); err != nil {
		return err
	}
	enc := toml.NewEncoder(w)
	enc.SetIndentTables(true)
	if err := enc.Encode(c.pyproject()); err != nil {
		return fmt.Errorf("encode %s: %w", PyprojectFile, err)
	}
	return nil
}

// SavePyproject writes cfg to path, refusing to replace a pyproject.toml
// that repoutils did not generate.
func SavePyproject(cfg *Config, path string) error {
	generated, err := IsGenerated(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return err
	case !generated:
		return fmt.Errorf("%s: %w", path, ErrForeignPyproject)
	}

	var buf bytes.Buffer
	if err := cfg.WritePyproject(&buf); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// IsGenerated reports whether the file at path starts with GeneratedHeader.
func IsGenerated(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return false, scanner.Err()
	}
	return strings.TrimSpace(scanner.Text()) == GeneratedHeader, nil
}
