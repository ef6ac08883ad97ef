// SPDX-License-Identifier: MPL-2.0

package packaging

import (
	"encoding/json"

	"github.com/repoutils/repoutils/internal/meta"
	"github.com/repoutils/repoutils/internal/readme"
	"github.com/repoutils/repoutils/internal/requirements"

	"golang.org/x/exp/slices"
)

const (
	// EntryFunction is the bootstrap function every console script calls.
	EntryFunction = "start_command_line"
	// ConsoleScriptsGroup is the entry point group of console commands.
	ConsoleScriptsGroup = "console_scripts"

	TestHook   = "test"
	UploadHook = "upload"
)

type (
	// Settings are the configurable parts of the build configuration.
	// Zero values fall back to the defaults.
	Settings struct {
		ConsoleScript  string
		Scripts        []string
		PythonRequires string
		Classifiers    []string
	}

	// Input gathers everything Assemble composes.
	Input struct {
		Meta            *meta.Meta
		Requirements    *requirements.Set
		LongDescription readme.LongDescription
		Packages        []string
		Settings        Settings
	}

	// Config is the assembled build configuration.
	Config struct {
		Name                       string              `json:"name"`
		Version                    string              `json:"version"`
		Packages                   []string            `json:"packages"`
		PackageDir                 map[string]string   `json:"package_dir"`
		EntryPoints                map[string][]string `json:"entry_points"`
		Scripts                    []string            `json:"scripts"`
		PythonRequires             string              `json:"python_requires"`
		InstallRequires            []string            `json:"install_requires"`
		ExtrasRequire              map[string][]string `json:"extras_require"`
		Author                     string              `json:"author"`
		AuthorEmail                string              `json:"author_email"`
		Description                string              `json:"description"`
		LongDescription            string              `json:"long_description"`
		LongDescriptionContentType string              `json:"long_description_content_type"`
		License                    string              `json:"license"`
		URL                        string              `json:"url"`
		Classifiers                []string            `json:"classifiers"`
		Commands                   []string            `json:"cmdclass"`
	}
)

// DefaultSettings mirrors config.DefaultConfig for callers without a config.
func DefaultSettings() Settings {
	return Settings{
		Scripts:        []string{"install.py"},
		PythonRequires: ">=3.6",
		Classifiers: []string{
			"Natural Language :: English",
			"Programming Language :: Python",
			"Programming Language :: Python :: 3",
			"Programming Language :: Python :: 3.6",
			"Programming Language :: Python :: 3.7",
			"Programming Language :: Python :: 3.8",
			"Programming Language :: Python :: 3.9",
		},
	}
}

// EntryPoint formats a console script declaration bound to the bootstrap.
func EntryPoint(script, modulePath string) string {
	return script + "=" + modulePath + ":" + EntryFunction
}

// Assemble composes the build configuration. It performs no validation;
// malformed values surface from the build backend.
func Assemble(in Input) *Config {
	m := in.Meta
	s := withDefaults(in.Settings)

	script := s.ConsoleScript
	if script == "" {
		script = m.Path
	}

	cfg := &Config{
		Name:                       m.Name,
		Version:                    m.Version,
		Packages:                   slices.Clone(in.Packages),
		PackageDir:                 map[string]string{m.Name: "./" + m.Path},
		EntryPoints:                map[string][]string{ConsoleScriptsGroup: {EntryPoint(script, m.Path)}},
		Scripts:                    slices.Clone(s.Scripts),
		PythonRequires:             s.PythonRequires,
		Author:                     m.Author,
		AuthorEmail:                m.AuthorEmail,
		Description:                m.Description,
		LongDescription:            in.LongDescription.Text,
		LongDescriptionContentType: in.LongDescription.ContentType,
		License:                    m.License,
		URL:                        m.URL,
		Classifiers:                slices.Clone(s.Classifiers),
		Commands:                   []string{TestHook, UploadHook},
		ExtrasRequire:              map[string][]string{},
	}
	if cfg.LongDescriptionContentType == "" {
		cfg.LongDescription = m.Description
		cfg.LongDescriptionContentType = readme.ContentTypePlain
	}

	if in.Requirements != nil {
		cfg.InstallRequires = slices.Clone(in.Requirements.Install)
		for name, lines := range in.Requirements.Extras {
			cfg.ExtrasRequire[name] = slices.Clone(lines)
		}
	}
	return cfg
}

func withDefaults(s Settings) Settings {
	d := DefaultSettings()
	if s.Scripts == nil {
		s.Scripts = d.Scripts
	}
	if s.PythonRequires == "" {
		s.PythonRequires = d.PythonRequires
	}
	if s.Classifiers == nil {
		s.Classifiers = d.Classifiers
	}
	return s
}

// JSON renders the configuration as indented JSON.
func (c *Config) JSON() ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}
