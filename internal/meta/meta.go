// SPDX-License-Identifier: MPL-2.0

package meta

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/repoutils/repoutils/internal/issue"
	"github.com/repoutils/repoutils/internal/platform"
	"github.com/repoutils/repoutils/pkg/cueutil"

	"github.com/pelletier/go-toml/v2"
)

const (
	// FileBase is the metadata file name without extension.
	FileBase = "__meta__"
	// CUEExt and TOMLExt are the supported metadata formats, in lookup order.
	CUEExt  = ".cue"
	TOMLExt = ".toml"
)

//go:embed meta_schema.cue
var metaSchema []byte

var callablePattern = regexp.MustCompile(`^\.?[A-Za-z_][A-Za-z0-9_.]*:[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)*$`)

var (
	// ErrMetaNotFound is returned when no metadata file exists.
	ErrMetaNotFound = errors.New("metadata file not found")
	// ErrInvalidMeta is the sentinel wrapped by metadata validation errors.
	ErrInvalidMeta = errors.New("invalid metadata")
	// ErrUnsupportedFormat is returned for metadata files that are neither CUE nor TOML.
	ErrUnsupportedFormat = errors.New("unsupported metadata format")
)

type (
	// Meta is the package metadata record.
	Meta struct {
		Name        string             `json:"name" toml:"name"`
		Version     string             `json:"version" toml:"version"`
		Path        string             `json:"path" toml:"path"`
		Author      string             `json:"author" toml:"author"`
		AuthorEmail string             `json:"author_email" toml:"author_email"`
		Description string             `json:"description" toml:"description"`
		License     string             `json:"license" toml:"license"`
		URL         string             `json:"url" toml:"url"`
		Commands    map[string]Command `json:"commands,omitempty" toml:"commands,omitempty"`

		// File is the metadata file the record was read from.
		File string `json:"-" toml:"-"`
	}

	// Command declares one command of the package's CLI.
	// Exactly one of Script and Callable is set.
	Command struct {
		Description string `json:"description,omitempty" toml:"description,omitempty"`
		Script      string `json:"script,omitempty" toml:"script,omitempty"`
		Callable    string `json:"callable,omitempty" toml:"callable,omitempty"`
	}

	// MissingFieldsError lists required metadata fields that are empty.
	MissingFieldsError struct {
		File   string
		Fields []string
	}

	// InvalidCommandError reports a command that sets neither or both of
	// script and callable.
	InvalidCommandError struct {
		Name   string
		Reason string
	}

	// InvalidPathError reports a package path that cannot be used as a
	// directory below the repository root.
	InvalidPathError struct {
		Path   string
		Reason string
	}
)

// Error implements the error interface.
func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("%s: missing required field(s): %s", e.File, strings.Join(e.Fields, ", "))
}

// Unwrap returns ErrInvalidMeta for errors.Is() compatibility.
func (e *MissingFieldsError) Unwrap() error { return ErrInvalidMeta }

// Error implements the error interface.
func (e *InvalidCommandError) Error() string {
	return fmt.Sprintf("command %q: %s", e.Name, e.Reason)
}

// Unwrap returns ErrInvalidMeta for errors.Is() compatibility.
func (e *InvalidCommandError) Unwrap() error { return ErrInvalidMeta }

// Error implements the error interface.
func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("path %q: %s", e.Path, e.Reason)
}

// Unwrap returns ErrInvalidMeta for errors.Is() compatibility.
func (e *InvalidPathError) Unwrap() error { return ErrInvalidMeta }

// Validate checks required fields and command declarations. All missing
// fields are reported together.
func (m *Meta) Validate() error {
	required := []struct {
		key   string
		value string
	}{
		{"name", m.Name},
		{"version", m.Version},
		{"path", m.Path},
		{"author", m.Author},
		{"author_email", m.AuthorEmail},
		{"description", m.Description},
		{"license", m.License},
		{"url", m.URL},
	}

	var missing []string
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.key)
		}
	}
	if len(missing) > 0 {
		return &MissingFieldsError{File: m.File, Fields: missing}
	}
	if err := validatePath(m.Path); err != nil {
		return err
	}

	for _, name := range m.CommandNames() {
		cmd := m.Commands[name]
		switch {
		case cmd.Script == "" && cmd.Callable == "":
			return &InvalidCommandError{Name: name, Reason: "one of script or callable is required"}
		case cmd.Script != "" && cmd.Callable != "":
			return &InvalidCommandError{Name: name, Reason: "script and callable are mutually exclusive"}
		case cmd.Callable != "" && !callablePattern.MatchString(cmd.Callable):
			return &InvalidCommandError{Name: name, Reason: fmt.Sprintf("callable %q is not in module:attribute form", cmd.Callable)}
		}
	}

	return nil
}

func validatePath(p string) error {
	slashed := filepath.ToSlash(p)
	if filepath.IsAbs(p) || strings.HasPrefix(slashed, "/") {
		return &InvalidPathError{Path: p, Reason: "must be relative to the repository root"}
	}
	for _, seg := range strings.Split(slashed, "/") {
		switch {
		case seg == "" || seg == ".":
			return &InvalidPathError{Path: p, Reason: "must name a package directory without empty or \".\" segments"}
		case seg == "..":
			return &InvalidPathError{Path: p, Reason: "must not leave the repository root"}
		case platform.IsWindowsReservedName(seg):
			return &InvalidPathError{Path: p, Reason: fmt.Sprintf("%q is a reserved name on Windows", seg)}
		}
	}
	return nil
}

// CommandNames returns the declared command names in sorted order.
func (m *Meta) CommandNames() []string {
	names := make([]string, 0, len(m.Commands))
	for name := range m.Commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PackageDir returns the on-disk package directory below root.
func (m *Meta) PackageDir(root string) string {
	return filepath.Join(root, filepath.FromSlash(m.Path))
}

// Parse decodes metadata from data. The format is chosen by the extension
// of filename.
func Parse(data []byte, filename string) (*Meta, error) {
	var m *Meta

	switch strings.ToLower(filepath.Ext(filename)) {
	case CUEExt:
		decoded, err := cueutil.Decode[Meta](metaSchema, data, "#Meta", cueutil.WithFilename(filename))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidMeta, err)
		}
		m = decoded
	case TOMLExt:
		var decoded Meta
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&decoded); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidMeta, filename, err)
		}
		m = &decoded
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filename)
	}

	m.File = filename
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Candidates returns the metadata file locations searched below root, in
// precedence order: the root itself, then each top-level directory in
// lexical order. Hidden directories are skipped.
func Candidates(root string) ([]string, error) {
	names := []string{FileBase + CUEExt, FileBase + TOMLExt}

	candidates := make([]string, 0, len(names))
	for _, n := range names {
		candidates = append(candidates, filepath.Join(root, n))
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read repository root: %w", err)
	}
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		for _, n := range names {
			candidates = append(candidates, filepath.Join(root, e.Name(), n))
		}
	}

	return candidates, nil
}

// Find returns the first existing metadata file below root.
func Find(root string) (string, error) {
	candidates, err := Candidates(root)
	if err != nil {
		return "", err
	}
	for _, c := range candidates {
		if info, statErr := os.Stat(c); statErr == nil && !info.IsDir() {
			return c, nil
		}
	}
	return "", ErrMetaNotFound
}

// Load reads the metadata record. When explicitPath is empty the file is
// located with Find.
func Load(root, explicitPath string) (*Meta, error) {
	path := explicitPath
	if path == "" {
		found, err := Find(root)
		if err != nil {
			return nil, issue.NewErrorContext().
				WithOperation("locate project metadata").
				WithIssue(issue.MetaNotFoundId).
				WithResource(root).
				WithSuggestion("Create package_name/__meta__.toml (or __meta__.cue) with name, version and path").
				WithSuggestion("Pass --meta to point at a metadata file elsewhere").
				Wrap(err).
				BuildError()
		}
		path = found
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, issue.WrapWithContext(err, "read project metadata", path)
	}

	m, err := Parse(data, path)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("load project metadata").
			WithIssue(issue.MetaInvalidId).
			WithResource(path).
			WithSuggestion("Required fields: name, version, path, author, author_email, description, license, url").
			Wrap(err).
			BuildError()
	}
	return m, nil
}
