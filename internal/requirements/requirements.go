// SPDX-License-Identifier: MPL-2.0

// Package requirements reads the install requirement list and derives the
// optional dependency groups ("extras") from requirements-<extra>.txt files.
package requirements

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/exp/slices"
)

const (
	// BaseFile is the mandatory requirement list.
	BaseFile = "requirements.txt"
	// AllExtra is the catch-all group holding every extra's entries.
	AllExtra = "all"

	extraPrefix = "requirements-"
	extraGlob   = extraPrefix + "*.txt"
)

// Set holds the install requirements and the extras groups.
type Set struct {
	// Install lists the mandatory dependency specifiers, in file order.
	Install []string
	// Extras maps an extra name to its specifiers. When at least one extra
	// file exists, AllExtra holds the sorted de-duplicated union.
	Extras map[string][]string
}

// Parse splits requirement file content into specifiers. Surrounding
// whitespace is trimmed; blank lines and comment lines are dropped. Lines
// have no length limit, so long direct URL references are kept whole.
func Parse(data []byte) []string {
	var out []string
	for raw := range strings.Lines(string(data)) {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out
}

// ReadFile reads and parses one requirement file. A missing file surfaces
// as an error matching fs.ErrNotExist.
func ReadFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data), nil
}

// ExtraName derives the extras group name from a requirement file name:
// "requirements-dev.txt" -> "dev".
func ExtraName(filename string) string {
	base := filepath.Base(filename)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return strings.Replace(base, extraPrefix, "", 1)
}

// Load reads requirements.txt and every requirements-*.txt below root.
func Load(root string) (*Set, error) {
	install, err := ReadFile(filepath.Join(root, BaseFile))
	if err != nil {
		return nil, fmt.Errorf("read install requirements: %w", err)
	}

	matches, err := filepath.Glob(filepath.Join(root, extraGlob))
	if err != nil {
		return nil, fmt.Errorf("list extra requirement files: %w", err)
	}

	extras := make(map[string][]string, len(matches)+1)
	for _, path := range matches {
		lines, readErr := ReadFile(path)
		if readErr != nil {
			return nil, fmt.Errorf("read extra requirements: %w", readErr)
		}
		extras[ExtraName(path)] = lines
	}

	if len(extras) > 0 {
		extras[AllExtra] = Union(extras)
	}

	return &Set{Install: install, Extras: extras}, nil
}

// Union returns the sorted, de-duplicated union of every group's entries.
func Union(groups map[string][]string) []string {
	var all []string
	for _, lines := range groups {
		all = append(all, lines...)
	}
	slices.Sort(all)
	return slices.Compact(all)
}

// ExtraNames returns the extras group names in sorted order.
func (s *Set) ExtraNames() []string {
	names := make([]string, 0, len(s.Extras))
	for name := range s.Extras {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
