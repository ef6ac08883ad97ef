// SPDX-License-Identifier: MPL-2.0

package packaging

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/exp/slices"
)

// DefaultExcludes keeps test packages out of distributions at any depth.
var DefaultExcludes = []string{"tests", "*.tests", "*.tests.*", "tests.*"}

// FindPackages returns the dotted names of every Python package below root,
// sorted, skipping names that match any exclude pattern. Excluded packages
// are still searched for non-excluded sub-packages.
func FindPackages(root string, excludes ...string) ([]string, error) {
	for _, pattern := range excludes {
		if _, err := path.Match(pattern, ""); err != nil {
			return nil, fmt.Errorf("exclude pattern %q: %w", pattern, err)
		}
	}

	var found []string
	if err := findIn(root, "", excludes, &found); err != nil {
		return nil, err
	}
	slices.Sort(found)
	return found, nil
}

func findIn(dir, prefix string, excludes []string, found *[]string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read %s: %w", dir, err)
	}
	for _, entry := range entries {
		if !entry.IsDir() || strings.Contains(entry.Name(), ".") {
			continue
		}
		full := filepath.Join(dir, entry.Name())
		if !isPackage(full) {
			continue
		}
		name := entry.Name()
		if prefix != "" {
			name = prefix + "." + name
		}
		if !excluded(name, excludes) {
			*found = append(*found, name)
		}
		if err := findIn(full, name, excludes, found); err != nil {
			return err
		}
	}
	return nil
}

func isPackage(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, "__init__.py"))
	return err == nil && !info.IsDir()
}

func excluded(name string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, _ := path.Match(pattern, name); ok {
			return true
		}
	}
	return false
}
