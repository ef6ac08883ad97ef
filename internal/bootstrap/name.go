// SPDX-License-Identifier: MPL-2.0

package bootstrap

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrNotInPackage is returned when a file does not live inside a top-level
// package directory of the repository.
var ErrNotInPackage = errors.New("file is not inside a package of the repository")

// PackageName returns the top-level package directory that contains file:
// the first non-empty path segment of file relative to repoRoot.
//
//	PackageName("/repo/package_name/start_command_line/start_command_line.py", "/repo/")
//	  == "package_name"
func PackageName(file, repoRoot string) (string, error) {
	rel, err := filepath.Rel(filepath.Clean(repoRoot), filepath.Clean(file))
	if err != nil {
		return "", fmt.Errorf("%s: %w", file, ErrNotInPackage)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s is outside %s: %w", file, repoRoot, ErrNotInPackage)
	}

	var segments []string
	for _, s := range strings.Split(rel, string(filepath.Separator)) {
		if s != "" && s != "." {
			segments = append(segments, s)
		}
	}
	// the last segment is the file itself
	if len(segments) < 2 {
		return "", fmt.Errorf("%s is at the repository root: %w", file, ErrNotInPackage)
	}
	return segments[0], nil
}
