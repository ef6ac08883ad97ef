// SPDX-License-Identifier: MPL-2.0

// Package initstub creates the empty __init__.py files a non-editable install
// needs so nested modules are importable, and removes them afterwards.
package initstub

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// InitFile is the package marker file name.
const InitFile = "__init__.py"

// Stubs is the ordered list of generated init files.
type Stubs struct {
	paths []string
}

// Paths returns the generated file paths in creation order.
func (s *Stubs) Paths() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.paths))
	copy(out, s.paths)
	return out
}

// Len returns how many stubs were generated.
func (s *Stubs) Len() int {
	if s == nil {
		return 0
	}
	return len(s.paths)
}

// Generate writes an empty __init__.py into every directory under
// root/packagePath that holds Python sources at any depth and lacks one.
// On error the stubs created so far are still returned so the caller can
// clean them up.
func Generate(root, packagePath string) (*Stubs, error) {
	pkgDir := filepath.Join(root, packagePath)
	info, err := os.Stat(pkgDir)
	if err != nil {
		return &Stubs{}, fmt.Errorf("package directory: %w", err)
	}
	if !info.IsDir() {
		return &Stubs{}, fmt.Errorf("package directory %s is not a directory", pkgDir)
	}

	var dirs []string
	hasInit := make(map[string]bool)
	hasSource := make(map[string]bool)

	walkErr := filepath.WalkDir(pkgDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != pkgDir && skipDir(d.Name()) {
				return filepath.SkipDir
			}
			dirs = append(dirs, path)
			return nil
		}
		if filepath.Ext(d.Name()) != ".py" {
			return nil
		}
		dir := filepath.Dir(path)
		if d.Name() == InitFile {
			hasInit[dir] = true
		}
		// mark every ancestor up to the package directory
		for {
			if hasSource[dir] {
				break
			}
			hasSource[dir] = true
			if dir == pkgDir {
				break
			}
			dir = filepath.Dir(dir)
		}
		return nil
	})
	if walkErr != nil {
		return &Stubs{}, fmt.Errorf("scan %s: %w", pkgDir, walkErr)
	}

	stubs := &Stubs{}
	for _, dir := range dirs {
		if !hasSource[dir] || hasInit[dir] {
			continue
		}
		path := filepath.Join(dir, InitFile)
		f, err := createStub(path)
		if err != nil {
			return stubs, fmt.Errorf("create %s: %w", path, err)
		}
		// Recorded before Close: the file exists even if Close fails.
		stubs.paths = append(stubs.paths, path)
		if err := f.Close(); err != nil {
			return stubs, fmt.Errorf("create %s: %w", path, err)
		}
	}
	return stubs, nil
}

// createStub creates an empty file, failing if one already exists.
var createStub = func(path string) (io.Closer, error) {
	return os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
}

// Cleanup removes every generated stub. Paths that no longer exist are
// skipped; all other failures are collected into one error.
func (s *Stubs) Cleanup() error {
	if s == nil {
		return nil
	}
	var result *multierror.Error
	for _, path := range s.paths {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

func skipDir(name string) bool {
	return name == "tests" ||
		name == "__pycache__" ||
		strings.HasPrefix(name, ".") ||
		strings.HasSuffix(name, ".egg-info")
}
