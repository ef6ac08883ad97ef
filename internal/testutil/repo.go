// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"path/filepath"
	"testing"
)

// MetaTOML is a complete metadata file for the package "package-name"
// living in package_name/.
const MetaTOML = `name = "package-name"
version = "0.3.1"
path = "package_name"
author = "Jane Doe"
author_email = "jane@example.com"
description = "Example package"
license = "MIT"
url = "https://example.com/package-name"

[commands.define]
description = "Print the definition of a word"
script = 'echo "define: $1"'
`

// Repo is a Python repository laid out in a temporary directory.
type Repo struct {
	t    testing.TB
	Root string
}

// NewRepo returns an empty repository rooted in t.TempDir().
func NewRepo(t testing.TB) *Repo {
	t.Helper()
	return &Repo{t: t, Root: t.TempDir()}
}

// NewPythonRepo returns a repository with metadata, requirement lists and a
// package tree missing some __init__.py files:
//
//	package_name/__init__.py
//	package_name/__meta__.toml
//	package_name/start_command_line/start_command_line.py
//	package_name/core/engine.py
//	package_name/tests/test_engine.py
//	requirements.txt
//	requirements-dev.txt
func NewPythonRepo(t testing.TB) *Repo {
	t.Helper()
	r := NewRepo(t)
	r.Write("package_name/__init__.py", "")
	r.Write("package_name/__meta__.toml", MetaTOML)
	r.Write("package_name/start_command_line/start_command_line.py", "def start_command_line():\n    pass\n")
	r.Write("package_name/core/engine.py", "def run():\n    return 42\n")
	r.Write("package_name/tests/test_engine.py", "")
	r.Write("requirements.txt", "requests>=2\n")
	r.Write("requirements-dev.txt", "pytest\n")
	return r
}

// Path joins slash-separated rel onto the repository root.
func (r *Repo) Path(rel string) string {
	return filepath.Join(r.Root, filepath.FromSlash(rel))
}

// Write creates rel with content and returns its absolute path.
func (r *Repo) Write(rel, content string) string {
	r.t.Helper()
	path := r.Path(rel)
	MustWriteFile(r.t, path, content)
	return path
}

// Read returns the content of rel.
func (r *Repo) Read(rel string) string {
	r.t.Helper()
	return MustReadFile(r.t, r.Path(rel))
}

// Exists reports whether rel exists.
func (r *Repo) Exists(rel string) bool {
	return Exists(r.Path(rel))
}
