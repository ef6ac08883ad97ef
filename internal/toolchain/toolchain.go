// SPDX-License-Identifier: MPL-2.0

// Package toolchain locates the external executables repoutils shells out to
// and fails fast, with an install hint, when one is missing.
package toolchain

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/repoutils/repoutils/internal/issue"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/syntax"
)

// PythonEnvVar overrides interpreter discovery.
const PythonEnvVar = "REPOUTILS_PYTHON"

// ErrToolNotFound is the sentinel wrapped by ToolNotFoundError.
var ErrToolNotFound = errors.New("tool not found")

// DefaultPythonCandidates are tried in order when nothing is configured.
// Some Python 3 distributions (notably python.org on Windows) ship no
// python3 binary.
var DefaultPythonCandidates = []string{"python3", "python"}

type (
	// ToolNotFoundError reports that none of the candidate names resolved.
	ToolNotFoundError struct {
		Tool  string
		Tried []string
	}

	// Resolver resolves executables on PATH.
	Resolver struct {
		LookPath func(file string) (string, error)
		Getenv   func(key string) string
	}
)

// Error implements the error interface.
func (e *ToolNotFoundError) Error() string {
	return fmt.Sprintf("%s not found on PATH (tried %s)", e.Tool, strings.Join(e.Tried, ", "))
}

// Unwrap returns ErrToolNotFound for errors.Is.
func (e *ToolNotFoundError) Unwrap() error { return ErrToolNotFound }

// NewResolver creates a Resolver backed by the process environment.
func NewResolver() *Resolver {
	return &Resolver{LookPath: exec.LookPath, Getenv: os.Getenv}
}

// Python returns the interpreter path. REPOUTILS_PYTHON wins over the
// configured value, which wins over python3 and python on PATH.
func (r *Resolver) Python(configured string) (string, error) {
	var candidates []string
	switch {
	case r.Getenv(PythonEnvVar) != "":
		candidates = []string{r.Getenv(PythonEnvVar)}
	case configured != "":
		candidates = []string{configured}
	default:
		candidates = DefaultPythonCandidates
	}

	for _, name := range candidates {
		if path, err := r.LookPath(name); err == nil {
			return path, nil
		}
	}
	return "", notFound("python", candidates)
}

// Require checks that every named tool resolves, reporting the first one
// that does not.
func (r *Resolver) Require(tools ...string) error {
	for _, tool := range tools {
		if _, err := r.LookPath(tool); err != nil {
			return notFound(tool, []string{tool})
		}
	}
	return nil
}

// Programs returns the distinct executables invoked by the given shell
// command lines, in order of appearance. Each line is parsed as POSIX shell,
// so quoted program paths stay whole and VAR=value prefixes are not
// programs. Lines that do not parse are skipped; running them reports the
// syntax error.
func Programs(lines ...string) []string {
	parser := syntax.NewParser(syntax.Variant(syntax.LangPOSIX))
	seen := make(map[string]bool)
	var out []string
	for _, line := range lines {
		file, err := parser.Parse(strings.NewReader(line), "")
		if err != nil {
			continue
		}
		syntax.Walk(file, func(node syntax.Node) bool {
			call, ok := node.(*syntax.CallExpr)
			if !ok || len(call.Args) == 0 {
				return true
			}
			name, err := expand.Literal(nil, call.Args[0])
			if err == nil && name != "" && !seen[name] {
				seen[name] = true
				out = append(out, name)
			}
			return true
		})
	}
	return out
}

// InstallHint suggests how to obtain a missing tool.
func InstallHint(tool string) string {
	switch tool {
	case "python":
		return fmt.Sprintf("Install Python 3.6 or newer, or point %s at an interpreter", PythonEnvVar)
	case "git":
		return "Install Git from https://git-scm.com/downloads"
	case "twine":
		return "Install twine with: python3 -m pip install twine"
	default:
		return fmt.Sprintf("Install %s and make sure it is on your PATH", tool)
	}
}

func notFound(tool string, tried []string) error {
	return issue.NewErrorContext().
		WithOperation("locate " + tool).
		WithIssue(issue.ToolNotFoundId).
		WithSuggestion(InstallHint(tool)).
		Wrap(&ToolNotFoundError{Tool: tool, Tried: tried}).
		BuildError()
}
