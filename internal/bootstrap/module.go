// SPDX-License-Identifier: MPL-2.0

package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/repoutils/repoutils/internal/meta"
	"github.com/repoutils/repoutils/internal/runtime"
)

// Module is a repository package together with its command registry.
type Module struct {
	// Name is the package's import name.
	Name string
	// Dir is the package directory on disk.
	Dir string
	// Commands holds the package's commands.
	Commands *Registry
}

// Options configure how a Module is built.
type Options struct {
	// Root is the repository root.
	Root string
	// Python is the interpreter used for callable commands.
	Python string
}

// NewModule builds the registry of m's declared commands. Scripts that do
// not parse are rejected here rather than on first use.
func NewModule(m *meta.Meta, opts Options) (*Module, error) {
	shell := runtime.NewVirtualRuntime()
	mod := &Module{
		Name:     importName(m.Path),
		Dir:      m.PackageDir(opts.Root),
		Commands: NewRegistry(),
	}

	for _, name := range m.CommandNames() {
		cmd := m.Commands[name]
		var h Handler
		switch {
		case cmd.Script != "":
			if err := shell.Validate(cmd.Script); err != nil {
				return nil, &meta.InvalidCommandError{Name: name, Reason: err.Error()}
			}
			h = ScriptHandler(name, opts.Root, cmd.Script)
		case cmd.Callable != "":
			if opts.Python == "" {
				return nil, fmt.Errorf("command %q: a Python interpreter is required for callables", name)
			}
			h = CallableHandler(name, opts.Python, opts.Root, filepath.Dir(mod.Dir), mod.Resolve(cmd.Callable))
		default:
			return nil, &meta.InvalidCommandError{Name: name, Reason: "one of script or callable is required"}
		}
		if err := mod.Commands.Register(name, cmd.Description, h); err != nil {
			return nil, err
		}
	}
	return mod, nil
}

// Resolve expands a callable whose module starts with a dot relative to the
// package: ".cli:define" becomes "package_name.cli:define".
func (m *Module) Resolve(callable string) string {
	if strings.HasPrefix(callable, ".") {
		return m.Name + callable
	}
	return callable
}

// Dispatch forwards args to the module's registry.
func (m *Module) Dispatch(ctx context.Context, args []string) (string, error) {
	return m.Commands.Dispatch(ctx, args)
}

// importName converts a package path ("src/package_name") to the name
// Python imports it by.
func importName(path string) string {
	path = strings.Trim(strings.ReplaceAll(path, "\\", "/"), "/")
	if i := strings.LastIndex(path, "/"); i >= 0 {
		path = path[i+1:]
	}
	return path
}
