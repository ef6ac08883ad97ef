// SPDX-License-Identifier: MPL-2.0

// Package hooks implements the test and upload (release) commands.
//
// Every command line is a template expanded with {python}, {name} and
// {version}, then run through the embedded shell so globs such as dist/*
// behave the same on every platform. Release steps have no rollback: the
// first failing step stops the sequence and its exit code is reported.
package hooks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/repoutils/repoutils/internal/config"
	"github.com/repoutils/repoutils/internal/runtime"
	"github.com/repoutils/repoutils/internal/toolchain"
	"github.com/repoutils/repoutils/pkg/types"

	"github.com/charmbracelet/lipgloss"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// ErrStepFailed is the sentinel wrapped by StepFailedError.
var ErrStepFailed = errors.New("step failed")

// StatusStyle renders step announcements.
var StatusStyle = lipgloss.NewStyle().Bold(true)

type (
	// Vars are the values substituted into command templates.
	Vars struct {
		Python  string
		Name    string
		Version string
	}

	// StepFailedError reports the step that stopped a hook.
	StepFailedError struct {
		// Hook is the hook the step belongs to: build, test or upload.
		Hook     string
		Step     string
		ExitCode types.ExitCode
		Cause    error
	}

	// Runner executes hook command lines in a repository.
	Runner struct {
		// Dir is the repository root; every step runs there.
		Dir string
		// Runtime runs the expanded command lines.
		Runtime runtime.Runtime
		// Tools checks that step executables exist before anything runs.
		Tools *toolchain.Resolver
		// Stdout and Stderr receive step output and status lines.
		Stdout io.Writer
		Stderr io.Writer
	}
)

// Error implements the error interface.
func (e *StepFailedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%q failed: %v", e.Step, e.Cause)
	}
	return fmt.Sprintf("%q exited with status %s", e.Step, e.ExitCode)
}

// Unwrap returns ErrStepFailed, and the cause when there is one.
func (e *StepFailedError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrStepFailed, e.Cause}
	}
	return []error{ErrStepFailed}
}

// Map returns the template substitutions. The interpreter path is shell
// quoted when it needs to be.
func (v Vars) Map() map[string]string {
	return map[string]string{
		"python":  shellWord(v.Python),
		"name":    v.Name,
		"version": v.Version,
	}
}

// NewRunner creates a Runner for dir using the embedded shell.
func NewRunner(dir string) *Runner {
	return &Runner{
		Dir:     dir,
		Runtime: runtime.NewVirtualRuntime(),
		Tools:   toolchain.NewResolver(),
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
}

// Build runs the build command once.
func (r *Runner) Build(ctx context.Context, cfg config.BuildConfig, vars Vars) error {
	line := cfg.Command.Expand(vars.Map())
	return r.run(ctx, "build", line, line, nil)
}

// Test runs the test command with args appended.
func (r *Runner) Test(ctx context.Context, cfg config.TestConfig, vars Vars, args []string) error {
	line := cfg.Command.Expand(vars.Map())
	return r.run(ctx, "test", line+` "$@"`, line, args)
}

// Upload removes previous build artifacts, then runs each release step in
// order, stopping at the first failure. Nothing runs when a step does not
// parse or names a missing tool.
func (r *Runner) Upload(ctx context.Context, cfg config.ReleaseConfig, vars Vars) error {
	lines := make([]string, len(cfg.Steps))
	for i, step := range cfg.Steps {
		lines[i] = step.Expand(vars.Map())
	}
	if v, ok := r.Runtime.(validator); ok {
		for _, line := range lines {
			if err := v.Validate(line); err != nil {
				return &StepFailedError{Hook: "upload", Step: line, ExitCode: 2, Cause: err}
			}
		}
	}
	if r.Tools != nil {
		if err := r.Tools.Require(external(toolchain.Programs(lines...))...); err != nil {
			return err
		}
	}

	r.status("Removing previous builds...")
	r.clean(cfg.Clean)

	for _, line := range lines {
		if err := r.run(ctx, "upload", line, line, nil); err != nil {
			return err
		}
	}
	return nil
}

// validator is implemented by runtimes that can check a program before
// running it.
type validator interface {
	Validate(program string) error
}

func shellWord(s string) string {
	if !strings.ContainsAny(s, " \t'\"$`\\&;|<>()*?") {
		return s
	}
	q, err := syntax.Quote(s, syntax.LangPOSIX)
	if err != nil {
		return s
	}
	return q
}

// external drops shell builtins, which never need to be on PATH.
func external(programs []string) []string {
	out := programs[:0]
	for _, p := range programs {
		if !interp.IsBuiltin(p) {
			out = append(out, p)
		}
	}
	return out
}

// clean is best-effort.
func (r *Runner) clean(paths []string) {
	for _, p := range paths {
		target := p
		if !filepath.IsAbs(target) {
			target = filepath.Join(r.Dir, target)
		}
		if err := os.RemoveAll(target); err != nil {
			slog.Debug("ignoring clean failure", "path", target, "error", err)
		}
	}
}

func (r *Runner) run(ctx context.Context, hook, script, label string, args []string) error {
	r.status(label)

	ectx := runtime.NewExecutionContext(ctx)
	ectx.WorkDir = r.Dir
	ectx.Stdout = r.Stdout
	ectx.Stderr = r.Stderr
	ectx.PositionalArgs = args

	slog.Debug("running step", "step", label, "dir", r.Dir, "runtime", r.Runtime.Name())
	result := r.Runtime.Execute(ectx, script)
	if result.Success() {
		return nil
	}
	code := result.ExitCode
	if code.IsSuccess() {
		code = 1
	}
	return &StepFailedError{Hook: hook, Step: label, ExitCode: code, Cause: result.Error}
}

func (r *Runner) status(msg string) {
	if r.Stdout == nil {
		return
	}
	fmt.Fprintln(r.Stdout, StatusStyle.Render(msg))
}
