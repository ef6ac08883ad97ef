// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"io"
	"os"

	"github.com/repoutils/repoutils/pkg/types"
)

type (
	// ExecutionContext contains everything needed to run one piece of work.
	ExecutionContext struct {
		// Context is the Go context for cancellation
		Context context.Context
		// Stdout is where to write standard output
		Stdout io.Writer
		// Stderr is where to write standard error
		Stderr io.Writer
		// Stdin is where to read standard input
		Stdin io.Reader
		// WorkDir is the working directory; empty means the current one
		WorkDir string
		// ExtraEnv is layered on top of the host environment
		ExtraEnv map[string]string
		// PositionalArgs are exposed as $1, $2, ... to shell scripts
		PositionalArgs []string
	}

	// Result contains the outcome of an execution.
	Result struct {
		// ExitCode is the exit status reported by the program or script
		ExitCode types.ExitCode
		// Error is set when execution could not start or finish normally
		Error error
		// Output contains captured stdout (if captured)
		Output string
		// ErrOutput contains captured stderr (if captured)
		ErrOutput string
	}

	// Runtime runs a program. For the virtual runtime the program is shell
	// text; for the native runtime it is the executable name and program
	// arguments come from ExecutionContext.PositionalArgs.
	Runtime interface {
		// Name returns the runtime name
		Name() string
		// Execute runs the program streaming its output
		Execute(ctx *ExecutionContext, program string) *Result
		// ExecuteCapture runs the program and captures stdout/stderr
		ExecuteCapture(ctx *ExecutionContext, program string) *Result
	}
)

// NewExecutionContext creates an execution context bound to the process
// standard streams.
func NewExecutionContext(ctx context.Context) *ExecutionContext {
	if ctx == nil {
		ctx = context.Background()
	}
	return &ExecutionContext{
		Context:  ctx,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Stdin:    os.Stdin,
		ExtraEnv: make(map[string]string),
	}
}

// NewErrorResult creates a Result with the given exit code and error.
func NewErrorResult(code types.ExitCode, err error) *Result {
	return &Result{ExitCode: code, Error: err}
}

// NewExitCodeResult creates a Result with the given exit code and no error.
// Use this for non-zero exits that represent normal process termination
// rather than infrastructure failures.
func NewExitCodeResult(code types.ExitCode) *Result {
	return &Result{ExitCode: code}
}

// Success returns true if the program executed successfully.
func (r *Result) Success() bool {
	return r.ExitCode.IsSuccess() && r.Error == nil
}

func (c *ExecutionContext) context() context.Context {
	if c.Context == nil {
		return context.Background()
	}
	return c.Context
}
