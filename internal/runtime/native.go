// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"errors"
	"fmt"
	"os/exec"

	"github.com/repoutils/repoutils/pkg/types"
)

// NativeRuntime executes a program directly, without a shell.
type NativeRuntime struct{}

// NewNativeRuntime creates a new native runtime
func NewNativeRuntime() *NativeRuntime {
	return &NativeRuntime{}
}

// Name returns the runtime name
func (r *NativeRuntime) Name() string {
	return "native"
}

// Execute runs program with ctx.PositionalArgs, streaming its output.
func (r *NativeRuntime) Execute(ctx *ExecutionContext, program string) *Result {
	return r.run(ctx, program, newStreamingOutput(ctx), nil)
}

// ExecuteCapture runs program with ctx.PositionalArgs and captures its output.
func (r *NativeRuntime) ExecuteCapture(ctx *ExecutionContext, program string) *Result {
	out, captured := newCapturingOutput()
	return r.run(ctx, program, out, captured)
}

func (r *NativeRuntime) run(ctx *ExecutionContext, program string, out *executeOutput, captured *capturedOutput) *Result {
	cmd := exec.CommandContext(ctx.context(), program, ctx.PositionalArgs...)
	cmd.Dir = ctx.WorkDir
	cmd.Env = buildEnv(ctx.ExtraEnv)
	cmd.Stdin = ctx.Stdin
	cmd.Stdout = out.stdout
	cmd.Stderr = out.stderr

	err := cmd.Run()
	if err == nil {
		return captured.fill(&Result{})
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := types.ExitCode(exitErr.ExitCode())
		if validateErr := code.Validate(); validateErr != nil {
			// killed by a signal
			return captured.fill(NewErrorResult(1, fmt.Errorf("%s terminated: %w", program, err)))
		}
		return captured.fill(NewExitCodeResult(code))
	}
	return captured.fill(NewErrorResult(1, fmt.Errorf("failed to execute %s: %w", program, err)))
}
