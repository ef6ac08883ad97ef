// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"errors"
	"fmt"
	"strings"

	"github.com/repoutils/repoutils/pkg/types"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// VirtualRuntime executes shell text using mvdan/sh.
type VirtualRuntime struct{}

// NewVirtualRuntime creates a new virtual runtime
func NewVirtualRuntime() *VirtualRuntime {
	return &VirtualRuntime{}
}

// Name returns the runtime name
func (r *VirtualRuntime) Name() string {
	return "virtual"
}

// Validate checks that script parses.
func (r *VirtualRuntime) Validate(script string) error {
	if strings.TrimSpace(script) == "" {
		return fmt.Errorf("script has no content to execute")
	}
	if _, err := syntax.NewParser().Parse(strings.NewReader(script), "script"); err != nil {
		return fmt.Errorf("script syntax error: %w", err)
	}
	return nil
}

// Execute runs script streaming output to the context writers.
func (r *VirtualRuntime) Execute(ctx *ExecutionContext, script string) *Result {
	return r.run(ctx, script, newStreamingOutput(ctx), nil)
}

// ExecuteCapture runs script and captures its output.
func (r *VirtualRuntime) ExecuteCapture(ctx *ExecutionContext, script string) *Result {
	out, captured := newCapturingOutput()
	return r.run(ctx, script, out, captured)
}

func (r *VirtualRuntime) run(ctx *ExecutionContext, script string, out *executeOutput, captured *capturedOutput) *Result {
	prog, err := syntax.NewParser().Parse(strings.NewReader(script), "script")
	if err != nil {
		return captured.fill(NewErrorResult(1, fmt.Errorf("failed to parse script: %w", err)))
	}

	opts := []interp.RunnerOption{
		interp.Env(expand.ListEnviron(buildEnv(ctx.ExtraEnv)...)),
		interp.StdIO(ctx.Stdin, out.stdout, out.stderr),
	}
	if ctx.WorkDir != "" {
		opts = append(opts, interp.Dir(ctx.WorkDir))
	}

	// Prepend "--" to signal end of options; without this, args like "-v"
	// are interpreted as shell options by interp.Params()
	if len(ctx.PositionalArgs) > 0 {
		params := append([]string{"--"}, ctx.PositionalArgs...)
		opts = append(opts, interp.Params(params...))
	}

	runner, err := interp.New(opts...)
	if err != nil {
		return captured.fill(NewErrorResult(1, fmt.Errorf("failed to create interpreter: %w", err)))
	}

	if err := runner.Run(ctx.context(), prog); err != nil {
		var exitStatus interp.ExitStatus
		if errors.As(err, &exitStatus) {
			return captured.fill(NewExitCodeResult(types.ExitCode(exitStatus)))
		}
		return captured.fill(NewErrorResult(1, fmt.Errorf("script execution failed: %w", err)))
	}

	return captured.fill(&Result{})
}
