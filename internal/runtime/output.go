// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"bytes"
	"io"
)

type (
	// executeOutput configures where program output is directed. It abstracts
	// the difference between streaming and capturing execution modes.
	executeOutput struct {
		stdout io.Writer
		stderr io.Writer
	}

	// capturedOutput holds the buffers used in capture mode.
	capturedOutput struct {
		stdout bytes.Buffer
		stderr bytes.Buffer
	}
)

func newStreamingOutput(ctx *ExecutionContext) *executeOutput {
	out := &executeOutput{stdout: ctx.Stdout, stderr: ctx.Stderr}
	if out.stdout == nil {
		out.stdout = io.Discard
	}
	if out.stderr == nil {
		out.stderr = io.Discard
	}
	return out
}

func newCapturingOutput() (*executeOutput, *capturedOutput) {
	captured := &capturedOutput{}
	return &executeOutput{stdout: &captured.stdout, stderr: &captured.stderr}, captured
}

// fill copies the captured buffers onto result, if capture was used.
func (c *capturedOutput) fill(result *Result) *Result {
	if c != nil {
		result.Output = c.stdout.String()
		result.ErrOutput = c.stderr.String()
	}
	return result
}
