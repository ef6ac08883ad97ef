// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"github.com/repoutils/repoutils/internal/bootstrap"
	"github.com/repoutils/repoutils/internal/hooks"
	"github.com/repoutils/repoutils/pkg/types"
)

// ExitError signals a non-zero exit code without forcing os.Exit in RunE handlers.
type ExitError struct {
	Code types.ExitCode
	Err  error
}

// Error returns the error message for ExitError.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// exitCodeFor maps err to the process exit code. Failing hook steps and
// command handlers report the code of the program that failed.
func exitCodeFor(err error) types.ExitCode {
	if err == nil {
		return 0
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	var stepErr *hooks.StepFailedError
	if errors.As(err, &stepErr) {
		return stepErr.ExitCode
	}

	var handlerErr *bootstrap.HandlerError
	if errors.As(err, &handlerErr) && handlerErr.ExitCode > 0 {
		return types.ExitCode(handlerErr.ExitCode)
	}

	return types.ExitCodeOf(err)
}
