// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"testing"

	"github.com/repoutils/repoutils/internal/bootstrap"
	"github.com/repoutils/repoutils/internal/hooks"
	"github.com/repoutils/repoutils/pkg/types"
)

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want types.ExitCode
	}{
		{name: "nil", err: nil, want: 0},
		{name: "plain error", err: errors.New("boom"), want: 1},
		{name: "exit error", err: &ExitError{Code: 3}, want: 3},
		{
			name: "wrapped step failure",
			err:  fmt.Errorf("upload: %w", &hooks.StepFailedError{Hook: "upload", Step: "git push --tags", ExitCode: 128}),
			want: 128,
		},
		{name: "handler failure", err: &bootstrap.HandlerError{Command: "define", ExitCode: 2}, want: 2},
		{name: "handler without exit code", err: &bootstrap.HandlerError{Command: "define", Cause: errors.New("x")}, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestExitError(t *testing.T) {
	t.Parallel()

	cause := errors.New("cause")
	err := &ExitError{Code: 2, Err: cause}
	if err.Error() != "cause" || !errors.Is(err, cause) {
		t.Errorf("ExitError = %v", err)
	}
	if (&ExitError{Code: 4}).Error() != "exit status 4" {
		t.Errorf("Error() = %q", (&ExitError{Code: 4}).Error())
	}
}
