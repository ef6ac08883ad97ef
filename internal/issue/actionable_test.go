// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *ActionableError
		expected string
	}{
		{
			name:     "operation only",
			err:      &ActionableError{Operation: "load metadata"},
			expected: "failed to load metadata",
		},
		{
			name:     "operation with resource",
			err:      &ActionableError{Operation: "load metadata", Resource: "./__meta__.cue"},
			expected: "failed to load metadata: ./__meta__.cue",
		},
		{
			name:     "operation with cause",
			err:      &ActionableError{Operation: "parse config", Cause: errors.New("syntax error at line 5")},
			expected: "failed to parse config: syntax error at line 5",
		},
		{
			name: "full context",
			err: &ActionableError{
				Operation: "load requirements",
				Resource:  "./requirements.txt",
				Cause:     errors.New("file not found"),
			},
			expected: "failed to load requirements: ./requirements.txt: file not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestActionableError_Unwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("underlying error")
	err := &ActionableError{Operation: "test", Cause: cause}

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}

	if (&ActionableError{Operation: "test"}).Unwrap() != nil {
		t.Error("Unwrap() should return nil when no cause")
	}
}

func TestActionableError_Format(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *ActionableError
		verbose  bool
		contains []string
		excludes []string
	}{
		{
			name: "suggestions are listed",
			err: &ActionableError{
				Operation:   "load metadata",
				Resource:    "./__meta__.cue",
				Suggestions: []string{"Run 'repoutils show'", "Check file permissions"},
			},
			contains: []string{
				"failed to load metadata",
				"• Run 'repoutils show'",
				"• Check file permissions",
			},
		},
		{
			name:     "no error chain in non-verbose",
			err:      &ActionableError{Operation: "parse config", Cause: errors.New("syntax error")},
			contains: []string{"failed to parse config: syntax error"},
			excludes: []string{"Error chain:"},
		},
		{
			name: "nested error chain verbose",
			err: &ActionableError{
				Operation: "run release",
				Cause: &ActionableError{
					Operation: "run step",
					Cause:     errors.New("exit status 1"),
				},
			},
			verbose: true,
			contains: []string{
				"Error chain:",
				"1. failed to run step: exit status 1",
				"2. exit status 1",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := tt.err.Format(tt.verbose)
			for _, s := range tt.contains {
				if !strings.Contains(got, s) {
					t.Errorf("Format() missing %q\ngot:\n%s", s, got)
				}
			}
			for _, s := range tt.excludes {
				if strings.Contains(got, s) {
					t.Errorf("Format() should not contain %q\ngot:\n%s", s, got)
				}
			}
		})
	}
}

func TestErrorContext_Build(t *testing.T) {
	t.Parallel()

	if NewErrorContext().WithResource("some/path").Build() != nil {
		t.Error("Build() without operation should return nil")
	}
	if NewErrorContext().BuildError() != nil {
		t.Error("BuildError() without operation should return a nil interface")
	}

	cause := errors.New("boom")
	ae := NewErrorContext().
		WithOperation("load requirements").
		WithResource("requirements.txt").
		WithSuggestion("first").
		WithSuggestions("second", "third").
		Wrap(cause).
		Build()

	if ae.Operation != "load requirements" || ae.Resource != "requirements.txt" {
		t.Errorf("unexpected operation/resource: %+v", ae)
	}
	if len(ae.Suggestions) != 3 || !ae.HasSuggestions() {
		t.Errorf("Suggestions = %v, want 3 entries", ae.Suggestions)
	}
	if !errors.Is(ae, cause) {
		t.Error("built error should wrap the cause")
	}
}

func TestWrapWithContext(t *testing.T) {
	t.Parallel()

	if WrapWithContext(nil, "op", "res") != nil {
		t.Error("WrapWithContext(nil) should return nil")
	}

	cause := errors.New("denied")
	err := WrapWithContext(cause, "remove stub", "pkg/__init__.py")
	if got, want := err.Error(), "failed to remove stub: pkg/__init__.py: denied"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestIssueOf(t *testing.T) {
	t.Parallel()

	inner := NewErrorContext().
		WithOperation("locate python3").
		WithIssue(ToolNotFoundId).
		Wrap(errors.New("not found")).
		BuildError()
	outer := NewErrorContext().
		WithOperation("run tests").
		Wrap(fmt.Errorf("prepare: %w", inner)).
		BuildError()

	if id, ok := IssueOf(outer); !ok || id != ToolNotFoundId {
		t.Errorf("IssueOf() = %v, %v, want ToolNotFoundId", id, ok)
	}
	if _, ok := IssueOf(errors.New("plain")); ok {
		t.Error("IssueOf(plain) should not find an issue")
	}
	if _, ok := IssueOf(nil); ok {
		t.Error("IssueOf(nil) should not find an issue")
	}
}
