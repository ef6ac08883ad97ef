// SPDX-License-Identifier: MPL-2.0

package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/texttheater/golang-levenshtein/levenshtein"
	"golang.org/x/exp/slices"
)

// maxSuggestionDistance bounds how far a typo may be from a command name
// and still be suggested.
const maxSuggestionDistance = 2

var (
	// ErrUnknownCommand is the sentinel wrapped by UnknownCommandError.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrNoCommand is returned when Dispatch receives no arguments.
	ErrNoCommand = errors.New("no command given")
	// ErrDuplicateCommand is returned when a name is registered twice.
	ErrDuplicateCommand = errors.New("command already registered")
)

type (
	// Handler runs one command. The returned string is the command's
	// visible output.
	Handler func(ctx context.Context, args []string) (string, error)

	// Registry maps command names to handlers.
	Registry struct {
		handlers     map[string]Handler
		descriptions map[string]string
	}

	// UnknownCommandError reports a name with no handler, plus registered
	// names that are close to it.
	UnknownCommandError struct {
		Name        string
		Suggestions []string
	}
)

// Error implements the error interface.
func (e *UnknownCommandError) Error() string {
	msg := fmt.Sprintf("unknown command %q", e.Name)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(e.Suggestions, ", "))
	}
	return msg
}

// Unwrap returns ErrUnknownCommand for errors.Is.
func (e *UnknownCommandError) Unwrap() error { return ErrUnknownCommand }

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		handlers:     make(map[string]Handler),
		descriptions: make(map[string]string),
	}
}

// Register adds a handler under name.
func (r *Registry) Register(name, description string, h Handler) error {
	if name == "" || h == nil {
		return fmt.Errorf("register %q: name and handler are required", name)
	}
	if _, exists := r.handlers[name]; exists {
		return fmt.Errorf("%q: %w", name, ErrDuplicateCommand)
	}
	r.handlers[name] = h
	r.descriptions[name] = description
	return nil
}

// Lookup returns the handler registered under name.
func (r *Registry) Lookup(name string) (Handler, bool) {
	h, ok := r.handlers[name]
	return h, ok
}

// Description returns the description registered with name.
func (r *Registry) Description(name string) string {
	return r.descriptions[name]
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Len returns the number of registered commands.
func (r *Registry) Len() int {
	return len(r.handlers)
}

// Dispatch runs the handler named by args[0] with the remaining arguments.
func (r *Registry) Dispatch(ctx context.Context, args []string) (string, error) {
	if len(args) == 0 {
		return "", ErrNoCommand
	}
	h, ok := r.Lookup(args[0])
	if !ok {
		return "", &UnknownCommandError{Name: args[0], Suggestions: r.Suggest(args[0])}
	}
	return h(ctx, args[1:])
}

// Suggest returns registered names within a small edit distance of name,
// closest first and alphabetical among equals.
func (r *Registry) Suggest(name string) []string {
	type candidate struct {
		name     string
		distance int
	}
	var candidates []candidate
	for _, known := range r.Names() {
		d := levenshtein.DistanceForStrings(
			[]rune(strings.ToLower(name)),
			[]rune(strings.ToLower(known)),
			levenshtein.DefaultOptionsWithSub,
		)
		if d <= maxSuggestionDistance {
			candidates = append(candidates, candidate{known, d})
		}
	}
	slices.SortStableFunc(candidates, func(a, b candidate) int { return a.distance - b.distance })

	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.name
	}
	return out
}
