// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidCommandTemplate is returned when a command template is empty or whitespace-only.
	ErrInvalidCommandTemplate = errors.New("invalid command template")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// CommandTemplate is a shell command line with {python}, {name} and
	// {version} placeholders.
	CommandTemplate string

	// InvalidCommandTemplateError is returned for an empty command template.
	InvalidCommandTemplateError struct {
		Field string
		Value CommandTemplate
	}

	// InvalidConfigError collects field-level validation errors.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// Python overrides interpreter discovery (python3, then python).
		Python string `json:"python" mapstructure:"python"`
		// PythonRequires is the minimum interpreter version constraint.
		PythonRequires string `json:"python_requires" mapstructure:"python_requires"`
		// ConsoleScript names the installed console command. Empty means
		// "use the metadata path".
		ConsoleScript string `json:"console_script" mapstructure:"console_script"`
		// Scripts lists auxiliary installer scripts.
		Scripts []string `json:"scripts" mapstructure:"scripts"`
		// Classifiers are the trove classifiers of the distribution.
		Classifiers []string `json:"classifiers" mapstructure:"classifiers"`
		// Build configures the build hook
		Build BuildConfig `json:"build" mapstructure:"build"`
		// Test configures the test hook
		Test TestConfig `json:"test" mapstructure:"test"`
		// Release configures the upload hook
		Release ReleaseConfig `json:"release" mapstructure:"release"`
		// UI configures the user interface
		UI UIConfig `json:"ui" mapstructure:"ui"`
	}

	// BuildConfig configures how distributions are built.
	BuildConfig struct {
		Command CommandTemplate `json:"command" mapstructure:"command"`
	}

	// TestConfig configures the test hook.
	TestConfig struct {
		Command CommandTemplate `json:"command" mapstructure:"command"`
	}

	// ReleaseConfig configures the upload hook.
	ReleaseConfig struct {
		// Clean lists artifact paths removed before building.
		Clean []string `json:"clean" mapstructure:"clean"`
		// Steps run in order after cleaning.
		Steps []CommandTemplate `json:"steps" mapstructure:"steps"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		Verbose     bool        `json:"verbose" mapstructure:"verbose"`
	}
)

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// GlamourStyle maps the color scheme to a glamour style name.
func (cs ColorScheme) GlamourStyle() string {
	switch cs {
	case ColorSchemeLight:
		return "light"
	case ColorSchemeDark:
		return "dark"
	default:
		return "auto"
	}
}

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// String returns the raw template.
func (t CommandTemplate) String() string { return string(t) }

// Expand substitutes placeholders. Unknown placeholders are left untouched.
func (t CommandTemplate) Expand(vars map[string]string) string {
	out := string(t)
	for k, v := range vars {
		out = strings.ReplaceAll(out, "{"+k+"}", v)
	}
	return out
}

// Error implements the error interface for InvalidCommandTemplateError.
func (e *InvalidCommandTemplateError) Error() string {
	return fmt.Sprintf("%s: command template %q must not be empty", e.Field, e.Value)
}

// Unwrap returns ErrInvalidCommandTemplate for errors.Is() compatibility.
func (e *InvalidCommandTemplateError) Unwrap() error { return ErrInvalidCommandTemplate }

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// IsValid returns whether the Config has valid fields.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.UI.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	check := func(field string, t CommandTemplate) {
		if strings.TrimSpace(string(t)) == "" {
			errs = append(errs, &InvalidCommandTemplateError{Field: field, Value: t})
		}
	}
	check("build.command", c.Build.Command)
	check("test.command", c.Test.Command)
	for i, step := range c.Release.Steps {
		check(fmt.Sprintf("release.steps[%d]", i), step)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// DefaultClassifiers are the trove classifiers used when none are configured.
func DefaultClassifiers() []string {
	return []string{
		"Natural Language :: English",
		"Programming Language :: Python",
		"Programming Language :: Python :: 3",
		"Programming Language :: Python :: 3.6",
		"Programming Language :: Python :: 3.7",
		"Programming Language :: Python :: 3.8",
		"Programming Language :: Python :: 3.9",
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Python:         "",
		PythonRequires: ">=3.6",
		ConsoleScript:  "",
		Scripts:        []string{"install.py"},
		Classifiers:    DefaultClassifiers(),
		Build: BuildConfig{
			Command: "{python} -m build --sdist --wheel",
		},
		Test: TestConfig{
			Command: "{python} -m pytest",
		},
		Release: ReleaseConfig{
			Clean: []string{"dist"},
			Steps: []CommandTemplate{
				"{python} -m build --sdist --wheel",
				"twine upload dist/*",
				"git tag v{version}",
				"git push --tags",
			},
		},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
		},
	}
}
