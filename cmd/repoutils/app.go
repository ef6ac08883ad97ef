// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/repoutils/repoutils/internal/config"
	"github.com/repoutils/repoutils/internal/packaging"
	"github.com/repoutils/repoutils/internal/project"
	"github.com/repoutils/repoutils/internal/toolchain"
)

type (
	// App wires CLI services and shared dependencies. All Cobra handlers
	// receive an App reference and go through it for configuration,
	// toolchain lookup and output.
	App struct {
		Config ConfigProvider
		Tools  *toolchain.Resolver
		stdout io.Writer
		stderr io.Writer

		opts rootOptions
		cfg  *config.Config
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config ConfigProvider
		Tools  *toolchain.Resolver
		Stdout io.Writer
		Stderr io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// rootOptions are the values of the global flags.
	rootOptions struct {
		root       string
		metaPath   string
		configPath string
		verbose    bool
	}
)

// NewApp creates an App, filling unset dependencies with production defaults.
func NewApp(deps Dependencies) *App {
	app := &App{
		Config: deps.Config,
		Tools:  deps.Tools,
		stdout: deps.Stdout,
		stderr: deps.Stderr,
	}
	if app.Config == nil {
		app.Config = config.NewProvider()
	}
	if app.Tools == nil {
		app.Tools = toolchain.NewResolver()
	}
	if app.stdout == nil {
		app.stdout = os.Stdout
	}
	if app.stderr == nil {
		app.stderr = os.Stderr
	}
	return app
}

// Root returns the absolute repository root selected by --root.
func (a *App) Root() string {
	root := a.opts.root
	if root == "" {
		root = "."
	}
	if abs, err := filepath.Abs(root); err == nil {
		return abs
	}
	return root
}

// loadConfig resolves the configuration once per invocation. A broken
// configuration is reported as a warning and the defaults are used, so
// that commands that do not depend on it keep working.
func (a *App) loadConfig(ctx context.Context) *config.Config {
	if a.cfg != nil {
		return a.cfg
	}
	cfg, err := a.Config.Load(ctx, a.loadOptions())
	if err != nil {
		a.warn(err)
		cfg = config.DefaultConfig()
	}
	a.cfg = cfg
	return cfg
}

func (a *App) loadOptions() config.LoadOptions {
	return config.LoadOptions{
		ConfigFilePath: a.opts.configPath,
		ProjectRoot:    a.Root(),
	}
}

// verbose reports whether verbose output was requested by flag or config.
func (a *App) verbose() bool {
	if a.opts.verbose {
		return true
	}
	return a.cfg != nil && a.cfg.UI.Verbose
}

// openProject loads the repository selected by the global flags.
func (a *App) openProject(ctx context.Context) (*project.Project, error) {
	cfg := a.loadConfig(ctx)
	return project.Open(ctx, a.Root(), project.Options{
		MetaPath: a.opts.metaPath,
		Settings: packaging.Settings{
			ConsoleScript:  cfg.ConsoleScript,
			Scripts:        cfg.Scripts,
			PythonRequires: cfg.PythonRequires,
			Classifiers:    cfg.Classifiers,
		},
	})
}

// python resolves the interpreter from REPOUTILS_PYTHON, config, or PATH.
func (a *App) python(ctx context.Context) (string, error) {
	path, err := a.Tools.Python(a.loadConfig(ctx).Python)
	if err != nil {
		return "", err
	}
	slog.DebugContext(ctx, "using python", "path", path)
	return path, nil
}

func (a *App) warn(err error) {
	fprintln(a.stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, a.opts.verbose))
}
