// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"

	"github.com/repoutils/repoutils/internal/hooks"
	"github.com/repoutils/repoutils/internal/project"

	"github.com/spf13/cobra"
)

func newBuildCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Generate pyproject.toml and build distributions",
		Long: `Generate __init__.py stubs and pyproject.toml, then run the configured
build command (default: {python} -m build --sdist --wheel). The stubs are
removed afterwards.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return app.withPrepared(ctx, func(runner *hooks.Runner, vars hooks.Vars) error {
				return runner.Build(ctx, app.loadConfig(ctx).Build, vars)
			})
		},
	}
}

func newTestCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "test [-- args...]",
		Short: "Run the test suite",
		Long: `Run the configured test command (default: {python} -m pytest) in the
repository root. Arguments after -- are passed through.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := app.openProject(ctx)
			if err != nil {
				return err
			}
			runner, vars, err := app.newRunner(ctx, p)
			if err != nil {
				return err
			}
			return runner.Test(ctx, app.loadConfig(ctx).Test, vars, args)
		},
	}
}

func newUploadCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "upload",
		Short: "Build, publish and tag a release",
		Long: `Publish a release. Steps, in order:

  1. remove previous builds (dist/, errors ignored)
  2. {python} -m build --sdist --wheel
  3. twine upload dist/*
  4. git tag v{version}
  5. git push --tags

The first failing step stops the sequence and its exit code becomes the
exit code of repoutils. Nothing is rolled back. The steps can be changed
with release.steps in the configuration.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return app.withPrepared(ctx, func(runner *hooks.Runner, vars hooks.Vars) error {
				return runner.Upload(ctx, app.loadConfig(ctx).Release, vars)
			})
		},
	}
}

// withPrepared opens the project, generates stubs and pyproject.toml, and
// runs fn while they exist.
func (a *App) withPrepared(ctx context.Context, fn func(*hooks.Runner, hooks.Vars) error) error {
	p, err := a.openProject(ctx)
	if err != nil {
		return err
	}
	runner, vars, err := a.newRunner(ctx, p)
	if err != nil {
		return err
	}

	prepared, err := p.Prepare(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = prepared.Close() }()

	if err := a.savePyproject(ctx, p, prepared); err != nil {
		return err
	}
	return fn(runner, vars)
}

func (a *App) newRunner(ctx context.Context, p *project.Project) (*hooks.Runner, hooks.Vars, error) {
	python, err := a.python(ctx)
	if err != nil {
		return nil, hooks.Vars{}, err
	}
	runner := hooks.NewRunner(p.Root)
	runner.Tools = a.Tools
	runner.Stdout = a.stdout
	runner.Stderr = a.stderr
	return runner, hooks.Vars{Python: python, Name: p.Meta.Name, Version: p.Meta.Version}, nil
}
