// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/repoutils/repoutils/internal/bootstrap"
	"github.com/repoutils/repoutils/internal/issue"
	"github.com/repoutils/repoutils/internal/meta"
	"github.com/repoutils/repoutils/pkg/types"

	"github.com/spf13/cobra"
)

func newRunCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <command> [args...]",
		Short: "Run one of the package's commands",
		Long: `Run a command declared in the metadata file. Everything after the command
name is passed to it unchanged.

Commands are declared under "commands" in __meta__.cue or __meta__.toml:

  [commands.define]
  description = "Print a definition"
  callable = ".cli:define"      # package_name.cli.define(*args)

  [commands.hello]
  script = 'echo "hello $1"'      # POSIX shell, args as $1, $2, ...`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mod, err := app.loadModule(cmd.Context())
			if err != nil {
				return err
			}
			out, err := mod.Dispatch(cmd.Context(), args)
			fprintf(app.stdout, "%s", out)
			if err != nil {
				return dispatchError(err)
			}
			return nil
		},
	}
	cmd.Flags().SetInterspersed(false)
	return cmd
}

func newCommandsCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "commands",
		Short: "List the package's commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mod, err := app.loadModule(cmd.Context())
			if err != nil {
				return err
			}

			fprintln(app.stdout, TitleStyle.Render("Commands of "+mod.Name))
			if mod.Commands.Len() == 0 {
				fprintf(app.stdout, "  %s\n", SubtitleStyle.Render("(none declared)"))
				return nil
			}
			for _, name := range mod.Commands.Names() {
				desc := mod.Commands.Description(name)
				if desc == "" {
					fprintf(app.stdout, "  %s\n", CmdStyle.Render(name))
					continue
				}
				fprintf(app.stdout, "  %s  %s\n", CmdStyle.Render(name), SubtitleStyle.Render(desc))
			}
			return nil
		},
	}
}

// loadModule builds the package's command registry from its metadata.
func (a *App) loadModule(ctx context.Context) (*bootstrap.Module, error) {
	root := a.Root()
	m, err := meta.Load(root, a.opts.metaPath)
	if err != nil {
		return nil, err
	}
	checkMetaLocation(root, m)

	var python string
	if hasCallables(m) {
		if python, err = a.python(ctx); err != nil {
			return nil, err
		}
	}
	return bootstrap.NewModule(m, bootstrap.Options{Root: root, Python: python})
}

// checkMetaLocation warns when the metadata file sits inside a different
// top-level package than the one its path field names.
func checkMetaLocation(root string, m *meta.Meta) {
	if m.File == "" {
		return
	}
	abs, err := filepath.Abs(m.File)
	if err != nil {
		return
	}
	owner, err := bootstrap.PackageName(abs, root)
	if err != nil {
		return
	}
	declared, _, _ := strings.Cut(filepath.ToSlash(m.Path), "/")
	if owner != declared {
		slog.Warn("metadata file lives outside the package it describes",
			"file", m.File, "package", owner, "path", m.Path)
	}
}

func hasCallables(m *meta.Meta) bool {
	for _, c := range m.Commands {
		if c.Callable != "" {
			return true
		}
	}
	return false
}

// dispatchError turns a command that ran and exited non-zero into an
// *ExitError carrying its status, and an unknown name into suggestions.
func dispatchError(err error) error {
	var handlerErr *bootstrap.HandlerError
	if errors.As(err, &handlerErr) && handlerErr.Cause == nil && handlerErr.ExitCode > 0 {
		return &ExitError{Code: types.ExitCode(handlerErr.ExitCode), Err: err}
	}

	var unknown *bootstrap.UnknownCommandError
	if !errors.As(err, &unknown) {
		return err
	}
	ec := issue.NewErrorContext().
		WithOperation("run command").
		WithIssue(issue.UnknownCommandId).
		WithResource(unknown.Name).
		Wrap(err)
	if len(unknown.Suggestions) > 0 {
		ec = ec.WithSuggestion(fmt.Sprintf("Did you mean: %s", strings.Join(unknown.Suggestions, ", ")))
	}
	return ec.WithSuggestion("Run 'repoutils commands' to list the available commands").BuildError()
}
