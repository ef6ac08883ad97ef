// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"

	"github.com/repoutils/repoutils/internal/issue"
	"github.com/repoutils/repoutils/internal/packaging"
	"github.com/repoutils/repoutils/internal/project"

	"github.com/spf13/cobra"
)

func newGenerateCommand(app *App) *cobra.Command {
	var toStdout bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write pyproject.toml for the build backend",
		Long: `Write a pyproject.toml (setuptools backend) assembled from the project
metadata. The file starts with a generated-code header; a pyproject.toml
without that header is never overwritten.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.openProject(cmd.Context())
			if err != nil {
				return err
			}
			prepared, err := p.Prepare(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = prepared.Close() }()

			if toStdout {
				return prepared.Config.WritePyproject(app.stdout)
			}
			return app.savePyproject(cmd.Context(), p, prepared)
		},
	}
	cmd.Flags().BoolVar(&toStdout, "stdout", false, "print to stdout instead of writing pyproject.toml")
	return cmd
}

func (a *App) savePyproject(_ context.Context, p *project.Project, prepared *project.Prepared) error {
	path := p.PyprojectPath()
	if err := packaging.SavePyproject(prepared.Config, path); err != nil {
		ec := issue.NewErrorContext().
			WithOperation("write build configuration").
			WithResource(path).
			Wrap(err)
		if errors.Is(err, packaging.ErrForeignPyproject) {
			ec = ec.WithSuggestions(
				"Move the hand-written pyproject.toml aside, or",
				"Run 'repoutils generate --stdout' and merge the output by hand",
			)
		}
		return ec.BuildError()
	}
	fprintf(a.stdout, "%s Wrote %s\n", SuccessStyle.Render("✓"), path)
	return nil
}
