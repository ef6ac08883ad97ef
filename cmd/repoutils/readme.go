// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/repoutils/repoutils/internal/meta"
	"github.com/repoutils/repoutils/internal/readme"

	"github.com/spf13/cobra"
)

func newReadmeCommand(app *App) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "readme",
		Short: "Preview the long description",
		Long: `Show which README becomes the package long description and preview it.
Candidates, in order: README.md, README.rst, README.txt, README. Without one,
the metadata description is used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root := app.Root()
			m, err := meta.Load(root, app.opts.metaPath)
			if err != nil {
				return err
			}
			desc := readme.Select(root, m.Description)

			source := desc.File
			if source == "" {
				source = "metadata description"
			}
			fprintf(app.stderr, "%s %s (%s)\n", SubtitleStyle.Render("Source:"), source, desc.ContentType)

			if raw {
				fprintf(app.stdout, "%s", desc.Text)
				return nil
			}
			rendered, err := readme.Render(desc, app.loadConfig(cmd.Context()).UI.ColorScheme.GlamourStyle())
			if err != nil {
				return err
			}
			fprintf(app.stdout, "%s", rendered)
			return nil
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "print the text without rendering")
	return cmd
}
