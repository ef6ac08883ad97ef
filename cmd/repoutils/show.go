// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/repoutils/repoutils/internal/packaging"

	"github.com/spf13/cobra"
)

const (
	formatText = "text"
	formatJSON = "json"
)

func newShowCommand(app *App) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the assembled build configuration",
		Long: `Show the build configuration assembled from the metadata file, the
requirement lists and the README. __init__.py stubs are generated for
package discovery and removed again before the command returns.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != formatText && format != formatJSON {
				return fmt.Errorf("unknown format %q (valid: %s, %s)", format, formatText, formatJSON)
			}
			p, err := app.openProject(cmd.Context())
			if err != nil {
				return err
			}
			prepared, err := p.Prepare(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = prepared.Close() }()

			if format == formatJSON {
				data, err := prepared.Config.JSON()
				if err != nil {
					return err
				}
				fprintln(app.stdout, string(data))
				return nil
			}
			renderConfig(app.stdout, prepared.Config)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format (text, json)")
	return cmd
}

func renderConfig(w io.Writer, cfg *packaging.Config) {
	field := func(key, value string) {
		fprintf(w, "%s: %s\n", CmdStyle.Render(key), value)
	}
	list := func(key string, values []string) {
		fprintf(w, "%s:\n", CmdStyle.Render(key))
		if len(values) == 0 {
			fprintf(w, "  %s\n", SubtitleStyle.Render("(none)"))
			return
		}
		for _, v := range values {
			fprintf(w, "  - %s\n", v)
		}
	}

	fprintln(w, TitleStyle.Render(cfg.Name+" "+cfg.Version))
	fprintln(w, SubtitleStyle.Render(cfg.Description))
	fprintln(w)

	field("author", fmt.Sprintf("%s <%s>", cfg.Author, cfg.AuthorEmail))
	field("license", cfg.License)
	field("url", cfg.URL)
	field("python_requires", cfg.PythonRequires)
	field("long_description", fmt.Sprintf("%s (%d bytes)", cfg.LongDescriptionContentType, len(cfg.LongDescription)))
	for name, dir := range cfg.PackageDir {
		field("package_dir", name+" -> "+dir)
	}
	fprintln(w)

	list("packages", cfg.Packages)
	list("console_scripts", cfg.EntryPoints[packaging.ConsoleScriptsGroup])
	list("scripts", cfg.Scripts)
	list("install_requires", cfg.InstallRequires)

	fprintf(w, "%s:\n", CmdStyle.Render("extras_require"))
	if len(cfg.ExtrasRequire) == 0 {
		fprintf(w, "  %s\n", SubtitleStyle.Render("(none)"))
	}
	for _, name := range sortedKeys(cfg.ExtrasRequire) {
		fprintf(w, "  %s: %s\n", name, strings.Join(cfg.ExtrasRequire[name], ", "))
	}

	list("classifiers", cfg.Classifiers)
	field("commands", strings.Join(cfg.Commands, ", "))
}
