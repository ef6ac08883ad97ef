// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/repoutils/repoutils/internal/config"
	"github.com/repoutils/repoutils/internal/issue"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `repoutils config` command tree.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage repoutils configuration",
		Long: `Manage repoutils configuration.

Configuration is merged from, in order:
  - the user file (Linux: ~/.config/repoutils/config.cue,
    macOS: ~/Library/Application Support/repoutils/config.cue,
    Windows: %APPDATA%\repoutils\config.cue)
  - ./repoutils.cue in the repository root
  - REPOUTILS_* environment variables

--config replaces both files.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd.Context(), app)
		},
	})

	var project bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create a default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(app, project)
		},
	}
	initCmd.Flags().BoolVar(&project, "project", false, "write ./repoutils.cue in the repository root instead of the user file")
	cfgCmd.AddCommand(initCmd)

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file paths",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath(app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.Config.Load(cmd.Context(), app.loadOptions())
			if err != nil {
				return err
			}
			fprintf(app.stdout, "%s", config.GenerateCUE(cfg))
			return nil
		},
	})

	return cfgCmd
}

func showConfig(ctx context.Context, app *App) error {
	opts := app.loadOptions()
	cfg, err := app.Config.Load(ctx, opts)
	if err != nil {
		rendered, _ := issue.Get(issue.ConfigLoadFailedId).Render(config.DefaultConfig().UI.ColorScheme.GlamourStyle())
		fprintf(app.stderr, "%s", rendered)
		return err
	}

	keyStyle := CmdStyle
	valueStyle := SuccessStyle

	fprintln(app.stdout, TitleStyle.Render("Current Configuration"))
	fprintln(app.stdout)

	sources, _ := config.Sources(ctx, opts)
	if len(sources) == 0 {
		fprintf(app.stdout, "%s: %s\n", keyStyle.Render("Config files"), SubtitleStyle.Render("(using defaults)"))
	} else {
		fprintf(app.stdout, "%s:\n", keyStyle.Render("Config files"))
		for _, src := range sources {
			fprintf(app.stdout, "  - %s\n", src)
		}
	}
	fprintln(app.stdout)

	python := cfg.Python
	if python == "" {
		python = "(auto: python3, python)"
	}
	fprintf(app.stdout, "%s: %s\n", keyStyle.Render("python"), valueStyle.Render(python))
	fprintf(app.stdout, "%s: %s\n", keyStyle.Render("python_requires"), valueStyle.Render(cfg.PythonRequires))
	script := cfg.ConsoleScript
	if script == "" {
		script = "(metadata path)"
	}
	fprintf(app.stdout, "%s: %s\n", keyStyle.Render("console_script"), valueStyle.Render(script))
	printList(app, "scripts", cfg.Scripts)
	printList(app, "classifiers", cfg.Classifiers)

	fprintln(app.stdout)
	fprintf(app.stdout, "%s:\n", keyStyle.Render("build"))
	fprintf(app.stdout, "  command: %s\n", valueStyle.Render(cfg.Build.Command.String()))
	fprintf(app.stdout, "%s:\n", keyStyle.Render("test"))
	fprintf(app.stdout, "  command: %s\n", valueStyle.Render(cfg.Test.Command.String()))
	fprintf(app.stdout, "%s:\n", keyStyle.Render("release"))
	fprintf(app.stdout, "  clean: %s\n", valueStyle.Render(strings.Join(cfg.Release.Clean, ", ")))
	fprintln(app.stdout, "  steps:")
	for i, step := range cfg.Release.Steps {
		fprintf(app.stdout, "    %d. %s\n", i+1, valueStyle.Render(step.String()))
	}

	fprintln(app.stdout)
	fprintf(app.stdout, "%s:\n", keyStyle.Render("ui"))
	fprintf(app.stdout, "  color_scheme: %s\n", valueStyle.Render(cfg.UI.ColorScheme.String()))
	fprintf(app.stdout, "  verbose: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.UI.Verbose)))

	return nil
}

func printList(app *App, key string, values []string) {
	fprintf(app.stdout, "%s:\n", CmdStyle.Render(key))
	if len(values) == 0 {
		fprintf(app.stdout, "  %s\n", SubtitleStyle.Render("(none)"))
		return
	}
	for _, v := range values {
		fprintf(app.stdout, "  - %s\n", SuccessStyle.Render(v))
	}
}

func initConfig(app *App, project bool) error {
	path := filepath.Join(app.Root(), config.ProjectConfigFile)
	if !project {
		userPath, err := config.UserConfigPath()
		if err != nil {
			return err
		}
		path = userPath
	}

	created, err := config.CreateDefaultConfig(path)
	if err != nil {
		return issue.NewErrorContext().
			WithOperation("create config").
			WithResource(path).
			Wrap(err).
			BuildError()
	}
	if !created {
		fprintf(app.stdout, "%s Configuration already exists at %s\n", WarningStyle.Render("!"), path)
		return nil
	}
	fprintf(app.stdout, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), path)
	return nil
}

func showConfigPath(app *App) error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	userPath, err := config.UserConfigPath()
	if err != nil {
		return err
	}

	fprintf(app.stdout, "Config directory: %s\n", cfgDir)
	fprintf(app.stdout, "Config file: %s\n", userPath)
	fprintf(app.stdout, "Project config file: %s\n", filepath.Join(app.Root(), config.ProjectConfigFile))
	if app.opts.configPath != "" {
		fprintf(app.stdout, "Override (--config): %s\n", app.opts.configPath)
	}
	return nil
}
