// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/repoutils/repoutils/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the command tree for app.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "repoutils",
		Short: "Package a Python repository from declarative metadata",
		Long: TitleStyle.Render("repoutils") + SubtitleStyle.Render(" - Package a Python repository from declarative metadata") + `

repoutils reads __meta__.cue or __meta__.toml, requirements*.txt and the
README, generates a pyproject.toml for the build backend, and runs the
repository's test and release steps.

` + SubtitleStyle.Render("Examples:") + `
  repoutils show              Show the assembled build configuration
  repoutils build             Generate pyproject.toml and build distributions
  repoutils run define foo    Run the package's 'define' command with 'foo'
  repoutils upload            Build, upload, tag and push a release`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(app.stderr, app.opts.verbose)
			app.loadConfig(cmd.Context())
			if app.verbose() && !app.opts.verbose {
				setupLogging(app.stderr, true)
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&app.opts.root, "root", "C", ".", "repository root")
	flags.StringVar(&app.opts.metaPath, "meta", "", "metadata file (default: discovered __meta__.cue or __meta__.toml)")
	flags.StringVar(&app.opts.configPath, "config", "", "config file (default is the user config plus ./repoutils.cue)")
	flags.BoolVarP(&app.opts.verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)

	rootCmd.AddCommand(
		newShowCommand(app),
		newGenerateCommand(app),
		newBuildCommand(app),
		newTestCommand(app),
		newUploadCommand(app),
		newRunCommand(app),
		newCommandsCommand(app),
		newReadmeCommand(app),
		newConfigCommand(app),
	)
	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI and exits the process with the resulting code.
// This is called by main.main().
func Execute() {
	app := NewApp(Dependencies{})
	err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(func(w io.Writer, _ fang.Styles, err error) {
			fprintln(w, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, app.verbose()))
			if app.verbose() {
				renderIssue(w, err, app.loadConfig(context.Background()).UI.ColorScheme.GlamourStyle())
			}
		}),
	)
	os.Exit(int(exitCodeFor(err)))
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
