// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"io"
	"log/slog"

	"github.com/charmbracelet/log"
)

// setupLogging routes slog through a charmbracelet/log handler on w.
func setupLogging(w io.Writer, verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(w, log.Options{
		Prefix: "repoutils",
		Level:  level,
	})
	slog.SetDefault(slog.New(logger))
	return logger
}
