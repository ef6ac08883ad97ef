// SPDX-License-Identifier: MPL-2.0

// Package config handles repoutils configuration using Viper with CUE as the file format.
//
// Configuration is layered: built-in defaults, then the user file
// (~/.config/repoutils/config.cue or the platform equivalent), then the
// repository's own repoutils.cue, then REPOUTILS_* environment variables.
// An explicit --config path replaces both file layers.
//
// Files are validated against the embedded #Config schema (config_schema.cue).
package config
