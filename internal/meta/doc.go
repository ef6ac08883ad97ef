// SPDX-License-Identifier: MPL-2.0

// Package meta loads the project metadata record (name, version, package
// path, authorship, license, URL and declared commands) from a declarative
// __meta__.cue or __meta__.toml file.
package meta
