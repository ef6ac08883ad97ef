// SPDX-License-Identifier: MPL-2.0

// Package packaging assembles the build configuration handed to the Python
// build backend and renders it as a generated pyproject.toml.
//
// Package discovery follows setuptools' find_packages: a directory is a
// package when it holds an __init__.py and its name has no dot; discovery
// does not descend into directories that are not packages; exclusion
// patterns are shell globs matched against the dotted package name.
package packaging
