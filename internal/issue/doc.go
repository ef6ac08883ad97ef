// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError carries the failed operation, the resource involved and
// remediation hints. The issue catalog holds longer Markdown help pages for
// the failures users hit most often (missing metadata, missing requirements,
// missing toolchain executables), rendered to the terminal with glamour.
package issue
