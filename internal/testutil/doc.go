// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helpers for tests: Must* wrappers that fail the
// test on error, and Repo, a throwaway Python repository layout on disk.
package testutil
