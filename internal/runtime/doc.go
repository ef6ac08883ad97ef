// SPDX-License-Identifier: MPL-2.0

// Package runtime executes external work for repoutils.
//
// Two runtimes are available:
//   - virtual: runs POSIX shell text in an embedded interpreter (mvdan/sh), so
//     globs like dist/* expand the same way on every platform
//   - native: runs a program directly with an argument vector
//
// Both implement Runtime. Execute streams output to the ExecutionContext
// writers; ExecuteCapture buffers it and returns it on the Result.
package runtime
