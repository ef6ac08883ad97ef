// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the repoutils command tree.
//
// Commands are built from an App, the composition root that holds the
// injected services (configuration, toolchain lookup, output streams).
// Handlers never call os.Exit; non-zero exits travel back to Execute as an
// *ExitError.
package cmd
