// SPDX-License-Identifier: MPL-2.0

// Package bootstrap turns a repository's declared commands into an explicit
// registry and dispatches "<command> [args...]" to the matching handler.
//
// A Module is built once at startup and passed by reference to Dispatch;
// nothing is kept in package-level state.
package bootstrap
