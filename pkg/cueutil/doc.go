// SPDX-License-Identifier: MPL-2.0

// Package cueutil decodes CUE documents against an embedded schema.
//
// Every CUE-backed file in repoutils (project metadata, tool configuration)
// goes through the same flow:
//
//  1. Compile the embedded schema
//  2. Compile user data and unify it with a schema definition
//  3. Validate and decode to a Go struct
//
// Errors carry the file name and the JSON-path of the offending field:
//
//	__meta__.cue: commands.define.callable: invalid value "x" (out of bound =~"...")
package cueutil
