// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"os"
	"strings"

	"golang.org/x/exp/slices"
)

// EnvToSlice converts an env map into sorted KEY=VALUE pairs.
func EnvToSlice(env map[string]string) []string {
	out := make([]string, 0, len(env))
	for k, v := range env {
		out = append(out, k+"="+v)
	}
	slices.Sort(out)
	return out
}

// buildEnv returns the host environment with extra layered on top.
func buildEnv(extra map[string]string) []string {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		env[k] = v
	}
	for k, v := range extra {
		env[k] = v
	}
	return EnvToSlice(env)
}
