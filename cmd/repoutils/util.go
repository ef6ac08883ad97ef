// SPDX-License-Identifier: MPL-2.0

package cmd

import "golang.org/x/exp/slices"

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
