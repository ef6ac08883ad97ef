// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/repoutils/repoutils/cmd/repoutils"

func main() {
	cmd.Execute()
}
