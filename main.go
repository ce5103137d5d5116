// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/dotcargo/dotcargo/cmd/dotcargo"

func main() {
	cmd.Execute()
}
