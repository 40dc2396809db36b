// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/mkoncek/xmvn/cmd/xmvn"

func main() {
	cmd.Execute()
}
