// SPDX-License-Identifier: MIT
//
// ncubectl is a thin command-line front end over jsonio/persist/cube: import
// a cube document into a SQL store, export it back out, resolve a coordinate
// against a stored cube, or print its content hash.
package main

import (
	"fmt"
	"os"

	"github.com/katalvlaran/ncube/cmd/ncubectl/commands"
)

func main() {
	root := commands.NewRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
