// staffctl is the command-line client for the staffd API.
package main

import (
	"github.com/bitswalk/staffdb/src/staffctl/internal/cmd"
)

func main() {
	cmd.Execute()
}
