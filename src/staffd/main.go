// staffd serves department and employee records over a REST API backed by
// an in-memory SQLite store.
package main

import (
	"github.com/bitswalk/staffdb/src/staffd/core"
)

func main() {
	core.Execute()
}
