// Command mockstore operates a flat-file resource store from the shell.
package main

import (
	"os"

	"github.com/mesh-intelligence/mockstore/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
