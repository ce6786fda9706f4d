// Command userdir is a terminal client for a remote user directory.
package main

import (
	"context"
	"os"

	"github.com/dmitrijs2005/userdir/internal/client/cli"
)

func main() {
	if err := cli.Execute(context.Background()); err != nil {
		os.Exit(1)
	}
}
