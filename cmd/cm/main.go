// Command cm manages vCard contacts kept as plain files.
package main

import (
	"os"

	"github.com/roach88/cardbook/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(cli.GetExitCode(err))
	}
}
