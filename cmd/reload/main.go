package main

import (
	"os"

	"github.com/grovetools/reload/cli"
	"github.com/grovetools/reload/cmd"
)

func main() {
	os.Exit(cli.Execute(cmd.NewRootCmd()))
}
