package main

import (
	"os"

	"github.com/beka-birhanu/vinom-mazegen/cmd/mazegen/commands"
)

// Version information - set during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	root := commands.NewRootCmd()
	commands.SetVersionInfo(root, version, commit, date)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
