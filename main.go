package main

import (
	"os"

	"github.com/rfoley/loglens/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
