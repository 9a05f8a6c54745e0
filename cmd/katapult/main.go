package main

import (
	"os"

	"github.com/trebuchet-org/katapult/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
