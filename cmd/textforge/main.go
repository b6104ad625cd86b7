package main

import (
	"os"

	"github.com/forge-ai/textforge/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
