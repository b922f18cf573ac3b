package main

import (
	"os"

	"github.com/bitdevs-tools/radar-cli/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
