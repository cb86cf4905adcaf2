package main

import (
	"os"

	"github.com/sitewire-labs/cableroute/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
