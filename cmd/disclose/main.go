package main

import (
	"fmt"
	"os"

	"github.com/meridian-labs/disclose-cli/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
