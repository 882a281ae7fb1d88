// Package main provides the leapexpr command.
package main

import (
	"os"

	"github.com/leapstack-labs/leapexpr/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
