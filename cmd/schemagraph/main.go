// Package main provides the schemagraph CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/schemagraph/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
