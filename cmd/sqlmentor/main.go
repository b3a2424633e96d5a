// Package main provides the sqlmentor CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/sqlmentor/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
