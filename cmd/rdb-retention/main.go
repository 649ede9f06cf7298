package main

import (
	"os"

	"github.com/raoulx24/rdb-retention/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
