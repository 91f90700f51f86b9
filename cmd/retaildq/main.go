package main

import (
	"os"

	"github.com/fieldline/retaildq/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
