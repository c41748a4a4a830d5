package main

import (
	"os"

	"framefit/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
