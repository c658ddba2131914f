package main

import (
	"os"

	"shakapacker-go/internal/cli"
)

var version = "dev"

func main() {
	os.Exit(cli.Execute("shakapacker-dev-server", version, false))
}
