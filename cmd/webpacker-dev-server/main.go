// Command webpacker-dev-server keeps the pre-rename entry point working.
package main

import (
	"os"

	"shakapacker-go/internal/cli"
)

var version = "dev"

func main() {
	os.Exit(cli.Execute("webpacker-dev-server", version, true))
}
