// Command create-page scaffolds a presentation-layer page in the Flutter
// project in the working directory.
package main

import (
	"os"

	"github.com/flutterkit-labs/flutterkit/internal/cli"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := cli.ExecutePage(version, commit, date); err != nil {
		os.Exit(1)
	}
}
