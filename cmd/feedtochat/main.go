// Command feedtochat takes one URL, extracts its readable text, and hands
// it to an AI chat: prompt plus content on the clipboard, provider page in
// the browser. See internal/cli for the command definitions.
package main

import (
	"log/slog"
	"os"

	"feedtochat/internal/cli"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	cli.Version = version

	if err := cli.Execute(); err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}
