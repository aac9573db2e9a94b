package main

import (
	"os"
)

// Build metadata, overridable with -ldflags "-X main.version=...".
var version = "0.1.0-dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
