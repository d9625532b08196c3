// This is the main entry point for the gedtree CLI.
// Build with: go build -o bin/gedtree ./cmd/gedtree
// Usage: gedtree --file tree.ged <command> [options]
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
