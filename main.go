// main is the entry point for the relic CLI.
package main

import (
	"os"

	"github.com/relicdev/relic/cmd"
	"github.com/relicdev/relic/internal/contract"
)

func main() {
	if err := cmd.Execute(); err != nil {
		contract.LogWarn("command failed", err)
		os.Exit(1)
	}
}
