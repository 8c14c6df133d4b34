package main

import (
	"fmt"
	"os"

	"github.com/open-cli-collective/aicss-cli/internal/cmd/root"
)

func main() {
	cmd := root.NewCmdRoot()
	if err := cmd.Execute(); err != nil {
		// The root command silences cobra's own reporting.
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
