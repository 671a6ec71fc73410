package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// version is overridden at build time via -ldflags "-X main.version=...".
var version = "dev"

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the scribe version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Printf("scribe %s (%s)\n", version, runtime.Version())
		},
	}
}
