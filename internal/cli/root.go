// Package cli implements the buybox CLI commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var formatFlag string

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "buybox",
	Short: "Parse real-estate mandate text into a structured buy box",
	Long:  "A CLI for the Deal Finder parse pipeline. Runs the deterministic local parser, no server or API key required.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "json", "Output format: json or text")
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
