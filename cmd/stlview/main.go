package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/edu3d/stlview/version"
)

var rootCmd = &cobra.Command{
	Use:   "stlview",
	Short: "A CLI tool for viewing, inspecting and converting STL files",
	Long: `stlview loads STL (Stereolithography) files in both ASCII and binary
format, from local paths or URLs, and renders, inspects or converts them.
Models are validated on load; truncated or malformed files are rejected
with a precise diagnosis rather than a partial mesh.`,
	Version: version.GetFullVersion(),
}

var verbose bool

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log pipeline events to stderr")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
