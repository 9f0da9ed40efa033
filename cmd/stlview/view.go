package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/edu3d/stlview/internal/app"
)

var viewCmd = &cobra.Command{
	Use:   "view <file|url>",
	Short: "Open a model in the desktop viewport",
	Long: `Open an STL model in an interactive 3D viewport. The model may be a
local file path or an http(s) URL. Local files are watched and the
viewport reloads automatically when they change.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := app.Run(args[0], buildSink()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
