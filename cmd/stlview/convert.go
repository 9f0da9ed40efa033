package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/edu3d/stlview/pkg/stl"
)

var convertFormat string

var convertCmd = &cobra.Command{
	Use:   "convert <file|url> <output>",
	Short: "Convert an STL model between binary and ASCII encoding",
	Long: `Re-encode an STL model. By default the output format is the opposite
of the input format; use --format to force binary or ascii.`,
	Args: cobra.ExactArgs(2),
	Run:  runConvert,
}

func init() {
	convertCmd.Flags().StringVarP(&convertFormat, "format", "f", "", "target format: binary or ascii (default: opposite of input)")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) {
	ref, output := args[0], args[1]
	model := loadModel(ref)

	target := stl.FormatBinary
	switch convertFormat {
	case "binary":
	case "ascii":
		target = stl.FormatASCII
	case "":
		if model.Format == stl.FormatBinary {
			target = stl.FormatASCII
		}
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown format %q (expected binary or ascii)\n", convertFormat)
		os.Exit(1)
	}

	out, err := os.Create(output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", output, err)
		os.Exit(1)
	}
	defer out.Close()

	if target == stl.FormatBinary {
		err = stl.WriteBinary(out, model)
	} else {
		err = stl.WriteASCII(out, model)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", output, err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %s (%s, %d triangles)\n", output, target, model.TriangleCount())
}
