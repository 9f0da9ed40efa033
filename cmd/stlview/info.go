package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/edu3d/stlview/pkg/analysis"
	"github.com/edu3d/stlview/pkg/loader"
	"github.com/edu3d/stlview/pkg/stl"
)

var infoCmd = &cobra.Command{
	Use:   "info <file|url>",
	Short: "Display general information about an STL model",
	Long:  "Show format, dimensions, triangle count, surface area, volume and edge statistics.",
	Args:  cobra.ExactArgs(1),
	Run:   runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func loadModel(ref string) *stl.Model {
	buf, err := loader.New(buildSink()).Load(context.Background(), ref)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", ref, err)
		os.Exit(1)
	}

	model, err := stl.Parse(buf)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing STL data: %v\n", err)
		os.Exit(1)
	}
	return model
}

func runInfo(cmd *cobra.Command, args []string) {
	ref := args[0]
	model := loadModel(ref)
	result := analysis.Summarize(model)

	fmt.Println("STL Model Information")
	fmt.Println("=====================")
	if result.Name != "" {
		fmt.Printf("Name: %s\n", result.Name)
	}
	fmt.Printf("Source: %s\n", ref)
	fmt.Printf("Format: %s\n\n", result.Format)

	fmt.Println("Model Statistics:")
	fmt.Printf("  Triangles: %d\n", result.TriangleCount)
	fmt.Printf("  Edges: %d\n", result.EdgeCount)
	fmt.Printf("  Surface Area: %.6f square units\n", result.SurfaceArea)
	fmt.Printf("  Volume: %.6f cubic units\n\n", result.Volume)

	fmt.Println("Bounding Box:")
	fmt.Printf("  Min: %s\n", analysis.FormatVector(result.BoundingBox.Min))
	fmt.Printf("  Max: %s\n", analysis.FormatVector(result.BoundingBox.Max))
	fmt.Printf("  Center: %s\n\n", analysis.FormatVector(result.BoundingBox.Center()))

	fmt.Println("Dimensions:")
	fmt.Printf("  Width (X): %.6f units\n", result.Dimensions.X)
	fmt.Printf("  Depth (Y): %.6f units\n", result.Dimensions.Y)
	fmt.Printf("  Height (Z): %.6f units\n", result.Dimensions.Z)
	fmt.Printf("  Diagonal: %.6f units\n\n", result.BoundingBox.Diagonal())

	fmt.Println("Edge Lengths:")
	fmt.Printf("  Minimum: %.6f units\n", result.MinEdgeLength)
	fmt.Printf("  Maximum: %.6f units\n", result.MaxEdgeLength)
	fmt.Printf("  Average: %.6f units\n", result.AvgEdgeLength)
}
