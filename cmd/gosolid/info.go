package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gosolid/pkg/analysis"
)

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Display general information about a model",
	Long:  "Show comprehensive information including topology, dimensions, surface area, volume and edge statistics.",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	filename := args[0]

	solid, err := loadSolid(filename)
	if err != nil {
		return err
	}

	result := analysis.AnalyzeSolid(solid)
	out := cmd.OutOrStdout()
	p := cfg.Precision

	fmt.Fprintln(out, "Model Information")
	fmt.Fprintln(out, "=================")
	fmt.Fprintf(out, "File: %s\n\n", filename)

	fmt.Fprintln(out, "Topology:")
	fmt.Fprintf(out, "  Vertices: %d\n", result.VertexCount)
	fmt.Fprintf(out, "  Edges: %d\n", result.EdgeCount)
	fmt.Fprintf(out, "  Triangles: %d\n", result.TriangleCount)
	fmt.Fprintf(out, "  Euler characteristic: %d\n", result.Euler)
	fmt.Fprintf(out, "  Watertight: %t\n", result.Watertight)
	if result.BoundaryEdges > 0 {
		fmt.Fprintf(out, "  Boundary edges: %d\n", result.BoundaryEdges)
	}
	if result.NonManifoldEdges > 0 {
		fmt.Fprintf(out, "  Non-manifold edges: %d\n", result.NonManifoldEdges)
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "Bounding Box:")
	fmt.Fprintf(out, "  Min: %s\n", analysis.FormatVector(result.BoundingBox.Min, p))
	fmt.Fprintf(out, "  Max: %s\n", analysis.FormatVector(result.BoundingBox.Max, p))
	fmt.Fprintf(out, "  Center: %s\n\n", analysis.FormatVector(result.BoundingBox.Center(), p))

	fmt.Fprintln(out, "Dimensions:")
	fmt.Fprintf(out, "  Width (X): %s\n", analysis.FormatMeasurement(result.Dimensions.X, "units", p))
	fmt.Fprintf(out, "  Depth (Y): %s\n", analysis.FormatMeasurement(result.Dimensions.Y, "units", p))
	fmt.Fprintf(out, "  Height (Z): %s\n", analysis.FormatMeasurement(result.Dimensions.Z, "units", p))
	fmt.Fprintf(out, "  Diagonal: %s\n\n", analysis.FormatMeasurement(result.BoundingBox.Diagonal(), "units", p))

	fmt.Fprintln(out, "Measurements:")
	fmt.Fprintf(out, "  Surface Area: %s\n", analysis.FormatMeasurement(result.SurfaceArea, "square units", p))
	if cfg.AutoOrient {
		fmt.Fprintf(out, "  Volume: %s\n", analysis.FormatMeasurement(result.Volume, "cubic units", p))
	} else {
		fmt.Fprintf(out, "  Volume: %s (solid not oriented)\n", analysis.FormatMeasurement(result.Volume, "cubic units", p))
	}
	fmt.Fprintf(out, "  Vertex center: %s\n\n", analysis.FormatVector(solid.Center(), p))

	fmt.Fprintln(out, "Edge Lengths:")
	fmt.Fprintf(out, "  Minimum: %s\n", analysis.FormatMeasurement(result.MinEdgeLength, "units", p))
	fmt.Fprintf(out, "  Maximum: %s\n", analysis.FormatMeasurement(result.MaxEdgeLength, "units", p))
	fmt.Fprintf(out, "  Average: %s\n", analysis.FormatMeasurement(result.AvgEdgeLength, "units", p))
	return nil
}
