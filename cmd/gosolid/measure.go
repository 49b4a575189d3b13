package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gosolid/pkg/analysis"
	"github.com/philipparndt/gosolid/pkg/geometry"
)

var (
	point1X, point1Y, point1Z float64
	point2X, point2Y, point2Z float64
)

var measureCmd = &cobra.Command{
	Use:   "measure [file]",
	Short: "Measure distance between two points",
	Long: `Measure the straight-line distance between two 3D points.
The nearest vertices of the model are reported for both points, and whether
each point lies inside the solid.`,
	Args: cobra.ExactArgs(1),
	RunE: runMeasure,
}

func init() {
	rootCmd.AddCommand(measureCmd)

	measureCmd.Flags().Float64Var(&point1X, "x1", 0.0, "X coordinate of first point")
	measureCmd.Flags().Float64Var(&point1Y, "y1", 0.0, "Y coordinate of first point")
	measureCmd.Flags().Float64Var(&point1Z, "z1", 0.0, "Z coordinate of first point")
	measureCmd.Flags().Float64Var(&point2X, "x2", 0.0, "X coordinate of second point")
	measureCmd.Flags().Float64Var(&point2Y, "y2", 0.0, "Y coordinate of second point")
	measureCmd.Flags().Float64Var(&point2Z, "z2", 0.0, "Z coordinate of second point")

	measureCmd.MarkFlagsRequiredTogether("x1", "y1", "z1", "x2", "y2", "z2")
}

func runMeasure(cmd *cobra.Command, args []string) error {
	p1 := geometry.NewVector3(point1X, point1Y, point1Z)
	p2 := geometry.NewVector3(point2X, point2Y, point2Z)

	solid, err := loadSolid(args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	prec := cfg.Precision

	fmt.Fprintln(out, "Point-to-Point Measurement")
	fmt.Fprintln(out, "==========================")

	nearest := make([]geometry.Vector3, 0, 2)
	for i, point := range []geometry.Vector3{p1, p2} {
		fmt.Fprintf(out, "\nPoint %d: %s\n", i+1, analysis.FormatVector(point, prec))
		fmt.Fprintf(out, "  Inside solid: %t\n", solid.Contains(point))

		vertex, dist, ok := analysis.FindNearestVertex(solid, point)
		if !ok {
			continue
		}
		nearest = append(nearest, vertex.Position())
		if dist > 0 {
			fmt.Fprintf(out, "  Nearest vertex: %s (distance: %.*f)\n", analysis.FormatVector(vertex.Position(), prec), prec, dist)
		}
	}

	distance := analysis.DistanceBetweenPoints(p1, p2)
	fmt.Fprintf(out, "\nDirect distance: %s\n", analysis.FormatMeasurement(distance, "units", prec))

	if len(nearest) == 2 {
		vertexDistance := analysis.DistanceBetweenPoints(nearest[0], nearest[1])
		fmt.Fprintf(out, "Distance between nearest vertices: %s\n", analysis.FormatMeasurement(vertexDistance, "units", prec))
	}
	return nil
}
