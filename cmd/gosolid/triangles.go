package main

import (
	"fmt"
	"math"
	"sort"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gosolid/pkg/analysis"
)

var (
	triCount    int
	triLargest  bool
	triSmallest bool
)

type triangleInfo struct {
	Index     int
	Area      float64
	Perimeter float64
	Normal    string
	Vertices  string
}

var trianglesCmd = &cobra.Command{
	Use:   "triangles [file]",
	Short: "Analyze triangles of a model",
	Long:  "Display information about triangles including area, perimeter, normal and vertex positions.",
	Args:  cobra.ExactArgs(1),
	RunE:  runTriangles,
}

func init() {
	rootCmd.AddCommand(trianglesCmd)

	trianglesCmd.Flags().IntVarP(&triCount, "count", "n", 10, "Number of triangles to display")
	trianglesCmd.Flags().BoolVarP(&triLargest, "largest", "l", false, "Show largest triangles by area")
	trianglesCmd.Flags().BoolVarP(&triSmallest, "smallest", "s", false, "Show smallest triangles by area")
	trianglesCmd.MarkFlagsMutuallyExclusive("largest", "smallest")
}

func runTriangles(cmd *cobra.Command, args []string) error {
	solid, err := loadSolid(args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	p := cfg.Precision

	// Collect triangle info
	triangles := make([]triangleInfo, 0, solid.NumTriangles())
	totalArea := 0.0
	minArea := math.MaxFloat64
	maxArea := 0.0

	for i, tri := range solid.Triangles() {
		area := tri.Area()
		perimeter := 0.0
		for _, e := range tri.Edges() {
			perimeter += e.Length()
		}
		corners := tri.Winding()

		triangles = append(triangles, triangleInfo{
			Index:     i,
			Area:      area,
			Perimeter: perimeter,
			Normal:    analysis.FormatVector(tri.Normal(), p),
			Vertices: fmt.Sprintf("%s, %s, %s",
				analysis.FormatVector(corners[0].Position(), p),
				analysis.FormatVector(corners[1].Position(), p),
				analysis.FormatVector(corners[2].Position(), p)),
		})

		totalArea += area
		minArea = math.Min(minArea, area)
		maxArea = math.Max(maxArea, area)
	}

	if len(triangles) == 0 {
		fmt.Fprintln(out, "Model has no triangles.")
		return nil
	}

	// Sort based on flags
	var title string
	switch {
	case triLargest:
		sort.SliceStable(triangles, func(i, j int) bool {
			return triangles[i].Area > triangles[j].Area
		})
		title = "Largest Triangles"
	case triSmallest:
		sort.SliceStable(triangles, func(i, j int) bool {
			return triangles[i].Area < triangles[j].Area
		})
		title = "Smallest Triangles"
	default:
		title = "Triangles"
	}

	shown := min(max(triCount, 0), len(triangles))
	fmt.Fprintf(out, "%s (showing %d of %d)\n", title, shown, len(triangles))
	fmt.Fprintln(out, "====================")
	fmt.Fprintf(out, "Total surface area: %s\n", analysis.FormatMeasurement(totalArea, "square units", p))
	fmt.Fprintf(out, "Min triangle area: %s\n", analysis.FormatMeasurement(minArea, "square units", p))
	fmt.Fprintf(out, "Max triangle area: %s\n", analysis.FormatMeasurement(maxArea, "square units", p))
	fmt.Fprintf(out, "Avg triangle area: %s\n\n", analysis.FormatMeasurement(totalArea/float64(len(triangles)), "square units", p))

	for _, tri := range triangles[:shown] {
		fmt.Fprintf(out, "Triangle #%d:\n", tri.Index)
		fmt.Fprintf(out, "  Area: %s\n", analysis.FormatMeasurement(tri.Area, "square units", p))
		fmt.Fprintf(out, "  Perimeter: %s\n", analysis.FormatMeasurement(tri.Perimeter, "units", p))
		fmt.Fprintf(out, "  Normal: %s\n", tri.Normal)
		fmt.Fprintf(out, "  Vertices: %s\n\n", tri.Vertices)
	}
	return nil
}
