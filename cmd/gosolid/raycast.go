package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gosolid/pkg/analysis"
	"github.com/philipparndt/gosolid/pkg/geometry"
	"github.com/philipparndt/gosolid/pkg/mesh"
)

var (
	rayOrigin    string
	rayDirection string
)

var raycastCmd = &cobra.Command{
	Use:   "raycast [file]",
	Short: "Intersect a ray with the surface of a model",
	Long: `Cast a ray from --origin along --direction and list every surface crossing,
nearest first. Crossings closer than the dedup epsilon, such as a ray passing
through an edge shared by two triangles, are reported once. An odd number of
crossings means the origin lies inside the solid.`,
	Example: `  gosolid raycast part.stl --origin 0,0,-10 --direction 0,0,1`,
	Args:    cobra.ExactArgs(1),
	RunE:    runRaycast,
}

func init() {
	rootCmd.AddCommand(raycastCmd)

	raycastCmd.Flags().StringVar(&rayOrigin, "origin", "", "Ray origin as x,y,z")
	raycastCmd.Flags().StringVar(&rayDirection, "direction", "", "Ray direction as x,y,z")
	_ = raycastCmd.MarkFlagRequired("origin")
	_ = raycastCmd.MarkFlagRequired("direction")
}

func runRaycast(cmd *cobra.Command, args []string) error {
	origin, err := parseVector(rayOrigin)
	if err != nil {
		return fmt.Errorf("invalid --origin: %w", err)
	}
	direction, err := parseVector(rayDirection)
	if err != nil {
		return fmt.Errorf("invalid --direction: %w", err)
	}
	if direction == (geometry.Vector3{}) {
		return fmt.Errorf("invalid --direction: must not be zero")
	}

	solid, err := loadSolid(args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	p := cfg.Precision

	ray := mesh.NewRay(origin, direction)
	hits := ray.CastOnMesh(solid.Mesh)

	fmt.Fprintln(out, "Ray Cast")
	fmt.Fprintln(out, "========")
	fmt.Fprintf(out, "Origin: %s\n", analysis.FormatVector(origin, p))
	fmt.Fprintf(out, "Direction: %s\n", analysis.FormatVector(direction, p))
	fmt.Fprintf(out, "Hits: %d\n", hits.Len())
	fmt.Fprintf(out, "Origin inside solid: %t\n", hits.Len()%2 == 1)

	if hits.Len() == 0 {
		return nil
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%-6s %-15s %s\n", "Index", "Distance", "Point")
	fmt.Fprintln(out, "------------------------------------------------------------")
	for i, hit := range hits.Hits() {
		fmt.Fprintf(out, "%-6d %-15.*f %s\n", i+1, p, hit.Distance(), analysis.FormatVector(hit.Point(), p))
	}
	return nil
}

// parseVector parses "x,y,z".
func parseVector(s string) (geometry.Vector3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return geometry.Vector3{}, fmt.Errorf("expected x,y,z, got %q", s)
	}
	var c [3]float64
	for i, part := range parts {
		value, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return geometry.Vector3{}, fmt.Errorf("coordinate %q: %w", part, err)
		}
		c[i] = value
	}
	return geometry.NewVector3(c[0], c[1], c[2]), nil
}
