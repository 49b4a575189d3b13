package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gosolid/pkg/analysis"
)

var (
	edgesCount     int
	edgesLongest   bool
	edgesShortest  bool
	edgesMinLength float64
	edgesMaxLength float64
	edgesBoundary  bool
)

var edgesCmd = &cobra.Command{
	Use:   "edges [file]",
	Short: "Analyze and measure edges of a model",
	Long:  "Find and measure edges, including longest, shortest, open boundary edges or edges within a specific length range.",
	Args:  cobra.ExactArgs(1),
	RunE:  runEdges,
}

func init() {
	rootCmd.AddCommand(edgesCmd)

	edgesCmd.Flags().IntVarP(&edgesCount, "count", "n", 10, "Number of edges to display")
	edgesCmd.Flags().BoolVarP(&edgesLongest, "longest", "l", false, "Show longest edges")
	edgesCmd.Flags().BoolVarP(&edgesShortest, "shortest", "s", false, "Show shortest edges")
	edgesCmd.Flags().BoolVarP(&edgesBoundary, "boundary", "b", false, "Show edges bounding fewer than two triangles")
	edgesCmd.Flags().Float64Var(&edgesMinLength, "min", 0.0, "Minimum edge length filter")
	edgesCmd.Flags().Float64Var(&edgesMaxLength, "max", 0.0, "Maximum edge length filter")
	edgesCmd.MarkFlagsMutuallyExclusive("longest", "shortest", "boundary")
}

func runEdges(cmd *cobra.Command, args []string) error {
	solid, err := loadSolid(args[0])
	if err != nil {
		return err
	}

	result := analysis.AnalyzeSolid(solid)
	out := cmd.OutOrStdout()
	p := cfg.Precision

	var edges []analysis.EdgeInfo
	var title string

	switch {
	case edgesLongest:
		edges = analysis.FindLongestEdges(result, edgesCount)
		title = fmt.Sprintf("Top %d Longest Edges", len(edges))
	case edgesShortest:
		edges = analysis.FindShortestEdges(result, edgesCount)
		title = fmt.Sprintf("Top %d Shortest Edges", len(edges))
	case edgesBoundary:
		for _, edge := range result.AllEdges {
			if edge.Triangles < 2 {
				edges = append(edges, edge)
			}
		}
		title = fmt.Sprintf("Boundary Edges (found %d)", len(edges))
		edges = limitEdges(edges, edgesCount)
	case edgesMaxLength > 0:
		edges = analysis.FindEdgesByLength(result, edgesMinLength, edgesMaxLength)
		title = fmt.Sprintf("Edges between %.*f and %.*f units (found %d)", p, edgesMinLength, p, edgesMaxLength, len(edges))
		edges = limitEdges(edges, edgesCount)
	default:
		title = fmt.Sprintf("All Edges (showing first %d of %d)", min(edgesCount, len(result.AllEdges)), len(result.AllEdges))
		edges = limitEdges(result.AllEdges, edgesCount)
	}

	fmt.Fprintln(out, title)
	fmt.Fprintln(out, "====================")
	fmt.Fprintf(out, "Total edges in model: %d\n", result.EdgeCount)
	fmt.Fprintf(out, "Min edge length: %s\n", analysis.FormatMeasurement(result.MinEdgeLength, "units", p))
	fmt.Fprintf(out, "Max edge length: %s\n", analysis.FormatMeasurement(result.MaxEdgeLength, "units", p))
	fmt.Fprintf(out, "Avg edge length: %s\n\n", analysis.FormatMeasurement(result.AvgEdgeLength, "units", p))

	if len(edges) == 0 {
		fmt.Fprintln(out, "No edges found matching the criteria.")
		return nil
	}

	fmt.Fprintf(out, "%-6s %-35s %-35s %-15s %s\n", "Index", "Start", "End", "Length", "Faces")
	fmt.Fprintln(out, "-----------------------------------------------------------------------------------------------------------------")
	for i, edge := range edges {
		fmt.Fprintf(out, "%-6d %-35s %-35s %-15.*f %d\n",
			i+1,
			analysis.FormatVector(edge.Start, p),
			analysis.FormatVector(edge.End, p),
			p, edge.Length,
			edge.Triangles)
	}
	return nil
}

func limitEdges(edges []analysis.EdgeInfo, count int) []analysis.EdgeInfo {
	if count >= 0 && len(edges) > count {
		return edges[:count]
	}
	return edges
}
