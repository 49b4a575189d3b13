package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gosolid/pkg/analysis"
	"github.com/philipparndt/gosolid/pkg/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch [file]",
	Short: "Re-analyze a model whenever it changes",
	Long:  "Print a summary of the model, then reload and print it again after every change until interrupted.",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	filename := args[0]
	out := cmd.OutOrStdout()

	if err := printSummary(out, filename); err != nil {
		return err
	}

	fw, err := watcher.NewFileWatcher(cfg.WatchDebounce)
	if err != nil {
		return err
	}
	defer fw.Close()

	// Summaries are printed from the event loop only.
	changed := make(chan string, 1)
	err = fw.Watch([]string{filename}, func(path string) {
		select {
		case changed <- path:
		default:
		}
	})
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	fw.Start(ctx)
	fmt.Fprintf(out, "\nWatching %s for changes (Ctrl+C to stop)\n", filename)

	for {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case <-changed:
			fmt.Fprintln(out)
			if err := printSummary(out, filename); err != nil {
				slog.Warn("reload failed", slog.String("path", filename), slog.Any("error", err))
			}
		}
	}
}

func printSummary(out io.Writer, filename string) error {
	solid, err := loadSolid(filename)
	if err != nil {
		return err
	}
	result := analysis.AnalyzeSolid(solid)
	p := cfg.Precision

	fmt.Fprintf(out, "%s: %d vertices, %d edges, %d triangles, watertight %t\n",
		filename, result.VertexCount, result.EdgeCount, result.TriangleCount, result.Watertight)
	fmt.Fprintf(out, "  Size: %s\n", analysis.FormatVector(result.Dimensions, p))
	fmt.Fprintf(out, "  Surface Area: %s\n", analysis.FormatMeasurement(result.SurfaceArea, "square units", p))
	fmt.Fprintf(out, "  Volume: %s\n", analysis.FormatMeasurement(result.Volume, "cubic units", p))
	return nil
}
