package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gosolid/internal/config"
	"github.com/philipparndt/gosolid/internal/loader"
	"github.com/philipparndt/gosolid/internal/logging"
	"github.com/philipparndt/gosolid/pkg/mesh"
	"github.com/philipparndt/gosolid/version"
)

var (
	cfgFile  string
	logLevel string
	cfg      = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "gosolid",
	Short: "A CLI tool for inspecting, measuring and repairing closed triangle meshes",
	Long: `gosolid loads STL files (ASCII or binary) and text meshes into a solid with
full vertex/edge/triangle adjacency. It orients faces outward, computes volume
and surface measurements, casts rays against the surface and converts between
formats.`,
	Version:           version.GetFullVersion(),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
}

// setup loads the configuration and installs the logger before any command
// runs.
func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		loaded.LogLevel = logLevel
		if err := loaded.Validate(); err != nil {
			return err
		}
	}

	logger, err := logging.New(cmd.ErrOrStderr(), loaded.LogLevel, loaded.LogFormat)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	cfg = loaded

	slog.Debug("configuration loaded",
		slog.String("config", cfgFile),
		slog.Float64("weld_tolerance", cfg.WeldTolerance),
		slog.Bool("auto_orient", cfg.AutoOrient),
	)
	return nil
}

// loadSolid reads a model using the current configuration.
func loadSolid(path string) (*mesh.Solid, error) {
	return loader.Load(path, loader.Options{
		WeldTolerance: cfg.WeldTolerance,
		Orient:        cfg.AutoOrient,
	})
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
