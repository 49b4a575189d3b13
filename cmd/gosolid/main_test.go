package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/gosolid/internal/loader"
	"github.com/philipparndt/gosolid/pkg/mesh"
)

// syncBuffer is a bytes.Buffer safe for a writer and a polling reader.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func execute(t *testing.T, ctx context.Context, out io.Writer, args ...string) error {
	t.Helper()
	rootCmd.SetOut(out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	err := execute(t, context.Background(), &buf, args...)
	return buf.String(), err
}

// writeCube saves an unoriented cube so that commands must orient it.
func writeCube(t *testing.T, dir, name string, size float64) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, loader.Save(path, mesh.Cube(size), false))
	return path
}

func TestInfo(t *testing.T) {
	path := writeCube(t, t.TempDir(), "cube.stl", 2)

	out, err := run(t, "info", path)
	require.NoError(t, err)

	assert.Contains(t, out, "Vertices: 8\n")
	assert.Contains(t, out, "Edges: 18\n")
	assert.Contains(t, out, "Triangles: 12\n")
	assert.Contains(t, out, "Euler characteristic: 2\n")
	assert.Contains(t, out, "Watertight: true\n")
	assert.Contains(t, out, "Volume: 8.000000 cubic units\n")
	assert.Contains(t, out, "Surface Area: 24.000000 square units\n")
}

func TestInfoUsesConfigPrecision(t *testing.T) {
	dir := t.TempDir()
	path := writeCube(t, dir, "cube.mesh", 1)
	cfgPath := filepath.Join(dir, "gosolid.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("precision: 2\n"), 0o644))

	out, err := run(t, "--config", cfgPath, "info", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Volume: 1.00 cubic units\n")

	_, err = run(t, "--config", "", "info", path)
	require.NoError(t, err)
}

func TestEdgesLongest(t *testing.T) {
	path := writeCube(t, t.TempDir(), "cube.stl", 1)

	out, err := run(t, "edges", path, "--longest", "-n", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Top 2 Longest Edges")
	assert.Contains(t, out, "Total edges in model: 18")
	assert.Equal(t, 3, strings.Count(out, "1.414214"), "max length plus two rows")
}

func TestTriangles(t *testing.T) {
	path := writeCube(t, t.TempDir(), "cube.stl", 1)

	out, err := run(t, "triangles", path, "--largest", "-n", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Largest Triangles (showing 1 of 12)")
	assert.Contains(t, out, "Area: 0.500000 square units")
	assert.Equal(t, 1, strings.Count(out, "Triangle #"))
}

func TestMeasure(t *testing.T) {
	path := writeCube(t, t.TempDir(), "cube.stl", 1)

	out, err := run(t, "measure", path,
		"--x1", "0.5", "--y1", "0.5", "--z1", "0.5",
		"--x2", "3", "--y2", "0.5", "--z2", "0.5")
	require.NoError(t, err)
	assert.Contains(t, out, "Direct distance: 2.500000 units")
	assert.Equal(t, 1, strings.Count(out, "Inside solid: true"))
	assert.Equal(t, 1, strings.Count(out, "Inside solid: false"))
}

func TestRaycast(t *testing.T) {
	path := writeCube(t, t.TempDir(), "cube.stl", 1)

	out, err := run(t, "raycast", path, "--origin", "-1,0.3,0.4", "--direction", "1,0,0")
	require.NoError(t, err)
	assert.Contains(t, out, "Hits: 2\n")
	assert.Contains(t, out, "Origin inside solid: false")
	assert.Contains(t, out, "(0.000000, 0.300000, 0.400000)")
	assert.Contains(t, out, "(1.000000, 0.300000, 0.400000)")

	_, err = run(t, "raycast", path, "--origin", "1,2", "--direction", "1,0,0")
	assert.Error(t, err)
	_, err = run(t, "raycast", path, "--origin", "0,0,0", "--direction", "0,0,0")
	assert.Error(t, err)
}

func TestConvert(t *testing.T) {
	dir := t.TempDir()
	input := writeCube(t, dir, "cube.stl", 2)
	output := filepath.Join(dir, "centered.mesh")

	out, err := run(t, "convert", input, output, "--orient", "--centralize")
	require.NoError(t, err)
	assert.Contains(t, out, "8 vertices, 12 triangles, volume 8.000000")

	solid, err := loader.Load(output, loader.Options{})
	require.NoError(t, err)
	assert.InDelta(t, 8, solid.Volume(), 1e-9)
	assert.InDelta(t, 0, solid.Center().Length(), 1e-12)
}

func TestUnsupportedInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.obj")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	_, err := run(t, "info", path)
	assert.ErrorIs(t, err, loader.ErrUnsupportedFormat)
}

func TestWatchReloads(t *testing.T) {
	t.Setenv("GOSOLID_WATCH_DEBOUNCE", "20ms")
	dir := t.TempDir()
	path := writeCube(t, dir, "cube.stl", 1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var out syncBuffer
	done := make(chan error, 1)
	go func() { done <- execute(t, ctx, &out, "watch", path) }()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "Watching")
	}, 5*time.Second, 10*time.Millisecond)

	writeCube(t, dir, "cube.stl", 2)
	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "Volume: 8.000000")
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}
