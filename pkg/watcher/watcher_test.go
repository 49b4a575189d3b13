package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchTriggersCallback(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.mesh")
	other := filepath.Join(dir, "other.mesh")
	require.NoError(t, os.WriteFile(path, []byte("# Vertices\n"), 0o644))

	fw, err := NewFileWatcher(100 * time.Millisecond)
	require.NoError(t, err)
	defer fw.Close()

	var calls atomic.Int32
	changed := make(chan string, 4)
	require.NoError(t, fw.Watch([]string{path}, func(p string) {
		calls.Add(1)
		changed <- p
	}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	fw.Start(ctx)

	require.NoError(t, os.WriteFile(other, []byte("ignored"), 0o644))
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte("# Triangles\n"), 0o644))
	}

	select {
	case got := <-changed:
		assert.Equal(t, path, got)
	case <-time.After(5 * time.Second):
		t.Fatal("callback was not called")
	}

	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load(), "writes in quick succession are debounced")
}

func TestRunStopsOnCancel(t *testing.T) {
	fw, err := NewFileWatcher(time.Millisecond)
	require.NoError(t, err)
	defer fw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- fw.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
	}
}

func TestRemoveAll(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.stl")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	fw, err := NewFileWatcher(time.Millisecond)
	require.NoError(t, err)
	defer fw.Close()

	require.NoError(t, fw.Watch([]string{path}, func(string) {}))
	require.NoError(t, fw.RemoveAll())
	assert.Empty(t, fw.callbacks)
	assert.Empty(t, fw.dirs)
}
