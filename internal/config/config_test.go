package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 1e-6, cfg.WeldTolerance)
	assert.Equal(t, 6, cfg.Precision)
	assert.Equal(t, 250*time.Millisecond, cfg.WatchDebounce)
	assert.True(t, cfg.AutoOrient)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*Config)
		wantError bool
	}{
		{"valid default config", func(_ *Config) {}, false},
		{"unknown log level", func(c *Config) { c.LogLevel = "verbose" }, true},
		{"unknown log format", func(c *Config) { c.LogFormat = "xml" }, true},
		{"negative weld tolerance", func(c *Config) { c.WeldTolerance = -1 }, true},
		{"zero weld tolerance", func(c *Config) { c.WeldTolerance = 0 }, false},
		{"precision too high", func(c *Config) { c.Precision = 16 }, true},
		{"negative debounce", func(c *Config) { c.WatchDebounce = -time.Second }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.wantError {
				assert.ErrorIs(t, err, ErrInvalid)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gosolid.yaml")
	content := `log_level: debug
log_format: json
weld_tolerance: 0.001
precision: 3
watch_debounce: 1s
auto_orient: false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 0.001, cfg.WeldTolerance)
	assert.Equal(t, 3, cfg.Precision)
	assert.Equal(t, time.Second, cfg.WatchDebounce)
	assert.False(t, cfg.AutoOrient)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gosolid.yaml")
	require.NoError(t, os.WriteFile(path, []byte("precision: 2\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Precision)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.True(t, cfg.AutoOrient)
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadInvalid(t *testing.T) {
	dir := t.TempDir()

	broken := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("precision: [1, 2\n"), 0o644))
	_, err := Load(broken)
	assert.Error(t, err)

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("log_format: xml\n"), 0o644))
	_, err = Load(invalid)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gosolid.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: info\nprecision: 3\n"), 0o644))

	t.Setenv("GOSOLID_LOG_LEVEL", "error")
	t.Setenv("GOSOLID_PRECISION", "9")
	t.Setenv("GOSOLID_WELD_TOLERANCE", "0.5")
	t.Setenv("GOSOLID_WATCH_DEBOUNCE", "2s")
	t.Setenv("GOSOLID_AUTO_ORIENT", "0")
	t.Setenv("GOSOLID_LOG_FORMAT", "json")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.LogLevel)
	assert.Equal(t, 9, cfg.Precision)
	assert.Equal(t, 0.5, cfg.WeldTolerance)
	assert.Equal(t, 2*time.Second, cfg.WatchDebounce)
	assert.False(t, cfg.AutoOrient)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestEnvRejectsUnparsableValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"precision", "GOSOLID_PRECISION", "many"},
		{"weld tolerance", "GOSOLID_WELD_TOLERANCE", "tiny"},
		{"watch debounce", "GOSOLID_WATCH_DEBOUNCE", "soon"},
		{"auto orient", "GOSOLID_AUTO_ORIENT", "yes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := Load("")
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalid)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}
