package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/221bt/fclgraph/pkg/fclgraph/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNew verifies Config creation from maps.
func TestNew(t *testing.T) {
	tests := []struct {
		name string
		data map[string]any
	}{
		{"nil map", nil},
		{"empty map", map[string]any{}},
		{"with values", map[string]any{"key": "value"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New(tt.data)
			assert.NotNil(t, cfg.Raw())
		})
	}
}

// TestString verifies string extraction with defaults.
func TestString(t *testing.T) {
	tests := []struct {
		name       string
		data       map[string]any
		key        string
		defaultVal string
		want       string
	}{
		{"key exists", map[string]any{"tracking_key": "example:prevID"}, "tracking_key", "default", "example:prevID"},
		{"key missing", map[string]any{"other": "value"}, "tracking_key", "default", "default"},
		{"empty string", map[string]any{"tracking_key": ""}, "tracking_key", "default", ""},
		{"wrong type int", map[string]any{"tracking_key": 123}, "tracking_key", "default", "default"},
		{"nil map", nil, "tracking_key", "default", "default"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New(tt.data)
			assert.Equal(t, tt.want, cfg.String(tt.key, tt.defaultVal))
		})
	}
}

// TestBool verifies boolean extraction with defaults.
func TestBool(t *testing.T) {
	tests := []struct {
		name       string
		data       map[string]any
		defaultVal bool
		want       bool
	}{
		{"true", map[string]any{"verbose": true}, false, true},
		{"false", map[string]any{"verbose": false}, true, false},
		{"missing", map[string]any{}, true, true},
		{"wrong type", map[string]any{"verbose": "yes"}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New(tt.data)
			assert.Equal(t, tt.want, cfg.Bool("verbose", tt.defaultVal))
		})
	}
}

// TestInt verifies integer extraction with type coercion.
func TestInt(t *testing.T) {
	tests := []struct {
		name string
		data map[string]any
		want int
	}{
		{"int", map[string]any{"workers": 4}, 4},
		{"int64", map[string]any{"workers": int64(8)}, 8},
		{"whole float64", map[string]any{"workers": float64(2)}, 2},
		{"fractional float64", map[string]any{"workers": 2.5}, 1},
		{"missing", map[string]any{}, 1},
		{"wrong type", map[string]any{"workers": "four"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New(tt.data)
			assert.Equal(t, tt.want, cfg.Int("workers", 1))
		})
	}
}

// TestFloat verifies float extraction with type coercion.
func TestFloat(t *testing.T) {
	cfg := config.New(map[string]any{
		"ratio": 0.75,
		"count": 3,
		"big":   int64(9),
	})

	assert.Equal(t, 0.75, cfg.Float("ratio", 0))
	assert.Equal(t, 3.0, cfg.Float("count", 0))
	assert.Equal(t, 9.0, cfg.Float("big", 0))
	assert.Equal(t, 1.5, cfg.Float("missing", 1.5))
}

// TestDuration verifies duration extraction with various input types.
func TestDuration(t *testing.T) {
	tests := []struct {
		name string
		data map[string]any
		want time.Duration
	}{
		{"string", map[string]any{"timeout": "30s"}, 30 * time.Second},
		{"int seconds", map[string]any{"timeout": 10}, 10 * time.Second},
		{"float seconds", map[string]any{"timeout": 1.5}, 1500 * time.Millisecond},
		{"duration", map[string]any{"timeout": 5 * time.Minute}, 5 * time.Minute},
		{"bad string", map[string]any{"timeout": "soon"}, time.Second},
		{"missing", map[string]any{}, time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New(tt.data)
			assert.Equal(t, tt.want, cfg.Duration("timeout", time.Second))
		})
	}
}

// TestStringSlice verifies string slice extraction.
func TestStringSlice(t *testing.T) {
	tests := []struct {
		name string
		data map[string]any
		want []string
	}{
		{"string slice", map[string]any{"inputs": []string{"a.json", "b.json"}}, []string{"a.json", "b.json"}},
		{"any slice", map[string]any{"inputs": []any{"a.json", "b.json"}}, []string{"a.json", "b.json"}},
		{"mixed slice", map[string]any{"inputs": []any{"a.json", 2}}, []string{"default"}},
		{"missing", map[string]any{}, []string{"default"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New(tt.data)
			assert.Equal(t, tt.want, cfg.StringSlice("inputs", []string{"default"}))
		})
	}
}

// TestMapSlice verifies structured entry extraction.
func TestMapSlice(t *testing.T) {
	cfg := config.New(map[string]any{
		"station_columns": []any{
			map[string]any{"id": "Certification", "type": "string", "attribute": "certification"},
		},
		"flat": []any{"not", "maps"},
	})

	entries := cfg.MapSlice("station_columns")
	require.Len(t, entries, 1)
	assert.Equal(t, "Certification", entries[0]["id"])

	assert.Nil(t, cfg.MapSlice("flat"))
	assert.Nil(t, cfg.MapSlice("missing"))
}

// TestHasAndAny verifies raw access helpers.
func TestHasAndAny(t *testing.T) {
	cfg := config.New(map[string]any{"tracking_key": "example:prevID"})

	assert.True(t, cfg.Has("tracking_key"))
	assert.False(t, cfg.Has("missing"))
	assert.Equal(t, "example:prevID", cfg.Any("tracking_key", nil))
	assert.Equal(t, "fallback", cfg.Any("missing", "fallback"))
}

// TestFromFile verifies loading from YAML and JSON files.
func TestFromFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("yaml", func(t *testing.T) {
		path := filepath.Join(dir, "conv.yaml")
		content := `
tracking_key: acme:previous
timeout: 45s
station_columns:
  - id: Certification
    type: string
    attribute: certification
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		cfg, err := config.FromFile(path)
		require.NoError(t, err)
		assert.Equal(t, "acme:previous", cfg.String("tracking_key", ""))
		assert.Equal(t, 45*time.Second, cfg.Duration("timeout", 0))
		require.Len(t, cfg.MapSlice("station_columns"), 1)
	})

	t.Run("json", func(t *testing.T) {
		path := filepath.Join(dir, "conv.json")
		content := `{"tracking_key": "acme:previous", "verbose": true}`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		cfg, err := config.FromFile(path)
		require.NoError(t, err)
		assert.Equal(t, "acme:previous", cfg.String("tracking_key", ""))
		assert.True(t, cfg.Bool("verbose", false))
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := filepath.Join(dir, "conv.toml")
		require.NoError(t, os.WriteFile(path, []byte("a = 1"), 0o644))

		_, err := config.FromFile(path)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := config.FromFile(filepath.Join(dir, "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("bad yaml", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte(":\n  - ["), 0o644))

		_, err := config.FromFile(path)
		assert.Error(t, err)
	})
}
