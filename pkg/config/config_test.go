package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mindburn-Labs/sdui/pkg/token"
)

func writeConfig(t *testing.T, yaml string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sdui.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
log:
  level: debug
  format: json
migration:
  target_version: 2
versions:
  min_supported:
    Text: 2
    AsyncImage: 3
schema:
  title: Home tokens
decode:
  infer_types: true
store:
  driver: postgres
  dsn: postgres://localhost/sdui
tracing:
  enabled: true
  exporter: none
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 2, cfg.Migration.TargetVersion)
	assert.Equal(t, "Home tokens", cfg.Schema.Title)
	assert.Equal(t, Defaults().Schema.ID, cfg.Schema.ID)
	assert.True(t, cfg.Decode.InferTypes)
	assert.Len(t, cfg.DecodeOptions(), 1)
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.True(t, cfg.Tracing.Enabled)
	assert.Equal(t, "none", cfg.Tracing.Exporter)

	floors, err := cfg.Floors()
	require.NoError(t, err)
	assert.Equal(t, map[token.Kind]int{token.KindText: 2, token.KindAsyncImage: 3}, floors)

	gate, err := cfg.Gate()
	require.NoError(t, err)
	assert.Equal(t, 2, gate.MinSupported(token.KindText))
	assert.Equal(t, 1, gate.MinSupported(token.KindButton))
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("SDUI_LOG_LEVEL", "warn")
	t.Setenv("SDUI_MIGRATION_TARGET_VERSION", "2")
	t.Setenv("SDUI_TRACING_ENABLED", "true")

	path := writeConfig(t, "log:\n  level: debug\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 2, cfg.Migration.TargetVersion)
	assert.True(t, cfg.Tracing.Enabled)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"level":    "log:\n  level: loud\n",
		"format":   "log:\n  format: xml\n",
		"target":   "migration:\n  target_version: 0\n",
		"floor":    "versions:\n  min_supported:\n    Text: 0\n",
		"kind":     "versions:\n  min_supported:\n    Carousel: 2\n",
		"driver":   "store:\n  driver: mysql\n",
		"exporter": "tracing:\n  exporter: zipkin\n",
	}
	for name, yaml := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, yaml))
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := Defaults()
	cfg.Log.Format = "json"
	cfg.Log.Level = "warn"
	l := cfg.Logger(&buf)

	l.Info("hidden")
	l.Warn("shown", "k", "v")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
	assert.Contains(t, buf.String(), `"k":"v"`)
}

func TestSchemaOptions(t *testing.T) {
	cfg := Defaults()
	cfg.Schema.ID = "https://example.test/s.json"
	assert.Equal(t, "https://example.test/s.json", cfg.SchemaOptions().ID)
}
