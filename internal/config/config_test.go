package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "formfield.yaml", `namespace: Backend
logging:
  level: debug
  format: json
server:
  addr: "127.0.0.1:9000"
  metrics: false
labels:
  sanitize: true
theme:
  manifest: theme.yaml
  name: acme
  variant: admin
layout:
  dir: ./pages
  template: compact
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Backend", cfg.Namespace)
	assert.Equal(t, LoggingConfig{Level: "debug", Format: "json"}, cfg.Logging)
	assert.Equal(t, ServerConfig{Addr: "127.0.0.1:9000", Metrics: false}, cfg.Server)
	assert.True(t, cfg.Labels.Sanitize)
	assert.Equal(t, ThemeConfig{Manifest: "theme.yaml", Name: "acme", Variant: "admin"}, cfg.Theme)
	assert.Equal(t, LayoutConfig{Dir: "./pages", Template: "compact"}, cfg.Layout)
}

func TestLoad_JSONKeepsDefaults(t *testing.T) {
	path := writeFile(t, "formfield.json", `{"namespace":"FooForms"}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "FooForms", cfg.Namespace)
	assert.Equal(t, Default().Logging, cfg.Logging)
	assert.Equal(t, Default().Server, cfg.Server)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("FORMFIELD_NAMESPACE", "Backend")
	t.Setenv("FORMFIELD_SERVER__ADDR", ":7000")
	t.Setenv("FORMFIELD_SERVER__METRICS", "false")
	t.Setenv("FORMFIELD_LABELS__SANITIZE", "true")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "Backend", cfg.Namespace)
	assert.Equal(t, ":7000", cfg.Server.Addr)
	assert.False(t, cfg.Server.Metrics)
	assert.True(t, cfg.Labels.Sanitize)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(writeFile(t, "formfield.toml", "namespace = 'x'"))
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "bad.yaml", "logging:\n  level: loud\n"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "bad.yaml", "theme:\n  name: acme\n"))
	assert.Error(t, err)
}
