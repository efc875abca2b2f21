package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))
	return dir
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 10, cfg.Toolsets.Cache.MaxSize)
	assert.Equal(t, 30, cfg.Toolsets.Cache.TTLMinutes)
	assert.Empty(t, cfg.Toolsets.Allowed)
}

func TestLoadConfigFull(t *testing.T) {
	dir := writeConfig(t, `
logLevel: debug
server:
  host: 0.0.0.0
  port: 9090
toolsets:
  allowed:
    - basic-tools
    - data-tools
  cache:
    maxSize: 5
    ttlMinutes: 10
  plugins:
    - id: weather-tools
      command: /usr/local/bin/weather-mcp
      args: ["--units", "metric"]
      env:
        API_KEY: secret
`)

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, []string{"basic-tools", "data-tools"}, cfg.Toolsets.Allowed)
	assert.Equal(t, 5, cfg.Toolsets.Cache.MaxSize)
	assert.Equal(t, 10, cfg.Toolsets.Cache.TTLMinutes)

	require.Len(t, cfg.Toolsets.Plugins, 1)
	p := cfg.Toolsets.Plugins[0]
	assert.Equal(t, "weather-tools", p.ID)
	assert.Equal(t, "/usr/local/bin/weather-mcp", p.Command)
	assert.Equal(t, []string{"--units", "metric"}, p.Args)
	assert.Equal(t, "secret", p.Env["API_KEY"])
}

func TestLoadConfigPartialFileKeepsDefaults(t *testing.T) {
	dir := writeConfig(t, `
server:
  port: 3000
`)

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, 10, cfg.Toolsets.Cache.MaxSize)
}

func TestLoadConfigMalformedYAML(t *testing.T) {
	dir := writeConfig(t, "toolsets: [not: a: mapping")

	_, err := LoadConfig(dir)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := GetDefaultConfig()
	assert.NoError(t, Validate(valid))

	badPort := valid
	badPort.Server.Port = 70000
	assert.Error(t, Validate(badPort))

	badCache := valid
	badCache.Toolsets.Cache.MaxSize = 0
	assert.Error(t, Validate(badCache))

	badPlugin := valid
	badPlugin.Toolsets.Plugins = []Plugin{{ID: "x"}}
	assert.ErrorContains(t, Validate(badPlugin), "missing command")
}
