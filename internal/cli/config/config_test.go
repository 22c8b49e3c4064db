package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadFrom(t.TempDir())
	require.NoError(t, err)

	assert.Empty(t, cfg.Catalog.Paths)
	assert.Equal(t, 10*time.Minute, cfg.Catalog.CacheTTL)
	assert.True(t, cfg.Catalog.Watch)
	assert.Empty(t, cfg.Rules.Path)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.Completion.Snippets)
}

func TestLoadWithConfigFile(t *testing.T) {
	dir := t.TempDir()
	configContent := `
catalog:
  paths:
    - target/quarkus-metadata.json
    - /opt/catalogs/extra.yaml
  cache_ttl: 30s
  watch: false
rules:
  path: rules.yaml
log:
  level: debug
completion:
  snippets: false
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "propls.yml"), []byte(configContent), 0o644))

	cfg, err := LoadFrom(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(dir, "target/quarkus-metadata.json"),
		"/opt/catalogs/extra.yaml",
	}, cfg.Catalog.Paths)
	assert.Equal(t, 30*time.Second, cfg.Catalog.CacheTTL)
	assert.False(t, cfg.Catalog.Watch)
	assert.Equal(t, filepath.Join(dir, "rules.yaml"), cfg.Rules.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.False(t, cfg.Completion.Snippets)
}

func TestLoadYamlExtension(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "propls.yaml"), []byte("log:\n  level: warn\n"), 0o644))

	cfg, err := LoadFrom(dir)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("PROPLS_LOG_LEVEL", "error")
	t.Setenv("PROPLS_COMPLETION_SNIPPETS", "false")

	cfg, err := LoadFrom(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Log.Level)
	assert.False(t, cfg.Completion.Snippets)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad level", "log:\n  level: loud\n"},
		{"negative ttl", "catalog:\n  cache_ttl: -1m\n"},
		{"empty path", "catalog:\n  paths: [\"\"]\n"},
		{"malformed yaml", "catalog: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, "propls.yml"), []byte(tt.content), 0o644))

			_, err := LoadFrom(dir)
			assert.Error(t, err)
		})
	}
}

func TestLogger(t *testing.T) {
	cfg := &Config{Log: LogConfig{Level: "debug"}}
	logger, err := cfg.Logger()
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	cfg.Log.Level = "warn"
	logger, err = cfg.Logger()
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))

	cfg.Log.Level = "loud"
	_, err = cfg.Logger()
	assert.Error(t, err)
}

func TestFindRoot(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "src", "main")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "propls.yml"), []byte(""), 0o644))

	oldWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(nested))
	defer func() { _ = os.Chdir(oldWd) }()

	found, err := FindRoot()
	require.NoError(t, err)

	want, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(found)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
