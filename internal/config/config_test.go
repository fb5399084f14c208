package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets the docgraph variables for the duration of the test
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvRoot, EnvExclude, EnvRenderer, EnvWorkers, EnvLogLevel} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	cfg, err := Load(Options{EnvFile: filepath.Join(dir, "missing.env")})
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Contains(t, cfg.Exclude, "node_modules")
	assert.Contains(t, cfg.Exclude, ".venv")
	assert.Equal(t, DefaultGraphOutput, cfg.Graph.Output)
}

func TestLoad_YAMLFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	file := filepath.Join(dir, "custom.yaml")
	writeFile(t, file, `
root: /srv/docs
exclude: [build, node_modules]
workers: 2
mindmap:
  output: out/map.puml
  format: svg
graph:
  output: out/graph.puml
watch:
  debounce: 1s
`)

	cfg, err := Load(Options{ConfigFile: file, EnvFile: filepath.Join(dir, "none.env")})
	require.NoError(t, err)

	assert.Equal(t, "/srv/docs", cfg.Root)
	assert.Equal(t, []string{"build", "node_modules"}, cfg.Exclude)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, "out/map.puml", cfg.Mindmap.Output)
	assert.Equal(t, "svg", cfg.Mindmap.Format)
	assert.Equal(t, "out/graph.puml", cfg.Graph.Output)
	assert.Equal(t, DefaultRenderer, cfg.Mindmap.Renderer)
	assert.Equal(t, time.Second, cfg.Watch.Debounce)
}

func TestLoad_FileInRootIsFound(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, FileName), "workers: 3\n")
	t.Setenv(EnvRoot, dir)

	cfg, err := Load(Options{EnvFile: filepath.Join(dir, "none.env")})
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.Root)
	assert.Equal(t, 3, cfg.Workers)
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	file := filepath.Join(dir, "custom.yaml")
	writeFile(t, file, "workers: 2\nexclude: [a]\n")

	t.Setenv(EnvWorkers, "6")
	t.Setenv(EnvExclude, "node_modules, dist ,")
	t.Setenv(EnvRenderer, "/opt/plantuml/bin/plantuml")

	cfg, err := Load(Options{ConfigFile: file, EnvFile: filepath.Join(dir, "none.env")})
	require.NoError(t, err)

	assert.Equal(t, 6, cfg.Workers)
	assert.Equal(t, []string{"node_modules", "dist"}, cfg.Exclude)
	assert.Equal(t, "/opt/plantuml/bin/plantuml", cfg.Mindmap.Renderer)
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	writeFile(t, envFile, "DOCGRAPH_WORKERS=5\nDOCGRAPH_LOG_LEVEL=debug\n")
	t.Cleanup(func() {
		os.Unsetenv(EnvWorkers)
		os.Unsetenv(EnvLogLevel)
	})

	cfg, err := Load(Options{EnvFile: envFile})
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Workers)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	badYAML := filepath.Join(dir, "bad.yaml")
	writeFile(t, badYAML, "workers: [oops\n")

	tests := []struct {
		name    string
		file    string
		env     map[string]string
		wantErr string
	}{
		{name: "missing explicit file", file: filepath.Join(dir, "nope.yaml"), wantErr: "failed to read config"},
		{name: "malformed yaml", file: badYAML, wantErr: "failed to parse config"},
		{name: "non-numeric workers", env: map[string]string{EnvWorkers: "many"}, wantErr: "is not a number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load(Options{ConfigFile: tt.file, EnvFile: filepath.Join(dir, "none.env")})

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_RootOptionFindsFileInRoot(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, FileName), "workers: 3\nroot: /elsewhere\n")

	cfg, err := Load(Options{Root: dir, EnvFile: filepath.Join(dir, "none.env")})
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.Root)
	assert.Equal(t, 3, cfg.Workers)
}

func TestLoad_RootOptionWinsOverEnvironment(t *testing.T) {
	clearEnv(t)
	envRoot := t.TempDir()
	flagRoot := t.TempDir()
	writeFile(t, filepath.Join(envRoot, FileName), "workers: 2\n")
	writeFile(t, filepath.Join(flagRoot, FileName), "workers: 5\n")
	t.Setenv(EnvRoot, envRoot)

	cfg, err := Load(Options{Root: flagRoot, EnvFile: filepath.Join(flagRoot, "none.env")})
	require.NoError(t, err)

	assert.Equal(t, flagRoot, cfg.Root)
	assert.Equal(t, 5, cfg.Workers)
}

func TestLoad_InvalidValuesLeftForValidate(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv(EnvWorkers, "0")

	cfg, err := Load(Options{EnvFile: filepath.Join(dir, "none.env")})
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Workers)

	// A flag override applied after Load makes the config valid again
	cfg.Workers = 4
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "zero workers", mutate: func(c *Config) { c.Workers = 0 }, wantErr: "workers must be positive"},
		{name: "negative debounce", mutate: func(c *Config) { c.Watch.Debounce = -time.Second }, wantErr: "must not be negative"},
		{name: "unknown log level", mutate: func(c *Config) { c.LogLevel = "loud" }, wantErr: "unknown log level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	assert.NoError(t, Default().Validate())
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, SplitList(" a, ,b,"))
	assert.Nil(t, SplitList(""))
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"", slog.LevelInfo},
		{"INFO", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLogLevel(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseLogLevel("verbose")
	assert.Error(t, err)
}
