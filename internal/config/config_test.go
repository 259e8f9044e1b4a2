package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the user config dir at an empty temp dir so a developer's
// real config file never leaks into a test.
func isolate(t *testing.T) string {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	return dir
}

func writeFile(t *testing.T, path, content string) {
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, "", cfg.Docker.Host)
	assert.Equal(t, "error", cfg.Logging.Level)
	assert.Equal(t, FormatTable, cfg.Output.Format)
}

// TestLoad_JSONCFile verifies comments and trailing commas are accepted.
func TestLoad_JSONCFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.jsonc")
	writeFile(t, path, `{
	// talk to the rootless daemon
	"docker": {"host": "unix:///run/user/1000/docker.sock"},
	/* noisy */
	"log": {"level": "debug"},
	"output": {"format": "JSON",},
}`)

	cfg, err := Load(New(), path)
	require.NoError(t, err)
	assert.Equal(t, "unix:///run/user/1000/docker.sock", cfg.Docker.Host)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, FormatJSON, cfg.Output.Format, "format is normalized to lower case")
}

func TestLoad_DefaultPath(t *testing.T) {
	isolate(t)
	path, err := DefaultPath()
	require.NoError(t, err)
	writeFile(t, path, `{"output": {"format": "yaml"}}`)

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, cfg.Output.Format)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.jsonc")
	writeFile(t, path, `{"docker": {"host": "unix:///from/file.sock"}}`)
	t.Setenv("DEV_DOCKER_HOST", "tcp://10.0.0.2:2375")

	cfg, err := Load(New(), path)
	require.NoError(t, err)
	assert.Equal(t, "tcp://10.0.0.2:2375", cfg.Docker.Host)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	dir := isolate(t)

	_, err := Load(New(), filepath.Join(dir, "nope.jsonc"))
	assert.Error(t, err)
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "bad.jsonc")
	writeFile(t, path, `{"output": `)

	_, err := Load(New(), path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		format  string
		want    string
		wantErr bool
	}{
		{format: "table", want: "table"},
		{format: " YAML ", want: "yaml"},
		{format: "json", want: "json"},
		{format: "xml", wantErr: true},
		{format: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			cfg := &Config{Output: OutputConfig{Format: tt.format}}
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Output.Format)
		})
	}
}
