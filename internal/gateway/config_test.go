package gateway

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoadConfig_Swift(t *testing.T) {
	path := writeConfigFile(t, `
listen: ":9090"
log:
  level: debug
  format: console
storage:
  driver: swift
  swift:
    auth_url: https://auth.example.com/v1.0
    username: demo
    api_key: secret
    container: assets
    prefix: root
    temp_url_key: signing-key
    timeout: 30s
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Listen)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "swift", cfg.Storage.Driver)
	assert.Equal(t, "https://auth.example.com/v1.0", cfg.Storage.Swift.AuthURL)
	assert.Equal(t, "assets", cfg.Storage.Swift.Container)
	assert.Equal(t, "signing-key", cfg.Storage.Swift.TempURLKey)
	assert.Equal(t, Duration(30*time.Second), cfg.Storage.Swift.Timeout)
}

func TestLoadConfig_DefaultsApply(t *testing.T) {
	path := writeConfigFile(t, `
storage:
  driver: memory
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Listen)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		contents string
	}{
		{
			name:     "unknown driver",
			contents: "storage:\n  driver: ftp\n",
		},
		{
			name:     "swift without auth url",
			contents: "storage:\n  driver: swift\n  swift:\n    container: assets\n",
		},
		{
			name:     "s3 without bucket",
			contents: "storage:\n  driver: s3\n  s3:\n    endpoint: localhost:9000\n",
		},
		{
			name:     "malformed yaml",
			contents: "storage: [",
		},
		{
			name:     "bad duration",
			contents: "storage:\n  driver: memory\n  swift:\n    timeout: soon\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfigFile(t, tt.contents))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
