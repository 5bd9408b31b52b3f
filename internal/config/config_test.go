// ABOUTME: Tests for layered configuration loading
// ABOUTME: Verifies precedence: defaults < config.yaml < .env < env < flags

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points XDG at a temp dir, clears overrides and moves into an
// empty working dir so no stray .env is picked up.
func isolate(t *testing.T) string {
	t.Helper()
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	for _, key := range keys {
		t.Setenv(EnvPrefix+strings.ToUpper(key), "")
	}
	t.Chdir(t.TempDir())
	return filepath.Join(xdg, "careervista")
}

func newFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("api-url", "", "")
	fs.String("config-dir", "", "")
	fs.Bool("json", false, "")
	return fs
}

func writeYAML(t *testing.T, dir, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(body), 0o644))
}

func TestLoadDefaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", cfg.APIURL)
	assert.Equal(t, "https://api.cloudinary.com/v1_1", cfg.UploadURL)
	assert.Equal(t, "PDF_Resume", cfg.UploadPreset)
	assert.Equal(t, dir, cfg.ConfigDir)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoadYAMLOverridesDefaults(t *testing.T) {
	dir := isolate(t)
	writeYAML(t, dir, "api_url: https://api.example.com/\ncloud_name: demo\n")

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", cfg.APIURL)
	assert.Equal(t, "demo", cfg.CloudName)
	assert.Equal(t, "PDF_Resume", cfg.UploadPreset)
}

func TestLoadDotEnvOverridesYAML(t *testing.T) {
	dir := isolate(t)
	writeYAML(t, dir, "cloud_name: from-yaml\n")
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(wd, ".env"), []byte("CAREERVISTA_CLOUD_NAME=from-dotenv\n"), 0o644))
	// godotenv never overrides variables that are already set, even empty.
	require.NoError(t, os.Unsetenv("CAREERVISTA_CLOUD_NAME"))
	t.Cleanup(func() { os.Unsetenv("CAREERVISTA_CLOUD_NAME") })

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.CloudName)
}

func TestLoadEnvOverridesYAML(t *testing.T) {
	dir := isolate(t)
	writeYAML(t, dir, "api_url: https://yaml.example.com\n")
	t.Setenv("CAREERVISTA_API_URL", "env.example.com")

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "http://env.example.com", cfg.APIURL)
}

func TestLoadFlagsWinOnlyWhenSet(t *testing.T) {
	isolate(t)
	t.Setenv("CAREERVISTA_API_URL", "http://env.example.com")

	fs := newFlags()
	cfg, err := Load(fs)
	require.NoError(t, err)
	assert.Equal(t, "http://env.example.com", cfg.APIURL, "unset flag keeps env value")

	fs = newFlags()
	require.NoError(t, fs.Parse([]string{"--api-url", "http://flag.example.com"}))
	cfg, err = Load(fs)
	require.NoError(t, err)
	assert.Equal(t, "http://flag.example.com", cfg.APIURL)
}

func TestLoadConfigDirFlagSelectsYAML(t *testing.T) {
	isolate(t)
	custom := t.TempDir()
	writeYAML(t, custom, "upload_preset: Custom\n")

	fs := newFlags()
	require.NoError(t, fs.Parse([]string{"--config-dir", custom}))
	cfg, err := Load(fs)
	require.NoError(t, err)
	assert.Equal(t, custom, cfg.ConfigDir)
	assert.Equal(t, "Custom", cfg.UploadPreset)
}

func TestLoadBadYAML(t *testing.T) {
	dir := isolate(t)
	writeYAML(t, dir, "api_url: [unclosed\n")

	_, err := Load(nil)
	assert.Error(t, err)
}

func TestFlagKey(t *testing.T) {
	assert.Equal(t, "api_url", FlagKey("api-url"))
	assert.Equal(t, "json", FlagKey("json"))
}
