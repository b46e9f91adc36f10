package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME at a temp dir and clears token variables.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("GHFINDER_TOKEN", "")
	t.Setenv("GITHUB_TOKEN", "")
	return home
}

func TestLoadDefaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "https://api.github.com/", cfg.API.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.Equal(t, 300*time.Millisecond, cfg.Search.Debounce)
	assert.True(t, cfg.Search.Details)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, filepath.Join(home, ".ghfinder", "ghfinder.log"), cfg.Logging.File)
	assert.Empty(t, cfg.API.Token)
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, "config.toml")
	data := "[api]\ntimeout = \"3s\"\n\n[search]\ndebounce = \"150ms\"\ndetails = false\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	t.Setenv("GHFINDER_LOGGING_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
	assert.Equal(t, 150*time.Millisecond, cfg.Search.Debounce)
	assert.False(t, cfg.Search.Details)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadMissingFileIsNotAnError(t *testing.T) {
	home := isolate(t)
	_, err := Load(filepath.Join(home, "nope.toml"))
	require.NoError(t, err)
}

func TestTokenPrecedence(t *testing.T) {
	home := isolate(t)
	dir := filepath.Join(home, ".ghfinder")
	require.NoError(t, os.MkdirAll(dir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "token"), []byte("from-file\n"), 0o600))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.API.Token)

	t.Setenv("GITHUB_TOKEN", "from-github-env")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, "from-github-env", cfg.API.Token)

	t.Setenv("GHFINDER_TOKEN", "from-ghfinder-env")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, "from-ghfinder-env", cfg.API.Token)
}

func TestDotEnvDoesNotOverrideEnv(t *testing.T) {
	home := isolate(t)
	dir := filepath.Join(home, ".ghfinder")
	require.NoError(t, os.MkdirAll(dir, 0o700))
	env := "GHFINDER_SEARCH_DEBOUNCE=1s\nGHFINDER_API_TIMEOUT=4s\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o600))
	t.Setenv("GHFINDER_API_TIMEOUT", "2s")
	t.Cleanup(func() { os.Unsetenv("GHFINDER_SEARCH_DEBOUNCE") }) //nolint:errcheck

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, time.Second, cfg.Search.Debounce)
	assert.Equal(t, 2*time.Second, cfg.API.Timeout)
}

func TestValidate(t *testing.T) {
	valid := Config{
		API:    APIConfig{BaseURL: "https://api.github.com/", Timeout: time.Second},
		Search: SearchConfig{Debounce: time.Millisecond},
	}
	require.NoError(t, valid.Validate())

	bad := valid
	bad.API.Timeout = 0
	assert.Error(t, bad.Validate())

	bad = valid
	bad.Search.Debounce = -time.Second
	assert.Error(t, bad.Validate())

	bad = valid
	bad.API.BaseURL = "not a url"
	assert.Error(t, bad.Validate())
}

func TestTOMLRedactsToken(t *testing.T) {
	cfg := Config{API: APIConfig{BaseURL: "https://api.github.com/", Token: "secret", Timeout: time.Second}}
	out, err := cfg.TOML()
	require.NoError(t, err)
	assert.NotContains(t, out, "secret")
	assert.Contains(t, out, "<redacted>")
	assert.Equal(t, "secret", cfg.API.Token, "receiver must not be mutated")
}

func TestTOMLRoundTripsThroughLoad(t *testing.T) {
	home := isolate(t)
	cfg := Config{
		API:     APIConfig{BaseURL: "https://ghe.example.com/api/v3/", Timeout: 7 * time.Second},
		Search:  SearchConfig{Debounce: 250 * time.Millisecond, Details: false},
		Logging: LoggingConfig{Level: "warn", File: filepath.Join(home, "x.log")},
	}
	out, err := cfg.TOML()
	require.NoError(t, err)

	path := filepath.Join(home, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(out), 0o600))
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.API.BaseURL, got.API.BaseURL)
	assert.Equal(t, cfg.API.Timeout, got.API.Timeout)
	assert.Equal(t, cfg.Search, got.Search)
	assert.Equal(t, cfg.Logging, got.Logging)
}
