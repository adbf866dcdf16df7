package erniechat

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	. "github.com/stevegt/goadapt"
)

// clearEnv isolates a test from ambient QIANFAN_*/ERNIE_* settings.
func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv(EnvAPIKey, "")
	t.Setenv(EnvBaseURL, "")
	t.Setenv(EnvModel, "")
}

func TestNewConfigDefaults(t *testing.T) {
	cfg := NewConfig()
	Tassert(t, cfg.BaseURL == DefaultBaseURL, "unexpected base URL: %s", cfg.BaseURL)
	Tassert(t, cfg.Model == DefaultModel, "unexpected model: %s", cfg.Model)
	Tassert(t, cfg.Timeout == defaultTimeout, "unexpected timeout: %s", cfg.Timeout)
	Tassert(t, cfg.APIKey == "", "unexpected api key: %s", cfg.APIKey)
}

func TestLoadConfigFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, ".ernie.yaml")
	content := "base_url: https://example.com/v2\nmodel: ernie-4.0-8k\ntimeout: 42s\napi_key: file-key\n"
	err := os.WriteFile(path, []byte(content), 0600)
	Tassert(t, err == nil, "writing config file: %v", err)

	cfg, err := LoadConfig(path)
	Tassert(t, err == nil, "LoadConfig returned unexpected error: %v", err)
	Tassert(t, cfg.BaseURL == "https://example.com/v2", "unexpected base URL: %s", cfg.BaseURL)
	Tassert(t, cfg.Model == "ernie-4.0-8k", "unexpected model: %s", cfg.Model)
	Tassert(t, cfg.Timeout == 42*time.Second, "unexpected timeout: %s", cfg.Timeout)
	Tassert(t, cfg.APIKey == "file-key", "unexpected api key: %s", cfg.APIKey)
}

func TestLoadConfigPartialFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, ".ernie.yaml")
	err := os.WriteFile(path, []byte("model: ernie-speed-8k\n"), 0600)
	Tassert(t, err == nil, "writing config file: %v", err)

	// fields absent from the file keep their defaults
	cfg, err := LoadConfig(path)
	Tassert(t, err == nil, "LoadConfig returned unexpected error: %v", err)
	Tassert(t, cfg.Model == "ernie-speed-8k", "unexpected model: %s", cfg.Model)
	Tassert(t, cfg.BaseURL == DefaultBaseURL, "unexpected base URL: %s", cfg.BaseURL)
	Tassert(t, cfg.Timeout == defaultTimeout, "unexpected timeout: %s", cfg.Timeout)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, ".ernie.yaml")
	err := os.WriteFile(path, []byte("base_url: https://file.example.com/v2\napi_key: file-key\n"), 0600)
	Tassert(t, err == nil, "writing config file: %v", err)

	// env vars win over the file
	t.Setenv(EnvBaseURL, "https://env.example.com/v2")
	t.Setenv(EnvAPIKey, "env-key")
	t.Setenv(EnvModel, "ernie-lite-8k")

	cfg, err := LoadConfig(path)
	Tassert(t, err == nil, "LoadConfig returned unexpected error: %v", err)
	Tassert(t, cfg.BaseURL == "https://env.example.com/v2", "unexpected base URL: %s", cfg.BaseURL)
	Tassert(t, cfg.APIKey == "env-key", "unexpected api key: %s", cfg.APIKey)
	Tassert(t, cfg.Model == "ernie-lite-8k", "unexpected model: %s", cfg.Model)
}

func TestLoadConfigInvalidBaseURL(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvBaseURL, "://not-a-url")
	_, err := LoadConfig("")
	Tassert(t, err != nil, "expected error for invalid base URL")
}

func TestLoadConfigMissingFile(t *testing.T) {
	clearEnv(t)
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	Tassert(t, err != nil, "expected error for missing config file")
}

func TestLoadConfigBadTimeout(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, ".ernie.yaml")
	err := os.WriteFile(path, []byte("timeout: bogus\n"), 0600)
	Tassert(t, err == nil, "writing config file: %v", err)
	_, err = LoadConfig(path)
	Tassert(t, err != nil, "expected error for bad timeout")
}
