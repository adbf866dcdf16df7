package erniechat

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const defaultTimeout = 120 * time.Second

// Environment variables recognized by LoadConfig.
const (
	EnvAPIKey  = "QIANFAN_API_KEY"
	EnvBaseURL = "QIANFAN_BASE_URL"
	EnvModel   = "ERNIE_MODEL"
)

// Config holds the settings for one Client.  It is constructed once at
// startup and treated as immutable afterwards.
type Config struct {
	// BaseURL is the endpoint root, e.g. https://qianfan.baidubce.com/v2
	BaseURL string
	// APIKey is the secret credential.  Prefer setting it via the
	// QIANFAN_API_KEY environment variable rather than the config file.
	APIKey string
	// Model is the default chat completion model.
	Model string
	// Timeout is the HTTP client timeout for one round trip.
	Timeout time.Duration
}

// NewConfig returns a Config populated with defaults.
func NewConfig() *Config {
	return &Config{
		BaseURL: DefaultBaseURL,
		Model:   DefaultModel,
		Timeout: defaultTimeout,
	}
}

// LoadConfig builds a Config by layering, in order: built-in defaults,
// the YAML file at path (skipped when path is empty), and environment
// variable overrides.  The result is validated before being returned.
func LoadConfig(path string) (cfg *Config, err error) {
	cfg = NewConfig()

	if path != "" {
		buf, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		// Timeout is a duration string in the file, e.g. "30s".
		var file struct {
			BaseURL string `yaml:"base_url"`
			APIKey  string `yaml:"api_key"`
			Model   string `yaml:"model"`
			Timeout string `yaml:"timeout"`
		}
		if err := yaml.Unmarshal(buf, &file); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		if file.BaseURL != "" {
			cfg.BaseURL = file.BaseURL
		}
		if file.APIKey != "" {
			cfg.APIKey = file.APIKey
		}
		if file.Model != "" {
			cfg.Model = file.Model
		}
		if file.Timeout != "" {
			timeout, err := time.ParseDuration(file.Timeout)
			if err != nil {
				return nil, fmt.Errorf("parse %s: timeout: %w", path, err)
			}
			cfg.Timeout = timeout
		}
	}

	if v := os.Getenv(EnvBaseURL); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv(EnvAPIKey); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv(EnvModel); v != "" {
		cfg.Model = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the base URL is syntactically valid.  The API
// key is deliberately not checked here -- the remote service rejects
// missing or invalid credentials.
func (cfg *Config) Validate() error {
	u, err := url.Parse(cfg.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid base URL %q", cfg.BaseURL)
	}
	return nil
}

// DefaultConfigPath returns the first config file found in the current
// directory or the home directory, or the empty string if neither
// exists.
func DefaultConfigPath() string {
	candidates := []string{".ernie.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".ernie.yaml"))
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
