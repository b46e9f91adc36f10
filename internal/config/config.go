// Package config loads ghfinder configuration from defaults, an optional
// TOML file, ~/.ghfinder/.env and GHFINDER_* environment variables.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/naveenspark/ghfinder/internal/search"
	"github.com/naveenspark/ghfinder/pkg/client"
)

const envPrefix = "GHFINDER"

// Config holds application configuration.
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Search  SearchConfig  `mapstructure:"search"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// APIConfig configures the GitHub client.
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Token   string        `mapstructure:"token"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// SearchConfig configures the search view.
type SearchConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
	Details  bool          `mapstructure:"details"`
}

// LoggingConfig configures the log file.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// Dir returns ~/.ghfinder.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".ghfinder"), nil
}

// DefaultPath returns ~/.ghfinder/config.toml.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// TokenFilePath returns ~/.ghfinder/token.
func TokenFilePath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "token"), nil
}

// Load reads configuration. A missing config file is not an error.
// Real environment variables win over ~/.ghfinder/.env entries.
func Load(path string) (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	if envMap, err := godotenv.Read(filepath.Join(dir, ".env")); err == nil {
		for k, val := range envMap {
			if _, exists := os.LookupEnv(k); !exists {
				_ = os.Setenv(k, val)
			}
		}
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, dir)
	bindEnvs(v)

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			v.SetConfigType("toml")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("config.Load: read %s: %w", path, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config.Load: unmarshal: %w", err)
	}
	cfg.API.Token = resolveToken(cfg.API.Token)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper, dir string) {
	v.SetDefault("api.base_url", client.DefaultBaseURL)
	v.SetDefault("api.token", "")
	v.SetDefault("api.timeout", 10*time.Second)

	v.SetDefault("search.debounce", search.DebounceInterval)
	v.SetDefault("search.details", true)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.file", filepath.Join(dir, "ghfinder.log"))
}

func bindEnvs(v *viper.Viper) {
	keys := []string{
		"api.base_url",
		"api.token",
		"api.timeout",
		"search.debounce",
		"search.details",
		"logging.level",
		"logging.file",
	}
	for _, k := range keys {
		_ = v.BindEnv(k)
	}
}

// resolveToken applies token precedence: GHFINDER_TOKEN > GITHUB_TOKEN >
// configured value > ~/.ghfinder/token.
func resolveToken(configured string) string {
	if tok := os.Getenv("GHFINDER_TOKEN"); tok != "" {
		return tok
	}
	if tok := os.Getenv("GITHUB_TOKEN"); tok != "" {
		return tok
	}
	if configured != "" {
		return configured
	}
	path, err := TokenFilePath()
	if err != nil {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// Validate rejects values the client or search view cannot work with.
func (c Config) Validate() error {
	if c.API.Timeout <= 0 {
		return errors.New("api.timeout must be positive")
	}
	if c.Search.Debounce <= 0 {
		return errors.New("search.debounce must be positive")
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api.base_url %q is not an absolute URL", c.API.BaseURL)
	}
	return nil
}

// TOML renders the configuration with the token redacted.
func (c Config) TOML() (string, error) {
	token := c.API.Token
	if token != "" {
		token = "<redacted>"
	}
	doc := map[string]map[string]any{
		"api": {
			"base_url": c.API.BaseURL,
			"token":    token,
			"timeout":  c.API.Timeout.String(),
		},
		"search": {
			"debounce": c.Search.Debounce.String(),
			"details":  c.Search.Details,
		},
		"logging": {
			"level": c.Logging.Level,
			"file":  c.Logging.File,
		},
	}
	data, err := toml.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("config.TOML: %w", err)
	}
	return string(data), nil
}
