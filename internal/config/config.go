package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Server contains HTTP server configuration.
type Server struct {
	Bind                  string `toml:"bind"`
	RequestTimeoutSeconds int    `toml:"request_timeout_seconds"`
	LockDir               string `toml:"lock_dir"`
}

// Catalog contains the book catalog source configuration.
type Catalog struct {
	Path string `toml:"path"`
}

// Naver contains credentials and tuning for the Naver Book Search API.
type Naver struct {
	ClientID       string  `toml:"client_id"`
	ClientSecret   string  `toml:"client_secret"`
	BaseURL        string  `toml:"base_url"`
	TimeoutSeconds int     `toml:"timeout_seconds"`
	RatePerSecond  float64 `toml:"rate_per_second"`
	Burst          int     `toml:"burst"`
}

// Covers contains cover resolution policy settings.
type Covers struct {
	Budget              int `toml:"budget"`
	ResultCount         int `toml:"result_count"`
	PassThreshold       int `toml:"pass_threshold"`
	PositiveTTLHours    int `toml:"positive_ttl_hours"`
	NegativeTTLHours    int `toml:"negative_ttl_hours"`
	TransientTTLMinutes int `toml:"transient_ttl_minutes"`
}

// Cache contains the durable cover cache configuration.
type Cache struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// LiveSearch contains settings for the search-as-you-type panel flow.
type LiveSearch struct {
	DebounceMillis int `toml:"debounce_millis"`
	Display        int `toml:"display"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for bindery.
//
// Configuration sections by subsystem:
//   - Server: HTTP bind address and request timeout
//   - Catalog: path to the catalog data file
//   - Naver: Naver Book Search API credentials and rate limit
//   - Covers: resolution budget, result count, scoring threshold, TTLs
//   - Cache: durable cover cache location
//   - LiveSearch: debounce delay and result count for the live panel
//   - Logging: log format and level
type Config struct {
	Server     Server     `toml:"server"`
	Catalog    Catalog    `toml:"catalog"`
	Naver      Naver      `toml:"naver"`
	Covers     Covers     `toml:"covers"`
	Cache      Cache      `toml:"cache"`
	LiveSearch LiveSearch `toml:"live_search"`
	Logging    Logging    `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/bindery/config.toml")
}

// SampleConfig returns the embedded sample configuration document.
func SampleConfig() string {
	return sampleConfig
}

// Load locates, parses, and validates a configuration file. The returned config
// has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("bindery.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories the server needs at runtime.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Server.LockDir}
	if strings.TrimSpace(c.Cache.Path) != "" {
		dirs = append(dirs, filepath.Dir(c.Cache.Path))
	}
	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// RequestTimeout returns the HTTP request timeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Server.RequestTimeoutSeconds) * time.Second
}

// NaverTimeout returns the outbound search timeout as a duration.
func (c *Config) NaverTimeout() time.Duration {
	return time.Duration(c.Naver.TimeoutSeconds) * time.Second
}

// PositiveTTL returns the cache lifetime for confirmed covers.
func (c *Config) PositiveTTL() time.Duration {
	return time.Duration(c.Covers.PositiveTTLHours) * time.Hour
}

// NegativeTTL returns the cache lifetime for searched-but-unmatched records.
func (c *Config) NegativeTTL() time.Duration {
	return time.Duration(c.Covers.NegativeTTLHours) * time.Hour
}

// TransientTTL returns the cache lifetime for failed resolution attempts.
func (c *Config) TransientTTL() time.Duration {
	return time.Duration(c.Covers.TransientTTLMinutes) * time.Minute
}

// Debounce returns the live search debounce delay as a duration.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.LiveSearch.DebounceMillis) * time.Millisecond
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}
