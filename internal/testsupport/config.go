package testsupport

import (
	"path/filepath"
	"testing"

	"bindery/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Server.Bind = "127.0.0.1:0"
	cfgVal.Server.LockDir = filepath.Join(base, "run")
	cfgVal.Catalog.Path = filepath.Join(base, "catalog.json")
	cfgVal.Naver.ClientID = "test-id"
	cfgVal.Naver.ClientSecret = "test-secret"
	cfgVal.Cache.Path = filepath.Join(base, "covers.db")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithCacheDisabled turns the durable cover cache off.
func WithCacheDisabled() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Cache.Enabled = false
	}
}

// WithCatalogPath overrides the catalog data file location.
func WithCatalogPath(path string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Catalog.Path = path
	}
}

// WithNaverBaseURL points the search client at a test server.
func WithNaverBaseURL(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Naver.BaseURL = url
	}
}
