package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"bindery/internal/cachedb"
	"bindery/internal/catalog"
	"bindery/internal/config"
	"bindery/internal/covers"
	"bindery/internal/logging"
	"bindery/internal/metrics"
	"bindery/internal/naver"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// engine bundles the collaborators a command needs to resolve covers. Close
// must be called when the store was opened.
type engine struct {
	cfg      *config.Config
	logger   *slog.Logger
	catalog  *catalog.Catalog
	store    *cachedb.DB
	cache    *covers.Cache
	searcher naver.Searcher
	resolver *covers.Resolver
	metrics  *metrics.Metrics
}

func (e *engine) Close() {
	if e.store != nil {
		_ = e.store.Close()
	}
}

// buildEngine assembles the catalog, cache, search client, and resolver from
// the loaded configuration.
func (c *commandContext) buildEngine(logger *slog.Logger) (*engine, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	var store *cachedb.DB
	if cfg.Cache.Enabled {
		store, err = cachedb.Open(cfg.Cache.Path)
		if err != nil {
			return nil, fmt.Errorf("open cover cache: %w", err)
		}
	}
	cache := covers.NewCache(storageOrNil(store), logger)

	m := metrics.New()
	searcher, err := naver.New(cfg.Naver.ClientID, cfg.Naver.ClientSecret, cfg.Naver.BaseURL,
		naver.WithRateLimit(cfg.Naver.RatePerSecond, cfg.Naver.Burst),
		naver.WithHTTPClient(&http.Client{Timeout: cfg.NaverTimeout()}),
		naver.WithMetrics(m),
	)
	if err != nil {
		if store != nil {
			_ = store.Close()
		}
		return nil, fmt.Errorf("build search client: %w", err)
	}

	policy := covers.DefaultPolicy()
	policy.PassThreshold = cfg.Covers.PassThreshold
	policy.ResultCount = cfg.Covers.ResultCount

	resolver, err := covers.NewResolver(covers.ResolverOptions{
		Searcher: searcher,
		Cache:    cache,
		Policy:   policy,
		TTLs: covers.TTLs{
			Positive:  cfg.PositiveTTL(),
			Negative:  cfg.NegativeTTL(),
			Transient: cfg.TransientTTL(),
		},
		Logger:  logger,
		Metrics: m,
	})
	if err != nil {
		if store != nil {
			_ = store.Close()
		}
		return nil, fmt.Errorf("build resolver: %w", err)
	}

	return &engine{
		cfg:      cfg,
		logger:   logger,
		catalog:  cat,
		store:    store,
		cache:    cache,
		searcher: searcher,
		resolver: resolver,
		metrics:  m,
	}, nil
}

// storageOrNil keeps a typed nil *cachedb.DB from sneaking into the cache as
// a non-nil interface.
func storageOrNil(store *cachedb.DB) covers.Storage {
	if store == nil {
		return nil
	}
	return store
}

func (c *commandContext) newLogger(writer *os.File) (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Writer: writer,
	})
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
