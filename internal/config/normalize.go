package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeNaver()
	c.normalizeCovers()
	c.normalizeLiveSearch()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Server.LockDir) == "" {
		c.Server.LockDir = defaultLockDir
	}
	if c.Server.LockDir, err = expandPath(c.Server.LockDir); err != nil {
		return fmt.Errorf("server.lock_dir: %w", err)
	}
	if c.Catalog.Path, err = expandPath(c.Catalog.Path); err != nil {
		return fmt.Errorf("catalog.path: %w", err)
	}
	if strings.TrimSpace(c.Cache.Path) == "" {
		c.Cache.Path = defaultCachePath
	}
	if c.Cache.Path, err = expandPath(c.Cache.Path); err != nil {
		return fmt.Errorf("cache.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeNaver() {
	c.Naver.ClientID = strings.TrimSpace(c.Naver.ClientID)
	c.Naver.ClientSecret = strings.TrimSpace(c.Naver.ClientSecret)
	c.Naver.BaseURL = strings.TrimRight(strings.TrimSpace(c.Naver.BaseURL), "/")
	if c.Naver.BaseURL == "" {
		c.Naver.BaseURL = defaultNaverBaseURL
	}
	if c.Naver.TimeoutSeconds <= 0 {
		c.Naver.TimeoutSeconds = defaultNaverTimeoutSeconds
	}
	if c.Naver.RatePerSecond <= 0 {
		c.Naver.RatePerSecond = defaultNaverRatePerSecond
	}
	if c.Naver.Burst <= 0 {
		c.Naver.Burst = defaultNaverBurst
	}
}

func (c *Config) normalizeCovers() {
	if c.Covers.Budget <= 0 {
		c.Covers.Budget = defaultCoverBudget
	}
	if c.Covers.ResultCount <= 0 {
		c.Covers.ResultCount = defaultCoverResultCount
	}
	if c.Covers.PassThreshold <= 0 {
		c.Covers.PassThreshold = defaultPassThreshold
	}
	if c.Covers.PositiveTTLHours <= 0 {
		c.Covers.PositiveTTLHours = defaultPositiveTTLHours
	}
	if c.Covers.NegativeTTLHours <= 0 {
		c.Covers.NegativeTTLHours = defaultNegativeTTLHours
	}
	if c.Covers.TransientTTLMinutes <= 0 {
		c.Covers.TransientTTLMinutes = defaultTransientTTLMinutes
	}
}

func (c *Config) normalizeLiveSearch() {
	if c.LiveSearch.DebounceMillis <= 0 {
		c.LiveSearch.DebounceMillis = defaultDebounceMillis
	}
	if c.LiveSearch.Display <= 0 {
		c.LiveSearch.Display = defaultLiveSearchDisplay
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
