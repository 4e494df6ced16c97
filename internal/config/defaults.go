package config

const (
	defaultBind                  = "127.0.0.1:8741"
	defaultRequestTimeoutSeconds = 30
	defaultLockDir               = "~/.local/share/bindery"
	defaultCatalogPath           = "data.json"
	defaultNaverBaseURL          = "https://openapi.naver.com"
	defaultNaverTimeoutSeconds   = 10
	defaultNaverRatePerSecond    = 8.0
	defaultNaverBurst            = 1
	defaultCoverBudget           = 18
	defaultCoverResultCount      = 5
	defaultPassThreshold         = 60
	defaultPositiveTTLHours      = 24 * 30
	defaultNegativeTTLHours      = 24
	defaultTransientTTLMinutes   = 10
	defaultCachePath             = "~/.cache/bindery/covers.db"
	defaultDebounceMillis        = 450
	defaultLiveSearchDisplay     = 12
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Server: Server{
			Bind:                  defaultBind,
			RequestTimeoutSeconds: defaultRequestTimeoutSeconds,
			LockDir:               defaultLockDir,
		},
		Catalog: Catalog{
			Path: defaultCatalogPath,
		},
		Naver: Naver{
			BaseURL:        defaultNaverBaseURL,
			TimeoutSeconds: defaultNaverTimeoutSeconds,
			RatePerSecond:  defaultNaverRatePerSecond,
			Burst:          defaultNaverBurst,
		},
		Covers: Covers{
			Budget:              defaultCoverBudget,
			ResultCount:         defaultCoverResultCount,
			PassThreshold:       defaultPassThreshold,
			PositiveTTLHours:    defaultPositiveTTLHours,
			NegativeTTLHours:    defaultNegativeTTLHours,
			TransientTTLMinutes: defaultTransientTTLMinutes,
		},
		Cache: Cache{
			Enabled: true,
			Path:    defaultCachePath,
		},
		LiveSearch: LiveSearch{
			DebounceMillis: defaultDebounceMillis,
			Display:        defaultLiveSearchDisplay,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
