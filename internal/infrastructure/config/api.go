package config

import "time"

// APIConfig holds price feed client configuration
type APIConfig struct {
	// Server selects the game world: default, deadman, fresh-start
	Server string `mapstructure:"server" validate:"required,oneof=default deadman fresh-start"`

	// BaseURL overrides the server's URL, e.g. for a caching proxy
	BaseURL string `mapstructure:"base_url" validate:"omitempty,url"`

	// UserAgent is sent with every request; the feed blocks generic agents
	UserAgent string `mapstructure:"user_agent" validate:"required"`

	// Request timeout
	Timeout time.Duration `mapstructure:"timeout" validate:"required"`

	RateLimit      RateLimitConfig      `mapstructure:"rate_limit"`
	Retry          RetryConfig          `mapstructure:"retry"`
	CircuitBreaker CircuitBreakerConfig `mapstructure:"circuit_breaker"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	// Maximum requests per second
	Requests float64 `mapstructure:"requests" validate:"gt=0"`

	// Burst size for token bucket
	Burst int `mapstructure:"burst" validate:"min=1"`
}

// RetryConfig holds retry configuration for failed requests
type RetryConfig struct {
	// Maximum number of retry attempts
	MaxAttempts int `mapstructure:"max_attempts" validate:"min=0"`

	// Base duration for exponential backoff
	BackoffBase time.Duration `mapstructure:"backoff_base"`
}

// CircuitBreakerConfig holds the failure tolerance of the feed client
type CircuitBreakerConfig struct {
	// Consecutive failed requests before the breaker opens
	MaxFailures int `mapstructure:"max_failures" validate:"min=1"`

	// How long the breaker stays open before a trial request
	Timeout time.Duration `mapstructure:"timeout"`
}

// CatalogConfig controls the in-memory caches and item search
type CatalogConfig struct {
	CacheTTL        time.Duration `mapstructure:"cache_ttl"`
	LatestTTL       time.Duration `mapstructure:"latest_ttl"`
	SearchThreshold int           `mapstructure:"search_threshold" validate:"min=1,max=100"`
}

// CalculatorConfig holds defaults for calculator commands
type CalculatorConfig struct {
	Volume        float64       `mapstructure:"volume" validate:"gt=0"`
	SmithingLevel int           `mapstructure:"smithing_level" validate:"min=1,max=120"`
	Top           int           `mapstructure:"top" validate:"min=0"`
	Timestep      string        `mapstructure:"timestep" validate:"timestep"`
	WatchInterval time.Duration `mapstructure:"watch_interval" validate:"min=1s"`
}
