package config

import "time"

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// API defaults
	if cfg.API.Server == "" {
		cfg.API.Server = "default"
	}
	if cfg.API.UserAgent == "" {
		cfg.API.UserAgent = "grandexchange-go - price calculator"
	}
	if cfg.API.Timeout == 0 {
		cfg.API.Timeout = 30 * time.Second
	}
	if cfg.API.RateLimit.Requests == 0 {
		cfg.API.RateLimit.Requests = 2
	}
	if cfg.API.RateLimit.Burst == 0 {
		cfg.API.RateLimit.Burst = 2
	}
	if cfg.API.Retry.MaxAttempts == 0 {
		cfg.API.Retry.MaxAttempts = 3
	}
	if cfg.API.Retry.BackoffBase == 0 {
		cfg.API.Retry.BackoffBase = 1 * time.Second
	}
	if cfg.API.CircuitBreaker.MaxFailures == 0 {
		cfg.API.CircuitBreaker.MaxFailures = 5
	}
	if cfg.API.CircuitBreaker.Timeout == 0 {
		cfg.API.CircuitBreaker.Timeout = time.Minute
	}

	// Catalog defaults
	if cfg.Catalog.CacheTTL == 0 {
		cfg.Catalog.CacheTTL = 24 * time.Hour
	}
	if cfg.Catalog.LatestTTL == 0 {
		cfg.Catalog.LatestTTL = time.Minute
	}
	if cfg.Catalog.SearchThreshold == 0 {
		cfg.Catalog.SearchThreshold = 90
	}

	// Calculator defaults
	if cfg.Calculator.Volume == 0 {
		cfg.Calculator.Volume = 1
	}
	if cfg.Calculator.SmithingLevel == 0 {
		cfg.Calculator.SmithingLevel = 1
	}
	if cfg.Calculator.Top == 0 {
		cfg.Calculator.Top = 10
	}
	if cfg.Calculator.Timestep == "" {
		cfg.Calculator.Timestep = "5m"
	}
	if cfg.Calculator.WatchInterval == 0 {
		cfg.Calculator.WatchInterval = time.Minute
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stderr"
	}

	// Metrics defaults
	if cfg.Metrics.Host == "" {
		cfg.Metrics.Host = "localhost"
	}
	if cfg.Metrics.Port == 0 {
		cfg.Metrics.Port = 9100
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
}
