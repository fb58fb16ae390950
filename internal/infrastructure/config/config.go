package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. GE_API_USER_AGENT
const EnvPrefix = "GE"

// Config is the main configuration struct combining all sub-configs
type Config struct {
	API        APIConfig        `mapstructure:"api"`
	Catalog    CatalogConfig    `mapstructure:"catalog"`
	Calculator CalculatorConfig `mapstructure:"calculator"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
}

// LoadConfig loads configuration from multiple sources with priority:
// 1. Environment variables (highest priority)
// 2. Config file (config.yaml)
// 3. Defaults (lowest priority)
func LoadConfig(configPath string) (*Config, error) {
	// Load .env file if it exists (doesn't error if missing)
	_ = godotenv.Load()

	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("$HOME/.config/grandexchange")
		v.AddConfigPath("/etc/grandexchange")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnv(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is OK - we'll use env vars and defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	SetDefaults(&cfg)

	if err := ValidateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// LoadConfigOrDefault loads configuration or returns a default config on error
func LoadConfigOrDefault(configPath string) *Config {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		defaultCfg := &Config{}
		SetDefaults(defaultCfg)
		return defaultCfg
	}
	return cfg
}

// bindEnv registers every key so AutomaticEnv overrides work without a config file.
// viper only consults the environment for keys it already knows about during Unmarshal.
func bindEnv(v *viper.Viper) {
	keys := []string{
		"api.server", "api.base_url", "api.user_agent", "api.timeout",
		"api.rate_limit.requests", "api.rate_limit.burst",
		"api.retry.max_attempts", "api.retry.backoff_base",
		"api.circuit_breaker.max_failures", "api.circuit_breaker.timeout",
		"catalog.cache_ttl", "catalog.latest_ttl", "catalog.search_threshold",
		"calculator.volume", "calculator.smithing_level", "calculator.top", "calculator.timestep", "calculator.watch_interval",
		"logging.level", "logging.format", "logging.output", "logging.file_path", "logging.color", "logging.include_caller",
		"metrics.enabled", "metrics.host", "metrics.port", "metrics.path",
	}
	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}
