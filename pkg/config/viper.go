package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// InitViper creates and returns a configured *viper.Viper.
// It sets defaults from NewDefaultConfig(), reads the config file at
// configPath (or config.toml from the working directory when empty), and
// binds environment variables with the FLASHPIPE_ prefix.
//
// Config precedence (highest to lowest):
//  1. Environment variables (FLASHPIPE_CACHE_PATH, FLASHPIPE_PROVIDERS_GNEWS_KEY, ...)
//  2. Config file values
//  3. Defaults from NewDefaultConfig()
func InitViper(configPath string) (*viper.Viper, error) {
	v := viper.New()

	setViperDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine, defaults will apply — unless
		// the caller named one explicitly.
		if configPath != "" || !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	v.SetEnvPrefix("FLASHPIPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v, nil
}

// Load resolves the effective configuration from the given viper instance.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return cfg, nil
}

// setViperDefaults registers defaults from NewDefaultConfig() into viper
// using dotted-key notation. This keeps defaults.go as the single source of truth.
func setViperDefaults(v *viper.Viper) {
	d := NewDefaultConfig()

	// Cache
	v.SetDefault("cache.path", d.Cache.Path)
	v.SetDefault("cache.max_items", d.Cache.MaxItems)

	// Embedding
	v.SetDefault("embedding.target", d.Embedding.Target)
	v.SetDefault("embedding.model", d.Embedding.Model)

	// Generation
	v.SetDefault("generation.target", d.Generation.Target)
	v.SetDefault("generation.model", d.Generation.Model)
	v.SetDefault("generation.temperature", d.Generation.Temperature)
	v.SetDefault("generation.max_retries", d.Generation.MaxRetries)
	v.SetDefault("generation.workers", d.Generation.Workers)

	// Providers
	v.SetDefault("providers.newsdata_key", d.Providers.NewsdataKey)
	v.SetDefault("providers.newsapi_key", d.Providers.NewsAPIKey)
	v.SetDefault("providers.gnews_key", d.Providers.GNewsKey)
	v.SetDefault("providers.country", d.Providers.Country)

	// Results
	v.SetDefault("results.path", d.Results.Path)

	// Dedupe
	v.SetDefault("dedupe.eps", d.Dedupe.Eps)
	v.SetDefault("dedupe.min_points", d.Dedupe.MinPoints)
}
