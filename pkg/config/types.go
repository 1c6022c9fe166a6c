// Package config holds the flashpipe configuration: defaults, the TOML
// file format, and viper wiring for file, environment and flag overrides.
package config

// Config is the persistent flashpipe configuration stored as config.toml.
// The TOML layout uses sections for logical grouping.
type Config struct {
	Cache      CacheConfig      `toml:"cache" mapstructure:"cache"`
	Embedding  EmbeddingConfig  `toml:"embedding" mapstructure:"embedding"`
	Generation GenerationConfig `toml:"generation" mapstructure:"generation"`
	Providers  ProvidersConfig  `toml:"providers" mapstructure:"providers"`
	Results    ResultsConfig    `toml:"results" mapstructure:"results"`
	Dedupe     DedupeConfig     `toml:"dedupe" mapstructure:"dedupe"`
}

// CacheConfig holds embedding-cache settings.
type CacheConfig struct {
	Path     string `toml:"path,omitempty" mapstructure:"path"`
	MaxItems int    `toml:"max_items,omitempty" mapstructure:"max_items"`
}

// EmbeddingConfig holds embedding provider settings.
type EmbeddingConfig struct {
	Target string `toml:"target,omitempty" mapstructure:"target"`
	Model  string `toml:"model,omitempty" mapstructure:"model"`
}

// GenerationConfig holds flashcard generation settings.
type GenerationConfig struct {
	Target      string  `toml:"target,omitempty" mapstructure:"target"`
	Model       string  `toml:"model,omitempty" mapstructure:"model"`
	Temperature float64 `toml:"temperature,omitempty" mapstructure:"temperature"`
	MaxRetries  int     `toml:"max_retries,omitempty" mapstructure:"max_retries"`
	Workers     int     `toml:"workers,omitempty" mapstructure:"workers"`
}

// ProvidersConfig holds per-provider API keys and shared query settings.
type ProvidersConfig struct {
	NewsdataKey string `toml:"newsdata_key,omitempty" mapstructure:"newsdata_key"`
	NewsAPIKey  string `toml:"newsapi_key,omitempty" mapstructure:"newsapi_key"`
	GNewsKey    string `toml:"gnews_key,omitempty" mapstructure:"gnews_key"`
	Country     string `toml:"country,omitempty" mapstructure:"country"`
}

// ResultsConfig holds results-store settings.
type ResultsConfig struct {
	Path string `toml:"path,omitempty" mapstructure:"path"`
}

// DedupeConfig holds clustering settings.
type DedupeConfig struct {
	Eps       float64 `toml:"eps,omitempty" mapstructure:"eps"`
	MinPoints int     `toml:"min_points,omitempty" mapstructure:"min_points"`
}
