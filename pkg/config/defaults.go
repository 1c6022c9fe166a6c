package config

// Default values applied when the config file and environment leave a
// field unset.
const (
	DefaultCachePath     = "embedding_cache.sqlite"
	DefaultCacheMaxItems = 50000

	DefaultOllamaTarget   = "http://localhost:11434"
	DefaultEmbeddingModel = "nomic-embed-text"

	DefaultGenerationModel       = "mistral"
	DefaultGenerationTemperature = 0.2
	DefaultGenerationMaxRetries  = 3

	DefaultProviderCountry = "in"

	DefaultResultsPath = "results.json"

	DefaultDedupeEps       = 0.20
	DefaultDedupeMinPoints = 1
)

// NewDefaultConfig returns a fully-populated Config with the documented
// defaults. It is the single source of truth for default values; viper
// defaults are registered from it.
func NewDefaultConfig() *Config {
	return &Config{
		Cache: CacheConfig{
			Path:     DefaultCachePath,
			MaxItems: DefaultCacheMaxItems,
		},
		Embedding: EmbeddingConfig{
			Target: DefaultOllamaTarget,
			Model:  DefaultEmbeddingModel,
		},
		Generation: GenerationConfig{
			Target:      DefaultOllamaTarget,
			Model:       DefaultGenerationModel,
			Temperature: DefaultGenerationTemperature,
			MaxRetries:  DefaultGenerationMaxRetries,
			// Workers 0 lets the orchestrator size the pool from the
			// available hardware parallelism.
		},
		Providers: ProvidersConfig{
			Country: DefaultProviderCountry,
		},
		Results: ResultsConfig{
			Path: DefaultResultsPath,
		},
		Dedupe: DedupeConfig{
			Eps:       DefaultDedupeEps,
			MinPoints: DefaultDedupeMinPoints,
		},
	}
}
