package model

import "time"

// Config holds the complete bibliocheck configuration
type Config struct {
	Services    ServicesConfig    `yaml:"services"`
	HTTP        HTTPConfig        `yaml:"http"`
	Cache       CacheConfig       `yaml:"cache"`
	LLM         LLMConfig         `yaml:"llm"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Output      OutputConfig      `yaml:"output"`
}

// ServicesConfig locates the two evidence services
type ServicesConfig struct {
	// BabelioBaseURL is the base URL of the bibliographic reference service
	BabelioBaseURL string `yaml:"babelio_base_url"`

	// SearchBaseURL is the base URL of the episode-scoped fuzzy index
	SearchBaseURL string `yaml:"search_base_url"`

	// RateLimit caps reference-service calls (requests per second). The
	// service throttles aggressively, so synchronous batches should stay
	// around one call per second.
	RateLimit float64 `yaml:"rate_limit"`

	// RateBurst is the limiter burst size
	RateBurst int `yaml:"rate_burst"`
}

// HTTPConfig controls the outbound HTTP clients
type HTTPConfig struct {
	Timeout    time.Duration `yaml:"timeout"`
	UserAgent  string        `yaml:"user_agent"`
	HTTPProxy  string        `yaml:"http_proxy,omitempty"`
	HTTPSProxy string        `yaml:"https_proxy,omitempty"`
	NoProxy    string        `yaml:"no_proxy,omitempty"`
}

// CacheConfig controls response and extraction-list caching
type CacheConfig struct {
	Enabled       bool          `yaml:"enabled"`
	Dir           string        `yaml:"dir"`
	MemoryTTL     time.Duration `yaml:"memory_ttl"`
	DiskTTL       time.Duration `yaml:"disk_ttl"`
	ExtractionTTL time.Duration `yaml:"extraction_ttl"`
}

// LLMConfig configures the transcript triple extractor
type LLMConfig struct {
	Provider  string `yaml:"provider"` // "openai" or "" (disabled)
	Model     string `yaml:"model"`
	APIKey    string `yaml:"api_key,omitempty"`
	BaseURL   string `yaml:"base_url,omitempty"`
	Timeout   int    `yaml:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens"`
}

// ConcurrencyConfig controls batch validation parallelism
type ConcurrencyConfig struct {
	Workers int `yaml:"workers"`
}

// OutputConfig controls rendering
type OutputConfig struct {
	Verbose bool   `yaml:"verbose"`
	Format  string `yaml:"format"` // "json" or "yaml"
}

// DefaultConfig returns the built-in defaults. Flags, env vars and the config
// file override these (in that priority order).
func DefaultConfig() *Config {
	return &Config{
		Services: ServicesConfig{
			BabelioBaseURL: "https://babelio-gw.example.org",
			SearchBaseURL:  "http://localhost:8500",
			RateLimit:      1.0,
			RateBurst:      1,
		},
		HTTP: HTTPConfig{
			Timeout:   15 * time.Second,
			UserAgent: "bibliocheck/0.2 (+https://github.com/mgirardot/bibliocheck)",
		},
		Cache: CacheConfig{
			Enabled:       true,
			Dir:           "", // resolved to ~/.bibliocheck/cache by the CLI
			MemoryTTL:     10 * time.Minute,
			DiskTTL:       24 * time.Hour,
			ExtractionTTL: 30 * time.Minute,
		},
		LLM: LLMConfig{
			Provider:  "",
			Model:     "",
			Timeout:   30,
			MaxTokens: 2000,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		Output: OutputConfig{
			Verbose: false,
			Format:  "json",
		},
	}
}
