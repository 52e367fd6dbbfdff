package model

import "time"

// Config carries all pipeline settings. The CLI assembles it once from
// defaults, the config file, INDAGO_* environment variables and flags,
// then passes it down; pipeline components never read configuration on
// their own.
type Config struct {
	Search      SearchConfig      `yaml:"search"`
	HTTP        HTTPConfig        `yaml:"http"`
	Cache       CacheConfig       `yaml:"cache"`
	Rank        RankConfig        `yaml:"rank"`
	LLM         LLMConfig         `yaml:"llm"`
	Privacy     PrivacyConfig     `yaml:"privacy"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Output      OutputConfig      `yaml:"output"`
}

// SearchConfig controls query expansion and the meta-search client.
type SearchConfig struct {
	BaseURL    string `yaml:"base_url"`    // SearXNG-compatible endpoint
	MaxQueries int    `yaml:"max_queries"` // cap on expanded query variants
	MaxResults int    `yaml:"max_results"` // result cap after dedupe and diversity prefilter
}

// HTTPConfig controls outbound fetching.
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout"`
	UserAgent    string        `yaml:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
	InsecureTLS  bool          `yaml:"insecure_tls"`
	ProxyURL     string        `yaml:"proxy_url"` // optional outbound proxy
}

// CacheConfig controls the layered fetch cache.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Dir     string        `yaml:"dir"` // disk layer location; empty means memory only
	TTL     time.Duration `yaml:"ttl"`
}

// RankConfig controls document ranking.
type RankConfig struct {
	LLMRerank bool `yaml:"llm_rerank"` // enable the optional LLM rerank pass
	TopDocs   int  `yaml:"top_docs"`   // documents handed to synthesis
}

// LLMConfig selects and configures the chat provider.
type LLMConfig struct {
	Provider string        `yaml:"provider"` // openai, anthropic, ollama
	Model    string        `yaml:"model"`
	APIKey   string        `yaml:"-"` // from environment only, never from file
	BaseURL  string        `yaml:"base_url"`
	Timeout  time.Duration `yaml:"timeout"`
}

// PrivacyConfig controls GDPR mode.
type PrivacyConfig struct {
	GDPRMode bool `yaml:"gdpr_mode"` // redact PII from output, log query length instead of text
}

// ConcurrencyConfig bounds the parallel stages.
type ConcurrencyConfig struct {
	SearchWorkers int     `yaml:"search_workers"` // simultaneous search queries
	FetchWorkers  int     `yaml:"fetch_workers"`  // simultaneous page fetches
	BatchWorkers  int     `yaml:"batch_workers"`  // simultaneous research runs in batch mode
	MaxPages      int     `yaml:"max_pages"`      // search hits handed to the scraper
	PerHostRPS    float64 `yaml:"per_host_rps"`   // politeness rate per scraped host
}

// OutputConfig controls rendering.
type OutputConfig struct {
	Verbose       bool   `yaml:"verbose"`
	IncludeFooter bool   `yaml:"include_footer"`
	MetricsAddr   string `yaml:"metrics_addr"` // optional Prometheus listen address for batch runs
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Search: SearchConfig{
			BaseURL:    "https://searx.be",
			MaxQueries: 8,
			MaxResults: 24,
		},
		HTTP: HTTPConfig{
			Timeout:      15 * time.Second,
			UserAgent:    "Indago/0.1 (+https://github.com/vportnov/indago)",
			MaxBodyBytes: 2_000_000,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     time.Hour,
		},
		Rank: RankConfig{
			TopDocs: 8,
		},
		LLM: LLMConfig{
			Provider: "openai",
			Model:    "gpt-4o-mini",
			Timeout:  60 * time.Second,
		},
		Concurrency: ConcurrencyConfig{
			SearchWorkers: 3,
			FetchWorkers:  5,
			BatchWorkers:  2,
			MaxPages:      12,
			PerHostRPS:    2,
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
	}
}
