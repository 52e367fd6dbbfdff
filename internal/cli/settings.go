package cli

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/vportnov/indago/internal/model"
)

// loadConfig builds the run configuration: defaults first, then config
// file and INDAGO_* environment values. Flag overrides are applied by
// each command afterwards, so the order is defaults < file < env < flags.
func loadConfig() model.Config {
	cfg := model.DefaultConfig()

	if v := viper.GetString("search.base_url"); v != "" {
		cfg.Search.BaseURL = v
	}
	if v := viper.GetInt("search.max_queries"); v > 0 {
		cfg.Search.MaxQueries = v
	}
	if v := viper.GetInt("search.max_results"); v > 0 {
		cfg.Search.MaxResults = v
	}

	if v := viper.GetDuration("http.timeout"); v > 0 {
		cfg.HTTP.Timeout = v
	}
	if v := viper.GetString("http.user_agent"); v != "" {
		cfg.HTTP.UserAgent = v
	}
	if v := viper.GetInt64("http.max_body_bytes"); v > 0 {
		cfg.HTTP.MaxBodyBytes = v
	}
	if viper.IsSet("http.insecure_tls") {
		cfg.HTTP.InsecureTLS = viper.GetBool("http.insecure_tls")
	}
	if v := viper.GetString("http.proxy_url"); v != "" {
		cfg.HTTP.ProxyURL = v
	}

	if viper.IsSet("cache.enabled") {
		cfg.Cache.Enabled = viper.GetBool("cache.enabled")
	}
	if v := viper.GetString("cache.dir"); v != "" {
		cfg.Cache.Dir = v
	}
	if v := viper.GetDuration("cache.ttl"); v > 0 {
		cfg.Cache.TTL = v
	}

	if viper.IsSet("rank.llm_rerank") {
		cfg.Rank.LLMRerank = viper.GetBool("rank.llm_rerank")
	}
	if v := viper.GetInt("rank.top_docs"); v > 0 {
		cfg.Rank.TopDocs = v
	}

	if v := viper.GetString("llm.provider"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := viper.GetString("llm.model"); v != "" {
		cfg.LLM.Model = v
	}
	if v := viper.GetString("llm.base_url"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := viper.GetDuration("llm.timeout"); v > 0 {
		cfg.LLM.Timeout = v
	}

	if viper.IsSet("privacy.gdpr_mode") {
		cfg.Privacy.GDPRMode = viper.GetBool("privacy.gdpr_mode")
	}

	if v := viper.GetInt("concurrency.search_workers"); v > 0 {
		cfg.Concurrency.SearchWorkers = v
	}
	if v := viper.GetInt("concurrency.fetch_workers"); v > 0 {
		cfg.Concurrency.FetchWorkers = v
	}
	if v := viper.GetInt("concurrency.batch_workers"); v > 0 {
		cfg.Concurrency.BatchWorkers = v
	}
	if v := viper.GetInt("concurrency.max_pages"); v > 0 {
		cfg.Concurrency.MaxPages = v
	}
	if v := viper.GetFloat64("concurrency.per_host_rps"); v > 0 {
		cfg.Concurrency.PerHostRPS = v
	}

	if viper.IsSet("output.include_footer") {
		cfg.Output.IncludeFooter = viper.GetBool("output.include_footer")
	}
	if v := viper.GetString("output.metrics_addr"); v != "" {
		cfg.Output.MetricsAddr = v
	}

	return cfg
}

// resolveAPIKey fills the provider credential from the environment.
// Keys never come from the config file.
func resolveAPIKey(cfg *model.Config) error {
	switch cfg.LLM.Provider {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "anthropic", "claude":
		cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
	case "ollama":
		// Ollama doesn't need an API key
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	}
	return nil
}
