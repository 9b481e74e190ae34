package cli

import (
	"os"

	"github.com/spf13/viper"

	"github.com/mgirardot/bibliocheck/internal/model"
)

// loadConfig merges defaults with the config file and environment. Command
// flags apply their own overrides on top of the returned value.
func loadConfig() *model.Config {
	cfg := model.DefaultConfig()

	if v := viper.GetString("services.babelio_base_url"); v != "" {
		cfg.Services.BabelioBaseURL = v
	}
	if v := viper.GetString("services.search_base_url"); v != "" {
		cfg.Services.SearchBaseURL = v
	}
	if v := viper.GetFloat64("services.rate_limit"); v > 0 {
		cfg.Services.RateLimit = v
	}
	if v := viper.GetInt("services.rate_burst"); v > 0 {
		cfg.Services.RateBurst = v
	}
	if v := viper.GetDuration("http.timeout"); v > 0 {
		cfg.HTTP.Timeout = v
	}
	if v := viper.GetString("http.user_agent"); v != "" {
		cfg.HTTP.UserAgent = v
	}
	if viper.IsSet("cache.enabled") {
		cfg.Cache.Enabled = viper.GetBool("cache.enabled")
	}
	if v := viper.GetString("cache.dir"); v != "" {
		cfg.Cache.Dir = v
	}
	if v := viper.GetInt("concurrency.workers"); v > 0 {
		cfg.Concurrency.Workers = v
	}
	if v := viper.GetString("llm.provider"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := viper.GetString("llm.model"); v != "" {
		cfg.LLM.Model = v
	}

	cfg.Output.Verbose = verbose

	// API keys come from the environment, never from the config file.
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		cfg.LLM.APIKey = key
	}

	return cfg
}
