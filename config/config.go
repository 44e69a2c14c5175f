// Package config loads application configuration from a YAML file plus
// ARTICLER_* environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the article assistant.
type Config struct {
	General   GeneralConfig   `mapstructure:"general"`
	LLM       LLMConfig       `mapstructure:"llm"`
	Article   ArticleConfig   `mapstructure:"article"`
	Search    SearchConfig    `mapstructure:"search"`
	Fetch     FetchConfig     `mapstructure:"fetch"`
	Server    ServerConfig    `mapstructure:"server"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// GeneralConfig contains general application settings.
type GeneralConfig struct {
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
}

// LLMConfig configures the model provider.
type LLMConfig struct {
	Provider    string        `mapstructure:"provider"` // openai
	APIKey      string        `mapstructure:"api_key"`
	BaseURL     string        `mapstructure:"base_url"`
	Temperature float64       `mapstructure:"temperature"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Timeout     time.Duration `mapstructure:"timeout"`
	Routing     RoutingConfig `mapstructure:"routing"`
}

// RoutingConfig selects a model per agent role.
type RoutingConfig struct {
	Architect string `mapstructure:"architect"`
	Stylist   string `mapstructure:"stylist"`
	Scriber   string `mapstructure:"scriber"`
	Reviewer  string `mapstructure:"reviewer"`
	Fallback  string `mapstructure:"fallback"`
}

// ModelFor returns the model routed to a role, falling back when unset.
func (r RoutingConfig) ModelFor(role string) string {
	var model string
	switch role {
	case "architect":
		model = r.Architect
	case "stylist":
		model = r.Stylist
	case "scriber":
		model = r.Scriber
	case "reviewer":
		model = r.Reviewer
	}
	if model == "" {
		model = r.Fallback
	}
	return model
}

// ArticleConfig carries generation defaults.
type ArticleConfig struct {
	TargetLanguage string `mapstructure:"target_language"`
	TargetAudience string `mapstructure:"target_audience"`
	BodySections   int    `mapstructure:"body_sections"` // sections apart from introduction and conclusion
}

// SearchConfig configures the optional web_search tool.
type SearchConfig struct {
	Provider     string `mapstructure:"provider"` // serper or brave
	SerperAPIKey string `mapstructure:"serper_api_key"`
	BraveAPIKey  string `mapstructure:"brave_api_key"`
	MaxResults   int    `mapstructure:"max_results"`
}

// Enabled reports whether a search backend is usable.
func (s SearchConfig) Enabled() bool {
	switch s.Provider {
	case "serper":
		return s.SerperAPIKey != ""
	case "brave":
		return s.BraveAPIKey != ""
	}
	return false
}

// APIKey returns the key for the selected backend.
func (s SearchConfig) APIKey() string {
	switch s.Provider {
	case "serper":
		return s.SerperAPIKey
	case "brave":
		return s.BraveAPIKey
	}
	return ""
}

// FetchConfig configures the optional web_fetch tool.
type FetchConfig struct {
	Timeout  time.Duration `mapstructure:"timeout"`
	MaxChars int           `mapstructure:"max_chars"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Address string `mapstructure:"address"`
}

// TelemetryConfig contains telemetry and cost tracking switches.
type TelemetryConfig struct {
	Enabled      bool `mapstructure:"enabled"`
	CostTracking bool `mapstructure:"cost_tracking"`
}

// Load reads configuration from the given file, or from config.yaml in the
// usual locations when path is empty.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetDefault("general.log_level", "info")
	v.SetDefault("llm.provider", "openai")
	v.SetDefault("llm.temperature", 0.7)
	v.SetDefault("llm.timeout", 2*time.Minute)
	v.SetDefault("llm.routing.fallback", "gpt-4o-mini")
	v.SetDefault("article.target_language", "English")
	v.SetDefault("article.target_audience", "general readers")
	v.SetDefault("article.body_sections", 3)
	v.SetDefault("search.max_results", 5)
	v.SetDefault("fetch.timeout", 30*time.Second)
	v.SetDefault("fetch.max_chars", 12000)
	v.SetDefault("server.address", ":8080")
	v.SetDefault("telemetry.enabled", true)
	v.SetDefault("telemetry.cost_tracking", true)

	if path == "" {
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	} else {
		v.SetConfigFile(path)
	}

	v.SetEnvPrefix("ARTICLER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine when env vars carry the required keys.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks settings that have no workable defaults.
func (c *Config) Validate() error {
	if c.LLM.Provider != "openai" {
		return fmt.Errorf("llm.provider %q is not supported", c.LLM.Provider)
	}
	if c.Article.BodySections < 1 {
		return fmt.Errorf("article.body_sections must be at least 1")
	}
	if c.Search.Provider != "" && c.Search.Provider != "serper" && c.Search.Provider != "brave" {
		return fmt.Errorf("search.provider %q is not supported", c.Search.Provider)
	}
	return nil
}
