package model

import "time"

// Config is the complete pipeline configuration. Defaults come from
// DefaultConfig; viper layers config file, TESSERA_* environment
// variables and CLI flags on top.
type Config struct {
	Concurrency ConcurrencyConfig `json:"concurrency" yaml:"concurrency" mapstructure:"concurrency"`
	Verify      VerifyConfig      `json:"verify" yaml:"verify" mapstructure:"verify"`
	Cache       CacheConfig       `json:"cache" yaml:"cache" mapstructure:"cache"`
	Registry    RegistryConfig    `json:"registry" yaml:"registry" mapstructure:"registry"`
	Output      OutputConfig      `json:"output" yaml:"output" mapstructure:"output"`
	LLM         LLMConfig         `json:"llm" yaml:"llm" mapstructure:"llm"`
	Logging     LoggingConfig     `json:"logging" yaml:"logging" mapstructure:"logging"`
}

// ConcurrencyConfig bounds the pipeline's worker pools.
type ConcurrencyConfig struct {
	VerificationWorkers int `json:"verification_workers" yaml:"verification_workers" mapstructure:"verification_workers"`
	BatchWorkers        int `json:"batch_workers" yaml:"batch_workers" mapstructure:"batch_workers"`
}

// VerifyConfig tunes the fragment verifier thresholds.
type VerifyConfig struct {
	MinContentLength  int     `json:"min_content_length" yaml:"min_content_length" mapstructure:"min_content_length"`
	MinConfidence     float64 `json:"min_confidence" yaml:"min_confidence" mapstructure:"min_confidence"`
	RecentWindowDays  int     `json:"recent_window_days" yaml:"recent_window_days" mapstructure:"recent_window_days"`
	TemporalMarginYrs int     `json:"temporal_margin_years" yaml:"temporal_margin_years" mapstructure:"temporal_margin_years"`
}

// CacheConfig controls verification-outcome memoization.
type CacheConfig struct {
	Enabled         bool          `json:"enabled" yaml:"enabled" mapstructure:"enabled"`
	TTL             time.Duration `json:"ttl" yaml:"ttl" mapstructure:"ttl"`
	CleanupInterval time.Duration `json:"cleanup_interval" yaml:"cleanup_interval" mapstructure:"cleanup_interval"`
}

// RegistryConfig configures the external-registry collaborator. Lookups
// are advisory: a miss or timeout never fails a verification check.
type RegistryConfig struct {
	Enabled           bool          `json:"enabled" yaml:"enabled" mapstructure:"enabled"`
	BaseURL           string        `json:"base_url" yaml:"base_url" mapstructure:"base_url"`
	Timeout           time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`
	MaxRetries        int           `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
	RequestsPerSecond float64       `json:"requests_per_second" yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int           `json:"burst" yaml:"burst" mapstructure:"burst"`
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	Verbose       bool `json:"verbose" yaml:"verbose" mapstructure:"verbose"`
	IncludeFooter bool `json:"include_footer" yaml:"include_footer" mapstructure:"include_footer"`
}

// LLMConfig configures the optional narrative summarizer. The summary is
// generated after scoring and never affects any score.
type LLMConfig struct {
	Provider  string `json:"provider" yaml:"provider" mapstructure:"provider"` // "openai" or "" (disabled)
	Model     string `json:"model" yaml:"model" mapstructure:"model"`
	APIKey    string `json:"-" yaml:"-" mapstructure:"api_key"`
	BaseURL   string `json:"base_url,omitempty" yaml:"base_url,omitempty" mapstructure:"base_url"`
	Timeout   int    `json:"timeout" yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens int    `json:"max_tokens" yaml:"max_tokens" mapstructure:"max_tokens"`
}

// LoggingConfig selects the zap encoder profile.
type LoggingConfig struct {
	Development bool   `json:"development" yaml:"development" mapstructure:"development"`
	Level       string `json:"level" yaml:"level" mapstructure:"level"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Concurrency: ConcurrencyConfig{
			VerificationWorkers: 8,
			BatchWorkers:        4,
		},
		Verify: VerifyConfig{
			MinContentLength:  10,
			MinConfidence:     50,
			RecentWindowDays:  365,
			TemporalMarginYrs: 10,
		},
		Cache: CacheConfig{
			Enabled:         true,
			TTL:             30 * time.Minute,
			CleanupInterval: 10 * time.Minute,
		},
		Registry: RegistryConfig{
			Enabled:           false,
			Timeout:           10 * time.Second,
			MaxRetries:        3,
			RequestsPerSecond: 2,
			Burst:             5,
		},
		Output: OutputConfig{
			Verbose:       false,
			IncludeFooter: true,
		},
		LLM: LLMConfig{
			Provider:  "",
			Timeout:   30,
			MaxTokens: 1000,
		},
		Logging: LoggingConfig{
			Development: false,
			Level:       "info",
		},
	}
}
