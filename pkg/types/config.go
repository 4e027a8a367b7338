package types

import "time"

// HTTPConfig holds shared HTTP settings for the upstream content API.
type HTTPConfig struct {
	// Timeout is the connection-level request timeout (default 10s).
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with requests
	// (e.g. "guardian-mcp/1.0.0").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// GatewayConfig holds settings for the content API client.
type GatewayConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// BaseURL is the content API endpoint (default https://content.guardianapis.com).
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// APIKey is the single process-wide credential. Never serialized.
	APIKey string `json:"-" yaml:"-" mapstructure:"api_key"`
}

// AnalysisConfig holds settings shared by the analytical components.
type AnalysisConfig struct {
	// PacingDelay is the minimum spacing between consecutive upstream calls
	// issued by one multi-call operation (default 100ms, 0 disables).
	PacingDelay time.Duration `json:"pacing_delay" yaml:"pacing_delay" mapstructure:"pacing_delay"`
}

// Config groups the process configuration.
type Config struct {
	Gateway  GatewayConfig  `json:"gateway" yaml:"gateway" mapstructure:"gateway"`
	Analysis AnalysisConfig `json:"analysis" yaml:"analysis" mapstructure:"analysis"`

	// LogLevel is one of debug, info, warn, error (default info).
	LogLevel string `json:"log_level" yaml:"log_level" mapstructure:"log_level"`
}
