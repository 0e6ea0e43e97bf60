// Package config provides configuration types and helpers for loglens.
package config

// Config holds the application-wide configuration.
type Config struct {
	Format  string        `mapstructure:"format"`
	Verbose bool          `mapstructure:"verbose"`
	Extract ExtractConfig `mapstructure:"extract"`
	LLM     LLMConfig     `mapstructure:"llm"`
}

// ExtractConfig holds the extractor parameters.
type ExtractConfig struct {
	// ContextLines is the number of lines kept before and after each
	// matched error line.
	ContextLines int `mapstructure:"context_lines"`

	// MaxSections caps the number of error sections emitted per file.
	MaxSections int `mapstructure:"max_sections"`
}

// LLMConfig holds configuration for LLM providers.
type LLMConfig struct {
	// Provider selects which LLM to use. Currently only "ollama".
	Provider string `mapstructure:"provider"`

	// Global settings applied to all providers
	Temperature float32 `mapstructure:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"`

	Ollama OllamaConfig `mapstructure:"ollama"`
}

// OllamaConfig holds Ollama-specific settings.
type OllamaConfig struct {
	Host      string `mapstructure:"host"`       // API endpoint
	Model     string `mapstructure:"model"`      // Default model name
	KeepAlive string `mapstructure:"keep_alive"` // e.g., "5m"
	NumCtx    int    `mapstructure:"num_ctx"`    // Context window size
}
