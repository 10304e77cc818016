package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v10"
)

// Provider identifiers accepted by AI_PROVIDER.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderClaude = "claude"
)

// Config holds process-wide runtime configuration. It is loaded once at startup
// and treated as read-only afterwards.
type Config struct {
	// Server
	Port     int    `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Upload limits
	MaxUploadSize int64 `env:"MAX_UPLOAD_SIZE" envDefault:"10485760"` // 10MB in bytes

	// LLM
	AIProvider   string        `env:"AI_PROVIDER" envDefault:"gemini"` // "gemini", "openai" or "claude"
	GeminiAPIKey string        `env:"GEMINI_API_KEY"`
	OpenAIAPIKey string        `env:"OPENAI_API_KEY"`
	ClaudeAPIKey string        `env:"CLAUDE_API_KEY"`
	GeminiModel  string        `env:"GEMINI_MODEL" envDefault:"gemini-1.5-flash"`
	OpenAIModel  string        `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	ClaudeModel  string        `env:"CLAUDE_MODEL" envDefault:"claude-3-haiku-20240307"`
	LLMTimeout   time.Duration `env:"LLM_TIMEOUT" envDefault:"30s"`

	// Study sessions
	PageConcurrency int `env:"PAGE_CONCURRENCY" envDefault:"1"`

	// Resource finder
	SerpAPIKey   string `env:"SERPAPI_API_KEY"`
	WikipediaURL string `env:"WIKIPEDIA_URL" envDefault:"https://en.wikipedia.org"`
}

// Load reads configuration from environment variables with defaults.
func Load() Config {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		slog.Warn("failed to parse env; using defaults where set", "err", err)
	}
	return cfg
}

// APIKey returns the credential for the configured provider.
func (c Config) APIKey() string {
	switch c.AIProvider {
	case ProviderGemini:
		return c.GeminiAPIKey
	case ProviderOpenAI:
		return c.OpenAIAPIKey
	case ProviderClaude:
		return c.ClaudeAPIKey
	default:
		return ""
	}
}

// Model returns the fixed model name for the configured provider.
func (c Config) Model() string {
	switch c.AIProvider {
	case ProviderGemini:
		return c.GeminiModel
	case ProviderOpenAI:
		return c.OpenAIModel
	case ProviderClaude:
		return c.ClaudeModel
	default:
		return ""
	}
}

// Validate reports configuration that would make every provider call fail.
func (c Config) Validate() error {
	switch c.AIProvider {
	case ProviderGemini, ProviderOpenAI, ProviderClaude:
	default:
		return fmt.Errorf("invalid AI_PROVIDER: %q (valid options: gemini, openai, claude)", c.AIProvider)
	}
	if c.APIKey() == "" {
		return fmt.Errorf("%s is required when AI_PROVIDER=%s", keyVar(c.AIProvider), c.AIProvider)
	}
	if c.PageConcurrency < 1 {
		return fmt.Errorf("PAGE_CONCURRENCY must be at least 1, got %d", c.PageConcurrency)
	}
	return nil
}

func keyVar(provider string) string {
	switch provider {
	case ProviderOpenAI:
		return "OPENAI_API_KEY"
	case ProviderClaude:
		return "CLAUDE_API_KEY"
	default:
		return "GEMINI_API_KEY"
	}
}
