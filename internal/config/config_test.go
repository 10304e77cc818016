package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	// Save original env and restore after test
	originalEnv := os.Environ()
	defer func() {
		os.Clearenv()
		for _, env := range originalEnv {
			for i, c := range env {
				if c == '=' {
					os.Setenv(env[:i], env[i+1:])
					break
				}
			}
		}
	}()

	os.Clearenv()

	cfg := Load()

	tests := []struct {
		name     string
		got      interface{}
		expected interface{}
	}{
		{"Port", cfg.Port, 8080},
		{"LogLevel", cfg.LogLevel, "info"},
		{"AIProvider", cfg.AIProvider, "gemini"},
		{"GeminiModel", cfg.GeminiModel, "gemini-1.5-flash"},
		{"OpenAIModel", cfg.OpenAIModel, "gpt-4o-mini"},
		{"ClaudeModel", cfg.ClaudeModel, "claude-3-haiku-20240307"},
		{"LLMTimeout", cfg.LLMTimeout, 30 * time.Second},
		{"PageConcurrency", cfg.PageConcurrency, 1},
		{"MaxUploadSize", cfg.MaxUploadSize, int64(10485760)},
		{"WikipediaURL", cfg.WikipediaURL, "https://en.wikipedia.org"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("expected %s=%v, got %v", tt.name, tt.expected, tt.got)
			}
		})
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("AI_PROVIDER", "claude")
	t.Setenv("CLAUDE_API_KEY", "sk-ant")
	t.Setenv("LLM_TIMEOUT", "5s")

	cfg := Load()

	if cfg.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Port)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.LogLevel)
	}
	if cfg.AIProvider != ProviderClaude {
		t.Errorf("expected provider 'claude', got %s", cfg.AIProvider)
	}
	if cfg.APIKey() != "sk-ant" {
		t.Errorf("expected claude key, got %q", cfg.APIKey())
	}
	if cfg.Model() != "claude-3-haiku-20240307" {
		t.Errorf("unexpected model %q", cfg.Model())
	}
	if cfg.LLMTimeout != 5*time.Second {
		t.Errorf("expected 5s timeout, got %v", cfg.LLMTimeout)
	}
}

func TestValidate(t *testing.T) {
	base := Config{
		GeminiAPIKey:    "g",
		OpenAIAPIKey:    "o",
		ClaudeAPIKey:    "c",
		PageConcurrency: 1,
	}

	tests := []struct {
		name     string
		provider string
		mutate   func(*Config)
		wantErr  bool
	}{
		{name: "gemini", provider: ProviderGemini},
		{name: "openai", provider: ProviderOpenAI},
		{name: "claude", provider: ProviderClaude},
		{name: "unknown provider", provider: "llama", wantErr: true},
		{name: "empty provider", provider: "", wantErr: true},
		{
			name:     "missing key for selected provider",
			provider: ProviderOpenAI,
			mutate:   func(c *Config) { c.OpenAIAPIKey = "" },
			wantErr:  true,
		},
		{
			name:     "other provider key is not required",
			provider: ProviderGemini,
			mutate:   func(c *Config) { c.OpenAIAPIKey = ""; c.ClaudeAPIKey = "" },
		},
		{
			name:     "zero page concurrency",
			provider: ProviderGemini,
			mutate:   func(c *Config) { c.PageConcurrency = 0 },
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			cfg.AIProvider = tt.provider
			if tt.mutate != nil {
				tt.mutate(&cfg)
			}
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
