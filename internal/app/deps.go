package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/joho/godotenv"
	"github.com/openai/openai-go/v3"

	"study-assistant/internal/config"
	"study-assistant/internal/llm"
	"study-assistant/internal/logger"
	"study-assistant/internal/resources"
	"study-assistant/internal/study"
)

// Deps bundles common runtime dependencies for the gateway and the CLI.
type Deps struct {
	Config    config.Config
	Log       *slog.Logger
	LLM       llm.Provider
	Study     *study.Service
	Resources *resources.Finder
}

// Build loads env, config, and shared components, logging to logOut. A missing
// .env file is fine; an unreadable one is not.
func Build(ctx context.Context, logOut io.Writer) (Deps, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Deps{}, fmt.Errorf("failed to load environment variables: %w", err)
	}
	cfg := config.Load()
	return BuildWithConfig(ctx, cfg, logger.NewWithWriter(logOut, cfg.LogLevel))
}

// BuildWithConfig validates cfg and wires components around the configured provider.
func BuildWithConfig(ctx context.Context, cfg config.Config, log *slog.Logger) (Deps, error) {
	if err := cfg.Validate(); err != nil {
		return Deps{}, fmt.Errorf("invalid configuration: %w", err)
	}
	provider, err := buildLLM(ctx, cfg, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize LLM: %w", err)
	}
	return Assemble(cfg, log, provider), nil
}

// Assemble wires the study service and resource finder around an existing provider.
func Assemble(cfg config.Config, log *slog.Logger, provider llm.Provider) Deps {
	return Deps{
		Config:    cfg,
		Log:       log,
		LLM:       provider,
		Study:     study.NewService(provider, log),
		Resources: buildFinder(cfg, log),
	}
}

func buildLLM(ctx context.Context, cfg config.Config, log *slog.Logger) (llm.Provider, error) {
	opts := []llm.Option{llm.WithTimeout(cfg.LLMTimeout)}
	switch cfg.AIProvider {
	case config.ProviderGemini:
		client, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
		}
		log.Info("using Gemini LLM client", "model", cfg.GeminiModel)
		return client, nil
	case config.ProviderOpenAI:
		client, err := llm.NewOpenAIClient(cfg.OpenAIAPIKey, openai.ChatModel(cfg.OpenAIModel), opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize OpenAI client: %w", err)
		}
		log.Info("using OpenAI LLM client", "model", cfg.OpenAIModel)
		return client, nil
	case config.ProviderClaude:
		client, err := llm.NewClaudeClient(cfg.ClaudeAPIKey, anthropic.Model(cfg.ClaudeModel), opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Claude client: %w", err)
		}
		log.Info("using Claude LLM client", "model", cfg.ClaudeModel)
		return client, nil
	default:
		return nil, fmt.Errorf("%w: %q (valid options: gemini, openai, claude)", llm.ErrUnknownProvider, cfg.AIProvider)
	}
}

func buildFinder(cfg config.Config, log *slog.Logger) *resources.Finder {
	var search resources.Searcher
	if cfg.SerpAPIKey != "" {
		search = resources.NewSerpAPI(cfg.SerpAPIKey)
	} else {
		log.Info("SERPAPI_API_KEY not set; resource finder will skip web search")
	}
	return resources.NewFinder(resources.NewWikipedia(cfg.WikipediaURL, 0), search, log)
}
