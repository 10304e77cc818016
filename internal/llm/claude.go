package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// claudeDefaultMaxTokens is used when the caller passes no cap; the Messages API
// requires one.
const claudeDefaultMaxTokens = 500

const defaultClaudeModel anthropic.Model = "claude-3-haiku-20240307"

// ClaudeClient calls the Anthropic Messages API.
type ClaudeClient struct {
	model   anthropic.Model
	client  *anthropic.Client
	timeout time.Duration
}

// NewClaudeClient builds a client against api.anthropic.com with SDK retries disabled.
func NewClaudeClient(apiKey string, model anthropic.Model, opts ...Option) (*ClaudeClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("claude: %w", ErrMissingAPIKey)
	}
	if model == "" {
		model = defaultClaudeModel
	}
	o := buildOptions(opts)
	reqOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if o.baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(o.baseURL))
	}
	cli := anthropic.NewClient(reqOpts...)
	return &ClaudeClient{
		model:   model,
		client:  &cli,
		timeout: o.timeout,
	}, nil
}

func (c *ClaudeClient) Name() string { return "claude" }

func (c *ClaudeClient) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if c == nil || c.client == nil {
		return "", fmt.Errorf("nil claude client")
	}
	if maxTokens <= 0 {
		maxTokens = claudeDefaultMaxTokens
	}
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	msg, err := c.client.Messages.New(reqCtx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: int64(maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("claude: %w", err)
	}
	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("claude: %w", ErrEmptyResponse)
	}
	return b.String(), nil
}
