package llm

import (
	"context"
	"errors"
	"time"
)

// Provider is the single text-completion capability every hosted backend offers.
// Implementations return the model's raw text; no structural validation happens here.
type Provider interface {
	Name() string
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
}

var (
	// ErrUnknownProvider is returned by the factory for an unrecognized AI_PROVIDER.
	ErrUnknownProvider = errors.New("unknown llm provider")
	// ErrMissingAPIKey is returned when a provider is built without a credential.
	ErrMissingAPIKey = errors.New("api key required")
	// ErrEmptyResponse is returned when the backend answers without any text.
	ErrEmptyResponse = errors.New("empty response from provider")
)

const defaultChatTimeout = 30 * time.Second

// Option tunes a provider client at construction time.
type Option func(*options)

type options struct {
	baseURL string
	timeout time.Duration
}

// WithBaseURL points the client at a different API endpoint.
func WithBaseURL(url string) Option {
	return func(o *options) { o.baseURL = url }
}

// WithTimeout bounds every completion call. Non-positive values keep the default.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{timeout: defaultChatTimeout}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
