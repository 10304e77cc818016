package resources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultWikipediaURL = "https://en.wikipedia.org"
	userAgent           = "study-assistant-app"
)

// Wikipedia looks up articles through the REST page summary endpoint.
type Wikipedia struct {
	baseURL string
	client  *http.Client
}

// NewWikipedia creates a client rooted at baseURL (the English Wikipedia when empty).
func NewWikipedia(baseURL string, timeout time.Duration) *Wikipedia {
	if baseURL == "" {
		baseURL = defaultWikipediaURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Wikipedia{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type pageSummary struct {
	ContentURLs struct {
		Desktop struct {
			Page string `json:"page"`
		} `json:"desktop"`
	} `json:"content_urls"`
}

// Lookup returns the article URL for topic, or "" when there is no such article.
// Any existing page counts, disambiguation pages included.
func (w *Wikipedia) Lookup(ctx context.Context, topic string) (string, error) {
	title := strings.ReplaceAll(strings.TrimSpace(topic), " ", "_")
	endpoint := w.baseURL + "/api/rest_v1/page/summary/" + url.PathEscape(title)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("wikipedia: build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("wikipedia: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", nil
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("wikipedia: unexpected status %d", resp.StatusCode)
	}

	var summary pageSummary
	if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
		return "", fmt.Errorf("wikipedia: decode summary: %w", err)
	}
	return summary.ContentURLs.Desktop.Page, nil
}
