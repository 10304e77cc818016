package resources

import (
	"context"
	"errors"
	"fmt"

	g "github.com/serpapi/google-search-results-golang"
)

// ErrMissingAPIKey is returned when a search is attempted without a SerpApi key.
var ErrMissingAPIKey = errors.New("serpapi api key is not set")

// SerpAPI searches Google through SerpApi and returns organic result links.
type SerpAPI struct {
	apiKey string
	// run performs the raw search; replaced in tests.
	run func(params map[string]string, apiKey string) (map[string]any, error)
}

// NewSerpAPI creates a SerpApi searcher.
func NewSerpAPI(apiKey string) *SerpAPI {
	return &SerpAPI{apiKey: apiKey, run: googleSearch}
}

func googleSearch(params map[string]string, apiKey string) (map[string]any, error) {
	search := g.NewGoogleSearch(params, apiKey)
	return search.GetJSON()
}

// Search returns up to limit organic result URLs for query.
func (s *SerpAPI) Search(ctx context.Context, query string, limit int) ([]string, error) {
	if s.apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	params := map[string]string{
		"engine":        "google",
		"q":             query,
		"google_domain": "google.com",
		"gl":            "us",
		"hl":            "en",
		"num":           fmt.Sprint(limit),
	}
	results, err := s.run(params, s.apiKey)
	if err != nil {
		return nil, fmt.Errorf("serpapi search failed: %w", err)
	}

	organic, ok := results["organic_results"].([]any)
	if !ok {
		return nil, nil
	}
	urls := make([]string, 0, limit)
	for _, item := range organic {
		res, ok := item.(map[string]any)
		if !ok {
			continue
		}
		link, _ := res["link"].(string)
		if link == "" {
			continue
		}
		urls = append(urls, link)
		if len(urls) == limit {
			break
		}
	}
	return urls, nil
}
