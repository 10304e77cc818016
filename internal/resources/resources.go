// Package resources suggests further reading and videos for a study topic.
package resources

import (
	"context"
	"log/slog"
	"strings"
)

// Fallback entries used when a list would otherwise be empty.
const (
	NoWebsites = "No relevant websites found."
	NoYouTube  = "No relevant YouTube channels found."
)

const maxSearchResults = 3

// Resources lists links for a topic. Neither list is ever empty.
type Resources struct {
	Websites []string `json:"websites" yaml:"websites"`
	YouTube  []string `json:"youtube" yaml:"youtube"`
}

// Encyclopedia resolves a topic to the URL of its article.
type Encyclopedia interface {
	// Lookup returns "" with a nil error when no article exists.
	Lookup(ctx context.Context, topic string) (string, error)
}

// Searcher runs a web search and returns result URLs in rank order.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]string, error)
}

// Finder combines an encyclopedia and a web search. Either backend may be nil.
type Finder struct {
	wiki   Encyclopedia
	search Searcher
	log    *slog.Logger
}

// NewFinder builds a Finder.
func NewFinder(wiki Encyclopedia, search Searcher, log *slog.Logger) *Finder {
	if log == nil {
		log = slog.Default()
	}
	return &Finder{wiki: wiki, search: search, log: log}
}

// Find never fails: backend errors are logged and the affected list falls back to
// its placeholder.
func (f *Finder) Find(ctx context.Context, topic string) Resources {
	topic = strings.TrimSpace(topic)
	var websites, youtube []string

	if topic != "" {
		if f.wiki != nil {
			url, err := f.wiki.Lookup(ctx, topic)
			switch {
			case err != nil:
				f.log.WarnContext(ctx, "encyclopedia lookup failed", "topic", topic, "err", err)
			case url != "":
				websites = append(websites, url)
			}
		}
		if f.search != nil {
			websites = append(websites, f.searchURLs(ctx, topic+" tutorial site:edu OR site:khanacademy.org")...)
			youtube = f.searchURLs(ctx, topic+" tutorial site:youtube.com")
		}
	}

	if len(websites) == 0 {
		websites = []string{NoWebsites}
	}
	if len(youtube) == 0 {
		youtube = []string{NoYouTube}
	}
	return Resources{Websites: websites, YouTube: youtube}
}

func (f *Finder) searchURLs(ctx context.Context, query string) []string {
	urls, err := f.search.Search(ctx, query, maxSearchResults)
	if err != nil {
		f.log.WarnContext(ctx, "web search failed", "query", query, "err", err)
		return nil
	}
	if len(urls) > maxSearchResults {
		urls = urls[:maxSearchResults]
	}
	return urls
}
