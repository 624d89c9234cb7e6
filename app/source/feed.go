package source

import (
	"bytes"
	"cmp"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"

	"newsbot/app/config"
)

// FeedSource enumerates candidates from an RSS or Atom feed.
type FeedSource struct {
	name      string
	url       string
	client    *http.Client
	userAgent string
	timeout   time.Duration
	parser    *gofeed.Parser
}

func NewFeedSource(cfg *config.SourceConfig, client *http.Client, userAgent string) *FeedSource {
	if client == nil {
		client = &http.Client{}
	}
	return &FeedSource{
		name:      cfg.Name,
		url:       cfg.URL,
		client:    client,
		userAgent: userAgent,
		timeout:   time.Duration(cfg.Settings.Timeout) * time.Second,
		parser:    gofeed.NewParser(),
	}
}

func (s *FeedSource) Name() string {
	return s.name
}

// Fetch parses the feed and returns one candidate per entry, in feed order.
// Entries without a link are skipped.
func (s *FeedSource) Fetch(ctx context.Context) ([]Candidate, error) {
	data, err := fetch(ctx, s.client, s.url, s.userAgent, s.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}

	feed, err := s.parser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	candidates := make([]Candidate, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item.Link == "" {
			continue
		}
		candidates = append(candidates, Candidate{
			URL:        item.Link,
			InlineText: cmp.Or(item.Description, item.Content),
		})
	}

	return candidates, nil
}
