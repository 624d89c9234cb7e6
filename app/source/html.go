package source

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"newsbot/app/config"
)

// HTMLSource enumerates candidates from a static listing page by selecting
// anchors whose text matches the configured pattern, the way press-release
// pages label their article links ("Read more" and friends).
type HTMLSource struct {
	name      string
	url       string
	client    *http.Client
	userAgent string
	timeout   time.Duration
	opts      config.HTMLOptions
}

func NewHTMLSource(cfg *config.SourceConfig, client *http.Client, userAgent string) *HTMLSource {
	if client == nil {
		client = &http.Client{}
	}
	return &HTMLSource{
		name:      cfg.Name,
		url:       cfg.URL,
		client:    client,
		userAgent: userAgent,
		timeout:   time.Duration(cfg.Settings.Timeout) * time.Second,
		opts:      cfg.HTML,
	}
}

func (s *HTMLSource) Name() string {
	return s.name
}

// Fetch returns matching anchors in DOM order, hrefs resolved against the
// listing URL. Anchors without an href are skipped.
func (s *HTMLSource) Fetch(ctx context.Context) ([]Candidate, error) {
	data, err := fetch(ctx, s.client, s.url, s.userAgent, s.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch listing page: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse listing page: %w", err)
	}

	base, err := url.Parse(s.url)
	if err != nil {
		return nil, fmt.Errorf("invalid listing URL: %w", err)
	}

	var candidates []Candidate
	doc.Find(s.opts.Selector).Each(func(i int, sel *goquery.Selection) {
		if !s.matches(strings.TrimSpace(sel.Text())) {
			return
		}

		href, ok := sel.Attr("href")
		if !ok || href == "" {
			return
		}

		link, err := resolveLink(base, href)
		if err != nil {
			slog.Debug("Skipping malformed link", "source", s.name, "href", href, "error", err)
			return
		}

		candidates = append(candidates, Candidate{URL: link})
	})

	return candidates, nil
}

func (s *HTMLSource) matches(text string) bool {
	if s.opts.MatchText == "" {
		return true
	}

	switch s.opts.Match {
	case "prefix":
		return strings.HasPrefix(text, s.opts.MatchText)
	case "suffix":
		return strings.HasSuffix(text, s.opts.MatchText)
	default:
		return strings.Contains(text, s.opts.MatchText)
	}
}
