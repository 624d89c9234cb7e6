package source

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"newsbot/app/config"
)

// Renderer produces the DOM of a fully loaded page. Implementations backed
// by a headless browser load the URL, wait for the network to go idle, click
// the labeled control until it disappears, and return the resulting HTML.
// The pipeline treats this purely as an opaque DOM producer.
type Renderer interface {
	Render(ctx context.Context, pageURL, clickLabel string) ([]byte, error)
}

// HTTPRenderer is the default Renderer: a plain GET with no script
// execution. Sources that only reveal content through clicks degrade to
// whatever the initial page load contains.
type HTTPRenderer struct {
	client    *http.Client
	userAgent string
}

func NewHTTPRenderer(client *http.Client, userAgent string) *HTTPRenderer {
	if client == nil {
		client = &http.Client{}
	}
	return &HTTPRenderer{client: client, userAgent: userAgent}
}

func (r *HTTPRenderer) Render(ctx context.Context, pageURL, clickLabel string) ([]byte, error) {
	return fetch(ctx, r.client, pageURL, r.userAgent, 20*time.Second)
}

// RenderedSource enumerates candidates from a page that builds its listing
// client-side. Article links are recognized by href substrings; the card's
// anchor text travels along as inline preview text.
type RenderedSource struct {
	name     string
	url      string
	renderer Renderer
	timeout  time.Duration
	opts     config.RenderOptions
}

func NewRenderedSource(cfg *config.SourceConfig, renderer Renderer) *RenderedSource {
	return &RenderedSource{
		name:     cfg.Name,
		url:      cfg.URL,
		renderer: renderer,
		timeout:  time.Duration(cfg.Settings.Timeout) * time.Second,
		opts:     cfg.Rendered,
	}
}

func (s *RenderedSource) Name() string {
	return s.name
}

func (s *RenderedSource) Fetch(ctx context.Context) ([]Candidate, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	data, err := s.renderer.Render(timeoutCtx, s.url, s.opts.ClickLabel)
	if err != nil {
		return nil, fmt.Errorf("failed to render page: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse rendered page: %w", err)
	}

	base, err := url.Parse(s.url)
	if err != nil {
		return nil, fmt.Errorf("invalid page URL: %w", err)
	}

	var candidates []Candidate
	doc.Find("a[href]").Each(func(i int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if !s.matchesPattern(href) {
			return
		}

		link, err := resolveLink(base, href)
		if err != nil {
			return
		}

		candidates = append(candidates, Candidate{
			URL:        link,
			InlineText: strings.TrimSpace(sel.Text()),
		})
	})

	return candidates, nil
}

func (s *RenderedSource) matchesPattern(href string) bool {
	for _, pattern := range s.opts.LinkPatterns {
		if strings.Contains(href, pattern) {
			return true
		}
	}
	return false
}
