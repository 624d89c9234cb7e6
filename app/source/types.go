package source

import (
	"context"
	"fmt"
	"net/http"

	"newsbot/app/config"
)

// Candidate is an unresolved article reference produced by a source adapter:
// the article URL plus whatever inline text the listing already carried.
type Candidate struct {
	URL        string
	InlineText string
}

// Source enumerates candidate articles from exactly one external site or
// feed. Implementations skip individual malformed entries and return an
// error only for total unavailability. Candidate order is whatever the
// source provides.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]Candidate, error)
}

// Build constructs the adapter variant selected by the source definition.
// Rendered sources fall back to a plain-HTTP renderer when none is wired in.
func Build(cfg *config.SourceConfig, client *http.Client, renderer Renderer, userAgent string) (Source, error) {
	switch cfg.Kind {
	case config.KindFeed:
		return NewFeedSource(cfg, client, userAgent), nil
	case config.KindHTML:
		return NewHTMLSource(cfg, client, userAgent), nil
	case config.KindRendered:
		if renderer == nil {
			renderer = NewHTTPRenderer(client, userAgent)
		}
		return NewRenderedSource(cfg, renderer), nil
	default:
		return nil, fmt.Errorf("unknown source kind: %s", cfg.Kind)
	}
}
