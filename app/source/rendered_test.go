package source

import (
	"context"
	"errors"
	"testing"

	"newsbot/app/config"
)

type fakeRenderer struct {
	html       string
	err        error
	gotURL     string
	gotLabel   string
	renderedAt int
}

func (f *fakeRenderer) Render(ctx context.Context, pageURL, clickLabel string) ([]byte, error) {
	f.renderedAt++
	f.gotURL = pageURL
	f.gotLabel = clickLabel
	if f.err != nil {
		return nil, f.err
	}
	return []byte(f.html), nil
}

func renderedConfig() *config.SourceConfig {
	return &config.SourceConfig{
		Name:     "media",
		URL:      "https://example.com/media",
		Kind:     config.KindRendered,
		Settings: config.SourceSettings{Enabled: true, Timeout: 5},
		Rendered: config.RenderOptions{
			ClickLabel:   "Load More",
			LinkPatterns: []string{"press-", "blog-"},
		},
	}
}

func TestRenderedSourceFetch(t *testing.T) {
	renderer := &fakeRenderer{html: `<html><body>
		<a href="/press-release-1">Satellite Tasking Update 3 Min Read</a>
		<a href="/blog-insights">From the Blog</a>
		<a href="/careers">Careers</a>
		<a href="https://example.com/press-release-2">Another Release</a>
	</body></html>`}

	src := NewRenderedSource(renderedConfig(), renderer)
	candidates, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if renderer.gotURL != "https://example.com/media" {
		t.Errorf("Expected renderer called with page URL, got %s", renderer.gotURL)
	}
	if renderer.gotLabel != "Load More" {
		t.Errorf("Expected click label 'Load More', got '%s'", renderer.gotLabel)
	}

	if len(candidates) != 3 {
		t.Fatalf("Expected 3 candidates, got %d", len(candidates))
	}
	if candidates[0].URL != "https://example.com/press-release-1" {
		t.Errorf("Expected resolved press link, got %s", candidates[0].URL)
	}
	if candidates[0].InlineText != "Satellite Tasking Update 3 Min Read" {
		t.Errorf("Expected anchor text as inline text, got '%s'", candidates[0].InlineText)
	}
	if candidates[1].URL != "https://example.com/blog-insights" {
		t.Errorf("Unexpected blog link: %s", candidates[1].URL)
	}
}

func TestRenderedSourceRenderFailure(t *testing.T) {
	renderer := &fakeRenderer{err: errors.New("browser crashed")}

	src := NewRenderedSource(renderedConfig(), renderer)
	if _, err := src.Fetch(context.Background()); err == nil {
		t.Error("Expected error when renderer fails, got nil")
	}
}

func TestBuildSelectsVariant(t *testing.T) {
	feedCfg := &config.SourceConfig{Name: "f", URL: "https://example.com/feed", Kind: config.KindFeed, Settings: config.SourceSettings{Timeout: 5}}
	htmlCfg := &config.SourceConfig{Name: "h", URL: "https://example.com", Kind: config.KindHTML, Settings: config.SourceSettings{Timeout: 5}, HTML: config.HTMLOptions{Selector: "a", Match: "contains"}}
	renderedCfg := renderedConfig()

	if src, err := Build(feedCfg, nil, nil, "ua"); err != nil {
		t.Errorf("Build(feed) failed: %v", err)
	} else if _, ok := src.(*FeedSource); !ok {
		t.Errorf("Expected *FeedSource, got %T", src)
	}

	if src, err := Build(htmlCfg, nil, nil, "ua"); err != nil {
		t.Errorf("Build(html) failed: %v", err)
	} else if _, ok := src.(*HTMLSource); !ok {
		t.Errorf("Expected *HTMLSource, got %T", src)
	}

	if src, err := Build(renderedCfg, nil, nil, "ua"); err != nil {
		t.Errorf("Build(rendered) failed: %v", err)
	} else if _, ok := src.(*RenderedSource); !ok {
		t.Errorf("Expected *RenderedSource, got %T", src)
	}

	badCfg := &config.SourceConfig{Name: "x", URL: "https://example.com", Kind: "smoke-signal"}
	if _, err := Build(badCfg, nil, nil, "ua"); err == nil {
		t.Error("Expected error for unknown kind, got nil")
	}
}
