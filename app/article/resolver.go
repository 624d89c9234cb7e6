package article

import (
	"bytes"
	"cmp"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-shiori/go-readability"
)

const (
	fallbackTitle   = "Untitled"
	noPreviewText   = "No preview available."
	emptyBodyText   = "Summary unavailable."
	inlineTextLimit = 500 // runes
)

// Resolved is the titled preview of a single article, used only to build the
// outbound notification payload.
type Resolved struct {
	Title   string
	Preview string
}

// Resolver turns a candidate URL into a titled preview. It prefers a full
// fetch-and-extract of the article body and falls back to the candidate's
// inline text when that fails.
type Resolver struct {
	client       *http.Client
	userAgent    string
	previewWords int
	timeout      time.Duration
}

func NewResolver(client *http.Client, userAgent string, previewWords int, timeout time.Duration) *Resolver {
	if client == nil {
		client = &http.Client{}
	}
	if previewWords <= 0 {
		previewWords = 100
	}
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Resolver{
		client:       client,
		userAgent:    userAgent,
		previewWords: previewWords,
		timeout:      timeout,
	}
}

// Resolve never returns an error: any failure while fetching or extracting
// the article converts into the fallback preview for that one article, so a
// broken source cannot abort the run.
func (r *Resolver) Resolve(ctx context.Context, articleURL, inlineText string) Resolved {
	resolved, err := r.extract(ctx, articleURL)
	if err != nil {
		slog.Debug("Article extraction failed, using inline text", "url", articleURL, "error", err)
		resolved = r.fallback(inlineText)
	}

	resolved.Preview = terminate(resolved.Preview)
	return resolved
}

// extract fetches the article page and derives the title plus the first N
// words of the readable body text. The readability library is shielded with
// a recover so a pathological page cannot escape the fallback path.
func (r *Resolver) extract(ctx context.Context, articleURL string) (resolved Resolved, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("article extraction panicked: %v", rec)
		}
	}()

	data, err := r.fetch(ctx, articleURL)
	if err != nil {
		return Resolved{}, err
	}

	pageURL, err := url.Parse(articleURL)
	if err != nil {
		return Resolved{}, fmt.Errorf("failed to parse article URL: %w", err)
	}

	art, err := readability.FromReader(bytes.NewReader(data), pageURL)
	if err != nil {
		return Resolved{}, fmt.Errorf("failed to extract content: %w", err)
	}

	title := cmp.Or(strings.TrimSpace(art.Title), fallbackTitle)

	// Fields collapses newlines and runs of whitespace in one pass
	words := strings.Fields(art.TextContent)
	if len(words) == 0 {
		return Resolved{Title: title, Preview: emptyBodyText}, nil
	}
	if len(words) > r.previewWords {
		words = words[:r.previewWords]
	}

	return Resolved{Title: title, Preview: strings.Join(words, " ")}, nil
}

func (r *Resolver) fallback(inlineText string) Resolved {
	preview := strings.TrimSpace(inlineText)
	if preview == "" {
		return Resolved{Title: fallbackTitle, Preview: noPreviewText}
	}

	if runes := []rune(preview); len(runes) > inlineTextLimit {
		preview = string(runes[:inlineTextLimit])
	}

	return Resolved{Title: fallbackTitle, Preview: preview}
}

func (r *Resolver) fetch(ctx context.Context, articleURL string) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", articleURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(strings.ToLower(contentType), "text/html") {
		return nil, fmt.Errorf("content type is not HTML: %s", contentType)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}

// terminate appends an ellipsis marker unless the preview already ends in a
// sentence-ending punctuation mark.
func terminate(preview string) string {
	if preview == "" {
		return preview
	}

	runes := []rune(preview)
	switch runes[len(runes)-1] {
	case '.', '!', '?':
		return preview
	}
	return preview + "…"
}
