package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"newsbot/app/article"
	"newsbot/app/seen"
	"newsbot/app/source"
)

// Resolver turns a candidate into a titled preview. It must not fail for a
// single bad article.
type Resolver interface {
	Resolve(ctx context.Context, url, inlineText string) article.Resolved
}

// Notifier delivers one formatted message per article.
type Notifier interface {
	Notify(ctx context.Context, title, preview, url string) error
}

// Runner drives one complete pass over all sources: load the seen-set,
// enumerate, deduplicate, resolve, notify, and persist the updated seen-set
// exactly once at the end. Execution is fully sequential; the notifier's
// pacing is what keeps the webhook inside its rate limit.
type Runner struct {
	sources  []source.Source
	resolver Resolver
	notifier Notifier
	store    *seen.Store
}

func NewRunner(sources []source.Source, resolver Resolver, notifier Notifier, store *seen.Store) *Runner {
	return &Runner{
		sources:  sources,
		resolver: resolver,
		notifier: notifier,
		store:    store,
	}
}

// Run returns an error only for seen-set storage failures. Source and
// article failures are logged and skipped so one broken site cannot abort
// the run. Notifications already sent stay sent even when the final save
// fails: the next run re-delivers rather than loses them.
func (r *Runner) Run(ctx context.Context) error {
	seenSet, err := r.store.Load()
	if err != nil {
		return fmt.Errorf("failed to load seen-set: %w", err)
	}

	newSeen := seen.Set{}
	posted := 0

	for _, src := range r.sources {
		candidates, err := src.Fetch(ctx)
		if err != nil {
			slog.Error("Source enumeration failed", "source", src.Name(), "error", err)
			continue
		}

		if len(candidates) == 0 {
			slog.Warn("Source produced no candidates, site structure may have changed", "source", src.Name())
			continue
		}

		for _, candidate := range candidates {
			if candidate.URL == "" {
				slog.Error("Skipping candidate without URL", "source", src.Name())
				continue
			}

			id := seen.Identity(candidate.URL)
			if seenSet.Contains(id) || newSeen.Contains(id) {
				continue
			}

			resolved := r.resolver.Resolve(ctx, candidate.URL, candidate.InlineText)

			if err := r.notifier.Notify(ctx, resolved.Title, resolved.Preview, candidate.URL); err != nil {
				// Not added to the seen-set, so it is retried next run
				slog.Error("Failed to deliver notification", "source", src.Name(), "url", candidate.URL, "error", err)
				continue
			}

			slog.Info("Posted article", "source", src.Name(), "title", resolved.Title, "url", candidate.URL)
			newSeen.Add(id)
			posted++
		}
	}

	if err := r.store.Save(seenSet.Union(newSeen)); err != nil {
		return fmt.Errorf("failed to save seen-set: %w", err)
	}

	slog.Info("Run complete", "sources", len(r.sources), "posted", posted)
	return nil
}
