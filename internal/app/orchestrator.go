// Package app wires the per-run pipeline: fetch every source, extract,
// classify, dedup against persisted state, notify, persist.
package app

import (
	"context"

	"intern-watch/internal/classify"
	"intern-watch/internal/config"
	"intern-watch/internal/dedup"
	"intern-watch/internal/extract"
	"intern-watch/internal/fetcher"
	"intern-watch/internal/model"
	"intern-watch/internal/notify"
	"intern-watch/internal/observability"
	"intern-watch/internal/storage"
)

// DocExtractor is the Markdown-document side of the pipeline. It never
// fails the run: a missing document contributes zero records.
type DocExtractor interface {
	Extract(ctx context.Context) []model.PostingRecord
}

type Orchestrator struct {
	cfg        *config.Config
	logger     *observability.Logger
	fetcher    *fetcher.Fetcher
	cards      *extract.CardExtractor
	markdown   DocExtractor
	classifier *classify.Classifier
	composer   *notify.Composer
	notifier   *notify.Notifier
	repo       storage.Repository
}

func NewOrchestrator(
	cfg *config.Config,
	logger *observability.Logger,
	f *fetcher.Fetcher,
	cards *extract.CardExtractor,
	markdown DocExtractor,
	classifier *classify.Classifier,
	composer *notify.Composer,
	notifier *notify.Notifier,
	repo storage.Repository,
) *Orchestrator {
	return &Orchestrator{
		cfg:        cfg,
		logger:     logger,
		fetcher:    f,
		cards:      cards,
		markdown:   markdown,
		classifier: classifier,
		composer:   composer,
		notifier:   notifier,
		repo:       repo,
	}
}

type RunStats struct {
	Records  int
	New      int
	Notified int
	IdleSent bool
}

// Run executes one poll. Source failures are isolated and logged; the only
// fatal outcome is an unexpected error escaping this method.
func (o *Orchestrator) Run(ctx context.Context) (*RunStats, error) {
	o.logger.Info("run started")

	state, err := o.repo.Load(ctx)
	if err != nil {
		// Corrupt or unreadable state degrades to empty. Re-notification
		// is acceptable under at-least-once semantics.
		o.logger.Warn("state load failed, starting from empty state", "error", err.Error())
		state = dedup.NewState()
	}

	records := o.collect(ctx)
	for i := range records {
		if records[i].Category == "" {
			records[i].Category = o.classifier.Classify(records[i].Title, o.cfg.Classify.Default)
		}
	}

	fresh := dedup.FilterNew(records, state)
	stats := &RunStats{Records: len(records), New: len(fresh)}

	switch {
	case len(fresh) > 0:
		o.notifier.Send(ctx, o.cfg.Notify.Email.Subject, o.composer.Compose(fresh))
		state.IdleNotified = false
		stats.Notified = len(fresh)
		if stats.Notified > o.cfg.Notify.BatchSize {
			stats.Notified = o.cfg.Notify.BatchSize
		}
	case !state.IdleNotified:
		o.notifier.Send(ctx, o.cfg.Notify.Email.Subject, o.composer.IdleMessage())
		state.IdleNotified = true
		stats.IdleSent = true
	default:
		o.logger.Info("no new postings, idle notice already sent this dry spell")
	}

	if err := o.repo.Save(ctx, state); err != nil {
		o.logger.Error("state save failed, next run may re-notify", "error", err.Error())
	}

	o.logger.Info("run finished",
		"records", stats.Records,
		"new", stats.New,
		"notified", stats.Notified,
		"idle_sent", stats.IdleSent,
		"known_fingerprints", state.Len(),
	)
	return stats, nil
}

// collect fetches and extracts every source in fixed priority order: card
// tabs first, then the Markdown document. A failing source contributes zero
// records and never aborts the run.
func (o *Orchestrator) collect(ctx context.Context) []model.PostingRecord {
	var all []model.PostingRecord

	for _, tab := range o.cfg.Sources.Cards.Tabs {
		records := o.collectTab(ctx, tab)
		o.logger.Info("source parsed",
			"source", o.cfg.Sources.Cards.SourceName,
			"category", tab.Category,
			"records", len(records),
		)
		all = append(all, records...)
	}

	if o.markdown != nil {
		records := o.markdown.Extract(ctx)
		o.logger.Info("source parsed",
			"source", o.cfg.Sources.Markdown.SourceName,
			"records", len(records),
		)
		all = append(all, records...)
	}

	return all
}

// collectTab tries the tab's candidate paths in order and extracts from the
// first page that fetches.
func (o *Orchestrator) collectTab(ctx context.Context, tab config.CardTab) []model.PostingRecord {
	for _, path := range o.tabPaths(ctx, tab) {
		html, err := o.fetcher.Fetch(ctx, o.cfg.Sources.Cards.BaseURL+path, nil)
		if err != nil {
			o.logger.Warn("tab fetch failed", "path", path, "error", err.Error())
			continue
		}
		records, err := o.cards.Extract(html, o.cfg.Sources.Cards.SourceName, tab.Category)
		if err != nil {
			o.logger.Warn("tab parse failed", "path", path, "error", err.Error())
			continue
		}
		return records
	}
	return nil
}

// tabPaths builds the ordered candidate list for a tab: the configured path,
// then a slug discovered from the homepage nav, then historical fallbacks.
func (o *Orchestrator) tabPaths(ctx context.Context, tab config.CardTab) []string {
	var paths []string
	if tab.Path != "" {
		paths = append(paths, tab.Path)
	}
	if tab.Discover {
		if slug := o.discoverSlug(ctx, tab.DiscoverTerms); slug != "" {
			paths = append(paths, slug)
		}
	}
	paths = append(paths, tab.FallbackPaths...)
	return paths
}

func (o *Orchestrator) discoverSlug(ctx context.Context, terms []string) string {
	html, err := o.fetcher.Fetch(ctx, o.cfg.Sources.Cards.BaseURL+"/", nil)
	if err != nil {
		o.logger.Warn("slug discovery fetch failed", "error", err.Error())
		return ""
	}
	slug := extract.DiscoverTabPath(html, terms)
	if slug == "" {
		o.logger.Warn("slug discovery found no matching nav link", "terms", terms)
	}
	return slug
}
