package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"NewsDigest/internal/domain"
	"NewsDigest/internal/ports"
)

// PipelineDeps wires all driven adapters into the orchestration pipeline.
type PipelineDeps struct {
	Source   ports.NewsSource
	Store    ports.SeenStore
	Renderer ports.DigestRenderer
	Notifier ports.Notifier
	Locales  []domain.Locale
	Logger   *slog.Logger
}

// Pipeline drives one pass of the fetch → extract → filter → persist →
// render → notify workflow across the configured locales.
type Pipeline struct {
	source   ports.NewsSource
	store    ports.SeenStore
	renderer ports.DigestRenderer
	notifier ports.Notifier
	locales  []domain.Locale
	logger   *slog.Logger
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	locales := deps.Locales
	if len(locales) == 0 {
		locales = domain.AllLocales
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		source:   deps.Source,
		store:    deps.Store,
		renderer: deps.Renderer,
		notifier: deps.Notifier,
		locales:  locales,
		logger:   logger,
	}
}

// ProcessPass runs the pipeline once for every configured locale, in order.
// Locales are isolated: a failure in one is logged and joined into the
// returned error but never stops the others.
func (p *Pipeline) ProcessPass(ctx context.Context) error {
	var errs []error
	for _, locale := range p.locales {
		if err := p.processLocale(ctx, locale); err != nil {
			p.logger.Error("locale pass failed", "locale", locale, "error", err)
			errs = append(errs, fmt.Errorf("locale %s: %w", locale, err))
		}
	}
	return errors.Join(errs...)
}

func (p *Pipeline) processLocale(ctx context.Context, locale domain.Locale) error {
	candidates, err := p.source.FetchArticles(ctx, locale)
	if err != nil {
		return fmt.Errorf("fetch articles: %w", err)
	}

	known, err := p.store.KnownIDs(ctx, locale)
	if err != nil {
		return fmt.Errorf("load known ids: %w", err)
	}

	fresh := make([]domain.Article, 0, len(candidates))
	for _, article := range candidates {
		if _, seen := known[article.ID]; seen {
			continue
		}
		fresh = append(fresh, article)
	}

	if len(fresh) == 0 {
		p.logger.Debug("no new articles", "locale", locale, "candidates", len(candidates))
		return nil
	}

	if err := p.store.Record(ctx, fresh); err != nil {
		return fmt.Errorf("record articles: %w", err)
	}

	// Keys are committed before delivery: a failed send drops the digest
	// rather than re-sending it on the next pass.
	if err := p.notifier.PublishDigest(ctx, p.renderer.Render(fresh)); err != nil {
		return fmt.Errorf("publish digest: %w", err)
	}

	p.logger.Info("digest published", "locale", locale, "articles", len(fresh))
	return nil
}
