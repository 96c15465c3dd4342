package app

import (
	"context"
	"fmt"
	"log/slog"

	"NewsDigest/internal/config"
	"NewsDigest/internal/digest"
	"NewsDigest/internal/domain"
	"NewsDigest/internal/infrastructure/parser"
	"NewsDigest/internal/infrastructure/scheduler"
	"NewsDigest/internal/infrastructure/storage"
	"NewsDigest/internal/infrastructure/telegram"
	"NewsDigest/internal/logging"
	"NewsDigest/internal/usecase"
)

// Application wires configuration to the pipeline and its lifecycle.
type Application struct {
	cfg      config.Config
	store    *storage.SQLiteStore
	pipeline *usecase.Pipeline
	runner   *usecase.Scheduler
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	store, err := storage.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open seen store: %w", err)
	}

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Source:   parser.NewNewsScanner(cfg.Source.BaseURL, nil),
		Store:    store,
		Renderer: digest.NewRenderer(cfg.Source.BaseURL),
		Notifier: telegram.NewNotifier(cfg.Notifications.Telegram, nil),
		Locales:  resolveLocales(cfg.Source.Locales, baseLogger),
		Logger:   baseLogger.With("component", "pipeline"),
	})

	application := &Application{cfg: cfg, store: store, pipeline: pipeline}
	if every := cfg.Scheduler.Every(); every > 0 {
		application.runner = usecase.NewScheduler(scheduler.NewIntervalScheduler(every), pipeline)
	}

	return application, nil
}

// Run initializes storage and executes a single pass, or keeps passing on the
// configured interval until the context is canceled.
func (a *Application) Run(ctx context.Context) error {
	defer a.store.Close()

	if err := a.store.Init(ctx); err != nil {
		return fmt.Errorf("init seen store: %w", err)
	}

	if a.runner == nil {
		return a.pipeline.ProcessPass(ctx)
	}

	if err := a.runner.Start(ctx); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	<-ctx.Done()
	return a.runner.Stop(context.Background())
}

func resolveLocales(values []string, logger *slog.Logger) []domain.Locale {
	var locales []domain.Locale
	for _, value := range values {
		locale, err := domain.ParseLocale(value)
		if err != nil {
			logger.Warn("skipping configured locale", "error", err)
			continue
		}
		locales = append(locales, locale)
	}
	if len(locales) == 0 {
		return domain.AllLocales
	}
	return locales
}
