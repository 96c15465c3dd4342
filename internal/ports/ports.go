package ports

import (
	"context"
	"time"

	"NewsDigest/internal/domain"
)

// NewsSource fetches and parses one locale's article listing.
type NewsSource interface {
	FetchArticles(ctx context.Context, locale domain.Locale) ([]domain.Article, error)
}

// SeenStore is the durable set of article keys already delivered.
type SeenStore interface {
	Init(ctx context.Context) error
	KnownIDs(ctx context.Context, locale domain.Locale) (map[int]struct{}, error)
	Record(ctx context.Context, articles []domain.Article) error
}

// DigestRenderer turns a batch of new articles into channel-ready text.
type DigestRenderer interface {
	Render(articles []domain.Article) string
}

// Notifier delivers a rendered digest to the destination chat.
type Notifier interface {
	PublishDigest(ctx context.Context, digest string) error
}

// Scheduler controls when passes execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
