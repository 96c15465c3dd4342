package storage

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"

	"NewsDigest/internal/domain"
	"NewsDigest/internal/ports"
)

// SQLiteStore persists delivered article keys for deduplication. Only the
// (id, locale) key is durable; title and date stay with the extraction pass.
type SQLiteStore struct {
	db *sql.DB
}

var _ ports.SeenStore = (*SQLiteStore)(nil)

// Open creates or opens the database file at path.
func Open(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect database: %w", err)
	}

	// SQLite supports one writer at a time.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	return &SQLiteStore{db: db}, nil
}

// Close releases the underlying connection.
func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Init creates the dedup table; safe to call on every start.
func (s *SQLiteStore) Init(ctx context.Context) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS news_articles (
		id INTEGER NOT NULL,
		locale TEXT NOT NULL,
		PRIMARY KEY (id, locale)
	);`

	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	return nil
}

// KnownIDs returns every article id previously recorded for locale.
func (s *SQLiteStore) KnownIDs(ctx context.Context, locale domain.Locale) (map[int]struct{}, error) {
	query, args, err := sq.Select("id").
		From("news_articles").
		Where(sq.Eq{"locale": string(locale)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query known ids: %w", err)
	}
	defer rows.Close()

	known := make(map[int]struct{})
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan id: %w", err)
		}
		known[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return known, nil
}

// Record persists the (id, locale) key of every supplied article in a single
// transaction. Keys already present are left untouched, so replaying a batch
// is harmless; on any failure nothing is committed.
func (s *SQLiteStore) Record(ctx context.Context, articles []domain.Article) error {
	if len(articles) == 0 {
		return nil
	}

	builder := sq.Insert("news_articles").
		Columns("id", "locale").
		Suffix("ON CONFLICT (id, locale) DO NOTHING")
	for _, article := range articles {
		builder = builder.Values(article.ID, string(article.Locale))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("insert keys: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit keys: %w", err)
	}

	return nil
}
