package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"storefront/internal/model"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS collection_page_views (
	id               BIGSERIAL PRIMARY KEY,
	handle           TEXT NOT NULL,
	resource_id      TEXT NOT NULL,
	filters          JSONB NOT NULL DEFAULT '[]',
	applied_count    INTEGER NOT NULL DEFAULT 0,
	product_count    INTEGER NOT NULL DEFAULT 0,
	response_time_ms BIGINT NOT NULL DEFAULT 0,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS collection_page_views_handle_idx
	ON collection_page_views (handle, created_at DESC);
`

// PostgresRepository stores collection page views for analytics
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(dsn string, maxConn, maxIdleConn int) (*PostgresRepository, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return NewFromDB(db), nil
}

// NewFromDB wraps an existing connection
func NewFromDB(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Close closes the database connection
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

// EnsureSchema creates the page view table when it does not exist
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	for _, stmt := range strings.Split(schema, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}

// RecordPageView logs a rendered collection page
func (r *PostgresRepository) RecordPageView(ctx context.Context, view *model.PageView) error {
	query := `
		INSERT INTO collection_page_views
			(handle, resource_id, filters, applied_count, product_count, response_time_ms)
		VALUES
			(:handle, :resource_id, :filters, :applied_count, :product_count, :response_time_ms)
	`
	if _, err := r.db.NamedExecContext(ctx, query, view); err != nil {
		return fmt.Errorf("failed to record page view: %w", err)
	}
	return nil
}

// RecentPageViews returns the latest page views of a collection, newest first
func (r *PostgresRepository) RecentPageViews(ctx context.Context, handle string, limit int) ([]model.PageView, error) {
	query := `
		SELECT id, handle, resource_id, filters, applied_count, product_count, response_time_ms, created_at
		FROM collection_page_views
		WHERE handle = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`
	views := []model.PageView{}
	if err := r.db.SelectContext(ctx, &views, query, handle, limit); err != nil {
		return nil, fmt.Errorf("failed to fetch page views: %w", err)
	}
	return views, nil
}
