package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema creates the table PostgresSource reads from.
const Schema = `
CREATE TABLE IF NOT EXISTS skips (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	size        TEXT NOT NULL,
	price       INTEGER NOT NULL,
	hire_period TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	image       TEXT NOT NULL DEFAULT '',
	popular     BOOLEAN NOT NULL DEFAULT FALSE,
	capacity    TEXT NOT NULL DEFAULT '',
	suitable    TEXT[] NOT NULL DEFAULT '{}',
	gradient    TEXT NOT NULL DEFAULT '',
	sort_order  INTEGER NOT NULL DEFAULT 0
)`

const listSkipsQuery = `
SELECT id, name, size, price, hire_period, description, image, popular, capacity, suitable, gradient
FROM skips
ORDER BY sort_order, price, id`

const upsertSkipQuery = `
INSERT INTO skips (id, name, size, price, hire_period, description, image, popular, capacity, suitable, gradient, sort_order)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
ON CONFLICT (id) DO UPDATE SET
	name = EXCLUDED.name,
	size = EXCLUDED.size,
	price = EXCLUDED.price,
	hire_period = EXCLUDED.hire_period,
	description = EXCLUDED.description,
	image = EXCLUDED.image,
	popular = EXCLUDED.popular,
	capacity = EXCLUDED.capacity,
	suitable = EXCLUDED.suitable,
	gradient = EXCLUDED.gradient,
	sort_order = EXCLUDED.sort_order`

// PostgresSource reads the catalog from the skips table.
type PostgresSource struct {
	pool *pgxpool.Pool
}

// NewPostgresSource connects to dsn and verifies the connection.
func NewPostgresSource(ctx context.Context, dsn string) (*PostgresSource, error) {
	if dsn == "" {
		return nil, errors.New("catalog dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &PostgresSource{pool: pool}, nil
}

func (s *PostgresSource) Name() string { return "postgres" }

func (s *PostgresSource) Fetch(ctx context.Context) ([]SkipOption, error) {
	rows, err := s.pool.Query(ctx, listSkipsQuery)
	if err != nil {
		return nil, fmt.Errorf("query skips: %w", err)
	}
	options, err := pgx.CollectRows(rows, scanSkip)
	if err != nil {
		return nil, fmt.Errorf("scan skips: %w", err)
	}
	return options, nil
}

// Seed creates the schema and upserts options in their given order.
func (s *PostgresSource) Seed(ctx context.Context, options []SkipOption) error {
	if _, err := s.pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	batch := &pgx.Batch{}
	for i, option := range options {
		suitable := option.Suitable
		if suitable == nil {
			suitable = []string{}
		}
		batch.Queue(upsertSkipQuery,
			option.ID, option.Name, option.Size, option.Price, option.HirePeriod,
			option.Description, option.Image, option.Popular, option.Capacity,
			suitable, option.Gradient, i)
	}
	results := s.pool.SendBatch(ctx, batch)
	defer results.Close()
	for range options {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("upsert skip: %w", err)
		}
	}
	return nil
}

func (s *PostgresSource) Close() error {
	s.pool.Close()
	return nil
}

func scanSkip(row pgx.CollectableRow) (SkipOption, error) {
	var option SkipOption
	err := row.Scan(
		&option.ID,
		&option.Name,
		&option.Size,
		&option.Price,
		&option.HirePeriod,
		&option.Description,
		&option.Image,
		&option.Popular,
		&option.Capacity,
		&option.Suitable,
		&option.Gradient,
	)
	return option, err
}
