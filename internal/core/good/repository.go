package good

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(databaseURL string) (*Repository, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error { return r.db.Close() }

func (r *Repository) HealthCheck(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *Repository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS goods (
			id         UUID PRIMARY KEY,
			url        TEXT NOT NULL,
			name       TEXT NOT NULL,
			price      NUMERIC,
			image_url  TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	return err
}

func (r *Repository) Create(ctx context.Context, g Good) (Good, error) {
	g.ID = uuid.NewString()
	now := time.Now().UTC()
	g.CreatedAt, g.UpdatedAt = now, now
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO goods (id, url, name, price, image_url, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		g.ID, g.URL, g.Name, g.Price, g.ImageURL, g.CreatedAt, g.UpdatedAt)
	if err != nil {
		return Good{}, fmt.Errorf("insert good: %w", err)
	}
	return g, nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (Good, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, url, name, price, image_url, created_at, updated_at FROM goods WHERE id = $1`, id)
	return scanGood(row)
}

func (r *Repository) List(ctx context.Context) ([]Good, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, url, name, price, image_url, created_at, updated_at FROM goods ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list goods: %w", err)
	}
	defer rows.Close()

	var goods []Good
	for rows.Next() {
		g, err := scanGood(rows)
		if err != nil {
			return nil, err
		}
		goods = append(goods, g)
	}
	return goods, rows.Err()
}

func (r *Repository) UpdatePrice(ctx context.Context, id string, price *float64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE goods SET price = $2, updated_at = now() WHERE id = $1`, id, price)
	if err != nil {
		return fmt.Errorf("update price: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanGood(row rowScanner) (Good, error) {
	var g Good
	var price sql.NullFloat64
	var image sql.NullString
	if err := row.Scan(&g.ID, &g.URL, &g.Name, &price, &image, &g.CreatedAt, &g.UpdatedAt); err != nil {
		return Good{}, err
	}
	if price.Valid {
		g.Price = &price.Float64
	}
	if image.Valid {
		g.ImageURL = &image.String
	}
	return g, nil
}
