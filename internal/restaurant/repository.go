package restaurant

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const repoTimeout = 5 * time.Second

// Repository provides access to restaurant record storage.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository builds a new restaurant repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// EnsureSchema creates the restaurants table when it does not exist yet.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	query := `
CREATE TABLE IF NOT EXISTS restaurants (
    id UUID PRIMARY KEY,
    name TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    address TEXT NOT NULL DEFAULT '',
    phone_number TEXT NOT NULL DEFAULT '',
    images TEXT[] NOT NULL DEFAULT '{}',
    opening_hours JSONB NOT NULL DEFAULT '[]',
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`

	if _, err := r.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("ensure restaurants schema: %w", err)
	}
	return nil
}

// Create inserts a new restaurant record.
func (r *Repository) Create(ctx context.Context, rec Restaurant) (Restaurant, error) {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	hours, err := json.Marshal(rec.OpeningHours)
	if err != nil {
		return Restaurant{}, fmt.Errorf("encode opening hours: %w", err)
	}

	query := `
INSERT INTO restaurants (id, name, description, address, phone_number, images, opening_hours)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, name, description, address, phone_number, images, opening_hours, created_at, updated_at;`

	row := r.pool.QueryRow(ctx, query,
		rec.ID,
		rec.Name,
		rec.Description,
		rec.Address,
		rec.PhoneNumber,
		rec.Images,
		hours,
	)

	stored, err := scanRestaurant(row)
	if err != nil {
		return Restaurant{}, fmt.Errorf("create restaurant: %w", err)
	}
	return stored, nil
}

// Get fetches a restaurant by ID.
func (r *Repository) Get(ctx context.Context, id uuid.UUID) (Restaurant, error) {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	query := `
SELECT id, name, description, address, phone_number, images, opening_hours, created_at, updated_at
FROM restaurants
WHERE id = $1;`

	stored, err := scanRestaurant(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return Restaurant{}, ErrNotFound
		}
		return Restaurant{}, fmt.Errorf("get restaurant: %w", err)
	}
	return stored, nil
}

// List returns all restaurant records.
func (r *Repository) List(ctx context.Context) ([]Restaurant, error) {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	query := `
SELECT id, name, description, address, phone_number, images, opening_hours, created_at, updated_at
FROM restaurants
ORDER BY created_at;`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	defer rows.Close()

	var records []Restaurant
	for rows.Next() {
		rec, err := scanRestaurant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan restaurant: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate restaurants: %w", err)
	}
	return records, nil
}

// Update replaces the mutable fields of a record and bumps updated_at.
func (r *Repository) Update(ctx context.Context, rec Restaurant) (Restaurant, error) {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	hours, err := json.Marshal(rec.OpeningHours)
	if err != nil {
		return Restaurant{}, fmt.Errorf("encode opening hours: %w", err)
	}

	query := `
UPDATE restaurants
SET name = $2, description = $3, address = $4, phone_number = $5, images = $6, opening_hours = $7, updated_at = now()
WHERE id = $1
RETURNING id, name, description, address, phone_number, images, opening_hours, created_at, updated_at;`

	row := r.pool.QueryRow(ctx, query,
		rec.ID,
		rec.Name,
		rec.Description,
		rec.Address,
		rec.PhoneNumber,
		rec.Images,
		hours,
	)

	stored, err := scanRestaurant(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return Restaurant{}, ErrNotFound
		}
		return Restaurant{}, fmt.Errorf("update restaurant: %w", err)
	}
	return stored, nil
}

// Delete removes a restaurant record.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	tag, err := r.pool.Exec(ctx, `DELETE FROM restaurants WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("delete restaurant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanRestaurant(row pgx.Row) (Restaurant, error) {
	var rec Restaurant
	var hours []byte

	err := row.Scan(
		&rec.ID,
		&rec.Name,
		&rec.Description,
		&rec.Address,
		&rec.PhoneNumber,
		&rec.Images,
		&hours,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		return Restaurant{}, err
	}

	if len(hours) > 0 {
		if err := json.Unmarshal(hours, &rec.OpeningHours); err != nil {
			return Restaurant{}, fmt.Errorf("decode opening hours: %w", err)
		}
	}
	if rec.Images == nil {
		rec.Images = []string{}
	}
	return rec, nil
}
