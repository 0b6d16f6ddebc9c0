package itinerary

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Repository handles itinerary data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new itinerary repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new itinerary item
func (r *Repository) Create(ctx context.Context, item *Item) (*Item, error) {
	query := `
		INSERT INTO itinerary_items (trip_id, creator_id, day, title, location, starts_at, ends_at, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		item.TripID,
		item.CreatorID,
		item.Day,
		item.Title,
		item.Location,
		item.StartsAt,
		item.EndsAt,
		item.Notes,
	).Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create itinerary item: %w", err)
	}

	return item, nil
}

// GetByID retrieves an itinerary item by its ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*Item, error) {
	query := `
		SELECT id, trip_id, creator_id, day, title, location, starts_at, ends_at, notes, created_at
		FROM itinerary_items
		WHERE id = $1
	`

	item := &Item{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&item.ID,
		&item.TripID,
		&item.CreatorID,
		&item.Day,
		&item.Title,
		&item.Location,
		&item.StartsAt,
		&item.EndsAt,
		&item.Notes,
		&item.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get itinerary item: %w", err)
	}

	return item, nil
}

// ListByTripID retrieves a trip's itinerary ordered by day, then start time
func (r *Repository) ListByTripID(ctx context.Context, tripID int64) ([]*Item, error) {
	query := `
		SELECT id, trip_id, creator_id, day, title, location, starts_at, ends_at, notes, created_at
		FROM itinerary_items
		WHERE trip_id = $1
		ORDER BY day, starts_at NULLS LAST, id
	`

	rows, err := r.db.QueryContext(ctx, query, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to list itinerary items: %w", err)
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		item := &Item{}
		if err := rows.Scan(
			&item.ID,
			&item.TripID,
			&item.CreatorID,
			&item.Day,
			&item.Title,
			&item.Location,
			&item.StartsAt,
			&item.EndsAt,
			&item.Notes,
			&item.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan itinerary item: %w", err)
		}
		items = append(items, item)
	}

	return items, nil
}

// Update modifies an itinerary item; nil fields are left unchanged
func (r *Repository) Update(ctx context.Context, id int64, day *int, title, location *string, startsAt, endsAt *time.Time, notes *string) (*Item, error) {
	query := `
		UPDATE itinerary_items
		SET day = COALESCE($1, day),
		    title = COALESCE($2, title),
		    location = COALESCE($3, location),
		    starts_at = COALESCE($4, starts_at),
		    ends_at = COALESCE($5, ends_at),
		    notes = COALESCE($6, notes)
		WHERE id = $7
		RETURNING id, trip_id, creator_id, day, title, location, starts_at, ends_at, notes, created_at
	`

	item := &Item{}
	err := r.db.QueryRowContext(ctx, query, day, title, location, startsAt, endsAt, notes, id).Scan(
		&item.ID,
		&item.TripID,
		&item.CreatorID,
		&item.Day,
		&item.Title,
		&item.Location,
		&item.StartsAt,
		&item.EndsAt,
		&item.Notes,
		&item.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update itinerary item: %w", err)
	}

	return item, nil
}

// Delete removes an itinerary item
func (r *Repository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM itinerary_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete itinerary item: %w", err)
	}
	return nil
}
