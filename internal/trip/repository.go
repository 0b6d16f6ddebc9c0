package trip

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Repository handles trip and membership data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new trip repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new trip and its organizer membership
func (r *Repository) Create(ctx context.Context, creatorID int64, name string, description *string, destination string, startDate, endDate *time.Time, inviteToken string) (*Trip, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO trips (name, description, destination, start_date, end_date, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, name, description, destination, start_date, end_date, created_by, created_at
	`

	trip := &Trip{}
	err = tx.QueryRowContext(ctx, query, name, description, destination, startDate, endDate, creatorID).Scan(
		&trip.ID,
		&trip.Name,
		&trip.Description,
		&trip.Destination,
		&trip.StartDate,
		&trip.EndDate,
		&trip.CreatedBy,
		&trip.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create trip: %w", err)
	}

	// The creator joins immediately as organizer
	memberQuery := `
		INSERT INTO trip_members (trip_id, user_id, status, role, invite_token, joined_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`
	if _, err := tx.ExecContext(ctx, memberQuery, trip.ID, creatorID, MemberStatusJoined, MemberRoleOrganizer, inviteToken); err != nil {
		return nil, fmt.Errorf("failed to add organizer: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return trip, nil
}

// GetByID retrieves a trip by its ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*Trip, error) {
	query := `
		SELECT id, name, description, destination, start_date, end_date, created_by, created_at
		FROM trips
		WHERE id = $1
	`

	trip := &Trip{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&trip.ID,
		&trip.Name,
		&trip.Description,
		&trip.Destination,
		&trip.StartDate,
		&trip.EndDate,
		&trip.CreatedBy,
		&trip.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}

	return trip, nil
}

// ListByUserID retrieves all trips a user belongs to
func (r *Repository) ListByUserID(ctx context.Context, userID int64, limit, offset int) ([]*Trip, int, error) {
	var total int
	countQuery := `
		SELECT COUNT(*)
		FROM trips t
		JOIN trip_members tm ON t.id = tm.trip_id
		WHERE tm.user_id = $1
	`
	if err := r.db.QueryRowContext(ctx, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count trips: %w", err)
	}

	query := `
		SELECT t.id, t.name, t.description, t.destination, t.start_date, t.end_date, t.created_by, t.created_at
		FROM trips t
		JOIN trip_members tm ON t.id = tm.trip_id
		WHERE tm.user_id = $1
		ORDER BY t.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list trips: %w", err)
	}
	defer rows.Close()

	var trips []*Trip
	for rows.Next() {
		trip := &Trip{}
		if err := rows.Scan(
			&trip.ID,
			&trip.Name,
			&trip.Description,
			&trip.Destination,
			&trip.StartDate,
			&trip.EndDate,
			&trip.CreatedBy,
			&trip.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan trip: %w", err)
		}
		trips = append(trips, trip)
	}

	return trips, total, nil
}

// Update modifies an existing trip
func (r *Repository) Update(ctx context.Context, id int64, name, description, destination *string, startDate, endDate *time.Time) (*Trip, error) {
	query := `
		UPDATE trips
		SET name = COALESCE($2, name),
		    description = COALESCE($3, description),
		    destination = COALESCE($4, destination),
		    start_date = COALESCE($5, start_date),
		    end_date = COALESCE($6, end_date)
		WHERE id = $1
		RETURNING id, name, description, destination, start_date, end_date, created_by, created_at
	`

	trip := &Trip{}
	err := r.db.QueryRowContext(ctx, query, id, name, description, destination, startDate, endDate).Scan(
		&trip.ID,
		&trip.Name,
		&trip.Description,
		&trip.Destination,
		&trip.StartDate,
		&trip.EndDate,
		&trip.CreatedBy,
		&trip.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update trip: %w", err)
	}

	return trip, nil
}

// Delete removes a trip and its memberships
func (r *Repository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM trips WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete trip: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("trip not found")
	}

	return nil
}

// GetMembers retrieves all members of a trip
func (r *Repository) GetMembers(ctx context.Context, tripID int64) ([]*Member, error) {
	query := `
		SELECT tm.id, tm.trip_id, tm.user_id, tm.status, tm.role, tm.invite_token, tm.joined_at, u.username, u.email
		FROM trip_members tm
		JOIN users u ON tm.user_id = u.id
		WHERE tm.trip_id = $1
		ORDER BY tm.id
	`

	rows, err := r.db.QueryContext(ctx, query, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to get members: %w", err)
	}
	defer rows.Close()

	var members []*Member
	for rows.Next() {
		m := &Member{}
		if err := rows.Scan(
			&m.ID,
			&m.TripID,
			&m.UserID,
			&m.Status,
			&m.Role,
			&m.InviteToken,
			&m.JoinedAt,
			&m.Username,
			&m.Email,
		); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}

	return members, nil
}

// GetMember retrieves a user's membership in a trip
func (r *Repository) GetMember(ctx context.Context, tripID, userID int64) (*Member, error) {
	query := `
		SELECT id, trip_id, user_id, status, role, invite_token, joined_at
		FROM trip_members
		WHERE trip_id = $1 AND user_id = $2
	`

	m := &Member{}
	err := r.db.QueryRowContext(ctx, query, tripID, userID).Scan(
		&m.ID,
		&m.TripID,
		&m.UserID,
		&m.Status,
		&m.Role,
		&m.InviteToken,
		&m.JoinedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	return m, nil
}

// GetMemberByToken retrieves a membership by its invite token
func (r *Repository) GetMemberByToken(ctx context.Context, token string) (*Member, error) {
	query := `
		SELECT id, trip_id, user_id, status, role, invite_token, joined_at
		FROM trip_members
		WHERE invite_token = $1
	`

	m := &Member{}
	err := r.db.QueryRowContext(ctx, query, token).Scan(
		&m.ID,
		&m.TripID,
		&m.UserID,
		&m.Status,
		&m.Role,
		&m.InviteToken,
		&m.JoinedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get member by token: %w", err)
	}

	return m, nil
}

// AddMember inserts an invited member with the given token
func (r *Repository) AddMember(ctx context.Context, tripID, userID int64, role MemberRole, inviteToken string) (*Member, error) {
	query := `
		INSERT INTO trip_members (trip_id, user_id, status, role, invite_token)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, trip_id, user_id, status, role, invite_token, joined_at
	`

	m := &Member{}
	err := r.db.QueryRowContext(ctx, query, tripID, userID, MemberStatusInvited, role, inviteToken).Scan(
		&m.ID,
		&m.TripID,
		&m.UserID,
		&m.Status,
		&m.Role,
		&m.InviteToken,
		&m.JoinedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to add member: %w", err)
	}

	return m, nil
}

// JoinMember marks an invited member as joined
func (r *Repository) JoinMember(ctx context.Context, memberID int64) (*Member, error) {
	query := `
		UPDATE trip_members
		SET status = $2, joined_at = NOW()
		WHERE id = $1
		RETURNING id, trip_id, user_id, status, role, invite_token, joined_at
	`

	m := &Member{}
	err := r.db.QueryRowContext(ctx, query, memberID, MemberStatusJoined).Scan(
		&m.ID,
		&m.TripID,
		&m.UserID,
		&m.Status,
		&m.Role,
		&m.InviteToken,
		&m.JoinedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to join member: %w", err)
	}

	return m, nil
}

// RemoveMember deletes a membership
func (r *Repository) RemoveMember(ctx context.Context, memberID int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM trip_members WHERE id = $1`, memberID)
	if err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("member not found")
	}

	return nil
}
