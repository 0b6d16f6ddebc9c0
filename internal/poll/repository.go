package poll

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles poll data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new poll repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a poll and its options in a single transaction
func (r *Repository) Create(ctx context.Context, poll *Poll, optionTexts []string) (*Poll, []*Option, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO polls (trip_id, creator_id, question, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err = tx.QueryRowContext(ctx, query, poll.TripID, poll.CreatorID, poll.Question, StatusOpen).
		Scan(&poll.ID, &poll.CreatedAt)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create poll: %w", err)
	}
	poll.Status = StatusOpen

	optionQuery := `
		INSERT INTO poll_options (poll_id, text)
		VALUES ($1, $2)
		RETURNING id
	`

	options := make([]*Option, len(optionTexts))
	for i, text := range optionTexts {
		o := &Option{PollID: poll.ID, Text: text}
		if err := tx.QueryRowContext(ctx, optionQuery, poll.ID, text).Scan(&o.ID); err != nil {
			return nil, nil, fmt.Errorf("failed to create poll option: %w", err)
		}
		options[i] = o
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return poll, options, nil
}

// GetByID retrieves a poll by its ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*Poll, error) {
	query := `
		SELECT p.id, p.trip_id, p.creator_id, p.question, p.status, p.created_at, u.username
		FROM polls p
		JOIN users u ON u.id = p.creator_id
		WHERE p.id = $1
	`

	p := &Poll{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID,
		&p.TripID,
		&p.CreatorID,
		&p.Question,
		&p.Status,
		&p.CreatedAt,
		&p.CreatorUsername,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get poll: %w", err)
	}

	return p, nil
}

// ListByTripID retrieves polls for a trip, newest first
func (r *Repository) ListByTripID(ctx context.Context, tripID int64) ([]*Poll, error) {
	query := `
		SELECT p.id, p.trip_id, p.creator_id, p.question, p.status, p.created_at, u.username
		FROM polls p
		JOIN users u ON u.id = p.creator_id
		WHERE p.trip_id = $1
		ORDER BY p.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to list polls: %w", err)
	}
	defer rows.Close()

	var polls []*Poll
	for rows.Next() {
		p := &Poll{}
		if err := rows.Scan(
			&p.ID,
			&p.TripID,
			&p.CreatorID,
			&p.Question,
			&p.Status,
			&p.CreatedAt,
			&p.CreatorUsername,
		); err != nil {
			return nil, fmt.Errorf("failed to scan poll: %w", err)
		}
		polls = append(polls, p)
	}

	return polls, nil
}

// GetOptions retrieves a poll's options with their vote tallies
func (r *Repository) GetOptions(ctx context.Context, pollID int64) ([]*Option, error) {
	query := `
		SELECT o.id, o.poll_id, o.text, COUNT(v.id)
		FROM poll_options o
		LEFT JOIN poll_votes v ON v.option_id = o.id
		WHERE o.poll_id = $1
		GROUP BY o.id, o.poll_id, o.text
		ORDER BY o.id
	`

	rows, err := r.db.QueryContext(ctx, query, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to get poll options: %w", err)
	}
	defer rows.Close()

	var options []*Option
	for rows.Next() {
		o := &Option{}
		if err := rows.Scan(&o.ID, &o.PollID, &o.Text, &o.VoteCount); err != nil {
			return nil, fmt.Errorf("failed to scan poll option: %w", err)
		}
		options = append(options, o)
	}

	return options, nil
}

// GetOption retrieves a single option
func (r *Repository) GetOption(ctx context.Context, optionID int64) (*Option, error) {
	query := `SELECT id, poll_id, text FROM poll_options WHERE id = $1`

	o := &Option{}
	err := r.db.QueryRowContext(ctx, query, optionID).Scan(&o.ID, &o.PollID, &o.Text)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get poll option: %w", err)
	}

	return o, nil
}

// Vote records a user's choice; revoting replaces the previous one
func (r *Repository) Vote(ctx context.Context, pollID, optionID, userID int64) error {
	query := `
		INSERT INTO poll_votes (poll_id, option_id, user_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (poll_id, user_id) DO UPDATE SET option_id = $2, voted_at = NOW()
	`
	_, err := r.db.ExecContext(ctx, query, pollID, optionID, userID)
	if err != nil {
		return fmt.Errorf("failed to vote: %w", err)
	}
	return nil
}

// GetVote retrieves a user's vote on a poll, nil if they have not voted
func (r *Repository) GetVote(ctx context.Context, pollID, userID int64) (*Vote, error) {
	query := `
		SELECT id, poll_id, option_id, user_id, voted_at
		FROM poll_votes
		WHERE poll_id = $1 AND user_id = $2
	`

	v := &Vote{}
	err := r.db.QueryRowContext(ctx, query, pollID, userID).Scan(
		&v.ID,
		&v.PollID,
		&v.OptionID,
		&v.UserID,
		&v.VotedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get vote: %w", err)
	}

	return v, nil
}

// Close marks a poll CLOSED
func (r *Repository) Close(ctx context.Context, pollID int64) error {
	query := `UPDATE polls SET status = $1 WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, StatusClosed, pollID)
	if err != nil {
		return fmt.Errorf("failed to close poll: %w", err)
	}
	return nil
}

// Delete removes a poll; options and votes cascade at the database level
func (r *Repository) Delete(ctx context.Context, pollID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM polls WHERE id = $1`, pollID)
	if err != nil {
		return fmt.Errorf("failed to delete poll: %w", err)
	}
	return nil
}
