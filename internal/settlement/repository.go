package settlement

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/wayfarer-app/tripmate/pkg/money"
)

// Repository handles settlement data persistence and balance aggregation
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new settlement repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new settlement record in PENDING state
func (r *Repository) Create(ctx context.Context, s *Settlement) (*Settlement, error) {
	query := `
		INSERT INTO settlements (trip_id, from_user_id, to_user_id, amount, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		s.TripID,
		s.FromUserID,
		s.ToUserID,
		s.Amount.String(),
		StatusPending,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create settlement: %w", err)
	}
	s.Status = StatusPending

	return s, nil
}

// GetByID retrieves a settlement by its ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*Settlement, error) {
	query := `
		SELECT s.id, s.trip_id, s.from_user_id, s.to_user_id, s.amount, s.status,
		       s.created_at, s.updated_at, uf.username, ut.username
		FROM settlements s
		JOIN users uf ON uf.id = s.from_user_id
		JOIN users ut ON ut.id = s.to_user_id
		WHERE s.id = $1
	`

	s := &Settlement{}
	var amount string
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&s.ID,
		&s.TripID,
		&s.FromUserID,
		&s.ToUserID,
		&amount,
		&s.Status,
		&s.CreatedAt,
		&s.UpdatedAt,
		&s.FromUsername,
		&s.ToUsername,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get settlement: %w", err)
	}

	if s.Amount, err = money.Parse(amount); err != nil {
		return nil, fmt.Errorf("failed to parse settlement amount: %w", err)
	}

	return s, nil
}

// ListByTripID retrieves settlements for a trip, newest first
func (r *Repository) ListByTripID(ctx context.Context, tripID int64) ([]*Settlement, error) {
	query := `
		SELECT s.id, s.trip_id, s.from_user_id, s.to_user_id, s.amount, s.status,
		       s.created_at, s.updated_at, uf.username, ut.username
		FROM settlements s
		JOIN users uf ON uf.id = s.from_user_id
		JOIN users ut ON ut.id = s.to_user_id
		WHERE s.trip_id = $1
		ORDER BY s.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}
	defer rows.Close()

	var settlements []*Settlement
	for rows.Next() {
		s := &Settlement{}
		var amount string
		if err := rows.Scan(
			&s.ID,
			&s.TripID,
			&s.FromUserID,
			&s.ToUserID,
			&amount,
			&s.Status,
			&s.CreatedAt,
			&s.UpdatedAt,
			&s.FromUsername,
			&s.ToUsername,
		); err != nil {
			return nil, fmt.Errorf("failed to scan settlement: %w", err)
		}
		if s.Amount, err = money.Parse(amount); err != nil {
			return nil, fmt.Errorf("failed to parse settlement amount: %w", err)
		}
		settlements = append(settlements, s)
	}

	return settlements, nil
}

// UpdateStatus transitions a settlement
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status Status) error {
	query := `UPDATE settlements SET status = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update settlement status: %w", err)
	}
	return nil
}

// GetTripBalances aggregates every joined member's position on a trip.
// Expenses paid and confirmed settlements sent count as paid; expense
// shares and confirmed settlements received count as owed. NUMERIC sums
// come back as decimal strings and are parsed at the boundary.
func (r *Repository) GetTripBalances(ctx context.Context, tripID int64) ([]*MemberBalance, error) {
	query := `
		SELECT m.user_id, u.username,
			COALESCE((SELECT SUM(e.amount) FROM expenses e
				WHERE e.trip_id = $1 AND e.payer_id = m.user_id), 0),
			COALESCE((SELECT SUM(sp.amount_owed) FROM expense_splits sp
				JOIN expenses e ON e.id = sp.expense_id
				WHERE e.trip_id = $1 AND sp.user_id = m.user_id), 0),
			COALESCE((SELECT SUM(st.amount) FROM settlements st
				WHERE st.trip_id = $1 AND st.from_user_id = m.user_id AND st.status = 'CONFIRMED'), 0),
			COALESCE((SELECT SUM(st.amount) FROM settlements st
				WHERE st.trip_id = $1 AND st.to_user_id = m.user_id AND st.status = 'CONFIRMED'), 0)
		FROM trip_members m
		JOIN users u ON u.id = m.user_id
		WHERE m.trip_id = $1 AND m.status = 'JOINED'
		ORDER BY m.id
	`

	rows, err := r.db.QueryContext(ctx, query, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate balances: %w", err)
	}
	defer rows.Close()

	var balances []*MemberBalance
	for rows.Next() {
		b := &MemberBalance{}
		var expensesPaid, sharesOwed, settledOut, settledIn string
		if err := rows.Scan(&b.UserID, &b.Username, &expensesPaid, &sharesOwed, &settledOut, &settledIn); err != nil {
			return nil, fmt.Errorf("failed to scan balance: %w", err)
		}

		paid, err := money.Parse(expensesPaid)
		if err != nil {
			return nil, fmt.Errorf("failed to parse paid total: %w", err)
		}
		owed, err := money.Parse(sharesOwed)
		if err != nil {
			return nil, fmt.Errorf("failed to parse owed total: %w", err)
		}
		out, err := money.Parse(settledOut)
		if err != nil {
			return nil, fmt.Errorf("failed to parse settled total: %w", err)
		}
		in, err := money.Parse(settledIn)
		if err != nil {
			return nil, fmt.Errorf("failed to parse settled total: %w", err)
		}

		b.TotalPaid = paid + out
		b.TotalOwed = owed + in
		balances = append(balances, b)
	}

	return balances, nil
}
