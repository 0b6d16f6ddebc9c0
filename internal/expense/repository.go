package expense

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/wayfarer-app/tripmate/pkg/money"
)

// Repository handles expense data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new expense repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts an expense and its splits in a single transaction.
// The payer's own split starts CONFIRMED; everyone else's starts PENDING.
func (r *Repository) Create(ctx context.Context, expense *Expense, splits []*Split) (*Expense, []*Split, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO expenses (trip_id, payer_id, description, amount, split_type)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err = tx.QueryRowContext(ctx, query,
		expense.TripID,
		expense.PayerID,
		expense.Description,
		expense.Amount.String(),
		expense.SplitType,
	).Scan(&expense.ID, &expense.CreatedAt)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create expense: %w", err)
	}

	splitQuery := `
		INSERT INTO expense_splits (expense_id, user_id, amount_owed, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, updated_at
	`

	for _, s := range splits {
		s.ExpenseID = expense.ID
		status := SplitStatusPending
		if s.UserID == expense.PayerID {
			status = SplitStatusConfirmed
		}
		s.Status = status

		err = tx.QueryRowContext(ctx, splitQuery,
			expense.ID,
			s.UserID,
			s.Amount.String(),
			status,
		).Scan(&s.ID, &s.UpdatedAt)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create split: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return expense, splits, nil
}

// GetByID retrieves an expense by its ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*Expense, error) {
	query := `
		SELECT e.id, e.trip_id, e.payer_id, e.description, e.amount, e.split_type, e.created_at, u.username
		FROM expenses e
		JOIN users u ON u.id = e.payer_id
		WHERE e.id = $1
	`

	e := &Expense{}
	var amount string
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&e.ID,
		&e.TripID,
		&e.PayerID,
		&e.Description,
		&amount,
		&e.SplitType,
		&e.CreatedAt,
		&e.PayerUsername,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	if e.Amount, err = money.Parse(amount); err != nil {
		return nil, fmt.Errorf("failed to parse expense amount: %w", err)
	}

	return e, nil
}

// ListByTripID retrieves expenses for a trip, newest first
func (r *Repository) ListByTripID(ctx context.Context, tripID int64, limit, offset int) ([]*Expense, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM expenses WHERE trip_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, tripID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count expenses: %w", err)
	}

	query := `
		SELECT e.id, e.trip_id, e.payer_id, e.description, e.amount, e.split_type, e.created_at, u.username
		FROM expenses e
		JOIN users u ON u.id = e.payer_id
		WHERE e.trip_id = $1
		ORDER BY e.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, tripID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*Expense
	for rows.Next() {
		e := &Expense{}
		var amount string
		if err := rows.Scan(
			&e.ID,
			&e.TripID,
			&e.PayerID,
			&e.Description,
			&amount,
			&e.SplitType,
			&e.CreatedAt,
			&e.PayerUsername,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan expense: %w", err)
		}
		if e.Amount, err = money.Parse(amount); err != nil {
			return nil, 0, fmt.Errorf("failed to parse expense amount: %w", err)
		}
		expenses = append(expenses, e)
	}

	return expenses, total, nil
}

// GetSplits retrieves all splits for an expense
func (r *Repository) GetSplits(ctx context.Context, expenseID int64) ([]*Split, error) {
	query := `
		SELECT s.id, s.expense_id, s.user_id, s.amount_owed, s.status, s.dispute_reason, s.settlement_id, s.updated_at, u.username
		FROM expense_splits s
		JOIN users u ON u.id = s.user_id
		WHERE s.expense_id = $1
		ORDER BY s.id
	`

	rows, err := r.db.QueryContext(ctx, query, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get splits: %w", err)
	}
	defer rows.Close()

	var splits []*Split
	for rows.Next() {
		s := &Split{}
		var amount string
		if err := rows.Scan(
			&s.ID,
			&s.ExpenseID,
			&s.UserID,
			&amount,
			&s.Status,
			&s.DisputeReason,
			&s.SettlementID,
			&s.UpdatedAt,
			&s.Username,
		); err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		if s.Amount, err = money.Parse(amount); err != nil {
			return nil, fmt.Errorf("failed to parse split amount: %w", err)
		}
		splits = append(splits, s)
	}

	return splits, nil
}

// GetSplitByID retrieves a single split
func (r *Repository) GetSplitByID(ctx context.Context, id int64) (*Split, error) {
	query := `
		SELECT id, expense_id, user_id, amount_owed, status, dispute_reason, settlement_id, updated_at
		FROM expense_splits
		WHERE id = $1
	`

	s := &Split{}
	var amount string
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&s.ID,
		&s.ExpenseID,
		&s.UserID,
		&amount,
		&s.Status,
		&s.DisputeReason,
		&s.SettlementID,
		&s.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get split: %w", err)
	}

	if s.Amount, err = money.Parse(amount); err != nil {
		return nil, fmt.Errorf("failed to parse split amount: %w", err)
	}

	return s, nil
}

// UpdateSplitStatus transitions a split and clears any dispute reason
func (r *Repository) UpdateSplitStatus(ctx context.Context, id int64, status SplitStatus) error {
	query := `
		UPDATE expense_splits
		SET status = $1, dispute_reason = NULL, updated_at = NOW()
		WHERE id = $2
	`
	_, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update split status: %w", err)
	}
	return nil
}

// DisputeSplit marks a split DISPUTED with the given reason
func (r *Repository) DisputeSplit(ctx context.Context, id int64, reason string) error {
	query := `
		UPDATE expense_splits
		SET status = $1, dispute_reason = $2, updated_at = NOW()
		WHERE id = $3
	`
	_, err := r.db.ExecContext(ctx, query, SplitStatusDisputed, reason, id)
	if err != nil {
		return fmt.Errorf("failed to dispute split: %w", err)
	}
	return nil
}

// CountSettledSplits counts splits on the expense already paid or confirmed
// by someone other than the payer. Used as the delete guard.
func (r *Repository) CountSettledSplits(ctx context.Context, expenseID, payerID int64) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM expense_splits
		WHERE expense_id = $1 AND user_id != $2 AND status IN ($3, $4)
	`

	var count int
	err := r.db.QueryRowContext(ctx, query, expenseID, payerID, SplitStatusPaid, SplitStatusConfirmed).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count settled splits: %w", err)
	}
	return count, nil
}

// Delete removes an expense; splits cascade at the database level
func (r *Repository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return nil
}
