package settle

import (
	"errors"
	"testing"

	"github.com/wayfarer-app/tripmate/pkg/money"
)

func TestSettle(t *testing.T) {
	tests := []struct {
		name     string
		balances []Balance
		validate func(t *testing.T, plan *Plan)
	}{
		{
			name: "single debtor pays single creditor",
			balances: []Balance{
				{UserID: 1, UserName: "alice", Balance: -5000},
				{UserID: 2, UserName: "bob", Balance: 5000},
			},
			validate: func(t *testing.T, plan *Plan) {
				if len(plan.Transactions) != 1 {
					t.Fatalf("got %d transactions, want 1", len(plan.Transactions))
				}
				tx := plan.Transactions[0]
				if tx.From.UserID != 1 || tx.To.UserID != 2 || tx.Amount != 5000 {
					t.Errorf("got %+v, want alice pays bob 50.00", tx)
				}
				if plan.Summary.TotalTransactions != 1 || plan.Summary.TotalAmount != 5000 {
					t.Errorf("summary = %+v, want {1 5000}", plan.Summary)
				}
			},
		},
		{
			name: "two debtors drain into one creditor largest first",
			balances: []Balance{
				{UserID: 1, UserName: "alice", Balance: 10000},
				{UserID: 2, UserName: "bob", Balance: -6000},
				{UserID: 3, UserName: "carol", Balance: -4000},
			},
			validate: func(t *testing.T, plan *Plan) {
				if len(plan.Transactions) != 2 {
					t.Fatalf("got %d transactions, want 2", len(plan.Transactions))
				}
				first, second := plan.Transactions[0], plan.Transactions[1]
				if first.From.UserID != 2 || first.To.UserID != 1 || first.Amount != 6000 {
					t.Errorf("first tx = %+v, want bob pays alice 60.00", first)
				}
				if second.From.UserID != 3 || second.To.UserID != 1 || second.Amount != 4000 {
					t.Errorf("second tx = %+v, want carol pays alice 40.00", second)
				}
				if plan.Summary.TotalAmount != 10000 {
					t.Errorf("total = %v, want 100.00", plan.Summary.TotalAmount)
				}
			},
		},
		{
			name: "one debtor split across two creditors",
			balances: []Balance{
				{UserID: 1, UserName: "alice", Balance: -9000},
				{UserID: 2, UserName: "bob", Balance: 7000},
				{UserID: 3, UserName: "carol", Balance: 2000},
			},
			validate: func(t *testing.T, plan *Plan) {
				if len(plan.Transactions) != 2 {
					t.Fatalf("got %d transactions, want 2", len(plan.Transactions))
				}
				if plan.Transactions[0].To.UserID != 2 || plan.Transactions[0].Amount != 7000 {
					t.Errorf("first tx = %+v, want 70.00 to bob", plan.Transactions[0])
				}
				if plan.Transactions[1].To.UserID != 3 || plan.Transactions[1].Amount != 2000 {
					t.Errorf("second tx = %+v, want 20.00 to carol", plan.Transactions[1])
				}
			},
		},
		{
			name:     "empty balances",
			balances: []Balance{},
			validate: func(t *testing.T, plan *Plan) {
				if len(plan.Transactions) != 0 {
					t.Errorf("got %d transactions, want 0", len(plan.Transactions))
				}
				if plan.Summary.TotalTransactions != 0 || plan.Summary.TotalAmount != 0 {
					t.Errorf("summary = %+v, want zero", plan.Summary)
				}
			},
		},
		{
			name: "balances within tolerance are already settled",
			balances: []Balance{
				{UserID: 1, UserName: "alice", Balance: 1},
				{UserID: 2, UserName: "bob", Balance: -1},
			},
			validate: func(t *testing.T, plan *Plan) {
				if len(plan.Transactions) != 0 {
					t.Errorf("got %d transactions, want 0", len(plan.Transactions))
				}
			},
		},
		{
			name: "ties broken by input order",
			balances: []Balance{
				{UserID: 1, UserName: "alice", Balance: -2500},
				{UserID: 2, UserName: "bob", Balance: -2500},
				{UserID: 3, UserName: "carol", Balance: 5000},
			},
			validate: func(t *testing.T, plan *Plan) {
				if len(plan.Transactions) != 2 {
					t.Fatalf("got %d transactions, want 2", len(plan.Transactions))
				}
				if plan.Transactions[0].From.UserID != 1 {
					t.Errorf("first payer = %d, want alice (earlier in input)", plan.Transactions[0].From.UserID)
				}
				if plan.Transactions[1].From.UserID != 2 {
					t.Errorf("second payer = %d, want bob", plan.Transactions[1].From.UserID)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validate(t, Settle(tt.balances))
		})
	}
}

// Every emitted payment must exceed the tolerance and the plan total must
// equal the sum of positive balances.
func TestSettleConservation(t *testing.T) {
	balances := []Balance{
		{UserID: 1, UserName: "a", Balance: 12345},
		{UserID: 2, UserName: "b", Balance: -999},
		{UserID: 3, UserName: "c", Balance: 5599},
		{UserID: 4, UserName: "d", Balance: -11111},
		{UserID: 5, UserName: "e", Balance: -5834},
	}

	var positive money.Cents
	for _, b := range balances {
		if b.Balance > money.SettlementTolerance {
			positive += b.Balance
		}
	}

	plan := Settle(balances)

	var total money.Cents
	for _, tx := range plan.Transactions {
		if tx.Amount <= money.SettlementTolerance {
			t.Errorf("transaction %+v at or below tolerance", tx)
		}
		total += tx.Amount
	}
	if total != positive {
		t.Errorf("transactions total %v, want %v (sum of positive balances)", total, positive)
	}
	if plan.Summary.TotalAmount != total {
		t.Errorf("summary total %v does not match transaction sum %v", plan.Summary.TotalAmount, total)
	}
}

func TestSettleNonConservingInputDrainsOneSide(t *testing.T) {
	// Debtors owe 30.00 but only 20.00 is claimed; the engine settles what
	// it can and drops the residue instead of fabricating a creditor.
	plan := Settle([]Balance{
		{UserID: 1, UserName: "a", Balance: -3000},
		{UserID: 2, UserName: "b", Balance: 2000},
	})

	if len(plan.Transactions) != 1 {
		t.Fatalf("got %d transactions, want 1", len(plan.Transactions))
	}
	if plan.Transactions[0].Amount != 2000 {
		t.Errorf("amount = %v, want 20.00", plan.Transactions[0].Amount)
	}
}

func TestSettleWithToleranceRejectsNegative(t *testing.T) {
	_, err := SettleWithTolerance(nil, -1)
	if !errors.Is(err, ErrInvalidTolerance) {
		t.Fatalf("error = %v, want %v", err, ErrInvalidTolerance)
	}
}

func TestSettleIsDeterministic(t *testing.T) {
	balances := []Balance{
		{UserID: 1, UserName: "a", Balance: -1250},
		{UserID: 2, UserName: "b", Balance: 400},
		{UserID: 3, UserName: "c", Balance: -400},
		{UserID: 4, UserName: "d", Balance: 1250},
	}

	first := Settle(balances)
	second := Settle(balances)

	if len(first.Transactions) != len(second.Transactions) {
		t.Fatalf("transaction counts differ: %d vs %d", len(first.Transactions), len(second.Transactions))
	}
	for i := range first.Transactions {
		if first.Transactions[i] != second.Transactions[i] {
			t.Errorf("transaction %d differs: %+v vs %+v", i, first.Transactions[i], second.Transactions[i])
		}
	}
}
