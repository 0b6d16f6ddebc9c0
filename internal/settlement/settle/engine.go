// Package settle reduces a set of net balances into a small list of
// pairwise payments that brings every balance to zero.
//
// The engine is a pure function over its input: no storage, no I/O, safe to
// call from any number of goroutines. Balance aggregation happens upstream
// in the settlement repository; the caller is responsible for handing over
// a consistent snapshot whose balances net to ~zero.
package settle

import (
	"errors"
	"sort"

	"github.com/wayfarer-app/tripmate/pkg/money"
)

// ErrInvalidTolerance is returned when the engine is configured with a
// negative tolerance. This is a programming error, not a user input error.
var ErrInvalidTolerance = errors.New("settlement tolerance cannot be negative")

// Party identifies one side of a settlement payment
type Party struct {
	UserID   int64  `json:"user_id"`
	UserName string `json:"user_name"`
}

// Balance is a participant's net position on a trip: totalPaid - totalOwed.
// Positive means the participant is owed money, negative means they owe.
type Balance struct {
	UserID   int64
	UserName string
	Balance  money.Cents
}

// Transaction is a directed payment instruction from a debtor to a creditor
type Transaction struct {
	From   Party
	To     Party
	Amount money.Cents
}

// Summary aggregates a settlement plan. It is always recomputable from the
// transaction list and never independently mutated.
type Summary struct {
	TotalTransactions int
	TotalAmount       money.Cents
}

// Plan is the full output of a settlement run
type Plan struct {
	Transactions []Transaction
	Summary      Summary
}

// working tracks one party's unresolved magnitude during matching
type working struct {
	party     Party
	remaining money.Cents
}

// Settle computes a settlement plan with the default one-cent tolerance.
func Settle(balances []Balance) *Plan {
	// tolerance is a non-negative constant, error impossible
	plan, _ := SettleWithTolerance(balances, money.SettlementTolerance)
	return plan
}

// SettleWithTolerance computes a settlement plan, treating any balance with
// magnitude at or below tolerance as already settled.
//
// Matching is greedy, largest debtor against largest creditor, ties broken
// by input order. The result is deterministic and usually small but not
// provably minimal (true minimality is a subset-partition problem). If the
// input balances do not conserve money, the engine stops once either side
// is exhausted and drops the residue.
func SettleWithTolerance(balances []Balance, tolerance money.Cents) (*Plan, error) {
	if tolerance < 0 {
		return nil, ErrInvalidTolerance
	}

	var creditors, debtors []working
	for _, b := range balances {
		party := Party{UserID: b.UserID, UserName: b.UserName}
		switch {
		case b.Balance > tolerance:
			creditors = append(creditors, working{party: party, remaining: b.Balance})
		case b.Balance < -tolerance:
			debtors = append(debtors, working{party: party, remaining: -b.Balance})
		}
		// balances within tolerance are already settled and drop out
	}

	// Largest debtor pays largest creditor first. Stable sort pins the
	// tie-break to input order so output is reproducible.
	sort.SliceStable(creditors, func(i, j int) bool {
		return creditors[i].remaining > creditors[j].remaining
	})
	sort.SliceStable(debtors, func(i, j int) bool {
		return debtors[i].remaining > debtors[j].remaining
	})

	transactions := []Transaction{}
	var total money.Cents

	di, ci := 0, 0
	for di < len(debtors) && ci < len(creditors) {
		debtor := &debtors[di]
		creditor := &creditors[ci]

		amount := debtor.remaining
		if creditor.remaining < amount {
			amount = creditor.remaining
		}

		transactions = append(transactions, Transaction{
			From:   debtor.party,
			To:     creditor.party,
			Amount: amount,
		})
		total += amount

		debtor.remaining -= amount
		creditor.remaining -= amount

		if debtor.remaining <= tolerance {
			di++
		}
		if creditor.remaining <= tolerance {
			ci++
		}
	}

	return &Plan{
		Transactions: transactions,
		Summary: Summary{
			TotalTransactions: len(transactions),
			TotalAmount:       total,
		},
	}, nil
}
