package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction indicates whether a transaction adds to or subtracts from a pod.
type Direction string

const (
	Income  Direction = "INCOME"
	Expense Direction = "EXPENSE"
)

// IsExpense reports whether the direction subtracts from the pod.
func (d Direction) IsExpense() bool {
	return d == Expense
}

// Transaction is an immutable ledger entry for one balance-affecting event.
//
// PodName is a denormalized snapshot of the owning pod's name at write time.
// Later pod renames intentionally do not propagate to historical entries; the
// entry records what the pod was called when the money moved.
type Transaction struct {
	TransactionID string          `json:"transactionID"` // Primary Key (UUID)
	UserID        string          `json:"userID"`        // Owning user (Not Null)
	PodID         string          `json:"podID"`         // FK -> Pod.podID (Not Null)
	PodName       string          `json:"podName"`       // Pod name snapshot, doubles as category
	Amount        decimal.Decimal `json:"amount"`        // Strictly positive magnitude
	Direction     Direction       `json:"direction"`     // INCOME or EXPENSE
	Note          string          `json:"note"`          // Optional free text
	Timestamp     time.Time       `json:"timestamp"`     // Assigned at write time, history sort key
	CreatedBy     string          `json:"createdBy"`     // UserID Reference
}

// SignedAmount returns the delta this entry applies to its pod's balance.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.Direction.IsExpense() {
		return t.Amount.Neg()
	}
	return t.Amount
}
