package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the database representation of a ledger entry. Rows are
// insert-only: the application never updates or deletes them.
type Transaction struct {
	TransactionID string          `db:"transaction_id"`
	UserID        string          `db:"user_id"`
	PodID         string          `db:"pod_id"`
	PodName       string          `db:"pod_name"` // Snapshot of the pod name at write time
	Amount        decimal.Decimal `db:"amount"`
	IsExpense     bool            `db:"is_expense"`
	Note          string          `db:"note"`
	Timestamp     time.Time       `db:"timestamp"`
	CreatedBy     string          `db:"created_by"`
}
