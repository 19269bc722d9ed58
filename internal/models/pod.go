package models

import "github.com/shopspring/decimal"

// Pod is the database representation of a spending pod.
type Pod struct {
	PodID           string          `db:"pod_id"`
	UserID          string          `db:"user_id"`
	Name            string          `db:"name"`
	Icon            string          `db:"icon"`
	Balance         decimal.Decimal `db:"balance"`
	StartingBalance decimal.Decimal `db:"starting_balance"`
	AuditFields
}
