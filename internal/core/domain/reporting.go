package domain

import "github.com/shopspring/decimal"

// PodReport is the per-pod slice of the reports view: what is left, what the
// funded baseline was, and how much of it has been spent.
type PodReport struct {
	PodID            string
	Name             string
	Icon             string
	Balance          decimal.Decimal
	StartingBalance  decimal.Decimal
	Spent            decimal.Decimal
	PercentRemaining int
}

// BudgetSummary aggregates across all of a user's pods.
type BudgetSummary struct {
	TotalBalance decimal.Decimal
	PodCount     int
	Recent       []Transaction
}
