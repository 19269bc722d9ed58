package domain

import (
	"github.com/shopspring/decimal"
)

// Pod represents a single spending pod (sub-budget) owned by one user.
//
// Balance and StartingBalance are only ever mutated through the ledger engine's
// atomic unit; no other code path writes these fields. StartingBalance grows with
// every income event and is never reduced by expenses, so it acts as the baseline
// for the percent-remaining derivation.
type Pod struct {
	PodID           string          `json:"podID"`   // Primary Key (UUID)
	UserID          string          `json:"userID"`  // Owning user (Not Null)
	Name            string          `json:"name"`    // User-chosen label
	Icon            string          `json:"icon"`    // Emoji glyph, cosmetic only
	Balance         decimal.Decimal `json:"balance"` // Current remaining amount, >= 0
	StartingBalance decimal.Decimal `json:"startingBalance"`
	AuditFields
}

// PercentRemaining derives how much of the pod's funded baseline is still
// available, as an integer percentage. A pod that has never been funded
// (StartingBalance == 0) reports 0 rather than dividing by zero.
func (p Pod) PercentRemaining() int {
	if !p.StartingBalance.IsPositive() {
		return 0
	}
	pct := p.Balance.Div(p.StartingBalance).Mul(decimal.NewFromInt(100))
	return int(pct.IntPart())
}
