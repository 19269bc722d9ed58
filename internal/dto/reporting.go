package dto

import (
	"github.com/dianadimla/walo_backend/internal/core/domain"
	"github.com/dianadimla/walo_backend/internal/utils"
	"github.com/shopspring/decimal"
)

// PodReportResponse is one bar of the per-pod report.
type PodReportResponse struct {
	PodID            string          `json:"podID"`
	Name             string          `json:"name"`
	Icon             string          `json:"icon"`
	Balance          decimal.Decimal `json:"balance"`
	BalanceDisplay   string          `json:"balanceDisplay"` // e.g. "€70.00"
	StartingBalance  decimal.Decimal `json:"startingBalance"`
	Spent            decimal.Decimal `json:"spent"`
	PercentRemaining int             `json:"percentRemaining"`
}

// PodReportsResponse wraps the per-pod report list.
type PodReportsResponse struct {
	Reports []PodReportResponse `json:"reports"`
}

// BudgetSummaryResponse is the dashboard aggregate: total budget across pods
// and the most recent ledger entries.
type BudgetSummaryResponse struct {
	TotalBalance        decimal.Decimal       `json:"totalBalance"`
	TotalBalanceDisplay string                `json:"totalBalanceDisplay"`
	PodCount            int                   `json:"podCount"`
	Recent              []TransactionResponse `json:"recent"`
}

// ToPodReportsResponse converts domain pod reports to the API representation.
func ToPodReportsResponse(reports []domain.PodReport) PodReportsResponse {
	responses := make([]PodReportResponse, len(reports))
	for i, r := range reports {
		responses[i] = PodReportResponse{
			PodID:            r.PodID,
			Name:             r.Name,
			Icon:             r.Icon,
			Balance:          r.Balance,
			BalanceDisplay:   utils.FormatEUR(r.Balance),
			StartingBalance:  r.StartingBalance,
			Spent:            r.Spent,
			PercentRemaining: r.PercentRemaining,
		}
	}
	return PodReportsResponse{Reports: responses}
}

// ToBudgetSummaryResponse converts a domain.BudgetSummary to the API representation.
func ToBudgetSummaryResponse(s *domain.BudgetSummary) BudgetSummaryResponse {
	return BudgetSummaryResponse{
		TotalBalance:        s.TotalBalance,
		TotalBalanceDisplay: utils.FormatEUR(s.TotalBalance),
		PodCount:            s.PodCount,
		Recent:              ToTransactionResponses(s.Recent),
	}
}
