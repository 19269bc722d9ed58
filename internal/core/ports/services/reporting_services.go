package services

import (
	"context"

	"github.com/dianadimla/walo_backend/internal/core/domain"
)

// ReportingSvcFacade defines aggregate read operations over pods and ledger.
type ReportingSvcFacade interface {
	// GetBudgetSummary returns the total budget across all pods plus the most
	// recent ledger entries.
	GetBudgetSummary(ctx context.Context, userID string) (*domain.BudgetSummary, error)

	// GetPodReports returns per-pod balance/spend/progress figures.
	GetPodReports(ctx context.Context, userID string) ([]domain.PodReport, error)
}
