package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/dianadimla/walo_backend/internal/core/domain"
	portsrepo "github.com/dianadimla/walo_backend/internal/core/ports/repositories"
	portssvc "github.com/dianadimla/walo_backend/internal/core/ports/services"
	"github.com/dianadimla/walo_backend/internal/middleware"
)

// recentTransactionsLimit bounds the recent-history slice on the summary.
const recentTransactionsLimit = 10

// reportingService derives aggregate views from pods and ledger history.
type reportingService struct {
	podRepo    portsrepo.PodReader
	ledgerRepo portsrepo.TransactionReader
}

// NewReportingService creates a new ReportingService.
func NewReportingService(podRepo portsrepo.PodReader, ledgerRepo portsrepo.TransactionReader) portssvc.ReportingSvcFacade {
	return &reportingService{
		podRepo:    podRepo,
		ledgerRepo: ledgerRepo,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// GetBudgetSummary returns the total budget (sum of pod balances) and the most
// recent ledger entries.
func (s *reportingService) GetBudgetSummary(ctx context.Context, userID string) (*domain.BudgetSummary, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	pods, err := s.podRepo.ListPodsByUser(ctx, userID)
	if err != nil {
		logger.Error("Failed to list pods for summary", "error", err)
		return nil, fmt.Errorf("failed to list pods: %w", err)
	}

	total := decimal.Zero
	for _, pod := range pods {
		total = total.Add(pod.Balance)
	}

	recent, err := s.ledgerRepo.FindRecentTransactions(ctx, userID, recentTransactionsLimit)
	if err != nil {
		logger.Error("Failed to fetch recent transactions for summary", "error", err)
		return nil, fmt.Errorf("failed to fetch recent transactions: %w", err)
	}

	return &domain.BudgetSummary{
		TotalBalance: total,
		PodCount:     len(pods),
		Recent:       recent,
	}, nil
}

// GetPodReports returns per-pod balance, spend and progress figures, ordered by
// pod name like the pod list itself.
func (s *reportingService) GetPodReports(ctx context.Context, userID string) ([]domain.PodReport, error) {
	pods, err := s.podRepo.ListPodsByUser(ctx, userID)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list pods for reports", "error", err)
		return nil, fmt.Errorf("failed to list pods: %w", err)
	}

	reports := make([]domain.PodReport, len(pods))
	for i, pod := range pods {
		spent := pod.StartingBalance.Sub(pod.Balance)
		if spent.IsNegative() {
			spent = decimal.Zero
		}
		reports[i] = domain.PodReport{
			PodID:            pod.PodID,
			Name:             pod.Name,
			Icon:             pod.Icon,
			Balance:          pod.Balance,
			StartingBalance:  pod.StartingBalance,
			Spent:            spent,
			PercentRemaining: pod.PercentRemaining(),
		}
	}
	return reports, nil
}
