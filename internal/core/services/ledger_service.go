package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dianadimla/walo_backend/internal/core/domain"
	portsrepo "github.com/dianadimla/walo_backend/internal/core/ports/repositories"
	portssvc "github.com/dianadimla/walo_backend/internal/core/ports/services"
	"github.com/dianadimla/walo_backend/internal/dto"
	"github.com/dianadimla/walo_backend/internal/middleware"
	"github.com/shopspring/decimal"
)

var (
	// ErrInsufficientFunds rejects an expense that would drive the pod's
	// balance below zero. Non-retryable without a different amount or pod.
	ErrInsufficientFunds = errors.New("insufficient funds in pod")

	// ErrInvalidAmount rejects a non-positive amount. Callers validate this at
	// the edge; the engine re-asserts it defensively.
	ErrInvalidAmount = errors.New("transaction amount must be positive")
)

// ledgerService applies income and expense events to pods. Every call commits
// exactly two durable writes (pod update, ledger entry) or none at all.
type ledgerService struct {
	ledgerRepo portsrepo.LedgerRepositoryFacade
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{
		ledgerRepo: ledgerRepo,
	}
}

// Ensure ledgerService implements the portssvc.LedgerSvcFacade interface
var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// RecordTransaction applies a single income or expense event to a pod and its
// ledger as one atomic unit.
//
// The funds check runs against the balance read inside the atomic unit with the
// pod row locked, so two racing events against the same pod serialize: each
// sees the other's completed effect or neither has happened yet. The service
// performs no retries; a transient store failure surfaces as
// apperrors.ErrStoreUnavailable and the caller decides whether to retry.
func (s *ledgerService) RecordTransaction(ctx context.Context, userID string, podID string, amount decimal.Decimal, direction domain.Direction, note string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: got %s", ErrInvalidAmount, amount.String())
	}
	if direction != domain.Income && direction != domain.Expense {
		return nil, fmt.Errorf("unknown transaction direction %q", direction)
	}

	var created domain.Transaction
	err := s.ledgerRepo.RunAtomic(ctx, func(tx portsrepo.LedgerTx) error {
		pod, err := tx.GetPodForUpdate(ctx, userID, podID)
		if err != nil {
			return err
		}

		newBalance := pod.Balance.Add(signedDelta(amount, direction))
		if newBalance.IsNegative() {
			return fmt.Errorf("%w: requested %s, available %s in pod %s",
				ErrInsufficientFunds, amount.String(), pod.Balance.String(), pod.Name)
		}

		// Income raises the progress baseline; expenses never lower it.
		newStartingBalance := pod.StartingBalance
		if direction == domain.Income {
			newStartingBalance = newStartingBalance.Add(amount)
		}

		now := time.Now().UTC()
		created = domain.Transaction{
			TransactionID: uuid.NewString(),
			UserID:        userID,
			PodID:         pod.PodID,
			PodName:       pod.Name, // Snapshot; later renames do not rewrite history.
			Amount:        amount,
			Direction:     direction,
			Note:          note,
			Timestamp:     now,
			CreatedBy:     userID,
		}

		if err := tx.UpdatePodBalances(ctx, userID, pod.PodID, newBalance, newStartingBalance, userID, now); err != nil {
			return err
		}
		return tx.CreateTransaction(ctx, created)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Transaction recorded",
		slog.String("transaction_id", created.TransactionID),
		slog.String("pod_id", podID),
		slog.String("direction", string(direction)))
	return &created, nil
}

// ListTransactions retrieves the user's ledger history newest-first, optionally
// scoped to a single pod.
func (s *ledgerService) ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var (
		txns      []domain.Transaction
		nextToken *string
		err       error
	)
	if params.PodID != "" {
		txns, nextToken, err = s.ledgerRepo.ListTransactionsByPod(ctx, userID, params.PodID, limit, params.NextToken)
	} else {
		txns, nextToken, err = s.ledgerRepo.ListTransactionsByUser(ctx, userID, limit, params.NextToken)
	}
	if err != nil {
		logger.Error("Failed to list transactions from repository", "error", err)
		return nil, fmt.Errorf("failed to retrieve transactions: %w", err)
	}

	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		NextToken:    nextToken,
	}, nil
}

// signedDelta converts a positive magnitude plus direction into the delta to
// apply to a pod balance.
func signedDelta(amount decimal.Decimal, direction domain.Direction) decimal.Decimal {
	if direction.IsExpense() {
		return amount.Neg()
	}
	return amount
}
