package repositories

import (
	"context"
	"time"

	"github.com/dianadimla/walo_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerTx is the handle the ledger engine uses inside one atomic unit. All
// reads reflect a single consistent snapshot and all writes commit together or
// not at all.
type LedgerTx interface {
	// GetPodForUpdate reads the pod's current balances with the row locked for
	// the remainder of the atomic unit, so racing units serialize instead of
	// reading stale balances. Returns apperrors.ErrNotFound if the pod is gone.
	GetPodForUpdate(ctx context.Context, userID, podID string) (*domain.Pod, error)

	// UpdatePodBalances writes the pod's new balance and starting balance.
	UpdatePodBalances(ctx context.Context, userID, podID string, balance, startingBalance decimal.Decimal, updatedBy string, updatedAt time.Time) error

	// CreateTransaction inserts an immutable ledger entry.
	CreateTransaction(ctx context.Context, txn domain.Transaction) error
}

// LedgerStore is the transactional capability the ledger engine is built on.
//
// RunAtomic executes fn within one atomic unit against the backing store. If fn
// returns an error nothing is committed and that error is returned unchanged.
// Implementations retry the unit once internally on a store-level write
// conflict; any other store failure surfaces wrapped in
// apperrors.ErrStoreUnavailable.
type LedgerStore interface {
	RunAtomic(ctx context.Context, fn func(tx LedgerTx) error) error
}

// TransactionReader defines read operations for ledger entries.
type TransactionReader interface {
	// ListTransactionsByUser retrieves the user's ledger entries newest-first
	// using token-based pagination. It returns the entries, a token for the
	// next page, and an error.
	ListTransactionsByUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// ListTransactionsByPod retrieves entries for one pod newest-first.
	ListTransactionsByPod(ctx context.Context, userID, podID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// FindRecentTransactions retrieves the user's most recent entries.
	FindRecentTransactions(ctx context.Context, userID string, limit int) ([]domain.Transaction, error)
}

// LedgerRepositoryFacade combines the atomic store capability with ledger reads.
type LedgerRepositoryFacade interface {
	LedgerStore
	TransactionReader
}
