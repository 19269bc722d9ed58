package services

import (
	"context"

	"github.com/dianadimla/walo_backend/internal/core/domain"
	"github.com/dianadimla/walo_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// LedgerWriterSvc defines the balance-affecting write operation. This is the
// single entry point through which pod balances ever change.
type LedgerWriterSvc interface {
	// RecordTransaction applies one income or expense event to a pod and its
	// ledger as an indivisible unit, or rejects it entirely.
	RecordTransaction(ctx context.Context, userID string, podID string, amount decimal.Decimal, direction domain.Direction, note string) (*domain.Transaction, error)
}

// LedgerReaderSvc defines read operations for ledger history.
type LedgerReaderSvc interface {
	// ListTransactions retrieves the user's ledger history newest-first,
	// optionally filtered to one pod.
	ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}

// LedgerSvcFacade combines all ledger service interfaces.
type LedgerSvcFacade interface {
	LedgerWriterSvc
	LedgerReaderSvc
}
