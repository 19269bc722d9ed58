package dto

import (
	"time"

	"github.com/dianadimla/walo_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecordTransactionRequest defines the payload for recording an income or
// expense event against a pod. Amount must be strictly positive; the engine
// re-asserts this defensively but the edge rejects it first.
type RecordTransactionRequest struct {
	PodID  string          `json:"podID" binding:"required"`
	Amount decimal.Decimal `json:"amount" binding:"required,posamount"`
	Note   string          `json:"note" binding:"max=200"`
}

// ListTransactionsParams defines query parameters for listing ledger history.
type ListTransactionsParams struct {
	PodID     string  `form:"podID"`
	Limit     int     `form:"limit,default=50"`
	NextToken *string `form:"nextToken"`
}

// TransactionResponse is the API representation of a ledger entry. The expense
// flag mirrors the mobile client's wire shape: direction is carried by the
// flag, never by the sign of amount.
type TransactionResponse struct {
	TransactionID string          `json:"transactionID"`
	PodID         string          `json:"podID"`
	Category      string          `json:"category"` // Pod name snapshot at write time
	Amount        decimal.Decimal `json:"amount"`
	Expense       bool            `json:"expense"`
	Note          string          `json:"note,omitempty"`
	Timestamp     time.Time       `json:"timestamp"`
}

// ListTransactionsResponse wraps a page of ledger history.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to its API representation.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: t.TransactionID,
		PodID:         t.PodID,
		Category:      t.PodName,
		Amount:        t.Amount,
		Expense:       t.Direction.IsExpense(),
		Note:          t.Note,
		Timestamp:     t.Timestamp,
	}
}

// ToTransactionResponses converts a slice of domain transactions.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToTransactionResponse(&txns[i])
	}
	return responses
}
