package mapping

import (
	"github.com/dianadimla/walo_backend/internal/core/domain"
	"github.com/dianadimla/walo_backend/internal/models"
)

// ToModelTransaction converts a domain.Transaction to its database model. The
// direction enum collapses to the is_expense flag the schema stores.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID: d.TransactionID,
		UserID:        d.UserID,
		PodID:         d.PodID,
		PodName:       d.PodName,
		Amount:        d.Amount,
		IsExpense:     d.Direction.IsExpense(),
		Note:          d.Note,
		Timestamp:     d.Timestamp,
		CreatedBy:     d.CreatedBy,
	}
}

// ToDomainTransaction converts a models.Transaction from the database to a
// domain.Transaction.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	direction := domain.Income
	if m.IsExpense {
		direction = domain.Expense
	}
	return domain.Transaction{
		TransactionID: m.TransactionID,
		UserID:        m.UserID,
		PodID:         m.PodID,
		PodName:       m.PodName,
		Amount:        m.Amount,
		Direction:     direction,
		Note:          m.Note,
		Timestamp:     m.Timestamp,
		CreatedBy:     m.CreatedBy,
	}
}
