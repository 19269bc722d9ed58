package mapping

import (
	"github.com/dianadimla/walo_backend/internal/core/domain"
	"github.com/dianadimla/walo_backend/internal/models"
)

// ToModelPod converts a domain.Pod to its database model.
func ToModelPod(d domain.Pod) models.Pod {
	return models.Pod{
		PodID:           d.PodID,
		UserID:          d.UserID,
		Name:            d.Name,
		Icon:            d.Icon,
		Balance:         d.Balance,
		StartingBalance: d.StartingBalance,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPod converts a models.Pod from the database to a domain.Pod.
func ToDomainPod(m models.Pod) domain.Pod {
	return domain.Pod{
		PodID:           m.PodID,
		UserID:          m.UserID,
		Name:            m.Name,
		Icon:            m.Icon,
		Balance:         m.Balance,
		StartingBalance: m.StartingBalance,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}
