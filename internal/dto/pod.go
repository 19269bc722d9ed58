package dto

import (
	"github.com/dianadimla/walo_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePodRequest defines the payload for creating a spending pod.
// Pods always start with zero balance; funding happens through the ledger.
type CreatePodRequest struct {
	Name string `json:"name" binding:"required,max=50"`
	Icon string `json:"icon" binding:"max=8"`
}

// UpdatePodRequest defines the fields a user may change on an existing pod.
// Pointers distinguish omitted fields from zero values. Balance fields are
// deliberately absent: they change only via transactions.
type UpdatePodRequest struct {
	Name *string `json:"name" binding:"omitempty,max=50"`
	Icon *string `json:"icon" binding:"omitempty,max=8"`
}

// PodResponse is the API representation of a pod.
type PodResponse struct {
	PodID            string          `json:"podID"`
	Name             string          `json:"name"`
	Icon             string          `json:"icon"`
	Balance          decimal.Decimal `json:"balance"`
	StartingBalance  decimal.Decimal `json:"startingBalance"`
	PercentRemaining int             `json:"percentRemaining"`
}

// ListPodsResponse wraps the list of pods.
type ListPodsResponse struct {
	Pods []PodResponse `json:"pods"`
}

// ToPodResponse converts a domain.Pod to its API representation.
func ToPodResponse(p *domain.Pod) PodResponse {
	return PodResponse{
		PodID:            p.PodID,
		Name:             p.Name,
		Icon:             p.Icon,
		Balance:          p.Balance,
		StartingBalance:  p.StartingBalance,
		PercentRemaining: p.PercentRemaining(),
	}
}

// ToListPodsResponse converts a slice of domain.Pod to ListPodsResponse.
func ToListPodsResponse(pods []domain.Pod) ListPodsResponse {
	responses := make([]PodResponse, len(pods))
	for i := range pods {
		responses[i] = ToPodResponse(&pods[i])
	}
	return ListPodsResponse{Pods: responses}
}
