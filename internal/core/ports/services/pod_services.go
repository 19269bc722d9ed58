package services

import (
	"context"

	"github.com/dianadimla/walo_backend/internal/core/domain"
	"github.com/dianadimla/walo_backend/internal/dto"
)

// PodSvcFacade defines pod lifecycle operations. Balance mutation is not here;
// it belongs exclusively to the ledger engine.
type PodSvcFacade interface {
	// CreatePod creates a pod with zero balance and zero starting balance.
	CreatePod(ctx context.Context, userID string, req dto.CreatePodRequest) (*domain.Pod, error)

	// GetPodByID retrieves one of the user's pods.
	GetPodByID(ctx context.Context, userID string, podID string) (*domain.Pod, error)

	// ListPods retrieves all of the user's pods, ordered by name.
	ListPods(ctx context.Context, userID string) ([]domain.Pod, error)

	// UpdatePod updates the pod's name and/or icon.
	UpdatePod(ctx context.Context, userID string, podID string, req dto.UpdatePodRequest) (*domain.Pod, error)

	// DeletePod removes the pod. Historical ledger entries are kept and retain
	// their podId back-reference.
	DeletePod(ctx context.Context, userID string, podID string) error
}
