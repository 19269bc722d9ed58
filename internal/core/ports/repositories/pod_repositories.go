package repositories

import (
	"context"

	"github.com/dianadimla/walo_backend/internal/core/domain"
)

// PodReader defines read operations for pod data.
type PodReader interface {
	// FindPodByID retrieves a pod owned by the given user.
	FindPodByID(ctx context.Context, userID, podID string) (*domain.Pod, error)

	// ListPodsByUser retrieves all pods for a user, ordered by name.
	ListPodsByUser(ctx context.Context, userID string) ([]domain.Pod, error)
}

// PodWriter defines write operations for pod data. Balance fields are not
// writable here; they change only through the ledger engine's atomic unit.
type PodWriter interface {
	// SavePod inserts a new pod.
	SavePod(ctx context.Context, pod domain.Pod) error

	// UpdatePodDetails updates the pod's name and icon.
	UpdatePodDetails(ctx context.Context, pod domain.Pod) error

	// DeletePod removes a pod. Existing ledger entries keep their podId
	// back-reference; there is no cascade.
	DeletePod(ctx context.Context, userID, podID string) error
}

// PodRepositoryFacade combines all pod repository interfaces.
type PodRepositoryFacade interface {
	PodReader
	PodWriter
}
