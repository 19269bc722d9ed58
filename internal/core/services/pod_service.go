package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dianadimla/walo_backend/internal/apperrors"
	"github.com/dianadimla/walo_backend/internal/core/domain"
	portsrepo "github.com/dianadimla/walo_backend/internal/core/ports/repositories"
	portssvc "github.com/dianadimla/walo_backend/internal/core/ports/services"
	"github.com/dianadimla/walo_backend/internal/dto"
	"github.com/dianadimla/walo_backend/internal/middleware"
)

// ErrPodNameEmpty rejects pod creation without a name.
var ErrPodNameEmpty = errors.New("pod name is required")

// podService provides pod lifecycle operations.
type podService struct {
	podRepo portsrepo.PodRepositoryFacade
}

// NewPodService creates a new PodService.
func NewPodService(podRepo portsrepo.PodRepositoryFacade) portssvc.PodSvcFacade {
	return &podService{podRepo: podRepo}
}

var _ portssvc.PodSvcFacade = (*podService)(nil)

// CreatePod creates a pod with zero balance and zero starting balance. Funding
// only happens afterwards, through the ledger.
func (s *podService) CreatePod(ctx context.Context, userID string, req dto.CreatePodRequest) (*domain.Pod, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Name == "" {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrPodNameEmpty)
	}

	now := time.Now().UTC()
	pod := domain.Pod{
		PodID:           uuid.NewString(),
		UserID:          userID,
		Name:            req.Name,
		Icon:            req.Icon,
		Balance:         decimal.Zero,
		StartingBalance: decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.podRepo.SavePod(ctx, pod); err != nil {
		logger.Error("Failed to save pod", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save pod: %w", err)
	}

	logger.Info("Pod created", slog.String("pod_id", pod.PodID), slog.String("pod_name", pod.Name))
	return &pod, nil
}

// GetPodByID retrieves one of the user's pods.
func (s *podService) GetPodByID(ctx context.Context, userID string, podID string) (*domain.Pod, error) {
	pod, err := s.podRepo.FindPodByID(ctx, userID, podID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find pod", slog.String("pod_id", podID), slog.String("error", err.Error()))
		}
		return nil, fmt.Errorf("failed to find pod %s: %w", podID, err)
	}
	return pod, nil
}

// ListPods retrieves all of the user's pods, ordered by name.
func (s *podService) ListPods(ctx context.Context, userID string) ([]domain.Pod, error) {
	pods, err := s.podRepo.ListPodsByUser(ctx, userID)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list pods", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list pods: %w", err)
	}
	return pods, nil
}

// UpdatePod updates the pod's name and/or icon. Balance fields are untouchable
// here; renames do not rewrite the pod-name snapshots on historical entries.
func (s *podService) UpdatePod(ctx context.Context, userID string, podID string, req dto.UpdatePodRequest) (*domain.Pod, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	pod, err := s.podRepo.FindPodByID(ctx, userID, podID)
	if err != nil {
		return nil, fmt.Errorf("failed to find pod %s: %w", podID, err)
	}

	updated := false
	if req.Name != nil && *req.Name != "" {
		pod.Name = *req.Name
		updated = true
	}
	if req.Icon != nil {
		pod.Icon = *req.Icon
		updated = true
	}
	if !updated {
		return pod, nil
	}

	pod.LastUpdatedAt = time.Now().UTC()
	pod.LastUpdatedBy = userID

	if err := s.podRepo.UpdatePodDetails(ctx, *pod); err != nil {
		logger.Error("Failed to update pod", slog.String("pod_id", podID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update pod: %w", err)
	}

	logger.Info("Pod updated", slog.String("pod_id", podID))
	return pod, nil
}

// DeletePod removes the pod. Its ledger entries are deliberately kept: history
// is a record of money that moved, and it outlives the pod.
func (s *podService) DeletePod(ctx context.Context, userID string, podID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.podRepo.FindPodByID(ctx, userID, podID); err != nil {
		return fmt.Errorf("failed to find pod %s: %w", podID, err)
	}

	if err := s.podRepo.DeletePod(ctx, userID, podID); err != nil {
		logger.Error("Failed to delete pod", slog.String("pod_id", podID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete pod: %w", err)
	}

	logger.Info("Pod deleted", slog.String("pod_id", podID))
	return nil
}
