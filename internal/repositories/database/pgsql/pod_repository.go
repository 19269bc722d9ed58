package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/dianadimla/walo_backend/internal/apperrors"
	"github.com/dianadimla/walo_backend/internal/core/domain"
	portsrepo "github.com/dianadimla/walo_backend/internal/core/ports/repositories"
	"github.com/dianadimla/walo_backend/internal/models"
	"github.com/dianadimla/walo_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxPodRepository struct {
	pool *pgxpool.Pool
}

// newPgxPodRepository creates a new repository for pod data.
func newPgxPodRepository(pool *pgxpool.Pool) portsrepo.PodRepositoryFacade {
	return &PgxPodRepository{pool: pool}
}

// Ensure PgxPodRepository implements portsrepo.PodRepositoryFacade
var _ portsrepo.PodRepositoryFacade = (*PgxPodRepository)(nil)

// SavePod inserts a new pod.
func (r *PgxPodRepository) SavePod(ctx context.Context, pod domain.Pod) error {
	modelPod := mapping.ToModelPod(pod)

	query := `
		INSERT INTO pods (pod_id, user_id, name, icon, balance, starting_balance, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.pool.Exec(ctx, query,
		modelPod.PodID,
		modelPod.UserID,
		modelPod.Name,
		modelPod.Icon,
		modelPod.Balance,
		modelPod.StartingBalance,
		modelPod.CreatedAt,
		modelPod.CreatedBy,
		modelPod.LastUpdatedAt,
		modelPod.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: pod with ID %s already exists", apperrors.ErrDuplicate, modelPod.PodID)
		}
		return fmt.Errorf("failed to save pod %s: %w", modelPod.PodID, err)
	}
	return nil
}

// FindPodByID retrieves a pod owned by the given user.
func (r *PgxPodRepository) FindPodByID(ctx context.Context, userID, podID string) (*domain.Pod, error) {
	query := `
		SELECT pod_id, user_id, name, icon, balance, starting_balance, created_at, created_by, last_updated_at, last_updated_by
		FROM pods
		WHERE pod_id = $1 AND user_id = $2;
	`
	var modelPod models.Pod
	err := r.pool.QueryRow(ctx, query, podID, userID).Scan(
		&modelPod.PodID,
		&modelPod.UserID,
		&modelPod.Name,
		&modelPod.Icon,
		&modelPod.Balance,
		&modelPod.StartingBalance,
		&modelPod.CreatedAt,
		&modelPod.CreatedBy,
		&modelPod.LastUpdatedAt,
		&modelPod.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find pod by ID %s: %w", podID, err)
	}

	domainPod := mapping.ToDomainPod(modelPod)
	return &domainPod, nil
}

// ListPodsByUser retrieves all pods for a user, ordered by name.
func (r *PgxPodRepository) ListPodsByUser(ctx context.Context, userID string) ([]domain.Pod, error) {
	query := `
		SELECT pod_id, user_id, name, icon, balance, starting_balance, created_at, created_by, last_updated_at, last_updated_by
		FROM pods
		WHERE user_id = $1
		ORDER BY name;
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query pods for user %s: %w", userID, err)
	}
	defer rows.Close()

	pods := []domain.Pod{}
	for rows.Next() {
		var modelPod models.Pod
		err := rows.Scan(
			&modelPod.PodID,
			&modelPod.UserID,
			&modelPod.Name,
			&modelPod.Icon,
			&modelPod.Balance,
			&modelPod.StartingBalance,
			&modelPod.CreatedAt,
			&modelPod.CreatedBy,
			&modelPod.LastUpdatedAt,
			&modelPod.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pod row for user %s: %w", userID, err)
		}
		pods = append(pods, mapping.ToDomainPod(modelPod))
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating pod rows for user %s: %w", userID, rows.Err())
	}

	return pods, nil
}

// UpdatePodDetails updates the pod's name and icon. Balances are not touched
// here; they change only through the ledger engine.
func (r *PgxPodRepository) UpdatePodDetails(ctx context.Context, pod domain.Pod) error {
	modelPod := mapping.ToModelPod(pod)

	query := `
		UPDATE pods
		SET name = $3, icon = $4, last_updated_at = $5, last_updated_by = $6
		WHERE pod_id = $1 AND user_id = $2;
	`
	cmdTag, err := r.pool.Exec(ctx, query,
		modelPod.PodID,
		modelPod.UserID,
		modelPod.Name,
		modelPod.Icon,
		modelPod.LastUpdatedAt,
		modelPod.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update pod %s: %w", modelPod.PodID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// DeletePod removes a pod row. Ledger entries referencing the pod are kept.
func (r *PgxPodRepository) DeletePod(ctx context.Context, userID, podID string) error {
	query := `
		DELETE FROM pods
		WHERE pod_id = $1 AND user_id = $2;
	`
	cmdTag, err := r.pool.Exec(ctx, query, podID, userID)
	if err != nil {
		return fmt.Errorf("failed to execute delete pod %s: %w", podID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}
