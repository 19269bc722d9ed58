package pgsql

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dianadimla/walo_backend/internal/apperrors"
	"github.com/dianadimla/walo_backend/internal/core/domain"
	portsrepo "github.com/dianadimla/walo_backend/internal/core/ports/repositories"
	"github.com/dianadimla/walo_backend/internal/models"
	"github.com/dianadimla/walo_backend/internal/utils/mapping"
	"github.com/dianadimla/walo_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for ledger entries and the
// atomic store capability the ledger engine runs on.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerRepositoryFacade
var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

// pgxLedgerTx adapts a pgx transaction to the portsrepo.LedgerTx handle handed
// to RunAtomic callbacks. Every statement runs on the same DB transaction, so
// the callback's reads and writes commit together or not at all.
type pgxLedgerTx struct {
	tx pgx.Tx
}

var _ portsrepo.LedgerTx = (*pgxLedgerTx)(nil)

// GetPodForUpdate reads the pod's balances with the row locked until the
// enclosing transaction ends. A racing atomic unit on the same pod blocks here
// and then sees the committed balances, never stale ones.
func (t *pgxLedgerTx) GetPodForUpdate(ctx context.Context, userID, podID string) (*domain.Pod, error) {
	query := `
		SELECT pod_id, user_id, name, icon, balance, starting_balance, created_at, created_by, last_updated_at, last_updated_by
		FROM pods
		WHERE pod_id = $1 AND user_id = $2
		FOR UPDATE;
	`
	var modelPod models.Pod
	err := t.tx.QueryRow(ctx, query, podID, userID).Scan(
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
		return nil, fmt.Errorf("%w: failed to lock pod %s: %w", apperrors.ErrStoreUnavailable, podID, err)
	}

	domainPod := mapping.ToDomainPod(modelPod)
	return &domainPod, nil
}

// UpdatePodBalances writes the pod's new balance and starting balance.
func (t *pgxLedgerTx) UpdatePodBalances(ctx context.Context, userID, podID string, balance, startingBalance decimal.Decimal, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE pods
		SET balance = $3, starting_balance = $4, last_updated_at = $5, last_updated_by = $6
		WHERE pod_id = $1 AND user_id = $2;
	`
	cmdTag, err := t.tx.Exec(ctx, query, podID, userID, balance, startingBalance, updatedAt, updatedBy)
	if err != nil {
		return fmt.Errorf("%w: failed to update balances for pod %s: %w", apperrors.ErrStoreUnavailable, podID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		// The row was locked by GetPodForUpdate, so this only happens if the
		// callback skipped the read.
		return apperrors.ErrNotFound
	}

	return nil
}

// CreateTransaction inserts an immutable ledger entry.
func (t *pgxLedgerTx) CreateTransaction(ctx context.Context, txn domain.Transaction) error {
	modelTxn := mapping.ToModelTransaction(txn)

	query := `
		INSERT INTO transactions (transaction_id, user_id, pod_id, pod_name, amount, is_expense, note, timestamp, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := t.tx.Exec(ctx, query,
		modelTxn.TransactionID,
		modelTxn.UserID,
		modelTxn.PodID,
		modelTxn.PodName,
		modelTxn.Amount,
		modelTxn.IsExpense,
		modelTxn.Note,
		modelTxn.Timestamp,
		modelTxn.CreatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: transaction with ID %s already exists", apperrors.ErrDuplicate, modelTxn.TransactionID)
		}
		return fmt.Errorf("%w: failed to insert transaction %s: %w", apperrors.ErrStoreUnavailable, modelTxn.TransactionID, err)
	}
	return nil
}

// RunAtomic executes fn within a single DB transaction. If fn returns an error
// the transaction is rolled back and that error is returned unchanged. A write
// conflict at the store level (serialization failure or deadlock) is retried
// once; any other store failure surfaces wrapped in
// apperrors.ErrStoreUnavailable.
func (r *PgxLedgerRepository) RunAtomic(ctx context.Context, fn func(tx portsrepo.LedgerTx) error) error {
	const maxAttempts = 2

	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err = r.runAtomicOnce(ctx, fn)
		if err == nil {
			return nil
		}
		if attempt < maxAttempts && isWriteConflict(err) {
			slog.WarnContext(ctx, "Retrying atomic unit after write conflict", "attempt", attempt, "error", err)
			continue
		}
		return err
	}
	return err
}

func (r *PgxLedgerRepository) runAtomicOnce(ctx context.Context, fn func(tx portsrepo.LedgerTx) error) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: failed to begin atomic unit: %w", apperrors.ErrStoreUnavailable, err)
	}
	// Rollback is a no-op once the transaction has been committed.
	defer func() { _ = r.Rollback(ctx, tx) }()

	if err := fn(&pgxLedgerTx{tx: tx}); err != nil {
		return err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return fmt.Errorf("%w: failed to commit atomic unit: %w", apperrors.ErrStoreUnavailable, err)
	}
	return nil
}

// isWriteConflict reports whether the error chain contains a serialization
// failure (40001) or deadlock (40P01), the two conflicts worth one retry.
func isWriteConflict(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "40001" || pgErr.Code == "40P01"
}

// ListTransactionsByUser retrieves the user's ledger entries newest-first with
// token-based pagination.
func (r *PgxLedgerRepository) ListTransactionsByUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	query := `
		SELECT transaction_id, user_id, pod_id, pod_name, amount, is_expense, note, timestamp, created_by
		FROM transactions
		WHERE user_id = $1
	`
	args := []interface{}{userID}

	query, args, err := applyCursor(query, args, nextToken)
	if err != nil {
		return nil, nil, err
	}
	// Fetch one extra row to learn whether another page exists.
	query += fmt.Sprintf(" ORDER BY timestamp DESC, transaction_id DESC LIMIT %d;", limit+1)

	return r.queryTransactionPage(ctx, query, args, limit)
}

// ListTransactionsByPod retrieves entries for one pod newest-first with
// token-based pagination.
func (r *PgxLedgerRepository) ListTransactionsByPod(ctx context.Context, userID, podID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	query := `
		SELECT transaction_id, user_id, pod_id, pod_name, amount, is_expense, note, timestamp, created_by
		FROM transactions
		WHERE user_id = $1 AND pod_id = $2
	`
	args := []interface{}{userID, podID}

	query, args, err := applyCursor(query, args, nextToken)
	if err != nil {
		return nil, nil, err
	}
	query += fmt.Sprintf(" ORDER BY timestamp DESC, transaction_id DESC LIMIT %d;", limit+1)

	return r.queryTransactionPage(ctx, query, args, limit)
}

// FindRecentTransactions retrieves the user's most recent entries without
// pagination, for the summary view.
func (r *PgxLedgerRepository) FindRecentTransactions(ctx context.Context, userID string, limit int) ([]domain.Transaction, error) {
	query := `
		SELECT transaction_id, user_id, pod_id, pod_name, amount, is_expense, note, timestamp, created_by
		FROM transactions
		WHERE user_id = $1
		ORDER BY timestamp DESC, transaction_id DESC
		LIMIT $2;
	`
	rows, err := r.Pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent transactions for user %s: %w", userID, err)
	}
	defer rows.Close()

	txns, err := scanTransactionRows(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to read recent transactions for user %s: %w", userID, err)
	}
	return txns, nil
}

// applyCursor appends the keyset condition for a pagination token. The token
// encodes the timestamp and ID of the last entry of the previous page.
func applyCursor(query string, args []interface{}, nextToken *string) (string, []interface{}, error) {
	if nextToken == nil || *nextToken == "" {
		return query, args, nil
	}

	ts, lastID, err := pagination.DecodeToken(*nextToken)
	if err != nil {
		return "", nil, fmt.Errorf("%w: invalid pagination token", apperrors.ErrValidation)
	}

	query += fmt.Sprintf(" AND (timestamp, transaction_id) < ($%d, $%d)", len(args)+1, len(args)+2)
	args = append(args, ts, lastID)
	return query, args, nil
}

func (r *PgxLedgerRepository) queryTransactionPage(ctx context.Context, query string, args []interface{}, limit int) ([]domain.Transaction, *string, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	txns, err := scanTransactionRows(rows)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read transaction page: %w", err)
	}

	var newNextToken *string
	if len(txns) > limit {
		txns = txns[:limit]
		last := txns[len(txns)-1]
		token := pagination.EncodeToken(last.Timestamp, last.TransactionID)
		newNextToken = &token
	}

	return txns, newNextToken, nil
}

func scanTransactionRows(rows pgx.Rows) ([]domain.Transaction, error) {
	txns := []domain.Transaction{}
	for rows.Next() {
		var modelTxn models.Transaction
		err := rows.Scan(
			&modelTxn.TransactionID,
			&modelTxn.UserID,
			&modelTxn.PodID,
			&modelTxn.PodName,
			&modelTxn.Amount,
			&modelTxn.IsExpense,
			&modelTxn.Note,
			&modelTxn.Timestamp,
			&modelTxn.CreatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, mapping.ToDomainTransaction(modelTxn))
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return txns, nil
}
