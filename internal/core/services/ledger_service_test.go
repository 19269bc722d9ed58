package services_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/dianadimla/walo_backend/internal/apperrors"
	"github.com/dianadimla/walo_backend/internal/core/domain"
	portsrepo "github.com/dianadimla/walo_backend/internal/core/ports/repositories"
	"github.com/dianadimla/walo_backend/internal/core/services"
	"github.com/dianadimla/walo_backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// --- Fake LedgerStore ---
//
// A stateful in-memory store. A single mutex held for the whole atomic unit
// gives the same serialization the row lock provides in Postgres: a racing
// unit blocks until the first commits, then reads the committed balances.
type fakeLedgerStore struct {
	mu   sync.Mutex
	pods map[string]domain.Pod
	txns []domain.Transaction

	// failCreateTxn injects a store failure on CreateTransaction to exercise
	// rollback behavior.
	failCreateTxn error
}

var _ portsrepo.LedgerRepositoryFacade = (*fakeLedgerStore)(nil)

func newFakeLedgerStore(pods ...domain.Pod) *fakeLedgerStore {
	s := &fakeLedgerStore{pods: make(map[string]domain.Pod)}
	for _, p := range pods {
		s.pods[p.PodID] = p
	}
	return s
}

func (s *fakeLedgerStore) RunAtomic(ctx context.Context, fn func(tx portsrepo.LedgerTx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Snapshot state so a failed unit leaves nothing behind.
	podsBefore := make(map[string]domain.Pod, len(s.pods))
	for k, v := range s.pods {
		podsBefore[k] = v
	}
	txnsBefore := len(s.txns)

	if err := fn(&fakeLedgerTx{store: s}); err != nil {
		s.pods = podsBefore
		s.txns = s.txns[:txnsBefore]
		return err
	}
	return nil
}

func (s *fakeLedgerStore) ListTransactionsByUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []domain.Transaction{}
	for i := len(s.txns) - 1; i >= 0 && len(out) < limit; i-- {
		if s.txns[i].UserID == userID {
			out = append(out, s.txns[i])
		}
	}
	return out, nil, nil
}

func (s *fakeLedgerStore) ListTransactionsByPod(ctx context.Context, userID, podID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []domain.Transaction{}
	for i := len(s.txns) - 1; i >= 0 && len(out) < limit; i-- {
		if s.txns[i].UserID == userID && s.txns[i].PodID == podID {
			out = append(out, s.txns[i])
		}
	}
	return out, nil, nil
}

func (s *fakeLedgerStore) FindRecentTransactions(ctx context.Context, userID string, limit int) ([]domain.Transaction, error) {
	out, _, err := s.ListTransactionsByUser(ctx, userID, limit, nil)
	return out, err
}

type fakeLedgerTx struct {
	store *fakeLedgerStore
}

func (t *fakeLedgerTx) GetPodForUpdate(ctx context.Context, userID, podID string) (*domain.Pod, error) {
	pod, ok := t.store.pods[podID]
	if !ok || pod.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	copied := pod
	return &copied, nil
}

func (t *fakeLedgerTx) UpdatePodBalances(ctx context.Context, userID, podID string, balance, startingBalance decimal.Decimal, updatedBy string, updatedAt time.Time) error {
	pod, ok := t.store.pods[podID]
	if !ok || pod.UserID != userID {
		return apperrors.ErrNotFound
	}
	pod.Balance = balance
	pod.StartingBalance = startingBalance
	pod.LastUpdatedAt = updatedAt
	pod.LastUpdatedBy = updatedBy
	t.store.pods[podID] = pod
	return nil
}

func (t *fakeLedgerTx) CreateTransaction(ctx context.Context, txn domain.Transaction) error {
	if t.store.failCreateTxn != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrStoreUnavailable, t.store.failCreateTxn)
	}
	t.store.txns = append(t.store.txns, txn)
	return nil
}

// --- Test Suite ---

type LedgerServiceTestSuite struct {
	suite.Suite
	ctx    context.Context
	userID string
}

func (s *LedgerServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.userID = "user-1"
}

func (s *LedgerServiceTestSuite) newPod(podID, name string, balance, startingBalance int64) domain.Pod {
	return domain.Pod{
		PodID:           podID,
		UserID:          s.userID,
		Name:            name,
		Balance:         decimal.NewFromInt(balance),
		StartingBalance: decimal.NewFromInt(startingBalance),
	}
}

func (s *LedgerServiceTestSuite) TestExpenseReducesBalanceOnly() {
	store := newFakeLedgerStore(s.newPod("pod-1", "Groceries", 100, 100))
	svc := services.NewLedgerService(store)

	txn, err := svc.RecordTransaction(s.ctx, s.userID, "pod-1", decimal.NewFromInt(30), domain.Expense, "lunch")
	require.NoError(s.T(), err)

	pod := store.pods["pod-1"]
	assert.True(s.T(), pod.Balance.Equal(decimal.NewFromInt(70)), "balance should be 70, got %s", pod.Balance)
	assert.True(s.T(), pod.StartingBalance.Equal(decimal.NewFromInt(100)), "starting balance must not change on expense")

	require.NotNil(s.T(), txn)
	assert.Equal(s.T(), "Groceries", txn.PodName)
	assert.Equal(s.T(), domain.Expense, txn.Direction)
	assert.True(s.T(), txn.Amount.Equal(decimal.NewFromInt(30)), "amount is stored as positive magnitude")
	assert.Equal(s.T(), "lunch", txn.Note)
	require.Len(s.T(), store.txns, 1)
}

func (s *LedgerServiceTestSuite) TestOverdrawRejectedWithoutSideEffects() {
	store := newFakeLedgerStore(s.newPod("pod-1", "Groceries", 100, 100))
	svc := services.NewLedgerService(store)

	_, err := svc.RecordTransaction(s.ctx, s.userID, "pod-1", decimal.NewFromInt(150), domain.Expense, "too much")
	require.ErrorIs(s.T(), err, services.ErrInsufficientFunds)

	pod := store.pods["pod-1"]
	assert.True(s.T(), pod.Balance.Equal(decimal.NewFromInt(100)), "balance must be untouched after rejection")
	assert.True(s.T(), pod.StartingBalance.Equal(decimal.NewFromInt(100)))
	assert.Empty(s.T(), store.txns, "no ledger entry may be written for a rejected expense")
}

func (s *LedgerServiceTestSuite) TestIncomeRaisesBalanceAndBaseline() {
	store := newFakeLedgerStore(s.newPod("pod-1", "Groceries", 70, 100))
	svc := services.NewLedgerService(store)

	txn, err := svc.RecordTransaction(s.ctx, s.userID, "pod-1", decimal.NewFromInt(50), domain.Income, "Income")
	require.NoError(s.T(), err)

	pod := store.pods["pod-1"]
	assert.True(s.T(), pod.Balance.Equal(decimal.NewFromInt(120)), "balance should be 120, got %s", pod.Balance)
	assert.True(s.T(), pod.StartingBalance.Equal(decimal.NewFromInt(150)), "income raises the baseline, got %s", pod.StartingBalance)
	assert.Equal(s.T(), domain.Income, txn.Direction)
}

func (s *LedgerServiceTestSuite) TestFirstFundingOfZeroPod() {
	store := newFakeLedgerStore(s.newPod("pod-1", "Holiday", 0, 0))
	svc := services.NewLedgerService(store)

	_, err := svc.RecordTransaction(s.ctx, s.userID, "pod-1", decimal.NewFromInt(200), domain.Income, "Income")
	require.NoError(s.T(), err)

	pod := store.pods["pod-1"]
	assert.True(s.T(), pod.Balance.Equal(decimal.NewFromInt(200)))
	assert.True(s.T(), pod.StartingBalance.Equal(decimal.NewFromInt(200)))
	assert.Equal(s.T(), 100, pod.PercentRemaining())
}

func (s *LedgerServiceTestSuite) TestExpenseToExactlyZeroAllowed() {
	store := newFakeLedgerStore(s.newPod("pod-1", "Groceries", 100, 100))
	svc := services.NewLedgerService(store)

	_, err := svc.RecordTransaction(s.ctx, s.userID, "pod-1", decimal.NewFromInt(100), domain.Expense, "")
	require.NoError(s.T(), err)
	assert.True(s.T(), store.pods["pod-1"].Balance.IsZero())
}

func (s *LedgerServiceTestSuite) TestConcurrentExpensesExactlyOneSucceeds() {
	store := newFakeLedgerStore(s.newPod("pod-1", "Groceries", 100, 100))
	svc := services.NewLedgerService(store)

	var wg sync.WaitGroup
	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.RecordTransaction(s.ctx, s.userID, "pod-1", decimal.NewFromInt(60), domain.Expense, "race")
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var failures int
	for err := range results {
		if err != nil {
			require.ErrorIs(s.T(), err, services.ErrInsufficientFunds)
			failures++
		}
	}

	assert.Equal(s.T(), 1, failures, "exactly one of the racing expenses must be rejected")
	pod := store.pods["pod-1"]
	assert.True(s.T(), pod.Balance.Equal(decimal.NewFromInt(40)), "final balance should be 40, got %s", pod.Balance)
	assert.Len(s.T(), store.txns, 1)
}

func (s *LedgerServiceTestSuite) TestStoreFailureLeavesNoPartialWrite() {
	store := newFakeLedgerStore(s.newPod("pod-1", "Groceries", 100, 100))
	store.failCreateTxn = errors.New("connection reset")
	svc := services.NewLedgerService(store)

	_, err := svc.RecordTransaction(s.ctx, s.userID, "pod-1", decimal.NewFromInt(30), domain.Expense, "")
	require.ErrorIs(s.T(), err, apperrors.ErrStoreUnavailable)

	// The balance update ran before the ledger insert failed; both must be gone.
	pod := store.pods["pod-1"]
	assert.True(s.T(), pod.Balance.Equal(decimal.NewFromInt(100)), "failed unit must roll back the balance update")
	assert.Empty(s.T(), store.txns)
}

func (s *LedgerServiceTestSuite) TestNonPositiveAmountRejected() {
	store := newFakeLedgerStore(s.newPod("pod-1", "Groceries", 100, 100))
	svc := services.NewLedgerService(store)

	_, err := svc.RecordTransaction(s.ctx, s.userID, "pod-1", decimal.Zero, domain.Expense, "")
	assert.ErrorIs(s.T(), err, services.ErrInvalidAmount)

	_, err = svc.RecordTransaction(s.ctx, s.userID, "pod-1", decimal.NewFromInt(-5), domain.Income, "")
	assert.ErrorIs(s.T(), err, services.ErrInvalidAmount)

	assert.Empty(s.T(), store.txns)
}

func (s *LedgerServiceTestSuite) TestUnknownPodRejected() {
	store := newFakeLedgerStore()
	svc := services.NewLedgerService(store)

	_, err := svc.RecordTransaction(s.ctx, s.userID, "missing", decimal.NewFromInt(10), domain.Income, "")
	assert.ErrorIs(s.T(), err, apperrors.ErrNotFound)
}

func (s *LedgerServiceTestSuite) TestListTransactionsClampsLimit() {
	store := newFakeLedgerStore(s.newPod("pod-1", "Groceries", 1000, 1000))
	svc := services.NewLedgerService(store)

	for i := 0; i < 60; i++ {
		_, err := svc.RecordTransaction(s.ctx, s.userID, "pod-1", decimal.NewFromInt(1), domain.Expense, "")
		require.NoError(s.T(), err)
	}

	resp, err := svc.ListTransactions(s.ctx, s.userID, dto.ListTransactionsParams{Limit: 0})
	require.NoError(s.T(), err)
	assert.Len(s.T(), resp.Transactions, 50, "limit 0 falls back to the default page size")

	resp, err = svc.ListTransactions(s.ctx, s.userID, dto.ListTransactionsParams{Limit: 500})
	require.NoError(s.T(), err)
	assert.Len(s.T(), resp.Transactions, 50, "oversized limit falls back to the default page size")
}

func (s *LedgerServiceTestSuite) TestListTransactionsFiltersByPod() {
	store := newFakeLedgerStore(
		s.newPod("pod-1", "Groceries", 100, 100),
		s.newPod("pod-2", "Holiday", 100, 100),
	)
	svc := services.NewLedgerService(store)

	_, err := svc.RecordTransaction(s.ctx, s.userID, "pod-1", decimal.NewFromInt(10), domain.Expense, "")
	require.NoError(s.T(), err)
	_, err = svc.RecordTransaction(s.ctx, s.userID, "pod-2", decimal.NewFromInt(20), domain.Expense, "")
	require.NoError(s.T(), err)

	resp, err := svc.ListTransactions(s.ctx, s.userID, dto.ListTransactionsParams{PodID: "pod-2", Limit: 10})
	require.NoError(s.T(), err)
	require.Len(s.T(), resp.Transactions, 1)
	assert.Equal(s.T(), "pod-2", resp.Transactions[0].PodID)
	assert.Equal(s.T(), "Holiday", resp.Transactions[0].Category)
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
