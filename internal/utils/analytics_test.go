package utils

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/posthog/posthog-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAnalyticsBackend records enqueued messages.
type fakeAnalyticsBackend struct {
	captures   []posthog.Capture
	enqueueErr error
	closed     bool
}

func (f *fakeAnalyticsBackend) Enqueue(msg posthog.Message) error {
	if f.enqueueErr != nil {
		return f.enqueueErr
	}
	if capture, ok := msg.(posthog.Capture); ok {
		f.captures = append(f.captures, capture)
	}
	return nil
}

func (f *fakeAnalyticsBackend) Close() error {
	f.closed = true
	return nil
}

func TestAnalyticsClient_EnqueueForwardsCapture(t *testing.T) {
	backend := &fakeAnalyticsBackend{}
	client := &AnalyticsClient{backend: backend, logger: slog.Default()}

	client.Enqueue("user-1", "api_v1_transactions_expense", map[string]any{"status_code": 201})

	require.Len(t, backend.captures, 1)
	assert.Equal(t, "user-1", backend.captures[0].DistinctId)
	assert.Equal(t, "api_v1_transactions_expense", backend.captures[0].Event)
	assert.Equal(t, 201, backend.captures[0].Properties["status_code"])
}

func TestAnalyticsClient_UninitializedIsNoOp(t *testing.T) {
	client := NewAnalyticsClient("", slog.Default())

	assert.False(t, client.IsInitialized())
	// Must not panic without a backend.
	client.Enqueue("user-1", "event", nil)
	client.Close()
}

func TestAnalyticsClient_EnqueueErrorIsSwallowed(t *testing.T) {
	backend := &fakeAnalyticsBackend{enqueueErr: errors.New("queue full")}
	client := &AnalyticsClient{backend: backend, logger: slog.Default()}

	client.Enqueue("user-1", "event", nil)
	assert.Empty(t, backend.captures)
}

func TestAnalyticsClient_CloseFlushesBackend(t *testing.T) {
	backend := &fakeAnalyticsBackend{}
	client := &AnalyticsClient{backend: backend, logger: slog.Default()}

	client.Close()
	assert.True(t, backend.closed)
}
