// analytics.go wraps the posthog.Client so callers never have to care whether
// analytics is configured.
package utils

import (
	"log/slog"

	"github.com/posthog/posthog-go"
)

// analyticsBackend is the slice of posthog.Client the wrapper uses.
type analyticsBackend interface {
	Enqueue(posthog.Message) error
	Close() error
}

// AnalyticsClient enqueues product events keyed by user. A client built
// without an API key is a no-op.
type AnalyticsClient struct {
	backend analyticsBackend
	logger  *slog.Logger
}

// NewAnalyticsClient initializes the PostHog-backed analytics client. An empty
// API key disables analytics entirely.
func NewAnalyticsClient(apiKey string, logger *slog.Logger) *AnalyticsClient {
	if apiKey == "" {
		logger.Warn("PostHog API key is empty, not initializing analytics client.")
		return &AnalyticsClient{}
	}
	client, err := posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: "https://eu.i.posthog.com"})
	if err != nil {
		logger.Error("Failed to initialize PostHog client", slog.String("error", err.Error()))
		return &AnalyticsClient{}
	}
	return &AnalyticsClient{backend: client, logger: logger}
}

// IsInitialized reports whether events will actually be sent.
func (c *AnalyticsClient) IsInitialized() bool {
	return c.backend != nil
}

// Enqueue sends one capture event keyed by the user. Delivery is batched and
// asynchronous; failures are not surfaced to the caller.
func (c *AnalyticsClient) Enqueue(distinctID string, event string, properties map[string]any) {
	if c.backend == nil {
		return
	}
	err := c.backend.Enqueue(posthog.Capture{
		DistinctId: distinctID,
		Event:      event,
		Properties: properties,
	})
	if err != nil && c.logger != nil {
		c.logger.Warn("Failed to enqueue analytics event", slog.String("event", event), slog.String("error", err.Error()))
	}
}

// Close flushes any queued events.
func (c *AnalyticsClient) Close() {
	if c.backend == nil {
		return
	}
	if err := c.backend.Close(); err != nil && c.logger != nil {
		c.logger.Warn("Failed to close analytics client", slog.String("error", err.Error()))
	}
}
