package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// EventTracker is what the event-capture middleware needs from the analytics
// client.
type EventTracker interface {
	IsInitialized() bool
	Enqueue(distinctID string, event string, properties map[string]any)
}

// eventCapturePathsToSkip contains paths that should not produce events.
var eventCapturePathsToSkip = map[string]bool{
	"/health": true,
	"/":       true,
}

// EventCapture creates a Gin middleware handler that tracks successful API
// calls as analytics events keyed by the authenticated user. Unauthenticated
// and failed requests produce no events.
func EventCapture(tracker EventTracker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tracker == nil || !tracker.IsInitialized() || eventCapturePathsToSkip[c.Request.URL.Path] {
			c.Next()
			return
		}

		// Process request first; the event records its outcome.
		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		userID, exists := GetUserIDFromContext(c)
		if !exists {
			return
		}

		// Event name from the route path, e.g. "/api/v1/transactions/expense"
		// becomes "api_v1_transactions_expense".
		eventName := strings.TrimPrefix(c.FullPath(), "/")
		eventName = strings.ReplaceAll(eventName, "/", "_")
		if eventName == "" {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status_code": c.Writer.Status(),
		}
		if len(c.Params) > 0 {
			params := make(map[string]string)
			for _, param := range c.Params {
				params[param.Key] = param.Value
			}
			props["params"] = params
		}

		tracker.Enqueue(userID, eventName, props)
	}
}
