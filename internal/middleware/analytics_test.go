package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dianadimla/walo_backend/internal/middleware"
	"github.com/dianadimla/walo_backend/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedEvent struct {
	distinctID string
	event      string
	properties map[string]any
}

type fakeEventTracker struct {
	initialized bool
	events      []capturedEvent
}

func (f *fakeEventTracker) IsInitialized() bool {
	return f.initialized
}

func (f *fakeEventTracker) Enqueue(distinctID string, event string, properties map[string]any) {
	f.events = append(f.events, capturedEvent{distinctID: distinctID, event: event, properties: properties})
}

const eventCaptureTestSecret = "event-capture-test-secret"

func newEventCaptureRouter(tracker middleware.EventTracker) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.EventCapture(tracker))

	router.GET("/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	v1 := router.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware(eventCaptureTestSecret))
	v1.POST("/transactions/expense", func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{"id": "txn-1"})
	})
	v1.GET("/pods/:id", func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "pod not found"})
	})
	return router
}

func authHeaderFor(t *testing.T, userID string) string {
	t.Helper()
	token, err := utils.GenerateJWT(userID, eventCaptureTestSecret, time.Hour, "walo-test")
	require.NoError(t, err)
	return "Bearer " + token
}

func TestEventCapture_TracksAuthenticatedSuccess(t *testing.T) {
	tracker := &fakeEventTracker{initialized: true}
	router := newEventCaptureRouter(tracker)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions/expense", nil)
	req.Header.Set("Authorization", authHeaderFor(t, "user-42"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, tracker.events, 1)
	assert.Equal(t, "user-42", tracker.events[0].distinctID)
	assert.Equal(t, "api_v1_transactions_expense", tracker.events[0].event)
	assert.Equal(t, http.StatusCreated, tracker.events[0].properties["status_code"])
	assert.Equal(t, http.MethodPost, tracker.events[0].properties["method"])
}

func TestEventCapture_SkipsUnauthenticatedRequests(t *testing.T) {
	tracker := &fakeEventTracker{initialized: true}
	router := newEventCaptureRouter(tracker)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions/expense", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, tracker.events)
}

func TestEventCapture_SkipsErrorResponses(t *testing.T) {
	tracker := &fakeEventTracker{initialized: true}
	router := newEventCaptureRouter(tracker)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/pods/p-1", nil)
	req.Header.Set("Authorization", authHeaderFor(t, "user-42"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, tracker.events)
}

func TestEventCapture_SkipsHealthEndpoint(t *testing.T) {
	tracker := &fakeEventTracker{initialized: true}
	router := newEventCaptureRouter(tracker)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, tracker.events)
}

func TestEventCapture_NoOpWhenTrackerUninitialized(t *testing.T) {
	tracker := &fakeEventTracker{initialized: false}
	router := newEventCaptureRouter(tracker)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions/expense", nil)
	req.Header.Set("Authorization", authHeaderFor(t, "user-42"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Empty(t, tracker.events)
}
