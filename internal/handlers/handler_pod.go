package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dianadimla/walo_backend/internal/apperrors"
	portssvc "github.com/dianadimla/walo_backend/internal/core/ports/services"
	"github.com/dianadimla/walo_backend/internal/dto"
	"github.com/dianadimla/walo_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// podHandler handles HTTP requests related to pods.
type podHandler struct {
	podService portssvc.PodSvcFacade
}

// newPodHandler creates a new podHandler.
func newPodHandler(ps portssvc.PodSvcFacade) *podHandler {
	return &podHandler{
		podService: ps,
	}
}

// registerPodRoutes registers routes related to pods.
func registerPodRoutes(rg *gin.RouterGroup, podService portssvc.PodSvcFacade) {
	h := newPodHandler(podService)

	pods := rg.Group("/pods")
	{
		pods.POST("", h.createPod)
		pods.GET("", h.listPods)
		pods.GET("/:podID", h.getPod)
		pods.PUT("/:podID", h.updatePod)
		pods.DELETE("/:podID", h.deletePod)
	}
}

// createPod godoc
// @Summary Create a new pod
// @Description Creates a pod with zero balance for the logged-in user. Funding happens through transactions.
// @Tags pods
// @Accept json
// @Produce json
// @Param pod body dto.CreatePodRequest true "Pod details"
// @Success 201 {object} dto.PodResponse
// @Failure 400 {object} ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to create pod"
// @Security BearerAuth
// @Router /pods [post]
func (h *podHandler) createPod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreatePodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createPod", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	newPod, err := h.podService.CreatePod(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to create pod in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create pod"})
		return
	}

	logger.Info("Pod created", slog.String("pod_id", newPod.PodID))
	c.JSON(http.StatusCreated, dto.ToPodResponse(newPod))
}

// listPods godoc
// @Summary List pods
// @Description Retrieves all pods for the logged-in user, ordered by name.
// @Tags pods
// @Produce json
// @Success 200 {object} dto.ListPodsResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to list pods"
// @Security BearerAuth
// @Router /pods [get]
func (h *podHandler) listPods(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	pods, err := h.podService.ListPods(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to list pods", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list pods"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListPodsResponse(pods))
}

// getPod godoc
// @Summary Get a pod by ID
// @Description Retrieves one of the logged-in user's pods.
// @Tags pods
// @Produce json
// @Param podID path string true "Pod ID"
// @Success 200 {object} dto.PodResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Pod not found"
// @Failure 500 {object} ErrorResponse "Failed to retrieve pod"
// @Security BearerAuth
// @Router /pods/{podID} [get]
func (h *podHandler) getPod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	podID := c.Param("podID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	pod, err := h.podService.GetPodByID(c.Request.Context(), userID, podID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Pod not found"})
			return
		}
		logger.Error("Failed to get pod", slog.String("pod_id", podID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve pod"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPodResponse(pod))
}

// updatePod godoc
// @Summary Update a pod
// @Description Updates the pod's name and/or icon. Balances cannot be changed here.
// @Tags pods
// @Accept json
// @Produce json
// @Param podID path string true "Pod ID"
// @Param pod body dto.UpdatePodRequest true "Fields to update"
// @Success 200 {object} dto.PodResponse
// @Failure 400 {object} ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Pod not found"
// @Failure 500 {object} ErrorResponse "Failed to update pod"
// @Security BearerAuth
// @Router /pods/{podID} [put]
func (h *podHandler) updatePod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	podID := c.Param("podID")

	var req dto.UpdatePodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	updated, err := h.podService.UpdatePod(c.Request.Context(), userID, podID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Pod not found"})
			return
		}
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to update pod", slog.String("pod_id", podID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update pod"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPodResponse(updated))
}

// deletePod godoc
// @Summary Delete a pod
// @Description Removes the pod. Past transactions are kept in the ledger history.
// @Tags pods
// @Produce json
// @Param podID path string true "Pod ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Pod not found"
// @Failure 500 {object} ErrorResponse "Failed to delete pod"
// @Security BearerAuth
// @Router /pods/{podID} [delete]
func (h *podHandler) deletePod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	podID := c.Param("podID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.podService.DeletePod(c.Request.Context(), userID, podID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Pod not found"})
			return
		}
		logger.Error("Failed to delete pod", slog.String("pod_id", podID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to delete pod"})
		return
	}

	logger.Info("Pod deleted", slog.String("pod_id", podID))
	c.Status(http.StatusNoContent)
}
