package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dianadimla/walo_backend/internal/apperrors"
	"github.com/dianadimla/walo_backend/internal/core/domain"
	portssvc "github.com/dianadimla/walo_backend/internal/core/ports/services"
	"github.com/dianadimla/walo_backend/internal/core/services"
	"github.com/dianadimla/walo_backend/internal/dto"
	"github.com/dianadimla/walo_backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// transactionHandler handles HTTP requests for recording and listing ledger
// transactions. All balance changes in the system enter through here.
type transactionHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// newTransactionHandler creates a new transactionHandler.
func newTransactionHandler(ls portssvc.LedgerSvcFacade) *transactionHandler {
	return &transactionHandler{
		ledgerService: ls,
	}
}

// RegisterTransactionRoutes registers routes related to ledger transactions.
// The write endpoints carry a per-IP rate limit; a runaway client cannot flood
// the ledger with atomic units.
func RegisterTransactionRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newTransactionHandler(ledgerService)

	rate, _ := limiter.NewRateFromFormatted("60-M")
	writeLimiter := middleware.RateLimit(limiter.New(memory.NewStore(), rate))

	transactions := rg.Group("/transactions")
	{
		transactions.POST("/income", writeLimiter, h.recordIncome)
		transactions.POST("/expense", writeLimiter, h.recordExpense)
		transactions.GET("", h.listTransactions)
	}
}

// recordIncome godoc
// @Summary Record income
// @Description Adds funds to a pod and writes a ledger entry as one atomic unit.
// @Tags transactions
// @Accept json
// @Produce json
// @Param transaction body dto.RecordTransactionRequest true "Income details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse "Invalid input format or non-positive amount"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Pod not found"
// @Failure 503 {object} ErrorResponse "Store unavailable, safe to retry"
// @Security BearerAuth
// @Router /transactions/income [post]
func (h *transactionHandler) recordIncome(c *gin.Context) {
	h.recordTransaction(c, domain.Income)
}

// recordExpense godoc
// @Summary Record an expense
// @Description Deducts funds from a pod and writes a ledger entry as one atomic unit. Rejected if the pod lacks sufficient funds.
// @Tags transactions
// @Accept json
// @Produce json
// @Param transaction body dto.RecordTransactionRequest true "Expense details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse "Invalid input format or non-positive amount"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Pod not found"
// @Failure 422 {object} ErrorResponse "Insufficient funds"
// @Failure 503 {object} ErrorResponse "Store unavailable, safe to retry"
// @Security BearerAuth
// @Router /transactions/expense [post]
func (h *transactionHandler) recordExpense(c *gin.Context) {
	h.recordTransaction(c, domain.Expense)
}

func (h *transactionHandler) recordTransaction(c *gin.Context, direction domain.Direction) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RecordTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for recordTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	note := req.Note
	if direction == domain.Income && note == "" {
		note = "Income"
	}

	txn, err := h.ledgerService.RecordTransaction(c.Request.Context(), userID, req.PodID, req.Amount, direction, note)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInsufficientFunds):
			c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
		case errors.Is(err, services.ErrInvalidAmount):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Pod not found"})
		case errors.Is(err, apperrors.ErrStoreUnavailable):
			logger.Error("Store unavailable while recording transaction", slog.String("error", err.Error()))
			c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Temporarily unable to record transaction, please retry"})
		default:
			logger.Error("Failed to record transaction", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to record transaction"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// listTransactions godoc
// @Summary List transactions
// @Description Retrieves the user's ledger history newest-first, optionally filtered to one pod, with token-based pagination.
// @Tags transactions
// @Produce json
// @Param podID query string false "Filter by pod ID"
// @Param limit query int false "Page size (default 50, max 100)"
// @Param nextToken query string false "Pagination token from a previous response"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} ErrorResponse "Invalid pagination token"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to list transactions"
// @Security BearerAuth
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	resp, err := h.ledgerService.ListTransactions(c.Request.Context(), userID, params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid pagination token"})
			return
		}
		logger.Error("Failed to list transactions", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list transactions"})
		return
	}

	c.JSON(http.StatusOK, resp)
}
