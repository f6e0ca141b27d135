package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "finflow/internal/errors"
	"finflow/internal/models"
	"finflow/internal/pagination"
	"finflow/internal/services"
	"finflow/internal/types"
	"finflow/internal/uuid"
)

// TransactionHandler handles ledger entry requests and ledger reports.
type TransactionHandler struct {
	transactionService services.TransactionServicer
	reportService      services.ReportServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer, reportService services.ReportServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService, reportService: reportService}
}

// CreateTransactionRequest represents the request payload for creating a ledger entry.
type CreateTransactionRequest struct {
	Type           models.TransactionType `json:"type" binding:"required,transaction_type"`
	CategoryID     string                 `json:"category_id" binding:"required,uuid"`
	Amount         decimal.Decimal        `json:"amount" binding:"required"`
	Description    string                 `json:"description" binding:"omitempty,max=200"`
	Date           types.Date             `json:"date" binding:"required"`
	BudgetPeriodID *string                `json:"budget_period_id" binding:"omitempty,uuid"`
}

// UpdateTransactionRequest represents the request payload for editing a ledger entry.
// The entry type is immutable; sending one is rejected rather than ignored.
type UpdateTransactionRequest struct {
	Type        *models.TransactionType `json:"type"`
	CategoryID  *string                 `json:"category_id" binding:"omitempty,uuid"`
	Amount      *decimal.Decimal        `json:"amount"`
	Description *string                 `json:"description" binding:"omitempty,max=200"`
	Date        *types.Date             `json:"date"`
}

// CreateTransaction handles the creation of a new ledger entry.
// @Summary     Create a transaction
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       request body CreateTransactionRequest true "Transaction details"
// @Success     201 {object} models.Transaction
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Router      /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	transaction, err := h.transactionService.CreateTransaction(
		ownerID, req.Type, req.CategoryID, req.Amount, req.Description, req.Date, req.BudgetPeriodID,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transaction": transaction})
}

// GetTransactions handles listing ledger entries with optional filters.
// @Summary     List transactions
// @Tags        transactions
// @Produce     json
// @Param       from_date    query string false "Inclusive start date (YYYY-MM-DD)"
// @Param       to_date      query string false "Inclusive end date (YYYY-MM-DD)"
// @Param       type         query string false "income or expense"
// @Param       category_id  query string false "Filter by category"
// @Param       period_id    query string false "Filter by budget period"
// @Param       recurring_id query string false "Filter by recurring origin"
// @Success     200 {object} pagination.PageResponse[models.Transaction]
// @Router      /transactions [get]
func (h *TransactionHandler) GetTransactions(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter, err := parseTransactionFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.transactionService.GetTransactions(ownerID, page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetTransactionByID handles retrieving a single ledger entry.
// @Summary     Get transaction by ID
// @Tags        transactions
// @Produce     json
// @Param       id path string true "Transaction ID"
// @Success     200 {object} models.Transaction
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /transactions/{id} [get]
func (h *TransactionHandler) GetTransactionByID(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.GetTransactionByID(ownerID, transactionID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// UpdateTransaction handles an explicit user edit of a ledger entry.
// @Summary     Update transaction
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       id      path string                   true "Transaction ID"
// @Param       request body UpdateTransactionRequest true "Updated fields"
// @Success     200 {object} models.Transaction
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	if req.Type != nil {
		respondWithError(c, apperrors.ErrImmutableType)
		return
	}

	transaction, err := h.transactionService.UpdateTransaction(
		ownerID, transactionID, req.CategoryID, req.Amount, req.Description, req.Date,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// DeleteTransaction handles deleting a ledger entry.
// @Summary     Delete transaction
// @Tags        transactions
// @Produce     json
// @Param       id path string true "Transaction ID"
// @Success     200 {object} MessageResponse
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transactionService.DeleteTransaction(ownerID, transactionID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted"})
}

// MonthlySummary handles the monthly aggregation report. Month and year
// default to the current calendar month.
// @Summary     Monthly financial summary
// @Tags        reports
// @Produce     json
// @Param       month query int false "Month (1-12, default current)"
// @Param       year  query int false "Year (default current)"
// @Success     200 {object} services.MonthlySummary
// @Router      /transactions/monthly-summary [get]
func (h *TransactionHandler) MonthlySummary(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	now := time.Now()
	month := now.Month()
	year := now.Year()

	if v := c.Query("month"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil || m < 1 || m > 12 {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "month must be between 1 and 12"))
			return
		}
		month = time.Month(m)
	}
	if v := c.Query("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid year"))
			return
		}
		year = y
	}

	summary, err := h.reportService.MonthlySummary(ownerID, month, year)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// SixMonthTrend handles the six-month savings trend report.
// @Summary     Six-month trend
// @Tags        reports
// @Produce     json
// @Success     200 {array} services.TrendPoint
// @Router      /transactions/six-month-trend [get]
func (h *TransactionHandler) SixMonthTrend(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	trend, err := h.reportService.SixMonthTrend(ownerID, types.Today())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"trend": trend})
}

// parseTransactionFilter reads the optional list filters from the query string.
func parseTransactionFilter(c *gin.Context) (services.TransactionFilter, error) {
	var filter services.TransactionFilter

	if v := c.Query("from_date"); v != "" {
		d, err := types.ParseDate(v)
		if err != nil {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "from_date must be YYYY-MM-DD")
		}
		filter.FromDate = &d
	}
	if v := c.Query("to_date"); v != "" {
		d, err := types.ParseDate(v)
		if err != nil {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "to_date must be YYYY-MM-DD")
		}
		filter.ToDate = &d
	}
	if v := c.Query("type"); v != "" {
		t := models.TransactionType(v)
		if t != models.TransactionTypeIncome && t != models.TransactionTypeExpense {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "type must be 'income' or 'expense'")
		}
		filter.Type = &t
	}
	if v := c.Query("category_id"); v != "" {
		if !uuid.IsValid(v) {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid category_id")
		}
		filter.CategoryID = &v
	}
	if v := c.Query("period_id"); v != "" {
		if !uuid.IsValid(v) {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid period_id")
		}
		filter.BudgetPeriodID = &v
	}
	if v := c.Query("recurring_id"); v != "" {
		if !uuid.IsValid(v) {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid recurring_id")
		}
		filter.RecurringTransactionID = &v
	}

	return filter, nil
}
