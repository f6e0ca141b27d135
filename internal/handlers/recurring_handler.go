package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "finflow/internal/errors"
	"finflow/internal/models"
	"finflow/internal/pagination"
	"finflow/internal/services"
	"finflow/internal/types"
)

// RecurringHandler handles recurring transaction definition requests.
type RecurringHandler struct {
	recurringService services.RecurringServicer
}

// NewRecurringHandler creates a new RecurringHandler.
func NewRecurringHandler(recurringService services.RecurringServicer) *RecurringHandler {
	return &RecurringHandler{recurringService: recurringService}
}

// CreateRecurringRequest represents the request payload for creating a recurring definition.
type CreateRecurringRequest struct {
	Name           string                 `json:"name" binding:"required,min=1,max=100"`
	Type           models.TransactionType `json:"type" binding:"required,transaction_type"`
	CategoryID     string                 `json:"category_id" binding:"required,uuid"`
	Amount         decimal.Decimal        `json:"amount" binding:"required"`
	Description    string                 `json:"description" binding:"omitempty,max=200"`
	Frequency      models.Frequency       `json:"frequency" binding:"required,frequency"`
	StartDate      types.Date             `json:"start_date" binding:"required"`
	EndDate        *types.Date            `json:"end_date"`
	NextOccurrence *types.Date            `json:"next_occurrence"`
}

// UpdateRecurringRequest represents the request payload for editing a recurring definition.
type UpdateRecurringRequest struct {
	Name           string            `json:"name" binding:"omitempty,min=1,max=100"`
	CategoryID     *string           `json:"category_id" binding:"omitempty,uuid"`
	Amount         *decimal.Decimal  `json:"amount"`
	Description    *string           `json:"description" binding:"omitempty,max=200"`
	Frequency      *models.Frequency `json:"frequency" binding:"omitempty,frequency"`
	EndDate        *types.Date       `json:"end_date"`
	NextOccurrence *types.Date       `json:"next_occurrence"`
	IsActive       *bool             `json:"is_active"`
}

// CreateRecurring handles the creation of a new recurring definition.
// @Summary     Create a recurring transaction
// @Tags        recurring-transactions
// @Accept      json
// @Produce     json
// @Param       request body CreateRecurringRequest true "Recurring definition"
// @Success     201 {object} models.RecurringTransaction
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Router      /recurring-transactions [post]
func (h *RecurringHandler) CreateRecurring(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateRecurringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	recurring, err := h.recurringService.CreateRecurring(
		ownerID, req.Name, req.Type, req.CategoryID, req.Amount,
		req.Description, req.Frequency, req.StartDate, req.EndDate, req.NextOccurrence,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"recurring_transaction": recurring})
}

// GetRecurring handles listing recurring definitions.
// @Summary     List recurring transactions
// @Tags        recurring-transactions
// @Produce     json
// @Success     200 {object} pagination.PageResponse[models.RecurringTransaction]
// @Router      /recurring-transactions [get]
func (h *RecurringHandler) GetRecurring(c *gin.Context) {
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

	result, err := h.recurringService.GetRecurring(ownerID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetRecurringByID handles retrieving a single recurring definition.
// @Summary     Get recurring transaction by ID
// @Tags        recurring-transactions
// @Produce     json
// @Param       id path string true "Recurring transaction ID"
// @Success     200 {object} models.RecurringTransaction
// @Failure     404 {object} ErrorResponse "Recurring transaction not found"
// @Router      /recurring-transactions/{id} [get]
func (h *RecurringHandler) GetRecurringByID(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	recurringID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	recurring, err := h.recurringService.GetRecurringByID(ownerID, recurringID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recurring_transaction": recurring})
}

// UpdateRecurring handles editing a recurring definition.
// @Summary     Update recurring transaction
// @Tags        recurring-transactions
// @Accept      json
// @Produce     json
// @Param       id      path string                 true "Recurring transaction ID"
// @Param       request body UpdateRecurringRequest true "Updated fields"
// @Success     200 {object} models.RecurringTransaction
// @Failure     404 {object} ErrorResponse "Recurring transaction not found"
// @Router      /recurring-transactions/{id} [put]
func (h *RecurringHandler) UpdateRecurring(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	recurringID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateRecurringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	recurring, err := h.recurringService.UpdateRecurring(ownerID, recurringID, services.RecurringUpdate{
		Name:           req.Name,
		CategoryID:     req.CategoryID,
		Amount:         req.Amount,
		Description:    req.Description,
		Frequency:      req.Frequency,
		EndDate:        req.EndDate,
		NextOccurrence: req.NextOccurrence,
		IsActive:       req.IsActive,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recurring_transaction": recurring})
}

// DeleteRecurring handles deleting a recurring definition. Definitions
// already referenced by ledger entries are deactivated instead.
// @Summary     Delete recurring transaction
// @Tags        recurring-transactions
// @Produce     json
// @Param       id path string true "Recurring transaction ID"
// @Success     200 {object} MessageResponse
// @Failure     404 {object} ErrorResponse "Recurring transaction not found"
// @Router      /recurring-transactions/{id} [delete]
func (h *RecurringHandler) DeleteRecurring(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	recurringID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.recurringService.DeleteRecurring(ownerID, recurringID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Recurring transaction deleted"})
}

// GetDue handles listing definitions whose next occurrence is due.
// @Summary     List due recurring transactions
// @Tags        recurring-transactions
// @Produce     json
// @Success     200 {array} models.RecurringTransaction
// @Router      /recurring-transactions/due [get]
func (h *RecurringHandler) GetDue(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	due, err := h.recurringService.Due(ownerID, types.Today())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recurring_transactions": due})
}

// Process handles materializing the next occurrence of a recurring definition.
// @Summary     Process a recurring transaction
// @Tags        recurring-transactions
// @Produce     json
// @Param       id path string true "Recurring transaction ID"
// @Success     201 {object} services.ProcessResult
// @Failure     404 {object} ErrorResponse "Recurring transaction not found"
// @Failure     409 {object} ErrorResponse "Occurrence already processed"
// @Router      /recurring-transactions/{id}/process [post]
func (h *RecurringHandler) Process(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	recurringID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.recurringService.Process(ownerID, recurringID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}
