package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "finflow/internal/errors"
	"finflow/internal/models"
	"finflow/internal/pagination"
	"finflow/internal/services"
	"finflow/internal/types"
)

// PeriodHandler handles budget period requests.
type PeriodHandler struct {
	periodService services.PeriodServicer
}

// NewPeriodHandler creates a new PeriodHandler.
func NewPeriodHandler(periodService services.PeriodServicer) *PeriodHandler {
	return &PeriodHandler{periodService: periodService}
}

// CreatePeriodRequest represents the request payload for creating a budget period.
type CreatePeriodRequest struct {
	Name       string            `json:"name" binding:"required,min=1,max=100"`
	PeriodType models.PeriodType `json:"period_type" binding:"required,period_type"`
	StartDate  types.Date        `json:"start_date" binding:"required"`
	EndDate    types.Date        `json:"end_date" binding:"required"`
}

// SetActiveRequest represents the request payload for toggling a period's active flag.
type SetActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// CreatePeriod handles the explicit creation of a budget period.
// Duplicate (start date, type) pairs are rejected here, unlike the
// resolver's get-or-create path.
// @Summary     Create a budget period
// @Tags        budget-periods
// @Accept      json
// @Produce     json
// @Param       request body CreatePeriodRequest true "Period details"
// @Success     201 {object} models.BudgetPeriod
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Duplicate period"
// @Router      /budget-periods [post]
func (h *PeriodHandler) CreatePeriod(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreatePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	period, err := h.periodService.CreatePeriod(ownerID, req.Name, req.PeriodType, req.StartDate, req.EndDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"budget_period": period})
}

// GetPeriods handles listing budget periods for the owner.
// @Summary     List budget periods
// @Tags        budget-periods
// @Produce     json
// @Success     200 {object} pagination.PageResponse[models.BudgetPeriod]
// @Router      /budget-periods [get]
func (h *PeriodHandler) GetPeriods(c *gin.Context) {
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

	result, err := h.periodService.GetPeriods(ownerID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetCurrentPeriod handles resolving the period containing today,
// creating this month's period when none exists.
// @Summary     Get the current budget period
// @Tags        budget-periods
// @Produce     json
// @Success     200 {object} models.BudgetPeriod
// @Router      /budget-periods/current [get]
func (h *PeriodHandler) GetCurrentPeriod(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	period, err := h.periodService.ResolveCurrent(ownerID, types.Today())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budget_period": period})
}

// GetPeriodByID handles retrieving a single budget period.
// @Summary     Get budget period by ID
// @Tags        budget-periods
// @Produce     json
// @Param       id path string true "Period ID"
// @Success     200 {object} models.BudgetPeriod
// @Failure     404 {object} ErrorResponse "Period not found"
// @Router      /budget-periods/{id} [get]
func (h *PeriodHandler) GetPeriodByID(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	periodID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	period, err := h.periodService.GetPeriodByID(ownerID, periodID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budget_period": period})
}

// SetActive handles toggling a period's active flag.
// @Summary     Activate or deactivate a budget period
// @Tags        budget-periods
// @Accept      json
// @Produce     json
// @Param       id      path string           true "Period ID"
// @Param       request body SetActiveRequest true "Active flag"
// @Success     200 {object} models.BudgetPeriod
// @Failure     404 {object} ErrorResponse "Period not found"
// @Router      /budget-periods/{id}/active [put]
func (h *PeriodHandler) SetActive(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	periodID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	period, err := h.periodService.SetActive(ownerID, periodID, *req.IsActive)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budget_period": period})
}
