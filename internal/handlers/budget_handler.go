package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "finflow/internal/errors"
	"finflow/internal/pagination"
	"finflow/internal/services"
	"finflow/internal/uuid"
)

// BudgetHandler handles budget allocation requests.
type BudgetHandler struct {
	budgetService services.BudgetServicer
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetService services.BudgetServicer) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// SetIncomeRequest represents the request payload for setting period income.
type SetIncomeRequest struct {
	MonthlyIncome  decimal.Decimal `json:"monthly_income" binding:"required"`
	BudgetPeriodID *string         `json:"budget_period_id" binding:"omitempty,uuid"`
}

// GetBudgets handles listing budgets across periods.
// @Summary     List budgets
// @Tags        budget
// @Produce     json
// @Success     200 {object} pagination.PageResponse[models.Budget]
// @Router      /budget [get]
func (h *BudgetHandler) GetBudgets(c *gin.Context) {
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

	result, err := h.budgetService.GetBudgets(ownerID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetCurrentBudget handles retrieving the budget for the current period,
// creating a default one when none exists yet.
// @Summary     Get current budget
// @Tags        budget
// @Produce     json
// @Success     200 {object} models.Budget
// @Router      /budget/current [get]
func (h *BudgetHandler) GetCurrentBudget(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	budget, err := h.budgetService.CurrentBudget(ownerID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// SetIncome handles setting the monthly income for a period, which
// reallocates the needs, wants and savings targets.
// @Summary     Set monthly income
// @Tags        budget
// @Accept      json
// @Produce     json
// @Param       request body SetIncomeRequest true "Income details"
// @Success     200 {object} models.Budget
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /budget/income [post]
func (h *BudgetHandler) SetIncome(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SetIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	budget, err := h.budgetService.SetIncome(ownerID, req.BudgetPeriodID, req.MonthlyIncome)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// GetAnalysis handles the budget-vs-actual report for a period. The
// current period is used when period_id is not given.
// @Summary     Budget analysis
// @Tags        budget
// @Produce     json
// @Param       period_id query string false "Budget period ID"
// @Success     200 {object} services.BudgetAnalysis
// @Failure     404 {object} ErrorResponse "Period not found"
// @Router      /budget/analysis [get]
func (h *BudgetHandler) GetAnalysis(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var periodID *string
	if v := c.Query("period_id"); v != "" {
		if !uuid.IsValid(v) {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid period_id"))
			return
		}
		periodID = &v
	}

	analysis, err := h.budgetService.Analyze(ownerID, periodID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, analysis)
}
