package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "finflow/internal/errors"
	"finflow/internal/pagination"
	"finflow/internal/services"
	"finflow/internal/types"
)

// GoalHandler handles savings goal requests.
type GoalHandler struct {
	goalService services.GoalServicer
}

// NewGoalHandler creates a new GoalHandler.
func NewGoalHandler(goalService services.GoalServicer) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

// CreateGoalRequest represents the request payload for creating a savings goal.
type CreateGoalRequest struct {
	Name         string          `json:"name" binding:"required,min=1,max=100"`
	Description  string          `json:"description" binding:"omitempty,max=500"`
	TargetAmount decimal.Decimal `json:"target_amount" binding:"required"`
	TargetDate   types.Date      `json:"target_date" binding:"required"`
}

// UpdateGoalRequest represents the request payload for editing a savings goal.
type UpdateGoalRequest struct {
	Name         *string          `json:"name" binding:"omitempty,min=1,max=100"`
	Description  *string          `json:"description" binding:"omitempty,max=500"`
	TargetAmount *decimal.Decimal `json:"target_amount"`
	TargetDate   *types.Date      `json:"target_date"`
}

// UpdateProgressRequest represents the request payload for recording progress.
// The amount replaces the accumulated total rather than adding to it.
type UpdateProgressRequest struct {
	CurrentAmount decimal.Decimal `json:"current_amount"`
}

// CreateGoal handles the creation of a new savings goal.
// @Summary     Create a goal
// @Tags        goals
// @Accept      json
// @Produce     json
// @Param       request body CreateGoalRequest true "Goal details"
// @Success     201 {object} models.Goal
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /goals [post]
func (h *GoalHandler) CreateGoal(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	goal, err := h.goalService.CreateGoal(ownerID, req.Name, req.Description, req.TargetAmount, req.TargetDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"goal": goal})
}

// GetGoals handles listing savings goals.
// @Summary     List goals
// @Tags        goals
// @Produce     json
// @Success     200 {object} pagination.PageResponse[models.Goal]
// @Router      /goals [get]
func (h *GoalHandler) GetGoals(c *gin.Context) {
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

	result, err := h.goalService.GetGoals(ownerID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetGoalByID handles retrieving a single savings goal.
// @Summary     Get goal by ID
// @Tags        goals
// @Produce     json
// @Param       id path string true "Goal ID"
// @Success     200 {object} models.Goal
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Router      /goals/{id} [get]
func (h *GoalHandler) GetGoalByID(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	goal, err := h.goalService.GetGoalByID(ownerID, goalID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

// UpdateGoal handles editing a savings goal.
// @Summary     Update goal
// @Tags        goals
// @Accept      json
// @Produce     json
// @Param       id      path string            true "Goal ID"
// @Param       request body UpdateGoalRequest true "Updated fields"
// @Success     200 {object} models.Goal
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Router      /goals/{id} [put]
func (h *GoalHandler) UpdateGoal(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	goal, err := h.goalService.UpdateGoal(ownerID, goalID, req.Name, req.Description, req.TargetAmount, req.TargetDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

// DeleteGoal handles deleting a savings goal.
// @Summary     Delete goal
// @Tags        goals
// @Produce     json
// @Param       id path string true "Goal ID"
// @Success     200 {object} MessageResponse
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Router      /goals/{id} [delete]
func (h *GoalHandler) DeleteGoal(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.goalService.DeleteGoal(ownerID, goalID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Goal deleted"})
}

// UpdateProgress handles recording the accumulated amount on a goal.
// @Summary     Update goal progress
// @Tags        goals
// @Accept      json
// @Produce     json
// @Param       id      path string                true "Goal ID"
// @Param       request body UpdateProgressRequest true "Accumulated amount"
// @Success     200 {object} models.Goal
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Router      /goals/{id}/progress [post]
func (h *GoalHandler) UpdateProgress(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	goal, err := h.goalService.UpdateProgress(ownerID, goalID, req.CurrentAmount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

// GetActiveGoals handles listing goals not yet completed.
// @Summary     List active goals
// @Tags        goals
// @Produce     json
// @Success     200 {array} models.Goal
// @Router      /goals/active [get]
func (h *GoalHandler) GetActiveGoals(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goals, err := h.goalService.ListActive(ownerID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"goals": goals})
}

// GetCompletedGoals handles listing goals that reached their target.
// @Summary     List completed goals
// @Tags        goals
// @Produce     json
// @Success     200 {array} models.Goal
// @Router      /goals/completed [get]
func (h *GoalHandler) GetCompletedGoals(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goals, err := h.goalService.ListCompleted(ownerID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"goals": goals})
}
