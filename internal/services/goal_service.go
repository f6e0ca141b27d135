package services

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "finflow/internal/errors"
	"finflow/internal/models"
	"finflow/internal/pagination"
	"finflow/internal/types"
)

// goalService handles savings goal tracking.
type goalService struct {
	db *gorm.DB
}

// NewGoalService creates a new GoalServicer.
func NewGoalService(db *gorm.DB) GoalServicer {
	return &goalService{db: db}
}

// CreateGoal creates a new savings goal with a zero accumulator.
func (s *goalService) CreateGoal(ownerID, name, description string, target decimal.Decimal, targetDate types.Date) (*models.Goal, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "goal name is required")
	}
	if !target.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "target_amount must be positive")
	}

	goal := &models.Goal{
		OwnerID:       ownerID,
		Name:          name,
		Description:   description,
		TargetAmount:  target,
		CurrentAmount: decimal.Zero,
		TargetDate:    targetDate,
	}
	goal.RecomputeCompleted()

	if err := s.db.Create(goal).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	goal.ComputeProgress()
	return goal, nil
}

// GetGoals retrieves a paginated list of the owner's goals.
func (s *goalService) GetGoals(ownerID string, page pagination.PageRequest) (*pagination.PageResponse[models.Goal], error) {
	page.Defaults()

	base := s.db.Model(&models.Goal{}).Where("owner_id = ?", ownerID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var goals []models.Goal
	if err := base.Order("target_date").Scopes(pagination.Paginate(page)).Find(&goals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	for i := range goals {
		goals[i].ComputeProgress()
	}

	result := pagination.NewPageResponse(goals, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetGoalByID returns a goal if it belongs to the owner.
func (s *goalService) GetGoalByID(ownerID, goalID string) (*models.Goal, error) {
	var goal models.Goal
	if err := s.db.Where("id = ? AND owner_id = ?", goalID, ownerID).First(&goal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGoalNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	goal.ComputeProgress()
	return &goal, nil
}

// UpdateGoal updates a goal's editable fields, rederiving the
// completion flag when the target changes.
func (s *goalService) UpdateGoal(ownerID, goalID string, name, description *string, target *decimal.Decimal, targetDate *types.Date) (*models.Goal, error) {
	goal, err := s.GetGoalByID(ownerID, goalID)
	if err != nil {
		return nil, err
	}

	if name != nil {
		if *name == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "goal name is required")
		}
		goal.Name = *name
	}
	if description != nil {
		goal.Description = *description
	}
	if target != nil {
		if !target.IsPositive() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "target_amount must be positive")
		}
		goal.TargetAmount = *target
	}
	if targetDate != nil {
		goal.TargetDate = *targetDate
	}

	goal.RecomputeCompleted()
	if err := s.db.Save(goal).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	goal.ComputeProgress()
	return goal, nil
}

// DeleteGoal soft-deletes a goal.
func (s *goalService) DeleteGoal(ownerID, goalID string) error {
	goal, err := s.GetGoalByID(ownerID, goalID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(goal).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// UpdateProgress sets the goal's accumulator to amount (an absolute
// set, not a delta) and rederives the completion flag.
func (s *goalService) UpdateProgress(ownerID, goalID string, amount decimal.Decimal) (*models.Goal, error) {
	if amount.IsNegative() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must not be negative")
	}

	goal, err := s.GetGoalByID(ownerID, goalID)
	if err != nil {
		return nil, err
	}

	goal.CurrentAmount = amount
	goal.RecomputeCompleted()

	if err := s.db.Save(goal).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	goal.ComputeProgress()
	return goal, nil
}

// ListActive returns all goals not yet completed.
func (s *goalService) ListActive(ownerID string) ([]models.Goal, error) {
	return s.listByCompletion(ownerID, false)
}

// ListCompleted returns all completed goals.
func (s *goalService) ListCompleted(ownerID string) ([]models.Goal, error) {
	return s.listByCompletion(ownerID, true)
}

func (s *goalService) listByCompletion(ownerID string, completed bool) ([]models.Goal, error) {
	var goals []models.Goal
	if err := s.db.Where("owner_id = ? AND completed = ?", ownerID, completed).
		Order("target_date").Find(&goals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	for i := range goals {
		goals[i].ComputeProgress()
	}
	return goals, nil
}
