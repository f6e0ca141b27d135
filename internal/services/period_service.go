package services

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "finflow/internal/errors"
	"finflow/internal/models"
	"finflow/internal/pagination"
	"finflow/internal/schedule"
	"finflow/internal/types"
)

// periodService handles budget period resolution and management.
type periodService struct {
	db *gorm.DB
}

// NewPeriodService creates a new PeriodServicer.
func NewPeriodService(db *gorm.DB) PeriodServicer {
	return &periodService{db: db}
}

// ResolveCurrent finds the active period owned by ownerID that contains
// today. When none exists it synthesizes a monthly period spanning the
// first to last calendar day of today's month and persists it with a
// single conditional insert, so concurrent resolution of the same month
// never creates duplicates. Always returns a period.
func (s *periodService) ResolveCurrent(ownerID string, today types.Date) (*models.BudgetPeriod, error) {
	var period models.BudgetPeriod
	err := s.db.
		Where("owner_id = ? AND is_active = ? AND start_date <= ? AND end_date >= ?", ownerID, true, today, today).
		Order("start_date").
		First(&period).Error
	if err == nil {
		return &period, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	first, last := schedule.MonthWindow(today)
	period = models.BudgetPeriod{
		OwnerID:    ownerID,
		Name:       first.Format("January 2006"),
		PeriodType: models.PeriodTypeMonthly,
		StartDate:  first,
		EndDate:    last,
		IsActive:   true,
	}

	res := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "owner_id"}, {Name: "start_date"}, {Name: "period_type"}},
		DoNothing: true,
	}).Create(&period)
	if res.Error != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		// A concurrent request created this month's period first.
		if err := s.db.
			Where("owner_id = ? AND start_date = ? AND period_type = ?", ownerID, first, models.PeriodTypeMonthly).
			First(&period).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return &period, nil
}

// CreatePeriod creates an explicit budget period. Unlike ResolveCurrent,
// a duplicate (start date, type) here is surfaced as a conflict.
func (s *periodService) CreatePeriod(ownerID, name string, periodType models.PeriodType, start, end types.Date) (*models.BudgetPeriod, error) {
	if end.Before(start) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "end_date must not precede start_date")
	}

	var count int64
	if err := s.db.Model(&models.BudgetPeriod{}).
		Where("owner_id = ? AND start_date = ? AND period_type = ?", ownerID, start, periodType).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicatePeriod
	}

	period := &models.BudgetPeriod{
		OwnerID:    ownerID,
		Name:       name,
		PeriodType: periodType,
		StartDate:  start,
		EndDate:    end,
		IsActive:   true,
	}
	if err := s.db.Create(period).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return period, nil
}

// GetPeriods retrieves a paginated list of periods for an owner,
// newest window first.
func (s *periodService) GetPeriods(ownerID string, page pagination.PageRequest) (*pagination.PageResponse[models.BudgetPeriod], error) {
	page.Defaults()

	base := s.db.Model(&models.BudgetPeriod{}).Where("owner_id = ?", ownerID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var periods []models.BudgetPeriod
	if err := base.Order("start_date DESC").Scopes(pagination.Paginate(page)).Find(&periods).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(periods, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetPeriodByID returns a period if it belongs to the owner.
func (s *periodService) GetPeriodByID(ownerID, periodID string) (*models.BudgetPeriod, error) {
	var period models.BudgetPeriod
	if err := s.db.Where("id = ? AND owner_id = ?", periodID, ownerID).First(&period).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPeriodNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &period, nil
}

// SetActive toggles a period's active flag. Dates are immutable after
// creation; this is the only permitted mutation.
func (s *periodService) SetActive(ownerID, periodID string, active bool) (*models.BudgetPeriod, error) {
	period, err := s.GetPeriodByID(ownerID, periodID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(period).Update("is_active", active).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return period, nil
}
