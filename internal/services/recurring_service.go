package services

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "finflow/internal/errors"
	"finflow/internal/models"
	"finflow/internal/pagination"
	"finflow/internal/schedule"
	"finflow/internal/types"
)

// recurringSuffix marks materialized ledger entries as system-generated.
const recurringSuffix = " (Recurring)"

// recurringService implements the recurrence engine: cursor advancement
// and materialization of due definitions into ledger entries.
type recurringService struct {
	db      *gorm.DB
	periods PeriodServicer
	now     func() types.Date
}

// NewRecurringService creates a new RecurringServicer.
func NewRecurringService(db *gorm.DB, periods PeriodServicer) RecurringServicer {
	return &recurringService{db: db, periods: periods, now: types.Today}
}

// CreateRecurring creates a new recurring definition. The cursor
// defaults to the start date and must never precede it.
func (s *recurringService) CreateRecurring(
	ownerID, name string,
	transactionType models.TransactionType,
	categoryID string,
	amount decimal.Decimal,
	description string,
	frequency models.Frequency,
	start types.Date,
	end *types.Date,
	next *types.Date,
) (*models.RecurringTransaction, error) {
	if !amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be positive")
	}
	if end != nil && end.Before(start) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "end_date must not precede start_date")
	}

	cursor := start
	if next != nil {
		if next.Before(start) {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "next_occurrence must not precede start_date")
		}
		cursor = *next
	}

	var category models.Category
	if err := s.db.Where("id = ? AND owner_id = ?", categoryID, ownerID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if models.TransactionType(category.Type) != transactionType {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category type does not match transaction type")
	}

	recurring := &models.RecurringTransaction{
		OwnerID:        ownerID,
		Name:           name,
		Type:           transactionType,
		CategoryID:     categoryID,
		Amount:         amount,
		Description:    description,
		Frequency:      frequency,
		StartDate:      start,
		EndDate:        end,
		NextOccurrence: cursor,
		IsActive:       true,
	}

	if err := s.db.Create(recurring).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	recurring.Category = category
	return recurring, nil
}

// GetRecurring retrieves a paginated list of recurring definitions.
func (s *recurringService) GetRecurring(ownerID string, page pagination.PageRequest) (*pagination.PageResponse[models.RecurringTransaction], error) {
	page.Defaults()

	base := s.db.Model(&models.RecurringTransaction{}).Where("owner_id = ?", ownerID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var recurring []models.RecurringTransaction
	if err := base.Preload("Category").Order("next_occurrence").
		Scopes(pagination.Paginate(page)).Find(&recurring).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(recurring, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetRecurringByID returns a recurring definition if it belongs to the owner.
func (s *recurringService) GetRecurringByID(ownerID, recurringID string) (*models.RecurringTransaction, error) {
	var recurring models.RecurringTransaction
	if err := s.db.Preload("Category").
		Where("id = ? AND owner_id = ?", recurringID, ownerID).
		First(&recurring).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRecurringNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &recurring, nil
}

// UpdateRecurring applies a direct user edit to a recurring definition.
func (s *recurringService) UpdateRecurring(ownerID, recurringID string, update RecurringUpdate) (*models.RecurringTransaction, error) {
	recurring, err := s.GetRecurringByID(ownerID, recurringID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if update.Name != "" {
		updates["name"] = update.Name
	}
	if update.CategoryID != nil {
		var category models.Category
		if err := s.db.Where("id = ? AND owner_id = ?", *update.CategoryID, ownerID).First(&category).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrCategoryNotFound
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if models.TransactionType(category.Type) != recurring.Type {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category type does not match transaction type")
		}
		updates["category_id"] = *update.CategoryID
	}
	if update.Amount != nil {
		if !update.Amount.IsPositive() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be positive")
		}
		updates["amount"] = *update.Amount
	}
	if update.Description != nil {
		updates["description"] = *update.Description
	}
	if update.Frequency != nil {
		updates["frequency"] = *update.Frequency
	}
	if update.EndDate != nil {
		updates["end_date"] = *update.EndDate
	}
	if update.NextOccurrence != nil {
		if update.NextOccurrence.Before(recurring.StartDate) {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "next_occurrence must not precede start_date")
		}
		updates["next_occurrence"] = *update.NextOccurrence
	}
	if update.IsActive != nil {
		updates["is_active"] = *update.IsActive
	}

	if len(updates) > 0 {
		if err := s.db.Model(recurring).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return s.GetRecurringByID(ownerID, recurringID)
}

// DeleteRecurring removes a recurring definition. Definitions that have
// already materialized ledger entries are deactivated instead of
// deleted so the origin reference stays intact.
func (s *recurringService) DeleteRecurring(ownerID, recurringID string) error {
	recurring, err := s.GetRecurringByID(ownerID, recurringID)
	if err != nil {
		return err
	}

	var referenced int64
	if err := s.db.Model(&models.Transaction{}).
		Where("recurring_transaction_id = ?", recurringID).
		Count(&referenced).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if referenced > 0 {
		if err := s.db.Model(recurring).Update("is_active", false).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	}

	if err := s.db.Delete(recurring).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// Due returns all active definitions whose cursor is at or before
// today, earliest first. The list is re-queried on every call.
func (s *recurringService) Due(ownerID string, today types.Date) ([]models.RecurringTransaction, error) {
	var due []models.RecurringTransaction
	if err := s.db.Preload("Category").
		Where("owner_id = ? AND is_active = ? AND next_occurrence <= ?", ownerID, true, today).
		Order("next_occurrence").
		Find(&due).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return due, nil
}

// Process materializes one occurrence of a recurring definition:
//
//  1. The current budget period is resolved against the invocation
//     clock, not the occurrence date.
//  2. A ledger entry is created from the definition, dated at the
//     pre-advance cursor and linked to the period and its origin.
//  3. The cursor advances; the definition is deactivated once the new
//     cursor passes its end date.
//
// The ledger write and the cursor advance commit in one database
// transaction, and the advance is guarded on the old cursor value:
// a concurrent Process of the same definition loses the race and gets
// a conflict instead of double-materializing.
func (s *recurringService) Process(ownerID, recurringID string) (*ProcessResult, error) {
	recurring, err := s.GetRecurringByID(ownerID, recurringID)
	if err != nil {
		return nil, err
	}
	if !recurring.IsActive {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "recurring transaction is not active")
	}
	if recurring.NextOccurrence.After(s.now()) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "recurring transaction is not due yet")
	}

	period, err := s.periods.ResolveCurrent(ownerID, s.now())
	if err != nil {
		return nil, err
	}

	occurrence := recurring.NextOccurrence
	next := schedule.Advance(occurrence, recurring.Frequency)
	stillActive := recurring.EndDate == nil || !next.After(*recurring.EndDate)

	entry := &models.Transaction{
		OwnerID:                ownerID,
		Type:                   recurring.Type,
		CategoryID:             recurring.CategoryID,
		Amount:                 recurring.Amount,
		Description:            recurring.Description + recurringSuffix,
		Date:                   occurrence,
		BudgetPeriodID:         &period.ID,
		RecurringTransactionID: &recurring.ID,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.RecurringTransaction{}).
			Where("id = ? AND owner_id = ? AND next_occurrence = ?", recurringID, ownerID, occurrence).
			Updates(map[string]interface{}{
				"next_occurrence": next,
				"is_active":       stillActive,
			})
		if res.Error != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrStaleRecurringState
		}

		if err := tx.Create(entry).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	recurring.NextOccurrence = next
	recurring.IsActive = stillActive
	entry.Category = recurring.Category
	return &ProcessResult{Transaction: entry, Recurring: recurring}, nil
}
