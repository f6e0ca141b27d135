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

// transactionService handles ledger entry business logic.
type transactionService struct {
	db *gorm.DB
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB) TransactionServicer {
	return &transactionService{db: db}
}

// CreateTransaction creates a new ledger entry. The category must
// belong to the owner and match the entry's type.
func (s *transactionService) CreateTransaction(
	ownerID string,
	transactionType models.TransactionType,
	categoryID string,
	amount decimal.Decimal,
	description string,
	date types.Date,
	periodID *string,
) (*models.Transaction, error) {
	if !amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be positive")
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

	if periodID != nil {
		var count int64
		if err := s.db.Model(&models.BudgetPeriod{}).
			Where("id = ? AND owner_id = ?", *periodID, ownerID).
			Count(&count).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count == 0 {
			return nil, apperrors.ErrPeriodNotFound
		}
	}

	transaction := &models.Transaction{
		OwnerID:        ownerID,
		Type:           transactionType,
		CategoryID:     categoryID,
		Amount:         amount,
		Description:    description,
		Date:           date,
		BudgetPeriodID: periodID,
	}

	if err := s.db.Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	transaction.Category = category
	return transaction, nil
}

// GetTransactions returns a paginated, filtered list of ledger entries,
// newest date first.
func (s *transactionService) GetTransactions(ownerID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	base := s.db.Model(&models.Transaction{}).Where("owner_id = ?", ownerID)
	if filter.FromDate != nil {
		base = base.Where("date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		base = base.Where("date <= ?", *filter.ToDate)
	}
	if filter.Type != nil {
		base = base.Where("type = ?", *filter.Type)
	}
	if filter.CategoryID != nil {
		base = base.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.BudgetPeriodID != nil {
		base = base.Where("budget_period_id = ?", *filter.BudgetPeriodID)
	}
	if filter.RecurringTransactionID != nil {
		base = base.Where("recurring_transaction_id = ?", *filter.RecurringTransactionID)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Preload("Category").Order("date DESC, created_at DESC").
		Scopes(pagination.Paginate(page)).Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetTransactionByID returns a ledger entry if it belongs to the owner.
func (s *transactionService) GetTransactionByID(ownerID, transactionID string) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Preload("Category").
		Where("id = ? AND owner_id = ?", transactionID, ownerID).
		First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// UpdateTransaction updates a ledger entry's editable fields. The entry
// type is immutable; changing the category keeps the type consistent.
func (s *transactionService) UpdateTransaction(
	ownerID, transactionID string,
	categoryID *string,
	amount *decimal.Decimal,
	description *string,
	date *types.Date,
) (*models.Transaction, error) {
	transaction, err := s.GetTransactionByID(ownerID, transactionID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if categoryID != nil {
		var category models.Category
		if err := s.db.Where("id = ? AND owner_id = ?", *categoryID, ownerID).First(&category).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrCategoryNotFound
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if models.TransactionType(category.Type) != transaction.Type {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category type does not match transaction type")
		}
		updates["category_id"] = *categoryID
	}
	if amount != nil {
		if !amount.IsPositive() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be positive")
		}
		updates["amount"] = *amount
	}
	if description != nil {
		updates["description"] = *description
	}
	if date != nil {
		updates["date"] = *date
	}

	if len(updates) > 0 {
		if err := s.db.Model(transaction).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return s.GetTransactionByID(ownerID, transactionID)
}

// DeleteTransaction soft-deletes a ledger entry.
func (s *transactionService) DeleteTransaction(ownerID, transactionID string) error {
	transaction, err := s.GetTransactionByID(ownerID, transactionID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(transaction).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
