package services

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "finflow/internal/errors"
	"finflow/internal/models"
	"finflow/internal/pagination"
	"finflow/internal/types"
)

// defaultMonthlyIncome is the placeholder income for lazily created budgets.
var defaultMonthlyIncome = decimal.NewFromInt(5000)

// needsCategoryNames is the fixed set of expense category names
// classified as needs; every other expense category counts as a want.
var needsCategoryNames = map[string]bool{
	"food":           true,
	"bills":          true,
	"healthcare":     true,
	"transportation": true,
	"rent":           true,
	"utilities":      true,
}

// budgetService implements the 50/30/20 budget allocator.
type budgetService struct {
	db      *gorm.DB
	periods PeriodServicer
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB, periods PeriodServicer) BudgetServicer {
	return &budgetService{db: db, periods: periods}
}

// CurrentBudget returns the budget for the owner's current period,
// creating one with a placeholder income on first access.
func (s *budgetService) CurrentBudget(ownerID string) (*models.Budget, error) {
	period, err := s.periods.ResolveCurrent(ownerID, types.Today())
	if err != nil {
		return nil, err
	}

	budget := &models.Budget{
		OwnerID:        ownerID,
		BudgetPeriodID: &period.ID,
		MonthlyIncome:  defaultMonthlyIncome,
	}
	budget.ApplyRule()

	res := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "owner_id"}, {Name: "budget_period_id"}},
		DoNothing: true,
	}).Create(budget)
	if res.Error != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return s.getByPeriod(ownerID, &period.ID)
	}

	budget.BudgetPeriod = period
	return budget, nil
}

// SetIncome upserts the budget for the (owner, period) pair and
// recomputes the derived allocation targets. A nil periodID targets the
// current period.
func (s *budgetService) SetIncome(ownerID string, periodID *string, income decimal.Decimal) (*models.Budget, error) {
	if income.IsNegative() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "monthly_income must not be negative")
	}

	resolvedID, err := s.resolvePeriodID(ownerID, periodID)
	if err != nil {
		return nil, err
	}

	budget, err := s.getByPeriod(ownerID, resolvedID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrBudgetNotFound) {
			return nil, err
		}
		budget = &models.Budget{
			OwnerID:        ownerID,
			BudgetPeriodID: resolvedID,
		}
	}

	budget.MonthlyIncome = income
	budget.ApplyRule()

	if err := s.db.Save(budget).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budget, nil
}

// Analyze compares actual in-period spending against the budget's
// allocation targets. Needs are expense categories in the fixed needs
// name set; wants are all remaining expense categories.
func (s *budgetService) Analyze(ownerID string, periodID *string) (*BudgetAnalysis, error) {
	resolvedID, err := s.resolvePeriodID(ownerID, periodID)
	if err != nil {
		return nil, err
	}

	budget, err := s.getByPeriod(ownerID, resolvedID)
	if err != nil {
		return nil, err
	}

	var period models.BudgetPeriod
	if err := s.db.Where("id = ?", *resolvedID).First(&period).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var expenseCategories []models.Category
	if err := s.db.Where("owner_id = ? AND type = ?", ownerID, models.CategoryTypeExpense).
		Find(&expenseCategories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	needsIDs := make([]string, 0, len(expenseCategories))
	wantsIDs := make([]string, 0, len(expenseCategories))
	for _, c := range expenseCategories {
		if needsCategoryNames[c.Name] {
			needsIDs = append(needsIDs, c.ID)
		} else {
			wantsIDs = append(wantsIDs, c.ID)
		}
	}

	needsSpent, err := s.sumInPeriod(ownerID, models.TransactionTypeExpense, needsIDs, period)
	if err != nil {
		return nil, err
	}
	wantsSpent, err := s.sumInPeriod(ownerID, models.TransactionTypeExpense, wantsIDs, period)
	if err != nil {
		return nil, err
	}
	incomeActual, err := s.sumInPeriod(ownerID, models.TransactionTypeIncome, nil, period)
	if err != nil {
		return nil, err
	}

	actualSavings := incomeActual.Sub(needsSpent).Sub(wantsSpent)

	return &BudgetAnalysis{
		Budget: budget,
		ActualSpending: ActualSpending{
			Needs:   needsSpent,
			Wants:   wantsSpent,
			Savings: actualSavings,
		},
		BudgetStatus: BudgetStatus{
			NeedsOnTrack:   needsSpent.LessThanOrEqual(budget.NeedsBudget),
			WantsOnTrack:   wantsSpent.LessThanOrEqual(budget.WantsBudget),
			SavingsOnTrack: actualSavings.GreaterThanOrEqual(budget.SavingsGoal),
		},
	}, nil
}

// GetBudgets retrieves a paginated list of the owner's budgets.
func (s *budgetService) GetBudgets(ownerID string, page pagination.PageRequest) (*pagination.PageResponse[models.Budget], error) {
	page.Defaults()

	base := s.db.Model(&models.Budget{}).Where("owner_id = ?", ownerID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var budgets []models.Budget
	if err := base.Preload("BudgetPeriod").Order("created_at DESC").
		Scopes(pagination.Paginate(page)).Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(budgets, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// resolvePeriodID maps a nil period reference to the current period and
// verifies an explicit one belongs to the owner.
func (s *budgetService) resolvePeriodID(ownerID string, periodID *string) (*string, error) {
	if periodID == nil {
		period, err := s.periods.ResolveCurrent(ownerID, types.Today())
		if err != nil {
			return nil, err
		}
		return &period.ID, nil
	}

	var count int64
	if err := s.db.Model(&models.BudgetPeriod{}).
		Where("id = ? AND owner_id = ?", *periodID, ownerID).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return nil, apperrors.ErrPeriodNotFound
	}
	return periodID, nil
}

func (s *budgetService) getByPeriod(ownerID string, periodID *string) (*models.Budget, error) {
	var budget models.Budget
	err := s.db.Preload("BudgetPeriod").
		Where("owner_id = ? AND budget_period_id = ?", ownerID, *periodID).
		First(&budget).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &budget, nil
}

// sumInPeriod totals entries of one type within the period's date
// window, optionally restricted to a category set. An empty set sums to
// zero without touching the database.
func (s *budgetService) sumInPeriod(ownerID string, transactionType models.TransactionType, categoryIDs []string, period models.BudgetPeriod) (decimal.Decimal, error) {
	if categoryIDs != nil && len(categoryIDs) == 0 {
		return decimal.Zero, nil
	}

	q := s.db.Model(&models.Transaction{}).
		Where("owner_id = ? AND type = ? AND date >= ? AND date <= ?",
			ownerID, transactionType, period.StartDate, period.EndDate)
	if categoryIDs != nil {
		q = q.Where("category_id IN ?", categoryIDs)
	}

	var amounts []decimal.Decimal
	if err := q.Pluck("amount", &amounts).Error; err != nil {
		return decimal.Zero, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total, nil
}
