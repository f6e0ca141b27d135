package services

import (
	"time"

	"github.com/shopspring/decimal"

	"finflow/internal/models"
	"finflow/internal/pagination"
	"finflow/internal/types"
)

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(ownerID, name string, categoryType models.CategoryType, color, icon string) (*models.Category, error)
	GetCategories(ownerID string, page pagination.PageRequest) (*pagination.PageResponse[models.Category], error)
	GetCategoriesByType(ownerID string, categoryType models.CategoryType, page pagination.PageRequest) (*pagination.PageResponse[models.Category], error)
	GetCategoryByID(ownerID, categoryID string) (*models.Category, error)
	UpdateCategory(ownerID, categoryID, name, color, icon string) (*models.Category, error)
	DeleteCategory(ownerID, categoryID string) error
	SeedDefaults(ownerID string) ([]models.Category, error)
}

// PeriodServicer defines the contract for budget period resolution and management.
type PeriodServicer interface {
	// ResolveCurrent returns the active period containing today,
	// synthesizing and persisting a monthly period when none exists.
	// It always returns a period.
	ResolveCurrent(ownerID string, today types.Date) (*models.BudgetPeriod, error)
	CreatePeriod(ownerID, name string, periodType models.PeriodType, start, end types.Date) (*models.BudgetPeriod, error)
	GetPeriods(ownerID string, page pagination.PageRequest) (*pagination.PageResponse[models.BudgetPeriod], error)
	GetPeriodByID(ownerID, periodID string) (*models.BudgetPeriod, error)
	SetActive(ownerID, periodID string, active bool) (*models.BudgetPeriod, error)
}

// TransactionFilter holds optional filter parameters for listing ledger entries.
type TransactionFilter struct {
	FromDate               *types.Date
	ToDate                 *types.Date
	Type                   *models.TransactionType
	CategoryID             *string
	BudgetPeriodID         *string
	RecurringTransactionID *string
}

// TransactionServicer defines the contract for ledger entry business logic.
type TransactionServicer interface {
	CreateTransaction(ownerID string, transactionType models.TransactionType, categoryID string, amount decimal.Decimal, description string, date types.Date, periodID *string) (*models.Transaction, error)
	GetTransactions(ownerID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionByID(ownerID, transactionID string) (*models.Transaction, error)
	UpdateTransaction(ownerID, transactionID string, categoryID *string, amount *decimal.Decimal, description *string, date *types.Date) (*models.Transaction, error)
	DeleteTransaction(ownerID, transactionID string) error
}

// ProcessResult is the outcome of materializing one recurring occurrence.
type ProcessResult struct {
	Transaction *models.Transaction         `json:"transaction"`
	Recurring   *models.RecurringTransaction `json:"recurring_transaction"`
}

// RecurringServicer defines the contract for the recurrence engine.
type RecurringServicer interface {
	CreateRecurring(ownerID, name string, transactionType models.TransactionType, categoryID string, amount decimal.Decimal, description string, frequency models.Frequency, start types.Date, end *types.Date, next *types.Date) (*models.RecurringTransaction, error)
	GetRecurring(ownerID string, page pagination.PageRequest) (*pagination.PageResponse[models.RecurringTransaction], error)
	GetRecurringByID(ownerID, recurringID string) (*models.RecurringTransaction, error)
	UpdateRecurring(ownerID, recurringID string, update RecurringUpdate) (*models.RecurringTransaction, error)
	DeleteRecurring(ownerID, recurringID string) error
	// Due returns all active definitions whose cursor is at or before
	// today, re-queried on every call.
	Due(ownerID string, today types.Date) ([]models.RecurringTransaction, error)
	// Process materializes one occurrence: writes a ledger entry dated
	// at the pre-advance cursor and advances the cursor, in one
	// database transaction.
	Process(ownerID, recurringID string) (*ProcessResult, error)
}

// RecurringUpdate holds optional fields for updating a recurring definition.
type RecurringUpdate struct {
	Name           string
	CategoryID     *string
	Amount         *decimal.Decimal
	Description    *string
	Frequency      *models.Frequency
	EndDate        *types.Date
	NextOccurrence *types.Date
	IsActive       *bool
}

// ActualSpending is the realized in-period spend split used by budget analysis.
type ActualSpending struct {
	Needs   decimal.Decimal `json:"needs"`
	Wants   decimal.Decimal `json:"wants"`
	Savings decimal.Decimal `json:"savings"`
}

// BudgetStatus compares actual spending to the allocation targets.
type BudgetStatus struct {
	NeedsOnTrack   bool `json:"needs_on_track"`
	WantsOnTrack   bool `json:"wants_on_track"`
	SavingsOnTrack bool `json:"savings_on_track"`
}

// BudgetAnalysis is the full budget-vs-actual report for one period.
type BudgetAnalysis struct {
	Budget         *models.Budget `json:"budget"`
	ActualSpending ActualSpending `json:"actual_spending"`
	BudgetStatus   BudgetStatus   `json:"budget_status"`
}

// BudgetServicer defines the contract for the 50/30/20 budget allocator.
type BudgetServicer interface {
	CurrentBudget(ownerID string) (*models.Budget, error)
	SetIncome(ownerID string, periodID *string, income decimal.Decimal) (*models.Budget, error)
	Analyze(ownerID string, periodID *string) (*BudgetAnalysis, error)
	GetBudgets(ownerID string, page pagination.PageRequest) (*pagination.PageResponse[models.Budget], error)
}

// GoalServicer defines the contract for savings goal tracking.
type GoalServicer interface {
	CreateGoal(ownerID, name, description string, target decimal.Decimal, targetDate types.Date) (*models.Goal, error)
	GetGoals(ownerID string, page pagination.PageRequest) (*pagination.PageResponse[models.Goal], error)
	GetGoalByID(ownerID, goalID string) (*models.Goal, error)
	UpdateGoal(ownerID, goalID string, name, description *string, target *decimal.Decimal, targetDate *types.Date) (*models.Goal, error)
	DeleteGoal(ownerID, goalID string) error
	UpdateProgress(ownerID, goalID string, amount decimal.Decimal) (*models.Goal, error)
	ListActive(ownerID string) ([]models.Goal, error)
	ListCompleted(ownerID string) ([]models.Goal, error)
}

// CategoryBreakdown accumulates per-category amounts in a monthly summary.
type CategoryBreakdown struct {
	Name   string          `json:"name"`
	Color  string          `json:"color"`
	Amount decimal.Decimal `json:"amount"`
	Count  int             `json:"count"`
}

// MonthlySummary aggregates one calendar month of ledger activity.
type MonthlySummary struct {
	MonthlyIncome    decimal.Decimal              `json:"monthly_income"`
	MonthlyExpenses  decimal.Decimal              `json:"monthly_expenses"`
	MonthlySavings   decimal.Decimal              `json:"monthly_savings"`
	ExpenseBreakdown map[string]CategoryBreakdown `json:"expense_breakdown"`
	TransactionCount int                          `json:"transaction_count"`
}

// TrendPoint is one month's sample in the six-month trend.
type TrendPoint struct {
	Month    string          `json:"month"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Savings  decimal.Decimal `json:"savings"`
}

// ReportServicer defines the contract for read-only ledger reports.
type ReportServicer interface {
	MonthlySummary(ownerID string, month time.Month, year int) (*MonthlySummary, error)
	SixMonthTrend(ownerID string, today types.Date) ([]TrendPoint, error)
}
