package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"finflow/internal/models"
	"finflow/internal/schedule"
	"finflow/internal/types"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// TestOwner is the owner used by fixtures unless a test needs several owners.
const TestOwner = "test-owner"

// CreateTestCategory creates a category of the given type with a unique name.
func CreateTestCategory(t *testing.T, db *gorm.DB, ownerID string, categoryType models.CategoryType) *models.Category {
	t.Helper()

	category := &models.Category{
		OwnerID:  ownerID,
		Name:     fmt.Sprintf("Test Category %d", nextID()),
		Type:     categoryType,
		IsCustom: true,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestPeriod creates an active monthly period covering the month of d.
func CreateTestPeriod(t *testing.T, db *gorm.DB, ownerID string, d types.Date) *models.BudgetPeriod {
	t.Helper()

	start, end := schedule.MonthWindow(d)
	period := &models.BudgetPeriod{
		OwnerID:    ownerID,
		Name:       fmt.Sprintf("Test Period %d", nextID()),
		PeriodType: models.PeriodTypeMonthly,
		StartDate:  start,
		EndDate:    end,
		IsActive:   true,
	}
	if err := db.Create(period).Error; err != nil {
		t.Fatalf("failed to create test period: %v", err)
	}
	return period
}

// CreateTestTransaction creates a ledger entry of the given type and amount.
func CreateTestTransaction(t *testing.T, db *gorm.DB, ownerID, categoryID string, txType models.TransactionType, amount decimal.Decimal, date types.Date) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		OwnerID:    ownerID,
		Type:       txType,
		CategoryID: categoryID,
		Amount:     amount,
		Date:       date,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestRecurring creates an active recurring definition whose cursor
// sits at its start date.
func CreateTestRecurring(t *testing.T, db *gorm.DB, ownerID, categoryID string, frequency models.Frequency, amount decimal.Decimal, start types.Date) *models.RecurringTransaction {
	t.Helper()

	rec := &models.RecurringTransaction{
		OwnerID:        ownerID,
		Name:           fmt.Sprintf("Test Recurring %d", nextID()),
		Type:           models.TransactionTypeExpense,
		CategoryID:     categoryID,
		Amount:         amount,
		Frequency:      frequency,
		StartDate:      start,
		NextOccurrence: start,
		IsActive:       true,
	}
	if err := db.Create(rec).Error; err != nil {
		t.Fatalf("failed to create test recurring transaction: %v", err)
	}
	return rec
}

// CreateTestBudget creates a budget for the given period with the given income,
// allocation targets derived.
func CreateTestBudget(t *testing.T, db *gorm.DB, ownerID string, periodID *string, income decimal.Decimal) *models.Budget {
	t.Helper()

	budget := &models.Budget{
		OwnerID:        ownerID,
		BudgetPeriodID: periodID,
		MonthlyIncome:  income,
	}
	budget.ApplyRule()
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}

// CreateTestGoal creates a goal with the given target and no progress.
func CreateTestGoal(t *testing.T, db *gorm.DB, ownerID string, target decimal.Decimal, targetDate types.Date) *models.Goal {
	t.Helper()

	goal := &models.Goal{
		OwnerID:       ownerID,
		Name:          fmt.Sprintf("Test Goal %d", nextID()),
		TargetAmount:  target,
		CurrentAmount: decimal.Zero,
		TargetDate:    targetDate,
	}
	if err := db.Create(goal).Error; err != nil {
		t.Fatalf("failed to create test goal: %v", err)
	}
	return goal
}
