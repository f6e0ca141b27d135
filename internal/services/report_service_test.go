package services

import (
	"testing"
	"time"

	"finflow/internal/models"
	"finflow/internal/testutil"
	"finflow/internal/types"

	"github.com/shopspring/decimal"
)

func TestMonthlySummary(t *testing.T) {
	t.Run("aggregates_one_month", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReportService(db)

		food := expenseCategoryNamed(t, db, testutil.TestOwner, "food")
		fun := expenseCategoryNamed(t, db, testutil.TestOwner, "entertainment")
		salary := &models.Category{OwnerID: testutil.TestOwner, Name: "salary", Type: models.CategoryTypeIncome}
		testutil.AssertNoError(t, db.Create(salary).Error)

		testutil.CreateTestTransaction(t, db, testutil.TestOwner, salary.ID, models.TransactionTypeIncome, decimal.NewFromInt(1000), types.NewDate(2024, 3, 1))
		testutil.CreateTestTransaction(t, db, testutil.TestOwner, food.ID, models.TransactionTypeExpense, decimal.NewFromInt(20), types.NewDate(2024, 3, 10))
		testutil.CreateTestTransaction(t, db, testutil.TestOwner, food.ID, models.TransactionTypeExpense, decimal.NewFromInt(30), types.NewDate(2024, 3, 12))
		testutil.CreateTestTransaction(t, db, testutil.TestOwner, fun.ID, models.TransactionTypeExpense, decimal.NewFromInt(50), types.NewDate(2024, 3, 20))

		// Outside the month and outside the owner: both excluded.
		testutil.CreateTestTransaction(t, db, testutil.TestOwner, food.ID, models.TransactionTypeExpense, decimal.NewFromInt(999), types.NewDate(2024, 4, 1))
		testutil.CreateTestTransaction(t, db, "someone-else", food.ID, models.TransactionTypeExpense, decimal.NewFromInt(999), types.NewDate(2024, 3, 10))

		summary, err := svc.MonthlySummary(testutil.TestOwner, time.March, 2024)
		testutil.AssertNoError(t, err)

		testutil.AssertDecimalEqual(t, decimal.NewFromInt(1000), summary.MonthlyIncome)
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(100), summary.MonthlyExpenses)
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(900), summary.MonthlySavings)
		if summary.TransactionCount != 4 {
			t.Errorf("expected 4 transactions, got %d", summary.TransactionCount)
		}

		foodBreakdown, ok := summary.ExpenseBreakdown["food"]
		if !ok {
			t.Fatal("expected a food breakdown entry")
		}
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(50), foodBreakdown.Amount)
		if foodBreakdown.Count != 2 {
			t.Errorf("expected 2 food entries, got %d", foodBreakdown.Count)
		}

		if _, ok := summary.ExpenseBreakdown["salary"]; ok {
			t.Error("income categories must not appear in the expense breakdown")
		}
	})

	t.Run("empty_month", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReportService(db)

		summary, err := svc.MonthlySummary(testutil.TestOwner, time.July, 2024)
		testutil.AssertNoError(t, err)

		testutil.AssertDecimalEqual(t, decimal.Zero, summary.MonthlyIncome)
		testutil.AssertDecimalEqual(t, decimal.Zero, summary.MonthlyExpenses)
		if summary.TransactionCount != 0 {
			t.Errorf("expected 0 transactions, got %d", summary.TransactionCount)
		}
		if len(summary.ExpenseBreakdown) != 0 {
			t.Errorf("expected empty breakdown, got %d entries", len(summary.ExpenseBreakdown))
		}
	})

	t.Run("invalid_month", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReportService(db)

		_, err := svc.MonthlySummary(testutil.TestOwner, time.Month(13), 2024)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestSixMonthTrend(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewReportService(db)

	food := expenseCategoryNamed(t, db, testutil.TestOwner, "food")
	salary := &models.Category{OwnerID: testutil.TestOwner, Name: "salary", Type: models.CategoryTypeIncome}
	testutil.AssertNoError(t, db.Create(salary).Error)

	// Mid-month anchor keeps each 30-day step inside a distinct month.
	today := types.NewDate(2024, 6, 15)

	testutil.CreateTestTransaction(t, db, testutil.TestOwner, salary.ID, models.TransactionTypeIncome, decimal.NewFromInt(1000), types.NewDate(2024, 6, 5))
	testutil.CreateTestTransaction(t, db, testutil.TestOwner, food.ID, models.TransactionTypeExpense, decimal.NewFromInt(400), types.NewDate(2024, 6, 10))
	testutil.CreateTestTransaction(t, db, testutil.TestOwner, food.ID, models.TransactionTypeExpense, decimal.NewFromInt(250), types.NewDate(2024, 5, 20))

	trend, err := svc.SixMonthTrend(testutil.TestOwner, today)
	testutil.AssertNoError(t, err)

	if len(trend) != 6 {
		t.Fatalf("expected 6 samples, got %d", len(trend))
	}

	last := trend[5]
	if last.Month != "Jun" {
		t.Errorf("expected the last sample to be Jun, got %s", last.Month)
	}
	testutil.AssertDecimalEqual(t, decimal.NewFromInt(1000), last.Income)
	testutil.AssertDecimalEqual(t, decimal.NewFromInt(400), last.Expenses)
	testutil.AssertDecimalEqual(t, decimal.NewFromInt(600), last.Savings)

	prev := trend[4]
	if prev.Month != "May" {
		t.Errorf("expected the fifth sample to be May, got %s", prev.Month)
	}
	testutil.AssertDecimalEqual(t, decimal.NewFromInt(250), prev.Expenses)
	testutil.AssertDecimalEqual(t, decimal.NewFromInt(-250), prev.Savings)

	// Months with no activity report zeros rather than being skipped.
	testutil.AssertDecimalEqual(t, decimal.Zero, trend[0].Income)
	testutil.AssertDecimalEqual(t, decimal.Zero, trend[0].Expenses)
}
