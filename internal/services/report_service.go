package services

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "finflow/internal/errors"
	"finflow/internal/models"
	"finflow/internal/schedule"
	"finflow/internal/types"
)

// reportService implements read-only aggregation over the ledger.
type reportService struct {
	db *gorm.DB
}

// NewReportService creates a new ReportServicer.
func NewReportService(db *gorm.DB) ReportServicer {
	return &reportService{db: db}
}

// MonthlySummary aggregates one calendar month: total income, total
// expenses, savings, and a per-category expense breakdown.
func (s *reportService) MonthlySummary(ownerID string, month time.Month, year int) (*MonthlySummary, error) {
	if month < time.January || month > time.December {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "month must be between 1 and 12")
	}

	first, last := schedule.MonthWindow(types.NewDate(year, month, 1))

	var entries []models.Transaction
	if err := s.db.Preload("Category").
		Where("owner_id = ? AND date >= ? AND date <= ?", ownerID, first, last).
		Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	summary := &MonthlySummary{
		MonthlyIncome:    decimal.Zero,
		MonthlyExpenses:  decimal.Zero,
		ExpenseBreakdown: make(map[string]CategoryBreakdown),
		TransactionCount: len(entries),
	}

	for _, e := range entries {
		switch e.Type {
		case models.TransactionTypeIncome:
			summary.MonthlyIncome = summary.MonthlyIncome.Add(e.Amount)
		case models.TransactionTypeExpense:
			summary.MonthlyExpenses = summary.MonthlyExpenses.Add(e.Amount)

			b, ok := summary.ExpenseBreakdown[e.Category.Name]
			if !ok {
				b = CategoryBreakdown{
					Name:   e.Category.Name,
					Color:  e.Category.Color,
					Amount: decimal.Zero,
				}
			}
			b.Amount = b.Amount.Add(e.Amount)
			b.Count++
			summary.ExpenseBreakdown[e.Category.Name] = b
		}
	}

	summary.MonthlySavings = summary.MonthlyIncome.Sub(summary.MonthlyExpenses)
	return summary, nil
}

// SixMonthTrend returns six monthly samples ending with the current
// month, oldest first. Each sample month is located by stepping back in
// fixed 30-day offsets from today rather than true calendar months;
// this reproduces the legacy report's behavior for compatibility and
// can drift near month boundaries.
func (s *reportService) SixMonthTrend(ownerID string, today types.Date) ([]TrendPoint, error) {
	trend := make([]TrendPoint, 0, 6)

	for i := 5; i >= 0; i-- {
		sample := types.DateOf(today.Time.AddDate(0, 0, -30*i))
		first, last := schedule.MonthWindow(sample)

		var entries []models.Transaction
		if err := s.db.
			Where("owner_id = ? AND date >= ? AND date <= ?", ownerID, first, last).
			Find(&entries).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		income, expenses := decimal.Zero, decimal.Zero
		for _, e := range entries {
			switch e.Type {
			case models.TransactionTypeIncome:
				income = income.Add(e.Amount)
			case models.TransactionTypeExpense:
				expenses = expenses.Add(e.Amount)
			}
		}

		trend = append(trend, TrendPoint{
			Month:    sample.Format("Jan"),
			Income:   income,
			Expenses: expenses,
			Savings:  income.Sub(expenses),
		})
	}

	return trend, nil
}
