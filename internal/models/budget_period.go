package models

import "finflow/internal/types"

// PeriodType represents the window size of a budget period
type PeriodType string

const (
	PeriodTypeMonthly   PeriodType = "monthly"
	PeriodTypeQuarterly PeriodType = "quarterly"
	PeriodTypeYearly    PeriodType = "yearly"
)

// BudgetPeriod represents a bounded date range used to scope budget
// targets and transaction aggregation. Both bounds are inclusive.
// The (owner, start date, period type) triple is unique so that
// concurrent resolution cannot create duplicate periods.
type BudgetPeriod struct {
	Base
	OwnerID    string     `gorm:"not null;index;uniqueIndex:idx_periods_owner_start_type" json:"owner_id"`
	Name       string     `gorm:"not null" json:"name"`
	PeriodType PeriodType `gorm:"not null;uniqueIndex:idx_periods_owner_start_type" json:"period_type"`
	StartDate  types.Date `gorm:"not null;uniqueIndex:idx_periods_owner_start_type" json:"start_date"`
	EndDate    types.Date `gorm:"not null" json:"end_date"`
	IsActive   bool       `gorm:"default:true" json:"is_active"`
}

// Contains reports whether d falls within the period, bounds inclusive.
func (p *BudgetPeriod) Contains(d types.Date) bool {
	return !d.Before(p.StartDate) && !d.After(p.EndDate)
}
