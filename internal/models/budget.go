package models

import "github.com/shopspring/decimal"

// 50/30/20 allocation ratios.
var (
	needsRatio   = decimal.New(50, -2)
	wantsRatio   = decimal.New(30, -2)
	savingsRatio = decimal.New(20, -2)
)

// Budget holds an owner's income and the derived 50/30/20 allocation
// targets for one budget period. At most one budget exists per
// (owner, period) pair. The derived trio is never set directly;
// ApplyRule must be called at every write boundary.
type Budget struct {
	Base
	OwnerID        string  `gorm:"not null;index;uniqueIndex:idx_budgets_owner_period" json:"owner_id"`
	BudgetPeriodID *string `gorm:"type:uuid;uniqueIndex:idx_budgets_owner_period" json:"budget_period_id,omitempty"`

	MonthlyIncome decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"monthly_income"`
	NeedsBudget   decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"needs_budget"`
	WantsBudget   decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"wants_budget"`
	SavingsGoal   decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"savings_goal"`

	// Relationships
	BudgetPeriod *BudgetPeriod `gorm:"foreignKey:BudgetPeriodID" json:"budget_period,omitempty"`
}

// ApplyRule recomputes the derived allocation targets from
// MonthlyIncome as exact decimal products: 50% needs, 30% wants,
// 20% savings. The three always sum to exactly the income.
func (b *Budget) ApplyRule() {
	b.NeedsBudget = b.MonthlyIncome.Mul(needsRatio)
	b.WantsBudget = b.MonthlyIncome.Mul(wantsRatio)
	b.SavingsGoal = b.MonthlyIncome.Mul(savingsRatio)
}
