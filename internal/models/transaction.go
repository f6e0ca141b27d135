package models

import (
	"finflow/internal/types"

	"github.com/shopspring/decimal"
)

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Transaction represents a single dated, categorized, typed monetary
// ledger entry. Entries created by the recurrence engine carry a
// reference to their originating definition.
type Transaction struct {
	Base
	OwnerID     string          `gorm:"not null;index" json:"owner_id"`
	Type        TransactionType `gorm:"not null" json:"type"`
	CategoryID  string          `gorm:"type:uuid;not null;index" json:"category_id"`
	Amount      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	Description string          `json:"description"`
	Date        types.Date      `gorm:"not null;index" json:"date"`

	BudgetPeriodID         *string `gorm:"type:uuid;index" json:"budget_period_id,omitempty"`
	RecurringTransactionID *string `gorm:"type:uuid;index" json:"recurring_transaction_id,omitempty"`

	// Relationships
	Category     Category      `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	BudgetPeriod *BudgetPeriod `gorm:"foreignKey:BudgetPeriodID" json:"budget_period,omitempty"`
}
