package models

import (
	"finflow/internal/types"

	"github.com/shopspring/decimal"
)

// Frequency represents how often a recurring transaction materializes
type Frequency string

const (
	FrequencyDaily     Frequency = "daily"
	FrequencyWeekly    Frequency = "weekly"
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyYearly    Frequency = "yearly"
)

// RecurringTransaction is a template that generates ledger entries on a
// schedule. NextOccurrence is the cursor: it never precedes StartDate,
// and once it passes EndDate the definition is deactivated rather than
// deleted.
type RecurringTransaction struct {
	Base
	OwnerID        string          `gorm:"not null;index" json:"owner_id"`
	Name           string          `gorm:"not null" json:"name"`
	Type           TransactionType `gorm:"not null" json:"type"`
	CategoryID     string          `gorm:"type:uuid;not null;index" json:"category_id"`
	Amount         decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	Description    string          `json:"description"`
	Frequency      Frequency       `gorm:"not null" json:"frequency"`
	StartDate      types.Date      `gorm:"not null" json:"start_date"`
	EndDate        *types.Date     `json:"end_date,omitempty"`
	NextOccurrence types.Date      `gorm:"not null;index" json:"next_occurrence"`
	IsActive       bool            `gorm:"default:true" json:"is_active"`

	// Relationships
	Category Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
