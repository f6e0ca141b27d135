package models

import (
	"finflow/internal/types"

	"github.com/shopspring/decimal"
)

// Goal tracks progress toward a savings target. The accumulator is
// independent of the ledger and mutated only by explicit progress
// updates.
type Goal struct {
	Base
	OwnerID       string          `gorm:"not null;index" json:"owner_id"`
	Name          string          `gorm:"not null" json:"name"`
	Description   string          `json:"description"`
	TargetAmount  decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"target_amount"`
	CurrentAmount decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"current_amount"`
	TargetDate    types.Date      `gorm:"not null" json:"target_date"`
	Completed     bool            `gorm:"default:false" json:"completed"`

	// ProgressPercentage is a derived view, filled by the service on
	// every read; it is never stored.
	ProgressPercentage float64 `gorm:"-" json:"progress_percentage"`
}

// RecomputeCompleted derives the completion flag from the amounts.
// Called at every save boundary, so lowering the current amount after
// completion flips the flag back only through an explicit update.
func (g *Goal) RecomputeCompleted() {
	g.Completed = g.CurrentAmount.GreaterThanOrEqual(g.TargetAmount)
}

// ComputeProgress fills ProgressPercentage with
// min(current/target*100, 100), or 0 when the target is not positive.
func (g *Goal) ComputeProgress() {
	if !g.TargetAmount.IsPositive() {
		g.ProgressPercentage = 0
		return
	}
	pct, _ := g.CurrentAmount.Div(g.TargetAmount).Mul(decimal.NewFromInt(100)).Float64()
	if pct > 100 {
		pct = 100
	}
	g.ProgressPercentage = pct
}
