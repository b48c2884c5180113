package models

import (
	"github.com/envelope-zero/ledger/internal/types"
	"github.com/shopspring/decimal"
)

// MonthlyBudget holds the unallocated income pool of a scope for one month.
//
// The scope columns are declared here instead of embedding Scope so that
// they can be part of the unique index.
type MonthlyBudget struct {
	DefaultModel
	UserID       string          `json:"userId,omitempty" gorm:"uniqueIndex:idx_monthly_budgets_scope_month"`
	HouseholdID  string          `json:"householdId,omitempty" gorm:"uniqueIndex:idx_monthly_budgets_scope_month"`
	Month        types.Month     `json:"month" gorm:"uniqueIndex:idx_monthly_budgets_scope_month" swaggertype:"string" example:"2024-03"`
	ToBeBudgeted decimal.Decimal `json:"toBeBudgeted" gorm:"type:DECIMAL(20,8)" example:"1250.5"` // Income that is not allocated to any envelope
}

// Owner returns the scope owning the monthly budget.
func (b MonthlyBudget) Owner() Scope {
	return Scope{UserID: b.UserID, HouseholdID: b.HouseholdID}
}
