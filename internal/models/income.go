package models

import (
	"strings"
	"time"

	"github.com/envelope-zero/ledger/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Income is money added to the unallocated pool of a month.
type Income struct {
	DefaultModel
	Scope
	Month       types.Month     `json:"month" gorm:"index" swaggertype:"string" example:"2024-03"`
	Date        time.Time       `json:"date" example:"2024-03-01T00:00:00Z"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"2500"`
	Description string          `json:"description" example:"Salary"`
}

func (i *Income) BeforeSave(_ *gorm.DB) error {
	i.Description = strings.TrimSpace(i.Description)
	i.Date = i.Date.UTC()

	if err := i.Scope.Validate(); err != nil {
		return err
	}

	if !i.Amount.IsPositive() {
		return ErrAmountNotPositive
	}

	return nil
}
