package models

import (
	"github.com/envelope-zero/ledger/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EnvelopeAllocation holds the counters of one envelope in one month.
//
// An envelope is active in a month only if it has an allocation for it.
type EnvelopeAllocation struct {
	Timestamps
	Envelope   Envelope    `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	EnvelopeID uuid.UUID   `json:"envelopeId" gorm:"primaryKey" example:"4e743e94-6a4b-44d6-aba5-d77c82103fa7"`
	Month      types.Month `json:"month" gorm:"primaryKey" swaggertype:"string" example:"2024-03"`
	Scope
	Allocated decimal.Decimal `json:"allocated" gorm:"type:DECIMAL(20,8)" example:"100"` // Money budgeted for the envelope
	Spent     decimal.Decimal `json:"spent" gorm:"type:DECIMAL(20,8)" example:"40"`      // Sum of the transactions in the envelope
}

// Available returns the balance left to spend.
func (a EnvelopeAllocation) Available() decimal.Decimal {
	return a.Allocated.Sub(a.Spent)
}
