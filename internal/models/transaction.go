package models

import (
	"errors"
	"strings"
	"time"

	"github.com/envelope-zero/ledger/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrTransactionEnvelopeMissing = errors.New("a transaction must belong to an envelope")

// Transaction is money spent from one envelope. The month it counts
// against is derived from its date.
type Transaction struct {
	DefaultModel
	Scope
	Envelope    Envelope        `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	EnvelopeID  uuid.UUID       `json:"envelopeId" gorm:"index" example:"4e743e94-6a4b-44d6-aba5-d77c82103fa7"`
	Month       types.Month     `json:"month" gorm:"index" swaggertype:"string" example:"2024-03"`
	Date        time.Time       `json:"date" example:"2024-03-12T00:00:00Z"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"14.99"`
	Description string          `json:"description" example:"Weekly shopping"`
	Merchant    string          `json:"merchant" example:"Corner Market"`
	Notes       string          `json:"notes" example:""`
	ReceiptURL  string          `json:"receiptUrl" example:"https://example.com/receipts/1234.jpg"`
	IsSplit     bool            `json:"isSplit" example:"false"` // The amount is distributed over several envelopes
}

func (t *Transaction) BeforeSave(_ *gorm.DB) error {
	t.Description = strings.TrimSpace(t.Description)
	t.Merchant = strings.TrimSpace(t.Merchant)
	t.Notes = strings.TrimSpace(t.Notes)

	t.Date = t.Date.UTC()
	t.Month = types.MonthOf(t.Date)

	if err := t.Scope.Validate(); err != nil {
		return err
	}

	if t.EnvelopeID == uuid.Nil {
		return ErrTransactionEnvelopeMissing
	}

	if !t.Amount.IsPositive() {
		return ErrAmountNotPositive
	}

	return nil
}

// TransactionSplit is the part of a split transaction assigned to one envelope.
type TransactionSplit struct {
	DefaultModel
	Transaction   Transaction     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	TransactionID uuid.UUID       `json:"transactionId" gorm:"index" example:"b7a3b2d0-0c55-4b7e-9a3f-6f0e52b1a0c2"`
	Envelope      Envelope        `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	EnvelopeID    uuid.UUID       `json:"envelopeId" example:"4e743e94-6a4b-44d6-aba5-d77c82103fa7"`
	Amount        decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"4.5"`
	Description   string          `json:"description" example:"Soap"`
}

func (s *TransactionSplit) BeforeSave(_ *gorm.DB) error {
	s.Description = strings.TrimSpace(s.Description)

	if !s.Amount.IsPositive() {
		return ErrAmountNotPositive
	}

	return nil
}
