package models

import (
	"errors"
	"strings"

	"github.com/envelope-zero/ledger/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrGoalAmountNotPositive = errors.New("goal amounts must be larger than zero")
	ErrGoalExists            = errors.New("the envelope already has a savings goal")
)

// SavingsGoal is the savings target of an envelope. It caps the amount
// the envelope carries into the next month.
type SavingsGoal struct {
	DefaultModel
	Scope
	Envelope     Envelope        `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	EnvelopeID   uuid.UUID       `json:"envelopeId" gorm:"uniqueIndex" example:"4e743e94-6a4b-44d6-aba5-d77c82103fa7"`
	Name         string          `json:"name" example:"New TV"`
	Note         string          `json:"note" example:"We want to replace the old CRT TV soon-ish"`
	TargetAmount decimal.Decimal `json:"targetAmount" gorm:"type:DECIMAL(20,8)" example:"750"`
	Month        types.Month     `json:"month" swaggertype:"string" example:"2024-07"` // The month the goal should be reached
}

func (g *SavingsGoal) BeforeCreate(tx *gorm.DB) error {
	_ = g.DefaultModel.BeforeCreate(tx)

	return tx.Scopes(g.Scope.Filter("envelopes")).First(&Envelope{}, "envelopes.id = ?", g.EnvelopeID).Error
}

func (g *SavingsGoal) BeforeSave(_ *gorm.DB) error {
	g.Name = strings.TrimSpace(g.Name)
	g.Note = strings.TrimSpace(g.Note)

	return g.Scope.Validate()
}

func (g *SavingsGoal) AfterSave(_ *gorm.DB) error {
	if !g.TargetAmount.IsPositive() {
		return ErrGoalAmountNotPositive
	}

	return nil
}
