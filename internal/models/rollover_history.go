package models

import (
	"github.com/envelope-zero/ledger/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RolloverHistoryEntry records money carried from one month into another.
//
// It has no foreign key to the envelope so that the history survives
// deleting the envelope.
type RolloverHistoryEntry struct {
	DefaultModel
	Scope
	EnvelopeID   uuid.UUID        `json:"envelopeId" gorm:"index" example:"4e743e94-6a4b-44d6-aba5-d77c82103fa7"`
	EnvelopeName string           `json:"envelopeName" example:"Vacation"`
	SourceMonth  types.Month      `json:"sourceMonth" gorm:"index" swaggertype:"string" example:"2024-03"`
	TargetMonth  types.Month      `json:"targetMonth" swaggertype:"string" example:"2024-04"`
	Amount       decimal.Decimal  `json:"amount" gorm:"type:DECIMAL(20,8)" example:"30"`
	Strategy     RolloverStrategy `json:"strategy" example:"percentage"`
}
