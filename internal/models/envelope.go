package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RolloverStrategy defines how much of an envelope's unspent balance
// carries into the next month.
type RolloverStrategy string

const (
	RolloverFull       RolloverStrategy = "full"
	RolloverPercentage RolloverStrategy = "percentage"
	RolloverCapped     RolloverStrategy = "capped"
	RolloverNone       RolloverStrategy = "none"
)

// IconPiggyBank marks savings envelopes.
const IconPiggyBank = "piggy-bank"

// CategorySavings is the category given to envelopes with the piggy bank icon.
const CategorySavings = "savings"

var (
	ErrEnvelopeNameEmpty       = errors.New("the envelope name must not be empty")
	ErrEnvelopeExists          = errors.New("an envelope with this ID already exists")
	ErrRolloverStrategyInvalid = errors.New("the rollover strategy must be one of full, percentage, capped or none")
	ErrRolloverPercentage      = errors.New("the rollover percentage must be between 0 and 100")
	ErrMaxRolloverNegative     = errors.New("the maximum rollover amount must not be negative")
)

// Envelope is a named spending category with a balance per month.
type Envelope struct {
	DefaultModel
	Scope
	Name               string           `json:"name" example:"Groceries"`
	Icon               string           `json:"icon" example:"shopping-cart"`
	Color              string           `json:"color" example:"#4caf50"`
	Category           string           `json:"category" example:"food"`
	Note               string           `json:"note" example:"For the weekly shopping"`
	Position           int              `json:"position" example:"3"`
	Archived           bool             `json:"archived" example:"false"`
	Rollover           bool             `json:"rollover" example:"true"`
	RolloverStrategy   RolloverStrategy `json:"rolloverStrategy" example:"percentage"`
	RolloverPercentage decimal.Decimal  `json:"rolloverPercentage" gorm:"type:DECIMAL(20,8)" example:"50"`
	MaxRolloverAmount  decimal.Decimal  `json:"maxRolloverAmount" gorm:"type:DECIMAL(20,8)" example:"0"`
}

func (e *Envelope) BeforeSave(_ *gorm.DB) error {
	e.Name = strings.TrimSpace(e.Name)
	e.Note = strings.TrimSpace(e.Note)
	e.Category = strings.TrimSpace(e.Category)

	if e.RolloverStrategy == "" {
		e.RolloverStrategy = RolloverFull
	}

	if err := e.Scope.Validate(); err != nil {
		return err
	}

	if e.Name == "" {
		return ErrEnvelopeNameEmpty
	}

	return e.validateRollover()
}

func (e Envelope) validateRollover() error {
	switch e.RolloverStrategy {
	case RolloverFull, RolloverPercentage, RolloverCapped, RolloverNone:
	default:
		return fmt.Errorf("%w, got %q", ErrRolloverStrategyInvalid, e.RolloverStrategy)
	}

	if e.RolloverPercentage.IsNegative() || e.RolloverPercentage.GreaterThan(decimal.NewFromInt(100)) {
		return ErrRolloverPercentage
	}

	if e.MaxRolloverAmount.IsNegative() {
		return ErrMaxRolloverNegative
	}

	return nil
}
