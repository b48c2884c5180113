package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/envelope-zero/ledger/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// IncomeInput are the fields of a new income.
type IncomeInput struct {
	Amount      decimal.Decimal `json:"amount" example:"2500"`
	Description string          `json:"description" example:"Salary"`
	Date        time.Time       `json:"date" example:"2024-03-01T00:00:00Z"` // Defaults to now
}

// IncomeUpdate are the changes to an income. PriorAmount, when set, must
// match the stored amount.
type IncomeUpdate struct {
	Amount      *decimal.Decimal `json:"amount" example:"2600"`
	PriorAmount *decimal.Decimal `json:"priorAmount" example:"2500"`
	Description *string          `json:"description" example:"Salary"`
	Date        *time.Time       `json:"date" example:"2024-03-01T00:00:00Z"`
}

// AddIncome adds money to the unallocated pool of the caller's month.
func (s *Service) AddIncome(ctx context.Context, caller Caller, in IncomeInput) (income models.Income, err error) {
	if err := caller.requireMonth(); err != nil {
		return income, err
	}

	if in.Date.IsZero() {
		in.Date = s.now()
	}

	income = models.Income{
		Month:       caller.Month,
		Date:        in.Date,
		Amount:      in.Amount,
		Description: in.Description,
	}

	err = s.command(ctx, caller, func(st *store) (*models.ActivityLogEntry, error) {
		income.Scope = st.scope

		if err := addIncome(st, &income); err != nil {
			return nil, err
		}

		return newEntry(
			models.ActionIncomeAdded,
			income.ID,
			income.Month,
			s.incomeDescription("Added income of %s", income),
			details{"amount": income.Amount, "description": income.Description},
			IncomeAddedUndo{IncomeID: income.ID},
		)
	})

	return
}

// UpdateIncome changes an income and applies the difference to the unallocated pool.
func (s *Service) UpdateIncome(ctx context.Context, caller Caller, id uuid.UUID, update IncomeUpdate) (income models.Income, err error) {
	err = s.command(ctx, caller, func(st *store) (*models.ActivityLogEntry, error) {
		if income, err = st.income(id); err != nil {
			return nil, err
		}

		if err := checkPrior(income, update.PriorAmount); err != nil {
			return nil, err
		}
		previous := income.Amount

		if update.Amount != nil {
			if !update.Amount.IsPositive() {
				return nil, models.ErrAmountNotPositive
			}
			income.Amount = *update.Amount
		}

		if update.Description != nil {
			income.Description = *update.Description
		}

		if update.Date != nil {
			income.Date = *update.Date
		}

		if delta := income.Amount.Sub(previous); !delta.IsZero() {
			if _, err := st.AdjustUnallocatedPool(income.Month, delta); err != nil {
				return nil, err
			}
		}

		if err := st.tx.Save(&income).Error; err != nil {
			return nil, err
		}

		return newEntry(
			models.ActionIncomeUpdated,
			income.ID,
			income.Month,
			s.incomeDescription("Updated income to %s", income),
			details{"amount": income.Amount, "previousAmount": previous, "description": income.Description},
			nil,
		)
	})

	return
}

// DeleteIncome removes an income and its amount from the unallocated pool.
func (s *Service) DeleteIncome(ctx context.Context, caller Caller, id uuid.UUID, priorAmount *decimal.Decimal) error {
	return s.command(ctx, caller, func(st *store) (*models.ActivityLogEntry, error) {
		income, err := st.income(id)
		if err != nil {
			return nil, err
		}

		if err := checkPrior(income, priorAmount); err != nil {
			return nil, err
		}

		if err := deleteIncome(st, income); err != nil {
			return nil, err
		}

		return newEntry(
			models.ActionIncomeDeleted,
			income.ID,
			income.Month,
			s.incomeDescription("Deleted income of %s", income),
			details{"amount": income.Amount, "description": income.Description},
			IncomeDeletedUndo{
				IncomeID:    income.ID,
				Month:       income.Month,
				Amount:      income.Amount,
				Description: income.Description,
				Date:        income.Date,
			},
		)
	})
}

func checkPrior(income models.Income, prior *decimal.Decimal) error {
	if prior != nil && !prior.Equal(income.Amount) {
		return fmt.Errorf("%w: expected %s, stored amount is %s", ErrStaleAmount, prior.StringFixed(2), income.Amount.StringFixed(2))
	}

	return nil
}

func addIncome(st *store, income *models.Income) error {
	if !income.Amount.IsPositive() {
		return models.ErrAmountNotPositive
	}

	if _, err := st.AdjustUnallocatedPool(income.Month, income.Amount); err != nil {
		return err
	}

	return st.tx.Create(income).Error
}

func deleteIncome(st *store, income models.Income) error {
	if _, err := st.AdjustUnallocatedPool(income.Month, income.Amount.Neg()); err != nil {
		return err
	}

	return st.tx.Delete(&income).Error
}

func (s *Service) incomeDescription(format string, income models.Income) string {
	description := s.printer.Sprintf(format, s.amount(income.Amount))
	if income.Description != "" {
		description += s.printer.Sprintf(" (%s)", income.Description)
	}

	return description
}
