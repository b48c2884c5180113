package ledger

import (
	"context"

	"github.com/envelope-zero/ledger/internal/models"
	"github.com/envelope-zero/ledger/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GoalInput are the fields of a savings goal.
type GoalInput struct {
	Name         string          `json:"name" example:"New TV"`
	Note         string          `json:"note" example:"We want to replace the old CRT TV soon-ish"`
	TargetAmount decimal.Decimal `json:"targetAmount" example:"750"`
	Month        types.Month     `json:"month" swaggertype:"string" example:"2024-07"`
}

// SetGoal creates or replaces the savings goal of an envelope.
func (s *Service) SetGoal(ctx context.Context, caller Caller, envelopeID uuid.UUID, in GoalInput) (goal models.SavingsGoal, err error) {
	err = s.command(ctx, caller, func(st *store) (*models.ActivityLogEntry, error) {
		envelope, err := st.envelope(envelopeID)
		if err != nil {
			return nil, err
		}

		existing, err := findGoal(st, envelope.ID)
		if err != nil {
			return nil, err
		}

		if existing != nil {
			goal = *existing
		} else {
			goal = models.SavingsGoal{Scope: st.scope, EnvelopeID: envelope.ID}
		}

		goal.Name = in.Name
		goal.Note = in.Note
		goal.TargetAmount = in.TargetAmount
		goal.Month = in.Month

		if existing != nil {
			err = st.tx.Save(&goal).Error
		} else {
			err = st.tx.Create(&goal).Error
		}
		if err != nil {
			return nil, err
		}

		return newEntry(
			models.ActionGoalSet,
			goal.ID,
			caller.Month,
			s.printer.Sprintf("Set savings goal of %s for %s", s.amount(goal.TargetAmount), envelope.Name),
			details{"envelope": envelope.Name, "targetAmount": goal.TargetAmount},
			nil,
		)
	})

	return
}

// DeleteGoal removes the savings goal of an envelope.
func (s *Service) DeleteGoal(ctx context.Context, caller Caller, envelopeID uuid.UUID) error {
	return s.command(ctx, caller, func(st *store) (*models.ActivityLogEntry, error) {
		envelope, err := st.envelope(envelopeID)
		if err != nil {
			return nil, err
		}

		var goal models.SavingsGoal
		err = st.tx.
			Scopes(st.scope.Filter("savings_goals")).
			Where("savings_goals.envelope_id = ?", envelope.ID).
			First(&goal).Error
		if err != nil {
			return nil, err
		}

		if err := st.tx.Delete(&goal).Error; err != nil {
			return nil, err
		}

		return newEntry(
			models.ActionGoalDeleted,
			goal.ID,
			caller.Month,
			s.printer.Sprintf("Removed savings goal of %s", envelope.Name),
			details{"envelope": envelope.Name, "targetAmount": goal.TargetAmount},
			nil,
		)
	})
}

// findGoal returns the goal of the envelope or nil if it has none.
func findGoal(st *store, envelopeID uuid.UUID) (*models.SavingsGoal, error) {
	var goals []models.SavingsGoal
	err := st.tx.
		Scopes(st.scope.Filter("savings_goals")).
		Where("savings_goals.envelope_id = ?", envelopeID).
		Limit(1).
		Find(&goals).Error
	if err != nil || len(goals) == 0 {
		return nil, err
	}

	return &goals[0], nil
}
