package ledger

import (
	"context"
	"sort"

	"github.com/envelope-zero/ledger/internal/models"
	"github.com/envelope-zero/ledger/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Carry is the amount an envelope carries into the target month.
type Carry struct {
	EnvelopeID   uuid.UUID               `json:"envelopeId" example:"4e743e94-6a4b-44d6-aba5-d77c82103fa7"`
	EnvelopeName string                  `json:"envelopeName" example:"Vacation"`
	Strategy     models.RolloverStrategy `json:"strategy" example:"percentage"`
	Amount       decimal.Decimal         `json:"amount" example:"30"`
}

// Overdraft is an envelope that spent more than was allocated to it.
type Overdraft struct {
	EnvelopeID   uuid.UUID       `json:"envelopeId" example:"4e743e94-6a4b-44d6-aba5-d77c82103fa7"`
	EnvelopeName string          `json:"envelopeName" example:"Restaurants"`
	Amount       decimal.Decimal `json:"amount" example:"20"`
}

type RolloverResult struct {
	SourceMonth types.Month `json:"sourceMonth" swaggertype:"string" example:"2024-03"`
	TargetMonth types.Month `json:"targetMonth" swaggertype:"string" example:"2024-04"`
	Carries     []Carry     `json:"carries"`
	Overdrafts  []Overdraft `json:"overdrafts"`
}

var hundred = decimal.NewFromInt(100)

// CarryOver computes the amount the envelope carries out of a month with
// the allocation, and by how much the allocation is overdrawn.
//
// goal may be nil.
func CarryOver(envelope models.Envelope, allocation models.EnvelopeAllocation, goal *models.SavingsGoal) (carry, overdraft decimal.Decimal) {
	raw := allocation.Allocated.Sub(allocation.Spent)
	if raw.IsNegative() {
		overdraft = raw.Neg()
	}

	if !envelope.Rollover {
		return decimal.Zero, overdraft
	}

	balance := decimal.Max(decimal.Zero, raw)

	switch envelope.RolloverStrategy {
	case models.RolloverFull, "":
		carry = balance
	case models.RolloverPercentage:
		carry = balance.Mul(envelope.RolloverPercentage).Div(hundred)
	case models.RolloverCapped:
		carry = decimal.Min(balance, envelope.MaxRolloverAmount)
	default:
		carry = decimal.Zero
	}

	if goal != nil && goal.TargetAmount.IsPositive() {
		carry = decimal.Min(carry, goal.TargetAmount)
	}

	return carry.Round(2), overdraft
}

// StartNewMonth carries the balances of the caller's month into the next month.
//
// Every envelope with an allocation in the month gets an allocation in the
// next month. Carried amounts are added to existing allocations.
func (s *Service) StartNewMonth(ctx context.Context, caller Caller) (result RolloverResult, err error) {
	if err := caller.requireMonth(); err != nil {
		return result, err
	}

	err = s.command(ctx, caller, func(st *store) (*models.ActivityLogEntry, error) {
		var budget models.MonthlyBudget
		result, budget, err = s.rollover(st, caller.Month, caller.Month.Next(), false)
		if err != nil {
			return nil, err
		}

		return newEntry(
			models.ActionMonthStarted,
			budget.ID,
			result.TargetMonth,
			s.printer.Sprintf("Started %s, carried %d envelopes, %d overdrawn", result.TargetMonth.String(), len(result.Carries), len(result.Overdrafts)),
			details{"sourceMonth": result.SourceMonth, "targetMonth": result.TargetMonth, "carries": result.Carries, "overdrafts": result.Overdrafts},
			nil,
		)
	})
	if err != nil {
		return
	}

	overdraftsTotal.Add(float64(len(result.Overdrafts)))
	return
}

// CopyEnvelopesToMonth carries the balances of the envelopes with rollover
// enabled from the source month into the target month.
func (s *Service) CopyEnvelopesToMonth(ctx context.Context, caller Caller, source, target types.Month) (result RolloverResult, err error) {
	if source.IsZero() || target.IsZero() {
		return result, ErrMonthMissing
	}

	if source.Equal(target) {
		return result, ErrSameMonth
	}

	err = s.command(ctx, caller, func(st *store) (*models.ActivityLogEntry, error) {
		var budget models.MonthlyBudget
		result, budget, err = s.rollover(st, source, target, true)
		if err != nil {
			return nil, err
		}

		return newEntry(
			models.ActionEnvelopesCopied,
			budget.ID,
			target,
			s.printer.Sprintf("Copied %d envelopes from %s to %s", len(result.Carries), source.String(), target.String()),
			details{"sourceMonth": source, "targetMonth": target, "carries": result.Carries},
			nil,
		)
	})

	return
}

// rollover moves the balances of source into target. With rolloverOnly,
// envelopes without rollover are skipped. It returns the budget of the
// target month.
func (s *Service) rollover(st *store, source, target types.Month, rolloverOnly bool) (RolloverResult, models.MonthlyBudget, error) {
	result := RolloverResult{
		SourceMonth: source,
		TargetMonth: target,
		Carries:     []Carry{},
		Overdrafts:  []Overdraft{},
	}

	if err := st.lockMonths(source, target); err != nil {
		return result, models.MonthlyBudget{}, err
	}

	budget, err := st.lockMonth(target)
	if err != nil {
		return result, budget, err
	}

	var allocations []models.EnvelopeAllocation
	err = st.tx.
		Scopes(st.scope.Filter("envelope_allocations")).
		Where("envelope_allocations.month = ?", source).
		Preload("Envelope").
		Find(&allocations).Error
	if err != nil {
		return result, budget, err
	}

	sort.SliceStable(allocations, func(i, j int) bool {
		return allocations[i].Envelope.Position < allocations[j].Envelope.Position
	})

	var goals []models.SavingsGoal
	if err := st.tx.Scopes(st.scope.Filter("savings_goals")).Find(&goals).Error; err != nil {
		return result, budget, err
	}

	goalByEnvelope := make(map[uuid.UUID]*models.SavingsGoal, len(goals))
	for i := range goals {
		goalByEnvelope[goals[i].EnvelopeID] = &goals[i]
	}

	for _, allocation := range allocations {
		envelope := allocation.Envelope
		if rolloverOnly && !envelope.Rollover {
			continue
		}

		carry, overdraft := CarryOver(envelope, allocation, goalByEnvelope[envelope.ID])

		if overdraft.IsPositive() {
			result.Overdrafts = append(result.Overdrafts, Overdraft{
				EnvelopeID:   envelope.ID,
				EnvelopeName: envelope.Name,
				Amount:       overdraft,
			})
		}

		if _, err := st.ensureAllocation(envelope.ID, target); err != nil {
			return result, budget, err
		}

		if !carry.IsPositive() {
			continue
		}

		if _, err := st.AdjustAllocation(envelope.ID, target, carry); err != nil {
			return result, budget, err
		}

		err := st.tx.Create(&models.RolloverHistoryEntry{
			Scope:        st.scope,
			EnvelopeID:   envelope.ID,
			EnvelopeName: envelope.Name,
			SourceMonth:  source,
			TargetMonth:  target,
			Amount:       carry,
			Strategy:     envelope.RolloverStrategy,
		}).Error
		if err != nil {
			return result, budget, err
		}

		result.Carries = append(result.Carries, Carry{
			EnvelopeID:   envelope.ID,
			EnvelopeName: envelope.Name,
			Strategy:     envelope.RolloverStrategy,
			Amount:       carry,
		})
	}

	return result, budget, nil
}
