package ledger

import (
	"context"

	"github.com/envelope-zero/ledger/internal/models"
	"github.com/envelope-zero/ledger/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EnvelopeInput are the fields of a new envelope. Category and Rollover
// default to savings settings for envelopes with the piggy bank icon.
type EnvelopeInput struct {
	Name               string                  `json:"name" example:"Groceries"`
	Icon               string                  `json:"icon" example:"shopping-cart"`
	Color              string                  `json:"color" example:"#4caf50"`
	Category           *string                 `json:"category" example:"food"`
	Note               string                  `json:"note" example:"For the weekly shopping"`
	Rollover           *bool                   `json:"rollover" example:"true"`
	RolloverStrategy   models.RolloverStrategy `json:"rolloverStrategy" example:"full"`
	RolloverPercentage decimal.Decimal         `json:"rolloverPercentage" example:"0"`
	MaxRolloverAmount  decimal.Decimal         `json:"maxRolloverAmount" example:"0"`
}

// EnvelopeUpdate are the changes to an envelope. Nil fields are not changed.
type EnvelopeUpdate struct {
	Name               *string                  `json:"name" example:"Groceries"`
	Icon               *string                  `json:"icon" example:"shopping-cart"`
	Color              *string                  `json:"color" example:"#4caf50"`
	Category           *string                  `json:"category" example:"food"`
	Note               *string                  `json:"note" example:"For the weekly shopping"`
	Position           *int                     `json:"position" example:"3"`
	Archived           *bool                    `json:"archived" example:"false"`
	Rollover           *bool                    `json:"rollover" example:"true"`
	RolloverStrategy   *models.RolloverStrategy `json:"rolloverStrategy" example:"percentage"`
	RolloverPercentage *decimal.Decimal         `json:"rolloverPercentage" example:"50"`
	MaxRolloverAmount  *decimal.Decimal         `json:"maxRolloverAmount" example:"100"`
}

// CreateEnvelope appends an envelope to the scope and activates it in the caller's month.
func (s *Service) CreateEnvelope(ctx context.Context, caller Caller, in EnvelopeInput) (envelope models.Envelope, err error) {
	if err := caller.requireMonth(); err != nil {
		return envelope, err
	}

	envelope = models.Envelope{
		Name:               in.Name,
		Icon:               in.Icon,
		Color:              in.Color,
		Note:               in.Note,
		RolloverStrategy:   in.RolloverStrategy,
		RolloverPercentage: in.RolloverPercentage,
		MaxRolloverAmount:  in.MaxRolloverAmount,
	}

	if in.Icon == models.IconPiggyBank {
		envelope.Rollover = true
		envelope.Category = models.CategorySavings
	}

	if in.Category != nil {
		envelope.Category = *in.Category
	}

	if in.Rollover != nil {
		envelope.Rollover = *in.Rollover
	}

	err = s.command(ctx, caller, func(st *store) (*models.ActivityLogEntry, error) {
		envelope.Scope = st.scope

		var position struct{ Max int }
		err := st.tx.Model(&models.Envelope{}).
			Scopes(st.scope.Filter("envelopes")).
			Select("COALESCE(MAX(envelopes.position), -1) AS max").
			Scan(&position).Error
		if err != nil {
			return nil, err
		}
		envelope.Position = position.Max + 1

		if err := st.tx.Create(&envelope).Error; err != nil {
			return nil, err
		}

		if _, err := st.ensureAllocation(envelope.ID, caller.Month); err != nil {
			return nil, err
		}

		return newEntry(
			models.ActionEnvelopeCreated,
			envelope.ID,
			caller.Month,
			s.printer.Sprintf("Created envelope %s", envelope.Name),
			details{"name": envelope.Name, "icon": envelope.Icon, "category": envelope.Category},
			EnvelopeCreatedUndo{EnvelopeID: envelope.ID, Month: caller.Month},
		)
	})

	return
}

// UpdateEnvelope changes the settings of an envelope.
func (s *Service) UpdateEnvelope(ctx context.Context, caller Caller, id uuid.UUID, update EnvelopeUpdate) (envelope models.Envelope, err error) {
	err = s.command(ctx, caller, func(st *store) (*models.ActivityLogEntry, error) {
		if envelope, err = st.envelope(id); err != nil {
			return nil, err
		}

		setIfNotNil(&envelope.Name, update.Name)
		setIfNotNil(&envelope.Icon, update.Icon)
		setIfNotNil(&envelope.Color, update.Color)
		setIfNotNil(&envelope.Category, update.Category)
		setIfNotNil(&envelope.Note, update.Note)
		setIfNotNil(&envelope.Position, update.Position)
		setIfNotNil(&envelope.Archived, update.Archived)
		setIfNotNil(&envelope.Rollover, update.Rollover)
		setIfNotNil(&envelope.RolloverStrategy, update.RolloverStrategy)
		setIfNotNil(&envelope.RolloverPercentage, update.RolloverPercentage)
		setIfNotNil(&envelope.MaxRolloverAmount, update.MaxRolloverAmount)

		if err := st.tx.Save(&envelope).Error; err != nil {
			return nil, err
		}

		return newEntry(
			models.ActionEnvelopeUpdated,
			envelope.ID,
			caller.Month,
			s.printer.Sprintf("Updated envelope %s", envelope.Name),
			details{"name": envelope.Name, "rollover": envelope.Rollover, "rolloverStrategy": envelope.RolloverStrategy},
			nil,
		)
	})

	return
}

// DeleteEnvelope returns the unspent balance of the caller's month to the
// unallocated pool and deletes the envelope with everything belonging to it.
func (s *Service) DeleteEnvelope(ctx context.Context, caller Caller, id uuid.UUID) error {
	if err := caller.requireMonth(); err != nil {
		return err
	}

	return s.command(ctx, caller, func(st *store) (*models.ActivityLogEntry, error) {
		envelope, err := st.envelope(id)
		if err != nil {
			return nil, err
		}

		allocation, refund, err := deleteEnvelope(st, envelope, caller.Month)
		if err != nil {
			return nil, err
		}

		return newEntry(
			models.ActionEnvelopeDeleted,
			envelope.ID,
			caller.Month,
			s.printer.Sprintf("Deleted envelope %s, returned %s", envelope.Name, s.amount(refund)),
			details{"name": envelope.Name, "refund": refund},
			EnvelopeDeletedUndo{
				Envelope:  envelope,
				Month:     caller.Month,
				Allocated: allocation.Allocated,
				Spent:     allocation.Spent,
				Refund:    refund,
			},
		)
	})
}

// deleteEnvelope refunds the available balance of the month and deletes the envelope.
func deleteEnvelope(st *store, envelope models.Envelope, month types.Month) (models.EnvelopeAllocation, decimal.Decimal, error) {
	if _, err := st.lockMonth(month); err != nil {
		return models.EnvelopeAllocation{}, decimal.Zero, err
	}

	allocation, _, err := st.allocation(envelope.ID, month)
	if err != nil {
		return allocation, decimal.Zero, err
	}

	refund := decimal.Max(decimal.Zero, allocation.Available())
	if refund.IsPositive() {
		if _, err := st.AdjustUnallocatedPool(month, refund); err != nil {
			return allocation, refund, err
		}
	}

	return allocation, refund, st.tx.Delete(&envelope).Error
}

// restoreEnvelope recreates a deleted envelope with its ID and its
// allocation and takes the refund back from the unallocated pool.
func restoreEnvelope(st *store, p *EnvelopeDeletedUndo) error {
	budget, err := st.lockMonth(p.Month)
	if err != nil {
		return err
	}

	if p.Refund.GreaterThan(budget.ToBeBudgeted) {
		return insufficient(p.Refund, budget.ToBeBudgeted)
	}

	envelope := p.Envelope
	envelope.Scope = st.scope
	if err := st.tx.Create(&envelope).Error; err != nil {
		return err
	}

	if p.Allocated.IsPositive() || p.Spent.IsPositive() {
		err = st.tx.Create(&models.EnvelopeAllocation{
			EnvelopeID: envelope.ID,
			Month:      p.Month,
			Scope:      st.scope,
			Allocated:  p.Allocated,
			Spent:      p.Spent,
		}).Error
	} else {
		_, err = st.ensureAllocation(envelope.ID, p.Month)
	}
	if err != nil {
		return err
	}

	if p.Refund.IsPositive() {
		_, err = st.AdjustUnallocatedPool(p.Month, p.Refund.Neg())
	}

	return err
}

// hasTransactions reports if any transaction or split references the envelope.
func hasTransactions(st *store, envelopeID uuid.UUID) (bool, error) {
	var transactions, splits int64

	err := st.tx.Model(&models.Transaction{}).
		Scopes(st.scope.Filter("transactions")).
		Where("transactions.envelope_id = ?", envelopeID).
		Count(&transactions).Error
	if err != nil {
		return false, err
	}

	err = st.tx.Model(&models.TransactionSplit{}).
		Where(&models.TransactionSplit{EnvelopeID: envelopeID}).
		Count(&splits).Error

	return transactions+splits > 0, err
}

func setIfNotNil[T any](target *T, value *T) {
	if value != nil {
		*target = *value
	}
}
