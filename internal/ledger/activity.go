package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/envelope-zero/ledger/internal/models"
	"github.com/envelope-zero/ledger/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// undoPayload is the data needed to reverse one kind of activity.
type undoPayload interface {
	action() models.ActivityAction
}

type IncomeAddedUndo struct {
	IncomeID uuid.UUID `json:"incomeId"`
}

type IncomeDeletedUndo struct {
	IncomeID    uuid.UUID       `json:"incomeId"`
	Month       types.Month     `json:"month"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
}

// AllocationMadeUndo reverses an allocation. A negative amount is a withdrawal.
type AllocationMadeUndo struct {
	EnvelopeID uuid.UUID       `json:"envelopeId"`
	Month      types.Month     `json:"month"`
	Amount     decimal.Decimal `json:"amount"`
}

type TransferMadeUndo struct {
	From   uuid.UUID       `json:"from"`
	To     uuid.UUID       `json:"to"`
	Month  types.Month     `json:"month"`
	Amount decimal.Decimal `json:"amount"`
}

type EnvelopeCreatedUndo struct {
	EnvelopeID uuid.UUID   `json:"envelopeId"`
	Month      types.Month `json:"month"`
}

// EnvelopeDeletedUndo holds the deleted envelope and its allocation in
// the month it was deleted from.
type EnvelopeDeletedUndo struct {
	Envelope  models.Envelope `json:"envelope"`
	Month     types.Month     `json:"month"`
	Allocated decimal.Decimal `json:"allocated"`
	Spent     decimal.Decimal `json:"spent"`
	Refund    decimal.Decimal `json:"refund"`
}

type ExpenseAddedUndo struct {
	TransactionID uuid.UUID `json:"transactionId"`
}

type ExpenseDeletedUndo struct {
	TransactionID uuid.UUID       `json:"transactionId"`
	EnvelopeID    uuid.UUID       `json:"envelopeId"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	Merchant      string          `json:"merchant"`
	Notes         string          `json:"notes"`
	ReceiptURL    string          `json:"receiptUrl"`
	Date          time.Time       `json:"date"`
	Splits        []SplitPart     `json:"splits,omitempty"`
}

func (IncomeAddedUndo) action() models.ActivityAction     { return models.ActionIncomeAdded }
func (IncomeDeletedUndo) action() models.ActivityAction   { return models.ActionIncomeDeleted }
func (AllocationMadeUndo) action() models.ActivityAction  { return models.ActionAllocationMade }
func (TransferMadeUndo) action() models.ActivityAction    { return models.ActionTransferMade }
func (EnvelopeCreatedUndo) action() models.ActivityAction { return models.ActionEnvelopeCreated }
func (EnvelopeDeletedUndo) action() models.ActivityAction { return models.ActionEnvelopeDeleted }
func (ExpenseAddedUndo) action() models.ActivityAction    { return models.ActionExpenseAdded }
func (ExpenseDeletedUndo) action() models.ActivityAction  { return models.ActionExpenseDeleted }

// details are the human readable fields of an activity.
type details map[string]any

// newEntry builds the activity log entry for a command. undo is nil for
// actions that cannot be reversed.
func newEntry(action models.ActivityAction, entityID uuid.UUID, month types.Month, description string, d details, undo undoPayload) (*models.ActivityLogEntry, error) {
	entry := &models.ActivityLogEntry{
		Action:      action,
		EntityID:    entityID,
		Month:       month,
		Description: description,
	}

	if d != nil {
		raw, err := json.Marshal(d)
		if err != nil {
			return nil, err
		}
		entry.Details = raw
	}

	if undo != nil {
		if undo.action() != action {
			return nil, fmt.Errorf("undo data for %s cannot be stored on %s", undo.action(), action)
		}

		raw, err := json.Marshal(undo)
		if err != nil {
			return nil, err
		}
		entry.UndoData = raw
	}

	return entry, nil
}

// decodeUndo parses the undo data of the entry into the payload type of its action.
func decodeUndo(entry models.ActivityLogEntry) (undoPayload, error) {
	var p undoPayload

	switch entry.Action {
	case models.ActionIncomeAdded:
		p = &IncomeAddedUndo{}
	case models.ActionIncomeDeleted:
		p = &IncomeDeletedUndo{}
	case models.ActionAllocationMade:
		p = &AllocationMadeUndo{}
	case models.ActionTransferMade:
		p = &TransferMadeUndo{}
	case models.ActionEnvelopeCreated:
		p = &EnvelopeCreatedUndo{}
	case models.ActionEnvelopeDeleted:
		p = &EnvelopeDeletedUndo{}
	case models.ActionExpenseAdded:
		p = &ExpenseAddedUndo{}
	case models.ActionExpenseDeleted:
		p = &ExpenseDeletedUndo{}
	default:
		return nil, ErrNotUndoable
	}

	if err := json.Unmarshal(entry.UndoData, p); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotUndoable, err)
	}

	return p, nil
}

// ActivityFilter limits the activities that are listed. Zero values match everything.
type ActivityFilter struct {
	Month  types.Month
	Action models.ActivityAction
	Status models.ActivityStatus
	Offset int
	Limit  int
}

// Activities returns the activity log of the caller's scope, newest first.
func (s *Service) Activities(ctx context.Context, caller Caller, filter ActivityFilter) (entries []models.ActivityLogEntry, err error) {
	err = s.read(ctx, caller, func(st *store) error {
		q := st.tx.Scopes(st.scope.Filter("activity_log_entries"))

		if !filter.Month.IsZero() {
			q = q.Where("activity_log_entries.month = ?", filter.Month)
		}

		if filter.Action != "" {
			q = q.Where("activity_log_entries.action = ?", filter.Action)
		}

		if filter.Status != "" {
			q = q.Where("activity_log_entries.status = ?", filter.Status)
		}

		if filter.Limit > 0 {
			q = q.Limit(filter.Limit).Offset(filter.Offset)
		}

		return q.Order("activity_log_entries.created_at DESC").Find(&entries).Error
	})

	return
}

// Activity returns a single activity log entry.
func (s *Service) Activity(ctx context.Context, caller Caller, id uuid.UUID) (entry models.ActivityLogEntry, err error) {
	err = s.read(ctx, caller, func(st *store) error {
		entry, err = first[models.ActivityLogEntry](st, "activity_log_entries", id)
		return err
	})

	return
}
