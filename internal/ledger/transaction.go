package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/envelope-zero/ledger/internal/models"
	"github.com/envelope-zero/ledger/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SplitPart is the share of a transaction assigned to one envelope.
type SplitPart struct {
	EnvelopeID  uuid.UUID       `json:"envelopeId" example:"4e743e94-6a4b-44d6-aba5-d77c82103fa7"`
	Amount      decimal.Decimal `json:"amount" example:"4.5"`
	Description string          `json:"description" example:"Soap"`
}

// TransactionInput are the fields of a new transaction.
type TransactionInput struct {
	EnvelopeID  uuid.UUID       `json:"envelopeId" example:"4e743e94-6a4b-44d6-aba5-d77c82103fa7"`
	Amount      decimal.Decimal `json:"amount" example:"14.99"`
	Date        time.Time       `json:"date" example:"2024-03-12T00:00:00Z"` // Defaults to now
	Description string          `json:"description" example:"Weekly shopping"`
	Merchant    string          `json:"merchant" example:"Corner Market"`
	Notes       string          `json:"notes" example:""`
	ReceiptURL  string          `json:"receiptUrl" example:"https://example.com/receipts/1234.jpg"`
	Splits      []SplitPart     `json:"splits"` // If set, the transaction is created split over these envelopes
}

// TransactionUpdate are the changes to a transaction. Nil fields are not changed.
type TransactionUpdate struct {
	EnvelopeID  *uuid.UUID       `json:"envelopeId" example:"4e743e94-6a4b-44d6-aba5-d77c82103fa7"`
	Amount      *decimal.Decimal `json:"amount" example:"14.99"`
	Date        *time.Time       `json:"date" example:"2024-03-12T00:00:00Z"`
	Description *string          `json:"description" example:"Weekly shopping"`
	Merchant    *string          `json:"merchant" example:"Corner Market"`
	Notes       *string          `json:"notes" example:""`
	ReceiptURL  *string          `json:"receiptUrl" example:"https://example.com/receipts/1234.jpg"`
}

// AddTransaction records money spent from an envelope in the month of the date.
func (s *Service) AddTransaction(ctx context.Context, caller Caller, in TransactionInput) (transaction models.Transaction, err error) {
	if in.Date.IsZero() {
		in.Date = s.now()
	}

	transaction = models.Transaction{
		EnvelopeID:  in.EnvelopeID,
		Date:        in.Date,
		Amount:      in.Amount,
		Description: in.Description,
		Merchant:    in.Merchant,
		Notes:       in.Notes,
		ReceiptURL:  in.ReceiptURL,
	}

	err = s.command(ctx, caller, func(st *store) (*models.ActivityLogEntry, error) {
		transaction.Scope = st.scope

		envelope, err := addTransaction(st, &transaction, in.Splits)
		if err != nil {
			return nil, err
		}

		return newEntry(
			models.ActionExpenseAdded,
			transaction.ID,
			transaction.Month,
			s.expenseDescription("Spent %s on %s", transaction, envelope),
			details{"envelope": envelope.Name, "amount": transaction.Amount, "merchant": transaction.Merchant, "split": transaction.IsSplit},
			ExpenseAddedUndo{TransactionID: transaction.ID},
		)
	})

	return
}

// UpdateTransaction changes a transaction and moves its amount between
// envelopes and months as needed.
func (s *Service) UpdateTransaction(ctx context.Context, caller Caller, id uuid.UUID, update TransactionUpdate) (transaction models.Transaction, err error) {
	err = s.command(ctx, caller, func(st *store) (*models.ActivityLogEntry, error) {
		if transaction, err = st.transaction(id); err != nil {
			return nil, err
		}
		previous := transaction

		if transaction.IsSplit {
			if update.EnvelopeID != nil && *update.EnvelopeID != transaction.EnvelopeID {
				return nil, ErrTransactionSplit
			}

			if update.Amount != nil && !update.Amount.Equal(transaction.Amount) {
				return nil, ErrTransactionSplit
			}
		}

		if update.Amount != nil {
			if !update.Amount.IsPositive() {
				return nil, models.ErrAmountNotPositive
			}
			transaction.Amount = *update.Amount
		}

		if update.EnvelopeID != nil {
			transaction.EnvelopeID = *update.EnvelopeID
		}

		if update.Date != nil {
			transaction.Date = update.Date.UTC()
		}
		transaction.Month = types.MonthOf(transaction.Date)

		if update.Description != nil {
			transaction.Description = *update.Description
		}

		if update.Merchant != nil {
			transaction.Merchant = *update.Merchant
		}

		if update.Notes != nil {
			transaction.Notes = *update.Notes
		}

		if update.ReceiptURL != nil {
			transaction.ReceiptURL = *update.ReceiptURL
		}

		envelope, err := st.envelope(transaction.EnvelopeID)
		if err != nil {
			return nil, err
		}

		if err := st.lockMonths(previous.Month, transaction.Month); err != nil {
			return nil, err
		}

		if err := moveSpent(st, previous, transaction); err != nil {
			return nil, err
		}

		if err := st.tx.Save(&transaction).Error; err != nil {
			return nil, err
		}

		return newEntry(
			models.ActionExpenseUpdated,
			transaction.ID,
			transaction.Month,
			s.expenseDescription("Updated expense of %s in %s", transaction, envelope),
			details{"envelope": envelope.Name, "amount": transaction.Amount, "previousAmount": previous.Amount},
			nil,
		)
	})

	return
}

// moveSpent applies the change from previous to current to the spent counters.
func moveSpent(st *store, previous, current models.Transaction) error {
	if current.IsSplit {
		if previous.Month.Equal(current.Month) {
			return nil
		}

		splits, err := st.splits(current.ID)
		if err != nil {
			return err
		}

		for _, split := range splits {
			if _, err := st.DecrementSpent(split.EnvelopeID, previous.Month, split.Amount); err != nil {
				return err
			}

			if _, err := st.IncrementSpent(split.EnvelopeID, current.Month, split.Amount); err != nil {
				return err
			}
		}

		return nil
	}

	if previous.EnvelopeID == current.EnvelopeID && previous.Month.Equal(current.Month) {
		delta := current.Amount.Sub(previous.Amount)
		if delta.IsZero() {
			return nil
		}

		_, err := st.applyDelta(current.EnvelopeID, current.Month, spentCounter, delta)
		return err
	}

	if _, err := st.DecrementSpent(previous.EnvelopeID, previous.Month, previous.Amount); err != nil {
		return err
	}

	_, err := st.IncrementSpent(current.EnvelopeID, current.Month, current.Amount)
	return err
}

// DeleteTransaction removes a transaction and its amount from the spent counters.
func (s *Service) DeleteTransaction(ctx context.Context, caller Caller, id uuid.UUID) error {
	return s.command(ctx, caller, func(st *store) (*models.ActivityLogEntry, error) {
		transaction, err := st.transaction(id)
		if err != nil {
			return nil, err
		}

		envelope, err := st.envelope(transaction.EnvelopeID)
		if err != nil {
			return nil, err
		}

		splits, err := deleteTransaction(st, transaction)
		if err != nil {
			return nil, err
		}

		parts := make([]SplitPart, 0, len(splits))
		for _, split := range splits {
			parts = append(parts, SplitPart{EnvelopeID: split.EnvelopeID, Amount: split.Amount, Description: split.Description})
		}

		return newEntry(
			models.ActionExpenseDeleted,
			transaction.ID,
			transaction.Month,
			s.expenseDescription("Deleted expense of %s in %s", transaction, envelope),
			details{"envelope": envelope.Name, "amount": transaction.Amount, "merchant": transaction.Merchant},
			ExpenseDeletedUndo{
				TransactionID: transaction.ID,
				EnvelopeID:    transaction.EnvelopeID,
				Amount:        transaction.Amount,
				Description:   transaction.Description,
				Merchant:      transaction.Merchant,
				Notes:         transaction.Notes,
				ReceiptURL:    transaction.ReceiptURL,
				Date:          transaction.Date,
				Splits:        parts,
			},
		)
	})
}

// SplitTransaction distributes the amount of a transaction over several envelopes.
func (s *Service) SplitTransaction(ctx context.Context, caller Caller, id uuid.UUID, parts []SplitPart) (transaction models.Transaction, splits []models.TransactionSplit, err error) {
	err = s.command(ctx, caller, func(st *store) (*models.ActivityLogEntry, error) {
		if transaction, err = st.transaction(id); err != nil {
			return nil, err
		}

		if transaction.IsSplit {
			return nil, ErrTransactionAlreadySplit
		}

		if err := validateSplits(st, transaction.Amount, parts); err != nil {
			return nil, err
		}

		if _, err := st.lockMonth(transaction.Month); err != nil {
			return nil, err
		}

		if _, err := st.DecrementSpent(transaction.EnvelopeID, transaction.Month, transaction.Amount); err != nil {
			return nil, err
		}

		if splits, err = createSplits(st, transaction, parts); err != nil {
			return nil, err
		}

		transaction.IsSplit = true
		if err := st.tx.Model(&transaction).Update("is_split", true).Error; err != nil {
			return nil, err
		}

		return newEntry(
			models.ActionExpenseSplit,
			transaction.ID,
			transaction.Month,
			s.printer.Sprintf("Split expense of %s into %d parts", s.amount(transaction.Amount), len(parts)),
			details{"amount": transaction.Amount, "parts": parts},
			nil,
		)
	})

	return
}

// addTransaction creates the transaction and adds it to the spent counters.
// With parts, the transaction is created split.
func addTransaction(st *store, transaction *models.Transaction, parts []SplitPart) (models.Envelope, error) {
	envelope, err := st.envelope(transaction.EnvelopeID)
	if err != nil {
		return envelope, err
	}

	if !transaction.Amount.IsPositive() {
		return envelope, models.ErrAmountNotPositive
	}

	if len(parts) > 0 {
		if err := validateSplits(st, transaction.Amount, parts); err != nil {
			return envelope, err
		}
		transaction.IsSplit = true
	}

	transaction.Month = types.MonthOf(transaction.Date.UTC())
	if _, err := st.lockMonth(transaction.Month); err != nil {
		return envelope, err
	}

	if err := st.tx.Create(transaction).Error; err != nil {
		return envelope, err
	}

	if transaction.IsSplit {
		_, err = createSplits(st, *transaction, parts)
		return envelope, err
	}

	_, err = st.IncrementSpent(transaction.EnvelopeID, transaction.Month, transaction.Amount)
	return envelope, err
}

// deleteTransaction deletes the transaction and subtracts it from the
// spent counters. It returns the splits the transaction had.
func deleteTransaction(st *store, transaction models.Transaction) ([]models.TransactionSplit, error) {
	if _, err := st.lockMonth(transaction.Month); err != nil {
		return nil, err
	}

	var splits []models.TransactionSplit
	if transaction.IsSplit {
		var err error
		if splits, err = st.splits(transaction.ID); err != nil {
			return nil, err
		}

		for _, split := range splits {
			if _, err := st.DecrementSpent(split.EnvelopeID, transaction.Month, split.Amount); err != nil {
				return nil, err
			}
		}

		if err := st.tx.Where(&models.TransactionSplit{TransactionID: transaction.ID}).Delete(&models.TransactionSplit{}).Error; err != nil {
			return nil, err
		}
	} else if _, err := st.DecrementSpent(transaction.EnvelopeID, transaction.Month, transaction.Amount); err != nil {
		return nil, err
	}

	return splits, st.tx.Delete(&transaction).Error
}

// validateSplits checks that the parts are positive, reference envelopes
// of the scope and add up to the amount.
func validateSplits(st *store, amount decimal.Decimal, parts []SplitPart) error {
	if len(parts) == 0 {
		return ErrSplitEmpty
	}

	sum := decimal.Zero
	for _, part := range parts {
		if !part.Amount.IsPositive() {
			return models.ErrAmountNotPositive
		}

		if _, err := st.envelope(part.EnvelopeID); err != nil {
			return err
		}

		sum = sum.Add(part.Amount)
	}

	if !sum.Equal(amount) {
		return fmt.Errorf("%w: the parts add up to %s, the transaction is %s", ErrSplitSumMismatch, sum.StringFixed(2), amount.StringFixed(2))
	}

	return nil
}

// createSplits stores the parts and adds each one to the spent counter of its envelope.
func createSplits(st *store, transaction models.Transaction, parts []SplitPart) ([]models.TransactionSplit, error) {
	splits := make([]models.TransactionSplit, 0, len(parts))

	for _, part := range parts {
		split := models.TransactionSplit{
			TransactionID: transaction.ID,
			EnvelopeID:    part.EnvelopeID,
			Amount:        part.Amount,
			Description:   part.Description,
		}

		if err := st.tx.Create(&split).Error; err != nil {
			return nil, err
		}

		if _, err := st.IncrementSpent(part.EnvelopeID, transaction.Month, part.Amount); err != nil {
			return nil, err
		}

		splits = append(splits, split)
	}

	return splits, nil
}

func (s *Service) expenseDescription(format string, transaction models.Transaction, envelope models.Envelope) string {
	description := s.printer.Sprintf(format, s.amount(transaction.Amount), envelope.Name)
	if transaction.Merchant != "" {
		description += s.printer.Sprintf(" at %s", transaction.Merchant)
	}

	return description
}
