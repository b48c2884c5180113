package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/envelope-zero/ledger/internal/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Undo reverses a logged activity.
//
// The entry is marked as undone before the reversal runs. If the reversal
// fails, the mark is removed again so that the entry can be undone later.
// Undoing an entry a second time fails with ErrAlreadyUndone.
func (s *Service) Undo(ctx context.Context, caller Caller, id uuid.UUID) (entry models.ActivityLogEntry, err error) {
	if err := caller.validate(); err != nil {
		return entry, err
	}

	scope := caller.Scope()
	db := s.db.WithContext(ctx)

	entry, err = first[models.ActivityLogEntry](newStore(db, scope), "activity_log_entries", id)
	if err != nil {
		return
	}

	if !entry.Action.Undoable() || len(entry.UndoData) == 0 {
		return entry, ErrNotUndoable
	}

	if entry.Status == models.ActivityUndone {
		undoTotal.WithLabelValues("conflict").Inc()
		return entry, ErrAlreadyUndone
	}

	payload, err := decodeUndo(entry)
	if err != nil {
		return
	}

	undoneAt := s.now().UTC()
	if err = setStatus(db, scope, entry.ID, models.ActivityActive, models.ActivityUndone, &undoneAt); err != nil {
		if errors.Is(err, ErrAlreadyUndone) {
			undoTotal.WithLabelValues("conflict").Inc()
		}
		return
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		return reverse(newStore(tx, scope), payload)
	})
	err = models.GeneralError(err)
	if err != nil {
		undoTotal.WithLabelValues("failed").Inc()

		if restoreErr := setStatus(db, scope, entry.ID, models.ActivityUndone, models.ActivityActive, nil); restoreErr != nil {
			log.Error().Err(restoreErr).Str("entry", entry.ID.String()).Msg("could not release the undo lock")
		} else {
			log.Warn().Err(err).Str("entry", entry.ID.String()).Str("action", string(entry.Action)).Msg("undo failed, lock released")
		}

		return entry, err
	}

	undoTotal.WithLabelValues("undone").Inc()
	entry.Status = models.ActivityUndone
	entry.UndoneAt = &undoneAt

	log.Debug().
		Str("scope", scope.String()).
		Str("actor", caller.UserID).
		Str("action", string(entry.Action)).
		Str("entry", entry.ID.String()).
		Msg("ledger undo")

	s.publish(ctx, entry)
	return entry, nil
}

// setStatus moves the entry from one status to another. It only writes if
// the entry still has the expected status.
func setStatus(db *gorm.DB, scope models.Scope, id uuid.UUID, from, to models.ActivityStatus, undoneAt *time.Time) error {
	res := db.Model(&models.ActivityLogEntry{}).
		Scopes(scope.Filter("activity_log_entries")).
		Where("activity_log_entries.id = ? AND activity_log_entries.status = ?", id, from).
		Updates(map[string]any{"status": to, "undone_at": undoneAt})
	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return ErrAlreadyUndone
	}

	return nil
}

// reverse runs the inverse of the logged command.
func reverse(st *store, payload undoPayload) error {
	switch p := payload.(type) {
	case *IncomeAddedUndo:
		income, err := st.income(p.IncomeID)
		if err != nil {
			return err
		}
		return deleteIncome(st, income)

	case *IncomeDeletedUndo:
		return addIncome(st, &models.Income{
			DefaultModel: models.DefaultModel{ID: p.IncomeID},
			Scope:        st.scope,
			Month:        p.Month,
			Date:         p.Date,
			Amount:       p.Amount,
			Description:  p.Description,
		})

	case *AllocationMadeUndo:
		if p.Amount.IsPositive() {
			_, _, err := deallocate(st, p.Month, p.EnvelopeID, p.Amount)
			return err
		}
		_, _, err := allocate(st, p.Month, p.EnvelopeID, p.Amount.Neg())
		return err

	case *TransferMadeUndo:
		_, _, _, err := transfer(st, p.Month, p.To, p.From, p.Amount)
		return err

	case *EnvelopeCreatedUndo:
		envelope, err := st.envelope(p.EnvelopeID)
		if err != nil {
			return err
		}

		used, err := hasTransactions(st, envelope.ID)
		if err != nil {
			return err
		}

		if used {
			return ErrEnvelopeHasTransactions
		}

		_, _, err = deleteEnvelope(st, envelope, p.Month)
		return err

	case *EnvelopeDeletedUndo:
		return restoreEnvelope(st, p)

	case *ExpenseAddedUndo:
		transaction, err := st.transaction(p.TransactionID)
		if err != nil {
			return err
		}
		_, err = deleteTransaction(st, transaction)
		return err

	case *ExpenseDeletedUndo:
		_, err := addTransaction(st, &models.Transaction{
			DefaultModel: models.DefaultModel{ID: p.TransactionID},
			Scope:        st.scope,
			EnvelopeID:   p.EnvelopeID,
			Date:         p.Date,
			Amount:       p.Amount,
			Description:  p.Description,
			Merchant:     p.Merchant,
			Notes:        p.Notes,
			ReceiptURL:   p.ReceiptURL,
		}, p.Splits)
		return err
	}

	return fmt.Errorf("%w: %T", ErrNotUndoable, payload)
}
