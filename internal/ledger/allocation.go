package ledger

import (
	"context"
	"fmt"

	"github.com/envelope-zero/ledger/internal/models"
	"github.com/envelope-zero/ledger/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func insufficient(requested, available decimal.Decimal) error {
	return fmt.Errorf("%w: %s requested, %s available", ErrInsufficientFunds, requested.StringFixed(2), available.StringFixed(2))
}

// Allocate moves money from the unallocated pool of the caller's month into the envelope.
func (s *Service) Allocate(ctx context.Context, caller Caller, envelopeID uuid.UUID, amount decimal.Decimal) (allocation models.EnvelopeAllocation, err error) {
	if err := caller.requireMonth(); err != nil {
		return allocation, err
	}

	err = s.command(ctx, caller, func(st *store) (*models.ActivityLogEntry, error) {
		var envelope models.Envelope
		envelope, allocation, err = allocate(st, caller.Month, envelopeID, amount)
		if err != nil {
			return nil, err
		}

		return newEntry(
			models.ActionAllocationMade,
			envelope.ID,
			caller.Month,
			s.printer.Sprintf("Allocated %s to %s", s.amount(amount), envelope.Name),
			details{"envelope": envelope.Name, "amount": amount},
			AllocationMadeUndo{EnvelopeID: envelope.ID, Month: caller.Month, Amount: amount},
		)
	})

	return
}

// Deallocate moves money from the envelope back into the unallocated pool.
// Only the available balance of the envelope can be withdrawn.
func (s *Service) Deallocate(ctx context.Context, caller Caller, envelopeID uuid.UUID, amount decimal.Decimal) (allocation models.EnvelopeAllocation, err error) {
	if err := caller.requireMonth(); err != nil {
		return allocation, err
	}

	err = s.command(ctx, caller, func(st *store) (*models.ActivityLogEntry, error) {
		var envelope models.Envelope
		envelope, allocation, err = deallocate(st, caller.Month, envelopeID, amount)
		if err != nil {
			return nil, err
		}

		return newEntry(
			models.ActionAllocationMade,
			envelope.ID,
			caller.Month,
			s.printer.Sprintf("Withdrew %s from %s", s.amount(amount), envelope.Name),
			details{"envelope": envelope.Name, "amount": amount.Neg()},
			AllocationMadeUndo{EnvelopeID: envelope.ID, Month: caller.Month, Amount: amount.Neg()},
		)
	})

	return
}

// TransferResult holds both allocations changed by a transfer.
type TransferResult struct {
	From models.EnvelopeAllocation `json:"from"`
	To   models.EnvelopeAllocation `json:"to"`
}

// Transfer moves allocated money between two envelopes without touching
// the unallocated pool.
func (s *Service) Transfer(ctx context.Context, caller Caller, from, to uuid.UUID, amount decimal.Decimal) (result TransferResult, err error) {
	if err := caller.requireMonth(); err != nil {
		return result, err
	}

	err = s.command(ctx, caller, func(st *store) (*models.ActivityLogEntry, error) {
		var source, destination models.Envelope
		source, destination, result, err = transfer(st, caller.Month, from, to, amount)
		if err != nil {
			return nil, err
		}

		return newEntry(
			models.ActionTransferMade,
			source.ID,
			caller.Month,
			s.printer.Sprintf("Moved %s from %s to %s", s.amount(amount), source.Name, destination.Name),
			details{"from": source.Name, "to": destination.Name, "amount": amount},
			TransferMadeUndo{From: from, To: to, Month: caller.Month, Amount: amount},
		)
	})

	return
}

func allocate(st *store, month types.Month, envelopeID uuid.UUID, amount decimal.Decimal) (models.Envelope, models.EnvelopeAllocation, error) {
	if !amount.IsPositive() {
		return models.Envelope{}, models.EnvelopeAllocation{}, models.ErrAmountNotPositive
	}

	envelope, err := st.envelope(envelopeID)
	if err != nil {
		return envelope, models.EnvelopeAllocation{}, err
	}

	budget, err := st.lockMonth(month)
	if err != nil {
		return envelope, models.EnvelopeAllocation{}, err
	}

	if amount.GreaterThan(budget.ToBeBudgeted) {
		return envelope, models.EnvelopeAllocation{}, insufficient(amount, budget.ToBeBudgeted)
	}

	if _, err := st.AdjustUnallocatedPool(month, amount.Neg()); err != nil {
		return envelope, models.EnvelopeAllocation{}, err
	}

	allocation, err := st.AdjustAllocation(envelope.ID, month, amount)
	return envelope, allocation, err
}

func deallocate(st *store, month types.Month, envelopeID uuid.UUID, amount decimal.Decimal) (models.Envelope, models.EnvelopeAllocation, error) {
	if !amount.IsPositive() {
		return models.Envelope{}, models.EnvelopeAllocation{}, models.ErrAmountNotPositive
	}

	envelope, err := st.envelope(envelopeID)
	if err != nil {
		return envelope, models.EnvelopeAllocation{}, err
	}

	if _, err := st.lockMonth(month); err != nil {
		return envelope, models.EnvelopeAllocation{}, err
	}

	allocation, _, err := st.allocation(envelope.ID, month)
	if err != nil {
		return envelope, allocation, err
	}

	if available := allocation.Available(); amount.GreaterThan(available) {
		return envelope, allocation, insufficient(amount, decimal.Max(decimal.Zero, available))
	}

	if _, err := st.AdjustUnallocatedPool(month, amount); err != nil {
		return envelope, allocation, err
	}

	allocation, err = st.AdjustAllocation(envelope.ID, month, amount.Neg())
	return envelope, allocation, err
}

func transfer(st *store, month types.Month, from, to uuid.UUID, amount decimal.Decimal) (source, destination models.Envelope, result TransferResult, err error) {
	if from == to {
		return source, destination, result, ErrTransferSameEnvelope
	}

	if !amount.IsPositive() {
		return source, destination, result, models.ErrAmountNotPositive
	}

	if source, err = st.envelope(from); err != nil {
		return
	}

	if destination, err = st.envelope(to); err != nil {
		return
	}

	if _, err = st.lockMonth(month); err != nil {
		return
	}

	allocation, _, err := st.allocation(source.ID, month)
	if err != nil {
		return
	}

	if available := allocation.Available(); amount.GreaterThan(available) {
		return source, destination, result, insufficient(amount, decimal.Max(decimal.Zero, available))
	}

	if result.From, err = st.AdjustAllocation(source.ID, month, amount.Neg()); err != nil {
		return
	}

	result.To, err = st.AdjustAllocation(destination.ID, month, amount)
	return
}
