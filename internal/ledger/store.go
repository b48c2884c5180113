package ledger

import (
	"sort"

	"github.com/envelope-zero/ledger/internal/models"
	"github.com/envelope-zero/ledger/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// store wraps a database session, usually a transaction, and limits
// every read and write to one scope.
type store struct {
	tx    *gorm.DB
	scope models.Scope
}

func newStore(tx *gorm.DB, scope models.Scope) *store {
	return &store{tx: tx, scope: scope}
}

// counter is a column of an envelope allocation.
type counter int

const (
	allocatedCounter counter = iota
	spentCounter
)

// forUpdate returns a session that locks the selected rows until the
// transaction ends. SQLite has no row locks, it serializes all writers.
func (s *store) forUpdate() *gorm.DB {
	if models.IsSQLite(s.tx) {
		return s.tx
	}

	return s.tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// lockMonth makes sure the monthly budget for the month exists and
// locks it. All writes for the month happen while holding this lock.
func (s *store) lockMonth(month types.Month) (models.MonthlyBudget, error) {
	err := s.tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&models.MonthlyBudget{
		UserID:      s.scope.UserID,
		HouseholdID: s.scope.HouseholdID,
		Month:       month,
	}).Error
	if err != nil {
		return models.MonthlyBudget{}, err
	}

	var budget models.MonthlyBudget
	err = s.forUpdate().
		Scopes(s.scope.Filter("monthly_budgets")).
		Where("monthly_budgets.month = ?", month).
		Take(&budget).Error

	return budget, err
}

// lockMonths locks several months in ascending order.
func (s *store) lockMonths(months ...types.Month) error {
	sort.Slice(months, func(i, j int) bool {
		return months[i].Before(months[j])
	})

	for _, m := range months {
		if _, err := s.lockMonth(m); err != nil {
			return err
		}
	}

	return nil
}

// AdjustUnallocatedPool adds delta to the unallocated pool of the month.
func (s *store) AdjustUnallocatedPool(month types.Month, delta decimal.Decimal) (models.MonthlyBudget, error) {
	budget, err := s.lockMonth(month)
	if err != nil {
		return budget, err
	}

	budget.ToBeBudgeted = budget.ToBeBudgeted.Add(delta)
	err = s.tx.Model(&budget).Update("to_be_budgeted", budget.ToBeBudgeted).Error

	return budget, err
}

// allocation returns the allocation of the envelope for the month.
//
// A missing row is not an error, it is the zero state of every envelope
// in every month. exists reports which case applies.
func (s *store) allocation(envelopeID uuid.UUID, month types.Month) (a models.EnvelopeAllocation, exists bool, err error) {
	var rows []models.EnvelopeAllocation
	err = s.forUpdate().
		Scopes(s.scope.Filter("envelope_allocations")).
		Where("envelope_allocations.envelope_id = ? AND envelope_allocations.month = ?", envelopeID, month).
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return a, false, err
	}

	if len(rows) == 0 {
		return models.EnvelopeAllocation{
			EnvelopeID: envelopeID,
			Month:      month,
			Scope:      s.scope,
			Allocated:  decimal.Zero,
			Spent:      decimal.Zero,
		}, false, nil
	}

	return rows[0], true, nil
}

// applyDelta is the single primitive all counter mutations go through.
//
// It adds delta to the counter of the allocation and floors the result
// at zero. A missing allocation row is created for positive deltas only,
// subtracting from the zero state leaves it absent.
func (s *store) applyDelta(envelopeID uuid.UUID, month types.Month, c counter, delta decimal.Decimal) (models.EnvelopeAllocation, error) {
	if _, err := s.lockMonth(month); err != nil {
		return models.EnvelopeAllocation{}, err
	}

	a, exists, err := s.allocation(envelopeID, month)
	if err != nil {
		return a, err
	}

	if !exists && !delta.IsPositive() {
		return a, nil
	}

	value := &a.Allocated
	column := "allocated"
	if c == spentCounter {
		value = &a.Spent
		column = "spent"
	}

	*value = decimal.Max(decimal.Zero, value.Add(delta))

	if !exists {
		return a, s.tx.Create(&a).Error
	}

	return a, s.tx.Model(&a).Update(column, *value).Error
}

// AdjustAllocation adds the signed delta to the allocated amount.
func (s *store) AdjustAllocation(envelopeID uuid.UUID, month types.Month, delta decimal.Decimal) (models.EnvelopeAllocation, error) {
	return s.applyDelta(envelopeID, month, allocatedCounter, delta)
}

// IncrementSpent adds amount to the spent amount.
func (s *store) IncrementSpent(envelopeID uuid.UUID, month types.Month, amount decimal.Decimal) (models.EnvelopeAllocation, error) {
	return s.applyDelta(envelopeID, month, spentCounter, amount)
}

// DecrementSpent subtracts amount from the spent amount, never going below zero.
func (s *store) DecrementSpent(envelopeID uuid.UUID, month types.Month, amount decimal.Decimal) (models.EnvelopeAllocation, error) {
	return s.applyDelta(envelopeID, month, spentCounter, amount.Neg())
}

// ensureAllocation creates a zero allocation if the envelope has none for the month.
func (s *store) ensureAllocation(envelopeID uuid.UUID, month types.Month) (models.EnvelopeAllocation, error) {
	if _, err := s.lockMonth(month); err != nil {
		return models.EnvelopeAllocation{}, err
	}

	a, exists, err := s.allocation(envelopeID, month)
	if err != nil || exists {
		return a, err
	}

	return a, s.tx.Create(&a).Error
}

// first returns the resource of the scope with the id. The error wraps
// models.ErrResourceNotFound when there is none.
func first[T any](s *store, table string, id uuid.UUID) (T, error) {
	var resource T
	err := s.tx.Scopes(s.scope.Filter(table)).First(&resource, table+".id = ?", id).Error
	return resource, err
}

func (s *store) envelope(id uuid.UUID) (models.Envelope, error) {
	return first[models.Envelope](s, "envelopes", id)
}

func (s *store) transaction(id uuid.UUID) (models.Transaction, error) {
	return first[models.Transaction](s, "transactions", id)
}

func (s *store) income(id uuid.UUID) (models.Income, error) {
	return first[models.Income](s, "incomes", id)
}

func (s *store) splits(transactionID uuid.UUID) (splits []models.TransactionSplit, err error) {
	err = s.tx.
		Where(&models.TransactionSplit{TransactionID: transactionID}).
		Order("created_at ASC").
		Find(&splits).Error
	return
}
