package ledger

import (
	"context"
	"sort"
	"strings"

	"github.com/envelope-zero/ledger/internal/models"
	"github.com/envelope-zero/ledger/internal/types"
	"github.com/google/uuid"
	"github.com/ryanuber/go-glob"
	"github.com/shopspring/decimal"
)

// EnvelopeMonth is an envelope with its allocation in one month.
type EnvelopeMonth struct {
	models.Envelope
	Allocated decimal.Decimal     `json:"allocated" example:"100"`
	Spent     decimal.Decimal     `json:"spent" example:"40"`
	Balance   decimal.Decimal     `json:"balance" example:"60"`
	Goal      *models.SavingsGoal `json:"goal"`
}

// MonthOverview is the state of all envelopes of a scope in one month.
type MonthOverview struct {
	Month        types.Month     `json:"month" swaggertype:"string" example:"2024-03"`
	ToBeBudgeted decimal.Decimal `json:"toBeBudgeted" example:"500"`
	Income       decimal.Decimal `json:"income" example:"2500"`
	Allocated    decimal.Decimal `json:"allocated" example:"2000"`
	Spent        decimal.Decimal `json:"spent" example:"1200"`
	Balance      decimal.Decimal `json:"balance" example:"800"`
	Envelopes    []EnvelopeMonth `json:"envelopes"`
}

// Month returns the overview of the caller's month. Only envelopes with
// an allocation in the month are part of it.
func (s *Service) Month(ctx context.Context, caller Caller) (overview MonthOverview, err error) {
	if err := caller.requireMonth(); err != nil {
		return overview, err
	}

	err = s.read(ctx, caller, func(st *store) error {
		overview, err = monthOverview(st, caller.Month)
		return err
	})

	return
}

func monthOverview(st *store, month types.Month) (MonthOverview, error) {
	overview := MonthOverview{
		Month:        month,
		ToBeBudgeted: decimal.Zero,
		Income:       decimal.Zero,
		Allocated:    decimal.Zero,
		Spent:        decimal.Zero,
		Envelopes:    []EnvelopeMonth{},
	}

	var budgets []models.MonthlyBudget
	err := st.tx.
		Scopes(st.scope.Filter("monthly_budgets")).
		Where("monthly_budgets.month = ?", month).
		Limit(1).
		Find(&budgets).Error
	if err != nil {
		return overview, err
	}

	if len(budgets) > 0 {
		overview.ToBeBudgeted = budgets[0].ToBeBudgeted
	}

	incomes, err := incomesOf(st, month)
	if err != nil {
		return overview, err
	}

	for _, income := range incomes {
		overview.Income = overview.Income.Add(income.Amount)
	}

	var allocations []models.EnvelopeAllocation
	err = st.tx.
		Scopes(st.scope.Filter("envelope_allocations")).
		Where("envelope_allocations.month = ?", month).
		Preload("Envelope").
		Find(&allocations).Error
	if err != nil {
		return overview, err
	}

	var goals []models.SavingsGoal
	if err := st.tx.Scopes(st.scope.Filter("savings_goals")).Find(&goals).Error; err != nil {
		return overview, err
	}

	goalByEnvelope := make(map[uuid.UUID]*models.SavingsGoal, len(goals))
	for i := range goals {
		goalByEnvelope[goals[i].EnvelopeID] = &goals[i]
	}

	for _, a := range allocations {
		overview.Allocated = overview.Allocated.Add(a.Allocated)
		overview.Spent = overview.Spent.Add(a.Spent)

		overview.Envelopes = append(overview.Envelopes, EnvelopeMonth{
			Envelope:  a.Envelope,
			Allocated: a.Allocated,
			Spent:     a.Spent,
			Balance:   a.Available(),
			Goal:      goalByEnvelope[a.EnvelopeID],
		})
	}

	sort.SliceStable(overview.Envelopes, func(i, j int) bool {
		return overview.Envelopes[i].Position < overview.Envelopes[j].Position
	})

	overview.Balance = overview.Allocated.Sub(overview.Spent)
	return overview, nil
}

// Envelopes returns the envelopes of the scope ordered by position.
// If archived is set, only envelopes with that archived state are returned.
func (s *Service) Envelopes(ctx context.Context, caller Caller, archived *bool) (envelopes []models.Envelope, err error) {
	err = s.read(ctx, caller, func(st *store) error {
		q := st.tx.Scopes(st.scope.Filter("envelopes"))
		if archived != nil {
			q = q.Where("envelopes.archived = ?", *archived)
		}

		return q.Order("envelopes.position ASC, envelopes.name ASC").Find(&envelopes).Error
	})

	return
}

func (s *Service) Envelope(ctx context.Context, caller Caller, id uuid.UUID) (envelope models.Envelope, err error) {
	err = s.read(ctx, caller, func(st *store) error {
		envelope, err = st.envelope(id)
		return err
	})

	return
}

// TransactionFilter limits the transactions that are listed. Zero values match everything.
type TransactionFilter struct {
	Month      types.Month
	EnvelopeID uuid.UUID
	Merchant   string // Glob pattern, matched case insensitively
	Offset     int
	Limit      int
}

// Transactions returns the transactions of the scope, newest first.
func (s *Service) Transactions(ctx context.Context, caller Caller, filter TransactionFilter) (transactions []models.Transaction, err error) {
	err = s.read(ctx, caller, func(st *store) error {
		q := st.tx.Scopes(st.scope.Filter("transactions"))

		if !filter.Month.IsZero() {
			q = q.Where("transactions.month = ?", filter.Month)
		}

		if filter.EnvelopeID != uuid.Nil {
			q = q.Where("transactions.envelope_id = ?", filter.EnvelopeID)
		}

		return q.Order("transactions.date DESC, transactions.created_at DESC").Find(&transactions).Error
	})
	if err != nil {
		return
	}

	if filter.Merchant != "" {
		pattern := strings.ToLower(filter.Merchant)

		matched := make([]models.Transaction, 0, len(transactions))
		for _, t := range transactions {
			if glob.Glob(pattern, strings.ToLower(t.Merchant)) {
				matched = append(matched, t)
			}
		}
		transactions = matched
	}

	return paginate(transactions, filter.Offset, filter.Limit), nil
}

func paginate[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]

	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}

	return items
}

// Transaction returns a transaction and its splits.
func (s *Service) Transaction(ctx context.Context, caller Caller, id uuid.UUID) (transaction models.Transaction, splits []models.TransactionSplit, err error) {
	err = s.read(ctx, caller, func(st *store) error {
		if transaction, err = st.transaction(id); err != nil {
			return err
		}

		splits, err = st.splits(transaction.ID)
		return err
	})

	return
}

// Incomes returns the incomes of a month.
func (s *Service) Incomes(ctx context.Context, caller Caller) (incomes []models.Income, err error) {
	if err := caller.requireMonth(); err != nil {
		return incomes, err
	}

	err = s.read(ctx, caller, func(st *store) error {
		incomes, err = incomesOf(st, caller.Month)
		return err
	})

	return
}

func incomesOf(st *store, month types.Month) (incomes []models.Income, err error) {
	err = st.tx.
		Scopes(st.scope.Filter("incomes")).
		Where("incomes.month = ?", month).
		Order("incomes.date ASC, incomes.created_at ASC").
		Find(&incomes).Error
	return
}

// Goals returns all savings goals of the scope.
func (s *Service) Goals(ctx context.Context, caller Caller) (goals []models.SavingsGoal, err error) {
	err = s.read(ctx, caller, func(st *store) error {
		return st.tx.Scopes(st.scope.Filter("savings_goals")).Order("savings_goals.created_at ASC").Find(&goals).Error
	})

	return
}

// Goal returns the savings goal of an envelope.
func (s *Service) Goal(ctx context.Context, caller Caller, envelopeID uuid.UUID) (goal models.SavingsGoal, err error) {
	err = s.read(ctx, caller, func(st *store) error {
		if _, err := st.envelope(envelopeID); err != nil {
			return err
		}

		return st.tx.
			Scopes(st.scope.Filter("savings_goals")).
			Where("savings_goals.envelope_id = ?", envelopeID).
			First(&goal).Error
	})

	return
}

// RolloverHistory returns the carry-overs out of a month. With a zero month, all are returned.
func (s *Service) RolloverHistory(ctx context.Context, caller Caller, source types.Month) (entries []models.RolloverHistoryEntry, err error) {
	err = s.read(ctx, caller, func(st *store) error {
		q := st.tx.Scopes(st.scope.Filter("rollover_history_entries"))
		if !source.IsZero() {
			q = q.Where("rollover_history_entries.source_month = ?", source)
		}

		return q.Order("rollover_history_entries.created_at DESC").Find(&entries).Error
	})

	return
}

// Export is a read-only snapshot of one month.
type Export struct {
	MonthOverview
	Transactions []models.Transaction `json:"transactions"`
	Incomes      []models.Income      `json:"incomes"`
}

// Export returns the snapshot of the caller's month.
func (s *Service) Export(ctx context.Context, caller Caller) (export Export, err error) {
	if err := caller.requireMonth(); err != nil {
		return export, err
	}

	err = s.read(ctx, caller, func(st *store) error {
		if export.MonthOverview, err = monthOverview(st, caller.Month); err != nil {
			return err
		}

		if export.Incomes, err = incomesOf(st, caller.Month); err != nil {
			return err
		}

		return st.tx.
			Scopes(st.scope.Filter("transactions")).
			Where("transactions.month = ?", caller.Month).
			Order("transactions.date ASC, transactions.created_at ASC").
			Find(&export.Transactions).Error
	})

	return
}
