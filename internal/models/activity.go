package models

import (
	"encoding/json"
	"time"

	"github.com/envelope-zero/ledger/internal/types"
	"github.com/google/uuid"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// ActivityAction is the kind of command an activity log entry records.
type ActivityAction string

const (
	ActionIncomeAdded     ActivityAction = "income_added"
	ActionIncomeUpdated   ActivityAction = "income_updated"
	ActionIncomeDeleted   ActivityAction = "income_deleted"
	ActionAllocationMade  ActivityAction = "allocation_made"
	ActionTransferMade    ActivityAction = "transfer_made"
	ActionEnvelopeCreated ActivityAction = "envelope_created"
	ActionEnvelopeUpdated ActivityAction = "envelope_updated"
	ActionEnvelopeDeleted ActivityAction = "envelope_deleted"
	ActionExpenseAdded    ActivityAction = "expense_added"
	ActionExpenseUpdated  ActivityAction = "expense_updated"
	ActionExpenseDeleted  ActivityAction = "expense_deleted"
	ActionExpenseSplit    ActivityAction = "expense_split"
	ActionGoalSet         ActivityAction = "goal_set"
	ActionGoalDeleted     ActivityAction = "goal_deleted"
	ActionMonthStarted    ActivityAction = "month_started"
	ActionEnvelopesCopied ActivityAction = "envelopes_copied"
)

// undoable is the fixed list of actions that can be reversed.
var undoable = []ActivityAction{
	ActionIncomeAdded,
	ActionIncomeDeleted,
	ActionAllocationMade,
	ActionTransferMade,
	ActionEnvelopeCreated,
	ActionEnvelopeDeleted,
	ActionExpenseAdded,
	ActionExpenseDeleted,
}

// Undoable reports if the action is on the list of reversible actions.
func (a ActivityAction) Undoable() bool {
	return slices.Contains(undoable, a)
}

// ActivityStatus is the undo state of an activity log entry. The only
// allowed transition is from active to undone.
type ActivityStatus string

const (
	ActivityActive ActivityStatus = "active"
	ActivityUndone ActivityStatus = "undone"
)

// ActivityLogEntry records one ledger command together with the data
// needed to reverse it.
type ActivityLogEntry struct {
	DefaultModel
	Scope
	ActorID     string          `json:"actorId" example:"3d1c97c6-5b4f-4a55-8c0a-6c7d9d1f7f8b"` // The user who issued the command
	Action      ActivityAction  `json:"action" gorm:"index" example:"allocation_made"`
	EntityID    uuid.UUID       `json:"entityId" example:"4e743e94-6a4b-44d6-aba5-d77c82103fa7"` // The resource the command was applied to
	Month       types.Month     `json:"month" swaggertype:"string" example:"2024-03"`
	Description string          `json:"description" example:"Allocated 50.00 to Groceries"`
	Details     json.RawMessage `json:"details" swaggertype:"object"`
	UndoData    json.RawMessage `json:"undoData" swaggertype:"object"`
	Status      ActivityStatus  `json:"status" gorm:"index" example:"active"`
	UndoneAt    *time.Time      `json:"undoneAt" example:"2024-03-14T09:12:44Z"`
}

func (a *ActivityLogEntry) BeforeCreate(tx *gorm.DB) error {
	_ = a.DefaultModel.BeforeCreate(tx)

	if a.Status == "" {
		a.Status = ActivityActive
	}

	return a.Scope.Validate()
}

// Undoable reports if the entry can still be reversed.
func (a ActivityLogEntry) Undoable() bool {
	return a.Action.Undoable() && len(a.UndoData) > 0 && a.Status == ActivityActive
}
