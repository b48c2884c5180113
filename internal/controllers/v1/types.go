package v1

import (
	"github.com/envelope-zero/ledger/internal/ledger"
	"github.com/envelope-zero/ledger/internal/types"
	ez_uuid "github.com/envelope-zero/ledger/internal/uuid"
)

// QueryScope identifies who is calling and which month they look at.
type QueryScope struct {
	User      string      `form:"user" binding:"required" example:"3d1c97c6-5b4f-4a55-8c0a-6c7d9d1f7f8b"` // The acting user
	Household string      `form:"household" example:"a0f4c8ab-3ba0-4a04-9c9e-1e1a5b8cf7a4"`               // The household the user acts for
	Month     types.Month `form:"month" example:"2024-03"`                                                // Year and month in YYYY-MM format
}

func (q QueryScope) caller() ledger.Caller {
	return ledger.Caller{
		UserID:      q.User,
		HouseholdID: q.Household,
		Month:       q.Month,
	}
}

type QueryPage struct {
	Offset int `form:"offset" binding:"gte=0"` // The offset of the first resource returned. Defaults to 0.
	Limit  int `form:"limit" binding:"gte=0"`  // Maximum number of resources to return. Defaults to all.
}

type URIID struct {
	ID ez_uuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}
