package models

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrScopeMissing   = errors.New("either a user or a household must own the resource")
	ErrScopeAmbiguous = errors.New("a resource can only be owned by a user or by a household, not both")
)

// Scope is the owner of a ledger row: an individual user or a household.
// Exactly one of the fields is set.
type Scope struct {
	UserID      string `json:"userId,omitempty" gorm:"index" example:"3d1c97c6-5b4f-4a55-8c0a-6c7d9d1f7f8b"`      // The user owning the resource
	HouseholdID string `json:"householdId,omitempty" gorm:"index" example:"a0f4c8ab-3ba0-4a04-9c9e-1e1a5b8cf7a4"` // The household owning the resource
}

// UserScope returns the scope of an individual user.
func UserScope(id string) Scope {
	return Scope{UserID: id}
}

// HouseholdScope returns the scope of a household.
func HouseholdScope(id string) Scope {
	return Scope{HouseholdID: id}
}

// Validate reports if exactly one owner is set.
func (s Scope) Validate() error {
	if s.UserID == "" && s.HouseholdID == "" {
		return ErrScopeMissing
	}

	if s.UserID != "" && s.HouseholdID != "" {
		return ErrScopeAmbiguous
	}

	return nil
}

// Filter returns a gorm scope that limits a query to the rows of table owned by s.
//
// Both columns are always compared so that household rows never match a user
// filter and vice versa.
func (s Scope) Filter(table string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.
			Where(table+".user_id = ?", s.UserID).
			Where(table+".household_id = ?", s.HouseholdID)
	}
}

// String returns a human readable representation of the owner.
func (s Scope) String() string {
	if s.HouseholdID != "" {
		return "household:" + s.HouseholdID
	}

	return "user:" + s.UserID
}
