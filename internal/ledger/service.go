// Package ledger implements the envelope ledger: the commands that move
// money between the unallocated pool, envelopes and transactions, the month
// rollover and the activity log with its undo engine.
package ledger

import (
	"context"
	"time"

	"github.com/envelope-zero/ledger/internal/models"
	"github.com/envelope-zero/ledger/internal/types"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gorm.io/gorm"
)

// Service executes ledger commands. Every command runs in one database
// transaction and records one activity log entry in it.
type Service struct {
	db        *gorm.DB
	publisher Publisher
	printer   *message.Printer
	now       func() time.Time
}

type Option func(*Service)

// WithPublisher sets the publisher that is notified of every recorded activity.
func WithPublisher(p Publisher) Option {
	return func(s *Service) {
		s.publisher = p
	}
}

// WithLocale sets the language activity descriptions are formatted in.
func WithLocale(tag language.Tag) Option {
	return func(s *Service) {
		s.printer = message.NewPrinter(tag)
	}
}

// WithClock replaces the clock used for undo timestamps and default dates.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func New(db *gorm.DB, opts ...Option) *Service {
	s := &Service{
		db:        db,
		publisher: noopPublisher{},
		printer:   message.NewPrinter(language.English),
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Caller is the context every ledger call is made in.
type Caller struct {
	UserID      string      // The acting user
	HouseholdID string      // If set, the household the user acts for
	Month       types.Month // The month the user is looking at
}

// Scope returns the owner of all rows the caller reads and writes.
func (c Caller) Scope() models.Scope {
	if c.HouseholdID != "" {
		return models.HouseholdScope(c.HouseholdID)
	}

	return models.UserScope(c.UserID)
}

func (c Caller) validate() error {
	if c.UserID == "" {
		return ErrUserMissing
	}

	return nil
}

func (c Caller) requireMonth() error {
	if err := c.validate(); err != nil {
		return err
	}

	if c.Month.IsZero() {
		return ErrMonthMissing
	}

	return nil
}

// command runs fn in a database transaction and appends the activity
// log entry fn returns in the same transaction.
func (s *Service) command(ctx context.Context, caller Caller, fn func(st *store) (*models.ActivityLogEntry, error)) error {
	if err := caller.validate(); err != nil {
		return err
	}

	scope := caller.Scope()

	var entry *models.ActivityLogEntry
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		e, err := fn(newStore(tx, scope))
		if err != nil {
			return err
		}

		e.Scope = scope
		e.ActorID = caller.UserID
		if err := tx.Create(e).Error; err != nil {
			return err
		}

		entry = e
		return nil
	})
	err = models.GeneralError(err)
	if err != nil {
		log.Debug().Err(err).Str("scope", scope.String()).Str("actor", caller.UserID).Msg("ledger command rejected")
		return err
	}

	commandsTotal.WithLabelValues(string(entry.Action)).Inc()
	log.Debug().
		Str("scope", scope.String()).
		Str("actor", caller.UserID).
		Str("action", string(entry.Action)).
		Str("entity", entry.EntityID.String()).
		Msg("ledger command")

	s.publish(ctx, *entry)
	return nil
}

// read runs fn on a database session limited to the caller's scope.
func (s *Service) read(ctx context.Context, caller Caller, fn func(st *store) error) error {
	if err := caller.validate(); err != nil {
		return err
	}

	return fn(newStore(s.db.WithContext(ctx), caller.Scope()))
}
