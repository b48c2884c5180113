package ledger

import (
	"context"

	"github.com/envelope-zero/ledger/internal/models"
	"github.com/rs/zerolog/log"
)

//go:generate mockgen -source=publisher.go -destination=publisher_mock.go -package=ledger

// Publisher notifies other clients of the scope about recorded activities.
type Publisher interface {
	Publish(ctx context.Context, entry models.ActivityLogEntry) error
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, models.ActivityLogEntry) error {
	return nil
}

// publish sends the entry. The command it belongs to is already committed,
// so a failure is only logged.
func (s *Service) publish(ctx context.Context, entry models.ActivityLogEntry) {
	if err := s.publisher.Publish(ctx, entry); err != nil {
		log.Warn().
			Err(err).
			Str("action", string(entry.Action)).
			Str("entry", entry.ID.String()).
			Msg("could not publish activity")
	}
}
