// Package events publishes ledger activities to an AMQP exchange so that
// other clients of a household can refresh their data.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/envelope-zero/ledger/internal/models"
	"github.com/envelope-zero/ledger/internal/types"
	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

const publishTimeout = 5 * time.Second

// Event is the message body published for every activity.
type Event struct {
	ID          uuid.UUID             `json:"id"`
	UserID      string                `json:"userId,omitempty"`
	HouseholdID string                `json:"householdId,omitempty"`
	ActorID     string                `json:"actorId"`
	Action      models.ActivityAction `json:"action"`
	Status      models.ActivityStatus `json:"status"`
	EntityID    uuid.UUID             `json:"entityId"`
	Month       types.Month           `json:"month"`
	Description string                `json:"description"`
	Timestamp   time.Time             `json:"timestamp"`
}

// NewEvent creates the event for an activity log entry.
func NewEvent(entry models.ActivityLogEntry) Event {
	timestamp := entry.CreatedAt
	if entry.UndoneAt != nil {
		timestamp = *entry.UndoneAt
	}

	return Event{
		ID:          entry.ID,
		UserID:      entry.UserID,
		HouseholdID: entry.HouseholdID,
		ActorID:     entry.ActorID,
		Action:      entry.Action,
		Status:      entry.Status,
		EntityID:    entry.EntityID,
		Month:       entry.Month,
		Description: entry.Description,
		Timestamp:   timestamp.UTC(),
	}
}

// RoutingKey returns the routing key of the entry. Consumers bind to the
// actions they are interested in.
func RoutingKey(entry models.ActivityLogEntry) string {
	if entry.Status == models.ActivityUndone {
		return string(entry.Action) + ".undone"
	}

	return string(entry.Action)
}

func newMessage(entry models.ActivityLogEntry) (amqp091.Publishing, error) {
	body, err := json.Marshal(NewEvent(entry))
	if err != nil {
		return amqp091.Publishing{}, fmt.Errorf("marshal event: %w", err)
	}

	return amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		MessageId:    entry.ID.String(),
		Timestamp:    time.Now(),
		Body:         body,
	}, nil
}

// Publisher publishes activities to a direct exchange.
type Publisher struct {
	mu       sync.Mutex
	conn     *amqp091.Connection
	channel  *amqp091.Channel
	exchange string
}

// NewPublisher connects to the broker and declares the exchange.
func NewPublisher(url, exchange string) (*Publisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchange, // name
		"direct", // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return &Publisher{
		conn:     conn,
		channel:  channel,
		exchange: exchange,
	}, nil
}

// Publish sends the entry as a persistent JSON message.
func (p *Publisher) Publish(ctx context.Context, entry models.ActivityLogEntry) error {
	msg, err := newMessage(entry)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	// Channels must not be used concurrently
	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.channel.PublishWithContext(
		ctx,
		p.exchange,
		RoutingKey(entry),
		false, // mandatory
		false, // immediate
		msg,
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	log.Debug().Str("exchange", p.exchange).Str("routing_key", RoutingKey(entry)).Str("entry", entry.ID.String()).Msg("published activity")
	return nil
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel != nil {
		p.channel.Close()
	}

	if p.conn != nil {
		return p.conn.Close()
	}

	return nil
}
