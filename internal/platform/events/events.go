// Package events delivers notifications about committed state changes to an
// external sink. Publishing happens after the database commit and its failure
// never undoes or fails the operation that produced the event.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/loopers/commerce-api/internal/platform/logger"
)

const (
	MemberRegistered      = "member.registered"
	MemberPasswordChanged = "member.password_changed"
	OrderCreated          = "order.created"
	OrderCancelled        = "order.cancelled"
)

type Event struct {
	Type        string                 `json:"type"`
	AggregateID int64                  `json:"aggregate_id"`
	Payload     map[string]interface{} `json:"payload,omitempty"`
	OccurredAt  time.Time              `json:"occurred_at"`
}

func New(eventType string, aggregateID int64, payload map[string]interface{}) Event {
	return Event{
		Type:        eventType,
		AggregateID: aggregateID,
		Payload:     payload,
		OccurredAt:  time.Now().UTC(),
	}
}

func (e Event) encode() ([]byte, error) {
	return json.Marshal(e)
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

type nopPublisher struct{}

func NewNop() Publisher { return nopPublisher{} }

func (nopPublisher) Publish(context.Context, Event) error { return nil }
func (nopPublisher) Close() error                         { return nil }

// Notify publishes event and only logs a failure. Callers invoke it once their
// transaction has committed.
func Notify(ctx context.Context, p Publisher, event Event) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, event); err != nil {
		logger.Warn("event publish failed", "event_type", event.Type, "aggregate_id", event.AggregateID, "error", err)
	}
}
