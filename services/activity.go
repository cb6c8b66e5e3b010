package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"eventpro-backend/clock"
	"eventpro-backend/utils"

	"github.com/google/uuid"
)

// Change types published after successful writes.
const (
	ClientCreated  = "client.created"
	ClientUpdated  = "client.updated"
	ClientDeleted  = "client.deleted"
	ServiceCreated = "service.created"
	ServiceUpdated = "service.updated"
	ServiceDeleted = "service.deleted"
	EventCreated   = "event.created"
	EventUpdated   = "event.updated"
	EventDeleted   = "event.deleted"
	TaskCreated    = "task.created"
	TaskUpdated    = "task.updated"
	TaskDeleted    = "task.deleted"
)

// Change is one entry of the change feed.
type Change struct {
	Type string    `json:"type"`
	ID   uuid.UUID `json:"id"`
	At   time.Time `json:"at"`
}

// ChangeHandler consumes a change, either from Kafka or in-process.
type ChangeHandler func(ctx context.Context, change Change) error

// ActivityFeed publishes changes to Kafka. Without a producer the changes are
// handed to the local handler instead so side effects still happen.
type ActivityFeed struct {
	producer utils.KafkaProducer
	local    ChangeHandler
	clock    clock.Clock
}

func NewActivityFeed(producer utils.KafkaProducer, local ChangeHandler, clk clock.Clock) *ActivityFeed {
	return &ActivityFeed{producer: producer, local: local, clock: clk}
}

// Publish never fails the caller; the write it describes already happened.
func (f *ActivityFeed) Publish(ctx context.Context, changeType string, id uuid.UUID) {
	if f == nil {
		return
	}
	change := Change{Type: changeType, ID: id, At: f.clock.Now()}

	if f.producer == nil {
		if f.local == nil {
			return
		}
		if err := f.local(ctx, change); err != nil {
			slog.Warn("local change handler failed", "type", change.Type, "id", change.ID, "error", err)
		}
		return
	}

	value, err := json.Marshal(change)
	if err != nil {
		slog.Error("marshal change", "error", err)
		return
	}
	if err := f.producer.SendMessage(ctx, []byte(id.String()), value); err != nil {
		slog.Warn("publish change failed", "type", change.Type, "id", change.ID, "error", err)
	}
}
