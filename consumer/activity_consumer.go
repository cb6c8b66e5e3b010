package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"eventpro-backend/models"
	"eventpro-backend/repository"
	"eventpro-backend/services"
	"eventpro-backend/utils"

	"github.com/segmentio/kafka-go"
)

// ClientsIndex is the Elasticsearch index that mirrors clients.
const ClientsIndex = "clients"

// ActivityConsumer applies change-feed side effects: it mirrors clients into
// Elasticsearch and drops the cached home snapshot when services or events
// change.
type ActivityConsumer struct {
	store  *repository.Store
	es     utils.ElasticsearchClient
	home   *services.HomeService
	reader *kafka.Reader
}

func NewActivityConsumer(store *repository.Store, es utils.ElasticsearchClient, home *services.HomeService) *ActivityConsumer {
	return &ActivityConsumer{store: store, es: es, home: home}
}

// WithReader attaches the Kafka reader used by Run.
func (c *ActivityConsumer) WithReader(reader *kafka.Reader) *ActivityConsumer {
	c.reader = reader
	return c
}

// Run reads messages until ctx is cancelled.
func (c *ActivityConsumer) Run(ctx context.Context) {
	if c.reader == nil {
		return
	}
	slog.Info("Starting Kafka consumer")
	defer func() {
		if err := c.reader.Close(); err != nil {
			slog.Warn("Error closing Kafka reader", "error", err)
		}
	}()

	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			slog.Warn("Kafka read error, will retry", "error", err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(5 * time.Second):
			}
			continue
		}

		var change services.Change
		if err := json.Unmarshal(msg.Value, &change); err != nil {
			slog.Warn("Failed to unmarshal Kafka message", "offset", msg.Offset, "error", err)
			continue
		}
		if err := c.Handle(ctx, change); err != nil {
			slog.Warn("Failed to handle change", "type", change.Type, "id", change.ID, "error", err)
		}
	}
}

func (c *ActivityConsumer) Handle(ctx context.Context, change services.Change) error {
	entity, _, _ := strings.Cut(change.Type, ".")

	switch change.Type {
	case services.ClientCreated:
		return c.indexClient(ctx, change)
	case services.ClientUpdated:
		if err := c.indexClient(ctx, change); err != nil {
			return err
		}
		// Recent events on the home page embed their client.
		return c.invalidateHome(ctx)
	case services.ClientDeleted:
		if c.es != nil {
			if err := c.es.DeleteDocument(ctx, ClientsIndex, change.ID.String()); err != nil {
				return err
			}
		}
		// The client's events may be on the home page.
		return c.invalidateHome(ctx)
	}

	switch entity {
	case "service", "event":
		return c.invalidateHome(ctx)
	case "task":
		return nil
	}
	return fmt.Errorf("unknown change type %q", change.Type)
}

func (c *ActivityConsumer) indexClient(ctx context.Context, change services.Change) error {
	if c.es == nil {
		return nil
	}
	client, err := c.store.GetClient(ctx, change.ID)
	if errors.Is(err, models.ErrNotFound) {
		// Deleted before we got here; the delete change follows.
		return nil
	}
	if err != nil {
		return err
	}
	return c.es.IndexDocument(ctx, ClientsIndex, client.ID.String(), clientDocument{
		Client:   client,
		FullName: client.FullName(),
	})
}

// clientDocument is the search mirror of a client.
type clientDocument struct {
	*models.Client
	FullName string `json:"fullName"`
}

func (c *ActivityConsumer) invalidateHome(ctx context.Context) error {
	if c.home == nil {
		return nil
	}
	return c.home.Invalidate(ctx)
}
