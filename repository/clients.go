package repository

import (
	"context"
	"fmt"

	"eventpro-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (s *Store) CreateClient(ctx context.Context, c *models.Client) error {
	if err := s.conn(ctx).Omit(clause.Associations).Create(c).Error; err != nil {
		return fmt.Errorf("create client: %w", err)
	}
	return nil
}

func (s *Store) GetClient(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	var c models.Client
	if err := s.conn(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, mapErr("get", "client", id, err)
	}
	return &c, nil
}

// UpdateClient overwrites the editable fields of an existing client.
// CreatedAt is never touched.
func (s *Store) UpdateClient(ctx context.Context, id uuid.UUID, in *models.Client) (*models.Client, error) {
	c, err := s.GetClient(ctx, id)
	if err != nil {
		return nil, err
	}
	c.FirstName = in.FirstName
	c.LastName = in.LastName
	c.Email = in.Email
	c.Phone = in.Phone
	c.Company = in.Company
	c.Status = in.Status
	c.Notes = in.Notes
	if err := s.conn(ctx).Omit(clause.Associations).Save(c).Error; err != nil {
		return nil, fmt.Errorf("update client: %w", err)
	}
	return c, nil
}

// DeleteClient removes the client, its events and everything booked or
// planned for those events in one transaction.
func (s *Store) DeleteClient(ctx context.Context, id uuid.UUID) error {
	return s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := exists(tx, &models.Client{}, "client", id); err != nil {
			return err
		}
		events := func() *gorm.DB {
			return tx.Model(&models.Event{}).Select("id").Where("client_id = ?", id)
		}
		if err := tx.Where("event_id IN (?)", events()).Delete(&models.Task{}).Error; err != nil {
			return fmt.Errorf("delete client tasks: %w", err)
		}
		if err := tx.Where("event_id IN (?)", events()).Delete(&models.EventService{}).Error; err != nil {
			return fmt.Errorf("delete client bookings: %w", err)
		}
		if err := tx.Where("client_id = ?", id).Delete(&models.Event{}).Error; err != nil {
			return fmt.Errorf("delete client events: %w", err)
		}
		if err := tx.Where("id = ?", id).Delete(&models.Client{}).Error; err != nil {
			return fmt.Errorf("delete client: %w", err)
		}
		return nil
	})
}

// ListClients orders the newest clients first.
func (s *Store) ListClients(ctx context.Context, f ClientFilter) ([]models.Client, error) {
	clients := make([]models.Client, 0)
	q := f.Page.apply(f.scope(s.conn(ctx).Model(&models.Client{})))
	if err := q.Order("created_at DESC").Order("id").Find(&clients).Error; err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	return clients, nil
}

func (s *Store) CountClients(ctx context.Context, f ClientFilter) (int64, error) {
	var n int64
	if err := f.scope(s.conn(ctx).Model(&models.Client{})).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count clients: %w", err)
	}
	return n, nil
}

// ClientEvents lists the events of one client, most recent date first.
func (s *Store) ClientEvents(ctx context.Context, clientID uuid.UUID) ([]models.Event, error) {
	if err := exists(s.conn(ctx), &models.Client{}, "client", clientID); err != nil {
		return nil, err
	}
	return s.ListEvents(ctx, EventFilter{ClientID: clientID})
}
