package repository

import (
	"context"
	"fmt"

	"eventpro-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateEvent requires the referenced client to exist.
func (s *Store) CreateEvent(ctx context.Context, e *models.Event) error {
	return s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := exists(tx, &models.Client{}, "client", e.ClientID); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(e).Error; err != nil {
			return fmt.Errorf("create event: %w", err)
		}
		return nil
	})
}

func (s *Store) GetEvent(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	var e models.Event
	if err := s.conn(ctx).Preload("Client").Where("id = ?", id).First(&e).Error; err != nil {
		return nil, mapErr("get", "event", id, err)
	}
	return &e, nil
}

// UpdateEvent overwrites the editable fields; UpdatedAt is refreshed by the
// store on every save.
func (s *Store) UpdateEvent(ctx context.Context, id uuid.UUID, in *models.Event) (*models.Event, error) {
	var out *models.Event
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		var e models.Event
		if err := tx.Where("id = ?", id).First(&e).Error; err != nil {
			return mapErr("get", "event", id, err)
		}
		if in.ClientID != e.ClientID {
			if err := exists(tx, &models.Client{}, "client", in.ClientID); err != nil {
				return err
			}
		}
		e.ClientID = in.ClientID
		e.Name = in.Name
		e.EventType = in.EventType
		e.Date = in.Date
		e.Location = in.Location
		e.Budget = in.Budget
		e.GuestCount = in.GuestCount
		e.Status = in.Status
		e.Description = in.Description
		if err := tx.Omit(clause.Associations).Save(&e).Error; err != nil {
			return fmt.Errorf("update event: %w", err)
		}
		out = &e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SetEventStatus moves an event to another lifecycle state.
func (s *Store) SetEventStatus(ctx context.Context, id uuid.UUID, status models.EventStatus) (*models.Event, error) {
	var e models.Event
	if err := s.conn(ctx).Where("id = ?", id).First(&e).Error; err != nil {
		return nil, mapErr("get", "event", id, err)
	}
	e.Status = status
	if err := s.conn(ctx).Omit(clause.Associations).Save(&e).Error; err != nil {
		return nil, fmt.Errorf("update event status: %w", err)
	}
	return &e, nil
}

// DeleteEvent removes the event with its bookings and tasks.
func (s *Store) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	return s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := exists(tx, &models.Event{}, "event", id); err != nil {
			return err
		}
		if err := tx.Where("event_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return fmt.Errorf("delete event tasks: %w", err)
		}
		if err := tx.Where("event_id = ?", id).Delete(&models.EventService{}).Error; err != nil {
			return fmt.Errorf("delete event bookings: %w", err)
		}
		if err := tx.Where("id = ?", id).Delete(&models.Event{}).Error; err != nil {
			return fmt.Errorf("delete event: %w", err)
		}
		return nil
	})
}

// ListEvents returns events with their client, most recent date first.
func (s *Store) ListEvents(ctx context.Context, f EventFilter) ([]models.Event, error) {
	events := make([]models.Event, 0)
	q := f.Page.apply(f.scope(s.conn(ctx).Model(&models.Event{})))
	if err := q.Preload("Client").Order("date DESC").Order("id").Find(&events).Error; err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

func (s *Store) CountEvents(ctx context.Context, f EventFilter) (int64, error) {
	var n int64
	if err := f.scope(s.conn(ctx).Model(&models.Event{})).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return n, nil
}

// EventDetail is an event with everything attached to it.
type EventDetail struct {
	Event         *models.Event         `json:"event"`
	Services      []models.EventService `json:"services"`
	ServicesTotal models.Money          `json:"servicesTotal"`
	Tasks         []models.Task         `json:"tasks"`
}

func (s *Store) EventDetail(ctx context.Context, id uuid.UUID) (*EventDetail, error) {
	event, err := s.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	bookings, err := s.EventServices(ctx, id)
	if err != nil {
		return nil, err
	}
	tasks, err := s.ListTasks(ctx, TaskFilter{EventID: id})
	if err != nil {
		return nil, err
	}
	return &EventDetail{
		Event:         event,
		Services:      bookings,
		ServicesTotal: models.EventServicesTotal(bookings),
		Tasks:         tasks,
	}, nil
}
