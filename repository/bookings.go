package repository

import (
	"context"
	"fmt"
	"sort"

	"eventpro-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookService attaches a service to an event. Without an explicit price the
// service's current price is copied onto the booking.
func (s *Store) BookService(ctx context.Context, eventID, serviceID uuid.UUID, quantity int, price *models.Money) (*models.EventService, error) {
	var booking *models.EventService
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := exists(tx, &models.Event{}, "event", eventID); err != nil {
			return err
		}
		var svc models.Service
		if err := tx.Where("id = ?", serviceID).First(&svc).Error; err != nil {
			return mapErr("get", "service", serviceID, err)
		}
		unit := svc.Price
		if price != nil {
			unit = *price
		}
		if quantity <= 0 {
			quantity = 1
		}
		booking = &models.EventService{
			EventID:   eventID,
			ServiceID: svc.ID,
			Quantity:  quantity,
			Price:     unit,
		}
		if err := tx.Omit(clause.Associations).Create(booking).Error; err != nil {
			return fmt.Errorf("create booking: %w", err)
		}
		booking.Service = &svc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// EventServices lists the bookings of an event ordered by service name.
func (s *Store) EventServices(ctx context.Context, eventID uuid.UUID) ([]models.EventService, error) {
	bookings := make([]models.EventService, 0)
	if err := s.conn(ctx).Preload("Service").Where("event_id = ?", eventID).Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	sort.SliceStable(bookings, func(i, j int) bool {
		a, b := bookings[i], bookings[j]
		if a.Service != nil && b.Service != nil && a.Service.Name != b.Service.Name {
			return a.Service.Name < b.Service.Name
		}
		return a.ID.String() < b.ID.String()
	})
	return bookings, nil
}

func (s *Store) GetBooking(ctx context.Context, id uuid.UUID) (*models.EventService, error) {
	var es models.EventService
	if err := s.conn(ctx).Preload("Service").Where("id = ?", id).First(&es).Error; err != nil {
		return nil, mapErr("get", "event service", id, err)
	}
	return &es, nil
}

func (s *Store) RemoveBooking(ctx context.Context, eventID, bookingID uuid.UUID) error {
	res := s.conn(ctx).Where("id = ? AND event_id = ?", bookingID, eventID).Delete(&models.EventService{})
	if res.Error != nil {
		return fmt.Errorf("delete booking: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return &models.NotFoundError{Entity: "event service", ID: bookingID.String()}
	}
	return nil
}
