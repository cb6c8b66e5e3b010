package repository

import (
	"context"
	"fmt"

	"eventpro-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func (s *Store) CreateService(ctx context.Context, svc *models.Service) error {
	if err := s.conn(ctx).Create(svc).Error; err != nil {
		return fmt.Errorf("create service: %w", err)
	}
	return nil
}

func (s *Store) GetService(ctx context.Context, id uuid.UUID) (*models.Service, error) {
	var svc models.Service
	if err := s.conn(ctx).Where("id = ?", id).First(&svc).Error; err != nil {
		return nil, mapErr("get", "service", id, err)
	}
	return &svc, nil
}

// UpdateService changes the catalog entry only; prices already booked on
// events keep their snapshot.
func (s *Store) UpdateService(ctx context.Context, id uuid.UUID, in *models.Service) (*models.Service, error) {
	svc, err := s.GetService(ctx, id)
	if err != nil {
		return nil, err
	}
	svc.Name = in.Name
	svc.Category = in.Category
	svc.Description = in.Description
	svc.Price = in.Price
	svc.DurationHours = in.DurationHours
	svc.IsAvailable = in.IsAvailable
	if err := s.conn(ctx).Save(svc).Error; err != nil {
		return nil, fmt.Errorf("update service: %w", err)
	}
	return svc, nil
}

// DeleteService removes the service and its bookings.
func (s *Store) DeleteService(ctx context.Context, id uuid.UUID) error {
	return s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := exists(tx, &models.Service{}, "service", id); err != nil {
			return err
		}
		if err := tx.Where("service_id = ?", id).Delete(&models.EventService{}).Error; err != nil {
			return fmt.Errorf("delete service bookings: %w", err)
		}
		if err := tx.Where("id = ?", id).Delete(&models.Service{}).Error; err != nil {
			return fmt.Errorf("delete service: %w", err)
		}
		return nil
	})
}

// ListServices orders by category, then name.
func (s *Store) ListServices(ctx context.Context, f ServiceFilter) ([]models.Service, error) {
	services := make([]models.Service, 0)
	q := f.Page.apply(f.scope(s.conn(ctx).Model(&models.Service{})))
	if err := q.Order("category").Order("name").Order("id").Find(&services).Error; err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	return services, nil
}

func (s *Store) CountServices(ctx context.Context, f ServiceFilter) (int64, error) {
	var n int64
	if err := f.scope(s.conn(ctx).Model(&models.Service{})).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count services: %w", err)
	}
	return n, nil
}
