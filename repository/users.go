package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventpro-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SyncUser records the identity behind an authenticated request, creating the
// user on first sight and refreshing its profile afterwards.
func (s *Store) SyncUser(ctx context.Context, in *models.User, seenAt time.Time) (*models.User, error) {
	var u models.User
	err := s.conn(ctx).Where("subject = ?", in.Subject).First(&u).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		u = models.User{
			Subject:    in.Subject,
			Email:      in.Email,
			Name:       in.Name,
			Phone:      in.Phone,
			LastSeenAt: &seenAt,
		}
		if err := s.conn(ctx).Create(&u).Error; err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
		return &u, nil
	case err != nil:
		return nil, fmt.Errorf("get user: %w", err)
	}
	if in.Email != "" {
		u.Email = in.Email
	}
	if in.Name != "" {
		u.Name = in.Name
	}
	if in.Phone != "" {
		u.Phone = in.Phone
	}
	u.LastSeenAt = &seenAt
	if err := s.conn(ctx).Save(&u).Error; err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return &u, nil
}

func (s *Store) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var u models.User
	if err := s.conn(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, mapErr("get", "user", id, err)
	}
	return &u, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	users := make([]models.User, 0)
	if err := s.conn(ctx).Order("name").Order("id").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// DeleteUser removes the user and clears it from every task it was assigned
// to; the tasks themselves stay.
func (s *Store) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := exists(tx, &models.User{}, "user", id); err != nil {
			return err
		}
		err := tx.Model(&models.Task{}).
			Where("assigned_to_id = ?", id).
			UpdateColumn("assigned_to_id", nil).Error
		if err != nil {
			return fmt.Errorf("unassign tasks: %w", err)
		}
		if err := tx.Where("id = ?", id).Delete(&models.User{}).Error; err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		return nil
	})
}
