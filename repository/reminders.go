package repository

import (
	"context"
	"fmt"

	"eventpro-backend/models"

	"github.com/google/uuid"
)

// ReminderSent reports whether a reminder for the task already went out.
func (s *Store) ReminderSent(ctx context.Context, taskID uuid.UUID) (bool, error) {
	var n int64
	err := s.conn(ctx).Model(&models.ReminderLog{}).
		Where("task_id = ? AND status = ?", taskID, models.ReminderStatusSent).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("count reminders: %w", err)
	}
	return n > 0, nil
}

func (s *Store) LogReminder(ctx context.Context, l *models.ReminderLog) error {
	if err := s.conn(ctx).Create(l).Error; err != nil {
		return fmt.Errorf("log reminder: %w", err)
	}
	return nil
}

func (s *Store) TaskReminders(ctx context.Context, taskID uuid.UUID) ([]models.ReminderLog, error) {
	logs := make([]models.ReminderLog, 0)
	if err := s.conn(ctx).Where("task_id = ?", taskID).Order("sent_at").Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}
	return logs, nil
}
