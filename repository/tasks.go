package repository

import (
	"context"
	"fmt"
	"time"

	"eventpro-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// checkTaskRefs validates the event and the optional assignee of a task.
func checkTaskRefs(tx *gorm.DB, t *models.Task) error {
	if err := exists(tx, &models.Event{}, "event", t.EventID); err != nil {
		return err
	}
	if t.AssignedToID != nil {
		if err := exists(tx, &models.User{}, "user", *t.AssignedToID); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) CreateTask(ctx context.Context, t *models.Task) error {
	return s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkTaskRefs(tx, t); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(t).Error; err != nil {
			return fmt.Errorf("create task: %w", err)
		}
		return nil
	})
}

func (s *Store) GetTask(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	var t models.Task
	err := s.conn(ctx).Preload("Event").Preload("AssignedTo").Where("id = ?", id).First(&t).Error
	if err != nil {
		return nil, mapErr("get", "task", id, err)
	}
	return &t, nil
}

func (s *Store) UpdateTask(ctx context.Context, id uuid.UUID, in *models.Task) (*models.Task, error) {
	var out *models.Task
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		var t models.Task
		if err := tx.Where("id = ?", id).First(&t).Error; err != nil {
			return mapErr("get", "task", id, err)
		}
		if err := checkTaskRefs(tx, in); err != nil {
			return err
		}
		t.EventID = in.EventID
		t.Title = in.Title
		t.Description = in.Description
		t.DueDate = in.DueDate
		t.Priority = in.Priority
		t.AssignedToID = in.AssignedToID
		if err := tx.Omit(clause.Associations).Save(&t).Error; err != nil {
			return fmt.Errorf("update task: %w", err)
		}
		out = &t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SetTaskCompleted flips the completion flag.
func (s *Store) SetTaskCompleted(ctx context.Context, id uuid.UUID, done bool) (*models.Task, error) {
	var t models.Task
	if err := s.conn(ctx).Where("id = ?", id).First(&t).Error; err != nil {
		return nil, mapErr("get", "task", id, err)
	}
	t.IsCompleted = done
	if err := s.conn(ctx).Omit(clause.Associations).Save(&t).Error; err != nil {
		return nil, fmt.Errorf("complete task: %w", err)
	}
	return &t, nil
}

func (s *Store) DeleteTask(ctx context.Context, id uuid.UUID) error {
	res := s.conn(ctx).Where("id = ?", id).Delete(&models.Task{})
	if res.Error != nil {
		return fmt.Errorf("delete task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return &models.NotFoundError{Entity: "task", ID: id.String()}
	}
	return nil
}

// ListTasks returns tasks with event and assignee, soonest due first.
func (s *Store) ListTasks(ctx context.Context, f TaskFilter) ([]models.Task, error) {
	tasks := make([]models.Task, 0)
	q := f.Page.apply(f.scope(s.conn(ctx).Model(&models.Task{})))
	err := q.Preload("Event").Preload("AssignedTo").Order("due_date").Order("id").Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (s *Store) CountTasks(ctx context.Context, f TaskFilter) (int64, error) {
	var n int64
	if err := f.scope(s.conn(ctx).Model(&models.Task{})).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count tasks: %w", err)
	}
	return n, nil
}

// AssignedTasksDue lists incomplete, assigned tasks due in [from, to).
func (s *Store) AssignedTasksDue(ctx context.Context, from, to time.Time) ([]models.Task, error) {
	tasks := make([]models.Task, 0)
	err := s.conn(ctx).
		Preload("Event").
		Preload("AssignedTo").
		Where("is_completed = ? AND assigned_to_id IS NOT NULL", false).
		Where("due_date >= ? AND due_date < ?", from, to).
		Order("due_date").
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("list due tasks: %w", err)
	}
	return tasks, nil
}
