package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Task is a to-do item of an event. Removing the assignee clears AssignedToID
// and keeps the task.
type Task struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	EventID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"eventId"`
	Event        *Event     `gorm:"foreignKey:EventID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"event,omitempty"`
	Title        string     `gorm:"size:200;not null" json:"title"`
	Description  string     `gorm:"type:text" json:"description,omitempty"`
	DueDate      time.Time  `gorm:"not null;index" json:"dueDate"`
	Priority     Priority   `gorm:"size:10;not null" json:"priority"`
	IsCompleted  bool       `gorm:"not null;index" json:"isCompleted"`
	AssignedToID *uuid.UUID `gorm:"type:uuid;index" json:"assignedToId,omitempty"`
	AssignedTo   *User      `gorm:"foreignKey:AssignedToID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"assignedTo,omitempty"`
}

func (t *Task) BeforeSave(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	if !t.Priority.Valid() {
		return invalidChoice("task", "priority", t.Priority)
	}
	return nil
}
