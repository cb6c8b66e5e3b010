// models/reminder_log.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ReminderStatusSent   = "sent"
	ReminderStatusFailed = "failed"
)

// ReminderLog is an audit row for a task reminder. TaskID carries no foreign
// key so the history survives task removal.
type ReminderLog struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TaskID       uuid.UUID `gorm:"type:uuid;index;not null" json:"taskId"`
	UserID       uuid.UUID `gorm:"type:uuid;index;not null" json:"userId"`
	Channel      string    `gorm:"type:varchar(20)" json:"channel"` // sms
	Message      string    `gorm:"type:text" json:"message"`
	Status       string    `gorm:"type:varchar(20);index" json:"status"` // sent, failed
	ErrorMessage string    `gorm:"type:text" json:"errorMessage,omitempty"`
	SentAt       time.Time `json:"sentAt"`
}

func (r *ReminderLog) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}

// All lists every persisted model in dependency order for migrations.
func All() []any {
	return []any{
		&User{},
		&Client{},
		&Service{},
		&Event{},
		&EventService{},
		&Task{},
		&ReminderLog{},
	}
}
