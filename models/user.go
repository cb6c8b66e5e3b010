package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User mirrors an identity-provider account so tasks can be assigned to it.
// Credentials never reach this service.
type User struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Subject    string     `gorm:"size:255;not null;uniqueIndex" json:"subject"`
	Email      string     `gorm:"size:254" json:"email"`
	Name       string     `gorm:"size:200" json:"name"`
	Phone      string     `gorm:"size:20" json:"phone,omitempty"`
	LastSeenAt *time.Time `json:"lastSeenAt,omitempty"`
	CreatedAt  time.Time  `gorm:"<-:create;not null" json:"createdAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return
}
