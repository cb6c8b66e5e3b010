package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Client struct {
	ID        uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName string       `gorm:"size:100;not null" json:"firstName"`
	LastName  string       `gorm:"size:100;not null" json:"lastName"`
	Email     string       `gorm:"size:254;not null" json:"email"`
	Phone     string       `gorm:"size:20;not null" json:"phone"`
	Company   string       `gorm:"size:200" json:"company,omitempty"`
	Status    ClientStatus `gorm:"size:20;not null;index" json:"status"`
	Notes     string       `gorm:"type:text" json:"notes,omitempty"`

	// Set once on insert, never written by updates.
	CreatedAt time.Time `gorm:"<-:create;not null;index" json:"createdAt"`
}

func (c *Client) FullName() string {
	return c.FirstName + " " + c.LastName
}

func (c *Client) BeforeSave(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Status == "" {
		c.Status = ClientStatusNew
	}
	if !c.Status.Valid() {
		return invalidChoice("client", "status", c.Status)
	}
	return nil
}
