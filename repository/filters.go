package repository

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Page bounds a listing. Zero values mean no bound.
type Page struct {
	Limit  int
	Offset int
}

func (p Page) apply(db *gorm.DB) *gorm.DB {
	if p.Limit > 0 {
		db = db.Limit(p.Limit)
	}
	if p.Offset > 0 {
		db = db.Offset(p.Offset)
	}
	return db
}

// Empty filter values never constrain a listing.

type ClientFilter struct {
	Status string
	Search string // first_name, last_name, email, company
	Page
}

func (f ClientFilter) scope(db *gorm.DB) *gorm.DB {
	if s := strings.TrimSpace(f.Status); s != "" {
		db = db.Where("status = ?", s)
	}
	return searchAny(db, f.Search, "first_name", "last_name", "email", "company")
}

type ServiceFilter struct {
	Category      string
	AvailableOnly bool
	Search        string // name, description
	Page
}

func (f ServiceFilter) scope(db *gorm.DB) *gorm.DB {
	if c := strings.TrimSpace(f.Category); c != "" {
		db = db.Where("category = ?", c)
	}
	if f.AvailableOnly {
		db = db.Where("is_available = ?", true)
	}
	return searchAny(db, f.Search, "name", "description")
}

type EventFilter struct {
	Status   string
	Type     string
	ClientID uuid.UUID
	Search   string // name, location
	Page
}

func (f EventFilter) scope(db *gorm.DB) *gorm.DB {
	if s := strings.TrimSpace(f.Status); s != "" {
		db = db.Where("status = ?", s)
	}
	if t := strings.TrimSpace(f.Type); t != "" {
		db = db.Where("event_type = ?", t)
	}
	if f.ClientID != uuid.Nil {
		db = db.Where("client_id = ?", f.ClientID)
	}
	return searchAny(db, f.Search, "name", "location")
}

type TaskFilter struct {
	EventID   uuid.UUID
	Priority  string
	Completed *bool
	Search    string // title, description
	Page
}

func (f TaskFilter) scope(db *gorm.DB) *gorm.DB {
	if f.EventID != uuid.Nil {
		db = db.Where("event_id = ?", f.EventID)
	}
	if p := strings.TrimSpace(f.Priority); p != "" {
		db = db.Where("priority = ?", p)
	}
	if f.Completed != nil {
		db = db.Where("is_completed = ?", *f.Completed)
	}
	return searchAny(db, f.Search, "title", "description")
}
