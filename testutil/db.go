package testutil

import (
	"testing"
	"time"

	"eventpro-backend/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens a private in-memory SQLite database with foreign keys on and
// every table migrated.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?_pragma=foreign_keys(1)"), &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// One connection keeps the in-memory database alive and shared.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	if err := db.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func InsertClient(t *testing.T, db *gorm.DB, first, last string, createdAt time.Time) *models.Client {
	t.Helper()
	c := &models.Client{
		FirstName: first,
		LastName:  last,
		Email:     first + "@example.com",
		Phone:     "123",
		CreatedAt: createdAt.UTC(),
	}
	if err := db.Create(c).Error; err != nil {
		t.Fatalf("insert client: %v", err)
	}
	return c
}

func InsertEvent(t *testing.T, db *gorm.DB, clientID uuid.UUID, name string, date time.Time, status models.EventStatus, budget string) *models.Event {
	t.Helper()
	e := &models.Event{
		ClientID:   clientID,
		Name:       name,
		EventType:  models.CategoryWedding,
		Date:       date.UTC(),
		Location:   "Hall",
		Budget:     models.MustMoney(budget),
		GuestCount: 50,
		Status:     status,
	}
	if err := db.Create(e).Error; err != nil {
		t.Fatalf("insert event: %v", err)
	}
	return e
}

func InsertService(t *testing.T, db *gorm.DB, name string, category models.Category, price string) *models.Service {
	t.Helper()
	s := &models.Service{
		Name:          name,
		Category:      category,
		Description:   name + " service",
		Price:         models.MustMoney(price),
		DurationHours: 2,
		IsAvailable:   true,
	}
	if err := db.Create(s).Error; err != nil {
		t.Fatalf("insert service: %v", err)
	}
	return s
}

func InsertUser(t *testing.T, db *gorm.DB, subject, phone string) *models.User {
	t.Helper()
	u := &models.User{Subject: subject, Email: subject + "@example.com", Name: subject, Phone: phone}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("insert user: %v", err)
	}
	return u
}

func InsertTask(t *testing.T, db *gorm.DB, eventID uuid.UUID, title string, due time.Time, assignee *uuid.UUID) *models.Task {
	t.Helper()
	task := &models.Task{
		EventID:      eventID,
		Title:        title,
		DueDate:      due.UTC(),
		AssignedToID: assignee,
	}
	if err := db.Create(task).Error; err != nil {
		t.Fatalf("insert task: %v", err)
	}
	return task
}
