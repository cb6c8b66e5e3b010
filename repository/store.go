// Package repository is the gorm-backed store of the planner: entity CRUD with
// cascade and nullify rules, filtered listings and dashboard aggregates.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"eventpro-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates or updates every table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

// Ping checks the underlying connection.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) conn(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

// mapErr turns gorm.ErrRecordNotFound into a NotFoundError and wraps the rest.
func mapErr(op, entity string, id uuid.UUID, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.NotFoundError{Entity: entity, ID: id.String()}
	}
	return fmt.Errorf("%s %s: %w", op, entity, err)
}

// exists reports a NotFoundError when no row of model has the id.
func exists(tx *gorm.DB, model any, entity string, id uuid.UUID) error {
	var n int64
	if err := tx.Model(model).Where("id = ?", id).Count(&n).Error; err != nil {
		return fmt.Errorf("lookup %s: %w", entity, err)
	}
	if n == 0 {
		return &models.NotFoundError{Entity: entity, ID: id.String()}
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// searchAny ORs a case-insensitive substring match over columns. A blank term
// leaves the query unconstrained.
func searchAny(db *gorm.DB, term string, columns ...string) *gorm.DB {
	term = strings.TrimSpace(term)
	if term == "" {
		return db
	}
	pattern := "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
	conds := make([]string, len(columns))
	args := make([]any, len(columns))
	for i, col := range columns {
		conds[i] = "LOWER(" + col + ") LIKE ? ESCAPE '\\'"
		args[i] = pattern
	}
	return db.Where("("+strings.Join(conds, " OR ")+")", args...)
}
