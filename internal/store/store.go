// Package store is the persistence gateway over gorm. Every method returns
// apperrors values so callers never inspect driver errors themselves.
package store

import (
	"context"
	"errors"

	"github.com/noble-it/hub/internal/apperrors"
	"gorm.io/gorm"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB exposes the handle for health checks.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Transaction runs fn inside one atomic unit of work. The Store passed to fn
// is bound to the transaction; any error returned rolls everything back.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

func (s *Store) conn(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

// translate maps driver errors onto the application taxonomy.
func translate(err error, notFound, failure string) error {
	if err == nil {
		return nil
	}

	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return err
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperrors.NotFound(notFound)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return apperrors.Conflict("Record is referenced by other records", err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperrors.Conflict("Record already exists", err)
	default:
		return apperrors.Persistence(failure, err)
	}
}
