package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store bundles the repositories that share one database handle. Inside
// WithTransaction the handle is the transaction itself.
type Store struct {
	db         *gorm.DB
	Users      *UserRepository
	Tasks      *TaskRepository
	Categories *CategoryRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:         db,
		Users:      NewUserRepository(db),
		Tasks:      NewTaskRepository(db),
		Categories: NewCategoryRepository(db),
	}
}

// WithTransaction runs fn against a Store bound to a single transaction.
// The transaction commits when fn returns nil and rolls back when fn
// returns an error or panics.
func (s *Store) WithTransaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}
