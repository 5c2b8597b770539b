package store

import (
	"context"
	"database/sql"

	"github.com/taskmanager/api/internal/domain"
)

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// Create saves a new task to the store and assigns its ID.
	// The task must be valid according to domain validation rules;
	// validation errors are returned before any row is written.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// Update persists changes to an existing task, writing every mutable
	// column from the given entity. Returns ErrTaskNotFound if the task
	// does not exist, and validation errors if the data is invalid.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task from the store by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id int64) error

	// Exists reports whether a task with the given ID is present.
	Exists(ctx context.Context, id int64) (bool, error)

	// FindAll retrieves every task ordered by creation time, newest first.
	// Returns an empty slice when the store holds no tasks.
	FindAll(ctx context.Context) ([]*domain.Task, error)

	// FindByCompleted retrieves tasks filtered by their completion flag,
	// newest first. Returns an empty slice when nothing matches.
	FindByCompleted(ctx context.Context, completed bool) ([]*domain.Task, error)

	// SearchByTitle retrieves tasks whose title contains the given text,
	// matched case-insensitively, newest first. An empty search string
	// matches every task. Returns an empty slice when nothing matches.
	SearchByTitle(ctx context.Context, title string) ([]*domain.Task, error)

	// CountAll returns the total number of tasks in the store.
	CountAll(ctx context.Context) (int64, error)

	// CountByCompleted returns the number of tasks with the given
	// completion flag.
	CountByCompleted(ctx context.Context, completed bool) (int64, error)

	// WithTx returns a new TaskStore instance that uses the provided
	// transaction. The transaction should be created and managed by the
	// caller, typically through RunInTransaction.
	//
	// Example usage:
	//   err := store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
	//       txStore := taskStore.WithTx(tx)
	//       return txStore.Update(ctx, task)
	//   })
	WithTx(tx *sql.Tx) TaskStore
}
