package service

import (
	"context"
	"database/sql"

	"github.com/taskmanager/api/internal/domain"
	"github.com/taskmanager/api/internal/store"
)

// NewTaskRepositoryAdapter creates a new adapter that allows a store.TaskStore
// to be used where a TaskRepository is expected.
func NewTaskRepositoryAdapter(taskStore store.TaskStore, db *sql.DB) TaskRepository {
	return &taskRepositoryAdapter{
		taskStore: taskStore,
		db:        db,
	}
}

// taskRepositoryAdapter adapts a store.TaskStore to the TaskRepository interface
type taskRepositoryAdapter struct {
	taskStore store.TaskStore
	db        *sql.DB
}

// Create implements TaskRepository.Create
func (a *taskRepositoryAdapter) Create(ctx context.Context, task *domain.Task) error {
	return a.taskStore.Create(ctx, task)
}

// GetByID implements TaskRepository.GetByID
func (a *taskRepositoryAdapter) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	return a.taskStore.GetByID(ctx, id)
}

// Update implements TaskRepository.Update
func (a *taskRepositoryAdapter) Update(ctx context.Context, task *domain.Task) error {
	return a.taskStore.Update(ctx, task)
}

// Delete implements TaskRepository.Delete
func (a *taskRepositoryAdapter) Delete(ctx context.Context, id int64) error {
	return a.taskStore.Delete(ctx, id)
}

// Exists implements TaskRepository.Exists
func (a *taskRepositoryAdapter) Exists(ctx context.Context, id int64) (bool, error) {
	return a.taskStore.Exists(ctx, id)
}

// FindAll implements TaskRepository.FindAll
func (a *taskRepositoryAdapter) FindAll(ctx context.Context) ([]*domain.Task, error) {
	return a.taskStore.FindAll(ctx)
}

// FindByCompleted implements TaskRepository.FindByCompleted
func (a *taskRepositoryAdapter) FindByCompleted(ctx context.Context, completed bool) ([]*domain.Task, error) {
	return a.taskStore.FindByCompleted(ctx, completed)
}

// SearchByTitle implements TaskRepository.SearchByTitle
func (a *taskRepositoryAdapter) SearchByTitle(ctx context.Context, title string) ([]*domain.Task, error) {
	return a.taskStore.SearchByTitle(ctx, title)
}

// CountAll implements TaskRepository.CountAll
func (a *taskRepositoryAdapter) CountAll(ctx context.Context) (int64, error) {
	return a.taskStore.CountAll(ctx)
}

// CountByCompleted implements TaskRepository.CountByCompleted
func (a *taskRepositoryAdapter) CountByCompleted(ctx context.Context, completed bool) (int64, error) {
	return a.taskStore.CountByCompleted(ctx, completed)
}

// WithTx implements TaskRepository.WithTx
func (a *taskRepositoryAdapter) WithTx(tx *sql.Tx) TaskRepository {
	return &taskRepositoryAdapter{
		taskStore: a.taskStore.WithTx(tx),
		db:        a.db,
	}
}

// DB implements TaskRepository.DB
func (a *taskRepositoryAdapter) DB() *sql.DB {
	return a.db
}
