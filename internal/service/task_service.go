package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taskmanager/api/internal/domain"
	"github.com/taskmanager/api/internal/platform/logger"
	"github.com/taskmanager/api/internal/store"
)

// TaskServiceError is a custom error type for task service errors.
type TaskServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for TaskServiceError.
func (e *TaskServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("task service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("task service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *TaskServiceError) Unwrap() error {
	return e.Err
}

// NewTaskServiceError creates a new TaskServiceError.
func NewTaskServiceError(operation, message string, err error) *TaskServiceError {
	return &TaskServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// UpdateTaskParams carries the optional fields of a partial task update.
// A nil field leaves the stored value unchanged. A title that is blank
// after trimming is skipped too, so an update can never blank out a title.
type UpdateTaskParams struct {
	Title       *string
	Description *string
	Completed   *bool
}

// TaskStatistics summarizes task counts by completion state.
// The three counts come from independent queries, so they are not a
// single atomic snapshot under concurrent writes.
type TaskStatistics struct {
	Total      int64
	Completed  int64
	Incomplete int64
}

// TaskRepository defines the repository interface for the service layer
type TaskRepository interface {
	// Create saves a new task to the store and assigns its ID
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// Update persists changes to an existing task
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task from the store by its ID
	Delete(ctx context.Context, id int64) error

	// Exists reports whether a task with the given ID is present
	Exists(ctx context.Context, id int64) (bool, error)

	// FindAll retrieves every task, newest first
	FindAll(ctx context.Context) ([]*domain.Task, error)

	// FindByCompleted retrieves tasks filtered by completion flag, newest first
	FindByCompleted(ctx context.Context, completed bool) ([]*domain.Task, error)

	// SearchByTitle retrieves tasks whose title contains the given text,
	// matched case-insensitively, newest first
	SearchByTitle(ctx context.Context, title string) ([]*domain.Task, error)

	// CountAll returns the total number of tasks
	CountAll(ctx context.Context) (int64, error)

	// CountByCompleted returns the number of tasks with the given completion flag
	CountByCompleted(ctx context.Context, completed bool) (int64, error)

	// WithTx returns a new repository instance that uses the provided transaction
	// This is used for transactional operations
	WithTx(tx *sql.Tx) TaskRepository

	// DB returns the underlying database connection
	DB() *sql.DB
}

// TaskService provides task-related operations
type TaskService interface {
	// CreateTask persists a new incomplete task with the given title and
	// optional description. The inputs are expected to be trimmed by the
	// caller.
	CreateTask(ctx context.Context, title string, description *string) (*domain.Task, error)

	// GetTask retrieves a task by its ID
	GetTask(ctx context.Context, id int64) (*domain.Task, error)

	// ListTasks retrieves every task, newest first
	ListTasks(ctx context.Context) ([]*domain.Task, error)

	// ListTasksByStatus retrieves tasks filtered by completion flag, newest first
	ListTasksByStatus(ctx context.Context, completed bool) ([]*domain.Task, error)

	// SearchTasks retrieves tasks whose title contains the given text,
	// matched case-insensitively, newest first
	SearchTasks(ctx context.Context, title string) ([]*domain.Task, error)

	// UpdateTask applies a partial update to an existing task and returns
	// the updated record
	UpdateTask(ctx context.Context, id int64, params UpdateTaskParams) (*domain.Task, error)

	// CompleteTask marks a task as completed and returns the updated record
	CompleteTask(ctx context.Context, id int64) (*domain.Task, error)

	// ReopenTask marks a task as not completed and returns the updated record
	ReopenTask(ctx context.Context, id int64) (*domain.Task, error)

	// DeleteTask removes a task by its ID
	DeleteTask(ctx context.Context, id int64) error

	// GetStatistics returns task counts by completion state
	GetStatistics(ctx context.Context) (*TaskStatistics, error)
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	taskRepo TaskRepository
	logger   *slog.Logger
}

// NewTaskService creates a new TaskService.
// It returns an error if any of the required dependencies are nil.
func NewTaskService(taskRepo TaskRepository, logger *slog.Logger) (TaskService, error) {
	// Validate dependencies
	if taskRepo == nil {
		return nil, domain.NewValidationError("taskRepo", "cannot be nil", domain.ErrValidation)
	}

	// Use provided logger or create default
	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		taskRepo: taskRepo,
		logger:   logger.With(slog.String("component", "task_service")),
	}, nil
}

// CreateTask implements TaskService.CreateTask
func (s *taskServiceImpl) CreateTask(
	ctx context.Context,
	title string,
	description *string,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := domain.NewTask(title, description)
	if err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()))
		return nil, NewTaskServiceError("create_task", "invalid task data", err)
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		log.Error("failed to create task",
			slog.String("error", err.Error()))
		return nil, NewTaskServiceError("create_task", "failed to save task", err)
	}

	log.Info("task created", slog.Int64("task_id", task.ID))
	return task, nil
}

// GetTask implements TaskService.GetTask
func (s *taskServiceImpl) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving task", slog.Int64("task_id", id))

	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("task not found", slog.Int64("task_id", id))
			return nil, NewTaskServiceError("get_task", "task not found", store.ErrTaskNotFound)
		}
		log.Error("failed to retrieve task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return nil, NewTaskServiceError("get_task", "failed to retrieve task", err)
	}

	return task, nil
}

// ListTasks implements TaskService.ListTasks
func (s *taskServiceImpl) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	tasks, err := s.taskRepo.FindAll(ctx)
	if err != nil {
		log.Error("failed to list tasks",
			slog.String("error", err.Error()))
		return nil, NewTaskServiceError("list_tasks", "failed to list tasks", err)
	}

	return tasks, nil
}

// ListTasksByStatus implements TaskService.ListTasksByStatus
func (s *taskServiceImpl) ListTasksByStatus(
	ctx context.Context,
	completed bool,
) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	tasks, err := s.taskRepo.FindByCompleted(ctx, completed)
	if err != nil {
		log.Error("failed to list tasks by status",
			slog.String("error", err.Error()),
			slog.Bool("completed", completed))
		return nil, NewTaskServiceError("list_tasks", "failed to list tasks by status", err)
	}

	return tasks, nil
}

// SearchTasks implements TaskService.SearchTasks
func (s *taskServiceImpl) SearchTasks(ctx context.Context, title string) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	tasks, err := s.taskRepo.SearchByTitle(ctx, title)
	if err != nil {
		log.Error("failed to search tasks",
			slog.String("error", err.Error()),
			slog.String("title", title))
		return nil, NewTaskServiceError("search_tasks", "failed to search tasks", err)
	}

	return tasks, nil
}

// UpdateTask implements TaskService.UpdateTask
// The load and the write run in a single transaction so concurrent
// partial updates cannot interleave between them.
func (s *taskServiceImpl) UpdateTask(
	ctx context.Context,
	id int64,
	params UpdateTaskParams,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("updating task", slog.Int64("task_id", id))

	var updated *domain.Task
	err := store.RunInTransaction(
		ctx,
		s.taskRepo.DB(),
		func(ctx context.Context, tx *sql.Tx) error {
			txRepo := s.taskRepo.WithTx(tx)

			task, err := txRepo.GetByID(ctx, id)
			if err != nil {
				if store.IsNotFoundError(err) {
					return NewTaskServiceError("update_task", "task not found", store.ErrTaskNotFound)
				}
				return NewTaskServiceError("update_task", "failed to load task", err)
			}

			if err := applyUpdate(task, params); err != nil {
				return NewTaskServiceError("update_task", "invalid task data", err)
			}

			if err := txRepo.Update(ctx, task); err != nil {
				return NewTaskServiceError("update_task", "failed to save task", err)
			}

			updated = task
			return nil
		},
	)
	if err != nil {
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return nil, err
	}

	log.Info("task updated", slog.Int64("task_id", id))
	return updated, nil
}

// CompleteTask implements TaskService.CompleteTask
func (s *taskServiceImpl) CompleteTask(ctx context.Context, id int64) (*domain.Task, error) {
	return s.setTaskCompletion(ctx, "complete_task", id, true)
}

// ReopenTask implements TaskService.ReopenTask
func (s *taskServiceImpl) ReopenTask(ctx context.Context, id int64) (*domain.Task, error) {
	return s.setTaskCompletion(ctx, "reopen_task", id, false)
}

// setTaskCompletion loads a task, sets its completion flag, and persists
// it, all within one transaction.
func (s *taskServiceImpl) setTaskCompletion(
	ctx context.Context,
	operation string,
	id int64,
	completed bool,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("setting task completion",
		slog.Int64("task_id", id),
		slog.Bool("completed", completed))

	var updated *domain.Task
	err := store.RunInTransaction(
		ctx,
		s.taskRepo.DB(),
		func(ctx context.Context, tx *sql.Tx) error {
			txRepo := s.taskRepo.WithTx(tx)

			task, err := txRepo.GetByID(ctx, id)
			if err != nil {
				if store.IsNotFoundError(err) {
					return NewTaskServiceError(operation, "task not found", store.ErrTaskNotFound)
				}
				return NewTaskServiceError(operation, "failed to load task", err)
			}

			task.SetCompleted(completed)

			if err := txRepo.Update(ctx, task); err != nil {
				return NewTaskServiceError(operation, "failed to save task", err)
			}

			updated = task
			return nil
		},
	)
	if err != nil {
		log.Error("failed to set task completion",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id),
			slog.Bool("completed", completed))
		return nil, err
	}

	log.Info("task completion updated",
		slog.Int64("task_id", id),
		slog.Bool("completed", completed))
	return updated, nil
}

// DeleteTask implements TaskService.DeleteTask
// The existence check and the delete are separate statements; a task
// removed between them surfaces as not found from the delete itself.
func (s *taskServiceImpl) DeleteTask(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("deleting task", slog.Int64("task_id", id))

	exists, err := s.taskRepo.Exists(ctx, id)
	if err != nil {
		log.Error("failed to check task existence",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return NewTaskServiceError("delete_task", "failed to check task existence", err)
	}
	if !exists {
		log.Debug("task not found for delete", slog.Int64("task_id", id))
		return NewTaskServiceError("delete_task", "task not found", store.ErrTaskNotFound)
	}

	if err := s.taskRepo.Delete(ctx, id); err != nil {
		if store.IsNotFoundError(err) {
			return NewTaskServiceError("delete_task", "task not found", store.ErrTaskNotFound)
		}
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return NewTaskServiceError("delete_task", "failed to delete task", err)
	}

	log.Info("task deleted", slog.Int64("task_id", id))
	return nil
}

// GetStatistics implements TaskService.GetStatistics
// The counts come from three independent queries rather than one atomic
// snapshot, so they can drift slightly under concurrent writes.
func (s *taskServiceImpl) GetStatistics(ctx context.Context) (*TaskStatistics, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	total, err := s.taskRepo.CountAll(ctx)
	if err != nil {
		log.Error("failed to count tasks",
			slog.String("error", err.Error()))
		return nil, NewTaskServiceError("get_statistics", "failed to count tasks", err)
	}

	completed, err := s.taskRepo.CountByCompleted(ctx, true)
	if err != nil {
		log.Error("failed to count completed tasks",
			slog.String("error", err.Error()))
		return nil, NewTaskServiceError("get_statistics", "failed to count completed tasks", err)
	}

	incomplete, err := s.taskRepo.CountByCompleted(ctx, false)
	if err != nil {
		log.Error("failed to count incomplete tasks",
			slog.String("error", err.Error()))
		return nil, NewTaskServiceError("get_statistics", "failed to count incomplete tasks", err)
	}

	return &TaskStatistics{
		Total:      total,
		Completed:  completed,
		Incomplete: incomplete,
	}, nil
}

// applyUpdate applies the provided fields to the task. A nil or blank
// title is skipped; a non-nil description is trimmed and applied even
// when empty; a nil completion flag leaves the flag unchanged.
func applyUpdate(task *domain.Task, params UpdateTaskParams) error {
	if params.Title != nil {
		if title := strings.TrimSpace(*params.Title); title != "" {
			if err := task.UpdateTitle(title); err != nil {
				return err
			}
		}
	}

	if params.Description != nil {
		trimmed := strings.TrimSpace(*params.Description)
		if err := task.UpdateDescription(&trimmed); err != nil {
			return err
		}
	}

	if params.Completed != nil {
		task.SetCompleted(*params.Completed)
	}

	return nil
}
