package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/taskmanager/api/internal/domain"
	"github.com/taskmanager/api/internal/platform/logger"
	"github.com/taskmanager/api/internal/store"
)

// SQLTaskStore implements the store.TaskStore interface using a SQL
// database as the storage backend.
type SQLTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewSQLTaskStore creates a new SQL implementation of the TaskStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewSQLTaskStore(db store.DBTX, logger *slog.Logger) *SQLTaskStore {
	// Validate inputs
	if db == nil {
		panic("db cannot be nil")
	}

	// Use provided logger or create default
	if logger == nil {
		logger = slog.Default()
	}

	return &SQLTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure SQLTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*SQLTaskStore)(nil)

// Create implements store.TaskStore.Create
// It saves a new task to the database and assigns the generated ID.
// Returns validation errors from the domain Task if data is invalid.
func (s *SQLTaskStore) Create(ctx context.Context, task *domain.Task) error {
	// Get the logger from context or use default
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Validate task data
	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()))
		return err
	}

	query := `
		INSERT INTO tasks (title, description, completed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := s.db.QueryRowContext(
		ctx,
		query,
		task.Title,
		task.Description,
		task.Completed,
		task.CreatedAt.UnixMilli(),
		task.UpdatedAt.UnixMilli(),
	).Scan(&task.ID)

	if err != nil {
		log.Error("failed to create task",
			slog.String("error", err.Error()))
		return MapError(err)
	}

	log.Info("task created successfully",
		slog.Int64("task_id", task.ID),
		slog.Bool("completed", task.Completed))
	return nil
}

// GetByID implements store.TaskStore.GetByID
// It retrieves a task by its unique ID.
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *SQLTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	// Get the logger from context or use default
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving task by ID", slog.Int64("task_id", id))

	query := `
		SELECT id, title, description, completed, created_at, updated_at
		FROM tasks
		WHERE id = $1
	`

	var task domain.Task
	var createdAtMs, updatedAtMs int64

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Completed,
		&createdAtMs,
		&updatedAtMs,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found", slog.Int64("task_id", id))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task by ID",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return nil, err
	}

	task.CreatedAt = time.UnixMilli(createdAtMs).UTC()
	task.UpdatedAt = time.UnixMilli(updatedAtMs).UTC()

	log.Debug("task retrieved successfully",
		slog.Int64("task_id", id),
		slog.Bool("completed", task.Completed))
	return &task, nil
}

// Update implements store.TaskStore.Update
// It persists every mutable column of an existing task.
// Returns store.ErrTaskNotFound if the task does not exist.
// Returns validation errors if the task data is invalid.
func (s *SQLTaskStore) Update(ctx context.Context, task *domain.Task) error {
	// Get the logger from context or use default
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Validate task data
	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("task_id", task.ID))
		return err
	}

	query := `
		UPDATE tasks
		SET title = $1, description = $2, completed = $3, updated_at = $4
		WHERE id = $5
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		task.Title,
		task.Description,
		task.Completed,
		task.UpdatedAt.UnixMilli(),
		task.ID,
	)

	if err != nil {
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", task.ID))
		return MapError(err)
	}

	// Check if a row was actually updated
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.Int64("task_id", task.ID))
		return err
	}

	// If no rows were affected, the task didn't exist
	if rowsAffected == 0 {
		log.Debug("task not found for update",
			slog.Int64("task_id", task.ID))
		return store.ErrTaskNotFound
	}

	log.Info("task updated successfully",
		slog.Int64("task_id", task.ID),
		slog.Bool("completed", task.Completed))
	return nil
}

// Delete implements store.TaskStore.Delete
// It removes a task from the database by its ID.
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *SQLTaskStore) Delete(ctx context.Context, id int64) error {
	// Get the logger from context or use default
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("deleting task", slog.Int64("task_id", id))

	query := `
		DELETE FROM tasks
		WHERE id = $1
	`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return err
	}

	// Check if a row was actually deleted
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return err
	}

	// If no rows were affected, the task didn't exist
	if rowsAffected == 0 {
		log.Debug("task not found for delete", slog.Int64("task_id", id))
		return store.ErrTaskNotFound
	}

	log.Info("task deleted successfully", slog.Int64("task_id", id))
	return nil
}

// Exists implements store.TaskStore.Exists
// It reports whether a task with the given ID is present.
func (s *SQLTaskStore) Exists(ctx context.Context, id int64) (bool, error) {
	// Get the logger from context or use default
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT EXISTS (SELECT 1 FROM tasks WHERE id = $1)
	`

	var exists bool
	err := s.db.QueryRowContext(ctx, query, id).Scan(&exists)
	if err != nil {
		log.Error("failed to check task existence",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return false, err
	}

	return exists, nil
}

// FindAll implements store.TaskStore.FindAll
// It retrieves every task ordered by creation time, newest first.
// Returns an empty slice if the store holds no tasks.
func (s *SQLTaskStore) FindAll(ctx context.Context) ([]*domain.Task, error) {
	// Get the logger from context or use default
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("finding all tasks")

	query := `
		SELECT id, title, description, completed, created_at, updated_at
		FROM tasks
		ORDER BY created_at DESC, id DESC
	`

	tasks, err := s.listTasks(ctx, log, query)
	if err != nil {
		return nil, err
	}

	log.Debug("found all tasks", slog.Int("count", len(tasks)))
	return tasks, nil
}

// FindByCompleted implements store.TaskStore.FindByCompleted
// It retrieves tasks filtered by their completion flag, newest first.
// Returns an empty slice if no tasks match the criteria.
func (s *SQLTaskStore) FindByCompleted(ctx context.Context, completed bool) ([]*domain.Task, error) {
	// Get the logger from context or use default
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("finding tasks by completion", slog.Bool("completed", completed))

	query := `
		SELECT id, title, description, completed, created_at, updated_at
		FROM tasks
		WHERE completed = $1
		ORDER BY created_at DESC, id DESC
	`

	tasks, err := s.listTasks(ctx, log, query, completed)
	if err != nil {
		return nil, err
	}

	log.Debug("found tasks by completion",
		slog.Bool("completed", completed),
		slog.Int("count", len(tasks)))
	return tasks, nil
}

// SearchByTitle implements store.TaskStore.SearchByTitle
// It retrieves tasks whose title contains the given text, matched
// case-insensitively, newest first. An empty search string matches every
// task. LIKE wildcards in the search text are not escaped, so % and _
// keep their pattern meaning.
// Returns an empty slice if no tasks match the criteria.
func (s *SQLTaskStore) SearchByTitle(ctx context.Context, title string) ([]*domain.Task, error) {
	// Get the logger from context or use default
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("searching tasks by title", slog.String("title", title))

	query := `
		SELECT id, title, description, completed, created_at, updated_at
		FROM tasks
		WHERE LOWER(title) LIKE '%' || LOWER($1) || '%'
		ORDER BY created_at DESC, id DESC
	`

	tasks, err := s.listTasks(ctx, log, query, title)
	if err != nil {
		return nil, err
	}

	log.Debug("searched tasks by title",
		slog.String("title", title),
		slog.Int("count", len(tasks)))
	return tasks, nil
}

// CountAll implements store.TaskStore.CountAll
// It returns the total number of tasks in the store.
func (s *SQLTaskStore) CountAll(ctx context.Context) (int64, error) {
	// Get the logger from context or use default
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT COUNT(*) FROM tasks
	`

	var count int64
	err := s.db.QueryRowContext(ctx, query).Scan(&count)
	if err != nil {
		log.Error("failed to count tasks",
			slog.String("error", err.Error()))
		return 0, err
	}

	return count, nil
}

// CountByCompleted implements store.TaskStore.CountByCompleted
// It returns the number of tasks with the given completion flag.
func (s *SQLTaskStore) CountByCompleted(ctx context.Context, completed bool) (int64, error) {
	// Get the logger from context or use default
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT COUNT(*) FROM tasks WHERE completed = $1
	`

	var count int64
	err := s.db.QueryRowContext(ctx, query, completed).Scan(&count)
	if err != nil {
		log.Error("failed to count tasks by completion",
			slog.String("error", err.Error()),
			slog.Bool("completed", completed))
		return 0, err
	}

	return count, nil
}

// WithTx implements store.TaskStore.WithTx
// It returns a new store instance that runs every operation on the
// provided transaction.
func (s *SQLTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &SQLTaskStore{
		db:     tx,
		logger: s.logger,
	}
}

// listTasks runs a query that selects full task rows and scans the
// results. Returns an empty slice instead of nil when nothing matches.
func (s *SQLTaskStore) listTasks(
	ctx context.Context,
	log *slog.Logger,
	query string,
	args ...any,
) ([]*domain.Task, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query tasks",
			slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		err := rows.Close()
		if err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var tasks []*domain.Task
	for rows.Next() {
		var task domain.Task
		var createdAtMs, updatedAtMs int64

		err := rows.Scan(
			&task.ID,
			&task.Title,
			&task.Description,
			&task.Completed,
			&createdAtMs,
			&updatedAtMs,
		)
		if err != nil {
			log.Error("failed to scan task row",
				slog.String("error", err.Error()))
			return nil, err
		}

		task.CreatedAt = time.UnixMilli(createdAtMs).UTC()
		task.UpdatedAt = time.UnixMilli(updatedAtMs).UTC()
		tasks = append(tasks, &task)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	// Return empty slice instead of nil if no tasks found
	if tasks == nil {
		tasks = []*domain.Task{}
	}

	return tasks, nil
}
