package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taskmanager/api/internal/api/shared"
	"github.com/taskmanager/api/internal/domain"
	"github.com/taskmanager/api/internal/platform/logger"
	"github.com/taskmanager/api/internal/redact"
	"github.com/taskmanager/api/internal/service"
	"github.com/taskmanager/api/internal/store"
)

// CreateTaskRequest represents the request body for creating a new task
type CreateTaskRequest struct {
	Title       string  `json:"title" validate:"required,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

// UpdateTaskRequest represents the request body for a partial task update.
// Omitted fields leave the stored values unchanged.
type UpdateTaskRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	Completed   *bool   `json:"completed"`
}

// TaskResponse represents the response data for a task
type TaskResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// StatisticsResponse represents the response data for task statistics
type StatisticsResponse struct {
	TotalTasks      int64 `json:"totalTasks"`
	CompletedTasks  int64 `json:"completedTasks"`
	IncompleteTasks int64 `json:"incompleteTasks"`
}

// TaskHandler handles task-related HTTP requests
type TaskHandler struct {
	taskService service.TaskService
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService service.TaskService, logger *slog.Logger) *TaskHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TaskHandler")
	}

	return &TaskHandler{
		taskService: taskService,
		logger:      logger.With(slog.String("component", "task_handler")),
	}
}

// ListTasks handles GET /tasks requests
// It retrieves every task, newest first.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	tasks, err := h.taskService.ListTasks(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list tasks")
		return
	}

	log.Debug("retrieved task list", slog.Int("count", len(tasks)))
	shared.RespondWithJSON(w, r, http.StatusOK, tasksToResponse(tasks))
}

// GetTask handles GET /tasks/{id} requests
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathID(r, "id")
	if err != nil {
		log.Warn("invalid task ID", slog.String("value", chi.URLParam(r, "id")))
		HandleAPIError(w, r, err, "")
		return
	}

	task, err := h.taskService.GetTask(r.Context(), id)
	if err != nil {
		respondTaskError(w, r, id, err, "Failed to retrieve task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// CreateTask handles POST /tasks requests
// It creates a new incomplete task and returns it with 201 Created.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	// Inputs are trimmed before validation so a blank title fails required
	req.Title = strings.TrimSpace(req.Title)
	if req.Description != nil {
		trimmed := strings.TrimSpace(*req.Description)
		req.Description = &trimmed
	}

	if err := shared.Validate.Struct(req); err != nil {
		log.Warn("validation error", slog.String("error", redact.Error(err)))
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	task, err := h.taskService.CreateTask(r.Context(), req.Title, req.Description)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create task")
		return
	}

	log.Debug("task created", slog.Int64("task_id", task.ID))
	shared.RespondWithJSON(w, r, http.StatusCreated, taskToResponse(task))
}

// UpdateTask handles PUT /tasks/{id} requests
// It applies a partial update and returns the updated task.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathID(r, "id")
	if err != nil {
		log.Warn("invalid task ID", slog.String("value", chi.URLParam(r, "id")))
		HandleAPIError(w, r, err, "")
		return
	}

	var req UpdateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format",
			slog.String("error", redact.Error(err)),
			slog.Int64("task_id", id))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		log.Warn("validation error",
			slog.String("error", redact.Error(err)),
			slog.Int64("task_id", id))
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	task, err := h.taskService.UpdateTask(r.Context(), id, service.UpdateTaskParams{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	})
	if err != nil {
		respondTaskError(w, r, id, err, "Failed to update task")
		return
	}

	log.Debug("task updated", slog.Int64("task_id", id))
	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// CompleteTask handles PUT /tasks/{id}/complete requests
func (h *TaskHandler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	h.setCompletion(w, r, true)
}

// ReopenTask handles PUT /tasks/{id}/incomplete requests
func (h *TaskHandler) ReopenTask(w http.ResponseWriter, r *http.Request) {
	h.setCompletion(w, r, false)
}

// setCompletion extracts the task ID and flips the completion flag through
// the service, returning the updated task.
func (h *TaskHandler) setCompletion(w http.ResponseWriter, r *http.Request, completed bool) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathID(r, "id")
	if err != nil {
		log.Warn("invalid task ID", slog.String("value", chi.URLParam(r, "id")))
		HandleAPIError(w, r, err, "")
		return
	}

	var task *domain.Task
	if completed {
		task, err = h.taskService.CompleteTask(r.Context(), id)
	} else {
		task, err = h.taskService.ReopenTask(r.Context(), id)
	}
	if err != nil {
		respondTaskError(w, r, id, err, "Failed to update task completion")
		return
	}

	log.Debug("task completion updated",
		slog.Int64("task_id", id),
		slog.Bool("completed", completed))
	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// DeleteTask handles DELETE /tasks/{id} requests
// It removes the task and returns 204 No Content.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathID(r, "id")
	if err != nil {
		log.Warn("invalid task ID", slog.String("value", chi.URLParam(r, "id")))
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.taskService.DeleteTask(r.Context(), id); err != nil {
		respondTaskError(w, r, id, err, "Failed to delete task")
		return
	}

	log.Debug("task deleted", slog.Int64("task_id", id))
	w.WriteHeader(http.StatusNoContent)
}

// ListCompletedTasks handles GET /tasks/completed requests
func (h *TaskHandler) ListCompletedTasks(w http.ResponseWriter, r *http.Request) {
	h.listByStatus(w, r, true)
}

// ListIncompleteTasks handles GET /tasks/incomplete requests
func (h *TaskHandler) ListIncompleteTasks(w http.ResponseWriter, r *http.Request) {
	h.listByStatus(w, r, false)
}

// listByStatus retrieves tasks filtered by completion flag.
func (h *TaskHandler) listByStatus(w http.ResponseWriter, r *http.Request, completed bool) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	tasks, err := h.taskService.ListTasksByStatus(r.Context(), completed)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list tasks")
		return
	}

	log.Debug("retrieved tasks by status",
		slog.Bool("completed", completed),
		slog.Int("count", len(tasks)))
	shared.RespondWithJSON(w, r, http.StatusOK, tasksToResponse(tasks))
}

// SearchTasks handles GET /tasks/search?title= requests
// The title parameter is required; a present but empty value matches all
// tasks.
func (h *TaskHandler) SearchTasks(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	if !r.URL.Query().Has("title") {
		log.Warn("search request missing title parameter")
		shared.RespondWithError(w, r, http.StatusBadRequest, "Search title is required")
		return
	}
	title := r.URL.Query().Get("title")

	tasks, err := h.taskService.SearchTasks(r.Context(), title)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to search tasks")
		return
	}

	log.Debug("searched tasks",
		slog.String("title", title),
		slog.Int("count", len(tasks)))
	shared.RespondWithJSON(w, r, http.StatusOK, tasksToResponse(tasks))
}

// GetStatistics handles GET /tasks/statistics requests
func (h *TaskHandler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	stats, err := h.taskService.GetStatistics(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get task statistics")
		return
	}

	log.Debug("retrieved task statistics",
		slog.Int64("total", stats.Total),
		slog.Int64("completed", stats.Completed))
	shared.RespondWithJSON(w, r, http.StatusOK, StatisticsResponse{
		TotalTasks:      stats.Total,
		CompletedTasks:  stats.Completed,
		IncompleteTasks: stats.Incomplete,
	})
}

// respondTaskError writes the error response for a task-scoped operation,
// using the id-specific not found message required by the API contract.
func respondTaskError(w http.ResponseWriter, r *http.Request, id int64, err error, defaultMsg string) {
	if errors.Is(err, store.ErrNotFound) {
		shared.RespondWithErrorAndLog(w, r, http.StatusNotFound,
			fmt.Sprintf("Task not found with id: %d", id), err)
		return
	}
	HandleAPIError(w, r, err, defaultMsg)
}

// taskToResponse converts a domain.Task to a TaskResponse
func taskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Completed:   task.Completed,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

// tasksToResponse converts a task slice, always returning a non-nil slice so
// the JSON body is [] rather than null.
func tasksToResponse(tasks []*domain.Task) []TaskResponse {
	responses := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		responses = append(responses, taskToResponse(task))
	}
	return responses
}
