package domain

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

// Field limits enforced on every task write.
const (
	MaxTitleLength       = 100
	MaxDescriptionLength = 500
)

// Task-specific validation errors
var (
	// ErrTitleEmpty is returned when a task title is empty or blank after trimming.
	ErrTitleEmpty = errors.New("task title cannot be blank")

	// ErrTitleTooLong is returned when a task title exceeds MaxTitleLength characters.
	ErrTitleTooLong = errors.New("task title cannot exceed 100 characters")

	// ErrDescriptionTooLong is returned when a task description exceeds
	// MaxDescriptionLength characters.
	ErrDescriptionTooLong = errors.New("task description cannot exceed 500 characters")
)

// Task represents a single tracked unit of work. The ID is assigned by the
// store on creation and never changes; Description is optional and nil when
// the task was created without one.
type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewTask creates a new Task with the given title and optional description.
// New tasks always start incomplete, with creation and update timestamps set
// to the same instant. The ID is zero until the store persists the task.
// Returns an error if validation fails.
func NewTask(title string, description *string) (*Task, error) {
	now := time.Now().UTC()
	task := &Task{
		Title:       title,
		Description: description,
		Completed:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return ErrTitleEmpty
	}

	if utf8.RuneCountInString(t.Title) > MaxTitleLength {
		return ErrTitleTooLong
	}

	if t.Description != nil && utf8.RuneCountInString(*t.Description) > MaxDescriptionLength {
		return ErrDescriptionTooLong
	}

	return nil
}

// UpdateTitle replaces the task's title and refreshes the UpdatedAt timestamp.
// Returns an error if the new title is blank or too long, leaving the task
// unchanged.
func (t *Task) UpdateTitle(title string) error {
	origTitle := t.Title
	t.Title = title

	if err := t.Validate(); err != nil {
		t.Title = origTitle
		return err
	}

	t.UpdatedAt = time.Now().UTC()
	return nil
}

// UpdateDescription replaces the task's description and refreshes the
// UpdatedAt timestamp. Returns an error if the new description is too long,
// leaving the task unchanged.
func (t *Task) UpdateDescription(description *string) error {
	origDescription := t.Description
	t.Description = description

	if err := t.Validate(); err != nil {
		t.Description = origDescription
		return err
	}

	t.UpdatedAt = time.Now().UTC()
	return nil
}

// SetCompleted sets the completion flag and refreshes the UpdatedAt timestamp.
func (t *Task) SetCompleted(completed bool) {
	t.Completed = completed
	t.UpdatedAt = time.Now().UTC()
}
