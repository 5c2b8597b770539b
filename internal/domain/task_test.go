package domain

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func strPtr(s string) *string {
	return &s
}

func TestNewTask(t *testing.T) {
	t.Parallel() // Enable parallel execution
	// Test valid task creation
	description := strPtr("Get 2% from the corner store")
	task, err := NewTask("Buy milk", description)

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if task.ID != 0 {
		t.Errorf("Expected zero ID before persistence, got %d", task.ID)
	}

	if task.Title != "Buy milk" {
		t.Errorf("Expected title %q, got %q", "Buy milk", task.Title)
	}

	if task.Description == nil || *task.Description != *description {
		t.Errorf("Expected description %q, got %v", *description, task.Description)
	}

	if task.Completed {
		t.Error("Expected new task to be incomplete")
	}

	if task.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}

	if !task.CreatedAt.Equal(task.UpdatedAt) {
		t.Errorf("Expected CreatedAt == UpdatedAt on creation, got %v and %v",
			task.CreatedAt, task.UpdatedAt)
	}

	// Test creation without a description
	task, err = NewTask("Walk the dog", nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if task.Description != nil {
		t.Errorf("Expected nil description, got %v", *task.Description)
	}
}

func TestTaskValidate(t *testing.T) {
	t.Parallel() // Enable parallel execution

	tests := []struct {
		name        string
		title       string
		description *string
		wantErr     error
	}{
		{
			name:  "valid minimal task",
			title: "a",
		},
		{
			name:        "valid task at limits",
			title:       strings.Repeat("t", MaxTitleLength),
			description: strPtr(strings.Repeat("d", MaxDescriptionLength)),
		},
		{
			name:    "empty title",
			title:   "",
			wantErr: ErrTitleEmpty,
		},
		{
			name:    "blank title",
			title:   "   \t  ",
			wantErr: ErrTitleEmpty,
		},
		{
			name:    "title too long",
			title:   strings.Repeat("t", MaxTitleLength+1),
			wantErr: ErrTitleTooLong,
		},
		{
			name:        "description too long",
			title:       "Buy milk",
			description: strPtr(strings.Repeat("d", MaxDescriptionLength+1)),
			wantErr:     ErrDescriptionTooLong,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			task := Task{
				Title:       tc.title,
				Description: tc.description,
				CreatedAt:   time.Now().UTC(),
				UpdatedAt:   time.Now().UTC(),
			}

			err := task.Validate()
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("Expected error %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestTaskUpdateTitle(t *testing.T) {
	t.Parallel() // Enable parallel execution
	task, err := NewTask("Original", nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	createdAt := task.CreatedAt
	before := task.UpdatedAt

	if err := task.UpdateTitle("Renamed"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if task.Title != "Renamed" {
		t.Errorf("Expected title %q, got %q", "Renamed", task.Title)
	}

	if task.UpdatedAt.Before(before) {
		t.Error("Expected UpdatedAt to be refreshed")
	}

	if !task.CreatedAt.Equal(createdAt) {
		t.Error("Expected CreatedAt to be unchanged")
	}

	// Invalid titles leave the task untouched
	if err := task.UpdateTitle(""); !errors.Is(err, ErrTitleEmpty) {
		t.Errorf("Expected error %v, got %v", ErrTitleEmpty, err)
	}
	if task.Title != "Renamed" {
		t.Errorf("Expected title to remain %q after failed update, got %q", "Renamed", task.Title)
	}

	tooLong := strings.Repeat("t", MaxTitleLength+1)
	if err := task.UpdateTitle(tooLong); !errors.Is(err, ErrTitleTooLong) {
		t.Errorf("Expected error %v, got %v", ErrTitleTooLong, err)
	}
	if task.Title != "Renamed" {
		t.Errorf("Expected title to remain %q after failed update, got %q", "Renamed", task.Title)
	}
}

func TestTaskUpdateDescription(t *testing.T) {
	t.Parallel() // Enable parallel execution
	task, err := NewTask("Buy milk", strPtr("original"))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if err := task.UpdateDescription(strPtr("updated")); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if task.Description == nil || *task.Description != "updated" {
		t.Errorf("Expected description %q, got %v", "updated", task.Description)
	}

	// An oversized description is rejected and the old value kept
	tooLong := strPtr(strings.Repeat("d", MaxDescriptionLength+1))
	if err := task.UpdateDescription(tooLong); !errors.Is(err, ErrDescriptionTooLong) {
		t.Errorf("Expected error %v, got %v", ErrDescriptionTooLong, err)
	}
	if task.Description == nil || *task.Description != "updated" {
		t.Errorf("Expected description to remain %q, got %v", "updated", task.Description)
	}
}

func TestTaskSetCompleted(t *testing.T) {
	t.Parallel() // Enable parallel execution
	task, err := NewTask("Buy milk", nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	before := task.UpdatedAt
	task.SetCompleted(true)

	if !task.Completed {
		t.Error("Expected task to be completed")
	}
	if task.UpdatedAt.Before(before) {
		t.Error("Expected UpdatedAt to be refreshed")
	}

	task.SetCompleted(false)
	if task.Completed {
		t.Error("Expected task to be incomplete")
	}
}

func TestValidationError(t *testing.T) {
	t.Parallel() // Enable parallel execution

	err := NewValidationError("title", "is required", ErrValidation)
	if err.Error() != "title is required: validation failed" {
		t.Errorf("Unexpected error string: %q", err.Error())
	}
	if !errors.Is(err, ErrValidation) {
		t.Error("Expected ValidationError to unwrap to ErrValidation")
	}

	bare := NewValidationError("id", "has invalid format", nil)
	if bare.Error() != "id has invalid format" {
		t.Errorf("Unexpected error string: %q", bare.Error())
	}
}
