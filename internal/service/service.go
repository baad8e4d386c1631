// Package service defines the backend-agnostic interface for task operations.
package service

import "context"

// Service defines the interface for task backend operations.
// All Google Tasks API calls go through this interface.
// The store and commands never import the Google SDK directly.
type Service interface {
	// ListTasks returns all tasks in the bound list, in backend order
	// (no client-side sorting). Completed tasks are included.
	ListTasks(ctx context.Context) ([]Task, error)

	// CreateTask creates a new task and returns the full task with
	// its backend-assigned ID.
	CreateTask(ctx context.Context, description string) (Task, error)

	// UpdateTask replaces a task's description and completion flag and
	// returns the backend's representation of the updated task.
	UpdateTask(ctx context.Context, id, description string, completed bool) (Task, error)

	// DeleteTask deletes a task by ID.
	DeleteTask(ctx context.Context, id string) error
}
