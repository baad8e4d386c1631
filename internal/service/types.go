// Package service defines the backend-agnostic interface for task operations.
package service

// Task represents a single task item.
//
// ID is opaque, assigned by the backend, and stable for the task's
// lifetime. The json tags define the cache snapshot encoding.
type Task struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}
