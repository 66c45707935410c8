package repository

import (
	"briefdesk-backend/internal/task/domain"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *domain.Task) error

	// FindByID finds a task by its ID, returns nil when absent
	FindByID(id string) (*domain.Task, error)

	// FindByUserID returns all tasks for a user ordered by createdAt desc
	FindByUserID(userID string) ([]*domain.Task, error)

	// Update updates an existing task
	Update(task *domain.Task) error

	// UpdateStatus sets only the task status
	UpdateStatus(id string, status domain.TaskStatus) error

	// Delete deletes a task by ID
	Delete(id string) error
}
